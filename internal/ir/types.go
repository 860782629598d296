package ir

// TypeReference is a named type, optionally with generic arguments:
// `Name<Args...>`.
type TypeReference struct {
	Base
	Name string
	Args []TypeExpr
}

func (*TypeReference) typeExprNode() {}

// UnionType is `A | B | ...`, from the source form `(| A B)`.
type UnionType struct {
	Base
	Members []TypeExpr
}

func (*UnionType) typeExprNode() {}

// IntersectionType is `A & B & ...`, from the source form `(& A B)`.
type IntersectionType struct {
	Base
	Members []TypeExpr
}

func (*IntersectionType) typeExprNode() {}

// KeyofType is `keyof T`, from `(keyof T)`.
type KeyofType struct {
	Base
	Operand TypeExpr
}

func (*KeyofType) typeExprNode() {}

// IndexedAccessType is `T[K]`, from `(indexed T K)`.
type IndexedAccessType struct {
	Base
	Object TypeExpr
	Index  TypeExpr
}

func (*IndexedAccessType) typeExprNode() {}

// ConditionalType is `T extends U ? Then : Else`, from
// `(if-extends T U Then Else)`.
type ConditionalType struct {
	Base
	Check  TypeExpr
	Extend TypeExpr
	Then   TypeExpr
	Else   TypeExpr
}

func (*ConditionalType) typeExprNode() {}

// MappedType is `{ [K in T]: V }`, from `(mapped K T V)`.
type MappedType struct {
	Base
	Param  string
	Source TypeExpr
	Value  TypeExpr
}

func (*MappedType) typeExprNode() {}

// TupleType is `[T1, T2, ...]`, from `(tuple ...)`.
type TupleType struct {
	Base
	Elements []TypeExpr
}

func (*TupleType) typeExprNode() {}

// ArrayTypeExpr is `T[]`, from `(array T)`.
type ArrayTypeExpr struct {
	Base
	Element TypeExpr
}

func (*ArrayTypeExpr) typeExprNode() {}

// FunctionTypeParam is one parameter of a FunctionType.
type FunctionTypeParam struct {
	Name string
	Type TypeExpr
}

// FunctionType is `(p1: T1, p2: T2) => R`.
type FunctionType struct {
	Base
	Params []FunctionTypeParam
	Return TypeExpr
}

func (*FunctionType) typeExprNode() {}

// InferType is `infer U`, from `(infer U)`, only valid within a
// ConditionalType's Extend position.
type InferType struct {
	Base
	Name string
}

func (*InferType) typeExprNode() {}

// ReadonlyType is `readonly T`, from `(readonly T)`.
type ReadonlyType struct {
	Base
	Operand TypeExpr
}

func (*ReadonlyType) typeExprNode() {}

// TypeofType is `typeof x`, from `(typeof x)`.
type TypeofType struct {
	Base
	Expr Expr
}

func (*TypeofType) typeExprNode() {}

// LiteralType is a literal used in type position, e.g. `"a" | "b"`.
type LiteralType struct {
	Base
	Value any
}

func (*LiteralType) typeExprNode() {}

// RestType is `...T` within a TupleType.
type RestType struct {
	Base
	Operand TypeExpr
}

func (*RestType) typeExprNode() {}

// OptionalType is `T?` for an optional tuple element or parameter.
type OptionalType struct {
	Base
	Operand TypeExpr
}

func (*OptionalType) typeExprNode() {}
