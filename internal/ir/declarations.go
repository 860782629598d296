package ir

// VarKind selects between `let`, `const`, and `var` binding semantics.
type VarKind string

const (
	VarLet   VarKind = "let"
	VarConst VarKind = "const"
	VarVar   VarKind = "var"
)

// VariableDeclarator is one `Name = Init` pair within a VariableDecl.
type VariableDeclarator struct {
	Name Pattern
	Init Expr // nil when uninitialized
}

// VariableDecl is `let|const|var Declarators...;`. A binding form such
// as (let x 1) lowers to exactly one declarator; destructuring forms
// produce an ArrayPattern/ObjectPattern as Name.
type VariableDecl struct {
	Base
	Kind        VarKind
	Declarators []VariableDeclarator
	Hoisted     bool // no pipeline stage sets this; the emitter finds hoisted declarations through DeclExpr
}

func (*VariableDecl) stmtNode() {}
func (*VariableDecl) declNode() {}

// Param is one function parameter: a binding pattern, an optional
// default, and an optional type annotation.
type Param struct {
	Name    Pattern
	Default Expr
	Type    TypeExpr
	Rest    bool
}

// FunctionDecl is a conventional named `function Name(Params) Body`
// declaration. The lowerer never produces one (`fn` lowers to
// FnFunctionDecl, class methods to ClassMethod), and the emitter has no
// case for it: emitting a FunctionDecl fails with a CodeGenError.
type FunctionDecl struct {
	Base
	Name        string
	Params      []Param
	Body        *BlockStmt
	UsesThis    bool
	IsAsync     bool
	IsGenerator bool
	ReturnType  TypeExpr
}

func (*FunctionDecl) stmtNode() {}
func (*FunctionDecl) declNode() {}

// FnFunctionDecl is the lowering of `(fn name [params...] body...)`: a
// user function with parameter defaults and, when JSONMap is true, a
// single destructured keyword-arguments object parameter instead of a
// positional parameter list (spec.md §4.8 "JSON-map parameters").
type FnFunctionDecl struct {
	Base
	Name       string
	Params     []Param
	JSONMap    bool
	Body       *BlockStmt
	ReturnType TypeExpr
}

func (*FnFunctionDecl) stmtNode() {}
func (*FnFunctionDecl) declNode() {}

// ClassField is one field declaration: `[static] Name[: Type] [= Init];`.
type ClassField struct {
	Name     string
	Type     TypeExpr
	Init     Expr
	Static   bool
	Readonly bool
}

// MethodKind distinguishes ordinary methods from accessors and the
// constructor.
type MethodKind string

const (
	MethodOrdinary    MethodKind = "method"
	MethodConstructor MethodKind = "constructor"
	MethodGetter      MethodKind = "get"
	MethodSetter      MethodKind = "set"
)

// ClassMethod is one method, accessor, or the constructor of a ClassDecl.
type ClassMethod struct {
	Name     string
	Kind     MethodKind
	Params   []Param
	Body     *BlockStmt
	Static   bool
	UsesThis bool
}

// ClassDecl is `class Name[extends Super] { Fields... Methods... }`.
type ClassDecl struct {
	Base
	Name    string
	Super   Expr // nil when there is no superclass
	Fields  []ClassField
	Methods []ClassMethod
}

func (*ClassDecl) stmtNode() {}
func (*ClassDecl) declNode() {}

// EnumMember is one case of an EnumDecl. Values, when non-nil, gives the
// associated-value expressions a case was constructed with (enums with
// any member carrying Values lower to a class + static factories rather
// than a frozen plain object — spec.md §4.6).
type EnumMember struct {
	Name   string
	Values []Expr
}

// EnumDecl is `enum Name { Members... }`.
type EnumDecl struct {
	Base
	Name    string
	Members []EnumMember
}

func (*EnumDecl) stmtNode() {}
func (*EnumDecl) declNode() {}

// HasAssociatedValues reports whether any member carries constructor
// arguments, which determines the emitter's lowering strategy for this
// enum (class+factories vs. Object.freeze record).
func (e *EnumDecl) HasAssociatedValues() bool {
	for _, m := range e.Members {
		if len(m.Values) > 0 {
			return true
		}
	}
	return false
}
