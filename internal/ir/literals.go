package ir

// StringLiteral is a string constant.
type StringLiteral struct {
	Base
	Value string
}

func (*StringLiteral) exprNode() {}

// NumberLiteral is a float64-representable numeric constant.
type NumberLiteral struct {
	Base
	Value float64
}

func (*NumberLiteral) exprNode() {}

// BigIntLiteral is an arbitrary-precision integer constant, emitted with
// a trailing `n` suffix in TypeScript.
type BigIntLiteral struct {
	Base
	Digits string
}

func (*BigIntLiteral) exprNode() {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Base
	Value bool
}

func (*BoolLiteral) exprNode() {}

// NullLiteral is `null`.
type NullLiteral struct {
	Base
}

func (*NullLiteral) exprNode() {}

// TemplateLiteral is a template string with interleaved static text
// (Quasis) and interpolated expressions (Exprs); len(Quasis) == len(Exprs)+1.
type TemplateLiteral struct {
	Base
	Quasis []string
	Exprs  []Expr
}

func (*TemplateLiteral) exprNode() {}
