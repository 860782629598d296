package ir

// DeclExpr wraps a VariableDecl that was written where an expression
// was expected — the source language's "expression everywhere"
// property (spec.md §9) lets `(let x 1)` appear as a call argument, a
// binary operand, anything. The lowerer does not itself hoist; it
// simply records the declaration in place as a DeclExpr, and
// internal/emit's block-scope pre-scan (spec.md §4.8) is what lifts it
// to a `let` at the top of the enclosing block and rewrites the
// occurrence to the bare assignment expression `(x = init)`.
type DeclExpr struct {
	Base
	Decl *VariableDecl
}

func (*DeclExpr) exprNode() {}
