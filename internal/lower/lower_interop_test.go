package lower

import (
	"testing"

	"github.com/lisc-lang/lisc/internal/ir"
)

func TestLowerIget(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(iget obj "key")`)
	es := stmts[0].(*ir.ExpressionStmt)
	get, ok := es.Expr.(*ir.InteropGetExpr)
	if !ok {
		t.Fatalf("got %T, want *ir.InteropGetExpr", es.Expr)
	}
	if get.Default != nil {
		t.Error("default should be nil when not given")
	}
}

func TestLowerIgetWithDefault(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(iget obj "key" 0)`)
	es := stmts[0].(*ir.ExpressionStmt)
	get := es.Expr.(*ir.InteropGetExpr)
	if get.Default == nil {
		t.Fatal("default should be populated")
	}
}

func TestLowerImaybe(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(imaybe obj length)`)
	es := stmts[0].(*ir.ExpressionStmt)
	m, ok := es.Expr.(*ir.InteropMaybeMethodExpr)
	if !ok || m.Member != "length" {
		t.Fatalf("got %#v, want InteropMaybeMethodExpr Member=length", es.Expr)
	}
}

func TestLowerIcall(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(icall obj "push" 1 2)`)
	es := stmts[0].(*ir.ExpressionStmt)
	c, ok := es.Expr.(*ir.InteropCallExpr)
	if !ok {
		t.Fatalf("got %T, want *ir.InteropCallExpr", es.Expr)
	}
	if len(c.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(c.Args))
	}
}

func TestLowerIgetMissingKeyIsError(t *testing.T) {
	expectLowerError(t, `(iget obj)`)
}

func TestLowerImaybeWrongArityIsError(t *testing.T) {
	expectLowerError(t, `(imaybe obj)`)
}
