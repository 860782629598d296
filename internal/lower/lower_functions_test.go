package lower

import (
	"testing"

	"github.com/lisc-lang/lisc/internal/ir"
)

func TestLowerFnDeclBasic(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(fn add [a b] (+ a b))`)
	decl, ok := stmts[0].(*ir.FnFunctionDecl)
	if !ok {
		t.Fatalf("got %T, want *ir.FnFunctionDecl", stmts[0])
	}
	if decl.Name != "add" || len(decl.Params) != 2 || decl.JSONMap {
		t.Fatalf("got %#v", decl)
	}
}

func TestLowerFnKwIsJSONMap(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(fn-kw greet [name] (+ "hi " name))`)
	decl := stmts[0].(*ir.FnFunctionDecl)
	if !decl.JSONMap {
		t.Error("JSONMap = false, want true for fn-kw")
	}
}

func TestLowerParamForms(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(fn f [a (opt b 1) (typed c number) (typed-opt d number 2) & rest] a)`)
	decl := stmts[0].(*ir.FnFunctionDecl)
	if len(decl.Params) != 5 {
		t.Fatalf("got %d params, want 5", len(decl.Params))
	}
	if decl.Params[1].Default == nil {
		t.Error("param b should have a default")
	}
	if decl.Params[2].Type == nil {
		t.Error("param c should be typed")
	}
	if decl.Params[3].Default == nil || decl.Params[3].Type == nil {
		t.Error("param d should be typed with a default")
	}
	if !decl.Params[4].Rest {
		t.Error("last param should be a rest parameter")
	}
}

func TestLowerParamDestructuring(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(fn f [[a b]] a)`)
	decl := stmts[0].(*ir.FnFunctionDecl)
	if _, ok := decl.Params[0].Name.(*ir.ArrayPattern); !ok {
		t.Fatalf("got %T, want *ir.ArrayPattern", decl.Params[0].Name)
	}
}

func TestLowerLambdaNotUsingThis(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(lambda [x] (+ x 1))`)
	es := stmts[0].(*ir.ExpressionStmt)
	fn, ok := es.Expr.(*ir.FunctionExpr)
	if !ok {
		t.Fatalf("got %T, want *ir.FunctionExpr", es.Expr)
	}
	if fn.UsesThis {
		t.Error("UsesThis = true, want false")
	}
}

func TestLowerLambdaUsingThisIsDetected(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(lambda [] (prop this field))`)
	es := stmts[0].(*ir.ExpressionStmt)
	fn := es.Expr.(*ir.FunctionExpr)
	if !fn.UsesThis {
		t.Error("UsesThis = false, want true")
	}
}

func TestLowerLambdaThisDetectionStopsAtNestedFunctionBoundary(t *testing.T) {
	// The outer lambda never references `this` itself; it is the
	// nested lambda that does, which must not leak the flag outward.
	stmts := expectNoLowerErrors(t, `(lambda [] (lambda [] (prop this field)))`)
	es := stmts[0].(*ir.ExpressionStmt)
	outer := es.Expr.(*ir.FunctionExpr)
	if outer.UsesThis {
		t.Error("outer.UsesThis = true, want false (this belongs to the nested lambda)")
	}
	inner := outer.Body.(*ir.BlockStmt).Stmts[0].(*ir.ExpressionStmt).Expr.(*ir.FunctionExpr)
	if !inner.UsesThis {
		t.Error("inner.UsesThis = false, want true")
	}
}

func TestLowerFnDeclMissingParamsIsError(t *testing.T) {
	expectLowerError(t, `(fn f)`)
}

func TestLowerFnParamsBoundInBody(t *testing.T) {
	// A parameter is visible as a local inside the body, not a free
	// reference to an outer binding of the same name.
	stmts := expectNoLowerErrors(t, `(let a 1) (fn f [a] a)`)
	decl := stmts[1].(*ir.FnFunctionDecl)
	body := decl.Body
	last := body.Stmts[len(body.Stmts)-1].(*ir.ExpressionStmt)
	id := last.Expr.(*ir.Identifier)
	if id.Name != "a" {
		t.Errorf("name = %q, want a", id.Name)
	}
}
