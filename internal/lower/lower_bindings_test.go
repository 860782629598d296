package lower

import (
	"testing"

	"github.com/lisc-lang/lisc/internal/ir"
)

func TestLowerLetConstVarKinds(t *testing.T) {
	cases := []struct {
		src  string
		kind ir.VarKind
	}{
		{`(let x 1)`, ir.VarLet},
		{`(const x 1)`, ir.VarConst},
		{`(var x 1)`, ir.VarVar},
		{`(def x 1)`, ir.VarConst},
	}
	for _, c := range cases {
		stmts := expectNoLowerErrors(t, c.src)
		decl, ok := stmts[0].(*ir.VariableDecl)
		if !ok {
			t.Fatalf("%s: got %T, want *ir.VariableDecl", c.src, stmts[0])
		}
		if decl.Kind != c.kind {
			t.Errorf("%s: kind = %v, want %v", c.src, decl.Kind, c.kind)
		}
	}
}

func TestLowerBindingWithoutInit(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(let x)`)
	decl := stmts[0].(*ir.VariableDecl)
	if decl.Declarators[0].Init != nil {
		t.Error("init should be nil for an uninitialized binding")
	}
}

func TestLowerBindingMissingTargetIsError(t *testing.T) {
	expectLowerError(t, `(let)`)
}

func TestLowerArrayPatternWithDefaults(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(let [a (b 2)] [1])`)
	decl := stmts[0].(*ir.VariableDecl)
	pat, ok := decl.Declarators[0].Name.(*ir.ArrayPattern)
	if !ok {
		t.Fatalf("got %T, want *ir.ArrayPattern", decl.Declarators[0].Name)
	}
	if len(pat.Elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(pat.Elements))
	}
	if pat.Elements[1].Default == nil {
		t.Error("second element should carry a default")
	}
}

func TestLowerArrayPatternWithRest(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(let [a & rest] [1 2 3])`)
	decl := stmts[0].(*ir.VariableDecl)
	pat := decl.Declarators[0].Name.(*ir.ArrayPattern)
	if pat.Rest == nil {
		t.Fatal("expected a rest element")
	}
	id, ok := pat.Rest.Target.(*ir.Identifier)
	if !ok || id.Name != "rest" {
		t.Errorf("rest target = %#v, want Identifier rest", pat.Rest.Target)
	}
}

func TestLowerBindingRegistersNameInScope(t *testing.T) {
	// Referencing a previously let-bound name should resolve as a plain
	// Identifier rather than, e.g., a first-class operator lookup; this
	// is only directly observable for operator-shaped names, but a
	// binding named `and` is deliberately the sharpest test of it.
	stmts := expectNoLowerErrors(t, `(let and true) and`)
	es := stmts[1].(*ir.ExpressionStmt)
	if _, ok := es.Expr.(*ir.Identifier); !ok {
		t.Fatalf("got %T, want *ir.Identifier (bound local, not getOp)", es.Expr)
	}
}
