package optimize

import (
	"testing"

	"github.com/lisc-lang/lisc/internal/ir"
	"github.com/lisc-lang/lisc/internal/parser"
	"github.com/lisc-lang/lisc/internal/lower"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// lowerSource parses and lowers source, failing the test on any error —
// the same shape internal/lower's own tests use, reused here so the
// optimizer is exercised against real lowerer output instead of
// hand-built IR literals.
func lowerSource(t *testing.T, source string) []ir.Stmt {
	t.Helper()
	forms, err := parser.Parse("t.lisc", source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	lw := lower.New("t.lisc", runtimehelpers.NewUsage())
	stmts := lw.LowerProgram(forms)
	if errs := lw.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected lower errors for %q: %v", source, errs)
	}
	return stmts
}

func fnDecl(t *testing.T, stmts []ir.Stmt, name string) *ir.FnFunctionDecl {
	t.Helper()
	for _, s := range stmts {
		if d, ok := s.(*ir.FnFunctionDecl); ok && d.Name == name {
			return d
		}
	}
	t.Fatalf("no fn decl named %q in %#v", name, stmts)
	return nil
}

func TestOptimizeRewritesSelfTailRecursion(t *testing.T) {
	stmts := lowerSource(t, `(fn count [n acc] (return (if (= n 0) acc (count (- n 1) (+ acc 1)))))`)
	usage := runtimehelpers.NewUsage()
	changed := New(usage).Optimize(stmts)
	if !changed {
		t.Fatal("expected Optimize to report a change")
	}
	decl := fnDecl(t, stmts, "count")
	body := decl.Body
	if body == nil || len(body.Stmts) != 1 {
		t.Fatalf("got %#v, want a single-statement block", decl.Body)
	}
	if _, ok := body.Stmts[0].(*ir.WhileStmt); !ok {
		t.Fatalf("got %T, want *ir.WhileStmt wrapping the rewritten body", body.Stmts[0])
	}
}

func TestOptimizeLeavesNonTailSelfCallUntouched(t *testing.T) {
	stmts := lowerSource(t, `(fn fact [n] (return (if (= n 0) 1 (* n (fact (- n 1))))))`)
	usage := runtimehelpers.NewUsage()
	changed := New(usage).Optimize(stmts)
	if changed {
		t.Fatal("expected Optimize to report no change for a non-tail self-call")
	}
	decl := fnDecl(t, stmts, "fact")
	body := decl.Body
	if _, ok := body.Stmts[0].(*ir.WhileStmt); ok {
		t.Fatal("fact's body should not have been wrapped in a while loop")
	}
}

func TestOptimizeRewritesMutualTailRecursion(t *testing.T) {
	stmts := lowerSource(t, `
(fn is-even [n] (return (if (= n 0) true (is-odd (- n 1)))))
(fn is-odd [n] (return (if (= n 0) false (is-even (- n 1)))))
(is-even 10)
`)
	usage := runtimehelpers.NewUsage()
	changed := New(usage).Optimize(stmts)
	if !changed {
		t.Fatal("expected Optimize to report a change for a mutual-recursion pair")
	}
	if usage.Count(runtimehelpers.Trampoline) == 0 {
		t.Error("expected the trampoline helper to be marked as used")
	}

	isEven := fnDecl(t, stmts, "is_even")
	body := isEven.Body
	ret, ok := body.Stmts[0].(*ir.ReturnStmt)
	if !ok {
		t.Fatalf("got %T, want *ir.ReturnStmt", body.Stmts[0])
	}
	cond, ok := ret.Value.(*ir.ConditionalExpr)
	if !ok {
		t.Fatalf("got %T, want *ir.ConditionalExpr", ret.Value)
	}
	if _, ok := cond.Alt.(*ir.FunctionExpr); !ok {
		t.Fatalf("got %T, want the cross-member tail call rewritten to a thunk", cond.Alt)
	}
}

func TestOptimizeWrapsTopLevelCallIntoMutualRecursionGroup(t *testing.T) {
	stmts := lowerSource(t, `
(fn is-even [n] (return (if (= n 0) true (is-odd (- n 1)))))
(fn is-odd [n] (return (if (= n 0) false (is-even (- n 1)))))
(is-even 10000)
`)
	usage := runtimehelpers.NewUsage()
	New(usage).Optimize(stmts)

	es, ok := stmts[len(stmts)-1].(*ir.ExpressionStmt)
	if !ok {
		t.Fatalf("got %T, want *ir.ExpressionStmt for the top-level call", stmts[len(stmts)-1])
	}
	call, ok := es.Expr.(*ir.CallExpr)
	if !ok {
		t.Fatalf("got %T, want the top-level call wrapped in a trampoline(...) call", es.Expr)
	}
	callee, ok := call.Callee.(*ir.Identifier)
	if !ok || callee.Name != "trampoline" {
		t.Fatalf("got callee %#v, want the trampoline helper", call.Callee)
	}
	if len(call.Args) != 1 {
		t.Fatalf("got %d args, want a single thunk argument", len(call.Args))
	}
	thunk, ok := call.Args[0].(*ir.FunctionExpr)
	if !ok {
		t.Fatalf("got %T, want the original call wrapped as a zero-arg thunk", call.Args[0])
	}
	inner, ok := thunk.Body.(*ir.CallExpr)
	if !ok {
		t.Fatalf("got %T, want the thunk body to still be the original call", thunk.Body)
	}
	if innerCallee, ok := inner.Callee.(*ir.Identifier); !ok || innerCallee.Name != "is_even" {
		t.Fatalf("got %#v, want the thunk to still call is_even", inner.Callee)
	}
}

func TestOptimizeLeavesUnrelatedFunctionsUntouched(t *testing.T) {
	stmts := lowerSource(t, `(fn add [a b] (return (+ a b)))`)
	usage := runtimehelpers.NewUsage()
	changed := New(usage).Optimize(stmts)
	if changed {
		t.Fatal("expected Optimize to report no change for a non-recursive function")
	}
}

func TestWithOptimizationPassDisablesSelfTCO(t *testing.T) {
	stmts := lowerSource(t, `(fn count [n acc] (return (if (= n 0) acc (count (- n 1) (+ acc 1)))))`)
	usage := runtimehelpers.NewUsage()
	changed := New(usage, WithOptimizationPass(PassSelfTCO, false)).Optimize(stmts)
	if changed {
		t.Fatal("expected no change once PassSelfTCO is disabled")
	}
	decl := fnDecl(t, stmts, "count")
	body := decl.Body
	if _, ok := body.Stmts[0].(*ir.WhileStmt); ok {
		t.Fatal("self-TCO rewrite ran despite being disabled")
	}
}

func TestWithOptimizationPassDisablesMutualTCO(t *testing.T) {
	stmts := lowerSource(t, `
(fn is-even [n] (return (if (= n 0) true (is-odd (- n 1)))))
(fn is-odd [n] (return (if (= n 0) false (is-even (- n 1)))))
`)
	usage := runtimehelpers.NewUsage()
	changed := New(usage, WithOptimizationPass(PassMutualTCO, false)).Optimize(stmts)
	if changed {
		t.Fatal("expected no change once PassMutualTCO is disabled")
	}
	if usage.Count(runtimehelpers.Trampoline) != 0 {
		t.Error("trampoline helper should not be marked when PassMutualTCO is disabled")
	}
}
