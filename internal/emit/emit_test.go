package emit

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/lisc-lang/lisc/internal/lower"
	"github.com/lisc-lang/lisc/internal/optimize"
	"github.com/lisc-lang/lisc/internal/parser"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// compile parses, lowers, and optimizes source, then emits it, failing
// the test on any error along the way — the same lower-then-assert shape
// internal/optimize's own tests use, extended one stage further.
func compile(t *testing.T, source string) Result {
	t.Helper()
	forms, err := parser.Parse("t.lisc", source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	usage := runtimehelpers.NewUsage()
	lw := lower.New("t.lisc", usage)
	stmts := lw.LowerProgram(forms)
	if errs := lw.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected lower errors for %q: %v", source, errs)
	}
	optimize.New(usage).Optimize(stmts)
	res, err := New(usage).EmitProgram(stmts)
	if err != nil {
		t.Fatalf("unexpected emit error: %v", err)
	}
	return res
}

func TestEmitPrecedenceParenthesization(t *testing.T) {
	res := compile(t, `(fn f [a b c] (return (* (+ a b) c)))`)
	snaps.MatchSnapshot(t, "precedence_additive_under_multiplicative", res.Code)
}

func TestEmitNoRedundantParens(t *testing.T) {
	res := compile(t, `(fn f [a b c] (return (+ a (* b c))))`)
	snaps.MatchSnapshot(t, "precedence_no_redundant_parens", res.Code)
}

func TestEmitArrowParenthesizedInsideLogical(t *testing.T) {
	res := compile(t, `(fn f [xs] (return (or xs (lambda [] 1))))`)
	snaps.MatchSnapshot(t, "arrow_inside_logical_parenthesized", res.Code)
}

func TestEmitHoistsDeclExprInExpressionPosition(t *testing.T) {
	res := compile(t, `(fn f [xs] (return (+ 1 (let y (* 2 2)) y)))`)
	snaps.MatchSnapshot(t, "hoisted_decl_expr", res.Code)
}

func TestEmitTopLevelHoistOfDeclExpr(t *testing.T) {
	res := compile(t, `(+ 1 (let x 1))`)
	snaps.MatchSnapshot(t, "top_level_hoist", res.Code)
}

func TestEmitJSONMapParameterPrologue(t *testing.T) {
	res := compile(t, `(fn-kw greet [(opt name "world") (opt times 1)] (return name))`)
	snaps.MatchSnapshot(t, "json_map_prologue", res.Code)
}

func TestEmitEnumWithoutAssociatedValues(t *testing.T) {
	res := compile(t, `(enum Color (case Red) (case Green) (case Blue))`)
	snaps.MatchSnapshot(t, "enum_plain", res.Code)
}

func TestEmitEnumWithAssociatedValues(t *testing.T) {
	res := compile(t, `(enum Shape (case Circle r) (case Square side))`)
	snaps.MatchSnapshot(t, "enum_with_values", res.Code)
}

func TestEmitInteropGetMarksDynamicGetHelper(t *testing.T) {
	res := compile(t, `(fn f [o] (return (iget o "x")))`)
	if res.RuntimeImport == "" {
		t.Fatal("expected a runtime import for dynamicGet")
	}
	found := false
	for _, h := range res.UsedHelpers {
		if h == string(runtimehelpers.DynamicGet) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected dynamic-get marked, got %v", res.UsedHelpers)
	}
	snaps.MatchSnapshot(t, "interop_get", res.Code)
}

func TestEmitInteropCallMarksDynamicCallHelper(t *testing.T) {
	res := compile(t, `(fn f [o] (return (icall o "m" 1 2)))`)
	found := false
	for _, h := range res.UsedHelpers {
		if h == string(runtimehelpers.DynamicCall) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected dynamic-call marked, got %v", res.UsedHelpers)
	}
	snaps.MatchSnapshot(t, "interop_call", res.Code)
}

func TestEmitMutualTCOThunkTaggedForTrampoline(t *testing.T) {
	res := compile(t, `
(fn is-even [n] (return (if (= n 0) true (is-odd (- n 1)))))
(fn is-odd [n] (return (if (= n 0) false (is-even (- n 1)))))
`)
	if !strings.Contains(res.Code, "__isTrampolineThunk") {
		t.Fatalf("expected a tagged trampoline thunk in output, got:\n%s", res.Code)
	}
	found := false
	for _, h := range res.UsedHelpers {
		if h == string(runtimehelpers.Trampoline) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected trampoline marked, got %v", res.UsedHelpers)
	}
	snaps.MatchSnapshot(t, "mutual_tco_thunk_tagged", res.Code)
}

func TestEmitBuiltinHelperFormsRouteThroughRoster(t *testing.T) {
	res := compile(t, `(fn f [] (return (range 0 10 1)))`)
	found := false
	for _, h := range res.UsedHelpers {
		if h == string(runtimehelpers.Range) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected range marked, got %v", res.UsedHelpers)
	}
	snaps.MatchSnapshot(t, "builtin_range_call", res.Code)
}
