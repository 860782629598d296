package lower

import (
	"testing"

	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/ir"
	"github.com/lisc-lang/lisc/internal/parser"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// parseOneType parses typeExprSrc as a bare type expression and returns
// it lowered by lowerTypeExpr directly, bypassing lowerTypeDecl's erasure
// (it discards its result since type declarations never reach the IR tree).
func parseOneType(t *testing.T, typeExprSrc string) ir.TypeExpr {
	t.Helper()
	forms, err := parser.Parse("t.lisc", typeExprSrc)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	lw := New("t.lisc", runtimehelpers.NewUsage())
	te := lw.lowerTypeExpr(forms[0])
	if len(lw.Errors()) != 0 {
		t.Fatalf("unexpected lower errors: %v", lw.Errors())
	}
	return te
}

func TestLowerTypeReference(t *testing.T) {
	te := parseOneType(t, `number`)
	ref, ok := te.(*ir.TypeReference)
	if !ok || ref.Name != "number" {
		t.Fatalf("got %#v, want TypeReference number", te)
	}
}

func TestLowerTypeGenericReference(t *testing.T) {
	te := parseOneType(t, `(Array string)`)
	ref, ok := te.(*ir.TypeReference)
	if !ok || ref.Name != "Array" || len(ref.Args) != 1 {
		t.Fatalf("got %#v, want TypeReference Array[string]", te)
	}
}

func TestLowerUnionAndIntersectionTypes(t *testing.T) {
	te := parseOneType(t, `(| string number)`)
	u, ok := te.(*ir.UnionType)
	if !ok || len(u.Members) != 2 {
		t.Fatalf("got %#v, want UnionType of 2", te)
	}

	te = parseOneType(t, `(& Readable Writable)`)
	i, ok := te.(*ir.IntersectionType)
	if !ok || len(i.Members) != 2 {
		t.Fatalf("got %#v, want IntersectionType of 2", te)
	}
}

func TestLowerKeyofIndexedConditionalTypes(t *testing.T) {
	if _, ok := parseOneType(t, `(keyof Thing)`).(*ir.KeyofType); !ok {
		t.Error("want KeyofType")
	}
	if _, ok := parseOneType(t, `(indexed Thing key)`).(*ir.IndexedAccessType); !ok {
		t.Error("want IndexedAccessType")
	}
	ct, ok := parseOneType(t, `(if-extends T U Yes No)`).(*ir.ConditionalType)
	if !ok {
		t.Fatal("want ConditionalType")
	}
	if ct.Check == nil || ct.Extend == nil || ct.Then == nil || ct.Else == nil {
		t.Error("all four branches must be populated")
	}
}

func TestLowerTupleArrayMappedTypes(t *testing.T) {
	tup, ok := parseOneType(t, `(tuple number string)`).(*ir.TupleType)
	if !ok || len(tup.Elements) != 2 {
		t.Fatalf("got %#v, want TupleType of 2", tup)
	}
	arr, ok := parseOneType(t, `(array number)`).(*ir.ArrayTypeExpr)
	if !ok {
		t.Fatal("want ArrayTypeExpr")
	}
	if _, ok := arr.Element.(*ir.TypeReference); !ok {
		t.Error("element should lower to a TypeReference")
	}
	mapped, ok := parseOneType(t, `(mapped K Keys number)`).(*ir.MappedType)
	if !ok || mapped.Param != "K" {
		t.Fatalf("got %#v, want MappedType with Param K", mapped)
	}
}

func TestLowerReadonlyTypeofInferRestOptType(t *testing.T) {
	if _, ok := parseOneType(t, `(readonly Thing)`).(*ir.ReadonlyType); !ok {
		t.Error("want ReadonlyType")
	}
	if _, ok := parseOneType(t, `(typeof x)`).(*ir.TypeofType); !ok {
		t.Error("want TypeofType")
	}
	inf, ok := parseOneType(t, `(infer R)`).(*ir.InferType)
	if !ok || inf.Name != "R" {
		t.Fatalf("got %#v, want InferType R", inf)
	}
	if _, ok := parseOneType(t, `(rest number)`).(*ir.RestType); !ok {
		t.Error("want RestType")
	}
	if _, ok := parseOneType(t, `(opt-type number)`).(*ir.OptionalType); !ok {
		t.Error("want OptionalType")
	}
}

func TestLowerFunctionType(t *testing.T) {
	ft, ok := parseOneType(t, `(-> [number string] boolean)`).(*ir.FunctionType)
	if !ok {
		t.Fatalf("got %#v, want FunctionType", ft)
	}
	if len(ft.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(ft.Params))
	}
	if ft.Params[0].Name != "a" || ft.Params[1].Name != "b" {
		t.Errorf("synthesized param names = %q, %q; want a, b", ft.Params[0].Name, ft.Params[1].Name)
	}
}

func TestLowerLiteralType(t *testing.T) {
	lt, ok := parseOneType(t, `"exact"`).(*ir.LiteralType)
	if !ok {
		t.Fatalf("got %#v, want LiteralType", lt)
	}
	if lt.Value != "exact" {
		t.Errorf("value = %#v, want \"exact\"", lt.Value)
	}
}

func TestLowerTypeDeclRejectsMissingExpr(t *testing.T) {
	forms, err := parser.Parse("t.lisc", `(type Foo)`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	lw := New("t.lisc", runtimehelpers.NewUsage())
	lw.lowerTypeDecl(forms[0].(*ast.List))
	if len(lw.Errors()) == 0 {
		t.Fatal("expected a lower error for a type decl with no expression")
	}
}

func TestLowerInterfaceDeclFields(t *testing.T) {
	forms, err := parser.Parse("t.lisc", `(interface Shaped (extends Base) (field area number))`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	lw := New("t.lisc", runtimehelpers.NewUsage())
	lw.lowerTypeDecl(forms[0].(*ast.List))
	if len(lw.Errors()) != 0 {
		t.Fatalf("unexpected lower errors: %v", lw.Errors())
	}
}
