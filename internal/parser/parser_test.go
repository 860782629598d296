package parser

import (
	"testing"

	"github.com/lisc-lang/lisc/internal/ast"
)

func TestParseSimpleCall(t *testing.T) {
	forms, err := Parse("t.lisc", "(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("got %d forms, want 1", len(forms))
	}
	list, ok := forms[0].(*ast.List)
	if !ok {
		t.Fatalf("got %T, want *ast.List", forms[0])
	}
	if name, _ := list.HeadSymbol(); name != "+" {
		t.Errorf("head = %q, want +", name)
	}
	if len(list.Items) != 3 {
		t.Errorf("got %d items, want 3", len(list.Items))
	}
}

func TestParseVectorAndMapLiteral(t *testing.T) {
	forms, err := Parse("t.lisc", `(fn add [a b] (+ a b)) {a 1 b 2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("got %d forms, want 2", len(forms))
	}

	fnList := forms[0].(*ast.List)
	if _, ok := fnList.Items[2].(*ast.Vector); !ok {
		t.Errorf("param list should be a Vector, got %T", fnList.Items[2])
	}

	mapList, ok := forms[1].(*ast.List)
	if !ok {
		t.Fatalf("map literal did not desugar to a List: %T", forms[1])
	}
	if name, _ := mapList.HeadSymbol(); name != "hash-map" {
		t.Errorf("head = %q, want hash-map", name)
	}
	if len(mapList.Items) != 5 { // hash-map + 2 keys + 2 values
		t.Errorf("got %d items, want 5", len(mapList.Items))
	}
}

func TestParseQuoteForms(t *testing.T) {
	forms, err := Parse("t.lisc", "`(+ ,@nums)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer := forms[0].(*ast.List)
	if name, _ := outer.HeadSymbol(); name != "quasiquote" {
		t.Fatalf("head = %q, want quasiquote", name)
	}
}

func TestParseUnbalancedDelimiter(t *testing.T) {
	_, err := Parse("t.lisc", "(foo (bar)")
	if err == nil {
		t.Fatal("expected an unbalanced-delimiter error")
	}
	pe, ok := err.(*ParserError)
	if !ok || pe.Code != ErrUnbalancedDelimiter {
		t.Fatalf("got %#v, want ErrUnbalancedDelimiter", err)
	}
}

func TestValidateImportExport(t *testing.T) {
	forms, err := Parse("t.lisc", `
		(import [a, b as c] from "./mod")
		(import ns from "./other")
		(export [a b])
		(export "name" 1)
	`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if errs := ValidateImportExport(forms); len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
}

func TestValidateImportExportRejectsBadForms(t *testing.T) {
	forms, err := Parse("t.lisc", `(export "re-export" from "./mod")`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	errs := ValidateImportExport(forms)
	if len(errs) == 0 {
		t.Fatal("expected a validation error for string-based re-export form")
	}
}

func TestParseIntegerBases(t *testing.T) {
	cases := map[string]float64{
		"10":     10,
		"$ff":    255,
		"0x2a":   42,
		"0b1010": 10,
		"#1010":  10,
	}
	for src, want := range cases {
		forms, err := Parse("t.lisc", src)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", src, err)
		}
		lit := forms[0].(*ast.Literal)
		if lit.Value.(float64) != want {
			t.Errorf("%q: got %v, want %v", src, lit.Value, want)
		}
	}
}
