package lower

import (
	"testing"

	"github.com/lisc-lang/lisc/internal/ir"
)

func TestLowerClassDeclBasic(t *testing.T) {
	stmts := expectNoLowerErrors(t, `
		(class Point
		  (field x)
		  (field y 0)
		  (constructor [x y] (set! (prop this x) x))
		  (method dist [] (prop this x)))
	`)
	decl, ok := stmts[0].(*ir.ClassDecl)
	if !ok {
		t.Fatalf("got %T, want *ir.ClassDecl", stmts[0])
	}
	if decl.Name != "Point" {
		t.Errorf("name = %q, want Point", decl.Name)
	}
	if len(decl.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(decl.Fields))
	}
	if decl.Fields[1].Init == nil {
		t.Error("field y should have an initializer")
	}
	if len(decl.Methods) != 2 {
		t.Fatalf("got %d methods, want 2 (constructor + dist)", len(decl.Methods))
	}
	ctor := decl.Methods[0]
	if ctor.Kind != ir.MethodConstructor {
		t.Errorf("first method kind = %v, want MethodConstructor", ctor.Kind)
	}
	dist := decl.Methods[1]
	if dist.Name != "dist" || !dist.UsesThis {
		t.Errorf("got %#v, want method dist using this", dist)
	}
}

func TestLowerClassExtends(t *testing.T) {
	stmts := expectNoLowerErrors(t, `
		(class Base (field v))
		(class Derived (extends Base) (constructor [] 0))
	`)
	decl := stmts[1].(*ir.ClassDecl)
	sup, ok := decl.Super.(*ir.Identifier)
	if !ok || sup.Name != "Base" {
		t.Fatalf("super = %#v, want Identifier Base", decl.Super)
	}
}

func TestLowerClassStaticAndReadonlyFields(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(class C (static-field count 0) (readonly-field id))`)
	decl := stmts[0].(*ir.ClassDecl)
	if !decl.Fields[0].Static {
		t.Error("count should be static")
	}
	if !decl.Fields[1].Readonly {
		t.Error("id should be readonly")
	}
}

func TestLowerClassGetSet(t *testing.T) {
	stmts := expectNoLowerErrors(t, `
		(class C
		  (field v 0)
		  (get value [] (prop this v))
		  (set value [x] (set! (prop this v) x)))
	`)
	decl := stmts[0].(*ir.ClassDecl)
	if decl.Methods[0].Kind != ir.MethodGetter {
		t.Errorf("got %v, want MethodGetter", decl.Methods[0].Kind)
	}
	if decl.Methods[1].Kind != ir.MethodSetter {
		t.Errorf("got %v, want MethodSetter", decl.Methods[1].Kind)
	}
}

func TestLowerClassStaticMethod(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(class C (static-method make [] 1))`)
	decl := stmts[0].(*ir.ClassDecl)
	if !decl.Methods[0].Static {
		t.Error("make should be static")
	}
}

func TestLowerClassUnknownMemberIsError(t *testing.T) {
	expectLowerError(t, `(class C (bogus 1))`)
}

func TestLowerEnumWithoutAssociatedValues(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(enum Color (case Red) (case Green) (case Blue))`)
	decl, ok := stmts[0].(*ir.EnumDecl)
	if !ok {
		t.Fatalf("got %T, want *ir.EnumDecl", stmts[0])
	}
	if len(decl.Members) != 3 {
		t.Fatalf("got %d members, want 3", len(decl.Members))
	}
	if decl.HasAssociatedValues() {
		t.Error("HasAssociatedValues() = true, want false")
	}
}

func TestLowerEnumWithAssociatedValues(t *testing.T) {
	stmts := expectNoLowerErrors(t, `(enum Shape (case Circle radius) (case Rect w h))`)
	decl := stmts[0].(*ir.EnumDecl)
	if !decl.HasAssociatedValues() {
		t.Error("HasAssociatedValues() = false, want true")
	}
	if len(decl.Members[0].Values) != 1 || len(decl.Members[1].Values) != 2 {
		t.Fatalf("got %#v", decl.Members)
	}
}

func TestLowerEnumMissingNameIsError(t *testing.T) {
	expectLowerError(t, `(enum)`)
}
