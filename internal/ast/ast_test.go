package ast

import (
	"testing"

	"github.com/lisc-lang/lisc/internal/lexer"
)

func TestSymbolString(t *testing.T) {
	s := &Symbol{Name: "foo", P: lexer.Position{Line: 1, Column: 1}}
	if s.String() != "foo" {
		t.Errorf("got %q", s.String())
	}

	g := &Symbol{Name: "tmp", Gensym: &GensymTag{ID: 3}}
	if g.String() != "tmp~3" {
		t.Errorf("got %q", g.String())
	}
	if !g.IsGensym() {
		t.Error("expected IsGensym")
	}
	if s.IsGensym() {
		t.Error("did not expect IsGensym")
	}
}

func TestListHeadSymbol(t *testing.T) {
	l := &List{Items: []Node{
		&Symbol{Name: "fn"},
		&Symbol{Name: "add"},
	}}
	name, ok := l.HeadSymbol()
	if !ok || name != "fn" {
		t.Fatalf("got (%q, %v)", name, ok)
	}

	empty := &List{}
	if empty.Head() != nil {
		t.Error("expected nil head for empty list")
	}
	if _, ok := empty.HeadSymbol(); ok {
		t.Error("expected no head symbol for empty list")
	}
}

func TestVectorString(t *testing.T) {
	v := &Vector{Items: []Node{&Symbol{Name: "a"}, &Symbol{Name: "b"}}}
	if v.String() != "[a b]" {
		t.Errorf("got %q", v.String())
	}
}

func TestLiteralString(t *testing.T) {
	lit := &Literal{Kind: LiteralString, Value: "hi"}
	if lit.String() != `"hi"` {
		t.Errorf("got %q", lit.String())
	}
	n := &Literal{Kind: LiteralNull}
	if n.String() != "null" {
		t.Errorf("got %q", n.String())
	}
}
