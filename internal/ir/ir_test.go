package ir

import (
	"testing"

	"github.com/lisc-lang/lisc/internal/lexer"
)

func pos(line, col int) lexer.Position { return lexer.Position{Line: line, Column: col} }

func TestIdentifierDisplayName(t *testing.T) {
	id := &Identifier{Name: "a_1", OriginalName: "a-1"}
	if id.DisplayName() != "a-1" {
		t.Errorf("got %q, want a-1", id.DisplayName())
	}
	plain := &Identifier{Name: "x"}
	if plain.DisplayName() != "x" {
		t.Errorf("got %q, want x", plain.DisplayName())
	}
}

func TestEnumHasAssociatedValues(t *testing.T) {
	plain := &EnumDecl{Members: []EnumMember{{Name: "Red"}, {Name: "Blue"}}}
	if plain.HasAssociatedValues() {
		t.Error("plain enum should not report associated values")
	}

	withValues := &EnumDecl{Members: []EnumMember{
		{Name: "Circle", Values: []Expr{&NumberLiteral{Value: 1}}},
	}}
	if !withValues.HasAssociatedValues() {
		t.Error("enum with a Values-bearing member should report associated values")
	}
}

func TestNodesCarryPosition(t *testing.T) {
	var n Node = &BinaryExpr{Base: Base{P: pos(4, 2)}, Op: "+"}
	if n.Pos().Line != 4 || n.Pos().Column != 2 {
		t.Errorf("got %+v", n.Pos())
	}
}

func TestExprStmtDeclInterfaceSatisfaction(t *testing.T) {
	var _ Expr = &CallExpr{}
	var _ Stmt = &IfStmt{}
	var _ Decl = &FnFunctionDecl{}
	var _ Pattern = &ArrayPattern{}
	var _ TypeExpr = &UnionType{}
}
