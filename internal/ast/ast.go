// Package ast defines the S-expression AST produced by the reader.
//
// There are exactly four node kinds, matching the data model: Symbol,
// Literal, List, and Vector. Every node carries a position; Vectors are
// syntactically and semantically distinct from Lists (binding forms and
// vector-style imports use Vector, function application and every other
// form uses List).
package ast

import (
	"fmt"
	"strings"

	"github.com/lisc-lang/lisc/internal/lexer"
)

// Node is the common interface implemented by every S-expression node.
type Node interface {
	// Pos returns the position of the node's opening token.
	Pos() lexer.Position
	// String renders the node back to source-like text, for debugging
	// and diagnostics.
	String() string
	sexprNode()
}

// GensymTag marks a Symbol as a hygienic, compiler-generated name. Name
// is the symbol's base text (e.g. "tmp"); ID distinguishes it from every
// other symbol sharing that base text within the compilation.
type GensymTag struct {
	ID int
}

// Symbol is an identifier or operator name. Name is never empty.
type Symbol struct {
	Name   string
	Gensym *GensymTag // non-nil for hygienically generated symbols
	P      lexer.Position
}

func (s *Symbol) sexprNode()        {}
func (s *Symbol) Pos() lexer.Position { return s.P }
func (s *Symbol) String() string {
	if s.Gensym != nil {
		return fmt.Sprintf("%s~%d", s.Name, s.Gensym.ID)
	}
	return s.Name
}

// IsGensym reports whether s was produced by the hygienic gensym operator.
func (s *Symbol) IsGensym() bool { return s.Gensym != nil }

// LiteralKind distinguishes the Go type stored in Literal.Value.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralBigInt
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal is a self-evaluating constant: number, string, bool, or null.
type Literal struct {
	Kind  LiteralKind
	Value any // float64 | string (bigint digits) | string | bool | nil
	P     lexer.Position
}

func (l *Literal) sexprNode()        {}
func (l *Literal) Pos() lexer.Position { return l.P }
func (l *Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return fmt.Sprintf("%q", l.Value)
	case LiteralNull:
		return "null"
	default:
		return fmt.Sprintf("%v", l.Value)
	}
}

// List is an ordered, parenthesized sequence of nodes. Lists may be
// empty (the node `()`).
type List struct {
	Items []Node
	P     lexer.Position
}

func (l *List) sexprNode()        {}
func (l *List) Pos() lexer.Position { return l.P }
func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Head returns the first item of the list, or nil if the list is empty.
func (l *List) Head() Node {
	if len(l.Items) == 0 {
		return nil
	}
	return l.Items[0]
}

// HeadSymbol returns the list's first item as a Symbol name, if it is one.
func (l *List) HeadSymbol() (string, bool) {
	sym, ok := l.Head().(*Symbol)
	if !ok {
		return "", false
	}
	return sym.Name, true
}

// Vector is a bracketed `[...]` sequence, syntactically distinct from
// List. Binding forms and vector-style imports use Vector.
type Vector struct {
	Items []Node
	P     lexer.Position
}

func (v *Vector) sexprNode()        {}
func (v *Vector) Pos() lexer.Position { return v.P }
func (v *Vector) String() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
