// Package ir defines the typed intermediate representation the lowerer
// produces and the emitter consumes. IR nodes are produced exclusively
// by internal/lower; the optimizer (internal/optimize) rewrites specific
// tail positions in place but never introduces a node kind not already
// in this package, and the emitter (internal/emit) walks the tree
// read-only.
package ir

import "github.com/lisc-lang/lisc/internal/lexer"

// Node is implemented by every IR node. Pos always comes from the
// source symbol the node was lowered from (invariant i in spec.md §3).
type Node interface {
	Pos() lexer.Position
	irNode()
}

// Expr is any IR node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any IR node that performs an action without itself being a value.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a top-level or block-level declaration. Declarations are also
// Stmts: they can appear anywhere a statement can. Only a VariableDecl
// reaches expression position, wrapped in a DeclExpr that the emitter
// hoists; function, class and enum declarations are emitted as
// statements only.
type Decl interface {
	Stmt
	declNode()
}

// Pattern is a destructuring target: array, object, rest, or default.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is a type-position node, erased from emitted runtime output
// (invariant v in spec.md §3) but retained for the hoisted-declaration
// type-annotation policy in spec.md §4.8.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Base carries the position every node embeds.
type Base struct {
	P lexer.Position
}

func (b Base) Pos() lexer.Position { return b.P }
func (Base) irNode()               {}
