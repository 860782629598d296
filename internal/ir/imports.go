package ir

// ImportSpecifier is one named binding of an ImportDecl: `Imported as
// Local`. Local == Imported except where the source uses `as alias`.
type ImportSpecifier struct {
	Imported string
	Local    string
}

// ImportDecl is a static `import { ... } from "Source"` or, when
// Namespace is set, `import * as Namespace from "Source"`. Dynamic is
// true for a module that must resolve at runtime (`import("Source")`)
// rather than compile time.
type ImportDecl struct {
	Base
	Specifiers []ImportSpecifier
	Namespace  string // "" unless this is a namespace-binding import
	Source     string
	Dynamic    bool
}

func (*ImportDecl) stmtNode() {}
func (*ImportDecl) declNode() {}

// ExportSpecifier names an existing binding to re-export.
type ExportSpecifier struct {
	Local    string
	Exported string
}

// ExportDecl is either `export { Specifiers... }` (re-exporting existing
// bindings) or, when Name is non-empty, `export const Name = Value` —
// the lowering of `(export "name" expr)`.
type ExportDecl struct {
	Base
	Specifiers []ExportSpecifier
	Name       string
	Value      Expr
	Dynamic    bool
}

func (*ExportDecl) stmtNode() {}
func (*ExportDecl) declNode() {}
