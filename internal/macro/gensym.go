package macro

import "github.com/lisc-lang/lisc/internal/ast"

// Gensym is the expander's module-global, monotonically increasing
// fresh-symbol counter (spec.md §3 "Macro Environment", §9 "Gensym as
// counter + tag"). It is process-local and accessed only from the
// single-threaded expansion pass, so it needs no lock.
type Gensym struct {
	next int
}

// NewGensym returns a counter starting at 1, so the first generated
// symbol's tag ID is always 1 within a compile.
func NewGensym() *Gensym {
	return &Gensym{next: 1}
}

// Fresh returns a new Symbol carrying base as its display name and a
// GensymTag guaranteed not to collide with any other symbol produced by
// this counter within the same compile.
func (g *Gensym) Fresh(base string, pos ast.Node) *ast.Symbol {
	id := g.next
	g.next++
	p := pos.Pos()
	return &ast.Symbol{Name: base, Gensym: &ast.GensymTag{ID: id}, P: p}
}
