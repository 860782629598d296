package lower

import (
	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/ir"
)

// lowerBinding lowers `(let|const|var|def Name Init)` or a destructuring
// form `(let [Pattern...] Init)` into a VariableDecl. def is treated as
// an alias for const, matching the teacher's "constants are the common
// case" bias in its own symbol table defaults.
func (lw *Lowerer) lowerBinding(lst *ast.List, exprPos bool) *ir.VariableDecl {
	head, _ := lst.HeadSymbol()
	kind := ir.VarLet
	switch head {
	case "const", "def":
		kind = ir.VarConst
	case "var":
		kind = ir.VarVar
	}

	if len(lst.Items) < 2 {
		lw.errf(lst, "%s requires a binding target", head)
		return &ir.VariableDecl{Base: ir.Base{P: lst.P}, Kind: kind}
	}

	target := lst.Items[1]
	var init ir.Expr
	if len(lst.Items) > 2 {
		init = lw.lowerExpr(lst.Items[2])
	}

	pattern := lw.lowerPattern(target)
	lw.defineFromPattern(pattern)

	return &ir.VariableDecl{
		Base:        ir.Base{P: lst.P},
		Kind:        kind,
		Declarators: []ir.VariableDeclarator{{Name: pattern, Init: init}},
	}
}

// lowerPattern lowers a binding target: a bare Symbol becomes an
// Identifier pattern, a Vector becomes an ArrayPattern supporting a
// trailing `& rest` and `(name default)` per-element defaults.
func (lw *Lowerer) lowerPattern(n ast.Node) ir.Pattern {
	switch t := n.(type) {
	case *ast.Symbol:
		return &ir.Identifier{Base: ir.Base{P: t.P}, Name: t.Name}
	case *ast.Vector:
		return lw.lowerArrayPattern(t)
	default:
		lw.errf(n, "invalid binding pattern")
		return &ir.Identifier{Base: ir.Base{P: n.Pos()}, Name: "_invalid"}
	}
}

func (lw *Lowerer) lowerArrayPattern(v *ast.Vector) *ir.ArrayPattern {
	pat := &ir.ArrayPattern{Base: ir.Base{P: v.P}}
	for i := 0; i < len(v.Items); i++ {
		item := v.Items[i]
		if sym, ok := item.(*ast.Symbol); ok && sym.Name == "&" && i+1 < len(v.Items) {
			restSym, ok := v.Items[i+1].(*ast.Symbol)
			if !ok {
				lw.errf(item, "rest binding must be a symbol")
				break
			}
			pat.Rest = &ir.RestElement{Base: ir.Base{P: restSym.P}, Target: &ir.Identifier{Base: ir.Base{P: restSym.P}, Name: restSym.Name}}
			break
		}
		if lst, ok := item.(*ast.List); ok && len(lst.Items) == 2 {
			name := lw.lowerPattern(lst.Items[0])
			def := lw.lowerExpr(lst.Items[1])
			pat.Elements = append(pat.Elements, ir.ArrayPatternElement{Pattern: name, Default: def})
			continue
		}
		pat.Elements = append(pat.Elements, ir.ArrayPatternElement{Pattern: lw.lowerPattern(item)})
	}
	return pat
}

// defineFromPattern registers every name a pattern binds into the
// current scope, so later references resolve as locals rather than
// free variables (used when a bare operator symbol may name a local).
func (lw *Lowerer) defineFromPattern(p ir.Pattern) {
	switch t := p.(type) {
	case *ir.Identifier:
		lw.scope.Define(t.Name)
	case *ir.ArrayPattern:
		for _, el := range t.Elements {
			if el.Pattern != nil {
				lw.defineFromPattern(el.Pattern)
			}
		}
		if t.Rest != nil {
			lw.defineFromPattern(t.Rest.Target)
		}
	case *ir.ObjectPattern:
		for _, p := range t.Properties {
			lw.defineFromPattern(p.Value)
		}
		if t.Rest != nil {
			lw.defineFromPattern(t.Rest.Target)
		}
	}
}
