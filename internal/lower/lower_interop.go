package lower

import (
	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/ir"
)

// lowerInterop lowers the three interop forms that cross into
// externally-typed JS values, where the source's own value model (the
// obj may or may not have the accessed member, may be callable instead
// of a plain record, etc.) cannot be trusted to match a plain member
// access:
//
//	(iget obj key)              -> dynamic-get(obj, key)
//	(iget obj key default)      -> dynamic-get(obj, key, default)
//	(imaybe obj "member")       -> two-path IIFE, property-or-zero-arg-method
//	(icall obj method args...)  -> dynamic-call(obj, method, args...)
func (lw *Lowerer) lowerInterop(lst *ast.List, head string) ir.Expr {
	switch head {
	case "iget":
		if len(lst.Items) < 3 {
			lw.errf(lst, "iget requires a target and a key")
			return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
		}
		get := &ir.InteropGetExpr{Base: ir.Base{P: lst.P}, Target: lw.lowerExpr(lst.Items[1]), Key: lw.lowerExpr(lst.Items[2])}
		if len(lst.Items) > 3 {
			get.Default = lw.lowerExpr(lst.Items[3])
		}
		return get
	case "imaybe":
		if len(lst.Items) != 3 {
			lw.errf(lst, "imaybe requires a target and a member name")
			return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
		}
		member := memberName(lst.Items[2])
		return &ir.InteropMaybeMethodExpr{Base: ir.Base{P: lst.P}, Target: lw.lowerExpr(lst.Items[1]), Member: member}
	case "icall":
		if len(lst.Items) < 3 {
			lw.errf(lst, "icall requires a target and a method")
			return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
		}
		args := make([]ir.Expr, 0, len(lst.Items)-3)
		for _, a := range lst.Items[3:] {
			args = append(args, lw.lowerExpr(a))
		}
		return &ir.InteropCallExpr{
			Base:   ir.Base{P: lst.P},
			Target: lw.lowerExpr(lst.Items[1]),
			Method: lw.lowerExpr(lst.Items[2]),
			Args:   args,
		}
	}
	lw.errf(lst, "unknown interop form %q", head)
	return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
}

func memberName(n ast.Node) string {
	switch t := n.(type) {
	case *ast.Symbol:
		return t.Name
	case *ast.Literal:
		if t.Kind == ast.LiteralString {
			s, _ := t.Value.(string)
			return s
		}
	}
	return ""
}
