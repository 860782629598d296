package lower

import (
	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/ir"
)

// lowerImport lowers the two import forms the reader accepts
// (spec.md §6):
//
//	(import [n1 (n2 as alias)] from "path")  -- named import vector
//	(import name from "path")                -- namespace binding
func (lw *Lowerer) lowerImport(lst *ast.List) ir.Stmt {
	if len(lst.Items) != 4 {
		lw.errf(lst, "import requires a binding, the `from` keyword, and a path")
		return nil
	}
	fromSym, ok := lst.Items[2].(*ast.Symbol)
	if !ok || fromSym.Name != "from" {
		lw.errf(lst, "import's third item must be the symbol `from`")
		return nil
	}
	pathLit, ok := lst.Items[3].(*ast.Literal)
	if !ok || pathLit.Kind != ast.LiteralString {
		lw.errf(lst, "import's path must be a string literal")
		return nil
	}
	source, _ := pathLit.Value.(string)
	decl := &ir.ImportDecl{Base: ir.Base{P: lst.P}, Source: source}

	switch target := lst.Items[1].(type) {
	case *ast.Vector:
		for _, item := range target.Items {
			switch it := item.(type) {
			case *ast.Symbol:
				lw.scope.Define(it.Name)
				decl.Specifiers = append(decl.Specifiers, ir.ImportSpecifier{Imported: it.Name, Local: sanitizeName(it.Name)})
			case *ast.List:
				if len(it.Items) != 3 {
					lw.errf(it, "aliased import must be (name as alias)")
					continue
				}
				nameSym, ok1 := it.Items[0].(*ast.Symbol)
				aliasSym, ok2 := it.Items[2].(*ast.Symbol)
				if !ok1 || !ok2 {
					lw.errf(it, "aliased import's name and alias must be bare symbols")
					continue
				}
				lw.scope.Define(aliasSym.Name)
				decl.Specifiers = append(decl.Specifiers, ir.ImportSpecifier{Imported: nameSym.Name, Local: sanitizeName(aliasSym.Name)})
			default:
				lw.errf(item, "import vector entries must be symbols or (name as alias)")
			}
		}
	case *ast.Symbol:
		lw.scope.Define(target.Name)
		decl.Namespace = sanitizeName(target.Name)
	default:
		lw.errf(lst, "import's binding must be a vector or a bare symbol")
		return nil
	}
	return decl
}

// lowerExport lowers:
//
//	(export [n1 n2])       -- re-export existing bindings
//	(export "name" expr)   -- bind expr's value as `name`
func (lw *Lowerer) lowerExport(lst *ast.List) ir.Stmt {
	if len(lst.Items) < 2 {
		lw.errf(lst, "export requires a binding vector or a name and expression")
		return nil
	}
	if vec, ok := lst.Items[1].(*ast.Vector); ok {
		decl := &ir.ExportDecl{Base: ir.Base{P: lst.P}}
		for _, item := range vec.Items {
			sym, ok := item.(*ast.Symbol)
			if !ok {
				lw.errf(item, "export vector entries must be bare symbols")
				continue
			}
			decl.Specifiers = append(decl.Specifiers, ir.ExportSpecifier{Local: sanitizeName(sym.Name), Exported: sym.Name})
		}
		return decl
	}
	lit, ok := lst.Items[1].(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralString {
		lw.errf(lst, "export's first argument must be a binding vector or a string name")
		return nil
	}
	if len(lst.Items) != 3 {
		lw.errf(lst, "(export \"name\" expr) requires exactly one expression")
		return nil
	}
	name, _ := lit.Value.(string)
	return &ir.ExportDecl{Base: ir.Base{P: lst.P}, Name: name, Value: lw.lowerExpr(lst.Items[2])}
}
