package lower

import (
	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/ir"
)

// lowerTypeDecl validates a `(type Name [Generics...] TypeExpr)` or
// `(interface Name [Generics...] (extends Super...) (field f Type)...)`
// declaration's shape. Type-expression nodes never reach the IR tree
// (spec.md §3 invariant v: type expressions are erased from runtime
// output), so this exists purely to surface a LowerError for malformed
// type syntax before it would otherwise be silently dropped.
func (lw *Lowerer) lowerTypeDecl(lst *ast.List) {
	head, _ := lst.HeadSymbol()
	if len(lst.Items) < 2 {
		lw.errf(lst, "%s requires a name", head)
		return
	}
	if _, ok := lst.Items[1].(*ast.Symbol); !ok {
		lw.errf(lst, "%s's name must be a bare symbol", head)
		return
	}
	switch head {
	case "type":
		if len(lst.Items) < 3 {
			lw.errf(lst, "type requires a type expression")
			return
		}
		lw.lowerTypeExpr(lst.Items[len(lst.Items)-1])
	case "interface":
		for _, member := range lst.Items[2:] {
			ml, ok := member.(*ast.List)
			if !ok || len(ml.Items) == 0 {
				lw.errf(member, "interface member must be a list form")
				continue
			}
			mhead, _ := ml.HeadSymbol()
			switch mhead {
			case "extends":
				for _, s := range ml.Items[1:] {
					lw.lowerTypeExpr(s)
				}
			case "field":
				if len(ml.Items) < 3 {
					lw.errf(ml, "interface field requires a name and a type")
					continue
				}
				lw.lowerTypeExpr(ml.Items[2])
			default:
				lw.errf(member, "unknown interface member form %q", mhead)
			}
		}
	}
}

// lowerTypeExpr lowers the fourteen compound type forms plus plain/generic
// type references and literal types.
func (lw *Lowerer) lowerTypeExpr(n ast.Node) ir.TypeExpr {
	switch t := n.(type) {
	case *ast.Symbol:
		return &ir.TypeReference{Base: ir.Base{P: t.P}, Name: t.Name}
	case *ast.Literal:
		val := t.Value
		if t.Kind == ast.LiteralNull {
			val = nil
		}
		return &ir.LiteralType{Base: ir.Base{P: t.P}, Value: val}
	case *ast.List:
		return lw.lowerTypeList(t)
	}
	lw.errf(n, "invalid type expression")
	return &ir.TypeReference{Base: ir.Base{P: n.Pos()}, Name: "unknown"}
}

func (lw *Lowerer) lowerTypeList(lst *ast.List) ir.TypeExpr {
	head, ok := lst.HeadSymbol()
	if !ok {
		lw.errf(lst, "type expression must start with a symbol")
		return &ir.TypeReference{Base: ir.Base{P: lst.P}, Name: "unknown"}
	}
	switch head {
	case "|":
		return &ir.UnionType{Base: ir.Base{P: lst.P}, Members: lw.lowerTypeExprList(lst.Items[1:])}
	case "&":
		return &ir.IntersectionType{Base: ir.Base{P: lst.P}, Members: lw.lowerTypeExprList(lst.Items[1:])}
	case "keyof":
		return &ir.KeyofType{Base: ir.Base{P: lst.P}, Operand: lw.lowerTypeExpr(lst.Items[1])}
	case "indexed":
		return &ir.IndexedAccessType{Base: ir.Base{P: lst.P}, Object: lw.lowerTypeExpr(lst.Items[1]), Index: lw.lowerTypeExpr(lst.Items[2])}
	case "if-extends":
		return &ir.ConditionalType{
			Base:   ir.Base{P: lst.P},
			Check:  lw.lowerTypeExpr(lst.Items[1]),
			Extend: lw.lowerTypeExpr(lst.Items[2]),
			Then:   lw.lowerTypeExpr(lst.Items[3]),
			Else:   lw.lowerTypeExpr(lst.Items[4]),
		}
	case "tuple":
		return &ir.TupleType{Base: ir.Base{P: lst.P}, Elements: lw.lowerTypeExprList(lst.Items[1:])}
	case "array":
		return &ir.ArrayTypeExpr{Base: ir.Base{P: lst.P}, Element: lw.lowerTypeExpr(lst.Items[1])}
	case "mapped":
		paramSym, ok := lst.Items[1].(*ast.Symbol)
		if !ok {
			lw.errf(lst, "mapped's first argument must be a bare symbol")
			return &ir.TypeReference{Base: ir.Base{P: lst.P}, Name: "unknown"}
		}
		return &ir.MappedType{
			Base:   ir.Base{P: lst.P},
			Param:  paramSym.Name,
			Source: lw.lowerTypeExpr(lst.Items[2]),
			Value:  lw.lowerTypeExpr(lst.Items[3]),
		}
	case "readonly":
		return &ir.ReadonlyType{Base: ir.Base{P: lst.P}, Operand: lw.lowerTypeExpr(lst.Items[1])}
	case "typeof":
		if _, ok := lst.Items[1].(*ast.Symbol); !ok {
			lw.errf(lst, "typeof's argument must be a bare symbol")
			return &ir.TypeReference{Base: ir.Base{P: lst.P}, Name: "unknown"}
		}
		return &ir.TypeofType{Base: ir.Base{P: lst.P}, Expr: lw.lowerExpr(lst.Items[1])}
	case "infer":
		nameSym, ok := lst.Items[1].(*ast.Symbol)
		if !ok {
			lw.errf(lst, "infer's argument must be a bare symbol")
			return &ir.TypeReference{Base: ir.Base{P: lst.P}, Name: "unknown"}
		}
		return &ir.InferType{Base: ir.Base{P: lst.P}, Name: nameSym.Name}
	case "rest":
		return &ir.RestType{Base: ir.Base{P: lst.P}, Operand: lw.lowerTypeExpr(lst.Items[1])}
	case "opt-type":
		return &ir.OptionalType{Base: ir.Base{P: lst.P}, Operand: lw.lowerTypeExpr(lst.Items[1])}
	case "->":
		return lw.lowerFunctionType(lst)
	default:
		return &ir.TypeReference{Base: ir.Base{P: lst.P}, Name: head, Args: lw.lowerTypeExprList(lst.Items[1:])}
	}
}

func (lw *Lowerer) lowerFunctionType(lst *ast.List) ir.TypeExpr {
	if len(lst.Items) != 3 {
		lw.errf(lst, "function type requires a parameter vector and a return type")
		return &ir.TypeReference{Base: ir.Base{P: lst.P}, Name: "unknown"}
	}
	paramsVec, ok := lst.Items[1].(*ast.Vector)
	if !ok {
		lw.errf(lst, "function type's parameters must be a vector")
		return &ir.TypeReference{Base: ir.Base{P: lst.P}, Name: "unknown"}
	}
	ft := &ir.FunctionType{Base: ir.Base{P: lst.P}, Return: lw.lowerTypeExpr(lst.Items[2])}
	for i, p := range paramsVec.Items {
		ft.Params = append(ft.Params, ir.FunctionTypeParam{Name: paramLabel(i), Type: lw.lowerTypeExpr(p)})
	}
	return ft
}

func (lw *Lowerer) lowerTypeExprList(items []ast.Node) []ir.TypeExpr {
	out := make([]ir.TypeExpr, 0, len(items))
	for _, it := range items {
		out = append(out, lw.lowerTypeExpr(it))
	}
	return out
}

func paramLabel(i int) string {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	if i < len(names) {
		return names[i]
	}
	return "p"
}
