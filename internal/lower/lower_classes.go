package lower

import (
	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/ir"
)

// lowerClassDecl lowers:
//
//	(class Name
//	  (extends Super)                  ; optional
//	  (field f [init])
//	  (static-field f [init])
//	  (readonly-field f [init])
//	  (constructor [params...] body...)
//	  (method m [params...] body...)
//	  (static-method m [params...] body...)
//	  (get m [] body...)
//	  (set m [param] body...))
func (lw *Lowerer) lowerClassDecl(lst *ast.List) ir.Stmt {
	if len(lst.Items) < 2 {
		lw.errf(lst, "class requires a name")
		return nil
	}
	nameSym, ok := lst.Items[1].(*ast.Symbol)
	if !ok {
		lw.errf(lst, "class's name must be a bare symbol")
		return nil
	}
	lw.scope.Define(nameSym.Name)

	decl := &ir.ClassDecl{Base: ir.Base{P: lst.P}, Name: sanitizeName(nameSym.Name)}

	for _, member := range lst.Items[2:] {
		ml, ok := member.(*ast.List)
		if !ok || len(ml.Items) == 0 {
			lw.errf(member, "class member must be a list form")
			continue
		}
		head, _ := ml.HeadSymbol()
		switch head {
		case "extends":
			decl.Super = lw.lowerExpr(ml.Items[1])
		case "field", "static-field", "readonly-field":
			decl.Fields = append(decl.Fields, lw.lowerClassField(ml, head))
		case "constructor":
			decl.Methods = append(decl.Methods, lw.lowerClassMethod(ml, "constructor", ir.MethodConstructor, false))
		case "method":
			decl.Methods = append(decl.Methods, lw.lowerClassMethod(ml, memberName(ml.Items[1]), ir.MethodOrdinary, false))
		case "static-method":
			decl.Methods = append(decl.Methods, lw.lowerClassMethod(ml, memberName(ml.Items[1]), ir.MethodOrdinary, true))
		case "get":
			decl.Methods = append(decl.Methods, lw.lowerClassMethod(ml, memberName(ml.Items[1]), ir.MethodGetter, false))
		case "set":
			decl.Methods = append(decl.Methods, lw.lowerClassMethod(ml, memberName(ml.Items[1]), ir.MethodSetter, false))
		default:
			lw.errf(member, "unknown class member form %q", head)
		}
	}
	return decl
}

func (lw *Lowerer) lowerClassField(ml *ast.List, head string) ir.ClassField {
	if len(ml.Items) < 2 {
		lw.errf(ml, "%s requires a name", head)
		return ir.ClassField{}
	}
	f := ir.ClassField{
		Name:     memberName(ml.Items[1]),
		Static:   head == "static-field",
		Readonly: head == "readonly-field",
	}
	if len(ml.Items) > 2 {
		f.Init = lw.lowerExpr(ml.Items[2])
	}
	return f
}

// lowerClassMethod lowers a constructor/method/accessor. The
// constructor form is `(constructor [params...] body...)` — it has no
// name slot, unlike every other member kind.
func (lw *Lowerer) lowerClassMethod(ml *ast.List, name string, kind ir.MethodKind, static bool) ir.ClassMethod {
	paramsIdx := 1
	if kind != ir.MethodConstructor {
		paramsIdx = 2
	}
	if len(ml.Items) <= paramsIdx {
		lw.errf(ml, "method %s requires a parameter list", name)
		return ir.ClassMethod{Name: name, Kind: kind, Static: static}
	}
	paramsVec, ok := ml.Items[paramsIdx].(*ast.Vector)
	if !ok {
		lw.errf(ml, "method %s's parameter list must be a vector", name)
		return ir.ClassMethod{Name: name, Kind: kind, Static: static}
	}

	outer := lw.scope
	lw.scope = outer.Enclosed()
	defer func() { lw.scope = outer }()

	params := lw.lowerParams(paramsVec)
	for _, p := range params {
		lw.defineFromPattern(p.Name)
	}
	bodyForms := ml.Items[paramsIdx+1:]
	usesThis := containsThis(bodyForms)
	body := lw.lowerBlock(bodyForms)

	return ir.ClassMethod{
		Name:     sanitizeName(name),
		Kind:     kind,
		Params:   params,
		Body:     body,
		Static:   static,
		UsesThis: usesThis,
	}
}

// lowerEnumDecl lowers `(enum Name (case C1) (case C2 v1 v2) ...)`.
// Whether any case carries associated values determines the emitter's
// strategy (class+factories vs. a frozen plain record) — see
// EnumDecl.HasAssociatedValues.
func (lw *Lowerer) lowerEnumDecl(lst *ast.List) ir.Stmt {
	if len(lst.Items) < 2 {
		lw.errf(lst, "enum requires a name")
		return nil
	}
	nameSym, ok := lst.Items[1].(*ast.Symbol)
	if !ok {
		lw.errf(lst, "enum's name must be a bare symbol")
		return nil
	}
	lw.scope.Define(nameSym.Name)

	decl := &ir.EnumDecl{Base: ir.Base{P: lst.P}, Name: sanitizeName(nameSym.Name)}
	for _, c := range lst.Items[2:] {
		cl, ok := c.(*ast.List)
		if !ok || len(cl.Items) < 2 {
			lw.errf(c, "enum case must be (case Name [values...])")
			continue
		}
		member := ir.EnumMember{Name: memberName(cl.Items[1])}
		for _, v := range cl.Items[2:] {
			member.Values = append(member.Values, lw.lowerExpr(v))
		}
		decl.Members = append(decl.Members, member)
	}
	return decl
}
