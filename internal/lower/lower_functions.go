package lower

import (
	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/ir"
)

// lowerFnDecl lowers `(fn name [params...] body...)` and, when head is
// "fn-kw", `(fn-kw name [k1 k2...] body...)` — the JSON-map-parameter
// form, where the params vector names keyword arguments collected into
// a single destructured options object (spec.md §4.8 "JSON-map
// parameters") rather than a positional parameter list.
func (lw *Lowerer) lowerFnDecl(lst *ast.List) ir.Stmt {
	head, _ := lst.HeadSymbol()
	if len(lst.Items) < 3 {
		lw.errf(lst, "%s requires a name and a parameter list", head)
		return nil
	}
	nameSym, ok := lst.Items[1].(*ast.Symbol)
	if !ok {
		lw.errf(lst, "%s's name must be a bare symbol", head)
		return nil
	}
	paramsVec, ok := lst.Items[2].(*ast.Vector)
	if !ok {
		lw.errf(lst, "%s's parameter list must be a vector", head)
		return nil
	}
	lw.scope.Define(nameSym.Name)

	outer := lw.scope
	lw.scope = outer.Enclosed()
	defer func() { lw.scope = outer }()

	params := lw.lowerParams(paramsVec)
	for _, p := range params {
		lw.defineFromPattern(p.Name)
	}
	body := lw.lowerBlock(lst.Items[3:])

	decl := &ir.FnFunctionDecl{
		Base:    ir.Base{P: lst.P},
		Name:    sanitizeName(nameSym.Name),
		Params:  params,
		JSONMap: head == "fn-kw",
		Body:    body,
	}
	return decl
}

// lowerParams lowers a parameter vector. Each item is one of:
//
//	name                    -> untyped, no default
//	(opt name default)      -> untyped, with default
//	(typed name Type)       -> typed, no default
//	(typed-opt name Type v) -> typed, with default
//	& rest                  -> rest parameter (must be last)
//	[a b]                   -> destructuring pattern parameter
func (lw *Lowerer) lowerParams(v *ast.Vector) []ir.Param {
	params := make([]ir.Param, 0, len(v.Items))
	for i := 0; i < len(v.Items); i++ {
		item := v.Items[i]
		if sym, ok := item.(*ast.Symbol); ok && sym.Name == "&" && i+1 < len(v.Items) {
			restPat := lw.lowerPattern(v.Items[i+1])
			params = append(params, ir.Param{Name: restPat, Rest: true})
			break
		}
		if vec, ok := item.(*ast.Vector); ok {
			params = append(params, ir.Param{Name: lw.lowerArrayPattern(vec)})
			continue
		}
		if lst, ok := item.(*ast.List); ok {
			head, _ := lst.HeadSymbol()
			switch head {
			case "opt":
				params = append(params, ir.Param{Name: lw.lowerPattern(lst.Items[1]), Default: lw.lowerExpr(lst.Items[2])})
				continue
			case "typed":
				params = append(params, ir.Param{Name: lw.lowerPattern(lst.Items[1]), Type: lw.lowerTypeExpr(lst.Items[2])})
				continue
			case "typed-opt":
				params = append(params, ir.Param{
					Name:    lw.lowerPattern(lst.Items[1]),
					Type:    lw.lowerTypeExpr(lst.Items[2]),
					Default: lw.lowerExpr(lst.Items[3]),
				})
				continue
			}
		}
		params = append(params, ir.Param{Name: lw.lowerPattern(item)})
	}
	return params
}

// lowerLambda lowers `(lambda [params...] body...)` to a FunctionExpr.
// Arrow functions lexically bind `this`, so a body that references
// `this` is marked UsesThis, and the emitter must then emit a
// conventional `function` expression in its place (spec.md §4.6).
func (lw *Lowerer) lowerLambda(lst *ast.List) ir.Expr {
	if len(lst.Items) < 2 {
		lw.errf(lst, "lambda requires a parameter list")
		return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
	}
	paramsVec, ok := lst.Items[1].(*ast.Vector)
	if !ok {
		lw.errf(lst, "lambda's parameter list must be a vector")
		return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
	}

	outer := lw.scope
	lw.scope = outer.Enclosed()
	defer func() { lw.scope = outer }()

	params := lw.lowerParams(paramsVec)
	patterns := make([]ir.Pattern, len(params))
	defaults := make([]ir.Expr, len(params))
	for i, p := range params {
		patterns[i] = p.Name
		defaults[i] = p.Default
		lw.defineFromPattern(p.Name)
	}

	usesThis := containsThis(lst.Items[2:])
	body := lw.lowerBlock(lst.Items[2:])

	return &ir.FunctionExpr{
		Base:     ir.Base{P: lst.P},
		Params:   patterns,
		Defaults: defaults,
		Body:     body,
		UsesThis: usesThis,
	}
}

// containsThis does a shallow structural scan for a bare `this`
// reference among a function body's forms, stopping at a nested
// lambda/fn boundary (a nested function's own `this` usage does not
// make the outer one non-lexical).
func containsThis(forms []ast.Node) bool {
	for _, f := range forms {
		if scanThis(f) {
			return true
		}
	}
	return false
}

func scanThis(n ast.Node) bool {
	switch t := n.(type) {
	case *ast.Symbol:
		return t.Name == "this"
	case *ast.List:
		if head, ok := t.HeadSymbol(); ok && (head == "lambda" || head == "fn" || head == "fn-kw") {
			return false
		}
		for _, it := range t.Items {
			if scanThis(it) {
				return true
			}
		}
	case *ast.Vector:
		for _, it := range t.Items {
			if scanThis(it) {
				return true
			}
		}
	}
	return false
}
