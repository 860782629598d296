package lower

import (
	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/ir"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// lowerExpr lowers a form appearing in expression (value-producing)
// position. A binding form nested here is not itself hoisted — that is
// internal/emit's block-scope pre-scan — it is only wrapped as a
// DeclExpr so the tree stays well-typed (spec.md §8 scenario 4).
func (lw *Lowerer) lowerExpr(f ast.Node) ir.Expr {
	switch t := f.(type) {
	case *ast.Literal:
		return lw.lowerLiteral(t)
	case *ast.Symbol:
		return lw.lowerSymbolExpr(t)
	case *ast.Vector:
		return lw.lowerVectorAsArray(t)
	case *ast.List:
		return lw.lowerListExpr(t)
	}
	lw.errf(f, "unsupported form in expression position")
	return &ir.NullLiteral{Base: ir.Base{P: f.Pos()}}
}

func (lw *Lowerer) lowerLiteral(l *ast.Literal) ir.Expr {
	p := ir.Base{P: l.P}
	switch l.Kind {
	case ast.LiteralNumber:
		v, _ := l.Value.(float64)
		return &ir.NumberLiteral{Base: p, Value: v}
	case ast.LiteralBigInt:
		d, _ := l.Value.(string)
		return &ir.BigIntLiteral{Base: p, Digits: d}
	case ast.LiteralString:
		s, _ := l.Value.(string)
		return &ir.StringLiteral{Base: p, Value: s}
	case ast.LiteralBool:
		b, _ := l.Value.(bool)
		return &ir.BoolLiteral{Base: p, Value: b}
	case ast.LiteralNull:
		return &ir.NullLiteral{Base: p}
	}
	return &ir.NullLiteral{Base: p}
}

// lowerSymbolExpr lowers a bare symbol reference. A symbol naming one
// of the recognized operators, used outside operator-application
// position, is a first-class operator reference and is replaced with
// `get-op("...")` per spec.md §4.6.
func (lw *Lowerer) lowerSymbolExpr(s *ast.Symbol) ir.Expr {
	if !lw.scope.Has(s.Name) {
		if isOperatorSymbol(s.Name) {
			lw.Usage.Mark(runtimehelpers.GetOp)
			return &ir.CallExpr{
				Base:   ir.Base{P: s.P},
				Callee: &ir.Identifier{Base: ir.Base{P: s.P}, Name: "getOp"},
				Args:   []ir.Expr{&ir.StringLiteral{Base: ir.Base{P: s.P}, Value: s.Name}},
			}
		}
	}
	id := &ir.Identifier{Base: ir.Base{P: s.P}, Name: sanitizeName(s.Name)}
	if sanitizeName(s.Name) != s.Name {
		id.OriginalName = s.Name
	}
	if s.Gensym != nil {
		id.OriginalName = s.String()
	}
	return id
}

func (lw *Lowerer) lowerVectorAsArray(v *ast.Vector) ir.Expr {
	elems := make([]ir.Expr, 0, len(v.Items))
	for _, it := range v.Items {
		elems = append(elems, lw.lowerExpr(it))
	}
	return &ir.ArrayExpr{Base: ir.Base{P: v.P}, Elements: elems}
}

func (lw *Lowerer) lowerListExpr(lst *ast.List) ir.Expr {
	if len(lst.Items) == 0 {
		return &ir.ArrayExpr{Base: ir.Base{P: lst.P}}
	}
	head, isSym := lst.HeadSymbol()
	if isSym {
		switch head {
		case "let", "const", "var", "def":
			return &ir.DeclExpr{Base: ir.Base{P: lst.P}, Decl: lw.lowerBinding(lst, true)}
		case "if":
			return lw.lowerIfExpr(lst)
		case "do", "begin":
			return lw.lowerSequence(lst.Items[1:], lst.P)
		case "quote":
			return lw.lowerQuote(lst.Items[1])
		case "template":
			return lw.lowerTemplate(lst)
		case "lambda", "fn*":
			return lw.lowerLambda(lst)
		case "new":
			return lw.lowerNew(lst)
		case "object":
			return lw.lowerObject(lst)
		case "array":
			return lw.lowerArrayForm(lst)
		case "spread":
			return &ir.SpreadElement{Base: ir.Base{P: lst.P}, Operand: lw.lowerExpr(lst.Items[1])}
		case "await":
			return &ir.AwaitExpr{Base: ir.Base{P: lst.P}, Operand: lw.lowerExpr(lst.Items[1])}
		case "yield":
			return &ir.YieldExpr{Base: ir.Base{P: lst.P}, Operand: lw.lowerExpr(lst.Items[1])}
		case "yield*":
			return &ir.YieldExpr{Base: ir.Base{P: lst.P}, Operand: lw.lowerExpr(lst.Items[1]), Delegate: true}
		case "set!":
			return lw.lowerAssign(lst, "=")
		case "and":
			return lw.lowerLogical(lst, "&&")
		case "or":
			return lw.lowerLogical(lst, "||")
		case "not":
			return &ir.UnaryExpr{Base: ir.Base{P: lst.P}, Op: "!", Operand: lw.lowerExpr(lst.Items[1])}
		case "prop":
			return lw.lowerProp(lst, false, false)
		case "prop?":
			return lw.lowerProp(lst, false, true)
		case "index":
			return lw.lowerProp(lst, true, false)
		case "iget", "imaybe", "icall":
			return lw.lowerInterop(lst, head)
		case "call-fn":
			return lw.lowerHelperCall(lst, runtimehelpers.CallFn, "callFn")
		case "range":
			return lw.lowerHelperCall(lst, runtimehelpers.Range, "range")
		case "to-sequence":
			return lw.lowerHelperCall(lst, runtimehelpers.ToSequence, "toSequence")
		case "for-each":
			return lw.lowerHelperCall(lst, runtimehelpers.ForEach, "forEach")
		case "hash-map":
			return lw.lowerHelperCall(lst, runtimehelpers.HashMap, "hashMap")
		case "deep-freeze":
			return lw.lowerHelperCall(lst, runtimehelpers.DeepFreeze, "deepFreeze")
		case "lazy-seq":
			return lw.lowerHelperCall(lst, runtimehelpers.LazySeq, "lazySeq")
		case "delay":
			return lw.lowerHelperCall(lst, runtimehelpers.Delay, "delay")
		case "gensym":
			return lw.lowerHelperCall(lst, runtimehelpers.Gensym, "gensym")
		case "throw":
			// throw in expression position (e.g. a ternary branch): JS
			// throw is a statement, so the value is routed through the
			// throw helper instead of ir.ThrowStmt.
			return lw.lowerHelperCall(lst, runtimehelpers.Throw, "throwHelper")
		}
		if compound, ok := compoundAssignOps[head]; ok {
			return lw.lowerAssign(lst, compound)
		}
		if op, ok := operatorHeads[head]; ok {
			return lw.lowerOperatorCall(lst, op)
		}
	}
	return lw.lowerCall(lst)
}

func (lw *Lowerer) lowerIfExpr(lst *ast.List) ir.Expr {
	if len(lst.Items) < 3 {
		lw.errf(lst, "if requires at least a test and a consequent")
		return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
	}
	cond := &ir.ConditionalExpr{
		Base: ir.Base{P: lst.P},
		Test: lw.lowerExpr(lst.Items[1]),
		Cons: lw.lowerExpr(lst.Items[2]),
	}
	if len(lst.Items) > 3 {
		cond.Alt = lw.lowerExpr(lst.Items[3])
	} else {
		cond.Alt = &ir.NullLiteral{Base: ir.Base{P: lst.P}}
	}
	return cond
}

func (lw *Lowerer) lowerSequence(forms []ast.Node, p ir.Base) ir.Expr {
	exprs := make([]ir.Expr, 0, len(forms))
	for _, f := range forms {
		exprs = append(exprs, lw.lowerExpr(f))
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &ir.SequenceExpr{Base: p, Exprs: exprs}
}

func (lw *Lowerer) lowerNew(lst *ast.List) ir.Expr {
	if len(lst.Items) < 2 {
		lw.errf(lst, "new requires a constructor")
		return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
	}
	args := make([]ir.Expr, 0, len(lst.Items)-2)
	for _, a := range lst.Items[2:] {
		args = append(args, lw.lowerExpr(a))
	}
	return &ir.NewExpr{Base: ir.Base{P: lst.P}, Callee: lw.lowerExpr(lst.Items[1]), Args: args}
}

func (lw *Lowerer) lowerObject(lst *ast.List) ir.Expr {
	obj := &ir.ObjectExpr{Base: ir.Base{P: lst.P}}
	for _, entry := range lst.Items[1:] {
		pair, ok := entry.(*ast.List)
		if !ok || len(pair.Items) != 2 {
			lw.errf(entry, "object entry must be (key value)")
			continue
		}
		keySym, ok := pair.Items[0].(*ast.Symbol)
		var key ir.Expr
		if ok {
			key = &ir.Identifier{Base: ir.Base{P: keySym.P}, Name: keySym.Name}
		} else {
			key = lw.lowerExpr(pair.Items[0])
		}
		obj.Properties = append(obj.Properties, ir.ObjectProperty{
			Key:      key,
			Value:    lw.lowerExpr(pair.Items[1]),
			Computed: !ok,
		})
	}
	return obj
}

func (lw *Lowerer) lowerArrayForm(lst *ast.List) ir.Expr {
	elems := make([]ir.Expr, 0, len(lst.Items)-1)
	for _, a := range lst.Items[1:] {
		elems = append(elems, lw.lowerExpr(a))
	}
	return &ir.ArrayExpr{Base: ir.Base{P: lst.P}, Elements: elems}
}

func (lw *Lowerer) lowerAssign(lst *ast.List, op string) ir.Expr {
	if len(lst.Items) != 3 {
		lw.errf(lst, "%s requires a target and a value", op)
		return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
	}
	return &ir.AssignmentExpr{Base: ir.Base{P: lst.P}, Op: op, Target: lw.lowerExpr(lst.Items[1]), Value: lw.lowerExpr(lst.Items[2])}
}

func (lw *Lowerer) lowerLogical(lst *ast.List, op string) ir.Expr {
	if len(lst.Items) < 3 {
		lw.errf(lst, "%s requires at least two operands", op)
		return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
	}
	acc := lw.lowerExpr(lst.Items[1])
	for _, operand := range lst.Items[2:] {
		acc = &ir.LogicalExpr{Base: ir.Base{P: lst.P}, Op: op, Left: acc, Right: lw.lowerExpr(operand)}
	}
	return acc
}

func (lw *Lowerer) lowerProp(lst *ast.List, computed, optional bool) ir.Expr {
	if len(lst.Items) != 3 {
		lw.errf(lst, "prop/index requires exactly (head obj key)")
		return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
	}
	var prop ir.Expr
	if computed {
		prop = lw.lowerExpr(lst.Items[2])
	} else if sym, ok := lst.Items[2].(*ast.Symbol); ok {
		prop = &ir.Identifier{Base: ir.Base{P: sym.P}, Name: sym.Name}
	} else {
		lw.errf(lst, "prop's key must be a bare symbol; use index for computed access")
		return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
	}
	return &ir.MemberExpr{
		Base:     ir.Base{P: lst.P},
		Object:   lw.lowerExpr(lst.Items[1]),
		Property: prop,
		Computed: computed,
		Optional: optional,
	}
}

// lowerHelperCall lowers a built-in roster form `(name args...)` into a
// direct call against its exported runtime-helper identifier, marking
// the helper used so the emitter's import list picks it up (spec.md
// §4.2's fixed helper roster).
func (lw *Lowerer) lowerHelperCall(lst *ast.List, helper runtimehelpers.Name, ident string) ir.Expr {
	lw.Usage.Mark(helper)
	args := make([]ir.Expr, 0, len(lst.Items)-1)
	for _, a := range lst.Items[1:] {
		args = append(args, lw.lowerExpr(a))
	}
	return &ir.CallExpr{
		Base:   ir.Base{P: lst.P},
		Callee: &ir.Identifier{Base: ir.Base{P: lst.P}, Name: ident},
		Args:   args,
	}
}

// lowerCall lowers an ordinary function application `(callee args...)`.
func (lw *Lowerer) lowerCall(lst *ast.List) ir.Expr {
	callee := lw.lowerExpr(lst.Items[0])
	args := make([]ir.Expr, 0, len(lst.Items)-1)
	for _, a := range lst.Items[1:] {
		args = append(args, lw.lowerExpr(a))
	}
	return &ir.CallExpr{Base: ir.Base{P: lst.P}, Callee: callee, Args: args}
}

// lowerQuote reifies an unevaluated S-expression as IR data: symbols
// become their textual name as a string, lists and vectors become
// array literals, literals pass through unchanged.
func (lw *Lowerer) lowerQuote(n ast.Node) ir.Expr {
	switch t := n.(type) {
	case *ast.Literal:
		return lw.lowerLiteral(t)
	case *ast.Symbol:
		return &ir.StringLiteral{Base: ir.Base{P: t.P}, Value: t.String()}
	case *ast.List:
		elems := make([]ir.Expr, 0, len(t.Items))
		for _, it := range t.Items {
			elems = append(elems, lw.lowerQuote(it))
		}
		return &ir.ArrayExpr{Base: ir.Base{P: t.P}, Elements: elems}
	case *ast.Vector:
		elems := make([]ir.Expr, 0, len(t.Items))
		for _, it := range t.Items {
			elems = append(elems, lw.lowerQuote(it))
		}
		return &ir.ArrayExpr{Base: ir.Base{P: t.P}, Elements: elems}
	}
	return &ir.NullLiteral{Base: ir.Base{P: n.Pos()}}
}

// lowerTemplate lowers `(template "text" expr "text" ...)`, an
// alternating sequence of static-text Literals and interpolated forms,
// into a TemplateLiteral. len(Quasis) == len(Exprs)+1 always holds, so
// a missing trailing text segment is padded with "".
func (lw *Lowerer) lowerTemplate(lst *ast.List) ir.Expr {
	tmpl := &ir.TemplateLiteral{Base: ir.Base{P: lst.P}}
	parts := lst.Items[1:]
	for i, p := range parts {
		if i%2 == 0 {
			lit, ok := p.(*ast.Literal)
			if !ok || lit.Kind != ast.LiteralString {
				lw.errf(p, "template text segment must be a string literal")
				tmpl.Quasis = append(tmpl.Quasis, "")
				continue
			}
			s, _ := lit.Value.(string)
			tmpl.Quasis = append(tmpl.Quasis, s)
		} else {
			tmpl.Exprs = append(tmpl.Exprs, lw.lowerExpr(p))
		}
	}
	if len(tmpl.Quasis) == len(tmpl.Exprs) {
		tmpl.Quasis = append(tmpl.Quasis, "")
	}
	return tmpl
}
