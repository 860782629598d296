package optimize

import "github.com/lisc-lang/lisc/internal/ir"

// rewriteExprsInStmt applies visit to every expression reachable from s,
// children before parents. This is the same "walk every node, rewrite
// in place" shape the teacher's serializer/optimizer pair uses over a
// bytecode chunk, generalized to a typed tree instead of a flat
// instruction slice.
func rewriteExprsInStmt(s ir.Stmt, visit func(ir.Expr) ir.Expr) {
	switch t := s.(type) {
	case *ir.BlockStmt:
		for _, inner := range t.Stmts {
			rewriteExprsInStmt(inner, visit)
		}
	case *ir.ExpressionStmt:
		t.Expr = rewriteExpr(t.Expr, visit)
	case *ir.ReturnStmt:
		if t.Value != nil {
			t.Value = rewriteExpr(t.Value, visit)
		}
	case *ir.ThrowStmt:
		t.Value = rewriteExpr(t.Value, visit)
	case *ir.IfStmt:
		t.Test = rewriteExpr(t.Test, visit)
		rewriteExprsInStmt(t.Cons, visit)
		if t.Alt != nil {
			rewriteExprsInStmt(t.Alt, visit)
		}
	case *ir.WhileStmt:
		t.Test = rewriteExpr(t.Test, visit)
		rewriteExprsInStmt(t.Body, visit)
	case *ir.ForStmt:
		switch init := t.Init.(type) {
		case ir.Expr:
			t.Init = rewriteExpr(init, visit)
		case *ir.VariableDecl:
			rewriteVariableDecl(init, visit)
		}
		if t.Test != nil {
			t.Test = rewriteExpr(t.Test, visit)
		}
		if t.Update != nil {
			t.Update = rewriteExpr(t.Update, visit)
		}
		rewriteExprsInStmt(t.Body, visit)
	case *ir.ForOfStmt:
		t.Iterable = rewriteExpr(t.Iterable, visit)
		rewriteExprsInStmt(t.Body, visit)
	case *ir.TryStmt:
		rewriteExprsInStmt(t.Block, visit)
		if t.Catch != nil {
			rewriteExprsInStmt(t.Catch.Body, visit)
		}
		if t.Finally != nil {
			rewriteExprsInStmt(t.Finally, visit)
		}
	case *ir.SwitchStmt:
		t.Disc = rewriteExpr(t.Disc, visit)
		for ci := range t.Cases {
			if t.Cases[ci].Test != nil {
				t.Cases[ci].Test = rewriteExpr(t.Cases[ci].Test, visit)
			}
			for _, cs := range t.Cases[ci].Stmts {
				rewriteExprsInStmt(cs, visit)
			}
		}
	case *ir.LabeledStmt:
		rewriteExprsInStmt(t.Body, visit)
	case *ir.VariableDecl:
		rewriteVariableDecl(t, visit)
	}
}

func rewriteVariableDecl(decl *ir.VariableDecl, visit func(ir.Expr) ir.Expr) {
	for i := range decl.Declarators {
		if decl.Declarators[i].Init != nil {
			decl.Declarators[i].Init = rewriteExpr(decl.Declarators[i].Init, visit)
		}
	}
}

// isSynthesizedThunk reports whether fn is exactly the zero-parameter,
// single-call-expression-body shape ApplyMutualTCO's thunk rewrite
// produces. The trampoline-wrap pass must not descend into one: the
// call inside is driven directly by the trampoline helper at the point
// the thunk is eventually invoked, not wrapped again itself.
func isSynthesizedThunk(fn *ir.FunctionExpr) bool {
	if len(fn.Params) != 0 {
		return false
	}
	_, ok := fn.Body.(*ir.CallExpr)
	return ok
}

func rewriteExpr(e ir.Expr, visit func(ir.Expr) ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	switch t := e.(type) {
	case *ir.BinaryExpr:
		t.Left = rewriteExpr(t.Left, visit)
		t.Right = rewriteExpr(t.Right, visit)
	case *ir.LogicalExpr:
		t.Left = rewriteExpr(t.Left, visit)
		t.Right = rewriteExpr(t.Right, visit)
	case *ir.UnaryExpr:
		t.Operand = rewriteExpr(t.Operand, visit)
	case *ir.ConditionalExpr:
		t.Test = rewriteExpr(t.Test, visit)
		t.Cons = rewriteExpr(t.Cons, visit)
		t.Alt = rewriteExpr(t.Alt, visit)
	case *ir.CallExpr:
		t.Callee = rewriteExpr(t.Callee, visit)
		for i := range t.Args {
			t.Args[i] = rewriteExpr(t.Args[i], visit)
		}
	case *ir.NewExpr:
		t.Callee = rewriteExpr(t.Callee, visit)
		for i := range t.Args {
			t.Args[i] = rewriteExpr(t.Args[i], visit)
		}
	case *ir.MemberExpr:
		t.Object = rewriteExpr(t.Object, visit)
		if t.Computed {
			t.Property = rewriteExpr(t.Property, visit)
		}
	case *ir.AssignmentExpr:
		t.Target = rewriteExpr(t.Target, visit)
		t.Value = rewriteExpr(t.Value, visit)
	case *ir.SequenceExpr:
		for i := range t.Exprs {
			t.Exprs[i] = rewriteExpr(t.Exprs[i], visit)
		}
	case *ir.ArrayExpr:
		for i := range t.Elements {
			t.Elements[i] = rewriteExpr(t.Elements[i], visit)
		}
	case *ir.ObjectExpr:
		for i := range t.Properties {
			if t.Properties[i].Computed {
				t.Properties[i].Key = rewriteExpr(t.Properties[i].Key, visit)
			}
			t.Properties[i].Value = rewriteExpr(t.Properties[i].Value, visit)
		}
	case *ir.SpreadElement:
		t.Operand = rewriteExpr(t.Operand, visit)
	case *ir.AwaitExpr:
		t.Operand = rewriteExpr(t.Operand, visit)
	case *ir.YieldExpr:
		if t.Operand != nil {
			t.Operand = rewriteExpr(t.Operand, visit)
		}
	case *ir.TemplateLiteral:
		for i := range t.Exprs {
			t.Exprs[i] = rewriteExpr(t.Exprs[i], visit)
		}
	case *ir.InteropGetExpr:
		t.Target = rewriteExpr(t.Target, visit)
		t.Key = rewriteExpr(t.Key, visit)
		if t.Default != nil {
			t.Default = rewriteExpr(t.Default, visit)
		}
	case *ir.InteropMaybeMethodExpr:
		t.Target = rewriteExpr(t.Target, visit)
	case *ir.InteropCallExpr:
		t.Target = rewriteExpr(t.Target, visit)
		t.Method = rewriteExpr(t.Method, visit)
		for i := range t.Args {
			t.Args[i] = rewriteExpr(t.Args[i], visit)
		}
	case *ir.DeclExpr:
		rewriteVariableDecl(t.Decl, visit)
	case *ir.FunctionExpr:
		if !isSynthesizedThunk(t) {
			switch body := t.Body.(type) {
			case *ir.BlockStmt:
				rewriteExprsInStmt(body, visit)
			case ir.Expr:
				t.Body = rewriteExpr(body, visit)
			}
		}
	}
	return visit(e)
}
