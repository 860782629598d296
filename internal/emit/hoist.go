package emit

import "github.com/lisc-lang/lisc/internal/ir"

// asBlock wraps a single statement as a one-statement block so every
// branch the emitter writes braces around (if/else, loop bodies,
// labeled statements) goes through the same block-scope hoisting pass,
// whether or not the source supplied an explicit block there.
func asBlock(s ir.Stmt) *ir.BlockStmt {
	if b, ok := s.(*ir.BlockStmt); ok {
		return b
	}
	return &ir.BlockStmt{Base: ir.Base{P: s.Pos()}, Stmts: []ir.Stmt{s}}
}

// collectHoistedDecls finds every DeclExpr reachable from stmts without
// crossing into a nested block or function scope (spec.md §4.8
// "hoisting for expression-everywhere"): a declaration written in
// expression position — `(foo (let x 1))` — is lifted to a `let`
// predeclared at the top of the block that lexically contains it, and
// the DeclExpr itself emits only the assignment `(x = init)` in place.
func collectHoistedDecls(stmts []ir.Stmt) []*ir.VariableDecl {
	var out []*ir.VariableDecl
	for _, s := range stmts {
		collectDeclsInStmt(s, &out)
	}
	return out
}

func collectDeclsInStmt(s ir.Stmt, out *[]*ir.VariableDecl) {
	switch t := s.(type) {
	case *ir.ExpressionStmt:
		collectDeclsInExpr(t.Expr, out)
	case *ir.ReturnStmt:
		if t.Value != nil {
			collectDeclsInExpr(t.Value, out)
		}
	case *ir.ThrowStmt:
		collectDeclsInExpr(t.Value, out)
	case *ir.IfStmt:
		collectDeclsInExpr(t.Test, out)
	case *ir.WhileStmt:
		collectDeclsInExpr(t.Test, out)
	case *ir.ForStmt:
		if expr, ok := t.Init.(ir.Expr); ok {
			collectDeclsInExpr(expr, out)
		}
		if t.Test != nil {
			collectDeclsInExpr(t.Test, out)
		}
		if t.Update != nil {
			collectDeclsInExpr(t.Update, out)
		}
	case *ir.ForOfStmt:
		collectDeclsInExpr(t.Iterable, out)
	case *ir.SwitchStmt:
		collectDeclsInExpr(t.Disc, out)
		for _, c := range t.Cases {
			if c.Test != nil {
				collectDeclsInExpr(c.Test, out)
			}
		}
	case *ir.LabeledStmt:
		collectDeclsInStmt(t.Body, out)
	case *ir.VariableDecl:
		for _, d := range t.Declarators {
			if d.Init != nil {
				collectDeclsInExpr(d.Init, out)
			}
		}
	case *ir.ExportDecl:
		if t.Value != nil {
			collectDeclsInExpr(t.Value, out)
		}
	}
}

func collectDeclsInExpr(x ir.Expr, out *[]*ir.VariableDecl) {
	if x == nil {
		return
	}
	switch t := x.(type) {
	case *ir.DeclExpr:
		*out = append(*out, t.Decl)
		for _, d := range t.Decl.Declarators {
			if d.Init != nil {
				collectDeclsInExpr(d.Init, out)
			}
		}
	case *ir.BinaryExpr:
		collectDeclsInExpr(t.Left, out)
		collectDeclsInExpr(t.Right, out)
	case *ir.LogicalExpr:
		collectDeclsInExpr(t.Left, out)
		collectDeclsInExpr(t.Right, out)
	case *ir.UnaryExpr:
		collectDeclsInExpr(t.Operand, out)
	case *ir.ConditionalExpr:
		collectDeclsInExpr(t.Test, out)
		collectDeclsInExpr(t.Cons, out)
		collectDeclsInExpr(t.Alt, out)
	case *ir.CallExpr:
		collectDeclsInExpr(t.Callee, out)
		for _, a := range t.Args {
			collectDeclsInExpr(a, out)
		}
	case *ir.NewExpr:
		collectDeclsInExpr(t.Callee, out)
		for _, a := range t.Args {
			collectDeclsInExpr(a, out)
		}
	case *ir.MemberExpr:
		collectDeclsInExpr(t.Object, out)
		if t.Computed {
			collectDeclsInExpr(t.Property, out)
		}
	case *ir.AssignmentExpr:
		collectDeclsInExpr(t.Target, out)
		collectDeclsInExpr(t.Value, out)
	case *ir.SequenceExpr:
		for _, el := range t.Exprs {
			collectDeclsInExpr(el, out)
		}
	case *ir.ArrayExpr:
		for _, el := range t.Elements {
			collectDeclsInExpr(el, out)
		}
	case *ir.ObjectExpr:
		for _, p := range t.Properties {
			if p.Computed {
				collectDeclsInExpr(p.Key, out)
			}
			collectDeclsInExpr(p.Value, out)
		}
	case *ir.SpreadElement:
		collectDeclsInExpr(t.Operand, out)
	case *ir.AwaitExpr:
		collectDeclsInExpr(t.Operand, out)
	case *ir.YieldExpr:
		if t.Operand != nil {
			collectDeclsInExpr(t.Operand, out)
		}
	case *ir.TemplateLiteral:
		for _, ex := range t.Exprs {
			collectDeclsInExpr(ex, out)
		}
	case *ir.InteropGetExpr:
		collectDeclsInExpr(t.Target, out)
		collectDeclsInExpr(t.Key, out)
		if t.Default != nil {
			collectDeclsInExpr(t.Default, out)
		}
	case *ir.InteropMaybeMethodExpr:
		collectDeclsInExpr(t.Target, out)
	case *ir.InteropCallExpr:
		collectDeclsInExpr(t.Target, out)
		collectDeclsInExpr(t.Method, out)
		for _, a := range t.Args {
			collectDeclsInExpr(a, out)
		}
	// FunctionExpr is a function-scope boundary: its own body gets its
	// own hoisting pass when it is emitted, so it is not walked here.
	}
}
