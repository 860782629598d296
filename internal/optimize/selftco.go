package optimize

import (
	"fmt"

	"github.com/lisc-lang/lisc/internal/ir"
)

// ApplySelfTCO rewrites decl's body in place if it contains one or more
// tail-position calls to decl itself, wrapping the body in a
// `while (true)` loop and replacing each such tail call with a parameter
// reassignment followed by `continue`. Non-tail self-calls, and any
// parameter that is not a plain identifier (a destructuring parameter
// has no single slot to reassign), leave the function untouched.
func ApplySelfTCO(decl *ir.FnFunctionDecl) bool {
	body := decl.Body
	if body == nil {
		return false
	}
	paramNames := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		if p.Rest {
			return false
		}
		id, ok := p.Name.(*ir.Identifier)
		if !ok {
			return false
		}
		paramNames[i] = id.Name
	}

	r := &selfTCORewriter{fnName: decl.Name, paramNames: paramNames}
	for i, s := range body.Stmts {
		body.Stmts[i] = r.rewrite(s)
	}
	if !r.changed {
		return false
	}

	decl.Body = &ir.BlockStmt{Base: body.Base, Stmts: []ir.Stmt{
		&ir.WhileStmt{
			Base: body.Base,
			Test: &ir.BoolLiteral{Base: body.Base, Value: true},
			Body: body,
		},
	}}
	return true
}

// selfTCORewriter walks a function body's tail positions (blocks,
// if/else branches, labeled statements — per the optimizer's "nested
// conditionals, blocks, and if/else branches" contract) looking for a
// `return` whose value is, or resolves through nested conditionals and
// sequences to, a direct self-call.
type selfTCORewriter struct {
	fnName     string
	paramNames []string
	changed    bool
}

func (r *selfTCORewriter) rewrite(s ir.Stmt) ir.Stmt {
	switch t := s.(type) {
	case *ir.BlockStmt:
		for i, inner := range t.Stmts {
			t.Stmts[i] = r.rewrite(inner)
		}
		return t
	case *ir.IfStmt:
		t.Cons = r.rewrite(t.Cons)
		if t.Alt != nil {
			t.Alt = r.rewrite(t.Alt)
		}
		return t
	case *ir.LabeledStmt:
		t.Body = r.rewrite(t.Body)
		return t
	case *ir.ReturnStmt:
		return r.convertReturn(t)
	}
	return s
}

func (r *selfTCORewriter) convertReturn(ret *ir.ReturnStmt) ir.Stmt {
	if ret.Value == nil {
		return ret
	}
	stmt, changed := r.convertValue(ret.Value)
	if !changed {
		return ret
	}
	r.changed = true
	return stmt
}

// convertValue resolves v's tail position(s): a ConditionalExpr or
// SequenceExpr is restructured into the equivalent statement form so a
// self-call nested inside either can still be replaced, even though only
// one branch (or only the final element) may actually be self-recursive.
func (r *selfTCORewriter) convertValue(v ir.Expr) (ir.Stmt, bool) {
	switch e := v.(type) {
	case *ir.ConditionalExpr:
		consStmt, consChanged := r.convertValue(e.Cons)
		altStmt, altChanged := r.convertValue(e.Alt)
		if !consChanged && !altChanged {
			return nil, false
		}
		if !consChanged {
			consStmt = &ir.ReturnStmt{Base: e.Base, Value: e.Cons}
		}
		if !altChanged {
			altStmt = &ir.ReturnStmt{Base: e.Base, Value: e.Alt}
		}
		return &ir.IfStmt{Base: e.Base, Test: e.Test, Cons: consStmt, Alt: altStmt}, true
	case *ir.SequenceExpr:
		if len(e.Exprs) == 0 {
			return nil, false
		}
		last := e.Exprs[len(e.Exprs)-1]
		tailStmt, changed := r.convertValue(last)
		if !changed {
			return nil, false
		}
		stmts := make([]ir.Stmt, 0, len(e.Exprs))
		for _, before := range e.Exprs[:len(e.Exprs)-1] {
			stmts = append(stmts, &ir.ExpressionStmt{Base: e.Base, Expr: before})
		}
		stmts = append(stmts, tailStmt)
		return &ir.BlockStmt{Base: e.Base, Stmts: stmts}, true
	case *ir.CallExpr:
		if !r.isSelfCall(e) {
			return nil, false
		}
		return r.buildContinueBlock(e), true
	}
	return nil, false
}

func (r *selfTCORewriter) isSelfCall(call *ir.CallExpr) bool {
	id, ok := call.Callee.(*ir.Identifier)
	if !ok || id.Name != r.fnName || call.Optional {
		return false
	}
	if len(call.Args) != len(r.paramNames) {
		return false
	}
	for _, a := range call.Args {
		if _, isSpread := a.(*ir.SpreadElement); isSpread {
			return false
		}
	}
	return true
}

// buildContinueBlock lowers a tail self-call into: evaluate every
// argument into a fresh temporary first, then assign each parameter from
// its temporary, then continue. The temporary pass-through is required
// because an argument expression may itself reference a parameter that
// an earlier assignment in the same rewrite would otherwise have already
// clobbered (e.g. `(f (+ a b) a)`).
func (r *selfTCORewriter) buildContinueBlock(call *ir.CallExpr) ir.Stmt {
	base := call.Base
	if len(r.paramNames) == 0 {
		return &ir.ContinueStmt{Base: base}
	}

	decl := &ir.VariableDecl{Base: base, Kind: ir.VarConst}
	tempNames := make([]string, len(r.paramNames))
	for i, arg := range call.Args {
		tempNames[i] = fmt.Sprintf("__tco_%s_%d", r.fnName, i)
		decl.Declarators = append(decl.Declarators, ir.VariableDeclarator{
			Name: &ir.Identifier{Base: base, Name: tempNames[i]},
			Init: arg,
		})
	}

	stmts := make([]ir.Stmt, 0, len(r.paramNames)+2)
	stmts = append(stmts, decl)
	for i, name := range r.paramNames {
		stmts = append(stmts, &ir.ExpressionStmt{Base: base, Expr: &ir.AssignmentExpr{
			Base:   base,
			Op:     "=",
			Target: &ir.Identifier{Base: base, Name: name},
			Value:  &ir.Identifier{Base: base, Name: tempNames[i]},
		}})
	}
	stmts = append(stmts, &ir.ContinueStmt{Base: base})
	return &ir.BlockStmt{Base: base, Stmts: stmts}
}
