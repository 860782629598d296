package optimize

import (
	"sort"

	"github.com/lisc-lang/lisc/internal/ir"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// ApplyMutualTCO finds strongly-connected tail-call groups among decls
// (a module's top-level function declarations) and rewrites them per
// the optimizer's mutual-recursion contract: every tail call from one
// group member to a *different* member becomes a zero-argument thunk,
// and every other call site reaching a group member — from outside the
// group, or a non-tail call from inside it — is wrapped with the
// trampoline helper. It returns the set of names placed in a mutual-
// recursion group, so the caller can also wrap call sites outside any
// decl's body (e.g. a bare top-level call) the same way.
func ApplyMutualTCO(decls []*ir.FnFunctionDecl, usage *runtimehelpers.Usage) (bool, map[string]bool) {
	byName := make(map[string]*ir.FnFunctionDecl, len(decls))
	for _, d := range decls {
		byName[d.Name] = d
	}

	graph := make(map[string]map[string]bool, len(decls))
	for _, d := range decls {
		graph[d.Name] = tailCallTargets(d, byName)
	}

	changed := false
	inGroup := make(map[string]bool)
	for _, group := range tarjanSCC(graph) {
		if len(group) < 2 {
			continue
		}
		sort.Strings(group)
		members := make(map[string]bool, len(group))
		for _, m := range group {
			members[m] = true
			inGroup[m] = true
		}
		for _, name := range group {
			if rewriteGroupTailCalls(byName[name], members) {
				changed = true
			}
		}
	}
	if len(inGroup) == 0 {
		return changed, inGroup
	}
	for _, d := range decls {
		if wrapExternalCallsWithTrampoline(d.Body, inGroup, d.Name, usage) {
			changed = true
		}
	}
	return changed, inGroup
}

// WrapTopLevelCallsWithTrampoline wraps every call in a non-declaration
// top-level statement (e.g. a bare top-level call like `(is-even
// 10000)`) that reaches a mutual-recursion group member, exactly like
// wrapExternalCallsWithTrampoline does for a decl's body. Top-level
// statements never belong to inGroup themselves, so there is no self-
// call to exclude.
func WrapTopLevelCallsWithTrampoline(stmt ir.Stmt, inGroup map[string]bool, usage *runtimehelpers.Usage) bool {
	return wrapExternalCallsWithTrampoline(stmt, inGroup, "", usage)
}

// tailCallTargets collects the names (restricted to byName, the
// candidate top-level functions) that d tail-calls.
func tailCallTargets(d *ir.FnFunctionDecl, byName map[string]*ir.FnFunctionDecl) map[string]bool {
	targets := make(map[string]bool)
	body := d.Body
	if body == nil {
		return targets
	}
	collectTailCalls(body, byName, targets)
	return targets
}

func collectTailCalls(s ir.Stmt, byName map[string]*ir.FnFunctionDecl, out map[string]bool) {
	switch t := s.(type) {
	case *ir.BlockStmt:
		for _, inner := range t.Stmts {
			collectTailCalls(inner, byName, out)
		}
	case *ir.IfStmt:
		collectTailCalls(t.Cons, byName, out)
		if t.Alt != nil {
			collectTailCalls(t.Alt, byName, out)
		}
	case *ir.LabeledStmt:
		collectTailCalls(t.Body, byName, out)
	case *ir.ReturnStmt:
		if t.Value != nil {
			collectTailExprCalls(t.Value, byName, out)
		}
	}
}

func collectTailExprCalls(e ir.Expr, byName map[string]*ir.FnFunctionDecl, out map[string]bool) {
	switch t := e.(type) {
	case *ir.ConditionalExpr:
		collectTailExprCalls(t.Cons, byName, out)
		collectTailExprCalls(t.Alt, byName, out)
	case *ir.SequenceExpr:
		if len(t.Exprs) > 0 {
			collectTailExprCalls(t.Exprs[len(t.Exprs)-1], byName, out)
		}
	case *ir.CallExpr:
		if id, ok := t.Callee.(*ir.Identifier); ok {
			if _, known := byName[id.Name]; known {
				out[id.Name] = true
			}
		}
	}
}

// rewriteGroupTailCalls replaces every tail call in d's body that
// targets a different member of members with a zero-argument thunk.
// Self-tail-calls are left for ApplySelfTCO.
func rewriteGroupTailCalls(d *ir.FnFunctionDecl, members map[string]bool) bool {
	body := d.Body
	if body == nil {
		return false
	}
	changed := false
	mapTailExprs(body, func(e ir.Expr) ir.Expr {
		call, ok := e.(*ir.CallExpr)
		if !ok {
			return e
		}
		id, ok := call.Callee.(*ir.Identifier)
		if !ok || id.Name == d.Name || !members[id.Name] {
			return e
		}
		changed = true
		return &ir.FunctionExpr{Base: call.Base, Body: call}
	})
	return changed
}

func mapTailExprs(s ir.Stmt, fn func(ir.Expr) ir.Expr) {
	switch t := s.(type) {
	case *ir.BlockStmt:
		for _, inner := range t.Stmts {
			mapTailExprs(inner, fn)
		}
	case *ir.IfStmt:
		mapTailExprs(t.Cons, fn)
		if t.Alt != nil {
			mapTailExprs(t.Alt, fn)
		}
	case *ir.LabeledStmt:
		mapTailExprs(t.Body, fn)
	case *ir.ReturnStmt:
		if t.Value != nil {
			t.Value = mapTailExpr(t.Value, fn)
		}
	}
}

func mapTailExpr(e ir.Expr, fn func(ir.Expr) ir.Expr) ir.Expr {
	switch t := e.(type) {
	case *ir.ConditionalExpr:
		t.Cons = mapTailExpr(t.Cons, fn)
		t.Alt = mapTailExpr(t.Alt, fn)
		return t
	case *ir.SequenceExpr:
		if len(t.Exprs) > 0 {
			t.Exprs[len(t.Exprs)-1] = mapTailExpr(t.Exprs[len(t.Exprs)-1], fn)
		}
		return t
	default:
		return fn(e)
	}
}

// wrapExternalCallsWithTrampoline wraps every call in stmt that targets
// a group member, except a call to excludeSelf (a decl's own self-
// recursive tail calls, left for self-TCO) and the inner call of a
// thunk literal rewriteGroupTailCalls just produced (that call is
// driven directly by the trampoline loop once the thunk runs, not
// re-wrapped here). excludeSelf is empty when stmt is not itself a
// group member's body (e.g. a bare top-level call site).
func wrapExternalCallsWithTrampoline(stmt ir.Stmt, inGroup map[string]bool, excludeSelf string, usage *runtimehelpers.Usage) bool {
	if stmt == nil {
		return false
	}
	changed := false
	rewriteExprsInStmt(stmt, func(e ir.Expr) ir.Expr {
		call, ok := e.(*ir.CallExpr)
		if !ok {
			return e
		}
		id, ok := call.Callee.(*ir.Identifier)
		if !ok || !inGroup[id.Name] || id.Name == excludeSelf {
			return e
		}
		changed = true
		usage.Mark(runtimehelpers.Trampoline)
		return &ir.CallExpr{
			Base:   call.Base,
			Callee: &ir.Identifier{Base: call.Base, Name: "trampoline"},
			Args:   []ir.Expr{&ir.FunctionExpr{Base: call.Base, Body: call}},
		}
	})
	return changed
}

// tarjanSCC computes strongly connected components of graph (restricted
// to edges whose target is itself a key of graph — a tail call to a
// function outside the candidate set is not part of any cycle here).
// Iteration order is sorted for deterministic output across runs.
func tarjanSCC(graph map[string]map[string]bool) [][]string {
	index := 0
	indices := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var result [][]string

	names := make([]string, 0, len(graph))
	for n := range graph {
		names = append(names, n)
	}
	sort.Strings(names)

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		targets := make([]string, 0, len(graph[v]))
		for t := range graph[v] {
			targets = append(targets, t)
		}
		sort.Strings(targets)

		for _, w := range targets {
			if _, candidate := graph[w]; !candidate {
				continue
			}
			if _, visited := indices[w]; !visited {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var group []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				group = append(group, w)
				if w == v {
					break
				}
			}
			result = append(result, group)
		}
	}

	for _, n := range names {
		if _, visited := indices[n]; !visited {
			strongconnect(n)
		}
	}
	return result
}
