package macro

import (
	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/lexer"
)

// expandSugar recognizes a closed set of built-in convenience forms and
// rewrites them into the smaller core the lowerer understands (spec.md
// §4.4: "Built-in forms (binding, conditional, loop, ...) are expanded
// via handlers"). It returns (rewritten, true) when it recognized the
// form, or (node, false) to leave the node untouched.
func expandSugar(n *ast.List) (ast.Node, bool) {
	head, ok := n.HeadSymbol()
	if !ok {
		return n, false
	}
	switch head {
	case "when":
		// (when test body...) -> (if test (do body...) null)
		if len(n.Items) < 2 {
			return n, false
		}
		test := n.Items[1]
		body := n.Items[2:]
		return &ast.List{P: n.P, Items: []ast.Node{
			sym("if", n.P), test, doBlock(body, n.P), nullLit(n.P),
		}}, true
	case "unless":
		// (unless test body...) -> (if test null (do body...))
		if len(n.Items) < 2 {
			return n, false
		}
		test := n.Items[1]
		body := n.Items[2:]
		return &ast.List{P: n.P, Items: []ast.Node{
			sym("if", n.P), test, nullLit(n.P), doBlock(body, n.P),
		}}, true
	case "cond":
		return expandCond(n), true
	case "->":
		return expandThread(n, false), true
	case "->>":
		return expandThread(n, true), true
	}
	return n, false
}

func sym(name string, p lexer.Position) *ast.Symbol {
	return &ast.Symbol{Name: name, P: p}
}

func nullLit(p lexer.Position) *ast.Literal {
	return &ast.Literal{Kind: ast.LiteralNull, P: p}
}

func doBlock(body []ast.Node, p lexer.Position) ast.Node {
	if len(body) == 1 {
		return body[0]
	}
	items := append([]ast.Node{sym("do", p)}, body...)
	return &ast.List{Items: items, P: p}
}

// expandCond rewrites `(cond t1 e1 t2 e2 ... else eN)` into nested
// `if`/`else` forms. A final unpaired clause, or a clause guarded by
// the symbol `else`, becomes the innermost else branch; an otherwise
// exhausted cond with no match evaluates to null.
func expandCond(n *ast.List) ast.Node {
	clauses := n.Items[1:]
	var build func(i int) ast.Node
	build = func(i int) ast.Node {
		if i >= len(clauses) {
			return nullLit(n.P)
		}
		if i == len(clauses)-1 {
			return clauses[i]
		}
		test := clauses[i]
		if s, ok := test.(*ast.Symbol); ok && s.Name == "else" {
			return clauses[i+1]
		}
		return &ast.List{P: n.P, Items: []ast.Node{
			sym("if", n.P), test, clauses[i+1], build(i + 2),
		}}
	}
	return build(0)
}

// expandThread implements the `->` (thread-first) and `->>`
// (thread-last) pipeline sugar: `(-> x (f a) (g b))` becomes
// `(g (f x a) b)`, inserting the accumulated value as the first
// argument of each step (or the last, for `->>`).
func expandThread(n *ast.List, last bool) ast.Node {
	acc := n.Items[1]
	for _, step := range n.Items[2:] {
		switch s := step.(type) {
		case *ast.List:
			items := make([]ast.Node, 0, len(s.Items)+1)
			items = append(items, s.Items[0])
			if last {
				items = append(items, s.Items[1:]...)
				items = append(items, acc)
			} else {
				items = append(items, acc)
				items = append(items, s.Items[1:]...)
			}
			acc = &ast.List{Items: items, P: s.P}
		default:
			acc = &ast.List{Items: []ast.Node{step, acc}, P: step.Pos()}
		}
	}
	return acc
}
