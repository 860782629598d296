package macro

import (
	"fmt"

	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/errors"
	"github.com/lisc-lang/lisc/internal/lexer"
)

// maxForce bounds how many elements the compile-time interpreter will
// pull from a sequence-producing builtin before giving up, per
// spec.md §4.4 ("lazy sequences ... must be forced to a bounded length
// (default 10,000) to ensure termination").
const maxForce = 10000

// interp is the compile-time evaluator for macro bodies. Bindings map a
// macro parameter name to the caller's unevaluated argument AST; a
// macro body never sees host-language values, only nodes.
type interp struct {
	bindings map[string]ast.Node
	gensym   *Gensym
	file     string
}

// Eval evaluates one macro-body form, returning the AST node it
// produces. The result becomes part of the expanded program.
func (in *interp) Eval(node ast.Node) (ast.Node, error) {
	switch n := node.(type) {
	case *ast.Symbol:
		if n.Name == "&" {
			return n, nil
		}
		if bound, ok := in.bindings[n.Name]; ok {
			return bound, nil
		}
		return n, nil
	case *ast.Literal:
		return n, nil
	case *ast.Vector:
		items, err := in.evalSpliceable(n.Items)
		if err != nil {
			return nil, err
		}
		return &ast.Vector{Items: items, P: n.P}, nil
	case *ast.List:
		return in.evalList(n)
	default:
		return node, nil
	}
}

func (in *interp) evalList(n *ast.List) (ast.Node, error) {
	if len(n.Items) == 0 {
		return n, nil
	}
	if head, ok := n.Head().(*ast.Symbol); ok {
		switch head.Name {
		case "quote":
			if len(n.Items) != 2 {
				return nil, in.errf(n, "quote expects exactly one argument")
			}
			return n.Items[1], nil
		case "quasiquote":
			if len(n.Items) != 2 {
				return nil, in.errf(n, "quasiquote expects exactly one argument")
			}
			return in.quasiquote(n.Items[1], 1)
		case "gensym":
			base := "g"
			if len(n.Items) == 2 {
				if lit, ok := n.Items[1].(*ast.Literal); ok {
					if s, ok := lit.Value.(string); ok {
						base = s
					}
				}
			}
			return in.gensym.Fresh(base, n), nil
		}
		if fn, ok := builtinFns[head.Name]; ok {
			args := make([]ast.Node, 0, len(n.Items)-1)
			for _, a := range n.Items[1:] {
				v, err := in.Eval(a)
				if err != nil {
					return nil, err
				}
				args = append(args, v)
			}
			return fn(in, n, args)
		}
	}
	// Not a recognized compile-time special form or builtin: evaluate
	// each item (so nested quasiquotes/gensym calls still run) and
	// reconstruct the call as data, since the expander does not know
	// how to apply an arbitrary user function at compile time.
	items, err := in.evalSpliceable(n.Items)
	if err != nil {
		return nil, err
	}
	return &ast.List{Items: items, P: n.P}, nil
}

// evalSpliceable evaluates a list/vector's items, honoring
// `(unquote-splice x)` forms encountered directly as elements outside
// of an enclosing quasiquote (macro bodies frequently build argument
// lists this way).
func (in *interp) evalSpliceable(items []ast.Node) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(items))
	for _, item := range items {
		if lst, ok := item.(*ast.List); ok {
			if h, ok := lst.HeadSymbol(); ok && h == "unquote-splice" {
				seq, err := in.Eval(lst.Items[1])
				if err != nil {
					return nil, err
				}
				spliced, err := forceSequence(seq)
				if err != nil {
					return nil, err
				}
				out = append(out, spliced...)
				continue
			}
		}
		v, err := in.Eval(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// quasiquote evaluates a quasiquote template at the given nesting
// depth, substituting `(unquote x)` with the evaluated node and
// splicing `(unquote-splice xs)` into the surrounding list.
func (in *interp) quasiquote(node ast.Node, depth int) (ast.Node, error) {
	lst, ok := node.(*ast.List)
	if !ok {
		if vec, ok := node.(*ast.Vector); ok {
			items, err := in.quasiquoteItems(vec.Items, depth)
			if err != nil {
				return nil, err
			}
			return &ast.Vector{Items: items, P: vec.P}, nil
		}
		return node, nil
	}
	if h, ok := lst.HeadSymbol(); ok {
		switch h {
		case "unquote":
			if depth == 1 {
				return in.Eval(lst.Items[1])
			}
			inner, err := in.quasiquote(lst.Items[1], depth-1)
			if err != nil {
				return nil, err
			}
			return wrapForm("unquote", inner, lst.P), nil
		case "quasiquote":
			inner, err := in.quasiquote(lst.Items[1], depth+1)
			if err != nil {
				return nil, err
			}
			return wrapForm("quasiquote", inner, lst.P), nil
		}

	}
	items, err := in.quasiquoteItems(lst.Items, depth)
	if err != nil {
		return nil, err
	}
	return &ast.List{Items: items, P: lst.P}, nil
}

func (in *interp) quasiquoteItems(items []ast.Node, depth int) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(items))
	for _, item := range items {
		if lst, ok := item.(*ast.List); ok {
			if h, ok := lst.HeadSymbol(); ok && h == "unquote-splice" && depth == 1 {
				seq, err := in.Eval(lst.Items[1])
				if err != nil {
					return nil, err
				}
				spliced, err := forceSequence(seq)
				if err != nil {
					return nil, err
				}
				out = append(out, spliced...)
				continue
			}
		}
		v, err := in.quasiquote(item, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// wrapForm re-wraps inner as `(name inner)`, used to preserve a nested
// unquote/quasiquote form whose depth has not yet reached the point
// where it should be evaluated.
func wrapForm(name string, inner ast.Node, pos lexer.Position) ast.Node {
	return &ast.List{Items: []ast.Node{&ast.Symbol{Name: name, P: pos}, inner}, P: pos}
}

func (in *interp) errf(n ast.Node, format string, args ...any) error {
	return errors.NewMacroError(n.Pos(), in.file, fmt.Sprintf(format, args...))
}

// forceSequence coerces an evaluated node into a Go slice of AST nodes
// for splicing, bounding iteration to maxForce elements.
func forceSequence(node ast.Node) ([]ast.Node, error) {
	switch n := node.(type) {
	case *ast.List:
		if len(n.Items) > maxForce {
			return nil, fmt.Errorf("macro: sequence exceeds bound of %d elements", maxForce)
		}
		return n.Items, nil
	case *ast.Vector:
		if len(n.Items) > maxForce {
			return nil, fmt.Errorf("macro: sequence exceeds bound of %d elements", maxForce)
		}
		return n.Items, nil
	default:
		return []ast.Node{node}, nil
	}
}
