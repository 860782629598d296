package macro

import (
	"fmt"

	"github.com/lisc-lang/lisc/internal/ast"
)

// builtinFn is a compile-time sequence operator macro bodies may call
// (spec.md §4.4: "macro bodies may call a subset of the standard-library
// sequence operators at expansion time"). args are already-evaluated
// AST nodes; the call form itself is passed for position info.
type builtinFn func(in *interp, call *ast.List, args []ast.Node) (ast.Node, error)

func itemsOf(n ast.Node) ([]ast.Node, bool) {
	switch v := n.(type) {
	case *ast.List:
		return v.Items, true
	case *ast.Vector:
		return v.Items, true
	default:
		return nil, false
	}
}

var builtinFns = map[string]builtinFn{
	"list": func(in *interp, call *ast.List, args []ast.Node) (ast.Node, error) {
		return &ast.List{Items: args, P: call.P}, nil
	},
	"cons": func(in *interp, call *ast.List, args []ast.Node) (ast.Node, error) {
		if len(args) != 2 {
			return nil, in.errf(call, "cons expects 2 arguments, got %d", len(args))
		}
		rest, ok := itemsOf(args[1])
		if !ok {
			return nil, in.errf(call, "cons expects a sequence as its second argument")
		}
		items := append([]ast.Node{args[0]}, rest...)
		return &ast.List{Items: items, P: call.P}, nil
	},
	"first": func(in *interp, call *ast.List, args []ast.Node) (ast.Node, error) {
		if len(args) != 1 {
			return nil, in.errf(call, "first expects 1 argument, got %d", len(args))
		}
		items, ok := itemsOf(args[0])
		if !ok || len(items) == 0 {
			return &ast.Literal{Kind: ast.LiteralNull, P: call.P}, nil
		}
		return items[0], nil
	},
	"rest": func(in *interp, call *ast.List, args []ast.Node) (ast.Node, error) {
		if len(args) != 1 {
			return nil, in.errf(call, "rest expects 1 argument, got %d", len(args))
		}
		items, ok := itemsOf(args[0])
		if !ok || len(items) == 0 {
			return &ast.List{P: call.P}, nil
		}
		return &ast.List{Items: items[1:], P: call.P}, nil
	},
	"reverse": func(in *interp, call *ast.List, args []ast.Node) (ast.Node, error) {
		if len(args) != 1 {
			return nil, in.errf(call, "reverse expects 1 argument, got %d", len(args))
		}
		items, ok := itemsOf(args[0])
		if !ok {
			return nil, in.errf(call, "reverse expects a sequence")
		}
		out := make([]ast.Node, len(items))
		for i, it := range items {
			out[len(items)-1-i] = it
		}
		return &ast.List{Items: out, P: call.P}, nil
	},
	"count": func(in *interp, call *ast.List, args []ast.Node) (ast.Node, error) {
		if len(args) != 1 {
			return nil, in.errf(call, "count expects 1 argument, got %d", len(args))
		}
		items, ok := itemsOf(args[0])
		if !ok {
			return nil, in.errf(call, "count expects a sequence")
		}
		return &ast.Literal{Kind: ast.LiteralNumber, Value: float64(len(items)), P: call.P}, nil
	},
	"nth": func(in *interp, call *ast.List, args []ast.Node) (ast.Node, error) {
		if len(args) != 2 {
			return nil, in.errf(call, "nth expects 2 arguments, got %d", len(args))
		}
		items, ok := itemsOf(args[0])
		if !ok {
			return nil, in.errf(call, "nth expects a sequence as its first argument")
		}
		lit, ok := args[1].(*ast.Literal)
		if !ok {
			return nil, in.errf(call, "nth expects a numeric index")
		}
		idx, ok := lit.Value.(float64)
		if !ok || int(idx) < 0 || int(idx) >= len(items) {
			return nil, in.errf(call, "nth: index %v out of range", lit.Value)
		}
		return items[int(idx)], nil
	},
	"map": func(in *interp, call *ast.List, args []ast.Node) (ast.Node, error) {
		if len(args) != 2 {
			return nil, in.errf(call, "map expects (fn-symbol seq)")
		}
		fnSym, ok := args[0].(*ast.Symbol)
		if !ok {
			return nil, in.errf(call, "map's first argument must name a compile-time function")
		}
		items, ok := itemsOf(args[1])
		if !ok {
			return nil, in.errf(call, "map's second argument must be a sequence")
		}
		if len(items) > maxForce {
			return nil, fmt.Errorf("macro: map input exceeds bound of %d elements", maxForce)
		}
		fn, ok := builtinFns[fnSym.Name]
		if !ok {
			return nil, in.errf(call, "unknown compile-time function %q", fnSym.Name)
		}
		out := make([]ast.Node, len(items))
		for i, it := range items {
			v, err := fn(in, call, []ast.Node{it})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return &ast.List{Items: out, P: call.P}, nil
	},
}
