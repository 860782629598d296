package macro

import (
	"fmt"

	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/errors"
)

// Expander walks a module's top-level forms, expands sugar and macro
// applications, and collects user macro definitions along the way. It
// mirrors the teacher's multi-pass analyzer architecture (Pass /
// PassManager) adapted to a single recursive rewrite pass, since macro
// expansion — unlike type analysis — must fully settle before any later
// stage runs at all.
type Expander struct {
	Env    *Env
	Gensym *Gensym
	File   string

	errs []*errors.Diagnostic
}

// New creates an Expander for one module. parent, when non-nil, is the
// macro environment of an enclosing scope (e.g. macros visible from an
// import) and becomes this expander's outer scope.
func New(file string, parent *Env) *Expander {
	env := NewEnv()
	if parent != nil {
		env = NewEnclosedEnv(parent)
	}
	return &Expander{Env: env, Gensym: NewGensym(), File: file}
}

// Errors returns every diagnostic accumulated across calls to Expand.
func (ex *Expander) Errors() []*errors.Diagnostic { return ex.errs }

// Expand fully expands a module's top-level forms: `(macro ...)`
// definitions are consumed and removed from the output; every other
// form is recursively expanded until no macro application remains.
func (ex *Expander) Expand(forms []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(forms))
	for _, f := range forms {
		if lst, ok := f.(*ast.List); ok {
			if head, ok := lst.HeadSymbol(); ok && head == "macro" {
				ex.defineMacro(lst)
				continue
			}
		}
		out = append(out, ex.expandNode(f, 0))
	}
	return out
}

// maxExpansionDepth guards against a macro that expands into an
// application of itself forever; a legitimate expansion chain in
// practice bottoms out in a handful of steps.
const maxExpansionDepth = 500

func (ex *Expander) expandNode(n ast.Node, depth int) ast.Node {
	if depth > maxExpansionDepth {
		ex.errs = append(ex.errs, errors.NewMacroError(n.Pos(), ex.File,
			"macro expansion did not terminate (exceeded depth limit)"))
		return n
	}
	lst, ok := n.(*ast.List)
	if !ok {
		if vec, ok := n.(*ast.Vector); ok {
			items := make([]ast.Node, len(vec.Items))
			for i, it := range vec.Items {
				items[i] = ex.expandNode(it, depth+1)
			}
			return &ast.Vector{Items: items, P: vec.P}
		}
		return n
	}
	if head, ok := lst.HeadSymbol(); ok {
		if head == "quote" {
			return lst
		}
		if m, ok := ex.Env.Resolve(head); ok {
			expanded, err := ex.apply(m, lst)
			if err != nil {
				ex.errs = append(ex.errs, err)
				return lst
			}
			return ex.expandNode(expanded, depth+1)
		}
		if rewritten, ok := expandSugar(lst); ok {
			return ex.expandNode(rewritten, depth+1)
		}
	}
	items := make([]ast.Node, len(lst.Items))
	for i, it := range lst.Items {
		items[i] = ex.expandNode(it, depth+1)
	}
	return &ast.List{Items: items, P: lst.P}
}

// defineMacro parses `(macro name (params…) body…)` and registers it.
func (ex *Expander) defineMacro(lst *ast.List) {
	if len(lst.Items) < 3 {
		ex.errs = append(ex.errs, errors.NewMacroError(lst.P, ex.File,
			"macro definition requires a name, a parameter list, and a body"))
		return
	}
	nameSym, ok := lst.Items[1].(*ast.Symbol)
	if !ok {
		ex.errs = append(ex.errs, errors.NewMacroError(lst.Items[1].Pos(), ex.File,
			"macro name must be a symbol"))
		return
	}
	fixed, rest, err := parseParamList(lst.Items[2])
	if err != nil {
		ex.errs = append(ex.errs, errors.NewMacroError(lst.Items[2].Pos(), ex.File, err.Error()))
		return
	}
	ex.Env.Define(&Macro{
		Name:   nameSym.Name,
		Params: fixed,
		Rest:   rest,
		Body:   lst.Items[3:],
	})
}

// parseParamList accepts either a Vector of symbols (`[a b]`), or a
// List mixing fixed params with a trailing `& rest` marker
// (`(a b & rest)`, or bare `(& rest)` for an all-rest macro as in
// `(macro sum-all (& nums) ...)`).
func parseParamList(n ast.Node) (fixed []string, rest string, err error) {
	var items []ast.Node
	switch v := n.(type) {
	case *ast.Vector:
		items = v.Items
	case *ast.List:
		items = v.Items
	default:
		return nil, "", fmt.Errorf("macro parameter list must be a vector or list")
	}
	for i := 0; i < len(items); i++ {
		s, ok := items[i].(*ast.Symbol)
		if !ok {
			return nil, "", fmt.Errorf("macro parameter must be a symbol")
		}
		if s.Name == "&" {
			if i+1 >= len(items) {
				return nil, "", fmt.Errorf("`&` must be followed by a rest parameter name")
			}
			restSym, ok := items[i+1].(*ast.Symbol)
			if !ok {
				return nil, "", fmt.Errorf("rest parameter must be a symbol")
			}
			rest = restSym.Name
			break
		}
		fixed = append(fixed, s.Name)
	}
	return fixed, rest, nil
}

// apply binds call's arguments to m's parameters and evaluates m's body
// forms through the compile-time interpreter, returning the last body
// form's result as the expansion (an implicit `do` over body forms,
// matching the reader's top-level "body…" grammar).
func (ex *Expander) apply(m *Macro, call *ast.List) (ast.Node, error) {
	args := call.Items[1:]
	if m.Rest == "" && len(args) != len(m.Params) {
		return nil, errors.NewMacroError(call.P, ex.File,
			fmt.Sprintf("macro %q expects %d argument(s), got %d", m.Name, len(m.Params), len(args)))
	}
	if m.Rest != "" && len(args) < len(m.Params) {
		return nil, errors.NewMacroError(call.P, ex.File,
			fmt.Sprintf("macro %q expects at least %d argument(s), got %d", m.Name, len(m.Params), len(args)))
	}
	bindings := make(map[string]ast.Node, len(m.Params)+1)
	for i, p := range m.Params {
		bindings[p] = args[i]
	}
	if m.Rest != "" {
		bindings[m.Rest] = &ast.List{Items: args[len(m.Params):], P: call.P}
	}
	in := &interp{bindings: bindings, gensym: ex.Gensym, file: ex.File}
	var result ast.Node = &ast.Literal{Kind: ast.LiteralNull, P: call.P}
	for _, form := range m.Body {
		v, err := in.Eval(form)
		if err != nil {
			return nil, errors.NewMacroError(call.P, ex.File, err.Error())
		}
		result = v
	}
	return result, nil
}
