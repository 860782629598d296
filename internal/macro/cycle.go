package macro

import "github.com/lisc-lang/lisc/internal/errors"

// ImportGraph is the subset of the module resolver's graph the macro
// expander needs to enforce the cyclic-macro-import policy (spec.md
// §4.4, §4.5): data cycles are fine, but a cycle containing a module
// that defines or re-exports a macro is not, because a macro must be
// callable at the importer's compile time — which is impossible if
// that macro's own module has not finished expanding yet.
type ImportGraph struct {
	// Edges maps a module specifier to the specifiers it imports.
	Edges map[string][]string
	// HasMacros marks modules that define at least one macro.
	HasMacros map[string]bool
}

// DetectCycles walks the graph from start via DFS and reports one
// CyclicMacroImport diagnostic per distinct cycle that contains at
// least one macro-defining module — not one per module on the cycle,
// per the Open Question resolution recorded in DESIGN.md.
func DetectCycles(g *ImportGraph, start string) []*errors.Diagnostic {
	var diags []*errors.Diagnostic
	reported := make(map[string]bool)

	onStack := make(map[string]bool)
	visited := make(map[string]bool)
	var stack []string

	var visit func(node string)
	visit = func(node string) {
		if onStack[node] {
			cycle := cyclePath(stack, node)
			if containsMacroModule(g, cycle) {
				key := canonicalCycleKey(cycle)
				if !reported[key] {
					reported[key] = true
					diags = append(diags, errors.NewCyclicMacroImport(cycle))
				}
			}
			return
		}
		if visited[node] {
			return
		}
		visited[node] = true
		onStack[node] = true
		stack = append(stack, node)
		for _, dep := range g.Edges[node] {
			visit(dep)
		}
		stack = stack[:len(stack)-1]
		onStack[node] = false
	}
	visit(start)
	return diags
}

// cyclePath extracts the cycle portion of stack, from its first
// occurrence of node through the end, plus node again to close the loop.
func cyclePath(stack []string, node string) []string {
	for i, s := range stack {
		if s == node {
			cycle := append([]string{}, stack[i:]...)
			return append(cycle, node)
		}
	}
	return append(append([]string{}, stack...), node)
}

func containsMacroModule(g *ImportGraph, cycle []string) bool {
	for _, m := range cycle {
		if g.HasMacros[m] {
			return true
		}
	}
	return false
}

// canonicalCycleKey normalizes a cycle (which may be reported starting
// from any of its members depending on DFS order) to a rotation-
// invariant key, so the same cycle is never reported twice.
func canonicalCycleKey(cycle []string) string {
	if len(cycle) <= 1 {
		if len(cycle) == 1 {
			return cycle[0]
		}
		return ""
	}
	body := cycle[:len(cycle)-1]
	best := -1
	for i, m := range body {
		if best == -1 || m < body[best] {
			best = i
		}
	}
	key := ""
	for i := 0; i < len(body); i++ {
		key += body[(best+i)%len(body)] + ">"
	}
	return key
}
