// Package resolver implements the module graph: resolving import
// specifiers to compiled module records, sequencing local imports,
// parallelizing remote fetches, and giving circular imports a stable
// exports-object reference to observe (spec.md §3 "Module Graph", §4.5).
package resolver

import (
	"sync"

	"github.com/lisc-lang/lisc/internal/ast"
)

// Status is a module's position in the resolve/compile lifecycle.
type Status int

const (
	StatusFetching Status = iota
	StatusCompiling
	StatusCompiled
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusFetching:
		return "fetching"
	case StatusCompiling:
		return "compiling"
	case StatusCompiled:
		return "compiled"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Exports is a module's export table. The pointer identity of an
// Exports value is the mechanism by which circular imports observe
// late-bound values: it is allocated once, before the module's body
// starts evaluating, and every importer — including one on a cycle —
// receives the same pointer (spec.md §3 invariant, §4.5).
type Exports struct {
	mu    sync.RWMutex
	names map[string]any
}

// NewExports returns an Exports pre-populated with the zero value (nil)
// for every statically declared name, so cyclic importers see the full
// key set immediately even before the exporting module finishes running.
func NewExports(declared []string) *Exports {
	e := &Exports{names: make(map[string]any, len(declared))}
	for _, n := range declared {
		e.names[n] = nil
	}
	return e
}

// Set assigns value to name, making it visible to every holder of this
// Exports pointer — including modules that imported it before the
// assigning module finished evaluating.
func (e *Exports) Set(name string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.names[name] = value
}

// Get returns the current value bound to name.
func (e *Exports) Get(name string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.names[name]
	return v, ok
}

// Names returns the declared export names in map-iteration order; callers
// needing stable order should sort the result themselves.
func (e *Exports) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.names))
	for n := range e.names {
		out = append(out, n)
	}
	return out
}

// Record is one module's entry in the graph.
type Record struct {
	Path       string
	Status     Status
	AST        []ast.Node
	Exports    *Exports
	Dependents []string // paths of modules that import this one
	Err        error
}
