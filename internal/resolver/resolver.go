package resolver

import (
	"context"
	"sync"

	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/errors"
	"github.com/lisc-lang/lisc/internal/parser"
)

// maxParallelFetches bounds the resolver's remote-fetch fan-out. No
// semaphore/errgroup library is available in the dependency pack (see
// DESIGN.md), so the bound is enforced with a plain buffered channel.
const maxParallelFetches = 8

// ImportSpec is one import statement the caller (pkg/compiler's
// extractImportSpecs, acting on the reader's import forms) asks
// the resolver to satisfy.
type ImportSpec struct {
	Specifier string
	Remote    bool
}

// Resolver walks the module graph, reading local files sequentially and
// fetching remote specifiers in parallel, consistent with spec.md §4.5's
// sequencing rules.
type Resolver struct {
	Graph   *Graph
	Local   Fetcher
	Remote  Fetcher
	Cache   *Cache
	Version string // compiler_version cache-key component
}

// New builds a Resolver with the standard local/remote fetchers.
func New(cache *Cache, version string) *Resolver {
	return &Resolver{
		Graph:   NewGraph(),
		Local:   LocalFetcher{},
		Remote:  NewRemoteFetcher(),
		Cache:   cache,
		Version: version,
	}
}

// ResolveFile parses a single file's source into a Record. This is the
// entry point for a top-level compile; ResolveImports is used for imports
// discovered while walking that file's `import` forms.
func (r *Resolver) ResolveFile(file, source string) (*Record, error) {
	rec, existed := r.Graph.GetOrCreate(file)
	if existed {
		return rec, nil
	}
	r.Graph.SetStatus(file, StatusCompiling)
	forms, err := parser.Parse(file, source)
	if err != nil {
		rec.Status = StatusErrored
		rec.Err = err
		return rec, err
	}
	rec.AST = forms
	rec.Status = StatusCompiled
	return rec, nil
}

// ResolveImports resolves every import in specs relative to fromFile.
// Local relative imports are resolved one at a time, in order, to
// preserve observable evaluation order; every remote/package import is
// fetched concurrently (bounded by maxParallelFetches), since the
// source language places no ordering requirement on their side effects
// relative to each other.
func (r *Resolver) ResolveImports(ctx context.Context, fromFile string, specs []ImportSpec) ([]*Record, []error) {
	results := make([]*Record, len(specs))
	errs := make([]error, len(specs))

	var localIdx, remoteIdx []int
	for i, s := range specs {
		if IsRemote(s.Specifier) {
			remoteIdx = append(remoteIdx, i)
		} else {
			localIdx = append(localIdx, i)
		}
	}

	for _, i := range localIdx {
		rec, err := r.resolveOne(ctx, fromFile, specs[i].Specifier)
		results[i], errs[i] = rec, err
	}

	if len(remoteIdx) > 0 {
		sem := make(chan struct{}, maxParallelFetches)
		var wg sync.WaitGroup
		for _, i := range remoteIdx {
			i := i
			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				rec, err := r.resolveOne(ctx, fromFile, specs[i].Specifier)
				results[i], errs[i] = rec, err
			}()
		}
		wg.Wait()
	}

	return results, errs
}

// resolveOne resolves a single specifier, handling the circular-import
// pre-registration rule: GetOrCreate returns the same Exports pointer
// to every importer that arrives while the module is still resolving,
// so a cycle observes late-bound values instead of deadlocking.
func (r *Resolver) resolveOne(ctx context.Context, fromFile, specifier string) (*Record, error) {
	resolved := ResolvePath(fromFile, specifier)

	rec, existed := r.Graph.GetOrCreate(resolved)
	r.Graph.AddDependent(resolved, fromFile)
	if existed {
		// Either already compiled, or mid-resolution (a cycle): in both
		// cases the caller gets the stable Exports pointer and may
		// proceed without waiting.
		return rec, nil
	}

	fetcher := r.Local
	if IsRemote(specifier) {
		fetcher = r.Remote
	}
	source, err := fetcher.Fetch(ctx, resolved)
	if err != nil {
		rec.Status = StatusErrored
		rec.Err = err
		return rec, err
	}

	if r.Cache != nil {
		hash := HashSource(source)
		if entry, ok := r.Cache.Lookup(resolved, hash, r.Version); ok {
			_ = entry // artifact reuse is the driver's concern; the resolver does not act on the hit
		}
	}

	forms, err := parser.Parse(resolved, source)
	if err != nil {
		rec.Status = StatusErrored
		rec.Err = err
		return rec, err
	}
	rec.AST = forms
	rec.Status = StatusCompiled
	return rec, nil
}

// DeclaredExportNames extracts the names bound by `(export [n1, n2])`
// forms at a module's top level, for pre-registering its Exports object
// before evaluation begins.
func DeclaredExportNames(forms []ast.Node) []string {
	var names []string
	for _, f := range forms {
		lst, ok := f.(*ast.List)
		if !ok {
			continue
		}
		head, ok := lst.HeadSymbol()
		if !ok || head != "export" || len(lst.Items) < 2 {
			continue
		}
		switch spec := lst.Items[1].(type) {
		case *ast.Vector:
			for _, item := range spec.Items {
				if sym, ok := item.(*ast.Symbol); ok {
					names = append(names, sym.Name)
				}
			}
		case *ast.Literal:
			if s, ok := spec.Value.(string); ok {
				names = append(names, s)
			}
		}
	}
	return names
}

// WrapIOError reports an unresolved local path as the spec's IOError
// case (spec.md §4.5 "Failures: unresolved path (IOError)").
func WrapIOError(specifier string, cause error) *errors.Diagnostic {
	return errors.NewResolveError(specifier, cause)
}
