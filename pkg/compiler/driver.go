package compiler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/errors"
	"github.com/lisc-lang/lisc/internal/macro"
	"github.com/lisc-lang/lisc/internal/parser"
	"github.com/lisc-lang/lisc/internal/resolver"
)

const sourceExt = ".lisc"

// ModuleResult pairs one module's path with its compiled Result (or
// the error that aborted its compilation), used by the batch APIs that
// must report per-module outcomes rather than stopping at the first
// failure (spec.md §7 "the top-level driver may continue compiling
// independent modules after one fails").
type ModuleResult struct {
	Path   string
	Result Result
	Err    error
}

// CompileDir recursively compiles every source file under dir
// independently: a failure in one module is recorded and compilation
// continues with the rest, matching the batch-diagnostics propagation
// rule for multi-module operations (spec.md §7).
func (c *Compiler) CompileDir(dir string) ([]ModuleResult, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, sourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]ModuleResult, 0, len(files))
	for _, f := range files {
		source, readErr := os.ReadFile(f)
		if readErr != nil {
			results = append(results, ModuleResult{Path: f, Err: readErr})
			continue
		}
		res, compErr := c.Transpile(string(source), TranspileOptions{File: f})
		results = append(results, ModuleResult{Path: f, Result: res, Err: compErr})
	}
	return results, nil
}

// BuildResult is what Build writes and reports: every compiled module
// plus the dependency graph it discovered while following imports from
// entry.
type BuildResult struct {
	Modules []ModuleResult
	// Graph maps a resolved module path to the resolved paths it imports,
	// in discovery order — the dependency graph Build persists to
	// <out>/lisc-deps.json (spec.md §4.9 "writes artifacts and their
	// dependency graph").
	Graph map[string][]string
}

// Build compiles entry and every module it transitively imports, writes
// each module's generated TypeScript (plus, unless SourceMapMode is
// SourceMapNone, its source map) under out mirroring entry's relative
// layout, and writes the combined dependency graph as JSON alongside.
func (c *Compiler) Build(entry, out string) (*BuildResult, error) {
	br := &BuildResult{Graph: make(map[string][]string)}
	envs := newMacroEnvs()
	hashes := make(map[string]string)

	visited := make(map[string]bool)

	var visit func(path string) error
	visit = func(path string) error {
		if visited[path] {
			return nil
		}
		visited[path] = true

		source, err := os.ReadFile(path)
		if err != nil {
			br.Modules = append(br.Modules, ModuleResult{Path: path, Err: err})
			return nil
		}

		forms, err := parser.Parse(path, string(source))
		if err != nil {
			br.Modules = append(br.Modules, ModuleResult{Path: path, Err: err})
			return nil
		}

		specs := extractImportSpecs(forms)
		deps := make([]string, 0, len(specs))
		// A local import's macro environment becomes this module's
		// parent scope so its macros are callable here too (spec.md
		// §4.4). When more than one local import defines macros, the
		// last one visited wins — the macro package exposes no way to
		// merge two environments into one from outside the package, so
		// multi-parent merging is left for a future macro.Env API
		// (see DESIGN.md Open Questions).
		var parent *macro.Env
		for _, spec := range specs {
			resolved := resolver.ResolvePath(path, spec.Specifier)
			deps = append(deps, resolved)
			if !spec.Remote {
				if err := visit(resolved); err != nil {
					return err
				}
				if depEnv := envs.get(resolved); depEnv != nil {
					parent = depEnv
				}
			}
		}
		br.Graph[path] = deps

		_, moduleEnv, expandErr := c.expandMacros(path, forms, parent)
		if expandErr == nil {
			envs.set(path, moduleEnv)
		}

		hash := resolver.HashSource(string(source))
		hashes[path] = hash

		// A module with a local macro parent can compile differently
		// across builds even with its own source unchanged (its
		// dependency's macros may have changed), so the on-disk cache
		// — keyed only on this module's own source hash — is consulted
		// solely for parent-less modules.
		if parent == nil && c.cache != nil {
			if entry, ok := c.cache.Lookup(path, hash, c.opts.CompilerVersion); ok {
				if cached, readErr := os.ReadFile(entry.ArtifactPath); readErr == nil {
					br.Modules = append(br.Modules, ModuleResult{Path: path, Result: Result{Code: string(cached)}})
					return nil
				}
			}
		}

		modResult, compErr := c.compileModule(path, string(source), parent)
		br.Modules = append(br.Modules, ModuleResult{Path: path, Result: modResult, Err: compErr})
		return nil
	}

	if err := visit(entry); err != nil {
		return nil, err
	}

	if err := c.writeBuildOutputs(entry, out, br); err != nil {
		return nil, err
	}

	if c.cache != nil {
		entryDir := filepath.Dir(entry)
		for _, m := range br.Modules {
			if m.Err != nil {
				continue
			}
			hash, ok := hashes[m.Path]
			if !ok {
				continue
			}
			rel, err := filepath.Rel(entryDir, m.Path)
			if err != nil {
				rel = filepath.Base(m.Path)
			}
			artifact := filepath.Join(out, strings.TrimSuffix(rel, sourceExt)+".ts")
			if err := c.cache.Store(resolver.CacheEntry{
				Path:            m.Path,
				SourceHash:      hash,
				CompilerVersion: c.opts.CompilerVersion,
				ArtifactPath:    artifact,
			}); err != nil {
				return nil, err
			}
		}
	}

	return br, nil
}

func (c *Compiler) writeBuildOutputs(entry, out string, br *BuildResult) error {
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	entryDir := filepath.Dir(entry)

	for _, m := range br.Modules {
		if m.Err != nil {
			continue
		}
		rel, err := filepath.Rel(entryDir, m.Path)
		if err != nil {
			rel = filepath.Base(m.Path)
		}
		outFile := filepath.Join(out, strings.TrimSuffix(rel, sourceExt)+".ts")
		if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(outFile, []byte(m.Result.Code), 0o644); err != nil {
			return err
		}
		if c.opts.SourceMapMode == SourceMapExternal && m.Result.SourceMap != "" {
			mapFile := outFile + ".map"
			if err := os.WriteFile(mapFile, []byte(m.Result.SourceMap), 0o644); err != nil {
				return err
			}
			comment := externalSourceMapComment(filepath.Base(mapFile))
			if err := appendToFile(outFile, comment); err != nil {
				return err
			}
		}
	}

	graphData, err := json.MarshalIndent(br.Graph, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(out, "lisc-deps.json"), graphData, 0o644)
}

func appendToFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(text)
	return err
}

// ResolveExports parses and macro-expands the module at path and
// returns its declared export names, for host tooling that needs a
// module's public surface without running the rest of the pipeline
// (spec.md §4.9).
func (c *Compiler) ResolveExports(path string) ([]string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	forms, err := parser.Parse(path, string(source))
	if err != nil {
		return nil, err
	}
	ex := macro.New(path, nil)
	expanded := ex.Expand(forms)
	if errs := ex.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	return resolver.DeclaredExportNames(expanded), nil
}

// extractImportSpecs reads the reader-validated `import` forms at a
// module's top level into resolver.ImportSpec values, the shape Build's
// graph walk and the resolver's own ResolveImports both consume.
func extractImportSpecs(forms []ast.Node) []resolver.ImportSpec {
	var specs []resolver.ImportSpec
	for _, f := range forms {
		lst, ok := f.(*ast.List)
		if !ok {
			continue
		}
		head, ok := lst.HeadSymbol()
		if !ok || head != "import" || len(lst.Items) != 4 {
			continue
		}
		lit, ok := lst.Items[3].(*ast.Literal)
		if !ok || lit.Kind != ast.LiteralString {
			continue
		}
		specifier, _ := lit.Value.(string)
		specs = append(specs, resolver.ImportSpec{Specifier: specifier, Remote: resolver.IsRemote(specifier)})
	}
	return specs
}

// diagnosticExitCode extracts the process exit code a module's
// compilation error should produce, per the error taxonomy (spec.md
// §7): a *errors.Diagnostic carries its own Kind-derived code; any
// other error (e.g. a missing file) is treated as exit code 1.
func diagnosticExitCode(err error) int {
	if err == nil {
		return 0
	}
	if d, ok := err.(*errors.Diagnostic); ok {
		return d.Kind.ExitCode()
	}
	return 1
}

