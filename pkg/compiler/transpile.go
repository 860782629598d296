package compiler

import (
	"strconv"
	"strings"

	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/emit"
	"github.com/lisc-lang/lisc/internal/lower"
	"github.com/lisc-lang/lisc/internal/macro"
	"github.com/lisc-lang/lisc/internal/optimize"
	"github.com/lisc-lang/lisc/internal/parser"
	"github.com/lisc-lang/lisc/internal/resolver"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// TranspileOptions is the per-call input Transpile takes alongside the
// source text (spec.md §4.9's `transpile(source, options)`).
type TranspileOptions struct {
	// File names the module for diagnostics and source-map SourceFile
	// entries. Defaults to "<anonymous>".
	File string

	// MacroParent, when non-nil, is the macro environment of a module
	// this one imports — macros it defines become visible here too
	// (spec.md §4.4). CompileDir/Build populate this automatically;
	// a caller using Transpile directly supplies it for an already-
	// resolved dependency, or leaves it nil for a standalone module.
	MacroParent *macro.Env
}

// Transpile runs the full single-module pipeline — parse, validate,
// macro-expand, lower, optimize, emit — and returns the generated code
// together with its mappings and used-helper set. For a module with no
// MacroParent the in-memory session cache is consulted first, keyed by
// (source_hash, compiler_version); a hit skips recompilation entirely
// (spec.md §4.9). Transpile does not read or write the on-disk cache;
// only Build consults it.
func (c *Compiler) Transpile(source string, topts TranspileOptions) (Result, error) {
	file := topts.File
	if file == "" {
		file = "<anonymous>"
	}

	key := cacheKey{sourceHash: resolver.HashSource(source), version: c.opts.CompilerVersion}
	if topts.MacroParent == nil {
		if res, ok := c.lookupSession(key); ok {
			return res, nil
		}
	}

	res, err := c.compileModule(file, source, topts.MacroParent)
	if err != nil {
		return Result{}, err
	}

	if topts.MacroParent == nil {
		c.storeSession(key, res)
	}
	return res, nil
}

func (c *Compiler) lookupSession(key cacheKey) (Result, bool) {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	res, ok := c.session[key]
	return res, ok
}

func (c *Compiler) storeSession(key cacheKey, res Result) {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	c.session[key] = res
}

// compileModule runs the pipeline once, with no caching: the shared
// implementation both Transpile and the multi-module driver call.
func (c *Compiler) compileModule(file, source string, macroParent *macro.Env) (Result, error) {
	forms, err := parser.Parse(file, source)
	if err != nil {
		return Result{}, err
	}
	if errs := parser.ValidateImportExport(forms); len(errs) > 0 {
		return Result{}, errs[0]
	}

	expanded, moduleEnv, err := c.expandMacros(file, forms, macroParent)
	if err != nil {
		return Result{}, err
	}
	_ = moduleEnv // the multi-module driver records this; a bare Transpile call has no graph to record it in

	usage := runtimehelpers.NewUsage()
	lw := lower.New(file, usage)
	stmts := lw.LowerProgram(expanded)
	if errs := lw.Errors(); len(errs) > 0 {
		return Result{}, errs[0]
	}

	optimize.New(usage, c.opts.OptimizerOptions...).Optimize(stmts)

	emitted, err := emit.New(usage).EmitProgram(stmts)
	if err != nil {
		return Result{}, err
	}

	code := c.applyRuntimeImportPath(emitted)

	res := Result{Code: code, Mappings: emitted.Mappings, UsedHelpers: emitted.UsedHelpers}
	if c.opts.SourceMapMode != SourceMapNone {
		mapJSON, err := renderSourceMap(file, emitted.Mappings)
		if err != nil {
			return Result{}, err
		}
		res.SourceMap = mapJSON
		if c.opts.SourceMapMode == SourceMapInline {
			res.Code += inlineSourceMapComment(mapJSON)
		}
	}
	return res, nil
}

// expandMacros runs the macro expander and, on success, also returns
// the module's own macro environment so a caller assembling a module
// graph can offer it as the MacroParent of modules that import this one.
func (c *Compiler) expandMacros(file string, forms []ast.Node, parent *macro.Env) ([]ast.Node, *macro.Env, error) {
	ex := macro.New(file, parent)
	expanded := ex.Expand(forms)
	if errs := ex.Errors(); len(errs) > 0 {
		return nil, nil, errs[0]
	}
	return expanded, ex.Env, nil
}

// applyRuntimeImportPath rewrites the generated runtime-helper import
// to the configured specifier when it differs from the default.
func (c *Compiler) applyRuntimeImportPath(res emit.Result) string {
	path := c.opts.runtimeImportPath()
	if path == runtimehelpers.RuntimeModuleSpecifier || res.RuntimeImport == "" {
		return res.Code
	}
	return strings.Replace(res.Code, strconv.Quote(runtimehelpers.RuntimeModuleSpecifier), strconv.Quote(path), 1)
}
