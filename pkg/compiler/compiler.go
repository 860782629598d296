// Package compiler is the compilation driver: it sequences the reader,
// macro expander, lowerer, optimizer, and emitter into the single-module
// and multi-module pipelines a host embeds, behind a small, test-observed
// surface (Transpile, Run, Build, CompileDir, ResolveExports).
package compiler

import (
	"sync"

	"github.com/lisc-lang/lisc/internal/emit"
	"github.com/lisc-lang/lisc/internal/macro"
	"github.com/lisc-lang/lisc/internal/optimize"
	"github.com/lisc-lang/lisc/internal/resolver"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// SourceMapMode selects how a module's source map is attached to its
// generated output (spec.md §6 "Output files").
type SourceMapMode int

const (
	// SourceMapInline base64-encodes the map into a trailing comment.
	SourceMapInline SourceMapMode = iota
	// SourceMapExternal writes a sibling ".map" file instead.
	SourceMapExternal
	// SourceMapNone omits source-map output entirely.
	SourceMapNone
)

// Options configures a Compiler. The zero value is a usable default:
// inline source maps, every optimizer pass enabled, no on-disk cache,
// and the runtime helpers imported from their default module specifier.
type Options struct {
	// CompilerVersion is the cache-key component that invalidates
	// stale artifacts across a binary upgrade (spec.md §4.9).
	CompilerVersion string

	// CacheDir, when non-empty, is opened as an on-disk content-
	// addressed cache alongside the in-memory session cache.
	CacheDir string

	// RuntimeImportPath overrides the specifier generated code imports
	// its helpers from (spec.md §6 "a fixed path configurable per
	// build"). Empty keeps runtimehelpers.RuntimeModuleSpecifier.
	RuntimeImportPath string

	SourceMapMode SourceMapMode

	// OptimizerOptions is forwarded to optimize.New for every module.
	OptimizerOptions []optimize.Option

	// NodeCommand is the host executable Run delegates execution to,
	// argv[0] plus any fixed leading arguments. Defaults to {"node"}.
	NodeCommand []string
}

func (o Options) runtimeImportPath() string {
	if o.RuntimeImportPath != "" {
		return o.RuntimeImportPath
	}
	return runtimehelpers.RuntimeModuleSpecifier
}

func (o Options) nodeCommand() []string {
	if len(o.NodeCommand) > 0 {
		return o.NodeCommand
	}
	return []string{"node"}
}

// cacheKey is the in-memory session cache's key: (source_hash,
// compiler_version), exactly the on-disk Cache's key (spec.md §4.9).
type cacheKey struct {
	sourceHash string
	version    string
}

// Compiler is the embeddable driver a host program builds once and
// reuses across many Transpile/Build/Run calls. It is safe for
// concurrent use.
type Compiler struct {
	opts  Options
	cache *resolver.Cache

	sessionMu sync.Mutex
	session   map[cacheKey]Result
}

// New builds a Compiler. If opts.CacheDir is set, its on-disk manifest
// is loaded (or created) immediately; a failure to do so is returned
// rather than silently falling back to an uncached driver.
func New(opts Options) (*Compiler, error) {
	c := &Compiler{opts: opts, session: make(map[cacheKey]Result)}
	if opts.CacheDir != "" {
		cache, err := resolver.OpenCache(opts.CacheDir)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// Result is one module's compiled output: generated code, its mapping
// records, the runtime helpers it references, and (when requested) the
// rendered source-map payload (spec.md §4.9's `{code, mappings,
// used_helpers}`, extended with the map text Build/Transpile need to
// actually write it out).
type Result struct {
	Code        string
	Mappings    []emit.Mapping
	UsedHelpers []string
	SourceMap   string // rendered JSON, "" if SourceMapMode is SourceMapNone
}

// macroEnvs is shared, read-only state the multi-module driver builds
// once per CompileDir/Build call: each module's macro environment,
// keyed by resolved path, so an importer can see macros its local
// dependencies define (spec.md §4.4 "a macro must be callable at the
// importer's compile time").
type macroEnvs struct {
	mu   sync.Mutex
	envs map[string]*macro.Env
}

func newMacroEnvs() *macroEnvs {
	return &macroEnvs{envs: make(map[string]*macro.Env)}
}

func (m *macroEnvs) get(path string) *macro.Env {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.envs[path]
}

func (m *macroEnvs) set(path string, env *macro.Env) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.envs[path] = env
}
