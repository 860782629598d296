// Package optimize rewrites a module's IR tree to make tail-recursive
// functions run in bounded stack space, the way the teacher's
// internal/bytecode/optimizer.go rewrites a compiled chunk: a small,
// independently-toggleable pass pipeline driven by a functional-options
// config, run once per compilation.
package optimize

import (
	"github.com/lisc-lang/lisc/internal/ir"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// OptimizationPass names one independently-toggleable rewrite.
type OptimizationPass string

const (
	PassSelfTCO   OptimizationPass = "self-tco"
	PassMutualTCO OptimizationPass = "mutual-tco"
)

// Option configures an Optimizer.
type Option func(*optimizeConfig)

type optimizeConfig struct {
	enabled map[OptimizationPass]bool
}

func defaultOptimizeConfig() optimizeConfig {
	return optimizeConfig{
		enabled: map[OptimizationPass]bool{
			PassSelfTCO:   true,
			PassMutualTCO: true,
		},
	}
}

func (cfg optimizeConfig) isEnabled(pass OptimizationPass) bool {
	if cfg.enabled == nil {
		return true
	}
	enabled, ok := cfg.enabled[pass]
	if !ok {
		return true
	}
	return enabled
}

// WithOptimizationPass enables or disables one pass.
func WithOptimizationPass(pass OptimizationPass, enabled bool) Option {
	return func(cfg *optimizeConfig) {
		if cfg.enabled == nil {
			cfg.enabled = make(map[OptimizationPass]bool)
		}
		cfg.enabled[pass] = enabled
	}
}

// Optimizer rewrites a module's top-level statements in place.
type Optimizer struct {
	config optimizeConfig
	usage  *runtimehelpers.Usage
}

// New creates an Optimizer. usage records every trampoline-helper
// reference PassMutualTCO introduces, shared with the emitter's
// used-helpers report.
func New(usage *runtimehelpers.Usage, opts ...Option) *Optimizer {
	cfg := defaultOptimizeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Optimizer{config: cfg, usage: usage}
}

// Optimize rewrites stmts' top-level function declarations in place and
// reports whether anything changed. Mutual-recursion thunking runs
// first: it only ever touches a tail call to a *different* group member,
// so running it before self-TCO cannot interfere with self-TCO's own
// self-tail-call rewrite of the same function.
func (o *Optimizer) Optimize(stmts []ir.Stmt) bool {
	decls := topLevelFunctions(stmts)
	changed := false

	if o.config.isEnabled(PassMutualTCO) {
		mutualChanged, inGroup := ApplyMutualTCO(decls, o.usage)
		if mutualChanged {
			changed = true
		}
		// A bare top-level call (not inside any decl's body) reaching a
		// mutual-recursion group member needs the same trampoline
		// wrapping a call from another group member's body gets, or the
		// group's thunking never actually runs for that call site
		// (spec.md §8 "Mutual-TCO correctness").
		if len(inGroup) > 0 {
			for _, s := range stmts {
				if _, isDecl := s.(*ir.FnFunctionDecl); isDecl {
					continue
				}
				if WrapTopLevelCallsWithTrampoline(s, inGroup, o.usage) {
					changed = true
				}
			}
		}
	}
	if o.config.isEnabled(PassSelfTCO) {
		for _, d := range decls {
			if ApplySelfTCO(d) {
				changed = true
			}
		}
	}
	return changed
}

func topLevelFunctions(stmts []ir.Stmt) []*ir.FnFunctionDecl {
	var decls []*ir.FnFunctionDecl
	for _, s := range stmts {
		if d, ok := s.(*ir.FnFunctionDecl); ok {
			decls = append(decls, d)
		}
	}
	return decls
}
