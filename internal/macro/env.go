// Package macro implements the expander: it walks S-expressions,
// expands built-in sugar forms and user-defined macros, and exposes the
// hygienic gensym operator and the bounded compile-time interpreter
// macro bodies may use.
package macro

import "github.com/lisc-lang/lisc/internal/ast"

// Macro is a user-defined template: `(macro name (params…) body…)`.
// Params bind to the unevaluated argument forms at each call site — a
// macro never sees evaluated values, only S-expressions.
type Macro struct {
	Name   string
	Params []string
	Rest   string // "" when the macro takes no rest parameter
	Body   []ast.Node
}

// Env is a macro-name scope, chained to an outer scope exactly like the
// symbol table a type-checking pass would use: a macro defined in an
// outer environment (the parent passed to New) is visible to the module
// expanded inside it. The expander defines macros only at a module's top
// level and creates no nested environment per form.
type Env struct {
	macros map[string]*Macro
	outer  *Env
}

// NewEnv creates a root macro environment with no outer scope.
func NewEnv() *Env {
	return &Env{macros: make(map[string]*Macro)}
}

// NewEnclosedEnv creates a macro environment nested inside outer.
func NewEnclosedEnv(outer *Env) *Env {
	return &Env{macros: make(map[string]*Macro), outer: outer}
}

// Define registers m in the current scope, shadowing any macro of the
// same name visible from an outer scope.
func (e *Env) Define(m *Macro) {
	e.macros[m.Name] = m
}

// Resolve looks up name, walking outward through enclosing scopes.
func (e *Env) Resolve(name string) (*Macro, bool) {
	for s := e; s != nil; s = s.outer {
		if m, ok := s.macros[name]; ok {
			return m, true
		}
	}
	return nil, false
}
