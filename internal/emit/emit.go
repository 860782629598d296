// Package emit walks a module's lowered, optimized IR tree and produces
// TypeScript source text plus source-map records, the same
// sequential-buffer-with-recorded-offsets idiom the teacher's
// internal/bytecode/serializer.go uses for its binary chunk format,
// generalized here to text output and (generated <-> source) position
// pairs instead of byte offsets.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lisc-lang/lisc/internal/errors"
	"github.com/lisc-lang/lisc/internal/ir"
	"github.com/lisc-lang/lisc/internal/lexer"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// Result is the emitter's output: generated code, the mapping records
// associated with it, and the set of runtime helpers the code actually
// references (spec.md §4.9's `{code, mappings, used_helpers}`).
type Result struct {
	Code         string
	Mappings     []Mapping
	UsedHelpers  []string
	RuntimeImport string // "" unless a helper was referenced
}

// Emitter renders one module's IR tree. It is not safe for concurrent
// use; the driver creates one per compilation.
type Emitter struct {
	buf      strings.Builder
	line     int
	col      int
	indent   int
	mappings []Mapping
	usage    *runtimehelpers.Usage
	inExpr   bool // true while emitting inside expression context
}

// New creates an Emitter. usage is shared with the optimizer so that
// helpers it introduces (e.g. trampoline) are reflected in the final
// used-helpers report even though the emitter never calls it directly
// for those references.
func New(usage *runtimehelpers.Usage) *Emitter {
	return &Emitter{line: 1, col: 1, usage: usage}
}

// EmitProgram renders stmts — a module's top-level statements — into a
// Result. Any unknown IR variant aborts emission with a CodeGenError
// diagnostic (spec.md §4.8): emission never silently drops a node.
func (e *Emitter) EmitProgram(stmts []ir.Stmt) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if diag, ok := r.(*errors.Diagnostic); ok {
				err = diag
				return
			}
			panic(r)
		}
	}()

	e.emitBlockStmts(stmts, true)

	helpers := e.usage.Names()
	runtimeImport := ""
	if len(helpers) > 0 {
		runtimeImport = fmt.Sprintf("import { %s } from %q;\n", strings.Join(exportedNames(helpers), ", "), runtimehelpers.RuntimeModuleSpecifier)
	}

	return Result{
		Code:          runtimeImport + e.buf.String(),
		Mappings:      e.mappings,
		UsedHelpers:   helpers,
		RuntimeImport: runtimeImport,
	}, nil
}

func exportedNames(helperNames []string) []string {
	out := make([]string, 0, len(helperNames))
	for _, n := range helperNames {
		h, ok := runtimehelpers.Lookup(n)
		if !ok {
			continue
		}
		out = append(out, exportedIdent(h.Name))
	}
	return out
}

// exportedIdent maps a roster Name to the camelCase identifier
// internal/runtimehelpers.ModuleSource exports it under.
func exportedIdent(name runtimehelpers.Name) string {
	switch name {
	case runtimehelpers.DynamicGet:
		return "dynamicGet"
	case runtimehelpers.DynamicCall:
		return "dynamicCall"
	case runtimehelpers.CallFn:
		return "callFn"
	case runtimehelpers.Range:
		return "range"
	case runtimehelpers.ToSequence:
		return "toSequence"
	case runtimehelpers.ForEach:
		return "forEach"
	case runtimehelpers.HashMap:
		return "hashMap"
	case runtimehelpers.Throw:
		return "throwHelper"
	case runtimehelpers.DeepFreeze:
		return "deepFreeze"
	case runtimehelpers.GetOp:
		return "getOp"
	case runtimehelpers.LazySeq:
		return "lazySeq"
	case runtimehelpers.Delay:
		return "delay"
	case runtimehelpers.Gensym:
		return "gensym"
	case runtimehelpers.Trampoline:
		return "trampoline"
	}
	return string(name)
}

// --- low-level buffer writes -------------------------------------------------

func (e *Emitter) write(s string) {
	for _, r := range s {
		if r == '\n' {
			e.line++
			e.col = 1
			continue
		}
		e.col++
	}
	e.buf.WriteString(s)
}

// writeAt writes s and records a mapping at the position the write
// started from, tagged with name when non-empty (an identifier's
// display name).
func (e *Emitter) writeAt(s string, pos lexer.Position, name string) {
	e.mappings = append(e.mappings, newMapping(e.line, e.col, pos, name))
	e.write(s)
}

func (e *Emitter) writeIndent() {
	e.write(strings.Repeat("  ", e.indent))
}

func (e *Emitter) newline() {
	e.write("\n")
}

func (e *Emitter) fail(variant string, pos lexer.Position) {
	panic(errors.NewCodeGenError(variant, pos))
}

// withExprContext runs fn with inExpr set to v, restoring the previous
// value afterward — the "expression vs. statement context" flag of
// spec.md §4.8's state table.
func (e *Emitter) withExprContext(v bool, fn func()) {
	prev := e.inExpr
	e.inExpr = v
	fn()
	e.inExpr = prev
}

func quoteString(s string) string {
	return strconv.Quote(s)
}
