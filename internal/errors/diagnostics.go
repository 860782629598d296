package errors

import (
	"fmt"
	"strings"

	"github.com/lisc-lang/lisc/internal/lexer"
)

// Kind identifies which stage of the pipeline raised a Diagnostic, per
// the error taxonomy.
type Kind string

const (
	KindParseError            Kind = "ParseError"
	KindMacroError             Kind = "MacroError"
	KindCyclicMacroImport      Kind = "CyclicMacroImport"
	KindResolveError           Kind = "ResolveError"
	KindLowerError             Kind = "LowerError"
	KindCodeGenError           Kind = "CodeGenError"
	KindRuntimeHelperMissing   Kind = "RuntimeHelperMissing"
)

// ExitCode reports the process exit code a diagnostic of this kind
// should produce: 0 success (never used here), 1 user-visible, 2 internal.
func (k Kind) ExitCode() int {
	if k == KindCodeGenError {
		return 2
	}
	return 1
}

// Span marks a source range, used for diagnostics that cover more than a
// single point (e.g. an unbalanced delimiter spanning open...EOF).
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// Diagnostic is the uniform shape every stage reports failures through,
// per spec.md §6: {kind, message, file, line, column, span?, cause?}.
type Diagnostic struct {
	Kind    Kind
	Message string
	File    string
	Pos     lexer.Position
	Span    *Span
	Cause   error

	// Cycle names every module on a CyclicMacroImport cycle, in
	// visitation order, when Kind == KindCyclicMacroImport.
	Cycle []string
}

func (d *Diagnostic) Error() string { return d.Format(false) }

// Unwrap lets errors.Is/errors.As reach the underlying cause.
func (d *Diagnostic) Unwrap() error { return d.Cause }

// Format renders the diagnostic with its [kind] tag and, for cycles,
// every module on the path.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] ", d.Kind)
	if d.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", d.File, d.Pos.Line, d.Pos.Column)
	}
	sb.WriteString(d.Message)
	if len(d.Cycle) > 0 {
		sb.WriteString(" (cycle: ")
		sb.WriteString(strings.Join(d.Cycle, " -> "))
		sb.WriteString(")")
	}
	if d.Cause != nil {
		fmt.Fprintf(&sb, ": %v", d.Cause)
	}
	return sb.String()
}

func NewParseError(pos lexer.Position, file, msg string) *Diagnostic {
	return &Diagnostic{Kind: KindParseError, Message: msg, File: file, Pos: pos}
}

func NewMacroError(pos lexer.Position, file, msg string) *Diagnostic {
	return &Diagnostic{Kind: KindMacroError, Message: msg, File: file, Pos: pos}
}

// NewCyclicMacroImport reports a macro-import cycle. cycle names every
// module on the cycle, in visitation order — one diagnostic per distinct
// cycle, not one per module (see DESIGN.md Open Questions).
func NewCyclicMacroImport(cycle []string) *Diagnostic {
	return &Diagnostic{
		Kind:    KindCyclicMacroImport,
		Message: "macro import cycle detected",
		Cycle:   cycle,
	}
}

func NewResolveError(specifier string, cause error) *Diagnostic {
	return &Diagnostic{
		Kind:    KindResolveError,
		Message: fmt.Sprintf("failed to resolve %q", specifier),
		Cause:   cause,
	}
}

func NewLowerError(pos lexer.Position, file, msg string) *Diagnostic {
	return &Diagnostic{Kind: KindLowerError, Message: msg, File: file, Pos: pos}
}

// NewCodeGenError reports an internal emitter failure: an unknown IR
// variant, or a raw passthrough node that reached emission. Always exit
// code 2.
func NewCodeGenError(variant string, pos lexer.Position) *Diagnostic {
	return &Diagnostic{
		Kind:    KindCodeGenError,
		Message: fmt.Sprintf("internal error: emitter cannot encode IR variant %q", variant),
		Pos:     pos,
	}
}

func NewRuntimeHelperMissing(name string) *Diagnostic {
	return &Diagnostic{
		Kind:    KindRuntimeHelperMissing,
		Message: fmt.Sprintf("runtime helper %q was not provided by the host", name),
	}
}
