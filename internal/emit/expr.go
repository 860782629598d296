package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lisc-lang/lisc/internal/ir"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// emitExpr renders x at precedence minPrec: x parenthesizes itself
// whenever its own precedence is lower than minPrec (spec.md §4.8's
// precedence table), so callers never need to special-case wrapping.
func (e *Emitter) emitExpr(x ir.Expr, minPrec prec) {
	p := e.exprPrec(x)
	if p < minPrec {
		e.write("(")
		e.emitExprNoParen(x)
		e.write(")")
		return
	}
	e.emitExprNoParen(x)
}

// exprPrec reports the precedence level x renders at before any
// parenthesization decision is made.
func (e *Emitter) exprPrec(x ir.Expr) prec {
	switch t := x.(type) {
	case *ir.SequenceExpr:
		return precComma
	case *ir.AssignmentExpr:
		return precAssignment
	case *ir.DeclExpr:
		return precAssignment
	case *ir.YieldExpr:
		return precAssignment
	case *ir.ConditionalExpr:
		return precConditional
	case *ir.BinaryExpr:
		if t.Op == "??" {
			return precNullish
		}
		return binaryPrec[t.Op]
	case *ir.LogicalExpr:
		return logicalPrec[t.Op]
	case *ir.UnaryExpr:
		return precUnary
	case *ir.AwaitExpr:
		return precUnary
	case *ir.SpreadElement:
		return precAssignment
	case *ir.CallExpr, *ir.InteropCallExpr:
		return precCall
	case *ir.NewExpr:
		return precMember
	case *ir.MemberExpr:
		return precMember
	case *ir.FunctionExpr:
		return precAssignment
	default:
		return precPrimary
	}
}

// emitExprNoParen renders x's own syntax without considering whether
// the caller needs it parenthesized.
func (e *Emitter) emitExprNoParen(x ir.Expr) {
	switch t := x.(type) {
	case *ir.Identifier:
		e.writeAt(t.Name, t.P, t.DisplayName())
	case *ir.StringLiteral:
		e.writeAt(quoteString(t.Value), t.P, "")
	case *ir.NumberLiteral:
		e.writeAt(formatNumber(t.Value), t.P, "")
	case *ir.BigIntLiteral:
		e.writeAt(t.Digits+"n", t.P, "")
	case *ir.BoolLiteral:
		if t.Value {
			e.writeAt("true", t.P, "")
		} else {
			e.writeAt("false", t.P, "")
		}
	case *ir.NullLiteral:
		e.writeAt("null", t.P, "")
	case *ir.TemplateLiteral:
		e.emitTemplateLiteral(t)
	case *ir.BinaryExpr:
		e.emitBinaryExpr(t)
	case *ir.LogicalExpr:
		e.emitLogicalExpr(t)
	case *ir.UnaryExpr:
		e.write(t.Op)
		if isWordOp(t.Op) {
			e.write(" ")
		}
		e.emitExpr(t.Operand, precUnary)
	case *ir.ConditionalExpr:
		e.emitExpr(t.Test, precNullish)
		e.write(" ? ")
		e.emitExpr(t.Cons, precAssignment)
		e.write(" : ")
		e.emitExpr(t.Alt, precAssignment)
	case *ir.CallExpr:
		e.emitExpr(t.Callee, precMember)
		if t.Optional {
			e.write("?.")
		}
		e.write("(")
		e.emitArgs(t.Args)
		e.write(")")
	case *ir.NewExpr:
		e.write("new ")
		e.emitExpr(t.Callee, precMember)
		e.write("(")
		e.emitArgs(t.Args)
		e.write(")")
	case *ir.MemberExpr:
		e.emitMemberExpr(t)
	case *ir.AssignmentExpr:
		e.emitExpr(t.Target, precCall)
		e.write(" " + t.Op + " ")
		e.emitExpr(t.Value, precAssignment)
	case *ir.SequenceExpr:
		for i, el := range t.Exprs {
			if i > 0 {
				e.write(", ")
			}
			e.emitExpr(el, precAssignment)
		}
	case *ir.ArrayExpr:
		e.write("[")
		for i, el := range t.Elements {
			if i > 0 {
				e.write(", ")
			}
			e.emitExpr(el, precAssignment)
		}
		e.write("]")
	case *ir.ObjectExpr:
		e.emitObjectExpr(t)
	case *ir.FunctionExpr:
		e.emitFunctionExpr(t)
	case *ir.SpreadElement:
		e.write("...")
		e.emitExpr(t.Operand, precAssignment)
	case *ir.AwaitExpr:
		e.write("await ")
		e.emitExpr(t.Operand, precUnary)
	case *ir.YieldExpr:
		e.write("yield")
		if t.Delegate {
			e.write("*")
		}
		if t.Operand != nil {
			e.write(" ")
			e.emitExpr(t.Operand, precAssignment)
		}
	case *ir.DeclExpr:
		e.emitDeclExpr(t)
	case *ir.InteropGetExpr:
		e.emitInteropGetExpr(t)
	case *ir.InteropMaybeMethodExpr:
		e.emitInteropMaybeMethodExpr(t)
	case *ir.InteropCallExpr:
		e.emitInteropCallExpr(t)
	default:
		e.fail("expr", x.Pos())
	}
}

func (e *Emitter) emitArgs(args []ir.Expr) {
	for i, a := range args {
		if i > 0 {
			e.write(", ")
		}
		e.emitExpr(a, precAssignment)
	}
}

func (e *Emitter) emitBinaryExpr(t *ir.BinaryExpr) {
	p := binaryPrec[t.Op]
	if t.Op == "??" {
		p = precNullish
	}
	e.emitExpr(t.Left, operandPrec(t.Op, p, false))
	e.write(" " + t.Op + " ")
	// See emitLogicalExpr: an arrow operand is always parenthesized
	// explicitly here too, regardless of what precedence alone requires.
	if fn, ok := t.Right.(*ir.FunctionExpr); ok && !isSynthesizedThunk(fn) {
		e.write("(")
		e.emitExprNoParen(fn)
		e.write(")")
		return
	}
	e.emitExpr(t.Right, operandPrec(t.Op, p, true))
}

func (e *Emitter) emitLogicalExpr(t *ir.LogicalExpr) {
	p := logicalPrec[t.Op]
	e.emitExpr(t.Left, operandPrec(t.Op, p, false))
	e.write(" " + t.Op + " ")
	// An arrow function nested directly inside a binary/logical operand
	// is parenthesized explicitly even when precedence alone would not
	// require it (spec.md §4.8): `a || (() => b)` rather than the
	// ambiguous-looking `a || () => b`.
	if fn, ok := t.Right.(*ir.FunctionExpr); ok && !isSynthesizedThunk(fn) {
		e.write("(")
		e.emitExprNoParen(fn)
		e.write(")")
		return
	}
	e.emitExpr(t.Right, operandPrec(t.Op, p, true))
}

func isWordOp(op string) bool {
	switch op {
	case "typeof", "void", "delete":
		return true
	}
	return false
}

func (e *Emitter) emitMemberExpr(t *ir.MemberExpr) {
	e.emitExpr(t.Object, precMember)
	if t.Computed {
		if t.Optional {
			e.write("?.")
		}
		e.write("[")
		e.emitExpr(t.Property, precComma)
		e.write("]")
		return
	}
	id, _ := t.Property.(*ir.Identifier)
	name := ""
	if id != nil {
		name = id.Name
	}
	if !isValidIdent(name) {
		sep := "["
		if t.Optional {
			sep = "?.["
		}
		e.write(sep)
		e.write(quoteString(name))
		e.write("]")
		return
	}
	if t.Optional {
		e.write("?.")
	} else {
		e.write(".")
	}
	if id != nil {
		e.writeAt(id.Name, id.P, id.DisplayName())
	} else {
		e.write(name)
	}
}

func (e *Emitter) emitObjectExpr(t *ir.ObjectExpr) {
	e.write("{")
	for i, p := range t.Properties {
		if i > 0 {
			e.write(",")
		}
		e.write(" ")
		if p.Spread {
			e.write("...")
			e.emitExpr(p.Value, precAssignment)
			continue
		}
		if p.Computed {
			e.write("[")
			e.emitExpr(p.Key, precAssignment)
			e.write("]: ")
			e.emitExpr(p.Value, precAssignment)
			continue
		}
		id, _ := p.Key.(*ir.Identifier)
		name := ""
		if id != nil {
			name = id.Name
		}
		key := name
		if !isValidIdent(name) {
			key = quoteString(name)
		}
		if p.Shorthand {
			e.write(key)
			continue
		}
		e.write(key)
		e.write(": ")
		e.emitExpr(p.Value, precAssignment)
	}
	if len(t.Properties) > 0 {
		e.write(" ")
	}
	e.write("}")
}

// emitFunctionExpr renders a function value: an arrow function unless
// UsesThis is set, in which case a conventional `function` expression
// is emitted instead so `this` keeps its dynamic binding (ir.FunctionExpr
// doc comment). A thunk ApplyMutualTCO synthesized for a mutual-TCO
// group's cross-member tail calls is tagged with __isTrampolineThunk so
// the trampoline runtime helper's loop condition recognizes it and keeps
// bouncing instead of treating it as a terminal value.
func (e *Emitter) emitFunctionExpr(t *ir.FunctionExpr) {
	if isSynthesizedThunk(t) {
		e.write("Object.assign(() => ")
		e.withExprContext(true, func() {
			e.emitExpr(t.Body.(ir.Expr), precAssignment)
		})
		e.write(", { __isTrampolineThunk: true })")
		return
	}
	if t.UsesThis {
		e.write("function")
		if t.Name != "" {
			e.write(" " + t.Name)
		}
		e.write("(")
		e.emitFunctionExprParams(t)
		e.write(")")
		if t.ReturnType != nil {
			e.write(": ")
			e.write(e.typeExprString(t.ReturnType))
		}
		e.write(" ")
		e.emitFunctionExprBody(t)
		return
	}
	e.write("(")
	e.emitFunctionExprParams(t)
	e.write(")")
	if t.ReturnType != nil {
		e.write(": ")
		e.write(e.typeExprString(t.ReturnType))
	}
	e.write(" => ")
	e.emitFunctionExprBody(t)
}

func (e *Emitter) emitFunctionExprParams(t *ir.FunctionExpr) {
	for i, p := range t.Params {
		if i > 0 {
			e.write(", ")
		}
		e.emitPattern(p)
		if i < len(t.Defaults) && t.Defaults[i] != nil {
			e.write(" = ")
			e.withExprContext(true, func() { e.emitExpr(t.Defaults[i], precAssignment) })
		}
	}
}

func (e *Emitter) emitFunctionExprBody(t *ir.FunctionExpr) {
	switch body := t.Body.(type) {
	case *ir.BlockStmt:
		e.emitBlock(body, false)
	case ir.Expr:
		e.withExprContext(true, func() { e.emitExpr(body, precAssignment) })
	}
}

// isSynthesizedThunk mirrors internal/optimize/exprwalk.go's predicate
// of the same name: a zero-parameter FunctionExpr whose body is exactly
// one CallExpr is the shape ApplyMutualTCO's thunk rewrite produces, and
// is the only shape the emitter tags with __isTrampolineThunk.
func isSynthesizedThunk(fn *ir.FunctionExpr) bool {
	if len(fn.Params) != 0 {
		return false
	}
	_, ok := fn.Body.(*ir.CallExpr)
	return ok
}

// emitDeclExpr renders a DeclExpr already lifted by the block-scope
// hoisting pass: only the bare assignment survives at the occurrence
// site, since the `let` itself was predeclared at the top of the block
// (spec.md §4.8).
func (e *Emitter) emitDeclExpr(t *ir.DeclExpr) {
	decl := t.Decl
	for i, d := range decl.Declarators {
		if i > 0 {
			e.write(", ")
		}
		if d.Init == nil {
			e.emitPattern(d.Name)
			continue
		}
		e.write("(")
		e.emitPattern(d.Name)
		e.write(" = ")
		e.emitExpr(d.Init, precAssignment)
		e.write(")")
	}
}

// emitInteropGetExpr renders property access on a target of unknown
// shape as a call to the dynamic-get runtime helper (ir.InteropGetExpr
// doc comment).
func (e *Emitter) emitInteropGetExpr(t *ir.InteropGetExpr) {
	e.usage.Mark(runtimehelpers.DynamicGet)
	e.write("dynamicGet(")
	e.emitExpr(t.Target, precAssignment)
	e.write(", ")
	e.emitExpr(t.Key, precAssignment)
	if t.Default != nil {
		e.write(", ")
		e.emitExpr(t.Default, precAssignment)
	}
	e.write(")")
}

// emitInteropMaybeMethodExpr renders the two-path IIFE its doc comment
// specifies, evaluating Target exactly once: no runtime helper is
// needed since the check is a plain `typeof` guard.
func (e *Emitter) emitInteropMaybeMethodExpr(t *ir.InteropMaybeMethodExpr) {
	member := t.Member
	access := "." + member
	if !isValidIdent(member) {
		access = "[" + quoteString(member) + "]"
	}
	e.write(fmt.Sprintf("((__obj) => typeof __obj%s === %q ? __obj%s() : __obj%s)(", access, "function", access, access))
	e.emitExpr(t.Target, precAssignment)
	e.write(")")
}

// emitInteropCallExpr renders a call through the dynamic-call runtime
// helper, which resolves Method via dynamic-get on Target and applies
// it (ir.InteropCallExpr doc comment).
func (e *Emitter) emitInteropCallExpr(t *ir.InteropCallExpr) {
	e.usage.Mark(runtimehelpers.DynamicCall)
	e.write("dynamicCall(")
	e.emitExpr(t.Target, precAssignment)
	e.write(", ")
	e.emitExpr(t.Method, precAssignment)
	if len(t.Args) > 0 {
		e.write(", ")
		e.emitArgs(t.Args)
	}
	e.write(")")
}

func (e *Emitter) emitTemplateLiteral(t *ir.TemplateLiteral) {
	e.write("`")
	for i, q := range t.Quasis {
		e.write(escapeTemplateText(q))
		if i < len(t.Exprs) {
			e.write("${")
			e.withExprContext(true, func() { e.emitExpr(t.Exprs[i], precComma) })
			e.write("}")
		}
	}
	e.write("`")
}

func escapeTemplateText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "`", "\\`", "$", "\\$")
	return r.Replace(s)
}

// formatNumber renders a float64 the way TypeScript source expects a
// numeric literal: integral values drop the trailing ".0" a plain
// strconv.FormatFloat would otherwise omit anyway, since 'g' already
// picks the shortest round-tripping representation.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
