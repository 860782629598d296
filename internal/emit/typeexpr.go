package emit

import (
	"fmt"
	"strings"

	"github.com/lisc-lang/lisc/internal/ir"
)

// typeExprString renders t as TypeScript type syntax. Type declarations
// are erased from the emitted value program (spec.md §3 invariant v),
// but a surviving TypeExpr still reaches the emitter through a typed
// parameter, a typed binding, or a top-level hoisted declaration's
// annotation (spec.md §4.8), so the emitter needs a renderer for it.
func (e *Emitter) typeExprString(t ir.TypeExpr) string {
	switch v := t.(type) {
	case *ir.TypeReference:
		if len(v.Args) == 0 {
			return v.Name
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = e.typeExprString(a)
		}
		return fmt.Sprintf("%s<%s>", v.Name, strings.Join(args, ", "))
	case *ir.UnionType:
		return joinTypes(e, v.Members, " | ")
	case *ir.IntersectionType:
		return joinTypes(e, v.Members, " & ")
	case *ir.KeyofType:
		return "keyof " + e.typeExprString(v.Operand)
	case *ir.IndexedAccessType:
		return fmt.Sprintf("%s[%s]", e.typeExprString(v.Object), e.typeExprString(v.Index))
	case *ir.ConditionalType:
		return fmt.Sprintf("%s extends %s ? %s : %s",
			e.typeExprString(v.Check), e.typeExprString(v.Extend),
			e.typeExprString(v.Then), e.typeExprString(v.Else))
	case *ir.MappedType:
		return fmt.Sprintf("{ [%s in %s]: %s }", v.Param, e.typeExprString(v.Source), e.typeExprString(v.Value))
	case *ir.TupleType:
		return "[" + joinTypes(e, v.Elements, ", ") + "]"
	case *ir.ArrayTypeExpr:
		return e.typeExprString(v.Element) + "[]"
	case *ir.FunctionType:
		params := make([]string, len(v.Params))
		for i, p := range v.Params {
			params[i] = fmt.Sprintf("%s: %s", p.Name, e.typeExprString(p.Type))
		}
		return fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), e.typeExprString(v.Return))
	case *ir.InferType:
		return "infer " + v.Name
	case *ir.ReadonlyType:
		return "readonly " + e.typeExprString(v.Operand)
	case *ir.TypeofType:
		return "typeof " + e.exprToTypePosString(v.Expr)
	case *ir.LiteralType:
		return literalTypeString(v.Value)
	case *ir.RestType:
		return "..." + e.typeExprString(v.Operand)
	case *ir.OptionalType:
		return e.typeExprString(v.Operand) + "?"
	}
	e.fail("type-expr", t.Pos())
	return ""
}

func joinTypes(e *Emitter, members []ir.TypeExpr, sep string) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = e.typeExprString(m)
	}
	return strings.Join(parts, sep)
}

// exprToTypePosString renders the operand of a `typeof` type expression.
// It is always a bare identifier by construction (the reader only
// accepts a symbol there), so a dedicated minimal renderer avoids
// pulling the full expression-context machinery into type position.
func (e *Emitter) exprToTypePosString(x ir.Expr) string {
	if id, ok := x.(*ir.Identifier); ok {
		return id.Name
	}
	e.fail("typeof-operand", x.Pos())
	return ""
}

func literalTypeString(v any) string {
	switch t := v.(type) {
	case string:
		return quoteString(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
