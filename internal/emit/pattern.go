package emit

import "github.com/lisc-lang/lisc/internal/ir"

// isValidIdent reports whether name is a valid bare TypeScript
// identifier; used to decide dot vs. bracket notation for member and
// object-literal keys (spec.md §4.8 "interop safety").
func isValidIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// patternLeafNames flattens a destructuring pattern into the plain
// identifier names it ultimately binds, in left-to-right order — the
// set the hoisting pass predeclares with a bare `let` before emitting
// the pattern itself as an assignment target.
func patternLeafNames(p ir.Pattern) []string {
	switch t := p.(type) {
	case *ir.Identifier:
		return []string{t.Name}
	case *ir.ArrayPattern:
		var out []string
		for _, el := range t.Elements {
			if el.Pattern != nil {
				out = append(out, patternLeafNames(el.Pattern)...)
			}
		}
		if t.Rest != nil {
			out = append(out, patternLeafNames(t.Rest)...)
		}
		return out
	case *ir.ObjectPattern:
		var out []string
		for _, prop := range t.Properties {
			out = append(out, patternLeafNames(prop.Value)...)
		}
		if t.Rest != nil {
			out = append(out, patternLeafNames(t.Rest)...)
		}
		return out
	case *ir.RestElement:
		return patternLeafNames(t.Target)
	case *ir.AssignmentPattern:
		return patternLeafNames(t.Target)
	}
	return nil
}

// emitPattern renders p as an assignment/binding target.
func (e *Emitter) emitPattern(p ir.Pattern) {
	switch t := p.(type) {
	case *ir.Identifier:
		e.writeAt(t.Name, t.P, t.DisplayName())
	case *ir.ArrayPattern:
		e.write("[")
		for i, el := range t.Elements {
			if i > 0 {
				e.write(", ")
			}
			if el.Pattern == nil {
				continue
			}
			e.emitPattern(el.Pattern)
			if el.Default != nil {
				e.write(" = ")
				e.withExprContext(true, func() { e.emitExpr(el.Default, precAssignment) })
			}
		}
		if t.Rest != nil {
			if len(t.Elements) > 0 {
				e.write(", ")
			}
			e.write("...")
			e.emitPattern(t.Rest.Target)
		}
		e.write("]")
	case *ir.ObjectPattern:
		e.write("{ ")
		for i, prop := range t.Properties {
			if i > 0 {
				e.write(", ")
			}
			if prop.Shorthand {
				e.emitPattern(prop.Value)
			} else {
				e.write(prop.Key)
				e.write(": ")
				e.emitPattern(prop.Value)
			}
			if prop.Default != nil {
				e.write(" = ")
				e.withExprContext(true, func() { e.emitExpr(prop.Default, precAssignment) })
			}
		}
		if t.Rest != nil {
			if len(t.Properties) > 0 {
				e.write(", ")
			}
			e.write("...")
			e.emitPattern(t.Rest.Target)
		}
		e.write(" }")
	case *ir.RestElement:
		e.write("...")
		e.emitPattern(t.Target)
	case *ir.AssignmentPattern:
		e.emitPattern(t.Target)
		e.write(" = ")
		e.withExprContext(true, func() { e.emitExpr(t.Default, precAssignment) })
	default:
		e.fail("pattern", p.Pos())
	}
}
