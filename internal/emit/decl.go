package emit

import (
	"fmt"
	"strings"

	"github.com/lisc-lang/lisc/internal/ir"
)

const jsonMapParamName = "__kwargs"

func (e *Emitter) emitFnDecl(d *ir.FnFunctionDecl) {
	e.writeIndent()
	e.write("function ")
	e.writeAt(d.Name, d.P, d.Name)
	e.write("(")
	if d.JSONMap {
		e.write(jsonMapParamName + " = {}")
	} else {
		e.emitParams(d.Params)
	}
	e.write(")")
	if d.ReturnType != nil {
		e.write(": ")
		e.write(e.typeExprString(d.ReturnType))
	}
	e.write(" {")
	e.newline()
	e.indent++
	if d.JSONMap {
		e.emitJSONMapPrologue(d.Name, d.Params)
	}
	e.emitBlockStmts(d.Body.Stmts, false)
	e.indent--
	e.writeIndent()
	e.write("}")
	e.newline()
}

// emitJSONMapPrologue renders the keyword-argument validation and
// destructuring a JSONMap function needs before its own body runs
// (spec.md §4.8 "JSON-map parameters"): a typeof-guard rejecting a
// non-object argument, then one destructured binding per declared
// keyword with its default.
func (e *Emitter) emitJSONMapPrologue(fnName string, params []ir.Param) {
	e.writeIndent()
	e.write(fmt.Sprintf("if (typeof %s !== %q || %s === null) {", jsonMapParamName, "object", jsonMapParamName))
	e.newline()
	e.indent++
	e.writeIndent()
	e.write(fmt.Sprintf("throw new TypeError(%q);", fnName+" expects an object of keyword arguments"))
	e.newline()
	e.indent--
	e.writeIndent()
	e.write("}")
	e.newline()

	if len(params) == 0 {
		return
	}
	e.writeIndent()
	e.write("const { ")
	for i, p := range params {
		if i > 0 {
			e.write(", ")
		}
		e.emitPattern(p.Name)
		if p.Default != nil {
			e.write(" = ")
			e.withExprContext(true, func() { e.emitExpr(p.Default, precAssignment) })
		}
	}
	e.write(" } = ")
	e.write(jsonMapParamName)
	e.write(";")
	e.newline()
}

func (e *Emitter) emitParams(params []ir.Param) {
	for i, p := range params {
		if i > 0 {
			e.write(", ")
		}
		if p.Rest {
			e.write("...")
		}
		e.emitPattern(p.Name)
		if p.Default != nil {
			e.write(" = ")
			e.withExprContext(true, func() { e.emitExpr(p.Default, precAssignment) })
		}
		if p.Type != nil {
			e.write(": ")
			e.write(e.typeExprString(p.Type))
		}
	}
}

func (e *Emitter) emitClassDecl(d *ir.ClassDecl) {
	e.writeIndent()
	e.write("class ")
	e.writeAt(d.Name, d.P, d.Name)
	if d.Super != nil {
		e.write(" extends ")
		e.withExprContext(true, func() { e.emitExpr(d.Super, precCall) })
	}
	e.write(" {")
	e.newline()
	e.indent++
	for _, f := range d.Fields {
		e.writeIndent()
		if f.Static {
			e.write("static ")
		}
		if f.Readonly {
			e.write("readonly ")
		}
		e.write(f.Name)
		if f.Type != nil {
			e.write(": ")
			e.write(e.typeExprString(f.Type))
		}
		if f.Init != nil {
			e.write(" = ")
			e.withExprContext(true, func() { e.emitExpr(f.Init, precAssignment) })
		}
		e.write(";")
		e.newline()
	}
	for _, m := range d.Methods {
		e.emitClassMethod(m)
	}
	e.indent--
	e.writeIndent()
	e.write("}")
	e.newline()
}

func (e *Emitter) emitClassMethod(m ir.ClassMethod) {
	e.writeIndent()
	if m.Static {
		e.write("static ")
	}
	switch m.Kind {
	case ir.MethodGetter:
		e.write("get ")
	case ir.MethodSetter:
		e.write("set ")
	}
	if m.Kind == ir.MethodConstructor {
		e.write("constructor")
	} else {
		e.write(m.Name)
	}
	e.write("(")
	e.emitParams(m.Params)
	e.write(") ")
	e.emitBlock(m.Body, false)
	e.newline()
}

func (e *Emitter) emitEnumDecl(d *ir.EnumDecl) {
	if !d.HasAssociatedValues() {
		e.writeIndent()
		e.write("const ")
		e.writeAt(d.Name, d.P, d.Name)
		e.write(" = Object.freeze({")
		e.newline()
		e.indent++
		for _, m := range d.Members {
			e.writeIndent()
			e.write(fmt.Sprintf("%s: %q,", m.Name, m.Name))
			e.newline()
		}
		e.indent--
		e.writeIndent()
		e.write("});")
		e.newline()
		return
	}

	e.writeIndent()
	e.write("class ")
	e.writeAt(d.Name, d.P, d.Name)
	e.write(" {")
	e.newline()
	e.indent++
	e.writeIndent()
	e.write("constructor(tag, values) { this.tag = tag; this.values = values; }")
	e.newline()
	for _, m := range d.Members {
		e.writeIndent()
		e.write(fmt.Sprintf("static %s(%s) { return new %s(%q, [%s]); }",
			m.Name, enumCtorParams(len(m.Values)), d.Name, m.Name, enumCtorParams(len(m.Values))))
		e.newline()
	}
	e.indent--
	e.writeIndent()
	e.write("}")
	e.newline()
}

func enumCtorParams(n int) string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("v%d", i)
	}
	return strings.Join(names, ", ")
}

func (e *Emitter) emitImportDecl(d *ir.ImportDecl) {
	e.writeIndent()
	e.write("import ")
	if d.Namespace != "" {
		e.write("* as " + d.Namespace)
	} else {
		e.write("{ ")
		for i, spec := range d.Specifiers {
			if i > 0 {
				e.write(", ")
			}
			if spec.Local != spec.Imported {
				e.write(fmt.Sprintf("%s as %s", spec.Imported, spec.Local))
			} else {
				e.write(spec.Imported)
			}
		}
		e.write(" }")
	}
	e.write(fmt.Sprintf(" from %s;", quoteString(d.Source)))
	e.newline()
}

func (e *Emitter) emitExportDecl(d *ir.ExportDecl) {
	e.writeIndent()
	if d.Name != "" {
		e.write("export const ")
		e.write(d.Name)
		e.write(" = ")
		e.withExprContext(true, func() { e.emitExpr(d.Value, precAssignment) })
		e.write(";")
		e.newline()
		return
	}
	e.write("export { ")
	for i, spec := range d.Specifiers {
		if i > 0 {
			e.write(", ")
		}
		if spec.Local != spec.Exported {
			e.write(fmt.Sprintf("%s as %s", spec.Local, spec.Exported))
		} else {
			e.write(spec.Local)
		}
	}
	e.write(" };")
	e.newline()
}
