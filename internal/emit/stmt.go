package emit

import (
	"fmt"

	"github.com/lisc-lang/lisc/internal/ir"
)

// emitBlockStmts renders stmts as the body of one block scope: it first
// hoists every DeclExpr's bound names to a predeclared `let` at the top
// (spec.md §4.8), then emits each statement in order. topLevel controls
// whether a hoisted identifier's type annotation is attached at the
// hoisted site, per spec.md §4.8's "top-level declarations are
// additionally given their full type annotation."
func (e *Emitter) emitBlockStmts(stmts []ir.Stmt, topLevel bool) {
	decls := collectHoistedDecls(stmts)
	if len(decls) > 0 {
		e.writeIndent()
		e.write("let ")
		first := true
		for _, d := range decls {
			for _, decl := range d.Declarators {
				for _, name := range patternLeafNames(decl.Name) {
					if !first {
						e.write(", ")
					}
					first = false
					e.write(name)
					if topLevel {
						if id, ok := decl.Name.(*ir.Identifier); ok && id.Type != nil {
							e.write(": ")
							e.write(e.typeExprString(id.Type))
						}
					}
				}
			}
		}
		e.write(";")
		e.newline()
	}
	for _, s := range stmts {
		e.emitStmt(s)
	}
}

func (e *Emitter) emitBlock(b *ir.BlockStmt, topLevel bool) {
	e.write("{")
	e.newline()
	e.indent++
	e.emitBlockStmts(b.Stmts, topLevel)
	e.indent--
	e.writeIndent()
	e.write("}")
}

func (e *Emitter) emitStmt(s ir.Stmt) {
	switch t := s.(type) {
	case *ir.ExpressionStmt:
		e.writeIndent()
		e.withExprContext(true, func() { e.emitExpr(t.Expr, precComma) })
		e.write(";")
		e.newline()
	case *ir.VariableDecl:
		e.writeIndent()
		e.emitVariableDecl(t)
		e.write(";")
		e.newline()
	case *ir.ReturnStmt:
		e.writeIndent()
		e.write("return")
		if t.Value != nil {
			e.write(" ")
			e.withExprContext(true, func() { e.emitExpr(t.Value, precComma) })
		}
		e.write(";")
		e.newline()
	case *ir.ThrowStmt:
		e.writeIndent()
		e.write("throw ")
		e.withExprContext(true, func() { e.emitExpr(t.Value, precComma) })
		e.write(";")
		e.newline()
	case *ir.IfStmt:
		e.writeIndent()
		e.write("if (")
		e.withExprContext(true, func() { e.emitExpr(t.Test, precComma) })
		e.write(") ")
		e.emitBlock(asBlock(t.Cons), false)
		if t.Alt != nil {
			e.write(" else ")
			if alt, ok := t.Alt.(*ir.IfStmt); ok {
				e.emitElseIf(alt)
			} else {
				e.emitBlock(asBlock(t.Alt), false)
			}
		}
		e.newline()
	case *ir.WhileStmt:
		e.writeIndent()
		e.write("while (")
		e.withExprContext(true, func() { e.emitExpr(t.Test, precComma) })
		e.write(") ")
		e.emitBlock(asBlock(t.Body), false)
		e.newline()
	case *ir.ForStmt:
		e.emitForStmt(t)
	case *ir.ForOfStmt:
		e.writeIndent()
		e.write("for (")
		if t.IsConst {
			e.write("const ")
		} else {
			e.write("let ")
		}
		e.emitPattern(t.Binding)
		e.write(" of ")
		e.withExprContext(true, func() { e.emitExpr(t.Iterable, precComma) })
		e.write(") ")
		e.emitBlock(asBlock(t.Body), false)
		e.newline()
	case *ir.TryStmt:
		e.writeIndent()
		e.write("try ")
		e.emitBlock(t.Block, false)
		if t.Catch != nil {
			e.write(" catch ")
			if t.Catch.Param != nil {
				e.write("(")
				e.emitPattern(t.Catch.Param)
				e.write(") ")
			}
			e.emitBlock(t.Catch.Body, false)
		}
		if t.Finally != nil {
			e.write(" finally ")
			e.emitBlock(t.Finally, false)
		}
		e.newline()
	case *ir.SwitchStmt:
		e.writeIndent()
		e.write("switch (")
		e.withExprContext(true, func() { e.emitExpr(t.Disc, precComma) })
		e.write(") {")
		e.newline()
		e.indent++
		for _, c := range t.Cases {
			e.writeIndent()
			if c.Test != nil {
				e.write("case ")
				e.withExprContext(true, func() { e.emitExpr(c.Test, precComma) })
				e.write(":")
			} else {
				e.write("default:")
			}
			e.newline()
			e.indent++
			e.emitBlockStmts(c.Stmts, false)
			e.indent--
		}
		e.indent--
		e.writeIndent()
		e.write("}")
		e.newline()
	case *ir.LabeledStmt:
		e.writeIndent()
		e.write(t.Label)
		e.write(": ")
		e.emitStmtInline(t.Body)
	case *ir.BreakStmt:
		e.writeIndent()
		if t.Label != "" {
			e.write(fmt.Sprintf("break %s;", t.Label))
		} else {
			e.write("break;")
		}
		e.newline()
	case *ir.ContinueStmt:
		e.writeIndent()
		if t.Label != "" {
			e.write(fmt.Sprintf("continue %s;", t.Label))
		} else {
			e.write("continue;")
		}
		e.newline()
	case *ir.BlockStmt:
		e.writeIndent()
		e.emitBlock(t, false)
		e.newline()
	case *ir.FnFunctionDecl:
		e.emitFnDecl(t)
	case *ir.ClassDecl:
		e.emitClassDecl(t)
	case *ir.EnumDecl:
		e.emitEnumDecl(t)
	case *ir.ImportDecl:
		e.emitImportDecl(t)
	case *ir.ExportDecl:
		e.emitExportDecl(t)
	default:
		e.fail("stmt", s.Pos())
	}
}

// emitElseIf emits a chained `else if` without an extra indent level or
// leading indentation, since `emitStmt`'s IfStmt case already wrote
// "} else ".
func (e *Emitter) emitElseIf(t *ir.IfStmt) {
	e.write("if (")
	e.withExprContext(true, func() { e.emitExpr(t.Test, precComma) })
	e.write(") ")
	e.emitBlock(asBlock(t.Cons), false)
	if t.Alt != nil {
		e.write(" else ")
		if alt, ok := t.Alt.(*ir.IfStmt); ok {
			e.emitElseIf(alt)
		} else {
			e.emitBlock(asBlock(t.Alt), false)
		}
	}
}

// emitStmtInline emits a statement already preceded by a label and
// colon on the current line, without the leading indent emitStmt would
// otherwise add.
func (e *Emitter) emitStmtInline(s ir.Stmt) {
	switch t := s.(type) {
	case *ir.WhileStmt:
		e.write("while (")
		e.withExprContext(true, func() { e.emitExpr(t.Test, precComma) })
		e.write(") ")
		e.emitBlock(asBlock(t.Body), false)
		e.newline()
	case *ir.ForStmt:
		e.emitForHeader(t)
		e.write(") ")
		e.emitBlock(asBlock(t.Body), false)
		e.newline()
	case *ir.ForOfStmt:
		e.write("for (")
		if t.IsConst {
			e.write("const ")
		} else {
			e.write("let ")
		}
		e.emitPattern(t.Binding)
		e.write(" of ")
		e.withExprContext(true, func() { e.emitExpr(t.Iterable, precComma) })
		e.write(") ")
		e.emitBlock(asBlock(t.Body), false)
		e.newline()
	default:
		e.emitBlock(asBlock(s), false)
		e.newline()
	}
}

func (e *Emitter) emitVariableDecl(d *ir.VariableDecl) {
	e.write(string(d.Kind))
	e.write(" ")
	for i, decl := range d.Declarators {
		if i > 0 {
			e.write(", ")
		}
		e.emitPattern(decl.Name)
		if decl.Init != nil {
			e.write(" = ")
			e.withExprContext(true, func() { e.emitExpr(decl.Init, precAssignment) })
		}
	}
}

func (e *Emitter) emitForStmt(t *ir.ForStmt) {
	e.writeIndent()
	e.emitForHeader(t)
	e.write(") ")
	e.emitBlock(asBlock(t.Body), false)
	e.newline()
}

func (e *Emitter) emitForHeader(t *ir.ForStmt) {
	e.write("for (")
	switch init := t.Init.(type) {
	case *ir.VariableDecl:
		e.emitVariableDecl(init)
	case ir.Expr:
		e.withExprContext(true, func() { e.emitExpr(init, precComma) })
	}
	e.write("; ")
	if t.Test != nil {
		e.withExprContext(true, func() { e.emitExpr(t.Test, precComma) })
	}
	e.write("; ")
	if t.Update != nil {
		e.withExprContext(true, func() { e.emitExpr(t.Update, precComma) })
	}
}
