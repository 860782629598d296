package lower

import (
	"fmt"

	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/errors"
	"github.com/lisc-lang/lisc/internal/ir"
	"github.com/lisc-lang/lisc/internal/runtimehelpers"
)

// Lowerer walks a module's fully macro-expanded top-level forms and
// produces IR statements/declarations. One Lowerer is used per module.
type Lowerer struct {
	File   string
	Usage  *runtimehelpers.Usage
	scope  *Scope
	errs   []*errors.Diagnostic
}

// New creates a Lowerer for file, tracking runtime-helper references
// into usage (shared with the emitter's "used helpers" report).
func New(file string, usage *runtimehelpers.Usage) *Lowerer {
	return &Lowerer{File: file, Usage: usage, scope: NewScope()}
}

// Errors returns every LowerError collected during lowering.
func (lw *Lowerer) Errors() []*errors.Diagnostic { return lw.errs }

func (lw *Lowerer) errf(n ast.Node, format string, args ...any) {
	lw.errs = append(lw.errs, errors.NewLowerError(n.Pos(), lw.File, fmt.Sprintf(format, args...)))
}

// LowerProgram lowers every top-level form into a statement (or
// declaration, which is itself a Stmt).
func (lw *Lowerer) LowerProgram(forms []ast.Node) []ir.Stmt {
	out := make([]ir.Stmt, 0, len(forms))
	for _, f := range forms {
		if stmt := lw.lowerTopForm(f); stmt != nil {
			out = append(out, stmt)
		}
	}
	return out
}

// lowerTopForm handles forms that only make sense at declaration
// position (import/export, type/interface — erased at runtime) in
// addition to the general statement lowering every other form shares.
func (lw *Lowerer) lowerTopForm(f ast.Node) ir.Stmt {
	if lst, ok := f.(*ast.List); ok {
		if head, ok := lst.HeadSymbol(); ok {
			switch head {
			case "import":
				return lw.lowerImport(lst)
			case "export":
				return lw.lowerExport(lst)
			case "type", "interface":
				// Type-expression nodes are erased from runtime output
				// (spec.md §3 IR invariant v); validate shape only.
				lw.lowerTypeDecl(lst)
				return nil
			}
		}
	}
	return lw.lowerStmt(f)
}

// lowerBlock lowers a sequence of body forms into statements within a
// fresh nested scope.
func (lw *Lowerer) lowerBlock(forms []ast.Node) *ir.BlockStmt {
	outer := lw.scope
	lw.scope = outer.Enclosed()
	defer func() { lw.scope = outer }()

	stmts := make([]ir.Stmt, 0, len(forms))
	for _, f := range forms {
		if s := lw.lowerStmt(f); s != nil {
			stmts = append(stmts, s)
		}
	}
	return &ir.BlockStmt{Stmts: stmts}
}

// lowerStmt lowers one form appearing in statement position: a
// declaration form becomes its Decl node directly; everything else is
// wrapped as an ExpressionStmt over the lowered expression.
func (lw *Lowerer) lowerStmt(f ast.Node) ir.Stmt {
	if lst, ok := f.(*ast.List); ok {
		if head, ok := lst.HeadSymbol(); ok {
			switch head {
			case "let", "const", "var", "def":
				return lw.lowerBinding(lst, false)
			case "fn", "fn-kw":
				return lw.lowerFnDecl(lst)
			case "class":
				return lw.lowerClassDecl(lst)
			case "enum":
				return lw.lowerEnumDecl(lst)
			case "return":
				return lw.lowerReturn(lst)
			case "while":
				return lw.lowerWhile(lst)
			case "for":
				return lw.lowerFor(lst)
			case "for-of":
				return lw.lowerForOf(lst)
			case "throw":
				if len(lst.Items) < 2 {
					lw.errf(lst, "throw requires a value")
					return nil
				}
				return &ir.ThrowStmt{Base: ir.Base{P: lst.P}, Value: lw.lowerExpr(lst.Items[1])}
			case "break":
				return lw.lowerBreak(lst)
			case "continue":
				return lw.lowerContinue(lst)
			case "do", "begin":
				return lw.lowerBlock(lst.Items[1:])
			}
		}
	}
	return &ir.ExpressionStmt{Base: ir.Base{P: f.Pos()}, Expr: lw.lowerExpr(f)}
}

func (lw *Lowerer) lowerReturn(lst *ast.List) ir.Stmt {
	var v ir.Expr
	if len(lst.Items) > 1 {
		v = lw.lowerExpr(lst.Items[1])
	}
	return &ir.ReturnStmt{Base: ir.Base{P: lst.P}, Value: v}
}

func (lw *Lowerer) lowerWhile(lst *ast.List) ir.Stmt {
	if len(lst.Items) < 2 {
		lw.errf(lst, "while requires a test expression")
		return nil
	}
	test := lw.lowerExpr(lst.Items[1])
	body := lw.lowerBlock(lst.Items[2:])
	return &ir.WhileStmt{Base: ir.Base{P: lst.P}, Test: test, Body: body}
}

func (lw *Lowerer) lowerFor(lst *ast.List) ir.Stmt {
	// (for (init test update) body...)
	if len(lst.Items) < 2 {
		lw.errf(lst, "for requires a clause list")
		return nil
	}
	clause, ok := lst.Items[1].(*ast.List)
	if !ok || len(clause.Items) != 3 {
		lw.errf(lst, "for's clause must be (init test update)")
		return nil
	}
	var init ir.Node
	if s := lw.lowerStmt(clause.Items[0]); s != nil {
		init = s
	}
	test := lw.lowerExpr(clause.Items[1])
	update := lw.lowerExpr(clause.Items[2])
	body := lw.lowerBlock(lst.Items[2:])
	return &ir.ForStmt{Base: ir.Base{P: lst.P}, Init: init, Test: test, Update: update, Body: body}
}

func (lw *Lowerer) lowerForOf(lst *ast.List) ir.Stmt {
	// (for-of binding iterable body...)
	if len(lst.Items) < 3 {
		lw.errf(lst, "for-of requires a binding and an iterable")
		return nil
	}
	sym, ok := lst.Items[1].(*ast.Symbol)
	if !ok {
		lw.errf(lst, "for-of's binding must be a symbol")
		return nil
	}
	lw.scope.Define(sym.Name)
	binding := &ir.Identifier{Base: ir.Base{P: sym.P}, Name: sym.Name}
	iterable := lw.lowerExpr(lst.Items[2])
	body := lw.lowerBlock(lst.Items[3:])
	return &ir.ForOfStmt{Base: ir.Base{P: lst.P}, Binding: binding, IsConst: true, Iterable: iterable, Body: body}
}

func (lw *Lowerer) lowerBreak(lst *ast.List) ir.Stmt {
	label := ""
	if len(lst.Items) > 1 {
		if s, ok := lst.Items[1].(*ast.Symbol); ok {
			label = s.Name
		}
	}
	return &ir.BreakStmt{Base: ir.Base{P: lst.P}, Label: label}
}

func (lw *Lowerer) lowerContinue(lst *ast.List) ir.Stmt {
	label := ""
	if len(lst.Items) > 1 {
		if s, ok := lst.Items[1].(*ast.Symbol); ok {
			label = s.Name
		}
	}
	return &ir.ContinueStmt{Base: ir.Base{P: lst.P}, Label: label}
}
