package lower

import (
	"strings"

	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/ir"
)

// operatorHeads maps a source-level operator call head to its emitted
// binary/bitwise operator token. "and"/"or"/"not" are handled in
// lower_expr.go directly because they short-circuit (LogicalExpr, not
// BinaryExpr) and "not" is unary.
var operatorHeads = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/", "%": "%", "**": "**",
	"=": "===", "==": "==", "!=": "!==", "!==": "!==",
	"<": "<", "<=": "<=", ">": ">", ">=": ">=",
	"bit-and": "&", "bit-or": "|", "bit-xor": "^",
	"shl": "<<", "shr": ">>", "ushr": ">>>",
	"??": "??",
}

// compoundAssignOps maps a source-level mutating-operator call head to
// its emitted compound-assignment token.
var compoundAssignOps = map[string]string{
	"+=": "+=", "-=": "-=", "*=": "*=", "/=": "/=", "%=": "%=",
}

// operatorSymbols is the superset of operatorHeads plus unary-only and
// logical operator names, used to recognize a first-class operator
// reference (a bare operator symbol used as a value rather than as a
// call head) so it can be replaced with `getOp("...")`.
var operatorSymbols = func() map[string]bool {
	set := map[string]bool{"and": true, "or": true, "not": true, "bit-not": true}
	for k := range operatorHeads {
		set[k] = true
	}
	return set
}()

func isOperatorSymbol(name string) bool { return operatorSymbols[name] }

// lowerOperatorCall lowers a recognized binary/bitwise/nullish operator
// application. A two-operand form becomes a single BinaryExpr; a
// variadic arithmetic form (more than two operands, e.g. `(+ a b c)`)
// left-folds into nested BinaryExprs, matching ordinary evaluation order.
func (lw *Lowerer) lowerOperatorCall(lst *ast.List, op string) ir.Expr {
	if len(lst.Items) == 2 {
		if op == "-" {
			return &ir.UnaryExpr{Base: ir.Base{P: lst.P}, Op: "-", Operand: lw.lowerExpr(lst.Items[1])}
		}
		if op == "+" {
			return lw.lowerExpr(lst.Items[1])
		}
	}
	if len(lst.Items) < 3 {
		lw.errf(lst, "operator %s requires at least two operands", op)
		return &ir.NullLiteral{Base: ir.Base{P: lst.P}}
	}
	acc := lw.lowerExpr(lst.Items[1])
	for _, operand := range lst.Items[2:] {
		acc = &ir.BinaryExpr{Base: ir.Base{P: lst.P}, Op: op, Left: acc, Right: lw.lowerExpr(operand)}
	}
	return acc
}

// sanitizeName rewrites a source identifier into a legal TypeScript
// identifier: hyphens (idiomatic in the source language, illegal in
// JS/TS) become underscores, and every `?`/`!` (the predicate/bang
// naming convention puts them at the end) is dropped. The original spelling is preserved on
// Identifier.OriginalName for source maps and debugger display.
func sanitizeName(name string) string {
	if !strings.ContainsAny(name, "-?!") {
		return name
	}
	r := strings.NewReplacer("-", "_", "?", "", "!", "")
	return r.Replace(name)
}
