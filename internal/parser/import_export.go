package parser

import (
	"github.com/lisc-lang/lisc/internal/ast"
)

// ValidateImportExport enforces the reader-level shape of import/export
// forms:
//
//	(import [n1 (n2 as alias) ...] from "path")   named import vector
//
// An alias is the three-item list (name as alias); a flat `n2 as alias`
// run inside the vector reads as separate names, and a comma there reads
// as unquote.
//
//	(import name from "path")                     namespace binding
//	(export [n1, n2])                             re-export existing bindings
//	(export "name" expr)                          bind expr's value as name
//
// No other forms are accepted; string-based re-export forms are rejected
// here, at parse time, as the spec requires.
func ValidateImportExport(forms []ast.Node) []*ParserError {
	var errs []*ParserError
	for _, f := range forms {
		list, ok := f.(*ast.List)
		if !ok {
			continue
		}
		head, ok := list.HeadSymbol()
		if !ok {
			continue
		}
		switch head {
		case "import":
			if err := validateImport(list); err != nil {
				errs = append(errs, err)
			}
		case "export":
			if err := validateExport(list); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

func validateImport(list *ast.List) *ParserError {
	// (import <vector-or-symbol> from "path")
	if len(list.Items) != 4 {
		return NewParserError(list.P, "import must be (import [names...] from \"path\") or (import name from \"path\")", ErrInvalidImportForm)
	}
	switch list.Items[1].(type) {
	case *ast.Vector, *ast.Symbol:
	default:
		return NewParserError(list.P, "import binding must be a vector of names or a single namespace symbol", ErrInvalidImportForm)
	}
	fromSym, ok := list.Items[2].(*ast.Symbol)
	if !ok || fromSym.Name != "from" {
		return NewParserError(list.P, "import must contain the keyword 'from'", ErrInvalidImportForm)
	}
	if lit, ok := list.Items[3].(*ast.Literal); !ok || lit.Kind != ast.LiteralString {
		return NewParserError(list.P, "import specifier must be a string literal", ErrInvalidImportForm)
	}
	return nil
}

func validateExport(list *ast.List) *ParserError {
	switch len(list.Items) {
	case 2:
		// (export [n1, n2])
		if _, ok := list.Items[1].(*ast.Vector); !ok {
			return NewParserError(list.P, "export must be (export [names...]) or (export \"name\" expr)", ErrInvalidExportForm)
		}
		return nil
	case 3:
		// (export "name" expr)
		lit, ok := list.Items[1].(*ast.Literal)
		if !ok || lit.Kind != ast.LiteralString {
			return NewParserError(list.P, "export binding name must be a string literal", ErrInvalidExportForm)
		}
		return nil
	default:
		return NewParserError(list.P, "export must be (export [names...]) or (export \"name\" expr)", ErrInvalidExportForm)
	}
}
