package parser

import (
	"fmt"

	"github.com/lisc-lang/lisc/internal/lexer"
)

// ParserError is a structured parse failure carrying a position and a
// stable error code so callers can branch on failure kind without string
// matching the message.
type ParserError struct {
	Message string
	Code    string
	Pos     lexer.Position
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Pos.Line, e.Pos.Column)
}

// NewParserError constructs a ParserError.
func NewParserError(pos lexer.Position, message, code string) *ParserError {
	return &ParserError{Message: message, Code: code, Pos: pos}
}

const (
	ErrUnbalancedDelimiter = "E_UNBALANCED_DELIMITER"
	ErrUnterminatedString  = "E_UNTERMINATED_STRING"
	ErrInvalidNumber       = "E_INVALID_NUMBER"
	ErrIllegalEscape       = "E_ILLEGAL_ESCAPE"
	ErrUnexpectedToken     = "E_UNEXPECTED_TOKEN"
	ErrUnexpectedEOF       = "E_UNEXPECTED_EOF"
	ErrInvalidImportForm   = "E_INVALID_IMPORT_FORM"
	ErrInvalidExportForm   = "E_INVALID_EXPORT_FORM"
)
