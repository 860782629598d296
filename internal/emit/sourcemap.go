package emit

import "github.com/lisc-lang/lisc/internal/lexer"

// Mapping records one generated-position -> source-position correspondence,
// recorded at each identifier, literal, and declaration name the emitter
// writes. Punctuation and keywords get no mapping of their own.
type Mapping struct {
	GeneratedLine   int
	GeneratedColumn int
	SourceFile      string
	SourceLine      int
	SourceColumn    int
	Name            string // the identifier's display name, when applicable
}

func newMapping(genLine, genCol int, pos lexer.Position, name string) Mapping {
	return Mapping{
		GeneratedLine:   genLine,
		GeneratedColumn: genCol,
		SourceFile:      pos.File,
		SourceLine:      pos.Line,
		SourceColumn:    pos.Column,
		Name:            name,
	}
}
