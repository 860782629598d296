package ir

// Identifier is a reference or binding name. OriginalName, when set and
// different from Name, preserves the source-level spelling for source
// maps and debugger display after the emitter has renamed Name (e.g.
// hyphens to underscores, or hygienic gensym formatting).
type Identifier struct {
	Base
	Name         string
	OriginalName string
	Type         TypeExpr // optional type annotation
}

func (*Identifier) exprNode()    {}
func (*Identifier) patternNode() {}

// DisplayName returns OriginalName when set, else Name — the name a
// human (or a debugger) should see.
func (id *Identifier) DisplayName() string {
	if id.OriginalName != "" {
		return id.OriginalName
	}
	return id.Name
}
