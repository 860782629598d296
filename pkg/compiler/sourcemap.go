package compiler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/lisc-lang/lisc/internal/emit"
)

// sourceMapDocument is the JSON payload a rendered source map carries.
// Unlike a standard source map's VLQ-packed "mappings" string, each
// record here is rendered explicitly: no VLQ codec appears anywhere in
// the example pack (see DESIGN.md), and emit.Mapping already carries
// exactly the fields a consuming tool needs.
type sourceMapDocument struct {
	Version int                `json:"version"`
	File    string             `json:"file,omitempty"`
	Records []sourceMapRecord  `json:"mappings"`
}

type sourceMapRecord struct {
	GeneratedLine   int    `json:"generatedLine"`
	GeneratedColumn int    `json:"generatedColumn"`
	SourceFile      string `json:"sourceFile"`
	SourceLine      int    `json:"sourceLine"`
	SourceColumn    int    `json:"sourceColumn"`
	Name            string `json:"name,omitempty"`
}

// renderSourceMap marshals mappings into the JSON document above.
func renderSourceMap(file string, mappings []emit.Mapping) (string, error) {
	doc := sourceMapDocument{Version: 3, File: file, Records: make([]sourceMapRecord, len(mappings))}
	for i, m := range mappings {
		doc.Records[i] = sourceMapRecord{
			GeneratedLine:   m.GeneratedLine,
			GeneratedColumn: m.GeneratedColumn,
			SourceFile:      m.SourceFile,
			SourceLine:      m.SourceLine,
			SourceColumn:    m.SourceColumn,
			Name:            m.Name,
		}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// inlineSourceMapComment renders the trailing "//# sourceMappingURL=..."
// comment spec.md §6 requires for the inline source-map mode.
func inlineSourceMapComment(mapJSON string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(mapJSON))
	return fmt.Sprintf("//# sourceMappingURL=data:application/json;base64,%s\n", encoded)
}

// externalSourceMapComment renders the comment pointing at a sidecar
// ".map" file named after the generated file mapFileName.
func externalSourceMapComment(mapFileName string) string {
	return fmt.Sprintf("//# sourceMappingURL=%s\n", mapFileName)
}
