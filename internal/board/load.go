// Board document loading. Documents are YAML; JSON documents parse
// through the same path since JSON is a YAML subset. The raw document is
// checked against an embedded JSON Schema before decoding, so structural
// problems surface with a precise message instead of a half-decoded
// struct.
package board

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed board.schema.json
var documentSchemaJSON string

// documentSchema checks document structure: tile list shape, resource
// enum, index range. Pairing rules (desert/number, token range) stay out
// of the schema — those are advisory, not structural.
var documentSchema = jsonschema.MustCompileString("board.schema.json", documentSchemaJSON)

// ParseDocument decodes a YAML or JSON board document after validating it
// against the document schema.
func ParseDocument(data []byte) (Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("parse board document: %w", err)
	}
	if err := documentSchema.Validate(raw); err != nil {
		return Document{}, fmt.Errorf("board document: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse board document: %w", err)
	}
	return doc, nil
}

// ParseAssignment runs the full input boundary over raw document bytes:
// schema validation, decoding, assignment construction, and advisory
// pairing validation. The returned messages never accompany an error —
// they are findings about an otherwise usable assignment.
func ParseAssignment(data []byte) (TileAssignment, []ValidationMessage, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, nil, err
	}
	tiles, err := doc.Assignment()
	if err != nil {
		return nil, nil, err
	}
	return tiles, Validate(tiles), nil
}

// LoadFile reads and parses a board document from disk.
func LoadFile(path string) (TileAssignment, []ValidationMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read board document: %w", err)
	}
	return ParseAssignment(data)
}
