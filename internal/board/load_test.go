package board_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
)

func sampleDoc(t *testing.T) board.Document {
	t.Helper()
	return board.RandomAssignment(3).Document()
}

func marshalYAML(t *testing.T, v any) []byte {
	t.Helper()
	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return data
}

// docAsMaps converts a document to generic maps so individual fields can
// be broken for schema tests.
func docAsMaps(t *testing.T, doc board.Document) (map[string]any, []map[string]any) {
	t.Helper()
	var raw map[string]any
	if err := yaml.Unmarshal(marshalYAML(t, doc), &raw); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	list := raw["tiles"].([]any)
	tiles := make([]map[string]any, len(list))
	for i, e := range list {
		tiles[i] = e.(map[string]any)
	}
	return raw, tiles
}

func TestParseAssignment_YAMLRoundTrip(t *testing.T) {
	want := board.RandomAssignment(3)
	data := marshalYAML(t, want.Document())

	tiles, msgs, err := board.ParseAssignment(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected no findings for a dealt setup, got %v", msgs)
	}
	if !reflect.DeepEqual(tiles, want) {
		t.Fatalf("expected round-tripped assignment, got %v", tiles)
	}
}

func TestParseAssignment_JSONDocument(t *testing.T) {
	want := board.RandomAssignment(3)
	data, err := json.Marshal(want.Document())
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	tiles, _, err := board.ParseAssignment(data)
	if err != nil {
		t.Fatalf("parse json document: %v", err)
	}
	if !reflect.DeepEqual(tiles, want) {
		t.Fatalf("expected JSON and YAML documents to load identically")
	}
}

func TestParseDocument_RejectsWrongTileCount(t *testing.T) {
	doc := sampleDoc(t)
	doc.Tiles = doc.Tiles[:18]

	if _, err := board.ParseDocument(marshalYAML(t, doc)); err == nil {
		t.Fatalf("expected 18-tile document rejected")
	}
}

func TestParseDocument_RejectsUnknownResource(t *testing.T) {
	doc := sampleDoc(t)
	doc.Tiles[0].Resource = "gold"

	_, err := board.ParseDocument(marshalYAML(t, doc))
	if err == nil || !strings.Contains(err.Error(), "board document") {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestParseDocument_RejectsIndexOutOfRange(t *testing.T) {
	doc := sampleDoc(t)
	doc.Tiles[0].Index = 19

	if _, err := board.ParseDocument(marshalYAML(t, doc)); err == nil {
		t.Fatalf("expected index 19 rejected")
	}
}

func TestParseDocument_RejectsExtraField(t *testing.T) {
	raw, tiles := docAsMaps(t, sampleDoc(t))
	tiles[0]["color"] = "red"

	if _, err := board.ParseDocument(marshalYAML(t, raw)); err == nil {
		t.Fatalf("expected unknown tile field rejected")
	}
}

func TestParseDocument_RejectsNonIntegerNumber(t *testing.T) {
	raw, tiles := docAsMaps(t, sampleDoc(t))
	for _, tile := range tiles {
		if tile["resource"] != "desert" {
			tile["number"] = "six"
			break
		}
	}

	if _, err := board.ParseDocument(marshalYAML(t, raw)); err == nil {
		t.Fatalf("expected non-integer number rejected")
	}
}

func TestParseAssignment_PairingFindingsAreAdvisory(t *testing.T) {
	raw, tiles := docAsMaps(t, sampleDoc(t))
	for _, tile := range tiles {
		if tile["resource"] != "desert" {
			delete(tile, "number")
			break
		}
	}

	parsed, msgs, err := board.ParseAssignment(marshalYAML(t, raw))
	if err != nil {
		t.Fatalf("expected a missing number to stay advisory, got %v", err)
	}
	if len(parsed) != board.NumHexes {
		t.Fatalf("expected full assignment, got %d tiles", len(parsed))
	}
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "no number") {
		t.Fatalf("expected one missing-number finding, got %v", msgs)
	}
}

func TestParseAssignment_OutOfRangeNumberIsAdvisory(t *testing.T) {
	doc := sampleDoc(t)
	thirteen := 13
	for i, e := range doc.Tiles {
		if e.Resource != "desert" {
			doc.Tiles[i].Number = &thirteen
			break
		}
	}

	_, msgs, err := board.ParseAssignment(marshalYAML(t, doc))
	if err != nil {
		t.Fatalf("expected an out-of-range number to pass the schema, got %v", err)
	}
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "13") {
		t.Fatalf("expected one range finding, got %v", msgs)
	}
}

func TestLoadFile_ReadsDocument(t *testing.T) {
	want := board.RandomAssignment(5)
	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := os.WriteFile(path, marshalYAML(t, want.Document()), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tiles, _, err := board.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(tiles, want) {
		t.Fatalf("expected loaded assignment to match the fixture")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, _, err := board.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}
