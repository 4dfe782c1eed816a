// Tile assignments — the editable resource/number configuration that the
// scorer reads. The assignment is owned by the caller and passed
// explicitly into every scoring pass; nothing here holds global state.
package board

import (
	"fmt"
	"sort"
)

// MinNumber and MaxNumber bound the valid number-token range. 7 is never
// printed on a token but sits inside the range; it simply produces no
// pips.
const (
	MinNumber = 2
	MaxNumber = 12
)

// Tile is the resource and number token on one hex. Number 0 means no
// token, which is the only legal state for desert.
type Tile struct {
	Resource Resource
	Number   int
}

// TileAssignment maps hex index → tile for all 19 cells.
type TileAssignment map[int]Tile

// ValidationMessage is an advisory finding about resource/number pairing.
// Findings never block scoring: tiles with missing or out-of-range
// numbers contribute zero pips instead of failing.
type ValidationMessage struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Validate reports pairing problems over an assignment: desert must carry
// no number, every other resource needs a number in [2,12]. Messages come
// back ordered by hex index.
func Validate(tiles TileAssignment) []ValidationMessage {
	var msgs []ValidationMessage
	for idx := 0; idx < NumHexes; idx++ {
		tile, ok := tiles[idx]
		if !ok {
			continue
		}
		switch {
		case tile.Resource == ResourceDesert && tile.Number != 0:
			msgs = append(msgs, ValidationMessage{
				Index: idx,
				Text:  fmt.Sprintf("desert should not carry a number (got %d)", tile.Number),
			})
		case tile.Resource != ResourceDesert && tile.Number == 0:
			msgs = append(msgs, ValidationMessage{
				Index: idx,
				Text:  fmt.Sprintf("%s tile has no number", tile.Resource),
			})
		case tile.Resource != ResourceDesert && (tile.Number < MinNumber || tile.Number > MaxNumber):
			msgs = append(msgs, ValidationMessage{
				Index: idx,
				Text:  fmt.Sprintf("number %d outside the %d..%d token range", tile.Number, MinNumber, MaxNumber),
			})
		}
	}
	return msgs
}

// Document is the external form of a board configuration, as carried by
// YAML/JSON board files and analyze request bodies.
type Document struct {
	Tiles []TileEntry `yaml:"tiles" json:"tiles"`
}

// TileEntry is one document row. Number is a pointer so that absent and
// zero stay distinguishable; absent is the desert form.
type TileEntry struct {
	Index    int    `yaml:"index" json:"index"`
	Resource string `yaml:"resource" json:"resource"`
	Number   *int   `yaml:"number,omitempty" json:"number,omitempty"`
}

// Assignment converts a document to a TileAssignment. Unknown resources,
// duplicate indices, and incomplete coverage are hard errors — unlike
// pairing problems, these mean the document itself is broken.
func (d Document) Assignment() (TileAssignment, error) {
	tiles := make(TileAssignment, NumHexes)
	for _, e := range d.Tiles {
		if _, dup := tiles[e.Index]; dup {
			return nil, fmt.Errorf("duplicate tile entry for hex %d", e.Index)
		}
		res, err := ParseResource(e.Resource)
		if err != nil {
			return nil, fmt.Errorf("hex %d: %w", e.Index, err)
		}
		tile := Tile{Resource: res}
		if e.Number != nil {
			tile.Number = *e.Number
		}
		tiles[e.Index] = tile
	}
	if len(tiles) != NumHexes {
		return nil, fmt.Errorf("document covers %d hexes, want %d", len(tiles), NumHexes)
	}
	for idx := 0; idx < NumHexes; idx++ {
		if _, ok := tiles[idx]; !ok {
			return nil, fmt.Errorf("document missing hex %d", idx)
		}
	}
	return tiles, nil
}

// Document returns the canonical document form of an assignment, tiles
// sorted by index. Used when echoing a configuration back to callers and
// in exported reports.
func (t TileAssignment) Document() Document {
	indices := make([]int, 0, len(t))
	for idx := range t {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	doc := Document{Tiles: make([]TileEntry, 0, len(indices))}
	for _, idx := range indices {
		tile := t[idx]
		entry := TileEntry{Index: idx, Resource: tile.Resource.String()}
		if tile.Number != 0 {
			n := tile.Number
			entry.Number = &n
		}
		doc.Tiles = append(doc.Tiles, entry)
	}
	return doc
}
