// Package board provides the fixed 19-hex game board, tile assignments,
// and input validation. Uses axial coordinates (q, r) for the hex grid.
package board

import "fmt"

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Hex is a single board cell: a stable index plus its axial coordinate.
// Created once by StandardBoard and never mutated.
type Hex struct {
	Index int      `json:"index"`
	Coord HexCoord `json:"coord"`
}

// Resource enumerates tile resource kinds.
type Resource uint8

const (
	ResourceWood   Resource = iota // Forest — lumber
	ResourceBrick                  // Hills — clay
	ResourceSheep                  // Pasture — wool
	ResourceWheat                  // Fields — grain
	ResourceOre                    // Mountains — metal
	ResourceDesert                 // Produces nothing, carries no number token
)

var resourceNames = [...]string{"wood", "brick", "sheep", "wheat", "ore", "desert"}

// String returns the lowercase resource name used in board documents.
func (r Resource) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return fmt.Sprintf("resource#%d", uint8(r))
}

// ParseResource maps a document resource name to its Resource value.
func ParseResource(s string) (Resource, error) {
	for i, name := range resourceNames {
		if s == name {
			return Resource(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource %q", s)
}
