// Intersection building — merges coinciding hex corners into board
// intersections keyed by rounded coordinates.
package geometry

import (
	"fmt"
	"math"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
)

// DefaultPrecision is the decimal-digit rounding applied to corner
// coordinates before they are compared. Tuned to size=1.0: coarse enough
// to absorb float error between corners computed from different hex
// centres, fine enough to keep genuinely distinct corners apart. A
// constant to tune, not a derived value.
const DefaultPrecision = 4

// Vertex identifies a board intersection by its rounded coordinates.
// This is the public identity of an intersection — callers see the
// rounded pair, not the raw floats it merged.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String renders the display identity, e.g. "V(0.866, -1.5)".
func (v Vertex) String() string {
	return fmt.Sprintf("V(%g, %g)", v.X, v.Y)
}

// IntersectionGraph maps every retained vertex to the distinct hex
// indices adjacent to it. Vertices holds first-insertion order; iterating
// it instead of the map keeps every downstream pass reproducible.
type IntersectionGraph struct {
	Vertices []Vertex
	Adjacent map[Vertex][]int
}

// BuildIntersections computes the intersection graph for a sequence of
// hexes: every hex contributes its 6 rounded corners, corners shared
// across hexes accumulate adjacency, and only vertices with exactly 2
// (board edge) or 3 (interior) adjacent hexes survive. Vertices touched
// by 1 hex or, through over-coarse rounding, by more than 3 are artifacts
// of the bounded board and are dropped.
//
// Adjacency lists keep the hex input order and never contain duplicates;
// a hex re-contributing the same rounded corner is skipped. size must be
// > 0 (see Center).
func BuildIntersections(hexes []board.Hex, size float64, precision int) *IntersectionGraph {
	pow := math.Pow(10, float64(precision))

	order := make([]Vertex, 0, len(hexes)*6)
	adjacent := make(map[Vertex][]int)

	for _, h := range hexes {
		center := Center(h.Coord, size)
		for _, corner := range Corners(center, size) {
			x := math.Round(corner.X*pow) / pow
			y := math.Round(corner.Y*pow) / pow
			// Corners on the axes can round to IEEE -0, depending on
			// which hex contributes them first. Collapse the sign so
			// labels and JSON never show "-0".
			if x == 0 {
				x = 0
			}
			if y == 0 {
				y = 0
			}
			v := Vertex{X: x, Y: y}
			list, seen := adjacent[v]
			if !seen {
				order = append(order, v)
			}
			dup := false
			for _, idx := range list {
				if idx == h.Index {
					dup = true
					break
				}
			}
			if !dup {
				adjacent[v] = append(list, h.Index)
			}
		}
	}

	g := &IntersectionGraph{Adjacent: make(map[Vertex][]int)}
	for _, v := range order {
		n := len(adjacent[v])
		if n == 2 || n == 3 {
			g.Vertices = append(g.Vertices, v)
			g.Adjacent[v] = adjacent[v]
		}
	}
	return g
}
