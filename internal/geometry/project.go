// Package geometry derives the pixel-space board model: hex centers,
// corner vertices, and the deduplicated intersection graph.
// Projection is pointy-top; all functions are pure.
package geometry

import (
	"math"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
)

// Sqrt3 is the width factor between adjacent pointy-top hex columns.
const Sqrt3 = 1.7320508075688772

// Point is a 2D pixel-space position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Center projects an axial coordinate to its hex center:
// x = size·√3·(q + r/2), y = size·1.5·r.
// size scales the board and must be > 0; zero or negative size collapses
// every hex onto the origin, which nothing downstream guards against.
func Center(c board.HexCoord, size float64) Point {
	return Point{
		X: size * Sqrt3 * (float64(c.Q) + float64(c.R)/2),
		Y: size * 1.5 * float64(c.R),
	}
}

// Corners returns the 6 corner vertices of a hex around the given center,
// at angles 60°·i − 30° for i in 0..5, each at distance size. The
// increasing-angle order is fixed so repeated runs emit corners
// identically.
func Corners(center Point, size float64) [6]Point {
	var out [6]Point
	for i := 0; i < 6; i++ {
		angle := math.Pi/3*float64(i) - math.Pi/6
		out[i] = Point{
			X: center.X + size*math.Cos(angle),
			Y: center.Y + size*math.Sin(angle),
		}
	}
	return out
}
