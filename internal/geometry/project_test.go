package geometry

import (
	"math"
	"testing"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCenter_ProjectsAxialToPixel(t *testing.T) {
	cases := []struct {
		coord board.HexCoord
		size  float64
		want  Point
	}{
		{board.HexCoord{Q: 0, R: 0}, 1.0, Point{0, 0}},
		{board.HexCoord{Q: 1, R: 0}, 1.0, Point{Sqrt3, 0}},
		{board.HexCoord{Q: 0, R: 1}, 1.0, Point{Sqrt3 / 2, 1.5}},
		{board.HexCoord{Q: -2, R: 2}, 2.0, Point{-2 * Sqrt3, 6}},
	}

	for _, tc := range cases {
		got := Center(tc.coord, tc.size)
		if !almostEqual(got.X, tc.want.X) || !almostEqual(got.Y, tc.want.Y) {
			t.Fatalf("center of (%d,%d) at size %v: expected (%v,%v), got (%v,%v)",
				tc.coord.Q, tc.coord.R, tc.size, tc.want.X, tc.want.Y, got.X, got.Y)
		}
	}
}

func TestCorners_RingAroundCenter(t *testing.T) {
	center := Point{X: 2, Y: 3}
	size := 1.5
	corners := Corners(center, size)

	for i, c := range corners {
		d := math.Hypot(c.X-center.X, c.Y-center.Y)
		if !almostEqual(d, size) {
			t.Fatalf("corner %d: expected distance %v, got %v", i, size, d)
		}
	}

	// Spot-check three corners against the angle formula by hand:
	// i=0 at -30°, i=2 at 90°, i=5 at 270°.
	if !almostEqual(corners[0].X, 2+size*Sqrt3/2) || !almostEqual(corners[0].Y, 3-size/2) {
		t.Fatalf("corner 0: got (%v,%v)", corners[0].X, corners[0].Y)
	}
	if !almostEqual(corners[2].X, 2) || !almostEqual(corners[2].Y, 3+size) {
		t.Fatalf("corner 2: got (%v,%v)", corners[2].X, corners[2].Y)
	}
	if !almostEqual(corners[5].X, 2) || !almostEqual(corners[5].Y, 3-size) {
		t.Fatalf("corner 5: got (%v,%v)", corners[5].X, corners[5].Y)
	}
}
