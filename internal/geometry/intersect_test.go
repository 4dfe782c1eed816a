package geometry

import (
	"reflect"
	"testing"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
)

func TestVertex_String(t *testing.T) {
	cases := []struct {
		v    Vertex
		want string
	}{
		{Vertex{X: 0.866, Y: -0.5}, "V(0.866, -0.5)"},
		{Vertex{X: 0, Y: 0}, "V(0, 0)"},
		{Vertex{X: -1.732, Y: 3}, "V(-1.732, 3)"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestBuildIntersections_TwoNeighborsShareTwoCorners(t *testing.T) {
	hexes := []board.Hex{
		{Index: 0, Coord: board.HexCoord{Q: 0, R: 0}},
		{Index: 1, Coord: board.HexCoord{Q: 1, R: 0}},
	}

	g := BuildIntersections(hexes, 1.0, DefaultPrecision)
	if len(g.Vertices) != 2 {
		t.Fatalf("expected 2 shared corners, got %d", len(g.Vertices))
	}
	want := []Vertex{{X: 0.866, Y: -0.5}, {X: 0.866, Y: 0.5}}
	for _, v := range want {
		got, ok := g.Adjacent[v]
		if !ok {
			t.Fatalf("expected shared corner %v", v)
		}
		if !reflect.DeepEqual(got, []int{0, 1}) {
			t.Fatalf("corner %v: expected adjacency [0 1], got %v", v, got)
		}
	}
}

// The 3-4-5-4-3 board has 54 distinct corner positions; 18 of them touch
// a single coastal hex and are discarded, leaving 36 intersections:
// 12 on the board edge (2 hexes) and 24 interior (3 hexes).
func TestBuildIntersections_StandardBoardCounts(t *testing.T) {
	g := BuildIntersections(board.StandardBoard(), 1.0, DefaultPrecision)

	if len(g.Vertices) != 36 {
		t.Fatalf("expected 36 intersections, got %d", len(g.Vertices))
	}
	if len(g.Adjacent) != len(g.Vertices) {
		t.Fatalf("expected order slice and adjacency map to agree, got %d vs %d",
			len(g.Vertices), len(g.Adjacent))
	}

	edge, interior := 0, 0
	for _, v := range g.Vertices {
		list := g.Adjacent[v]
		switch len(list) {
		case 2:
			edge++
		case 3:
			interior++
		default:
			t.Fatalf("vertex %v: expected 2 or 3 adjacent hexes, got %d", v, len(list))
		}

		seen := make(map[int]bool)
		for _, idx := range list {
			if idx < 0 || idx >= board.NumHexes {
				t.Fatalf("vertex %v: hex index %d out of range", v, idx)
			}
			if seen[idx] {
				t.Fatalf("vertex %v: duplicate hex index %d", v, idx)
			}
			seen[idx] = true
		}
	}

	if edge != 12 || interior != 24 {
		t.Fatalf("expected 12 edge + 24 interior, got %d + %d", edge, interior)
	}
}

func TestBuildIntersections_CountsHoldAcrossSizes(t *testing.T) {
	for _, size := range []float64{0.25, 1.0, 2.5} {
		g := BuildIntersections(board.StandardBoard(), size, DefaultPrecision)
		if len(g.Vertices) != 36 {
			t.Fatalf("size %v: expected 36 intersections, got %d", size, len(g.Vertices))
		}
	}
}

func TestBuildIntersections_DeterministicOrder(t *testing.T) {
	a := BuildIntersections(board.StandardBoard(), 1.0, DefaultPrecision)
	b := BuildIntersections(board.StandardBoard(), 1.0, DefaultPrecision)

	if !reflect.DeepEqual(a.Vertices, b.Vertices) {
		t.Fatalf("expected identical vertex order across runs")
	}
	if !reflect.DeepEqual(a.Adjacent, b.Adjacent) {
		t.Fatalf("expected identical adjacency across runs")
	}
}
