package score

import (
	"errors"
	"reflect"
	"testing"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
	"github.com/berpycasiano-dotcom/catanylizer/internal/geometry"
)

func standardGraph() *geometry.IntersectionGraph {
	return geometry.BuildIntersections(board.StandardBoard(), 1.0, geometry.DefaultPrecision)
}

func TestRank_CoversEveryIntersectionSorted(t *testing.T) {
	g := standardGraph()
	tiles := board.RandomAssignment(11)

	ranked, err := Rank(g, tiles, 0.5)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(ranked) != len(g.Vertices) {
		t.Fatalf("expected %d scored intersections, got %d", len(g.Vertices), len(ranked))
	}

	for i := 1; i < len(ranked); i++ {
		a, b := ranked[i-1], ranked[i]
		if a.Score < b.Score {
			t.Fatalf("position %d: score %v ranked above %v", i, b.Score, a.Score)
		}
		if a.Score == b.Score && a.PipsSum < b.PipsSum {
			t.Fatalf("position %d: pips tie-break violated (%d above %d)", i, a.PipsSum, b.PipsSum)
		}
		if a.Score == b.Score && a.PipsSum == b.PipsSum && a.DistinctResources < b.DistinctResources {
			t.Fatalf("position %d: distinct tie-break violated", i)
		}
	}
}

func TestRank_IdempotentAcrossRuns(t *testing.T) {
	g := standardGraph()
	tiles := board.RandomAssignment(11)

	first, err := Rank(g, tiles, 0.5)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	second, err := Rank(g, tiles, 0.5)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical rankings for an unchanged assignment")
	}
}

func TestRank_MissingTileFailsFast(t *testing.T) {
	g := standardGraph()
	tiles := board.RandomAssignment(11)
	delete(tiles, 9)

	if _, err := Rank(g, tiles, 0.5); !errors.Is(err, ErrNoTile) {
		t.Fatalf("expected ErrNoTile, got %v", err)
	}
}

func TestRank_TieBreakPrefersDistinct(t *testing.T) {
	// Two intersections with equal score and pips at weight 0; the one
	// with more distinct resources must rank first despite inserting last.
	g := &geometry.IntersectionGraph{
		Vertices: []geometry.Vertex{{X: 1}, {X: 2}},
		Adjacent: map[geometry.Vertex][]int{
			{X: 1}: {0, 1},
			{X: 2}: {2, 3},
		},
	}
	tiles := board.TileAssignment{
		0: {Resource: board.ResourceWood, Number: 5},
		1: {Resource: board.ResourceWood, Number: 9},
		2: {Resource: board.ResourceWood, Number: 5},
		3: {Resource: board.ResourceBrick, Number: 9},
	}

	ranked, err := Rank(g, tiles, 0)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if ranked[0].Vertex.X != 2 {
		t.Fatalf("expected the 2-resource intersection first, got %+v", ranked[0])
	}
	if ranked[0].Score != ranked[1].Score || ranked[0].PipsSum != ranked[1].PipsSum {
		t.Fatalf("fixture broken: scores %v/%v pips %d/%d should tie",
			ranked[0].Score, ranked[1].Score, ranked[0].PipsSum, ranked[1].PipsSum)
	}
}

func TestRank_StableForEqualProfiles(t *testing.T) {
	g := &geometry.IntersectionGraph{
		Vertices: []geometry.Vertex{{X: 1}, {X: 2}, {X: 3}},
		Adjacent: map[geometry.Vertex][]int{
			{X: 1}: {0, 1},
			{X: 2}: {2, 3},
			{X: 3}: {4, 5},
		},
	}
	tiles := board.TileAssignment{
		0: {Resource: board.ResourceWood, Number: 5},
		1: {Resource: board.ResourceBrick, Number: 2},
		2: {Resource: board.ResourceWood, Number: 5},
		3: {Resource: board.ResourceBrick, Number: 2},
		4: {Resource: board.ResourceOre, Number: 6},
		5: {Resource: board.ResourceWheat, Number: 6},
	}

	ranked, err := Rank(g, tiles, 0.5)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	// The ore/wheat pair scores 10.5; the identical wood/brick pairs score
	// 5.5 each and must keep insertion order.
	if ranked[0].Vertex.X != 3 {
		t.Fatalf("expected the high scorer first, got %+v", ranked[0])
	}
	if ranked[1].Vertex.X != 1 || ranked[2].Vertex.X != 2 {
		t.Fatalf("expected equal profiles in insertion order, got %v then %v",
			ranked[1].Vertex.X, ranked[2].Vertex.X)
	}
}
