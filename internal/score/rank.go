// Ranking — the full scoring pass over an intersection graph.
package score

import (
	"sort"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
	"github.com/berpycasiano-dotcom/catanylizer/internal/geometry"
)

// Rank scores every intersection in the graph and sorts the result:
// score descending, then pips descending, then distinct resources
// descending. The sort is stable over the graph's insertion order, so an
// unchanged assignment always yields an identical ranking. Truncating to
// a display count is the caller's concern — the full sequence comes back.
func Rank(g *geometry.IntersectionGraph, tiles board.TileAssignment, weight float64) ([]Intersection, error) {
	ranked := make([]Intersection, 0, len(g.Vertices))
	for _, v := range g.Vertices {
		in, err := ScoreIntersection(v, g.Adjacent[v], tiles, weight)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, in)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].PipsSum != ranked[j].PipsSum {
			return ranked[i].PipsSum > ranked[j].PipsSum
		}
		return ranked[i].DistinctResources > ranked[j].DistinctResources
	})
	return ranked, nil
}
