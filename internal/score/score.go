// Scoring a single intersection from its adjacent tiles.
package score

import (
	"errors"
	"fmt"
	"strings"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
	"github.com/berpycasiano-dotcom/catanylizer/internal/geometry"
)

// ErrNoTile reports a hex index present in the intersection graph but
// missing from the tile assignment. That is an invariant violation
// between graph and assignment, not a user input problem, so scoring
// fails fast instead of treating the hex as blank.
var ErrNoTile = errors.New("no tile assigned to hex")

// Intersection is one scored board intersection for one scoring pass.
// Ephemeral — recomputed whenever the assignment or weight changes.
type Intersection struct {
	Vertex              geometry.Vertex `json:"vertex"`
	Label               string          `json:"label"`
	Score               float64         `json:"score"`
	PipsSum             int             `json:"pips_sum"`
	DiversityBonus      float64         `json:"diversity_bonus"`
	DistinctResources   int             `json:"distinct_resources"`
	HexCount            int             `json:"hex_count"`
	AdjacentDescription string          `json:"adjacent_description"`
}

// ScoreIntersection scores one intersection given its adjacent hex
// indices. weight is the diversity bonus per distinct resource beyond the
// first (any non-negative value). Tiles with missing or out-of-table
// numbers contribute zero pips; desert contributes neither pips nor
// diversity. A hex index absent from tiles returns ErrNoTile.
func ScoreIntersection(v geometry.Vertex, adjacent []int, tiles board.TileAssignment, weight float64) (Intersection, error) {
	var pips int
	distinct := make(map[board.Resource]bool, len(adjacent))
	parts := make([]string, 0, len(adjacent))

	for _, idx := range adjacent {
		tile, ok := tiles[idx]
		if !ok {
			return Intersection{}, fmt.Errorf("hex %d: %w", idx, ErrNoTile)
		}
		if tile.Resource == board.ResourceDesert {
			parts = append(parts, tile.Resource.String())
			continue
		}
		pips += Pips(tile.Number)
		distinct[tile.Resource] = true
		if tile.Number == 0 {
			parts = append(parts, tile.Resource.String())
		} else {
			parts = append(parts, fmt.Sprintf("%s %d", tile.Resource, tile.Number))
		}
	}

	bonus := 0.0
	if extra := len(distinct) - 1; extra > 0 {
		bonus = weight * float64(extra)
	}

	return Intersection{
		Vertex:              v,
		Label:               v.String(),
		Score:               float64(pips) + bonus,
		PipsSum:             pips,
		DiversityBonus:      bonus,
		DistinctResources:   len(distinct),
		HexCount:            len(adjacent),
		AdjacentDescription: strings.Join(parts, ", "),
	}, nil
}
