// Standard board layout — the fixed 19-hex hexagon in rows of 3-4-5-4-3.
package board

// BoardRadius is the hex distance from the center cell to the board edge.
const BoardRadius = 2

// NumHexes is the cell count of the standard board.
const NumHexes = 19

// StandardBoard returns the 19 hexes of the standard board in row-major
// order: top row (r=-2) first, left to right within each row. Indices run
// 0..18 in that order. Deterministic and pure — the topology is fixed.
func StandardBoard() []Hex {
	hexes := make([]Hex, 0, NumHexes)
	for r := -BoardRadius; r <= BoardRadius; r++ {
		qMin := max(-BoardRadius, -r-BoardRadius)
		qMax := min(BoardRadius, -r+BoardRadius)
		for q := qMin; q <= qMax; q++ {
			hexes = append(hexes, Hex{
				Index: len(hexes),
				Coord: HexCoord{Q: q, R: r},
			})
		}
	}
	return hexes
}
