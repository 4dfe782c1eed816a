// Random setup dealing — shuffles the standard component mix over the
// board for quick-start configurations.
package board

import "math/rand"

// standardMix is the resource tile mix of the standard game box:
// 4 wood, 3 brick, 4 sheep, 4 wheat, 3 ore, 1 desert.
var standardMix = []Resource{
	ResourceWood, ResourceWood, ResourceWood, ResourceWood,
	ResourceBrick, ResourceBrick, ResourceBrick,
	ResourceSheep, ResourceSheep, ResourceSheep, ResourceSheep,
	ResourceWheat, ResourceWheat, ResourceWheat, ResourceWheat,
	ResourceOre, ResourceOre, ResourceOre,
	ResourceDesert,
}

// numberTokens is the token set dealt to the 18 non-desert tiles.
var numberTokens = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// RandomAssignment deals a random legal setup: the resource mix shuffled
// over indices 0..18, then the number tokens shuffled and dealt in index
// order to every non-desert tile. The same seed always produces the same
// assignment.
func RandomAssignment(seed int64) TileAssignment {
	rng := rand.New(rand.NewSource(seed))

	resources := make([]Resource, len(standardMix))
	copy(resources, standardMix)
	rng.Shuffle(len(resources), func(i, j int) {
		resources[i], resources[j] = resources[j], resources[i]
	})

	tokens := make([]int, len(numberTokens))
	copy(tokens, numberTokens)
	rng.Shuffle(len(tokens), func(i, j int) {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	})

	tiles := make(TileAssignment, NumHexes)
	next := 0
	for idx := 0; idx < NumHexes; idx++ {
		tile := Tile{Resource: resources[idx]}
		if tile.Resource != ResourceDesert {
			tile.Number = tokens[next]
			next++
		}
		tiles[idx] = tile
	}
	return tiles
}
