// Package score turns intersections plus a tile assignment into ranked
// desirability scores.
package score

// PipTable maps a dice total to its production weight — the number of
// two-die combinations that roll it. 7 is absent: the robber's number
// produces nothing.
var PipTable = map[int]int{
	2: 1, 3: 2, 4: 3, 5: 4, 6: 5,
	8: 5, 9: 4, 10: 3, 11: 2, 12: 1,
}

// Pips returns the production weight for a number token. Anything outside
// the table — 7, 0 for an absent token, malformed input — contributes 0.
func Pips(number int) int {
	return PipTable[number]
}
