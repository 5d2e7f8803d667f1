package game

const (
	fileA Bitboard = 0x0101010101010101
	fileH Bitboard = 0x8080808080808080
	all   Bitboard = 0xFFFFFFFFFFFFFFFF
)

// direction shifts a set of squares one step. The mask drops squares that
// would otherwise wrap onto the opposite edge of the next or previous row.
type direction struct {
	shift int
	mask  Bitboard
}

func (d direction) step(b Bitboard) Bitboard {
	if d.shift > 0 {
		return (b << d.shift) & d.mask
	}
	return (b >> -d.shift) & d.mask
}

var directions = [8]direction{
	{shift: 8, mask: all},     // N
	{shift: -8, mask: all},    // S
	{shift: 1, mask: ^fileA},  // E
	{shift: -1, mask: ^fileH}, // W
	{shift: 9, mask: ^fileA},  // NE
	{shift: 7, mask: ^fileH},  // NW
	{shift: -7, mask: ^fileA}, // SE
	{shift: -9, mask: ^fileH}, // SW
}

// legalMoves returns every empty square where own can bracket at least one
// run of opp discs.
func legalMoves(own, opp Bitboard) Bitboard {
	empty := ^(own | opp)
	var moves Bitboard
	for _, d := range directions {
		run := d.step(own) & opp
		// A capture run is at most six discs long.
		for i := 0; i < 5; i++ {
			run |= d.step(run) & opp
		}
		moves |= d.step(run) & empty
	}
	return moves
}

// flips returns the opp discs captured by placing own's disc on move.
func flips(move, own, opp Bitboard) Bitboard {
	var captured Bitboard
	for _, d := range directions {
		var run Bitboard
		cur := d.step(move)
		for cur&opp != 0 {
			run |= cur
			cur = d.step(cur)
		}
		if cur&own != 0 {
			captured |= run
		}
	}
	return captured
}
