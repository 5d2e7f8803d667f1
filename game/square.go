package game

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/samber/lo"
)

// ParseSquare converts a name such as "d3" into a single-square Bitboard.
func ParseSquare(name string) (Bitboard, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) != 2 {
		return NoMove, fmt.Errorf("%w: %q", ErrBadSquare, name)
	}
	file, rank := name[0], name[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoMove, fmt.Errorf("%w: %q", ErrBadSquare, name)
	}
	return SquareBit(int(rank-'1')*Size + int(file-'a')), nil
}

// SquareName names the lowest square of move, or "--" for NoMove.
func SquareName(move Bitboard) string {
	if move == NoMove {
		return "--"
	}
	return IndexName(bits.TrailingZeros64(uint64(move)))
}

func IndexName(square int) string {
	return string([]byte{'a' + byte(square%Size), '1' + byte(square/Size)})
}

// SquareNames lists the names of every square in moves, lowest first.
func SquareNames(moves Bitboard) []string {
	return lo.Map(moves.Squares(), func(square int, _ int) string {
		return IndexName(square)
	})
}
