package game

import (
	"fmt"
	"strings"
)

// Display renders the board with rank 1 on top, legal moves marked with '*'.
func Display(b *Board) string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := 0; r < Size; r++ {
		fmt.Fprintf(&sb, "%d", r+1)
		for c := 0; c < Size; c++ {
			square := r*Size + c
			sb.WriteByte(' ')
			color, ok := b.Disc(square)
			switch {
			case ok && color == Black:
				sb.WriteByte('B')
			case ok:
				sb.WriteByte('W')
			case b.LegalMoves().Has(SquareBit(square)):
				sb.WriteByte('*')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	black, white := b.Scores()
	if b.IsTerminal() {
		fmt.Fprintf(&sb, "Game over. Black %d - White %d\n", black, white)
	} else {
		fmt.Fprintf(&sb, "%s to move. Black %d - White %d\n", b.ActiveColor(), black, white)
	}
	return sb.String()
}
