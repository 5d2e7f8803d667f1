package game

import (
	"fmt"
	"strings"
)

// ParseGrid reads eight rows of eight cells, rank 1 first. Cells are 'B' or
// 'X' for black, 'W' or 'O' for white and '.', '-' or '_' for empty. Spaces
// between cells are ignored.
func ParseGrid(rows []string) (State, error) {
	var s State
	if len(rows) != Size {
		return s, fmt.Errorf("%w: want %d rows, got %d", ErrBadGrid, Size, len(rows))
	}
	for r, row := range rows {
		cells := strings.ReplaceAll(row, " ", "")
		if len(cells) != Size {
			return s, fmt.Errorf("%w: row %d has %d cells", ErrBadGrid, r+1, len(cells))
		}
		for c := 0; c < Size; c++ {
			bit := SquareBit(r*Size + c)
			switch cells[c] {
			case 'B', 'b', 'X', 'x':
				s.Black |= bit
			case 'W', 'w', 'O', 'o':
				s.White |= bit
			case '.', '-', '_':
			default:
				return s, fmt.Errorf("%w: unexpected %q at %s", ErrBadGrid, cells[c], IndexName(r*Size+c))
			}
		}
	}
	return s, nil
}

// FormatGrid is the inverse of ParseGrid.
func FormatGrid(s State) []string {
	rows := make([]string, Size)
	for r := 0; r < Size; r++ {
		var sb strings.Builder
		for c := 0; c < Size; c++ {
			bit := SquareBit(r*Size + c)
			switch {
			case s.Black.Has(bit):
				sb.WriteByte('B')
			case s.White.Has(bit):
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
		}
		rows[r] = sb.String()
	}
	return rows
}
