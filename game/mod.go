package game

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Squares are indexed row-major from a1 (0) to h8 (63).
const (
	Size    = 8
	Squares = Size * Size
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrOverlap       = errors.New("black and white discs overlap")
	ErrUninitialized = errors.New("board was not created with NewBoard")
	ErrBadSquare     = errors.New("invalid square")
	ErrBadGrid       = errors.New("invalid grid")
	ErrBadColor      = errors.New("invalid color")
)

type Color uint8

const (
	Black Color = iota
	White
)

func (c Color) Opponent() Color {
	return c ^ 1
}

// ParseColor accepts "black"/"b" and "white"/"w" in any case.
func ParseColor(name string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	}
	return Black, fmt.Errorf("%w: %q", ErrBadColor, name)
}

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// Bitboard is a set of squares, bit i standing for square i. A move is a
// Bitboard with exactly one bit set.
type Bitboard uint64

// NoMove is returned by move sources when there is nothing to play.
const NoMove Bitboard = 0

func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

func (b Bitboard) Has(other Bitboard) bool {
	return b&other != 0
}

func (b Bitboard) IsSingle() bool {
	return b != 0 && b&(b-1) == 0
}

// Nth returns the k-th lowest set bit (k counts from 0), or NoMove if the set
// has fewer than k+1 members.
func (b Bitboard) Nth(k int) Bitboard {
	for b != 0 {
		low := b & -b
		if k == 0 {
			return low
		}
		k--
		b &^= low
	}
	return NoMove
}

// Squares lists the set square indices in ascending order.
func (b Bitboard) Squares() []int {
	squares := make([]int, 0, b.Count())
	for b != 0 {
		squares = append(squares, bits.TrailingZeros64(uint64(b)))
		b &= b - 1
	}
	return squares
}

func SquareBit(square int) Bitboard {
	return Bitboard(1) << square
}

// State holds one disc set per color.
type State struct {
	Black Bitboard
	White Bitboard
}

// StartingState is the standard opening: white on d4 and e5, black on e4 and d5.
var StartingState = State{
	Black: 0x0000000810000000,
	White: 0x0000001008000000,
}

func (s State) Discs(c Color) Bitboard {
	if c == Black {
		return s.Black
	}
	return s.White
}

func (s State) Occupied() Bitboard {
	return s.Black | s.White
}
