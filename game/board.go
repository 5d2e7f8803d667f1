package game

import "fmt"

// Board is a position together with the side to move, its legal moves and
// whether the game is over. It only changes through Apply.
type Board struct {
	state    State
	active   Color
	legal    Bitboard
	terminal bool
	ready    bool
}

// NewBoard builds a board and resolves its legal moves. When the starting
// color cannot move but the opponent can, the opponent starts.
func NewBoard(initial State, starting Color) (*Board, error) {
	if initial.Black&initial.White != 0 {
		return nil, fmt.Errorf("new board: %w", ErrOverlap)
	}
	b := &Board{
		state:  initial,
		active: starting,
		ready:  true,
	}
	b.legal = b.movesFor(starting)
	if b.legal == 0 {
		b.passTurn()
	}
	if b.state.Occupied() == all {
		b.finish()
	}
	return b, nil
}

func NewStartingBoard() *Board {
	b, err := NewBoard(StartingState, Black)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) LegalMoves() Bitboard {
	return b.legal
}

func (b *Board) ActiveColor() Color {
	return b.active
}

func (b *Board) IsTerminal() bool {
	return b.terminal
}

func (b *Board) State() State {
	return b.state
}

func (b *Board) Empty() Bitboard {
	return ^b.state.Occupied()
}

// Scores returns the disc counts of black and white.
func (b *Board) Scores() (black, white int) {
	return b.state.Black.Count(), b.state.White.Count()
}

// Winner reports the color with more discs; ok is false on a draw.
func (b *Board) Winner() (winner Color, ok bool) {
	black, white := b.Scores()
	switch {
	case black > white:
		return Black, true
	case white > black:
		return White, true
	}
	return Black, false
}

// Disc reports which color occupies square, if any.
func (b *Board) Disc(square int) (Color, bool) {
	bit := SquareBit(square)
	switch {
	case b.state.Black.Has(bit):
		return Black, true
	case b.state.White.Has(bit):
		return White, true
	}
	return Black, false
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Apply plays move for the active color, flips the captured discs and hands
// the turn to whoever can move next. The board is left untouched on error.
func (b *Board) Apply(move Bitboard) error {
	if !b.ready {
		return ErrUninitialized
	}
	if !move.IsSingle() {
		return fmt.Errorf("%w: %#x is not a single square", ErrIllegalMove, uint64(move))
	}
	if !b.legal.Has(move) {
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, SquareName(move), b.active)
	}

	own, opp := b.discs(b.active)
	captured := flips(move, own, opp)
	own |= move | captured
	opp &^= captured
	b.setDiscs(b.active, own, opp)

	if b.state.Occupied() == all {
		b.finish()
		return nil
	}

	mover := b.active
	b.active = mover.Opponent()
	b.legal = b.movesFor(b.active)
	if b.legal == 0 {
		b.active = mover
		b.legal = b.movesFor(mover)
		if b.legal == 0 {
			b.finish()
		}
	}
	return nil
}

// passTurn is used at construction when the starting color has no move.
func (b *Board) passTurn() {
	other := b.active.Opponent()
	if moves := b.movesFor(other); moves != 0 {
		b.active = other
		b.legal = moves
		return
	}
	b.finish()
}

func (b *Board) finish() {
	b.terminal = true
	b.legal = 0
}

func (b *Board) movesFor(c Color) Bitboard {
	own, opp := b.discs(c)
	return legalMoves(own, opp)
}

func (b *Board) discs(c Color) (own, opp Bitboard) {
	if c == Black {
		return b.state.Black, b.state.White
	}
	return b.state.White, b.state.Black
}

func (b *Board) setDiscs(c Color, own, opp Bitboard) {
	if c == Black {
		b.state.Black, b.state.White = own, opp
		return
	}
	b.state.White, b.state.Black = own, opp
}
