package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"othello/game"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader is the part of *readline.Instance a human player needs.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

type Human struct {
	name string
	in   LineReader
	out  io.Writer
}

func NewHuman(name string, in LineReader, out io.Writer) *Human {
	if out == nil {
		out = io.Discard
	}
	return &Human{name: name, in: in, out: out}
}

func (h *Human) Name() string {
	return h.name
}

// Move prompts until a legal square is entered. "moves" lists the legal
// squares and "quit" ends the game with ErrQuit.
func (h *Human) Move(ctx context.Context, board *game.Board) (game.Bitboard, error) {
	legal := board.LegalMoves()
	if legal == game.NoMove {
		return game.NoMove, nil
	}
	h.in.SetPrompt(fmt.Sprintf("%s (%s) move: ", h.name, board.ActiveColor()))

	for {
		if err := ctx.Err(); err != nil {
			return game.NoMove, err
		}
		line, err := h.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return game.NoMove, ErrQuit
		}
		if err != nil {
			return game.NoMove, fmt.Errorf("failed to read move: %w", err)
		}

		line = strings.ToLower(strings.TrimSpace(line))
		switch line {
		case "":
			continue
		case "quit", "exit":
			return game.NoMove, ErrQuit
		case "moves":
			fmt.Fprintf(h.out, "Legal moves: %s\n", strings.Join(game.SquareNames(legal), " "))
			continue
		}

		move, err := game.ParseSquare(line)
		if err != nil {
			fmt.Fprintln(h.out, "Invalid move format. Use letters a-h and numbers 1-8.")
			continue
		}
		if !legal.Has(move) {
			fmt.Fprintf(h.out, "%s is not a legal move. Try again.\n", line)
			continue
		}
		return move, nil
	}
}
