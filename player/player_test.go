package player

import (
	"bytes"
	"context"
	"errors"
	"io"
	"othello/config"
	"othello/game"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/require"
)

type scriptedReader struct {
	lines  []string
	prompt string
	err    error
}

func (r *scriptedReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		if r.err != nil {
			return "", r.err
		}
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func square(t *testing.T, name string) game.Bitboard {
	t.Helper()
	bit, err := game.ParseSquare(name)
	require.NoError(t, err)
	return bit
}

func TestHuman(t *testing.T) {
	ctx := context.Background()

	t.Run("re-prompts until a legal move", func(t *testing.T) {
		in := &scriptedReader{lines: []string{"", "z9", "a1", "moves", " D3 "}}
		var out bytes.Buffer
		h := NewHuman("Ada", in, &out)

		move, err := h.Move(ctx, game.NewStartingBoard())

		require.NoError(t, err)
		require.Equal(t, square(t, "d3"), move)
		require.Equal(t, "Ada (Black) move: ", in.prompt)
		require.Contains(t, out.String(), "Invalid move format")
		require.Contains(t, out.String(), "a1 is not a legal move")
		require.Contains(t, out.String(), "Legal moves: d3 c4 f5 e6")
		require.Empty(t, in.lines, "Every line should be consumed")
	})

	t.Run("quit", func(t *testing.T) {
		for _, line := range []string{"quit", "EXIT"} {
			h := NewHuman("Ada", &scriptedReader{lines: []string{line}}, nil)

			_, err := h.Move(ctx, game.NewStartingBoard())
			require.ErrorIs(t, err, ErrQuit, line)
		}
	})

	t.Run("end of input and interrupt quit", func(t *testing.T) {
		for _, readErr := range []error{io.EOF, readline.ErrInterrupt} {
			h := NewHuman("Ada", &scriptedReader{err: readErr}, nil)

			_, err := h.Move(ctx, game.NewStartingBoard())
			require.ErrorIs(t, err, ErrQuit)
		}
	})

	t.Run("read failures are returned", func(t *testing.T) {
		failure := errors.New("terminal gone")
		h := NewHuman("Ada", &scriptedReader{err: failure}, nil)

		_, err := h.Move(ctx, game.NewStartingBoard())
		require.ErrorIs(t, err, failure)
	})

	t.Run("no legal move needs no input", func(t *testing.T) {
		board, err := game.NewBoard(game.State{Black: square(t, "a1"), White: square(t, "h8")}, game.Black)
		require.NoError(t, err)
		h := NewHuman("Ada", &scriptedReader{}, nil)

		move, err := h.Move(ctx, board)
		require.NoError(t, err)
		require.Equal(t, game.NoMove, move)
	})
}

func TestRandom(t *testing.T) {
	ctx := context.Background()

	t.Run("plays legal moves", func(t *testing.T) {
		board := game.NewStartingBoard()
		r := NewRandom("dice", 3)

		for !board.IsTerminal() {
			move, err := r.Move(ctx, board)
			require.NoError(t, err)
			require.True(t, board.LegalMoves().Has(move))
			require.NoError(t, board.Apply(move))
		}
		move, err := r.Move(ctx, board)
		require.NoError(t, err)
		require.Equal(t, game.NoMove, move)
	})

	t.Run("same seed same moves", func(t *testing.T) {
		a, b := NewRandom("a", 17), NewRandom("b", 17)
		board := game.NewStartingBoard()
		for i := 0; i < 10 && !board.IsTerminal(); i++ {
			moveA, _ := a.Move(ctx, board)
			moveB, _ := b.Move(ctx, board)
			require.Equal(t, moveA, moveB)
			require.NoError(t, board.Apply(moveA))
		}
	})
}

func TestSearch(t *testing.T) {
	p, err := New(config.Player{Kind: config.KindMCTS, Name: "tree", Iterations: 50, Goroutines: 1, Exploration: 1.41, Seed: 8}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "tree", p.Name())

	board := game.NewStartingBoard()
	move, err := p.Move(context.Background(), board)

	require.NoError(t, err)
	require.True(t, board.LegalMoves().Has(move))
	reporter, ok := p.(Reporter)
	require.True(t, ok, "Search players report their last search")
	require.Equal(t, 50, reporter.LastSearch().Episodes)
}

func TestNew(t *testing.T) {
	t.Run("kinds", func(t *testing.T) {
		human, err := New(config.Player{Kind: config.KindHuman}, &scriptedReader{}, nil)
		require.NoError(t, err)
		require.IsType(t, &Human{}, human)
		require.Equal(t, config.KindHuman, human.Name(), "Kind is the fallback name")

		random, err := New(config.Player{Kind: config.KindRandom, Name: "dice"}, nil, nil)
		require.NoError(t, err)
		require.IsType(t, &Random{}, random)
	})

	t.Run("human without input", func(t *testing.T) {
		_, err := New(config.Player{Kind: config.KindHuman}, nil, nil)
		require.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := New(config.Player{Kind: config.KindMCTS, Goroutines: 1}, nil, nil)
		require.ErrorIs(t, err, config.ErrInvalid)
	})
}
