package engine

import (
	"context"
	"othello/game"
	"othello/player"
	"othello/searcher"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedPlayer struct {
	move game.Bitboard
	err  error
}

func (p fixedPlayer) Name() string {
	return "fixed"
}

func (p fixedPlayer) Move(context.Context, *game.Board) (game.Bitboard, error) {
	return p.move, p.err
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("random game ends terminal with legal moves", func(t *testing.T) {
		for seed := uint64(1); seed <= 5; seed++ {
			updates := 0
			e := New(game.NewStartingBoard(),
				player.NewRandom("one", seed), player.NewRandom("two", seed+100),
				WithObserver(func(u Update) {
					updates++
					require.Equal(t, updates, u.Record.Turn)
				}))

			result, err := e.Run(ctx)
			require.NoError(t, err)
			require.True(t, result.Finished)
			require.Equal(t, len(result.Moves), result.Turns)
			require.Equal(t, result.Turns, updates, "Observer sees every move")
			require.LessOrEqual(t, result.Black+result.White, game.Squares)

			// Replaying the record reaches the same final score
			board := game.NewStartingBoard()
			for _, record := range result.Moves {
				require.Equal(t, board.ActiveColor(), record.Color, "Turn %d", record.Turn)
				require.True(t, board.LegalMoves().Has(record.Move), "Turn %d", record.Turn)
				require.NoError(t, board.Apply(record.Move))
				black, white := board.Scores()
				require.Equal(t, record.Black, black)
				require.Equal(t, record.White, white)
			}
			require.True(t, board.IsTerminal())

			switch {
			case result.Black > result.White:
				require.Equal(t, game.Black, result.Winner)
			case result.White > result.Black:
				require.Equal(t, game.White, result.Winner)
			default:
				require.True(t, result.Draw)
			}
		}
	})

	t.Run("search players report metrics", func(t *testing.T) {
		mcts := searcher.NewMCTS(searcher.WithIterations(20), searcher.WithSeed(4), searcher.WithMetrics())
		e := New(game.NewStartingBoard(), player.NewSearch("tree", mcts), player.NewRandom("dice", 4), WithMaxTurns(2))

		result, err := e.Run(ctx)
		require.NoError(t, err)
		require.False(t, result.Finished)
		require.Len(t, result.Moves, 2)
		require.Equal(t, 20, result.Moves[0].Search.Episodes)
		require.Zero(t, result.Moves[1].Search.Episodes, "Random players do not search")
	})

	t.Run("illegal move stops the game", func(t *testing.T) {
		a1, err := game.ParseSquare("a1")
		require.NoError(t, err)

		for _, move := range []game.Bitboard{a1, game.NoMove, a1 | game.SquareBit(19)} {
			e := New(game.NewStartingBoard(), fixedPlayer{move: move}, player.NewRandom("dice", 1))

			result, err := e.Run(ctx)
			require.ErrorIs(t, err, game.ErrIllegalMove)
			require.Zero(t, result.Turns)
		}
	})

	t.Run("player errors are returned", func(t *testing.T) {
		e := New(game.NewStartingBoard(), fixedPlayer{err: player.ErrQuit}, player.NewRandom("dice", 1))

		_, err := e.Run(ctx)
		require.ErrorIs(t, err, player.ErrQuit)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		e := New(game.NewStartingBoard(), player.NewRandom("a", 1), player.NewRandom("b", 2))

		_, err := e.Run(cancelled)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("finished position needs no moves", func(t *testing.T) {
		board, err := game.NewBoard(game.State{Black: game.SquareBit(0), White: game.SquareBit(63)}, game.Black)
		require.NoError(t, err)
		e := New(board, fixedPlayer{}, fixedPlayer{})

		result, err := e.Run(ctx)
		require.NoError(t, err)
		require.True(t, result.Finished)
		require.True(t, result.Draw)
		require.Equal(t, "draw, Black 1 - White 1", result.String())
	})

	t.Run("caller's board is not changed", func(t *testing.T) {
		board := game.NewStartingBoard()
		_, err := New(board, player.NewRandom("a", 1), player.NewRandom("b", 2)).Run(ctx)
		require.NoError(t, err)
		require.Equal(t, game.StartingState, board.State())
	})
}
