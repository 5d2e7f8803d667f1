package engine

import (
	"context"
	"fmt"
	"othello/game"
	"othello/player"
	"othello/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

// MaxTurns bounds a game. Every move adds a disc so a game from any position
// ends well before it.
const MaxTurns = game.Squares

type MoveRecord struct {
	Turn     int
	Color    game.Color
	Player   string
	Move     game.Bitboard
	Duration time.Duration
	Search   searcher.SearchMetric // Zero unless the player searched
	Black    int                   // Discs after the move
	White    int
}

// Update is sent to the observer after every move.
type Update struct {
	Record MoveRecord
	Board  *game.Board
}

type Result struct {
	Winner   game.Color // Meaningless on a draw
	Draw     bool
	Finished bool // False when the turn limit stopped the game
	Black    int
	White    int
	Turns    int
	Duration time.Duration
	Moves    []MoveRecord
}

type Option func(e *Engine)

func WithObserver(observer func(Update)) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// Engine referees one game between two players.
type Engine struct {
	board    *game.Board
	players  [2]player.Player
	observer func(Update)
	maxTurns int
}

func New(board *game.Board, black, white player.Player, options ...Option) *Engine {
	e := &Engine{
		board:    board.Clone(),
		players:  [2]player.Player{game.Black: black, game.White: white},
		observer: func(Update) {},
		maxTurns: MaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run asks the active player for a move until the game ends. A move outside
// the legal set stops the game with an error wrapping game.ErrIllegalMove.
// The partial result is returned alongside any error.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	moves := []MoveRecord{}
	board := e.board

	log.Info().Msgf("%s (Black) vs %s (White), %s to move",
		e.players[game.Black].Name(), e.players[game.White].Name(), board.ActiveColor())

	for turn := 1; !board.IsTerminal() && turn <= e.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return e.result(board, moves, start), err
		}

		color := board.ActiveColor()
		p := e.players[color]
		moveStart := time.Now()
		move, err := p.Move(ctx, board.Clone())
		if err != nil {
			return e.result(board, moves, start), fmt.Errorf("%s: %w", p.Name(), err)
		}
		if !move.IsSingle() || !board.LegalMoves().Has(move) {
			return e.result(board, moves, start), fmt.Errorf("%s (%s) played %s: %w",
				p.Name(), color, game.SquareName(move), game.ErrIllegalMove)
		}
		if err := board.Apply(move); err != nil {
			return e.result(board, moves, start), err
		}

		record := MoveRecord{
			Turn:     turn,
			Color:    color,
			Player:   p.Name(),
			Move:     move,
			Duration: time.Since(moveStart),
		}
		if reporter, ok := p.(player.Reporter); ok {
			record.Search = reporter.LastSearch()
		}
		record.Black, record.White = board.Scores()
		moves = append(moves, record)

		log.Debug().
			Int("turn", turn).
			Str("player", p.Name()).
			Str("move", game.SquareName(move)).
			Int("black", record.Black).
			Int("white", record.White).
			Msg("move played")
		e.observer(Update{Record: record, Board: board.Clone()})
	}

	result := e.result(board, moves, start)
	if result.Finished {
		log.Info().Msgf("game over after %d turns: %s", result.Turns, result)
	} else {
		log.Info().Msgf("stopped after %d turns (no winner yet)", result.Turns)
	}
	return result, nil
}

func (e *Engine) result(board *game.Board, moves []MoveRecord, start time.Time) Result {
	r := Result{
		Finished: board.IsTerminal(),
		Turns:    len(moves),
		Duration: time.Since(start),
		Moves:    moves,
	}
	r.Black, r.White = board.Scores()
	winner, ok := board.Winner()
	r.Winner = winner
	r.Draw = r.Finished && !ok
	return r
}

func (r Result) String() string {
	switch {
	case !r.Finished:
		return fmt.Sprintf("unfinished, Black %d - White %d", r.Black, r.White)
	case r.Draw:
		return fmt.Sprintf("draw, Black %d - White %d", r.Black, r.White)
	}
	return fmt.Sprintf("%s wins, Black %d - White %d", r.Winner, r.Black, r.White)
}
