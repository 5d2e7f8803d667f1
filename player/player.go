package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"othello/config"
	"othello/game"
	"othello/searcher"
)

// ErrQuit is returned by a human player who wants to stop the game.
var ErrQuit = errors.New("player quit")

// Player chooses moves for whichever color is active on the board it is given.
type Player interface {
	Name() string
	// Move returns one of board's legal moves, or NoMove when there is none.
	Move(ctx context.Context, board *game.Board) (game.Bitboard, error)
}

// Reporter is implemented by players that search before moving.
type Reporter interface {
	LastSearch() searcher.SearchMetric
}

// New builds the player described by cfg. Human players read from in and
// write prompts and errors to out.
func New(cfg config.Player, in LineReader, out io.Writer) (Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" {
		name = cfg.Kind
	}

	switch cfg.Kind {
	case config.KindHuman:
		if in == nil {
			return nil, fmt.Errorf("human player %s needs an input", name)
		}
		return NewHuman(name, in, out), nil
	case config.KindRandom:
		return NewRandom(name, cfg.Seed), nil
	}

	options := []searcher.Option{
		searcher.WithIterations(cfg.Iterations),
		searcher.WithDuration(cfg.Duration),
		searcher.WithExploration(cfg.Exploration),
		searcher.WithGoroutines(cfg.Goroutines),
		searcher.WithSeed(cfg.Seed),
		searcher.WithMetrics(),
	}
	return NewSearch(name, searcher.NewMCTS(options...)), nil
}
