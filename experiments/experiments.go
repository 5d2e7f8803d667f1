package experiments

import (
	"context"
	"errors"
	"fmt"
	"othello/config"
	"othello/engine"
	"othello/game"
	"othello/player"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Config describes a match of several games between two player configs.
type Config struct {
	Name      string
	Board     *game.Board // Nil means the standard opening
	Black     config.Player
	White     config.Player
	Games     int
	Parallel  int  // Games played at once
	Alternate bool // Swap colors on every other game
	OutputDir string
}

type MoveRecord struct {
	Game int // GameRecord.ID
	engine.MoveRecord
}

// Run plays the configured games and, when OutputDir is set, stores game
// records, move records and a summary under a new subfolder of it.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	if cfg.Games <= 0 {
		return Summary{}, errors.New("experiment needs at least one game")
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = 1
	}
	if cfg.Board == nil {
		cfg.Board = game.NewStartingBoard()
	}

	log.Info().Msgf("starting %s experiment with %d games...", cfg.Name, cfg.Games)
	start := time.Now()

	gameRecords := make([]GameRecord, cfg.Games)
	moveRecords := make([][]MoveRecord, cfg.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			record, moves, err := runGame(gctx, cfg, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			gameRecords[i] = record
			moveRecords[i] = moves
			log.Info().Msgf("completed game %d of %d with winner: %s", i+1, cfg.Games, record.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := summarize(cfg, gameRecords, moveRecords, time.Since(start))
	log.Info().Msgf("completed %s experiment", cfg.Name)

	if cfg.OutputDir == "" {
		return summary, nil
	}
	writer, err := NewWriter(cfg.OutputDir)
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(lo.Flatten(moveRecords)); err != nil {
		return summary, err
	}
	log.Info().Msg("stored move records")
	if err := writer.WriteSummary(summary); err != nil {
		return summary, err
	}
	log.Info().Msgf("stored summary in %s", writer.Dir())
	return summary, nil
}

// runGame plays game i. Seeded players get a different seed per game so that
// games do not repeat.
func runGame(ctx context.Context, cfg Config, i int) (GameRecord, []MoveRecord, error) {
	blackCfg, whiteCfg := cfg.Black, cfg.White
	if cfg.Alternate && i%2 == 1 {
		blackCfg, whiteCfg = whiteCfg, blackCfg
	}
	black, err := player.New(reseed(blackCfg, i), nil, nil)
	if err != nil {
		return GameRecord{}, nil, err
	}
	white, err := player.New(reseed(whiteCfg, i), nil, nil)
	if err != nil {
		return GameRecord{}, nil, err
	}

	startTime := time.Now()
	result, err := engine.New(cfg.Board, black, white).Run(ctx)
	if err != nil {
		return GameRecord{}, nil, err
	}
	endTime := time.Now()

	id := i + 1
	record := GameRecord{
		ID:         id,
		Black:      black.Name(),
		White:      white.Name(),
		Winner:     winnerName(result),
		BlackDiscs: result.Black,
		WhiteDiscs: result.White,
		Turns:      result.Turns,
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(startTime),
	}
	moves := make([]MoveRecord, 0, len(result.Moves))
	for _, m := range result.Moves {
		moves = append(moves, MoveRecord{Game: id, MoveRecord: m})
	}
	return record, moves, nil
}

func reseed(p config.Player, i int) config.Player {
	if p.Seed != 0 {
		p.Seed += uint64(i)
	}
	return p
}

const drawName = "Draw"

func winnerName(r engine.Result) string {
	if r.Draw || !r.Finished {
		return drawName
	}
	return r.Winner.String()
}
