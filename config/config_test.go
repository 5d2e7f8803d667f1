package config

import (
	"os"
	"othello/game"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		require.Equal(t, "info", cfg.LogLevel)
		require.Equal(t, KindMCTS, cfg.Black.Kind)
		require.Equal(t, 1000, cfg.White.Iterations)
		require.Equal(t, 1.41, cfg.Black.Exploration)
		require.Equal(t, "White", cfg.White.Name)
		require.Equal(t, 1, cfg.Experiment.Parallel)
		require.NoError(t, cfg.Validate())

		board, err := cfg.StartingBoard()
		require.NoError(t, err)
		require.Equal(t, game.StartingState, board.State())
		require.Equal(t, game.Black, board.ActiveColor())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
board:
  first_player: white
  starting_position:
    - "B W . . . . . ."
    - "........"
    - "........"
    - "........"
    - "........"
    - "........"
    - "........"
    - "........"
black:
  kind: random
  seed: 12
white:
  kind: mcts
  iterations: 0
  duration: 250ms
  goroutines: 4
experiment:
  games: 10
  parallel: 2
  output_dir: out
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, KindRandom, cfg.Black.Kind)
		require.Equal(t, uint64(12), cfg.Black.Seed)
		require.Equal(t, 250*time.Millisecond, cfg.White.Duration, "Durations decode from strings")
		require.Equal(t, 4, cfg.White.Goroutines)
		require.Equal(t, Experiment{Games: 10, Parallel: 2, OutputDir: "out"}, cfg.Experiment)

		board, err := cfg.StartingBoard()
		require.NoError(t, err)
		require.Equal(t, game.SquareBit(0), board.State().Black)
		require.Equal(t, game.SquareBit(1), board.State().White)
		require.Equal(t, game.Black, board.ActiveColor(), "White has no move so Black starts")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "black:\n  iterations: 10\n")
		t.Setenv("OTHELLO_BLACK_ITERATIONS", "77")

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 77, cfg.Black.Iterations)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("unknown kind", func(t *testing.T) {
		cfg := valid(t)
		cfg.White.Kind = "alphabeta"
		require.ErrorIs(t, cfg.Validate(), ErrInvalid)
	})

	t.Run("mcts without a budget", func(t *testing.T) {
		cfg := valid(t)
		cfg.Black.Iterations = 0
		cfg.Black.Duration = 0
		require.ErrorIs(t, cfg.Validate(), ErrInvalid)
	})

	t.Run("mcts without goroutines", func(t *testing.T) {
		cfg := valid(t)
		cfg.Black.Goroutines = 0
		require.ErrorIs(t, cfg.Validate(), ErrInvalid)
	})

	t.Run("bad first player", func(t *testing.T) {
		cfg := valid(t)
		cfg.Board.FirstPlayer = "red"
		require.ErrorIs(t, cfg.Validate(), game.ErrBadColor)
	})

	t.Run("bad grid", func(t *testing.T) {
		cfg := valid(t)
		cfg.Board.StartingPosition = []string{"BW"}
		require.ErrorIs(t, cfg.Validate(), game.ErrBadGrid)
	})

	t.Run("human players cannot run experiments", func(t *testing.T) {
		cfg := valid(t)
		cfg.Black.Kind = KindHuman
		require.NoError(t, cfg.Validate())

		cfg.Experiment.Games = 5
		require.ErrorIs(t, cfg.Validate(), ErrInvalid)
	})
}
