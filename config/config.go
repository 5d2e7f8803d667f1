package config

import (
	"errors"
	"fmt"
	"othello/game"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	KindHuman  = "human"
	KindRandom = "random"
	KindMCTS   = "mcts"
)

var ErrInvalid = errors.New("invalid configuration")

type Player struct {
	Kind        string        `mapstructure:"kind"`
	Name        string        `mapstructure:"name"`
	Iterations  int           `mapstructure:"iterations"`
	Duration    time.Duration `mapstructure:"duration"`
	Exploration float64       `mapstructure:"exploration"`
	Goroutines  int           `mapstructure:"goroutines"`
	Seed        uint64        `mapstructure:"seed"`
}

type Board struct {
	StartingPosition []string `mapstructure:"starting_position"` // Rank 1 first, empty means the standard opening
	FirstPlayer      string   `mapstructure:"first_player"`
}

type Experiment struct {
	Games     int    `mapstructure:"games"`
	Parallel  int    `mapstructure:"parallel"`
	OutputDir string `mapstructure:"output_dir"`
}

type Config struct {
	LogLevel   string     `mapstructure:"log_level"`
	Board      Board      `mapstructure:"board"`
	Black      Player     `mapstructure:"black"`
	White      Player     `mapstructure:"white"`
	Experiment Experiment `mapstructure:"experiment"`
}

// Load reads the YAML file at path, if any, on top of the defaults. Any key
// can be overridden from the environment, e.g. OTHELLO_BLACK_ITERATIONS.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("OTHELLO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("board.first_player", "black")
	for _, color := range []string{"black", "white"} {
		v.SetDefault(color+".kind", KindMCTS)
		v.SetDefault(color+".iterations", 1000)
		v.SetDefault(color+".duration", time.Duration(0))
		v.SetDefault(color+".exploration", 1.41)
		v.SetDefault(color+".goroutines", 1)
		v.SetDefault(color+".seed", 0)
	}
	v.SetDefault("black.name", "Black")
	v.SetDefault("white.name", "White")
	v.SetDefault("experiment.games", 0)
	v.SetDefault("experiment.parallel", 1)
	v.SetDefault("experiment.output_dir", "results")
}

func (c *Config) Validate() error {
	for _, p := range []struct {
		color  string
		player Player
	}{{"black", c.Black}, {"white", c.White}} {
		if err := p.player.Validate(); err != nil {
			return fmt.Errorf("%s: %w", p.color, err)
		}
	}
	if _, err := c.StartingBoard(); err != nil {
		return fmt.Errorf("%w: board: %w", ErrInvalid, err)
	}
	if c.Experiment.Games < 0 {
		return fmt.Errorf("%w: experiment games must not be negative", ErrInvalid)
	}
	if c.Experiment.Games > 0 {
		if c.Experiment.Parallel < 1 {
			return fmt.Errorf("%w: experiment parallel must be at least 1", ErrInvalid)
		}
		if c.Black.Kind == KindHuman || c.White.Kind == KindHuman {
			return fmt.Errorf("%w: experiments cannot include human players", ErrInvalid)
		}
	}
	return nil
}

func (p Player) Validate() error {
	switch p.Kind {
	case KindHuman, KindRandom:
		return nil
	case KindMCTS:
		if p.Iterations <= 0 && p.Duration <= 0 {
			return fmt.Errorf("%w: mcts player needs iterations or duration", ErrInvalid)
		}
		if p.Exploration < 0 {
			return fmt.Errorf("%w: exploration must not be negative", ErrInvalid)
		}
		if p.Goroutines < 1 {
			return fmt.Errorf("%w: goroutines must be at least 1", ErrInvalid)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown player kind %q", ErrInvalid, p.Kind)
}

// StartingBoard builds the configured opening position.
func (c *Config) StartingBoard() (*game.Board, error) {
	first, err := game.ParseColor(c.Board.FirstPlayer)
	if err != nil {
		return nil, err
	}
	state := game.StartingState
	if len(c.Board.StartingPosition) > 0 {
		state, err = game.ParseGrid(c.Board.StartingPosition)
		if err != nil {
			return nil, err
		}
	}
	return game.NewBoard(state, first)
}
