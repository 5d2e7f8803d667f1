package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"othello/config"
	"othello/engine"
	"othello/experiments"
	"othello/game"
	"othello/player"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file")
	blackKind  = flag.String("black", "", "Black player: human, random or mcts")
	whiteKind  = flag.String("white", "", "White player: human, random or mcts")
	iterations = flag.Int("iterations", 0, "Search iterations per move for mcts players")
	duration   = flag.Duration("duration", 0, "Search time per move for mcts players")
	goroutines = flag.Int("goroutines", 0, "Parallel search trees for mcts players")
	seed       = flag.Uint64("seed", 0, "Random seed, 0 picks one")
	games      = flag.Int("games", 0, "Play this many games between the two players and report results")
	parallel   = flag.Int("parallel", 0, "Games played at once in an experiment")
	outputDir  = flag.String("out", "", "Experiment output directory")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg)
	setupLogging(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Experiment.Games > 0 {
		err = runExperiment(ctx, cfg)
	} else {
		err = playGame(ctx, cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
}

// applyFlags overrides the loaded config with the flags given on the command line.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "black":
			cfg.Black.Kind = *blackKind
		case "white":
			cfg.White.Kind = *whiteKind
		case "iterations":
			cfg.Black.Iterations, cfg.White.Iterations = *iterations, *iterations
		case "duration":
			cfg.Black.Duration, cfg.White.Duration = *duration, *duration
		case "goroutines":
			cfg.Black.Goroutines, cfg.White.Goroutines = *goroutines, *goroutines
		case "seed":
			cfg.Black.Seed = *seed
			cfg.White.Seed = 0
			if *seed != 0 {
				cfg.White.Seed = *seed + 1
			}
		case "games":
			cfg.Experiment.Games = *games
		case "parallel":
			cfg.Experiment.Parallel = *parallel
		case "out":
			cfg.Experiment.OutputDir = *outputDir
		case "debug":
			if *debug {
				cfg.LogLevel = zerolog.DebugLevel.String()
			}
		}
	})
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	log.Debug().Msg("Debug logging is on")
}

func runExperiment(ctx context.Context, cfg *config.Config) error {
	board, err := cfg.StartingBoard()
	if err != nil {
		return err
	}
	summary, err := experiments.Run(ctx, experiments.Config{
		Name:      fmt.Sprintf("%s-vs-%s", cfg.Black.Name, cfg.White.Name),
		Board:     board,
		Black:     cfg.Black,
		White:     cfg.White,
		Games:     cfg.Experiment.Games,
		Parallel:  cfg.Experiment.Parallel,
		Alternate: true,
		OutputDir: cfg.Experiment.OutputDir,
	})
	if err != nil {
		return err
	}
	for _, p := range summary.Players {
		fmt.Printf("%s won %d of %d games\n", p.Name, p.Wins, p.Games)
	}
	fmt.Printf("Draws: %d\n", summary.Draws)
	return nil
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func playGame(ctx context.Context, cfg *config.Config) error {
	board, err := cfg.StartingBoard()
	if err != nil {
		return err
	}

	var in player.LineReader
	out := io.Writer(os.Stdout)
	if cfg.Black.Kind == config.KindHuman || cfg.White.Kind == config.KindHuman {
		l, err := readline.NewEx(&readline.Config{
			Prompt:              "> ",
			HistoryFile:         "/tmp/othello.readline.tmp",
			HistorySearchFold:   true,
			FuncFilterInputRune: filterInput,
		})
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		defer l.Close()
		in, out = l, l.Stdout()
	}

	black, err := player.New(cfg.Black, in, out)
	if err != nil {
		return fmt.Errorf("black: %w", err)
	}
	white, err := player.New(cfg.White, in, out)
	if err != nil {
		return fmt.Errorf("white: %w", err)
	}

	fmt.Fprintln(out, "Welcome to Othello!")
	fmt.Fprintln(out, game.Display(board))
	e := engine.New(board, black, white, engine.WithObserver(func(u engine.Update) {
		fmt.Fprintf(out, "%s played %s.\n", u.Record.Player, game.SquareName(u.Record.Move))
		fmt.Fprintln(out, game.Display(u.Board))
	}))

	result, err := e.Run(ctx)
	if errors.Is(err, player.ErrQuit) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "Game terminated.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Game over!")
	switch {
	case result.Draw:
		fmt.Fprintf(out, "It's a draw! Both players scored %d points.\n", result.Black)
	case result.Winner == game.Black:
		fmt.Fprintf(out, "%s wins with %d points!\n", black.Name(), result.Black)
	default:
		fmt.Fprintf(out, "%s wins with %d points!\n", white.Name(), result.White)
	}
	return nil
}
