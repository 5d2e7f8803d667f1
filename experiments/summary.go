package experiments

import (
	"othello/game"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

type PlayerSummary struct {
	Name         string  `yaml:"name"`
	Games        int     `yaml:"games"`
	Wins         int     `yaml:"wins"`
	WinRate      float64 `yaml:"win_rate"`
	SearchMoves  int     `yaml:"search_moves"`
	MeanEpisodes float64 `yaml:"mean_episodes"` // Per searched move
	MeanMoveTime string  `yaml:"mean_move_time"`
}

type Summary struct {
	Name       string          `yaml:"name"`
	Games      int             `yaml:"games"`
	BlackWins  int             `yaml:"black_wins"`
	WhiteWins  int             `yaml:"white_wins"`
	Draws      int             `yaml:"draws"`
	MeanTurns  float64         `yaml:"mean_turns"`
	StdTurns   float64         `yaml:"std_turns"`
	MeanMargin float64         `yaml:"mean_margin"` // Black discs minus white discs
	StdMargin  float64         `yaml:"std_margin"`
	Duration   string          `yaml:"duration"`
	Players    []PlayerSummary `yaml:"players"`
}

func summarize(cfg Config, games []GameRecord, moves [][]MoveRecord, duration time.Duration) Summary {
	s := Summary{
		Name:      cfg.Name,
		Games:     len(games),
		BlackWins: lo.CountBy(games, func(g GameRecord) bool { return g.Winner == game.Black.String() }),
		WhiteWins: lo.CountBy(games, func(g GameRecord) bool { return g.Winner == game.White.String() }),
		Draws:     lo.CountBy(games, func(g GameRecord) bool { return g.Winner == drawName }),
		Duration:  duration.Round(time.Millisecond).String(),
	}

	turns := lo.Map(games, func(g GameRecord, _ int) float64 { return float64(g.Turns) })
	margins := lo.Map(games, func(g GameRecord, _ int) float64 { return float64(g.BlackDiscs - g.WhiteDiscs) })
	s.MeanTurns, s.StdTurns = meanStdDev(turns)
	s.MeanMargin, s.StdMargin = meanStdDev(margins)

	allMoves := lo.Flatten(moves)
	names := lo.Uniq(append(
		lo.Map(games, func(g GameRecord, _ int) string { return g.Black }),
		lo.Map(games, func(g GameRecord, _ int) string { return g.White })...))
	for _, name := range names {
		s.Players = append(s.Players, summarizePlayer(name, games, allMoves))
	}
	return s
}

func summarizePlayer(name string, games []GameRecord, moves []MoveRecord) PlayerSummary {
	p := PlayerSummary{
		Name:  name,
		Games: lo.CountBy(games, func(g GameRecord) bool { return g.Black == name || g.White == name }),
		Wins:  lo.CountBy(games, func(g GameRecord) bool { return winner(g) == name }),
	}
	if p.Games > 0 {
		p.WinRate = float64(p.Wins) / float64(p.Games)
	}

	own := lo.Filter(moves, func(m MoveRecord, _ int) bool { return m.Player == name })
	searched := lo.Filter(own, func(m MoveRecord, _ int) bool { return m.Search.Episodes > 0 })
	p.SearchMoves = len(searched)
	if len(searched) > 0 {
		p.MeanEpisodes = stat.Mean(lo.Map(searched, func(m MoveRecord, _ int) float64 { return float64(m.Search.Episodes) }), nil)
	}
	if len(own) > 0 {
		mean := stat.Mean(lo.Map(own, func(m MoveRecord, _ int) float64 { return float64(m.Duration) }), nil)
		p.MeanMoveTime = time.Duration(mean).String()
	}
	return p
}

func winner(g GameRecord) string {
	switch g.Winner {
	case game.Black.String():
		return g.Black
	case game.White.String():
		return g.White
	}
	return ""
}

// meanStdDev returns a zero deviation for fewer than two samples.
func meanStdDev(x []float64) (mean, std float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}
