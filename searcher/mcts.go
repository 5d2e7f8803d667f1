package searcher

import (
	"context"
	"math"
	"othello/game"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

type Option func(m *MCTS)

// MCTS drives search episodes under an iteration or time budget. With more
// than one goroutine it grows independent trees and merges their root visits.
type MCTS struct {
	goroutines  int
	iterations  int
	duration    time.Duration
	exploration float64
	seed        uint64
	rng         *rand.Rand
	metrics     bool
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithSeed makes searches reproducible. Zero picks a random seed.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = true
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:  1,
		exploration: DefaultExploration,
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		panic("Must specify search iterations or duration")
	}
	if m.seed == 0 {
		m.seed = frand.Uint64n(math.MaxUint64) + 1
	}
	m.rng = rand.New(rand.NewSource(m.seed))
	return m
}

func (m *MCTS) Seed() uint64 {
	return m.seed
}

// Search picks a move for the active color of board. It returns NoMove when
// there is no legal move and skips the search when there is only one.
func (m *MCTS) Search(ctx context.Context, board *game.Board) (game.Bitboard, SearchMetric) {
	metrics := NewNoCollector()
	if m.metrics {
		metrics = NewCollector()
	}
	metrics.Start(m.goroutines)

	legal := board.LegalMoves()
	if legal == game.NoMove {
		return game.NoMove, metrics.Complete()
	}
	if legal.IsSingle() {
		metrics.Skip()
		return legal, metrics.Complete()
	}

	roots := make([]*Node, m.goroutines)
	rngs := make([]*rand.Rand, m.goroutines)
	for i := range roots {
		roots[i] = NewNode(game.NoMove, board.Clone(), nil, board.ActiveColor())
		roots[i].Expand()
		rngs[i] = rand.New(rand.NewSource(m.rng.Uint64()))
	}

	var deadline time.Time
	if m.duration > 0 {
		deadline = time.Now().Add(m.duration)
	}

	var g errgroup.Group
	for i, root := range roots {
		root := root
		quota := m.quota(i)
		r := rngs[i]
		g.Go(func() error {
			m.grow(ctx, root, r, quota, deadline, metrics)
			return nil
		})
	}
	_ = g.Wait()

	move := bestMove(roots, legal)
	metric := metrics.Complete()
	log.Debug().
		Str("player", board.ActiveColor().String()).
		Str("move", game.SquareName(move)).
		Int("episodes", metric.Episodes).
		Dur("duration", metric.Duration).
		Msg("search complete")
	return move, metric
}

// quota splits the iteration budget between trees; -1 means no limit.
func (m *MCTS) quota(tree int) int {
	if m.iterations <= 0 {
		return -1
	}
	quota := m.iterations / m.goroutines
	if tree < m.iterations%m.goroutines {
		quota++
	}
	return quota
}

func (m *MCTS) grow(ctx context.Context, root *Node, r *rand.Rand, quota int, deadline time.Time, metrics Collector) {
	for i := 0; quota < 0 || i < quota; i++ {
		if ctx.Err() != nil {
			return
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return
		}
		if !episode(root, r, m.exploration, metrics) {
			return
		}
	}
}

// episode runs selection, simulation and backpropagation once. It reports
// false when the root itself is terminal.
func episode(root *Node, r *rand.Rand, c float64, metrics Collector) bool {
	leaf := root.Select(c)
	if leaf == nil {
		return false
	}
	if leaf.board.IsTerminal() {
		metrics.AddTerminalLeaf()
	}
	result := leaf.Simulate(r)
	leaf.Backpropagate(result)
	metrics.AddEpisode()
	return true
}

func bestMove(roots []*Node, legal game.Bitboard) game.Bitboard {
	if len(roots) == 1 {
		return roots[0].BestMove()
	}
	visits := make(map[game.Bitboard]int)
	for _, root := range roots {
		for move, v := range root.Policy() {
			visits[move] += v
		}
	}
	best := game.NoMove
	maxVisits := -1
	for legal != 0 {
		move := legal & -legal
		legal &^= move
		if v := visits[move]; v > maxVisits {
			maxVisits = v
			best = move
		}
	}
	return best
}
