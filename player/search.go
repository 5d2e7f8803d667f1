package player

import (
	"context"
	"othello/game"
	"othello/searcher"
)

// Search asks a Monte Carlo tree search for every move.
type Search struct {
	name string
	mcts *searcher.MCTS
	last searcher.SearchMetric
}

func NewSearch(name string, mcts *searcher.MCTS) *Search {
	return &Search{name: name, mcts: mcts}
}

func (s *Search) Name() string {
	return s.name
}

func (s *Search) Move(ctx context.Context, board *game.Board) (game.Bitboard, error) {
	move, metric := s.mcts.Search(ctx, board)
	s.last = metric
	return move, nil
}

func (s *Search) LastSearch() searcher.SearchMetric {
	return s.last
}
