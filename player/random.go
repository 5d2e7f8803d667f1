package player

import (
	"context"
	"math"
	"othello/game"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Random plays a uniformly random legal move.
type Random struct {
	name string
	rng  *rand.Rand
}

// NewRandom seeds the player's generator. Zero picks a random seed.
func NewRandom(name string, seed uint64) *Random {
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64) + 1
	}
	return &Random{name: name, rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string {
	return r.name
}

func (r *Random) Move(_ context.Context, board *game.Board) (game.Bitboard, error) {
	legal := board.LegalMoves()
	if legal == game.NoMove {
		return game.NoMove, nil
	}
	return legal.Nth(r.rng.Intn(legal.Count())), nil
}
