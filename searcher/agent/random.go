package agent

import (
	"context"

	"gametree/experiments/metrics"
	"gametree/game"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type randomAgent[M comparable] struct {
	rng interface{ Intn(n int) int }
}

// NewRandomAgent plays uniformly random legal moves. A zero seed draws from
// frand instead of a reproducible source.
func NewRandomAgent[M comparable](seed uint64) Agent[M] {
	if seed == 0 {
		return &randomAgent[M]{rng: frand.New()}
	}
	return &randomAgent[M]{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent[M]) FindMove(ctx context.Context, state game.Match[M]) (M, metrics.SearchMetric, error) {
	var none M
	if err := ctx.Err(); err != nil {
		return none, metrics.SearchMetric{}, err
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return none, metrics.SearchMetric{}, game.ErrNoLegalMoves
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
