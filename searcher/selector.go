package searcher

import (
	"context"
	"fmt"

	"gametree/game"

	"github.com/samber/lo"
)

type candidate[M comparable] struct {
	move  M
	value float64
}

// SearchDepth searches every root move to depth plies in total and picks one
// of the moves with the best value for role. Each root child gets the full
// window, so its value is exact and ties between root moves are real ties.
func (s *Searcher[M]) SearchDepth(ctx context.Context, state game.State[M], depth int, role game.Role) (Result[M], error) {
	if err := checkDepth(depth); err != nil {
		return Result[M]{}, err
	}
	if depth == 0 {
		return Result[M]{}, fmt.Errorf("%w: a root search needs at least one ply", ErrDepthLimit)
	}
	if _, err := rootMoves(state); err != nil {
		return Result[M]{}, err
	}
	r := s.newRun(ctx)
	res, err := r.root(state, depth, role)
	res.Stats = r.finish()
	return res, err
}

func rootMoves[M comparable](state game.State[M]) ([]M, error) {
	if state.IsTerminal() {
		return nil, ErrGameOver
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, game.ErrNoLegalMoves
	}
	return moves, nil
}

func (r *run[M]) root(state game.State[M], depth int, role game.Role) (Result[M], error) {
	moves := state.LegalMoves()
	table := make([]candidate[M], 0, len(moves))
	exhausted := true
	for _, m := range moves {
		if err := r.expired(); err != nil {
			return Result[M]{}, err
		}
		value, done, err := r.child(state, m, func() (float64, bool, error) {
			return r.alphaBeta(state, depth-1, -Infinity, Infinity, role.Opposite())
		})
		if err != nil {
			return Result[M]{}, err
		}
		exhausted = exhausted && done
		table = append(table, candidate[M]{move: m, value: value})
	}

	best := r.s.pick(table, role)
	return Result[M]{
		Move:            best.move,
		Value:           best.value,
		TerminalReached: exhausted,
		Depth:           depth,
	}, nil
}

// pick returns a uniformly random candidate among those holding the extremum
// value for role. table must not be empty.
func (s *Searcher[M]) pick(table []candidate[M], role game.Role) candidate[M] {
	extremum := worst(role)
	for _, c := range table {
		if role.Prefers(c.value, extremum) {
			extremum = c.value
		}
	}
	ties := lo.Filter(table, func(c candidate[M], _ int) bool {
		return c.value == extremum
	})
	return ties[s.rng.Intn(len(ties))]
}
