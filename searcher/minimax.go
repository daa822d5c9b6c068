package searcher

import (
	"context"
	"time"

	"gametree/game"
)

// Minimax returns the exhaustive depth-limited value of state for role. It
// never prunes and is not time-bounded.
func (s *Searcher[M]) Minimax(state game.State[M], depth int, role game.Role) (Outcome, error) {
	if err := checkDepth(depth); err != nil {
		return Outcome{}, err
	}
	r := &run[M]{s: s, ctx: context.Background(), start: time.Now()}
	value, exhausted, err := r.minimax(state, depth, role)
	if err != nil {
		return Outcome{Stats: r.finish()}, err
	}
	return Outcome{Value: value, TerminalReached: exhausted, Stats: r.finish()}, nil
}

func (r *run[M]) minimax(state game.State[M], depth int, role game.Role) (float64, bool, error) {
	if depth == 0 || state.IsTerminal() {
		value, exhausted := r.leaf(state)
		return value, exhausted, nil
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return r.noMoves(state)
	}

	best := worst(role)
	exhausted := true
	for _, m := range moves {
		value, done, err := r.child(state, m, func() (float64, bool, error) {
			return r.minimax(state, depth-1, role.Opposite())
		})
		if err != nil {
			return 0, false, err
		}
		exhausted = exhausted && done
		if role.Prefers(value, best) {
			best = value
		}
	}
	return best, exhausted, nil
}
