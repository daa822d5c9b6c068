package searcher

import (
	"context"

	"gametree/game"
)

/*
alphabeta(node, depth, α, β, role):
    if depth = 0 or node is terminal: return evaluate(node)
    value := worst(role)
    for each child of node:
        push(child)
        value := better(value, alphabeta(child, depth − 1, α, β, opposite(role)))
        pop()
        if role is max: α := max(α, value) else β := min(β, value)
        if α ≥ β: break
    return value
*/

// AlphaBeta returns the depth-limited value of state for role within the
// window [alpha, beta]. With the full window (-Infinity, Infinity) the value
// equals Minimax's for the same state and depth. The searcher's time budget
// and ctx are checked before every child; when either runs out the call
// returns ErrOutOfTime with state restored.
func (s *Searcher[M]) AlphaBeta(ctx context.Context, state game.State[M], depth int, alpha, beta float64, role game.Role) (Outcome, error) {
	if err := checkDepth(depth); err != nil {
		return Outcome{}, err
	}
	r := s.newRun(ctx)
	value, exhausted, err := r.alphaBeta(state, depth, alpha, beta, role)
	if err != nil {
		return Outcome{Stats: r.finish()}, err
	}
	return Outcome{Value: value, TerminalReached: exhausted, Stats: r.finish()}, nil
}

// alphaBeta reports the node value and whether every line it explored ended
// in a terminal state. A cutoff keeps the flags of the children explored so
// far: the pruned siblings cannot change the value returned to the parent.
func (r *run[M]) alphaBeta(state game.State[M], depth int, alpha, beta float64, role game.Role) (float64, bool, error) {
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
		if err := r.expired(); err != nil {
			return 0, false, err
		}
		value, done, err := r.child(state, m, func() (float64, bool, error) {
			return r.alphaBeta(state, depth-1, alpha, beta, role.Opposite())
		})
		if err != nil {
			return 0, false, err
		}
		exhausted = exhausted && done
		if role.Prefers(value, best) {
			best = value
		}

		if role == game.Max {
			alpha = max(alpha, best)
		} else {
			beta = min(beta, best)
		}
		if alpha >= beta {
			r.stats.Cutoffs++
			return best, exhausted, nil
		}
	}
	return best, exhausted, nil
}
