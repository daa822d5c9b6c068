package searcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gametree/game"

	"github.com/rs/zerolog/log"
)

// Deepen runs SearchDepth at depth 1, 2, ... until the tree is solved, the
// depth limit is reached, or the time budget or ctx runs out. An iteration cut
// short by the deadline is discarded and the last completed one is returned;
// if none completed the move is a random legal move. Running out of time is
// not an error.
func (s *Searcher[M]) Deepen(ctx context.Context, state game.State[M], role game.Role) (Result[M], error) {
	moves, err := rootMoves(state)
	if err != nil {
		return Result[M]{}, err
	}
	r := s.newRun(ctx)
	best := Result[M]{Move: moves[s.rng.Intn(len(moves))]}

	limit := MaxDepth
	if s.opts.depth > 0 {
		limit = min(s.opts.depth, MaxDepth)
	}

	for depth := 1; depth <= limit; depth++ {
		log.Debug().Int("depth", depth).Str("role", role.String()).Msg("deepening-iteratively")
		res, err := r.root(state, depth, role)
		if errors.Is(err, ErrOutOfTime) {
			r.stats.TimedOut = true
			log.Debug().Int("depth", depth).Int64("nodes", r.stats.Nodes).Msg("iteration-aborted")
			break
		}
		if err != nil {
			return Result[M]{Stats: r.finish()}, err
		}
		best = res
		r.stats.Depth = depth
		r.stats.Iterations++
		log.Debug().
			Int("depth", depth).
			Float64("value", res.Value).
			Bool("terminal-reached", res.TerminalReached).
			Str("move", fmt.Sprint(res.Move)).
			Msg("iteration-complete")

		if res.TerminalReached {
			break
		}
		if s.opts.timed && time.Since(r.start) >= s.opts.duration {
			break
		}
	}

	best.Stats = r.finish()
	log.Debug().
		Int("depth", best.Stats.Depth).
		Int64("nodes", best.Stats.Nodes).
		Int64("cutoffs", best.Stats.Cutoffs).
		Bool("timed-out", best.Stats.TimedOut).
		Dur("elapsed", best.Stats.Duration).
		Msg("search-returning")
	return best, nil
}

// BestMove returns the move chosen by Deepen.
func (s *Searcher[M]) BestMove(ctx context.Context, state game.State[M], role game.Role) (M, error) {
	res, err := s.Deepen(ctx, state, role)
	return res.Move, err
}
