package searcher

import (
	"context"
	"fmt"

	"gametree/game"
)

// ExploreStats counts the moves played and the finished games met while
// walking a game tree.
type ExploreStats struct {
	Nodes int64
	Games int64
}

// Explore walks every line from state up to depth plies (0 walks to the end of
// the game, bounded by MaxDepth) and counts nodes and finished games. The
// state is restored before returning.
func Explore[M comparable](ctx context.Context, state game.State[M], depth int) (ExploreStats, error) {
	if err := checkDepth(depth); err != nil {
		return ExploreStats{}, err
	}
	if depth == 0 {
		depth = MaxDepth
	}
	var stats ExploreStats
	err := explore(ctx, state, depth, &stats)
	return stats, err
}

func explore[M comparable](ctx context.Context, state game.State[M], depth int, stats *ExploreStats) error {
	if depth == 0 {
		return nil
	}
	for _, m := range state.LegalMoves() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := state.Push(m); err != nil {
			return fmt.Errorf("push %v: %w", m, err)
		}
		stats.Nodes++
		var err error
		if state.IsTerminal() {
			stats.Games++
		} else {
			err = explore(ctx, state, depth-1, stats)
		}
		if perr := state.Pop(); perr != nil {
			return fmt.Errorf("pop %v: %w", m, perr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
