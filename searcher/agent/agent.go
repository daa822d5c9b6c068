// Package agent wraps move choice behind a single interface so the engine can
// pit searchers and baselines against each other.
package agent

import (
	"context"

	"gametree/experiments/metrics"
	"gametree/game"
)

type Agent[M comparable] interface {
	// FindMove returns a move for the side to move and performance metrics (if collected) from the search
	FindMove(ctx context.Context, state game.Match[M]) (M, metrics.SearchMetric, error)
}
