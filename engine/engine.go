// Package engine referees games between agents.
package engine

import (
	"context"

	"gametree/experiments/metrics"
)

// MaxTurns bounds a game when the caller sets no limit.
const MaxTurns = 500

type Engine interface {
	// Run plays a game till there's a winner, the game ends, or the turn limit is reached
	Run(ctx context.Context) (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
