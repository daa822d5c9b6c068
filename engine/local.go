package engine

import (
	"context"
	"fmt"
	"time"

	"gametree/experiments/metrics"
	"gametree/game"
	"gametree/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Local[M comparable] struct {
	State    game.Match[M]
	Agents   map[game.Role]agent.Agent[M]
	MaxTurns int
}

var _ Engine = (*Local[int])(nil)

// LocalEngine plays state to the end in process. maxAgent moves for the Max
// role and minAgent for Min; maxTurns <= 0 falls back to MaxTurns.
func LocalEngine[M comparable](state game.Match[M], maxAgent, minAgent agent.Agent[M], maxTurns int) *Local[M] {
	if maxAgent == nil || minAgent == nil {
		panic("need an agent for each role")
	}
	if maxTurns <= 0 {
		maxTurns = MaxTurns
	}
	return &Local[M]{
		State:    state,
		Agents:   map[game.Role]agent.Agent[M]{game.Max: maxAgent, game.Min: minAgent},
		MaxTurns: maxTurns,
	}
}

// Run executes the game loop until the game is over or MaxTurns moves were
// played. Every chosen move is checked against the legal moves before it is
// pushed. A cancelled ctx stops the game before the next turn.
func (e *Local[M]) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.Player(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %s is starting", e.State.Player())

	turn := 1
	for !e.State.IsTerminal() && turn <= e.MaxTurns {
		// A timed-out search still answers with a move, so a cancelled ctx
		// has to be caught here.
		if err := ctx.Err(); err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("turn %d: %w", turn, err)
		}
		player := e.State.Player()
		move, searchMetric, err := e.Agents[e.State.Role()].FindMove(ctx, e.State)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("turn %d: player %s: %w", turn, player, err)
		}
		if !lo.Contains(e.State.LegalMoves(), move) {
			return "", gameMetric, moveMetrics, fmt.Errorf("turn %d: player %s chose %v: %w", turn, player, move, game.ErrIllegalMove)
		}
		if err := e.State.Push(move); err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("turn %d: %w", turn, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			Move:         fmt.Sprint(move),
			SearchMetric: searchMetric,
		})
		log.Debug().Int("turn", turn).Str("player", player).Str("move", fmt.Sprint(move)).Msg("move-played")
		turn++
	}

	winner := e.State.Winner()
	if e.State.IsTerminal() {
		log.Info().Msgf("game ended after %d moves, winner: %q", turn-1, winner)
	} else {
		log.Info().Msgf("stopped after %d turns (game not finished)", e.MaxTurns)
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turn - 1
	return winner, gameMetric, moveMetrics, nil
}
