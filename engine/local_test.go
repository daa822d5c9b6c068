package engine

import (
	"context"
	"os"
	"testing"

	"gametree/experiments/metrics"
	"gametree/game"
	"gametree/game/goban"
	"gametree/game/tictactoe"
	"gametree/searcher"
	"gametree/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

// fixedAgent always answers with the same move.
type fixedAgent struct {
	move tictactoe.Move
}

func (a fixedAgent) FindMove(ctx context.Context, state game.Match[tictactoe.Move]) (tictactoe.Move, metrics.SearchMetric, error) {
	return a.move, metrics.SearchMetric{}, nil
}

// cancelAgent cancels the game right after choosing its move.
type cancelAgent struct {
	agent.Agent[tictactoe.Move]
	cancel context.CancelFunc
}

func (a cancelAgent) FindMove(ctx context.Context, state game.Match[tictactoe.Move]) (tictactoe.Move, metrics.SearchMetric, error) {
	move, metric, err := a.Agent.FindMove(ctx, state)
	a.cancel()
	return move, metric, err
}

func perfect() agent.Agent[tictactoe.Move] {
	return agent.NewSearchAgent(searcher.NewSearcher(tictactoe.Evaluate, searcher.WithSeed(1)), metrics.NewCollector())
}

func TestLocalEngine(t *testing.T) {
	t.Run("perfect play draws", func(t *testing.T) {
		e := LocalEngine(tictactoe.NewBoard(), perfect(), perfect(), 0)

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Empty(t, winner)
		require.Equal(t, "X", gameMetric.StartingPlayer)
		require.Equal(t, 9, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 9)
		require.Equal(t, "O", moveMetrics[1].Player, "Players alternate")
		require.Positive(t, moveMetrics[0].Nodes)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
	})

	t.Run("a searcher never loses to a random player", func(t *testing.T) {
		for seed := uint64(1); seed <= 5; seed++ {
			e := LocalEngine(tictactoe.NewBoard(), perfect(), agent.NewRandomAgent[tictactoe.Move](seed), 0)

			winner, _, _, err := e.Run(context.Background())

			require.NoError(t, err)
			require.NotEqual(t, "O", winner, "seed %d", seed)
		}
	})

	t.Run("turn limit", func(t *testing.T) {
		random := agent.NewRandomAgent[tictactoe.Move](9)
		e := LocalEngine(tictactoe.NewBoard(), random, random, 3)

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Empty(t, winner)
		require.Equal(t, 3, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 3)
	})

	t.Run("illegal moves are rejected", func(t *testing.T) {
		same := fixedAgent{move: tictactoe.Move{Row: 1, Col: 1}}
		e := LocalEngine[tictactoe.Move](tictactoe.NewBoard(), same, same, 0)

		_, _, moveMetrics, err := e.Run(context.Background())

		require.ErrorIs(t, err, game.ErrIllegalMove)
		require.Len(t, moveMetrics, 1, "The first move was legal")
	})

	t.Run("cancellation stops the game", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		random := agent.NewRandomAgent[tictactoe.Move](1)

		_, _, _, err := LocalEngine(tictactoe.NewBoard(), random, random, 0).Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("cancellation stops a game between searchers", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		winner, gameMetric, moveMetrics, err := LocalEngine(tictactoe.NewBoard(), perfect(), perfect(), 0).Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, winner)
		require.Zero(t, gameMetric.TotalMoves)
		require.Empty(t, moveMetrics, "No move is played once the game is cancelled")
	})

	t.Run("cancelling mid-game stops at the next turn", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		board := tictactoe.NewBoard()
		stopper := cancelAgent{Agent: perfect(), cancel: cancel}

		_, _, moveMetrics, err := LocalEngine[tictactoe.Move](board, stopper, perfect(), 0).Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
		require.Len(t, moveMetrics, 1)
		require.False(t, board.IsTerminal())
	})

	t.Run("goban games end", func(t *testing.T) {
		board := goban.NewBoard(3, goban.WithKomi(0.5), goban.WithMaxMoves(40))
		black := agent.NewRandomAgent[goban.Move](4)
		white := agent.NewSearchAgent(searcher.NewSearcher(goban.Evaluate, searcher.WithDepth(2)), nil)

		_, gameMetric, _, err := LocalEngine(board, black, white, 0).Run(context.Background())

		require.NoError(t, err)
		require.True(t, board.IsTerminal())
		require.LessOrEqual(t, gameMetric.TotalMoves, 40)
	})

	t.Run("needs two agents", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine(tictactoe.NewBoard(), perfect(), nil, 0) })
	})
}
