package agent

import (
	"context"
	"testing"
	"time"

	"gametree/experiments/metrics"
	"gametree/game"
	"gametree/game/tictactoe"
	"gametree/searcher"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestSearchAgent(t *testing.T) {
	t.Run("plays the winning move and reports metrics", func(t *testing.T) {
		b, err := tictactoe.Parse("XX./OO./...")
		require.NoError(t, err)
		a := NewSearchAgent(searcher.NewSearcher(tictactoe.Evaluate, searcher.WithDepth(2)), metrics.NewCollector())

		move, metric, err := a.FindMove(context.Background(), b)

		require.NoError(t, err)
		require.Equal(t, tictactoe.Move{Row: 0, Col: 2}, move)
		require.Positive(t, metric.Nodes)
		require.GreaterOrEqual(t, metric.Value, game.Win)
		require.GreaterOrEqual(t, metric.Depth, 1)
	})

	t.Run("plays for the side to move", func(t *testing.T) {
		b, err := tictactoe.Parse("XX./OO./X..")
		require.NoError(t, err)
		a := NewSearchAgent(searcher.NewSearcher(tictactoe.Evaluate, searcher.WithDepth(1)), nil)

		move, metric, err := a.FindMove(context.Background(), b)

		require.NoError(t, err)
		require.Equal(t, tictactoe.Move{Row: 1, Col: 2}, move)
		require.Equal(t, metrics.SearchMetric{}, metric, "Metrics are off without a collector")
	})

	t.Run("a spent budget still yields a legal move", func(t *testing.T) {
		b := tictactoe.NewBoard()
		a := NewSearchAgent(searcher.NewSearcher(tictactoe.Evaluate, searcher.WithDuration(0)), metrics.NewCollector())

		move, metric, err := a.FindMove(context.Background(), b)

		require.NoError(t, err)
		require.True(t, lo.Contains(b.LegalMoves(), move))
		require.True(t, metric.TimedOut)
	})

	t.Run("finished games are an error", func(t *testing.T) {
		b, err := tictactoe.Parse("XXX/OO./...")
		require.NoError(t, err)
		a := NewSearchAgent(searcher.NewSearcher(tictactoe.Evaluate, searcher.WithDuration(time.Second)), nil)

		_, _, err = a.FindMove(context.Background(), b)
		require.ErrorIs(t, err, searcher.ErrGameOver)
	})
}

func TestRandomAgent(t *testing.T) {
	t.Run("legal and reproducible", func(t *testing.T) {
		b := tictactoe.NewBoard()
		a1 := NewRandomAgent[tictactoe.Move](3)
		a2 := NewRandomAgent[tictactoe.Move](3)

		for i := 0; i < 20; i++ {
			m1, _, err := a1.FindMove(context.Background(), b)
			require.NoError(t, err)
			m2, _, err := a2.FindMove(context.Background(), b)
			require.NoError(t, err)
			require.Equal(t, m1, m2, "Equal seeds give equal moves")
			require.True(t, lo.Contains(b.LegalMoves(), m1))
		}
	})

	t.Run("unseeded", func(t *testing.T) {
		b := tictactoe.NewBoard()
		move, _, err := NewRandomAgent[tictactoe.Move](0).FindMove(context.Background(), b)
		require.NoError(t, err)
		require.True(t, lo.Contains(b.LegalMoves(), move))
	})

	t.Run("no moves", func(t *testing.T) {
		b, err := tictactoe.Parse("XXX/OO./...")
		require.NoError(t, err)
		_, _, err = NewRandomAgent[tictactoe.Move](1).FindMove(context.Background(), b)
		require.ErrorIs(t, err, game.ErrNoLegalMoves)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := NewRandomAgent[tictactoe.Move](1).FindMove(ctx, tictactoe.NewBoard())
		require.ErrorIs(t, err, context.Canceled)
	})
}
