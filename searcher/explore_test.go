package searcher

import (
	"context"
	"testing"

	"gametree/game/tictactoe"

	"github.com/stretchr/testify/require"
)

func TestExplore(t *testing.T) {
	t.Run("whole game tree", func(t *testing.T) {
		b := tictactoe.NewBoard()

		got, err := Explore(context.Background(), b, 0)

		require.NoError(t, err)
		require.Equal(t, int64(549945), got.Nodes)
		require.Equal(t, int64(255168), got.Games)
		require.Equal(t, tictactoe.NewBoard().String(), b.String())
	})

	t.Run("depth limited", func(t *testing.T) {
		for depth, nodes := range map[int]int64{1: 9, 2: 9 + 72, 3: 9 + 72 + 504} {
			got, err := Explore(context.Background(), tictactoe.NewBoard(), depth)
			require.NoError(t, err)
			require.Equal(t, nodes, got.Nodes, "depth %d", depth)
			require.Zero(t, got.Games)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		b := tictactoe.NewBoard()

		_, err := Explore(ctx, b, 0)

		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, tictactoe.NewBoard().String(), b.String())
	})
}
