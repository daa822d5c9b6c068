package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gametree/config"
	"gametree/experiments/metrics"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func TestMatchUps(t *testing.T) {
	agents := []metrics.AgentConfig{{ID: 1}, {ID: 2}, {ID: 3}}
	ids := func(mus []MatchUp) [][2]int {
		var out [][2]int
		for _, mu := range mus {
			out = append(out, [2]int{mu.First.ID, mu.Second.ID})
		}
		return out
	}

	tests := []struct {
		experiment string
		want       [][2]int
	}{
		{"single", [][2]int{{1, 2}}},
		{"baseline", [][2]int{{1, 2}, {1, 3}}},
		{"round-robin", [][2]int{{1, 2}, {1, 3}, {2, 3}}},
	}
	for _, tc := range tests {
		t.Run(tc.experiment, func(t *testing.T) {
			got, err := MatchUps(tc.experiment, agents)
			require.NoError(t, err)
			require.Equal(t, tc.want, ids(got))
		})
	}

	_, err := MatchUps("ladder", agents)
	require.Error(t, err)
	_, err = MatchUps("single", agents[:1])
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	t.Run("tictactoe baseline writes its records", func(t *testing.T) {
		cfg := &config.Config{
			Name: "ttt", Game: "tictactoe", Experiment: "single",
			Games: 4, Parallelism: 2, MaxTurns: 20, Seed: 7, OutputDir: t.TempDir(),
			Agents: []metrics.AgentConfig{{ID: 1, Random: true}, {ID: 2, Depth: 9}},
		}

		report, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		require.Len(t, report.Games, 4)
		require.Equal(t, 1, report.Games[0].Agent1)
		require.Equal(t, 2, report.Games[1].Agent1, "Sides alternate between games")
		require.NotEmpty(t, report.Moves)

		require.Len(t, report.Summaries, 2)
		random, search := report.Summaries[0], report.Summaries[1]
		require.Equal(t, 4, random.Games)
		require.Equal(t, 4, search.Games)
		require.Zero(t, search.Losses, "A full-depth searcher never loses")
		require.Equal(t, random.Wins, search.Losses)
		require.Equal(t, random.Draws, search.Draws)
		require.Zero(t, random.MeanNodes)
		require.Positive(t, search.MeanNodes)

		for _, name := range []string{"setup.yaml", "agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(report.Dir, name))
		}
		require.Equal(t, filepath.Join(cfg.OutputDir, "ttt", report.RunID), report.Dir)
	})

	t.Run("goban round robin without output", func(t *testing.T) {
		cfg := &config.Config{
			Name: "goban", Game: "goban", Experiment: "round-robin",
			Games: 2, Parallelism: 3, MaxTurns: 30, Seed: 3,
			Goban:  config.Goban{Size: 3, Komi: 0.5},
			Agents: []metrics.AgentConfig{{ID: 1, Random: true}, {ID: 2, Random: true}, {ID: 3, Depth: 1}},
		}

		report, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		require.Len(t, report.Games, 6)
		require.Empty(t, report.RunID)
		for _, g := range report.Games {
			require.LessOrEqual(t, g.TotalMoves, 30)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cfg := &config.Config{
			Name: "chess", Game: "chess", Experiment: "single", Games: 1, Parallelism: 1, MaxTurns: 10,
			Agents: []metrics.AgentConfig{{ID: 1, Random: true}, {ID: 2, Random: true}},
		}

		_, err := Run(ctx, cfg)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := Run(context.Background(), &config.Config{Game: "risk"})
		require.Error(t, err)
	})
}
