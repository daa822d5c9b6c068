// Package experiments plays tournaments between configured agents and stores
// the records of every game and move.
package experiments

import (
	"context"
	"fmt"
	"time"

	"gametree/config"
	"gametree/engine"
	"gametree/experiments/metrics"
	"gametree/game"
	gamechess "gametree/game/chess"
	"gametree/game/goban"
	"gametree/game/tictactoe"
	"gametree/searcher"
	"gametree/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// rules builds fresh games of one kind and scores them.
type rules[M comparable] struct {
	newState func() game.Match[M]
	evaluate game.Evaluate[M]
}

// MatchUp pairs two agents; First moves first in even-numbered games.
type MatchUp struct {
	First, Second metrics.AgentConfig
}

// MatchUps lists the pairings of an experiment: "baseline" plays the first
// agent against every other one, "round-robin" plays every pair and "single"
// only the first two agents.
func MatchUps(experiment string, agents []metrics.AgentConfig) ([]MatchUp, error) {
	if len(agents) < 2 {
		return nil, fmt.Errorf("need at least two agents, got %d", len(agents))
	}
	var matchUps []MatchUp
	switch experiment {
	case "single":
		matchUps = append(matchUps, MatchUp{agents[0], agents[1]})
	case "baseline":
		for _, a := range agents[1:] {
			matchUps = append(matchUps, MatchUp{agents[0], a})
		}
	case "round-robin":
		for i := range agents {
			for _, b := range agents[i+1:] {
				matchUps = append(matchUps, MatchUp{agents[i], b})
			}
		}
	default:
		return nil, fmt.Errorf("unknown experiment %q", experiment)
	}
	return matchUps, nil
}

type Report struct {
	RunID     string // empty when nothing was written
	Dir       string
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []AgentSummary
}

// Run plays the experiment described by cfg and writes its records under
// cfg.OutputDir, unless that is empty.
func Run(ctx context.Context, cfg *config.Config) (*Report, error) {
	switch cfg.Game {
	case "tictactoe":
		return runExperiment(ctx, cfg, rules[tictactoe.Move]{
			newState: func() game.Match[tictactoe.Move] { return tictactoe.NewBoard() },
			evaluate: tictactoe.Evaluate,
		})
	case "goban":
		return runExperiment(ctx, cfg, rules[goban.Move]{
			newState: func() game.Match[goban.Move] {
				return goban.NewBoard(cfg.Goban.Size, goban.WithKomi(cfg.Goban.Komi))
			},
			evaluate: goban.Evaluate,
		})
	case "chess":
		return runExperiment(ctx, cfg, rules[gamechess.Move]{
			newState: func() game.Match[gamechess.Move] { return gamechess.NewBoard() },
			evaluate: gamechess.Evaluate,
		})
	}
	return nil, fmt.Errorf("unknown game %q", cfg.Game)
}

type job struct {
	id       int
	maxAgent metrics.AgentConfig
	minAgent metrics.AgentConfig
}

type gameResult struct {
	record     metrics.GameRecord
	moves      []metrics.MoveMetric
	moveAgents []int // agent ID behind each move
	winnerID   int   // -1 on a draw or an unfinished game
}

func runExperiment[M comparable](ctx context.Context, cfg *config.Config, r rules[M]) (*Report, error) {
	matchUps, err := MatchUps(cfg.Experiment, cfg.Agents)
	if err != nil {
		return nil, err
	}

	var jobs []job
	for _, mu := range matchUps {
		for i := 0; i < cfg.Games; i++ {
			// Alternate the side each agent plays
			j := job{id: len(jobs) + 1, maxAgent: mu.First, minAgent: mu.Second}
			if i%2 == 1 {
				j.maxAgent, j.minAgent = j.minAgent, j.maxAgent
			}
			jobs = append(jobs, j)
		}
	}

	log.Info().Msgf("starting %s experiment: %d matchups, %d games...", cfg.Name, len(matchUps), len(jobs))
	startTime := time.Now()

	results := make([]gameResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for i, j := range jobs {
		g.Go(func() error {
			log.Info().Msgf("starting game %d of %d between agent%d and agent%d...", j.id, len(jobs), j.maxAgent.ID, j.minAgent.ID)
			res, err := playGame(gctx, cfg, r, j)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.id, err)
			}
			results[i] = res
			log.Info().Msgf("completed game %d with winner: %q", j.id, res.record.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	report := &Report{}
	for _, res := range results {
		report.Games = append(report.Games, res.record)
		for _, mm := range res.moves {
			report.Moves = append(report.Moves, metrics.MoveRecord{Game: res.record.ID, MoveMetric: mm})
		}
	}
	report.Summaries = summarize(cfg.Agents, results)
	for _, s := range report.Summaries {
		log.Info().
			Int("agent", s.ID).
			Int("games", s.Games).
			Int("wins", s.Wins).
			Int("draws", s.Draws).
			Int("losses", s.Losses).
			Float64("mean-nodes", s.MeanNodes).
			Float64("std-nodes", s.StdNodes).
			Float64("mean-depth", s.MeanDepth).
			Dur("mean-move-time", s.MeanMoveTime).
			Msg("agent-summary")
	}

	if cfg.OutputDir == "" {
		return report, nil
	}
	if err := store(cfg, report, startTime); err != nil {
		return nil, err
	}
	return report, nil
}

func playGame[M comparable](ctx context.Context, cfg *config.Config, r rules[M], j job) (gameResult, error) {
	state := r.newState()
	// Every game here opens with the Max side to move.
	maxName := state.Player()

	seed := func(side uint64) uint64 {
		if cfg.Seed == 0 {
			return 0
		}
		return cfg.Seed + (uint64(j.id)<<1 | side)
	}
	e := engine.LocalEngine(state,
		newAgent(j.maxAgent, r.evaluate, seed(0)),
		newAgent(j.minAgent, r.evaluate, seed(1)),
		cfg.MaxTurns,
	)
	winner, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return gameResult{}, err
	}

	res := gameResult{
		record: metrics.GameRecord{
			ID:         j.id,
			Agent1:     j.maxAgent.ID,
			Agent2:     j.minAgent.ID,
			GameMetric: gameMetric,
		},
		moves:    moveMetrics,
		winnerID: -1,
	}
	agentOf := func(player string) int {
		if player == maxName {
			return j.maxAgent.ID
		}
		return j.minAgent.ID
	}
	if winner != "" {
		res.winnerID = agentOf(winner)
	}
	for _, mm := range moveMetrics {
		res.moveAgents = append(res.moveAgents, agentOf(mm.Player))
	}
	return res, nil
}

func newAgent[M comparable](config metrics.AgentConfig, evaluate game.Evaluate[M], seed uint64) agent.Agent[M] {
	if config.Random {
		return agent.NewRandomAgent[M](seed)
	}
	opts := []searcher.Option{}
	if config.Depth > 0 {
		opts = append(opts, searcher.WithDepth(config.Depth))
	}
	if config.Duration > 0 {
		opts = append(opts, searcher.WithDuration(config.Duration))
	}
	if seed != 0 {
		opts = append(opts, searcher.WithSeed(seed))
	}
	return agent.NewSearchAgent(searcher.NewSearcher(evaluate, opts...), metrics.NewCollector())
}

func store(cfg *config.Config, report *Report, startTime time.Time) error {
	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	report.RunID = writer.RunID()
	report.Dir = writer.Dir()

	setup := metrics.Setup{
		Name:        cfg.Name,
		Game:        cfg.Game,
		Experiment:  cfg.Experiment,
		Games:       cfg.Games,
		Parallelism: cfg.Parallelism,
		MaxTurns:    cfg.MaxTurns,
		Seed:        cfg.Seed,
		StartTime:   startTime.UTC(),
	}
	for _, a := range cfg.Agents {
		setup.Agents = append(setup.Agents, metrics.NewAgentSetup(a))
	}
	if err := writer.WriteSetup(setup); err != nil {
		return fmt.Errorf("failed to store setup: %w", err)
	}
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(report.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
