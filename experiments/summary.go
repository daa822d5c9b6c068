package experiments

import (
	"time"

	"gametree/experiments/metrics"

	"gonum.org/v1/gonum/stat"
)

type AgentSummary struct {
	ID           int
	Games        int
	Wins         int
	Draws        int
	Losses       int
	MeanNodes    float64 // per move
	StdNodes     float64
	MeanDepth    float64
	MeanMoveTime time.Duration
}

// summarize tallies results and per-move search effort for each agent, in
// the order of agents.
func summarize(agents []metrics.AgentConfig, results []gameResult) []AgentSummary {
	type samples struct {
		nodes, depths, times []float64
	}
	byID := make(map[int]*AgentSummary, len(agents))
	moves := make(map[int]*samples, len(agents))
	summaries := make([]AgentSummary, len(agents))
	for i, a := range agents {
		summaries[i].ID = a.ID
		byID[a.ID] = &summaries[i]
		moves[a.ID] = &samples{}
	}

	for _, res := range results {
		for _, id := range []int{res.record.Agent1, res.record.Agent2} {
			s := byID[id]
			s.Games++
			switch res.winnerID {
			case -1:
				s.Draws++
			case id:
				s.Wins++
			default:
				s.Losses++
			}
		}
		for i, mm := range res.moves {
			m := moves[res.moveAgents[i]]
			m.nodes = append(m.nodes, float64(mm.Nodes))
			m.depths = append(m.depths, float64(mm.Depth))
			m.times = append(m.times, float64(mm.Duration))
		}
	}

	for i := range summaries {
		m := moves[summaries[i].ID]
		if len(m.nodes) == 0 {
			continue
		}
		summaries[i].MeanNodes = stat.Mean(m.nodes, nil)
		if len(m.nodes) > 1 {
			summaries[i].StdNodes = stat.StdDev(m.nodes, nil)
		}
		summaries[i].MeanDepth = stat.Mean(m.depths, nil)
		summaries[i].MeanMoveTime = time.Duration(stat.Mean(m.times, nil))
	}
	return summaries
}
