package agent

import (
	"context"

	"gametree/experiments/metrics"
	"gametree/game"
	"gametree/searcher"
)

type searchAgent[M comparable] struct {
	searcher  *searcher.Searcher[M]
	collector metrics.Collector
}

// NewSearchAgent plays the moves chosen by s. A nil collector disables
// metrics.
func NewSearchAgent[M comparable](s *searcher.Searcher[M], collector metrics.Collector) Agent[M] {
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return &searchAgent[M]{searcher: s, collector: collector}
}

func (a *searchAgent[M]) FindMove(ctx context.Context, state game.Match[M]) (M, metrics.SearchMetric, error) {
	a.collector.Start()
	res, err := a.searcher.Deepen(ctx, state, state.Role())
	if err != nil {
		var none M
		return none, metrics.SearchMetric{}, err
	}
	a.collector.Observe(res.Stats, res.Value)
	return res.Move, a.collector.Complete(), nil
}
