package metrics

import (
	"time"

	"gametree/searcher"
)

// AgentConfig describes one contestant of an experiment. A random agent
// ignores Depth and Duration.
type AgentConfig struct {
	ID       int           `mapstructure:"id"`
	Depth    int           `mapstructure:"depth"`
	Duration time.Duration `mapstructure:"duration"`
	Random   bool          `mapstructure:"random"`
}

type SearchMetric struct {
	Depth       int // deepest completed iteration
	Iterations  int
	Nodes       int64
	Evaluations int64
	Cutoffs     int64
	Value       float64
	TimedOut    bool
	Duration    time.Duration
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // empty on a draw or an unfinished game
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start()
	Observe(result searcher.Stats, value float64)
	Complete() SearchMetric
}

type collector struct {
	startTime time.Time
	metric    SearchMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.metric = SearchMetric{}
}

func (c *collector) Observe(stats searcher.Stats, value float64) {
	c.metric.Depth = stats.Depth
	c.metric.Iterations += stats.Iterations
	c.metric.Nodes += stats.Nodes
	c.metric.Evaluations += stats.Evaluations
	c.metric.Cutoffs += stats.Cutoffs
	c.metric.TimedOut = c.metric.TimedOut || stats.TimedOut
	c.metric.Value = value
}

func (c *collector) Complete() SearchMetric {
	m := c.metric
	m.Duration = time.Since(c.startTime)
	return m
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start()                                      {}
func (c *dummyCollector) Observe(stats searcher.Stats, value float64) {}
func (c *dummyCollector) Complete() SearchMetric                      { return SearchMetric{} }
