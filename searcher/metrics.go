package searcher

import "time"

// Stats are accumulated by a single search call and returned with its result.
type Stats struct {
	Nodes       int64 // moves pushed
	Evaluations int64
	Cutoffs     int64
	Depth       int // deepest completed iteration
	Iterations  int
	TimedOut    bool
	Duration    time.Duration
}

// Outcome is the value of a fixed-depth search below a state.
type Outcome struct {
	Value float64
	// TerminalReached is set when every explored line ended in a terminal
	// state, so the value is exact rather than heuristic.
	TerminalReached bool
	Stats           Stats
}

// Result is the outcome of a root search: the chosen move and its value.
type Result[M comparable] struct {
	Move            M
	Value           float64
	TerminalReached bool
	Depth           int
	Stats           Stats
}
