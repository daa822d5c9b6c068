// Package searcher implements depth-limited adversarial search over any
// game.State: plain minimax, alpha-beta pruning and iterative deepening under
// a wall-clock budget.
package searcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gametree/game"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

const (
	// Infinity bounds every evaluation; no legal score reaches it.
	Infinity = 1e10
	// MaxDepth caps the recursion depth of a single search.
	MaxDepth = 64
)

var (
	ErrOutOfTime  = errors.New("search out of time")
	ErrGameOver   = errors.New("game is over")
	ErrDepthLimit = fmt.Errorf("depth must be within [0, %d]", MaxDepth)
)

// NoMovesPolicy decides what happens when a non-terminal state has no legal
// moves.
type NoMovesPolicy int

const (
	// NoMovesEvaluate scores the state statically, as a depth cutoff would.
	NoMovesEvaluate NoMovesPolicy = iota
	// NoMovesFail aborts the search with game.ErrNoLegalMoves.
	NoMovesFail
)

type Option func(o *options)

type options struct {
	depth    int
	duration time.Duration
	timed    bool
	seed     uint64
	seeded   bool
	noMoves  NoMovesPolicy
}

// WithDepth limits iterative deepening to depth plies.
func WithDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.depth = depth
		}
	}
}

// WithDuration bounds a search by wall-clock time. A zero duration is a valid
// budget that expires immediately.
func WithDuration(duration time.Duration) Option {
	return func(o *options) {
		o.timed = true
		o.duration = max(duration, 0)
	}
}

// WithSeed makes tie-breaking and fallback moves reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

func WithNoMovesPolicy(policy NoMovesPolicy) Option {
	return func(o *options) {
		o.noMoves = policy
	}
}

type intner interface {
	Intn(n int) int
}

// Searcher holds the evaluator and budget for searching one kind of game. It
// is not safe for concurrent use, and neither is the state it searches.
type Searcher[M comparable] struct {
	evaluate game.Evaluate[M]
	opts     options
	rng      intner
}

func NewSearcher[M comparable](evaluate game.Evaluate[M], opts ...Option) *Searcher[M] {
	if evaluate == nil {
		panic("searcher needs an evaluation function")
	}
	s := &Searcher[M]{evaluate: evaluate}
	for _, opt := range opts {
		opt(&s.opts)
	}
	if s.opts.seeded {
		s.rng = rand.New(rand.NewSource(s.opts.seed))
	} else {
		s.rng = frand.New()
	}
	return s
}

// Depth returns the configured depth limit, 0 when unlimited.
func (s *Searcher[M]) Depth() int {
	return s.opts.depth
}

// Duration returns the time budget and whether one was set.
func (s *Searcher[M]) Duration() (time.Duration, bool) {
	return s.opts.duration, s.opts.timed
}

// run carries the state of one top-level search call.
type run[M comparable] struct {
	s        *Searcher[M]
	ctx      context.Context
	start    time.Time
	deadline time.Time
	stats    Stats
}

func (s *Searcher[M]) newRun(ctx context.Context) *run[M] {
	r := &run[M]{s: s, ctx: ctx, start: time.Now()}
	if s.opts.timed {
		r.deadline = r.start.Add(s.opts.duration)
	}
	return r
}

// expired reports whether the deadline has passed or the context is done.
// time.Now carries a monotonic reading, so the comparison ignores wall-clock
// adjustments.
func (r *run[M]) expired() error {
	if err := r.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfTime, err)
	}
	if !r.deadline.IsZero() && !time.Now().Before(r.deadline) {
		return ErrOutOfTime
	}
	return nil
}

func (r *run[M]) finish() Stats {
	r.stats.Duration = time.Since(r.start)
	return r.stats
}

func (r *run[M]) leaf(state game.State[M]) (float64, bool) {
	r.stats.Evaluations++
	return r.s.evaluate(state), state.IsTerminal()
}

// noMoves handles a non-terminal state without legal moves.
func (r *run[M]) noMoves(state game.State[M]) (float64, bool, error) {
	if r.s.opts.noMoves == NoMovesFail {
		return 0, false, game.ErrNoLegalMoves
	}
	r.stats.Evaluations++
	return r.s.evaluate(state), false, nil
}

// child pushes m, runs search on the resulting state and pops m again. The pop
// happens on every path, including errors raised by search.
func (r *run[M]) child(state game.State[M], m M, search func() (float64, bool, error)) (float64, bool, error) {
	if err := state.Push(m); err != nil {
		return 0, false, fmt.Errorf("push %v: %w", m, err)
	}
	r.stats.Nodes++
	value, exhausted, err := search()
	if perr := state.Pop(); perr != nil {
		return 0, false, errors.Join(err, fmt.Errorf("pop %v: %w", m, perr))
	}
	return value, exhausted, err
}

func checkDepth(depth int) error {
	if depth < 0 || depth > MaxDepth {
		return fmt.Errorf("%w: got %d", ErrDepthLimit, depth)
	}
	return nil
}

// worst is the starting value of a node searched for role.
func worst(role game.Role) float64 {
	if role == game.Max {
		return -Infinity
	}
	return Infinity
}
