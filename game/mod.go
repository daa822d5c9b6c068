package game

import "errors"

// Win is the magnitude of a decided game. Evaluators return at least this much
// (positive for a Max win, negative for a Min win) on terminal states.
const Win = 1e6

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrEmptyHistory = errors.New("no move to undo")
	ErrNoLegalMoves = errors.New("no legal moves")
)

// State is a mutable game position that can be searched in place. Moves are
// applied with Push and reverted with Pop, so a single instance is threaded
// through a whole search.
type State[M comparable] interface {
	// LegalMoves returns the moves available to the side to move. An empty
	// result on a non-terminal state is a forced no-move position.
	LegalMoves() []M
	// Push applies move and switches the side to move. It fails with
	// ErrIllegalMove if move is not currently legal.
	Push(move M) error
	// Pop reverts the last pushed move, restoring the exact prior state. It
	// fails with ErrEmptyHistory when nothing was pushed.
	Pop() error
	IsTerminal() bool
}

// Match is a State that can also report who is playing and who won, which is
// what a match loop needs on top of the search contract.
type Match[M comparable] interface {
	State[M]
	Player() string
	Role() Role
	// Winner returns "" while the game is undecided or when it ended in a draw.
	Winner() string
}

// Evaluate scores a state from Max's perspective: positive favours Max.
// It must be defined on every reachable state and free of side effects.
type Evaluate[M comparable] func(State[M]) float64
