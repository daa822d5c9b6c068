package searcher

import (
	"os"
	"testing"

	"gametree/game"

	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// mockNode is a hand-built game tree. Leaves carry the value returned by
// mockEvaluate; interior nodes may also carry one for depth cutoffs.
type mockNode struct {
	value    float64
	terminal bool
	illegal  bool // pushing into this node fails
	children []*mockNode
}

func leaf(value float64) *mockNode {
	return &mockNode{value: value, terminal: true}
}

func inner(children ...*mockNode) *mockNode {
	return &mockNode{children: children}
}

type mockState struct {
	root *mockNode
	path []*mockNode
}

func newMockState(root *mockNode) *mockState {
	return &mockState{root: root}
}

func (m *mockState) current() *mockNode {
	if len(m.path) == 0 {
		return m.root
	}
	return m.path[len(m.path)-1]
}

func (m *mockState) LegalMoves() []int {
	moves := make([]int, len(m.current().children))
	for i := range moves {
		moves[i] = i
	}
	return moves
}

func (m *mockState) Push(move int) error {
	children := m.current().children
	if move < 0 || move >= len(children) || children[move].illegal {
		return game.ErrIllegalMove
	}
	m.path = append(m.path, children[move])
	return nil
}

func (m *mockState) Pop() error {
	if len(m.path) == 0 {
		return game.ErrEmptyHistory
	}
	m.path = m.path[:len(m.path)-1]
	return nil
}

func (m *mockState) IsTerminal() bool {
	return m.current().terminal
}

func mockEvaluate(s game.State[int]) float64 {
	return s.(*mockState).current().value
}

// textbookTree is the usual two-ply example: minimax value 3, and alpha-beta
// skips the last two leaves of the middle subtree.
func textbookTree() *mockNode {
	return inner(
		inner(leaf(3), leaf(12), leaf(8)),
		inner(leaf(2), leaf(4), leaf(6)),
		inner(leaf(14), leaf(5), leaf(2)),
	)
}
