// Package tictactoe is a 3x3 noughts and crosses board. X moves first and
// plays the Max role.
package tictactoe

import (
	"fmt"
	"strings"

	"gametree/game"
)

const Size = 3

type Mark byte

const (
	Empty Mark = '.'
	X     Mark = 'X'
	O     Mark = 'O'
)

type Move struct {
	Row, Col int
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// lines lists every row, column and diagonal.
var lines = func() [][3]Move {
	var ls [][3]Move
	for i := 0; i < Size; i++ {
		ls = append(ls, [3]Move{{i, 0}, {i, 1}, {i, 2}})
		ls = append(ls, [3]Move{{0, i}, {1, i}, {2, i}})
	}
	ls = append(ls, [3]Move{{0, 0}, {1, 1}, {2, 2}})
	ls = append(ls, [3]Move{{2, 0}, {1, 1}, {0, 2}})
	return ls
}()

type Board struct {
	cells [Size][Size]Mark
	next  Mark
	stack []Move
}

var _ game.Match[Move] = (*Board)(nil)

func NewBoard() *Board {
	b := &Board{next: X}
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c] = Empty
		}
	}
	return b
}

// Parse reads a board written as three rows of X, O and '.', separated by
// newlines or slashes. The side to move follows from the mark counts.
func Parse(s string) (*Board, error) {
	b, xs, os, err := parseCells(s)
	if err != nil {
		return nil, err
	}
	switch xs - os {
	case 0:
		b.next = X
	case 1:
		b.next = O
	default:
		return nil, fmt.Errorf("impossible mark counts: %d X, %d O", xs, os)
	}
	return b, nil
}

// ParseNext reads a board like Parse but takes the side to move from next
// instead of the mark counts.
func ParseNext(s string, next Mark) (*Board, error) {
	if next != X && next != O {
		return nil, fmt.Errorf("unknown side to move %q", next)
	}
	b, _, _, err := parseCells(s)
	if err != nil {
		return nil, err
	}
	b.next = next
	return b, nil
}

func parseCells(s string) (b *Board, xs, os int, err error) {
	rows := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '/' })
	if len(rows) != Size {
		return nil, 0, 0, fmt.Errorf("expected %d rows, got %d", Size, len(rows))
	}
	b = NewBoard()
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != Size {
			return nil, 0, 0, fmt.Errorf("row %d: expected %d cells, got %q", r, Size, row)
		}
		for c, ch := range []byte(row) {
			switch Mark(ch) {
			case X:
				xs++
			case O:
				os++
			case Empty:
			default:
				return nil, 0, 0, fmt.Errorf("row %d: unknown mark %q", r, ch)
			}
			b.cells[r][c] = Mark(ch)
		}
	}
	return b, xs, os, nil
}

func (b *Board) At(r, c int) Mark {
	return b.cells[r][c]
}

func (b *Board) Next() Mark {
	return b.next
}

// Result returns the mark owning a complete line, or Empty.
func (b *Board) Result() Mark {
	for _, l := range lines {
		m := b.cells[l[0].Row][l[0].Col]
		if m != Empty && m == b.cells[l[1].Row][l[1].Col] && m == b.cells[l[2].Row][l[2].Col] {
			return m
		}
	}
	return Empty
}

func (b *Board) empties() int {
	n := 0
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c] == Empty {
				n++
			}
		}
	}
	return n
}

func (b *Board) IsTerminal() bool {
	return b.Result() != Empty || b.empties() == 0
}

func (b *Board) LegalMoves() []Move {
	if b.IsTerminal() {
		return nil
	}
	moves := make([]Move, 0, Size*Size)
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c] == Empty {
				moves = append(moves, Move{r, c})
			}
		}
	}
	return moves
}

func (b *Board) Push(m Move) error {
	if m.Row < 0 || m.Row >= Size || m.Col < 0 || m.Col >= Size {
		return fmt.Errorf("%w: %v is off the board", game.ErrIllegalMove, m)
	}
	if b.cells[m.Row][m.Col] != Empty {
		return fmt.Errorf("%w: %v is occupied", game.ErrIllegalMove, m)
	}
	if b.IsTerminal() {
		return fmt.Errorf("%w: game is over", game.ErrIllegalMove)
	}
	b.cells[m.Row][m.Col] = b.next
	b.stack = append(b.stack, m)
	b.next = other(b.next)
	return nil
}

func (b *Board) Pop() error {
	if len(b.stack) == 0 {
		return game.ErrEmptyHistory
	}
	m := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.next = b.cells[m.Row][m.Col]
	b.cells[m.Row][m.Col] = Empty
	return nil
}

func (b *Board) Player() string {
	return string(b.next)
}

func (b *Board) Role() game.Role {
	if b.next == X {
		return game.Max
	}
	return game.Min
}

func (b *Board) Winner() string {
	if w := b.Result(); w != Empty {
		return string(w)
	}
	return ""
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.cells {
		for c := range b.cells[r] {
			sb.WriteByte(byte(b.cells[r][c]))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Next player: %c\n", b.next)
	return sb.String()
}

func other(m Mark) Mark {
	if m == X {
		return O
	}
	return X
}
