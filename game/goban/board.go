// Package goban plays Go on small square boards with area scoring and
// positional superko. Passing is an ordinary move; two passes in a row end the
// game. Black moves first and plays the Max role.
package goban

import (
	"fmt"
	"strings"

	"gametree/game"

	"github.com/cespare/xxhash/v2"
)

type Color byte

const (
	Empty Color = '.'
	Black Color = 'B'
	White Color = 'W'
)

func (c Color) opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

type Move struct {
	Row, Col int
}

var Pass = Move{-1, -1}

func (m Move) String() string {
	if m == Pass {
		return "pass"
	}
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

type Option func(b *Board)

// WithKomi sets the points added to White's score.
func WithKomi(komi float64) Option {
	return func(b *Board) {
		b.komi = komi
	}
}

// WithMaxMoves ends the game after n moves, passes included.
func WithMaxMoves(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.maxMoves = n
		}
	}
}

type undo struct {
	move     Move
	captured []int
	passes   int
	hash     uint64
}

type Board struct {
	size     int
	komi     float64
	maxMoves int
	cells    []byte
	next     Color
	passes   int
	history  []undo
	seen     map[uint64]int // positions on the current line, for superko
}

var _ game.Match[Move] = (*Board)(nil)

func NewBoard(size int, opts ...Option) *Board {
	if size < 2 {
		panic("board needs at least two lines")
	}
	b := &Board{
		size:     size,
		maxMoves: 3 * size * size,
		cells:    []byte(strings.Repeat(string(Empty), size*size)),
		next:     Black,
		seen:     map[uint64]int{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.seen[b.hash()]++
	return b
}

// Parse reads a position written as rows of B, W and '.', separated by
// newlines or slashes, with next to move.
func Parse(s string, next Color, opts ...Option) (*Board, error) {
	rows := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '/' })
	if len(rows) < 2 {
		return nil, fmt.Errorf("expected at least 2 rows, got %d", len(rows))
	}
	if next != Black && next != White {
		return nil, fmt.Errorf("unknown side to move %q", next)
	}
	b := NewBoard(len(rows), opts...)
	delete(b.seen, b.hash())
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != b.size {
			return nil, fmt.Errorf("row %d: expected %d points, got %q", r, b.size, row)
		}
		for c, ch := range []byte(row) {
			switch Color(ch) {
			case Empty, Black, White:
				b.cells[r*b.size+c] = ch
			default:
				return nil, fmt.Errorf("row %d: unknown stone %q", r, ch)
			}
		}
	}
	b.next = next
	b.seen[b.hash()]++
	return b, nil
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Komi() float64 {
	return b.komi
}

func (b *Board) At(r, c int) Color {
	return Color(b.cells[r*b.size+c])
}

func (b *Board) Next() Color {
	return b.next
}

func (b *Board) hash() uint64 {
	return xxhash.Sum64(b.cells)
}

func (b *Board) neighbours(p int) []int {
	r, c := p/b.size, p%b.size
	ns := make([]int, 0, 4)
	if r > 0 {
		ns = append(ns, p-b.size)
	}
	if r < b.size-1 {
		ns = append(ns, p+b.size)
	}
	if c > 0 {
		ns = append(ns, p-1)
	}
	if c < b.size-1 {
		ns = append(ns, p+1)
	}
	return ns
}

// group returns the chain holding p and whether it has any liberty.
func (b *Board) group(p int) ([]int, bool) {
	color := b.cells[p]
	visited := map[int]bool{p: true}
	stack := []int{p}
	var chain []int
	free := false
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		chain = append(chain, q)
		for _, n := range b.neighbours(q) {
			switch {
			case b.cells[n] == byte(Empty):
				free = true
			case b.cells[n] == color && !visited[n]:
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return chain, free
}

func (b *Board) IsTerminal() bool {
	return b.passes >= 2 || len(b.history) >= b.maxMoves
}

// LegalMoves lists every point where a stone may be played, then Pass. It
// tries each point on the board itself and undoes it.
func (b *Board) LegalMoves() []Move {
	if b.IsTerminal() {
		return nil
	}
	var moves []Move
	for p := range b.cells {
		if b.cells[p] != byte(Empty) {
			continue
		}
		m := Move{p / b.size, p % b.size}
		if b.Push(m) == nil {
			moves = append(moves, m)
			_ = b.Pop()
		}
	}
	return append(moves, Pass)
}

func (b *Board) Push(m Move) error {
	if b.IsTerminal() {
		return fmt.Errorf("%w: game is over", game.ErrIllegalMove)
	}
	if m == Pass {
		b.history = append(b.history, undo{move: Pass, passes: b.passes})
		b.passes++
		b.next = b.next.opponent()
		return nil
	}
	if m.Row < 0 || m.Row >= b.size || m.Col < 0 || m.Col >= b.size {
		return fmt.Errorf("%w: %v is off the board", game.ErrIllegalMove, m)
	}
	p := m.Row*b.size + m.Col
	if b.cells[p] != byte(Empty) {
		return fmt.Errorf("%w: %v is occupied", game.ErrIllegalMove, m)
	}

	b.cells[p] = byte(b.next)
	var captured []int
	for _, n := range b.neighbours(p) {
		if b.cells[n] != byte(b.next.opponent()) {
			continue
		}
		if chain, free := b.group(n); !free {
			for _, q := range chain {
				b.cells[q] = byte(Empty)
			}
			captured = append(captured, chain...)
		}
	}
	if _, free := b.group(p); !free {
		b.restore(p, captured)
		return fmt.Errorf("%w: %v is suicide", game.ErrIllegalMove, m)
	}
	h := b.hash()
	if b.seen[h] > 0 {
		b.restore(p, captured)
		return fmt.Errorf("%w: %v repeats a position", game.ErrIllegalMove, m)
	}

	b.seen[h]++
	b.history = append(b.history, undo{move: m, captured: captured, passes: b.passes, hash: h})
	b.passes = 0
	b.next = b.next.opponent()
	return nil
}

// restore takes back the stone at p and puts the captured stones back.
func (b *Board) restore(p int, captured []int) {
	opponent := Color(b.cells[p]).opponent()
	b.cells[p] = byte(Empty)
	for _, q := range captured {
		b.cells[q] = byte(opponent)
	}
}

func (b *Board) Pop() error {
	if len(b.history) == 0 {
		return game.ErrEmptyHistory
	}
	u := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.passes = u.passes
	b.next = b.next.opponent()
	if u.move == Pass {
		return nil
	}
	if b.seen[u.hash]--; b.seen[u.hash] == 0 {
		delete(b.seen, u.hash)
	}
	b.restore(u.move.Row*b.size+u.move.Col, u.captured)
	return nil
}

// Score counts area: stones on the board plus empty regions that touch only
// one colour. Komi is not included.
func (b *Board) Score() (black, white float64) {
	visited := make([]bool, len(b.cells))
	for p, cell := range b.cells {
		switch Color(cell) {
		case Black:
			black++
		case White:
			white++
		default:
			if visited[p] {
				continue
			}
			size, borders := b.region(p, visited)
			switch borders {
			case 1 << 0:
				black += float64(size)
			case 1 << 1:
				white += float64(size)
			}
		}
	}
	return black, white
}

// region floods the empty area holding p. borders has bit 0 set when it
// touches Black and bit 1 when it touches White.
func (b *Board) region(p int, visited []bool) (size int, borders int) {
	visited[p] = true
	stack := []int{p}
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		for _, n := range b.neighbours(q) {
			switch Color(b.cells[n]) {
			case Black:
				borders |= 1 << 0
			case White:
				borders |= 1 << 1
			default:
				if !visited[n] {
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
	}
	return size, borders
}

// Margin is Black's area minus White's area and komi.
func (b *Board) Margin() float64 {
	black, white := b.Score()
	return black - white - b.komi
}

func (b *Board) Player() string {
	return string(b.next)
}

func (b *Board) Role() game.Role {
	if b.next == Black {
		return game.Max
	}
	return game.Min
}

func (b *Board) Winner() string {
	if !b.IsTerminal() {
		return ""
	}
	switch margin := b.Margin(); {
	case margin > 0:
		return string(Black)
	case margin < 0:
		return string(White)
	}
	return ""
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		sb.Write(b.cells[r*b.size : (r+1)*b.size])
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Next player: %c\n", b.next)
	fmt.Fprintf(&sb, "Passes: %d, moves: %d\n", b.passes, len(b.history))
	return sb.String()
}
