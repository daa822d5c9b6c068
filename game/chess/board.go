// Package chess adapts github.com/notnil/chess to the game contract. Positions
// are immutable in that library, so the board keeps a stack of them and Pop
// simply drops the top one. White plays the Max role.
package chess

import (
	"fmt"

	"gametree/game"

	"github.com/notnil/chess"
	"github.com/samber/lo"
)

// Move is a from-to square pair with an optional promotion piece.
type Move struct {
	From, To chess.Square
	Promo    chess.PieceType
}

func (m Move) String() string {
	return m.From.String() + m.To.String() + m.Promo.String()
}

func fromLibrary(m *chess.Move) Move {
	return Move{From: m.S1(), To: m.S2(), Promo: m.Promo()}
}

type Board struct {
	positions []*chess.Position
}

var _ game.Match[Move] = (*Board)(nil)

// NewBoard starts from the standard initial position.
func NewBoard() *Board {
	return &Board{positions: []*chess.Position{chess.NewGame().Position()}}
}

// Parse starts from a FEN string.
func Parse(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return &Board{positions: []*chess.Position{chess.NewGame(opt).Position()}}, nil
}

func (b *Board) Position() *chess.Position {
	return b.positions[len(b.positions)-1]
}

// ParseMove decodes a move in UCI notation against the current position.
func (b *Board) ParseMove(s string) (Move, error) {
	m, err := chess.UCINotation{}.Decode(b.Position(), s)
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %w", game.ErrIllegalMove, s, err)
	}
	move := fromLibrary(m)
	if !lo.Contains(b.LegalMoves(), move) {
		return Move{}, fmt.Errorf("%w: %q", game.ErrIllegalMove, s)
	}
	return move, nil
}

func (b *Board) IsTerminal() bool {
	return b.Position().Status() != chess.NoMethod
}

func (b *Board) LegalMoves() []Move {
	if b.IsTerminal() {
		return nil
	}
	valid := b.Position().ValidMoves()
	moves := make([]Move, len(valid))
	for i, m := range valid {
		moves[i] = fromLibrary(m)
	}
	return moves
}

func (b *Board) Push(m Move) error {
	pos := b.Position()
	for _, vm := range pos.ValidMoves() {
		if fromLibrary(vm) == m {
			b.positions = append(b.positions, pos.Update(vm))
			return nil
		}
	}
	return fmt.Errorf("%w: %v", game.ErrIllegalMove, m)
}

func (b *Board) Pop() error {
	if len(b.positions) == 1 {
		return game.ErrEmptyHistory
	}
	b.positions = b.positions[:len(b.positions)-1]
	return nil
}

func (b *Board) Player() string {
	return colorName(b.Position().Turn())
}

func (b *Board) Role() game.Role {
	if b.Position().Turn() == chess.White {
		return game.Max
	}
	return game.Min
}

// Winner names the side that delivered mate.
func (b *Board) Winner() string {
	pos := b.Position()
	if pos.Status() != chess.Checkmate {
		return ""
	}
	return colorName(pos.Turn().Other())
}

// String returns the FEN of the current position.
func (b *Board) String() string {
	return b.Position().String()
}

func colorName(c chess.Color) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}
