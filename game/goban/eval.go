package goban

import (
	"math"

	"gametree/game"
)

// Evaluate scores a position for Black by its area margin. Finished games
// are worth game.Win plus the margin to the winner.
func Evaluate(s game.State[Move]) float64 {
	b := s.(*Board)
	margin := b.Margin()
	if !b.IsTerminal() || margin == 0 {
		return margin
	}
	return math.Copysign(game.Win+math.Abs(margin), margin)
}
