package tictactoe

import "gametree/game"

// Evaluate scores a board for X. A decided board is worth game.Win plus the
// number of empty cells, so quicker wins score higher. Otherwise every line
// still open to a single player counts the square of that player's marks on it.
func Evaluate(s game.State[Move]) float64 {
	b := s.(*Board)
	switch b.Result() {
	case X:
		return game.Win + float64(b.empties())
	case O:
		return -(game.Win + float64(b.empties()))
	}
	if b.empties() == 0 {
		return 0
	}

	score := 0.0
	for _, l := range lines {
		xs, os := 0, 0
		for _, m := range l {
			switch b.cells[m.Row][m.Col] {
			case X:
				xs++
			case O:
				os++
			}
		}
		if os == 0 {
			score += float64(xs * xs)
		}
		if xs == 0 {
			score -= float64(os * os)
		}
	}
	return score
}
