package chess

import (
	"gametree/game"

	"github.com/notnil/chess"
)

var pieceValues = map[chess.PieceType]float64{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
	chess.King:   200,
}

// Evaluate counts material for White. Mate is worth game.Win to the mating
// side and any other finished game is a draw.
func Evaluate(s game.State[Move]) float64 {
	pos := s.(*Board).Position()
	switch pos.Status() {
	case chess.NoMethod:
	case chess.Checkmate:
		if pos.Turn() == chess.White {
			return -game.Win
		}
		return game.Win
	default:
		return 0
	}

	score := 0.0
	for _, piece := range pos.Board().SquareMap() {
		v := pieceValues[piece.Type()]
		if piece.Color() == chess.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}
