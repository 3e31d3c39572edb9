package search

import "github.com/animats/chess"

// Evaluation weights, in centipawns.
const (
	DoubledPawn          = 25
	IsolatedPawn         = 25
	UndevelopedMinor     = 25
	KingMovedUncastled   = 50
	Castled              = 50
	CentreSquareOccupied = 50

	// EndOfOpening is the ply count below which unmoved minor pieces are
	// penalised.
	EndOfOpening = 10
)

var centre = [...]chess.Square{chess.Sq(3, 3), chess.Sq(3, 4), chess.Sq(4, 3), chess.Sq(4, 4)}

// An Evaluator scores a position from White's point of view.
type Evaluator func(b *chess.Board) int

// Evaluate scores b statically: the material balance adjusted by pawn
// structure, development, king safety and centre occupation. Positive
// scores favour White.
func Evaluate(b *chess.Board) int {
	var (
		pawnsInFile [2][8]int
		multiple    [2]int
		undeveloped [2]int
	)
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			p := b.PieceAt(chess.Sq(rank, file))
			if p == nil {
				continue
			}
			side := sideIndex(p.Color())
			switch p.Type() {
			case chess.Pawn:
				pawnsInFile[side][file]++
				if pawnsInFile[side][file] > 1 {
					multiple[side]++
				}
			case chess.Bishop, chess.Knight:
				if p.MoveCount() == 0 {
					undeveloped[side]++
				}
			}
		}
	}

	score := b.Material(chess.White) - b.Material(chess.Black)
	for _, c := range [2]chess.Color{chess.White, chess.Black} {
		side := sideIndex(c)

		penalty := multiple[side] * DoubledPawn
		for file := 0; file < 8; file++ {
			if pawnsInFile[side][file] == 0 {
				continue
			}
			if (file == 0 || pawnsInFile[side][file-1] == 0) && (file == 7 || pawnsInFile[side][file+1] == 0) {
				penalty += IsolatedPawn
			}
		}
		if b.Ply() < EndOfOpening {
			penalty += undeveloped[side] * UndevelopedMinor
		}
		king := b.PieceAt(b.KingSquare(c))
		if !b.Castled(c) && king != nil && king.MoveCount() != 0 {
			penalty += KingMovedUncastled
		}

		bonus := 0
		if b.Castled(c) {
			bonus += Castled
		}
		for _, sq := range centre {
			if p := b.PieceAt(sq); p != nil && p.Color() == c {
				bonus += CentreSquareOccupied
			}
		}

		if c == chess.White {
			score += bonus - penalty
		} else {
			score += penalty - bonus
		}
	}
	return score
}

func sideIndex(c chess.Color) int {
	if c == chess.Black {
		return 1
	}
	return 0
}
