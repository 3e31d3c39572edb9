package chess

import "golang.org/x/exp/constraints"

const (
	fileChars = "abcdefgh"
	rankChars = "12345678"
)

// Square is a board coordinate. Rank and File both run 0..7, with rank 0
// being White's back rank and file 0 the a-file.
type Square struct {
	Rank int
	File int
}

// NoSquare is returned when a square can not be parsed.
var NoSquare = Square{Rank: -1, File: -1}

// Sq is shorthand for Square{Rank: rank, File: file}.
func Sq(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

// Valid reports whether the square lies on the board.
func (sq Square) Valid() bool {
	return sq.Rank >= 0 && sq.Rank < 8 && sq.File >= 0 && sq.File < 8
}

// String returns the algebraic name of the square, e.g. "e4".
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return fileChars[sq.File:sq.File+1] + rankChars[sq.Rank:sq.Rank+1]
}

func (sq Square) offset(rank, file int) Square {
	return Square{Rank: sq.Rank + rank, File: sq.File + file}
}

func isFile(c byte) bool { return c >= 'a' && c <= 'h' }
func isRank(c byte) bool { return c >= '1' && c <= '8' }

// ParseSquare converts a square name (e.g., "e4") into a Square.
func ParseSquare(s string) Square {
	const squareLen = 2
	if len(s) != squareLen || !isFile(s[0]) || !isRank(s[1]) {
		return NoSquare
	}
	return Square{Rank: int(s[1] - '1'), File: int(s[0] - 'a')}
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
