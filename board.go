package chess

import "strings"

// A Board is the mutable game position: the placement of the pieces plus
// the bookkeeping needed to play moves forward and take them back. Every
// applied move is pushed onto the history, the score sheet of the game.
type Board struct {
	squares           [8][8]*Piece
	turn              Color
	castled           [2]bool
	kings             [2]Square
	material          [2]int
	movesSinceCapture int
	history           []*Move

	// set up by FEN: plies played before the board was created, the state
	// of the initial position and a stand-in for the move that led to it
	startPly     int
	initialState GameState
	previous     *Move
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board in the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset restores the standard starting position in place.
func (b *Board) Reset() {
	*b = Board{turn: White, initialState: InProgress}
	for file := 0; file < 8; file++ {
		b.place(Sq(0, file), NewPiece(White, backRank[file]))
		b.place(Sq(1, file), NewPiece(White, Pawn))
		b.place(Sq(6, file), NewPiece(Black, Pawn))
		b.place(Sq(7, file), NewPiece(Black, backRank[file]))
	}
}

// place puts p on an empty square and accounts for it.
func (b *Board) place(sq Square, p *Piece) {
	b.squares[sq.Rank][sq.File] = p
	b.material[p.color.index()] += p.Value()
	if p.typ == King {
		b.kings[p.color.index()] = sq
	}
}

func (b *Board) at(sq Square) *Piece {
	return b.squares[sq.Rank][sq.File]
}

// PieceAt returns the piece on sq or nil when the square is empty.
func (b *Board) PieceAt(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	return b.at(sq)
}

// Turn returns the color to move.
func (b *Board) Turn() Color {
	return b.turn
}

// Material returns the summed piece values of color c.
func (b *Board) Material(c Color) int {
	return b.material[c.index()]
}

// KingSquare returns the cached location of the king of color c.
func (b *Board) KingSquare(c Color) Square {
	return b.kings[c.index()]
}

// Castled reports whether color c has castled.
func (b *Board) Castled(c Color) bool {
	return b.castled[c.index()]
}

// MovesSinceCapture returns the number of plies since the last capture.
func (b *Board) MovesSinceCapture() int {
	return b.movesSinceCapture
}

// History returns a copy of the moves played on this board, oldest first.
func (b *Board) History() []*Move {
	return append([]*Move(nil), b.history...)
}

// Ply returns the number of plies played, including those implied by a
// FEN move number.
func (b *Board) Ply() int {
	return b.startPly + len(b.history)
}

// LastMove returns the move that led to this position, or nil.
func (b *Board) LastMove() *Move {
	if len(b.history) == 0 {
		return b.previous
	}
	return b.history[len(b.history)-1]
}

// State returns the game state left by the last move.
func (b *Board) State() GameState {
	if len(b.history) == 0 {
		return b.initialState
	}
	return b.history[len(b.history)-1].state
}

// String returns an ASCII diagram of the board with rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(rankChars[rank])
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			if p := b.squares[rank][file]; p != nil {
				sb.WriteByte(p.typ.fenByte(p.color))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
