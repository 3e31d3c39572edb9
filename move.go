package chess

// CastlingSide identifies which way a king castles.
type CastlingSide uint8

const (
	// NoCastling is the side of every non-castling move.
	NoCastling CastlingSide = iota
	// QueenSide castles towards the a-file.
	QueenSide
	// KingSide castles towards the h-file.
	KingSide
)

// A Move is a single ply built from the board it is played on. It keeps
// enough information to apply the move and to take it back again.
type Move struct {
	from, to  Square
	piece     *Piece
	captured  *Piece
	promotion bool
	enPassant bool
	castling  CastlingSide

	// set after generation when a like piece reaches the same square
	disambiguateFile bool
	disambiguateRank bool

	number       int
	color        Color
	state        GameState
	sinceCapture int
}

// newMove builds the move of the piece on from to to. A pawn moving
// diagonally onto an empty square is an en passant capture of the pawn
// beside it.
func newMove(b *Board, from, to Square) *Move {
	m := &Move{
		from:     from,
		to:       to,
		piece:    b.at(from),
		captured: b.at(to),
		number:   b.Ply() + 1,
		color:    b.turn,
		state:    Unknown,
	}
	if m.piece.typ == Pawn {
		if from.File != to.File && m.captured == nil {
			m.captured = b.at(Sq(from.Rank, to.File))
			m.enPassant = true
		} else if to.Rank == 0 || to.Rank == 7 {
			m.promotion = true
		}
	}
	return m
}

// From returns the origin square.
func (m *Move) From() Square { return m.from }

// To returns the destination square.
func (m *Move) To() Square { return m.to }

// Piece returns the type of the moving piece.
func (m *Move) Piece() PieceType { return m.piece.typ }

// Captured returns the type of the captured piece or NoPieceType.
func (m *Move) Captured() PieceType {
	if m.captured == nil {
		return NoPieceType
	}
	return m.captured.typ
}

// IsCapture reports whether the move takes a piece.
func (m *Move) IsCapture() bool { return m.captured != nil }

// IsEnPassant reports whether the move is an en passant capture.
func (m *Move) IsEnPassant() bool { return m.enPassant }

// IsPromotion reports whether a pawn is promoted (always to a queen).
func (m *Move) IsPromotion() bool { return m.promotion }

// Castling returns the castling side, NoCastling for ordinary moves.
func (m *Move) Castling() CastlingSide { return m.castling }

// Number returns the ply sequence number of the move, starting at 1.
func (m *Move) Number() int { return m.number }

// MoveNumber returns the full move number as printed on a score sheet.
func (m *Move) MoveNumber() int { return (m.number + 1) / 2 }

// Color returns the color that made the move.
func (m *Move) Color() Color { return m.color }

// State returns the game state the move produced. Moves that have never
// been applied report Unknown.
func (m *Move) State() GameState { return m.state }
