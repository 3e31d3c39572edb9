package chess

// Color represents the color of a chess piece or of the side to move.
type Color int8

const (
	// NoColor represents no color.
	NoColor Color = iota
	// White represents the color white.
	White
	// Black represents the color black.
	Black
)

// Other returns the opposite color of the receiver.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String implements the fmt.Stringer interface and returns
// the color's FEN compatible notation.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// Name returns a display friendly name.
func (c Color) Name() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "No Color"
}

// index maps a color onto the two-slot arrays used by Board.
func (c Color) index() int {
	if c == Black {
		return 1
	}
	return 0
}

// PieceType is the type of a piece.
type PieceType int8

const (
	// NoPieceType represents a lack of piece type.
	NoPieceType PieceType = iota
	// King represents a king.
	King
	// Queen represents a queen.
	Queen
	// Rook represents a rook.
	Rook
	// Bishop represents a bishop.
	Bishop
	// Knight represents a knight.
	Knight
	// Pawn represents a pawn.
	Pawn
)

// Direction is one entry of a movement pattern: a step of Rank and File
// squares, repeated until blocked when Repeatable is set.
type Direction struct {
	Rank       int
	File       int
	Repeatable bool
}

type pieceInfo struct {
	value    int
	letter   string
	name     string
	patterns []Direction
}

var (
	diagonals = []Direction{
		{-1, -1, true}, {-1, 1, true}, {1, -1, true}, {1, 1, true},
	}
	orthogonals = []Direction{
		{-1, 0, true}, {1, 0, true}, {0, -1, true}, {0, 1, true},
	}
	knightLeaps = []Direction{
		{1, -2, false}, {2, -1, false}, {2, 1, false}, {1, 2, false},
		{-1, 2, false}, {-2, 1, false}, {-2, -1, false}, {-1, -2, false},
	}
	kingSteps = []Direction{
		{-1, -1, false}, {-1, 0, false}, {-1, 1, false}, {0, -1, false},
		{0, 1, false}, {1, -1, false}, {1, 0, false}, {1, 1, false},
	}
	queenRays = append(append([]Direction{}, diagonals...), orthogonals...)
)

// catalog is indexed by PieceType. The king carries no material value:
// it can never be captured, so it never enters the material totals.
var catalog = [...]pieceInfo{
	NoPieceType: {},
	King:        {value: 0, letter: "K", name: "king", patterns: kingSteps},
	Queen:       {value: 900, letter: "Q", name: "queen", patterns: queenRays},
	Rook:        {value: 500, letter: "R", name: "rook", patterns: orthogonals},
	Bishop:      {value: 325, letter: "B", name: "bishop", patterns: diagonals},
	Knight:      {value: 300, letter: "N", name: "knight", patterns: knightLeaps},
	Pawn:        {value: 100, letter: "", name: "pawn"},
}

// Value returns the material value of the piece type.
func (p PieceType) Value() int {
	return catalog[p].value
}

// Patterns returns the movement-pattern table. Pawns have none; they move
// by dedicated rules.
func (p PieceType) Patterns() []Direction {
	return catalog[p].patterns
}

// String implements the fmt.Stringer interface and returns the
// algebraic letter of the piece type ("" for pawns).
func (p PieceType) String() string {
	return catalog[p].letter
}

// Name returns the lower case english name of the piece type.
func (p PieceType) Name() string {
	return catalog[p].name
}

func (p PieceType) fenByte(c Color) byte {
	var b byte
	switch p {
	case King:
		b = 'k'
	case Queen:
		b = 'q'
	case Rook:
		b = 'r'
	case Bishop:
		b = 'b'
	case Knight:
		b = 'n'
	case Pawn:
		b = 'p'
	default:
		return '.'
	}
	if c == White {
		b -= 'a' - 'A'
	}
	return b
}

// Piece is a single piece instance on the board. A piece is referenced by
// exactly one square; moving it hands the same instance to the destination.
type Piece struct {
	color     Color
	typ       PieceType
	moveCount int
}

// NewPiece returns an unmoved piece of the given color and type.
func NewPiece(c Color, t PieceType) *Piece {
	return &Piece{color: c, typ: t}
}

// Color returns the color of the piece.
func (p *Piece) Color() Color {
	return p.color
}

// Type returns the type of the piece.
func (p *Piece) Type() PieceType {
	return p.typ
}

// MoveCount returns how many times this piece has moved.
func (p *Piece) MoveCount() int {
	return p.moveCount
}

// Value returns the material value of the piece.
func (p *Piece) Value() int {
	return p.typ.Value()
}

// String returns a description such as "white knight".
func (p *Piece) String() string {
	if p == nil {
		return "empty"
	}
	if p.color == White {
		return "white " + p.typ.Name()
	}
	return "black " + p.typ.Name()
}
