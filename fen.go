package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFEN is wrapped by every FEN decoding error.
	ErrInvalidFEN = errors.New("chess: invalid FEN")
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoardFromFEN returns a board set up from a FEN record. FEN does not
// record how often each piece moved, so move counts are inferred: a king
// or rook without a matching castling right counts as moved, as does any
// other piece that is off its home square.
func NewBoardFromFEN(fen string) (*Board, error) {
	b, err := decodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func decodeFEN(fen string) (*Board, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: expected 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	b := &Board{initialState: InProgress}
	if err := b.decodePlacement(fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}

	rights, err := decodeCastling(fields[2])
	if err != nil {
		return nil, err
	}
	b.inferMoveCounts(rights)

	if err := b.decodeEnPassant(fields[3]); err != nil {
		return nil, err
	}

	fullMove := 1
	if len(fields) > 4 {
		if b.movesSinceCapture, err = strconv.Atoi(fields[4]); err != nil || b.movesSinceCapture < 0 {
			return nil, fmt.Errorf("%w: bad halfmove clock %q", ErrInvalidFEN, fields[4])
		}
	}
	if len(fields) > 5 {
		if fullMove, err = strconv.Atoi(fields[5]); err != nil || fullMove < 1 {
			return nil, fmt.Errorf("%w: bad move number %q", ErrInvalidFEN, fields[5])
		}
	}
	b.startPly = (fullMove - 1) * 2
	if b.turn == Black {
		b.startPly++
	}
	if b.previous != nil {
		b.previous.number = b.startPly
	}

	if b.InCheck(b.turn.Other()) {
		return nil, fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}
	b.initialState = b.classify()
	return b, nil
}

func (b *Board) decodePlacement(s string) error {
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	var kings [2]int
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p := pieceFromFEN(c)
			if p == nil {
				return fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, c)
			}
			if file > 7 {
				return fmt.Errorf("%w: rank %d has more than 8 files", ErrInvalidFEN, rank+1)
			}
			if p.typ == Pawn && (rank == 0 || rank == 7) {
				return fmt.Errorf("%w: pawn on %s", ErrInvalidFEN, Sq(rank, file))
			}
			if p.typ == King {
				kings[p.color.index()]++
			}
			b.place(Sq(rank, file), p)
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d does not have 8 files", ErrInvalidFEN, rank+1)
		}
	}
	if kings[0] != 1 || kings[1] != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}
	return nil
}

func pieceFromFEN(c byte) *Piece {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	var t PieceType
	switch c {
	case 'K':
		t = King
	case 'Q':
		t = Queen
	case 'R':
		t = Rook
	case 'B':
		t = Bishop
	case 'N':
		t = Knight
	case 'P':
		t = Pawn
	default:
		return nil
	}
	return NewPiece(color, t)
}

// castlingRights is indexed by color and then by CastlingSide.
type castlingRights [2][3]bool

func decodeCastling(s string) (castlingRights, error) {
	var rights castlingRights
	if s == "-" {
		return rights, nil
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			rights[0][KingSide] = true
		case 'Q':
			rights[0][QueenSide] = true
		case 'k':
			rights[1][KingSide] = true
		case 'q':
			rights[1][QueenSide] = true
		default:
			return rights, fmt.Errorf("%w: bad castling rights %q", ErrInvalidFEN, s)
		}
	}
	return rights, nil
}

func (b *Board) inferMoveCounts(rights castlingRights) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p == nil {
				continue
			}
			home := 0
			if p.color == Black {
				home = 7
			}
			r := rights[p.color.index()]
			unmoved := false
			switch p.typ {
			case King:
				unmoved = rank == home && file == 4 && (r[KingSide] || r[QueenSide])
			case Rook:
				unmoved = rank == home && ((file == 0 && r[QueenSide]) || (file == 7 && r[KingSide]))
			case Pawn:
				pawnRank := 1
				if p.color == Black {
					pawnRank = 6
				}
				unmoved = rank == pawnRank
			default:
				unmoved = rank == home && backRank[file] == p.typ
			}
			if !unmoved {
				p.moveCount = 1
			}
		}
	}
}

// decodeEnPassant turns an en passant target square into the double pawn
// push that must have preceded the position.
func (b *Board) decodeEnPassant(s string) error {
	if s == "-" {
		return nil
	}
	target := ParseSquare(s)
	mover := b.turn.Other()
	from, to, rank := target.offset(-1, 0), target.offset(1, 0), 2
	if mover == Black {
		from, to, rank = target.offset(1, 0), target.offset(-1, 0), 5
	}
	if !target.Valid() || target.Rank != rank {
		return fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, s)
	}
	pawn := b.at(to)
	if pawn == nil || pawn.typ != Pawn || pawn.color != mover || b.at(target) != nil || b.at(from) != nil {
		return fmt.Errorf("%w: no pawn can be taken en passant on %s", ErrInvalidFEN, s)
	}
	b.previous = &Move{
		from:  from,
		to:    to,
		piece: pawn,
		color: mover,
		state: InProgress,
	}
	return nil
}

// FEN returns the Forsyth-Edwards notation of the position. The halfmove
// field carries the plies since the last capture.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.typ.fenByte(p.color))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.turn.String())
	sb.WriteByte(' ')
	sb.WriteString(b.castlingField())
	sb.WriteByte(' ')

	ep := "-"
	if last := b.LastMove(); last != nil && last.piece.typ == Pawn && abs(last.to.Rank-last.from.Rank) == 2 {
		ep = Sq((last.from.Rank+last.to.Rank)/2, last.from.File).String()
	}
	sb.WriteString(ep)
	fmt.Fprintf(&sb, " %d %d", b.movesSinceCapture, b.Ply()/2+1)
	return sb.String()
}

func (b *Board) castlingField() string {
	var sb strings.Builder
	for _, c := range [2]Color{White, Black} {
		home := 0
		if c == Black {
			home = 7
		}
		king := b.squares[home][4]
		if king == nil || king.typ != King || king.color != c || king.moveCount != 0 {
			continue
		}
		for _, side := range [2]CastlingSide{KingSide, QueenSide} {
			corner, _ := rookSquares(side, home)
			rook := b.at(corner)
			if rook == nil || rook.typ != Rook || rook.color != c || rook.moveCount != 0 {
				continue
			}
			letter := byte('K')
			if side == QueenSide {
				letter = 'Q'
			}
			if c == Black {
				letter += 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
