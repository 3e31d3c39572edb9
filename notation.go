package chess

import (
	"fmt"
	"strings"
)

// Algebraic returns the move in standard algebraic notation, e.g. "Nf3",
// "exd6", "Rad1", "e8=Q+", "O-O-O" or "Qxf7#".
func (m *Move) Algebraic() string {
	var sb strings.Builder
	switch m.castling {
	case KingSide:
		sb.WriteString("O-O")
	case QueenSide:
		sb.WriteString("O-O-O")
	default:
		if m.piece.typ != Pawn {
			sb.WriteString(m.piece.typ.String())
			if m.disambiguateFile {
				sb.WriteByte(fileChars[m.from.File])
			}
			if m.disambiguateRank {
				sb.WriteByte(rankChars[m.from.Rank])
			}
		} else if m.captured != nil {
			sb.WriteByte(fileChars[m.from.File])
		}
		if m.captured != nil {
			sb.WriteString("x")
		}
		sb.WriteString(m.to.String())
		if m.promotion {
			sb.WriteString("=" + Queen.String())
		}
	}

	switch {
	case m.state.IsCheckmate():
		sb.WriteString("#")
	case m.state.IsCheck():
		sb.WriteString("+")
	}
	return sb.String()
}

// Command returns the coordinate form used for command matching,
// e.g. "e2e4" or "e7e8q".
func (m *Move) Command() string {
	s := m.from.String() + m.to.String()
	if m.promotion {
		s += "q"
	}
	return s
}

// String implements the fmt.Stringer interface and returns the
// coordinate form of the move.
func (m *Move) String() string {
	return m.Command()
}

// Describe returns a long description such as
// "Nf3 (white knight on g1 to f3)".
func (m *Move) Describe() string {
	verb := " to "
	if m.captured != nil {
		verb = " takes "
	}
	s := fmt.Sprintf("%s (%s on %s%s%s", m.Algebraic(), m.piece, m.from, verb, m.to)
	if m.promotion {
		s += ", promotes to queen"
	}
	return s + ")"
}

// FormatLine renders consecutive moves with move numbers, for example
// "1. e4 e5 2. Nf3" or, when the line starts with black, "3... Nc6 4. Bb5".
func FormatLine(moves []*Move) string {
	var sb strings.Builder
	for i, m := range moves {
		writeMoveNumber(m, i == 0, &sb)
		sb.WriteString(m.Algebraic())
	}
	return sb.String()
}

func writeMoveNumber(m *Move, first bool, sb *strings.Builder) {
	if !first {
		sb.WriteString(" ")
	}
	if m.color == White {
		sb.WriteString(fmt.Sprintf("%d. ", m.MoveNumber()))
	} else if first {
		sb.WriteString(fmt.Sprintf("%d... ", m.MoveNumber()))
	}
}

// IsCommand reports whether s has the shape of a coordinate move such as
// "e2e4" or "e7e8q". It does not check legality.
func IsCommand(s string) bool {
	if len(s) != 4 && len(s) != 5 {
		return false
	}
	if !isFile(s[0]) || !isRank(s[1]) || !isFile(s[2]) || !isRank(s[3]) {
		return false
	}
	if len(s) == 5 {
		switch s[4] {
		case 'q', 'r', 'b', 'n':
			return true
		default:
			return false
		}
	}
	return true
}
