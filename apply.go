package chess

// rookSquares returns the corner and destination squares of the rook that
// accompanies a castling king on the given rank.
func rookSquares(side CastlingSide, rank int) (from, to Square) {
	if side == QueenSide {
		return Sq(rank, 0), Sq(rank, 3)
	}
	return Sq(rank, 7), Sq(rank, 5)
}

func (b *Board) shift(from, to Square) *Piece {
	p := b.at(from)
	b.squares[to.Rank][to.File] = p
	b.squares[from.Rank][from.File] = nil
	return p
}

// Apply plays m, which must have been generated for this position, and
// pushes it onto the history. The move's state is set to the game state
// of the resulting position.
func (b *Board) Apply(m *Move) {
	b.history = append(b.history, m)
	side := m.color.index()

	if m.piece.typ == King {
		b.kings[side] = m.to
	}

	if m.castling != NoCastling {
		from, to := rookSquares(m.castling, m.to.Rank)
		b.shift(from, to).moveCount++
		b.castled[side] = true
	}

	if m.enPassant {
		b.squares[m.from.Rank][m.to.File] = nil
	}

	if m.promotion {
		b.squares[m.to.Rank][m.to.File] = NewPiece(m.color, Queen)
		b.material[side] += Queen.Value() - Pawn.Value()
	} else {
		b.squares[m.to.Rank][m.to.File] = m.piece
	}
	b.squares[m.from.Rank][m.from.File] = nil

	m.sinceCapture = b.movesSinceCapture
	if m.captured != nil {
		b.material[m.captured.color.index()] -= m.captured.Value()
		b.movesSinceCapture = 0
	} else {
		b.movesSinceCapture++
	}

	m.piece.moveCount++
	b.turn = b.turn.Other()
	m.state = b.classify()
}

// Undo takes back the last applied move and returns it. Calling Undo on a
// board without history is a programming error and panics.
func (b *Board) Undo() *Move {
	if len(b.history) == 0 {
		panic("chess: undo with empty history")
	}
	m := b.history[len(b.history)-1]
	b.history[len(b.history)-1] = nil
	b.history = b.history[:len(b.history)-1]
	side := m.color.index()

	if m.piece.typ == King {
		b.kings[side] = m.from
	}

	if m.castling != NoCastling {
		from, to := rookSquares(m.castling, m.to.Rank)
		b.shift(to, from).moveCount--
		b.castled[side] = false
	}

	if m.promotion {
		b.material[side] -= Queen.Value() - Pawn.Value()
	}

	b.squares[m.from.Rank][m.from.File] = m.piece
	if m.enPassant {
		b.squares[m.from.Rank][m.to.File] = m.captured
		b.squares[m.to.Rank][m.to.File] = nil
	} else {
		b.squares[m.to.Rank][m.to.File] = m.captured
	}

	if m.captured != nil {
		b.material[m.captured.color.index()] += m.captured.Value()
	}
	b.movesSinceCapture = m.sinceCapture

	m.piece.moveCount--
	b.turn = b.turn.Other()
	return m
}

// speculativeApply moves the pieces of m without touching history,
// material, move counts or the turn. It only serves the self-check test.
func (b *Board) speculativeApply(m *Move) {
	if m.piece.typ == King {
		b.kings[m.color.index()] = m.to
	}
	if m.castling != NoCastling {
		from, to := rookSquares(m.castling, m.to.Rank)
		b.shift(from, to)
	}
	if m.enPassant {
		b.squares[m.from.Rank][m.to.File] = nil
	}
	b.squares[m.to.Rank][m.to.File] = m.piece
	b.squares[m.from.Rank][m.from.File] = nil
}

func (b *Board) speculativeUndo(m *Move) {
	if m.piece.typ == King {
		b.kings[m.color.index()] = m.from
	}
	if m.castling != NoCastling {
		from, to := rookSquares(m.castling, m.to.Rank)
		b.shift(to, from)
	}
	b.squares[m.from.Rank][m.from.File] = m.piece
	if m.enPassant {
		b.squares[m.from.Rank][m.to.File] = m.captured
		b.squares[m.to.Rank][m.to.File] = nil
	} else {
		b.squares[m.to.Rank][m.to.File] = m.captured
	}
}

// leavesKingAttacked reports whether playing m would expose the mover's
// own king.
func (b *Board) leavesKingAttacked(m *Move) bool {
	b.speculativeApply(m)
	attacked := b.SquareAttacked(b.kings[m.color.index()], m.color)
	b.speculativeUndo(m)
	return attacked
}
