package chess

// LegalMoves returns every legal move for the side to move. Moves that
// would leave the mover's own king attacked are filtered out, and moves of
// like pieces reaching the same square are marked for disambiguation.
func (b *Board) LegalMoves() []*Move {
	pseudo := b.pseudoMoves(make([]*Move, 0, 48))
	legal := pseudo[:0]
	for _, m := range pseudo {
		if !b.leavesKingAttacked(m) {
			legal = append(legal, m)
		}
	}
	markAmbiguities(legal)
	return legal
}

// pseudoMoves appends the moves of the side to move that obey the movement
// rules, without the self-check filter.
func (b *Board) pseudoMoves(dst []*Move) []*Move {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p == nil || p.color != b.turn {
				continue
			}
			dst = b.pieceMoves(Sq(rank, file), p, dst)
		}
	}
	return dst
}

func (b *Board) pieceMoves(from Square, p *Piece, dst []*Move) []*Move {
	switch p.typ {
	case Pawn:
		return b.pawnMoves(from, p, dst)
	case King:
		dst = b.patternMoves(from, p, dst)
		return b.castlingMoves(from, p, dst)
	default:
		return b.patternMoves(from, p, dst)
	}
}

// patternMoves walks the piece's movement pattern. A ray ends at the edge
// of the board or at the first occupied square, which is a capture when the
// occupant belongs to the opponent.
func (b *Board) patternMoves(from Square, p *Piece, dst []*Move) []*Move {
	for _, d := range p.typ.Patterns() {
		to := from
		for {
			to = to.offset(d.Rank, d.File)
			if !to.Valid() {
				break
			}
			occupant := b.at(to)
			if occupant != nil && occupant.color == p.color {
				break
			}
			dst = append(dst, newMove(b, from, to))
			if occupant != nil || !d.Repeatable {
				break
			}
		}
	}
	return dst
}

func (b *Board) pawnMoves(from Square, p *Piece, dst []*Move) []*Move {
	forward, startRank := 1, 1
	if p.color == Black {
		forward, startRank = -1, 6
	}

	one := from.offset(forward, 0)
	if one.Valid() && b.at(one) == nil {
		dst = append(dst, newMove(b, from, one))
		two := one.offset(forward, 0)
		if from.Rank == startRank && b.at(two) == nil {
			dst = append(dst, newMove(b, from, two))
		}
	}

	for _, side := range [2]int{-1, 1} {
		to := from.offset(forward, side)
		if !to.Valid() {
			continue
		}
		if target := b.at(to); target != nil {
			if target.color != p.color {
				dst = append(dst, newMove(b, from, to))
			}
		} else if b.enPassantTarget(from, to.File) {
			dst = append(dst, newMove(b, from, to))
		}
	}
	return dst
}

// enPassantTarget reports whether the pawn on from may capture en passant
// towards file. The previous ply must have been a two-square pawn advance
// that landed right beside it.
func (b *Board) enPassantTarget(from Square, file int) bool {
	last := b.LastMove()
	if last == nil || last.piece.typ != Pawn || last.color == b.turn {
		return false
	}
	if abs(last.to.Rank-last.from.Rank) != 2 {
		return false
	}
	return last.to.Rank == from.Rank && last.to.File == file
}

// castlingMoves appends the castling moves of an unmoved king. The king may
// not be in check and may not pass through or land on an attacked square.
func (b *Board) castlingMoves(from Square, king *Piece, dst []*Move) []*Move {
	if king.moveCount != 0 || from.File != 4 || b.SquareAttacked(from, king.color) {
		return dst
	}
	for _, side := range [2]CastlingSide{QueenSide, KingSide} {
		corner, _ := rookSquares(side, from.Rank)
		rook := b.at(corner)
		if rook == nil || rook.typ != Rook || rook.color != king.color || rook.moveCount != 0 {
			continue
		}

		step := 1
		if corner.File < from.File {
			step = -1
		}
		clear := true
		for file := from.File + step; file != corner.File; file += step {
			if b.squares[from.Rank][file] != nil {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}

		transit := Sq(from.Rank, from.File+step)
		to := Sq(from.Rank, from.File+2*step)
		if b.SquareAttacked(transit, king.color) || b.SquareAttacked(to, king.color) {
			continue
		}
		m := newMove(b, from, to)
		m.castling = side
		dst = append(dst, m)
	}
	return dst
}

// markAmbiguities flags moves whose algebraic form needs the origin file,
// rank or both to tell apart like pieces heading for the same square.
func markAmbiguities(moves []*Move) {
	for _, m := range moves {
		if m.piece.typ == Pawn || m.castling != NoCastling {
			continue
		}
		ambiguous, sameFile, sameRank := false, false, false
		for _, o := range moves {
			if o == m || o.to != m.to || o.piece.typ != m.piece.typ {
				continue
			}
			ambiguous = true
			sameFile = sameFile || o.from.File == m.from.File
			sameRank = sameRank || o.from.Rank == m.from.Rank
		}
		if !ambiguous {
			continue
		}
		switch {
		case !sameFile:
			m.disambiguateFile = true
		case !sameRank:
			m.disambiguateRank = true
		default:
			m.disambiguateFile = true
			m.disambiguateRank = true
		}
	}
}

// canMove reports whether the side to move has at least one legal move.
func (b *Board) canMove() bool {
	for _, m := range b.pseudoMoves(make([]*Move, 0, 48)) {
		if !b.leavesKingAttacked(m) {
			return true
		}
	}
	return false
}

// classify derives the game state of the current position for the side to
// move.
func (b *Board) classify() GameState {
	inCheck := b.InCheck(b.turn)
	if !b.canMove() {
		switch {
		case inCheck && b.turn == White:
			return WhiteCheckmated
		case inCheck:
			return BlackCheckmated
		case b.turn == White:
			return WhiteStalemated
		default:
			return BlackStalemated
		}
	}
	switch {
	case inCheck && b.turn == White:
		return WhiteInCheck
	case inCheck:
		return BlackInCheck
	}
	return InProgress
}

// Perft counts the leaf positions reachable in exactly depth plies.
func (b *Board) Perft(depth int) int {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		b.Apply(m)
		nodes += b.Perft(depth - 1)
		b.Undo()
	}
	return nodes
}
