package chess

// attackTemplates project rays outward from a target square. The first
// piece met along a ray attacks the target when its type is one of the
// listed attackers for that template.
var attackTemplates = [...]struct {
	patterns  []Direction
	attackers [2]PieceType
}{
	{patterns: Rook.Patterns(), attackers: [2]PieceType{Rook, Queen}},
	{patterns: Knight.Patterns(), attackers: [2]PieceType{Knight, Knight}},
	{patterns: Bishop.Patterns(), attackers: [2]PieceType{Bishop, Queen}},
	{patterns: King.Patterns(), attackers: [2]PieceType{King, King}},
}

// SquareAttacked reports whether sq is attacked by the opponent of c.
// It is the single test behind check detection, castling transit and the
// checkmate and stalemate classification.
func (b *Board) SquareAttacked(sq Square, c Color) bool {
	for _, tpl := range attackTemplates {
		for _, d := range tpl.patterns {
			cur := sq
			for {
				cur = cur.offset(d.Rank, d.File)
				if !cur.Valid() {
					break
				}
				p := b.at(cur)
				if p != nil {
					if p.color != c && (p.typ == tpl.attackers[0] || p.typ == tpl.attackers[1]) {
						return true
					}
					break
				}
				if !d.Repeatable {
					break
				}
			}
		}
	}

	// pawns capture towards the side they advance to
	rank := sq.Rank + 1
	if c == Black {
		rank = sq.Rank - 1
	}
	for _, file := range [2]int{sq.File - 1, sq.File + 1} {
		if p := b.PieceAt(Sq(rank, file)); p != nil && p.typ == Pawn && p.color != c {
			return true
		}
	}
	return false
}

// InCheck reports whether the king of color c is attacked.
func (b *Board) InCheck(c Color) bool {
	return b.SquareAttacked(b.kings[c.index()], c)
}
