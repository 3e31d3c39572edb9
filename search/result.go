package search

import "github.com/animats/chess"

// A Result is the outcome of searching one node. Move is the best move
// found there and Next is the result of the position it leads to, so the
// chain starting at the root spells out the principal variation.
type Result struct {
	Evaluation int
	Depth      int
	Move       *chess.Move
	Next       *Result
}

// Line returns the principal variation starting at r.
func (r *Result) Line() []*chess.Move {
	var line []*chess.Move
	for ; r != nil && r.Move != nil; r = r.Next {
		line = append(line, r.Move)
	}
	return line
}

// String renders the principal variation with move numbers.
func (r *Result) String() string {
	return chess.FormatLine(r.Line())
}
