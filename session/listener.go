package session

import (
	"time"

	"github.com/animats/chess"
	"github.com/animats/chess/search"
)

// MoveInfo describes a played or suggested move.
type MoveInfo struct {
	Command     string          // coordinate form, e.g. "e7e8q"
	Algebraic   string          // standard algebraic form, e.g. "e8=Q+"
	Description string          // long form, e.g. "e8=Q+ (white pawn on e7 to e8)"
	Color       chess.Color     // side that made the move
	Number      int             // full move number
	State       chess.GameState // state of the position the move leads to
}

func newMoveInfo(m *chess.Move) MoveInfo {
	return MoveInfo{
		Command:     m.Command(),
		Algebraic:   m.Algebraic(),
		Description: m.Describe(),
		Color:       m.Color(),
		Number:      m.MoveNumber(),
		State:       m.State(),
	}
}

// Summary is delivered when a search ends, whether or not it found a move.
type Summary struct {
	Elapsed        time.Duration
	Nodes          int
	NodesPerSecond float64
	Evaluation     int
	Line           string    // principal variation
	Move           *MoveInfo // nil when the search was cancelled
	Hint           bool
	Interrupted    bool
}

// BoardSnapshot is a copy of the position taken on the worker.
type BoardSnapshot struct {
	FEN           string
	Diagram       string
	Turn          chess.Color
	State         chess.GameState
	WhiteMaterial int
	BlackMaterial int
	Ply           int
}

// Listener receives the session's callbacks. All methods are called on the
// session's worker goroutine, so they must not call back into the Session
// synchronously.
type Listener interface {
	// Thinking reports a root move that has just been searched.
	Thinking(search.Progress)
	// MoveMade reports a move applied to the game, by Submit or Think.
	MoveMade(MoveInfo)
	// SuggestedMove reports the move found by Hint.
	SuggestedMove(MoveInfo)
	// Finished reports the end of a search. It precedes MoveMade or
	// SuggestedMove.
	Finished(Summary)
	// Message carries free text for the user.
	Message(string)
}

// NopListener ignores every callback. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) Thinking(search.Progress) {}
func (NopListener) MoveMade(MoveInfo)        {}
func (NopListener) SuggestedMove(MoveInfo)   {}
func (NopListener) Finished(Summary)         {}
func (NopListener) Message(string)           {}
