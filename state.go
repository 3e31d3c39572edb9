package chess

// GameState is the tag a move leaves behind once it has been applied.
// The order matters: every state after Unknown ends or suspends the game.
type GameState uint8

const (
	// InProgress indicates that the side to move is neither checked nor stuck.
	InProgress GameState = iota
	// WhiteInCheck indicates that white is to move and in check.
	WhiteInCheck
	// BlackInCheck indicates that black is to move and in check.
	BlackInCheck
	// Unknown is the tag of a move that has not been applied yet.
	Unknown
	// Exiting marks a session that is shutting down.
	Exiting
	// BlackCheckmated indicates that black has been checkmated.
	BlackCheckmated
	// WhiteCheckmated indicates that white has been checkmated.
	WhiteCheckmated
	// BlackStalemated indicates that black is to move and has no legal move.
	BlackStalemated
	// WhiteStalemated indicates that white is to move and has no legal move.
	WhiteStalemated
	// DrawByRepetition is reserved; nothing produces it.
	DrawByRepetition
	// FiftyMoveDraw is reserved; nothing produces it.
	FiftyMoveDraw
	// WhiteResigned is reserved; nothing produces it.
	WhiteResigned
	// BlackResigned is reserved; nothing produces it.
	BlackResigned
)

var gameStateNames = [...]string{
	InProgress:       "in progress",
	WhiteInCheck:     "white in check",
	BlackInCheck:     "black in check",
	Unknown:          "unknown",
	Exiting:          "exiting",
	BlackCheckmated:  "black checkmated",
	WhiteCheckmated:  "white checkmated",
	BlackStalemated:  "black stalemated",
	WhiteStalemated:  "white stalemated",
	DrawByRepetition: "draw by repetition",
	FiftyMoveDraw:    "fifty move draw",
	WhiteResigned:    "white resigned",
	BlackResigned:    "black resigned",
}

// String implements the fmt.Stringer interface.
func (s GameState) String() string {
	if int(s) < len(gameStateNames) {
		return gameStateNames[s]
	}
	return "invalid"
}

// IsCheck reports whether the side to move is in check but can still move.
func (s GameState) IsCheck() bool {
	return s == WhiteInCheck || s == BlackInCheck
}

// IsCheckmate reports whether either side has been checkmated.
func (s GameState) IsCheckmate() bool {
	return s == WhiteCheckmated || s == BlackCheckmated
}

// IsStalemate reports whether either side has been stalemated.
func (s GameState) IsStalemate() bool {
	return s == WhiteStalemated || s == BlackStalemated
}

// IsOver reports whether no further moves may be played.
func (s GameState) IsOver() bool {
	return s > Unknown
}

// A Outcome is the result of a game.
type Outcome string

const (
	// NoOutcome indicates that a game is in progress or ended without a result.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Outcome = "0-1"
	// Draw indicates that game was a draw.
	Draw Outcome = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// A Method is the method that generated the outcome.
type Method uint8

const (
	// NoMethod indicates that an outcome hasn't occurred or that the method can't be determined.
	NoMethod Method = iota
	// Checkmate indicates that the game was won checkmate.
	Checkmate
	// Resignation indicates that the game was won by resignation.
	Resignation
	// Stalemate indicates that the game was drawn by stalemate.
	Stalemate
	// Repetition indicates that the game was drawn by repetition.
	Repetition
	// FiftyMoveRule indicates that the game was drawn by the fifty move rule.
	FiftyMoveRule
)

// Result maps the state onto a PGN style outcome and the method behind it.
func (s GameState) Result() (Outcome, Method) {
	switch s {
	case BlackCheckmated:
		return WhiteWon, Checkmate
	case WhiteCheckmated:
		return BlackWon, Checkmate
	case BlackStalemated, WhiteStalemated:
		return Draw, Stalemate
	case DrawByRepetition:
		return Draw, Repetition
	case FiftyMoveDraw:
		return Draw, FiftyMoveRule
	case WhiteResigned:
		return BlackWon, Resignation
	case BlackResigned:
		return WhiteWon, Resignation
	}
	return NoOutcome, NoMethod
}
