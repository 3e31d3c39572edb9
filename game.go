/*
Package chess provides the rules core of a chess engine: a mutable board
with exact move take-back, a fully legal move generator, coordinate and
algebraic move notation, FEN support and a Game wrapper that keeps the
legal-move list of the current position up to date.

Example usage:

	// Create new game
	game := NewGame()

	// Make moves
	game.PushMove("e2e4")
	game.PushMove("e7e5")

	// Check game status
	if game.Outcome() != NoOutcome {
		fmt.Printf("Game ended: %s by %s\n", game.Outcome(), game.Method())
	}
*/
package chess

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidCommand is returned for move text that is not in coordinate form.
	ErrInvalidCommand = errors.New("chess: invalid move command")
	// ErrIllegalMove is returned when a move is not in the legal-move list.
	ErrIllegalMove = errors.New("chess: illegal move")
	// ErrNoHistory is returned when taking back a move on an empty score sheet.
	ErrNoHistory = errors.New("chess: no move to take back")
)

// A Game represents a single chess game.
type Game struct {
	board   *Board  // Current position
	legal   []*Move // Legal moves of the current position
	outcome Outcome // Game result
	method  Method  // How the game ended
}

// FEN takes a string and returns a function that updates
// the game to reflect the FEN data. Since FEN doesn't encode
// prior moves, the move list will be empty. The returned
// function is designed to be used in the NewGame constructor.
// An error is returned if there is a problem parsing the FEN data.
func FEN(fen string) (func(*Game), error) {
	b, err := decodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.board = b
		g.refresh()
	}, nil
}

// NewGame returns a new game in the standard starting position.
// Optional functions can be provided to configure the initial game state.
//
// Example:
//
//	// Standard game
//	game := NewGame()
//
//	// Game from FEN
//	opt, _ := FEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
//	game := NewGame(opt)
func NewGame(options ...func(*Game)) *Game {
	game := &Game{
		board:   NewBoard(),
		outcome: NoOutcome,
		method:  NoMethod,
	}
	game.refresh()
	for _, f := range options {
		if f != nil {
			f(game)
		}
	}
	return game
}

// Board returns the board of the game. Callers must not apply or undo
// moves on it directly; use the Game methods so the legal-move list stays
// current.
func (g *Game) Board() *Board {
	return g.board
}

// ValidMoves returns all legal moves in the current position.
func (g *Game) ValidMoves() []*Move {
	return append([]*Move(nil), g.legal...)
}

// Moves returns the move history of the game.
func (g *Game) Moves() []*Move {
	return g.board.History()
}

// Outcome returns the game outcome.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Method returns the method in which the outcome occurred.
func (g *Game) Method() Method {
	return g.method
}

// State returns the game state tag of the current position.
func (g *Game) State() GameState {
	return g.board.State()
}

// FEN returns the FEN notation of the current position.
func (g *Game) FEN() string {
	return g.board.FEN()
}

// Reset returns the game to the standard starting position.
func (g *Game) Reset() {
	g.board.Reset()
	g.refresh()
}

// String implements the fmt.Stringer interface and returns the numbered
// move list followed by the result, e.g. "1. e4 e5 2. Nf3 *".
func (g *Game) String() string {
	var sb strings.Builder
	moves := g.board.History()
	if len(moves) > 0 {
		sb.WriteString(FormatLine(moves))
		sb.WriteString(" ")
	}
	sb.WriteString(g.Outcome().String())
	return sb.String()
}

// LegalMove returns the legal move whose coordinate form is command, or
// nil when there is none.
func (g *Game) LegalMove(command string) *Move {
	for _, m := range g.legal {
		if m.Command() == command {
			return m
		}
	}
	return nil
}

// PushMove plays a move given in coordinate form such as "e2e4" or
// "e7e8q". The move is accepted only when the text matches the coordinate
// form of a legal move exactly; otherwise the game is left untouched.
//
// Example:
//
//	m, err := game.PushMove("g1f3")
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(m.Algebraic()) // Nf3
func (g *Game) PushMove(command string) (*Move, error) {
	if !IsCommand(command) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommand, command)
	}
	m := g.LegalMove(command)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrIllegalMove, command)
	}
	g.play(m)
	return m, nil
}

// Move plays a move taken from ValidMoves. It returns ErrIllegalMove when
// move is not one of the current legal moves.
func (g *Game) Move(move *Move) error {
	if move == nil || !slices.Contains(g.legal, move) {
		return ErrIllegalMove
	}
	g.play(move)
	return nil
}

// UndoMove takes back the last move and returns it.
func (g *Game) UndoMove() (*Move, error) {
	if len(g.board.history) == 0 {
		return nil, ErrNoHistory
	}
	m := g.board.Undo()
	g.refresh()
	return m, nil
}

func (g *Game) play(m *Move) {
	g.board.Apply(m)
	g.refresh()
}

// refresh regenerates the legal-move list after any change to the board.
func (g *Game) refresh() {
	g.legal = g.board.LegalMoves()
	g.evaluatePositionStatus()
}

// evaluatePositionStatus updates the game's outcome and method based on the current position.
func (g *Game) evaluatePositionStatus() {
	g.outcome, g.method = g.board.State().Result()
}
