package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/animats/chess"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{name: "start", fen: chess.StartFEN, want: 0},
		// White holds e4: one centre square.
		{name: "centre", fen: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", want: 50},
		// Doubled and isolated a-pawns, both kings moved without castling.
		{name: "pawn structure", fen: "4k3/8/8/8/8/P7/P7/4K3 w - - 0 1", want: 200 - 25 - 25 - 50 + 50},
		// Black's knight has left home, White's has not.
		{name: "development", fen: "4k3/8/5n2/8/8/8/8/4K1N1 w - - 0 1", want: 300 - 300 - 25 - 50 + 50},
	}
	for _, tt := range tests {
		b, err := chess.NewBoardFromFEN(tt.fen)
		if !assert.NoError(t, err, tt.name) {
			continue
		}
		assert.Equal(t, tt.want, Evaluate(b), tt.name)
	}
}

func TestEvaluateCastling(t *testing.T) {
	g := chess.NewGame()
	for _, cmd := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "f8c5"} {
		_, err := g.PushMove(cmd)
		assert.NoError(t, err)
	}
	before := Evaluate(g.Board())
	_, err := g.PushMove("e1g1")
	assert.NoError(t, err)
	assert.True(t, g.Board().Castled(chess.White))
	assert.Equal(t, before+Castled, Evaluate(g.Board()))
}

func TestEvaluateOpeningThreshold(t *testing.T) {
	b, err := chess.NewBoardFromFEN("4k1n1/8/8/8/8/8/8/4K3 w - - 0 6")
	assert.NoError(t, err)
	// Ten plies in, the unmoved knight is no longer penalised.
	assert.Equal(t, -300-50+50, Evaluate(b))
}
