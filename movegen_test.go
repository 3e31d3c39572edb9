package chess

import (
	"math/rand"
	"sort"
	"testing"

	notnil "github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []int
	}{
		{name: "start", fen: StartFEN, nodes: []int{20, 400, 8902}},
		{
			name:  "kiwipete",
			fen:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			nodes: []int{48, 2039},
		},
		{name: "endgame", fen: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", nodes: []int{14, 191, 2812}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			for i, want := range tt.nodes {
				assert.Equal(t, want, b.Perft(i+1), "depth %d", i+1)
			}
			assert.Equal(t, tt.fen, b.FEN())
		})
	}
}

func TestLegalMovesNeverExposeKing(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b := NewBoard()
	for ply := 0; ply < 200; ply++ {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			break
		}
		for _, m := range moves {
			b.Apply(m)
			require.False(t, b.InCheck(m.Color()), "%s leaves the king attacked in\n%s", m, b)
			b.Undo()
		}
		b.Apply(moves[rng.Intn(len(moves))])
	}
}

func TestEnPassant(t *testing.T) {
	g := NewGame()
	for _, cmd := range []string{"e2e4", "a7a6", "e4e5", "d7d5"} {
		_, err := g.PushMove(cmd)
		require.NoError(t, err)
	}
	ep := g.LegalMove("e5d6")
	require.NotNil(t, ep, "en passant must follow the double push")
	assert.True(t, ep.IsEnPassant())
	assert.Equal(t, Pawn, ep.Captured())

	for _, cmd := range []string{"h2h3", "h7h6"} {
		_, err := g.PushMove(cmd)
		require.NoError(t, err)
	}
	assert.Nil(t, g.LegalMove("e5d6"), "en passant expires after one ply")

	g = NewGame()
	for _, cmd := range []string{"e2e4", "d7d6", "e4e5", "d6d5"} {
		_, err := g.PushMove(cmd)
		require.NoError(t, err)
	}
	assert.Nil(t, g.LegalMove("e5d6"), "two single steps do not allow en passant")
}

func TestEnPassantFromFEN(t *testing.T) {
	b := mustBoard(t, "rnbqkb1r/ppp1pppp/5n2/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	assert.Contains(t, commands(b.LegalMoves()), "e5d6")

	b = mustBoard(t, "rnbqkb1r/ppp1pppp/5n2/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3")
	assert.NotContains(t, commands(b.LegalMoves()), "e5d6")
}

func TestEnPassantDiscoveredCheck(t *testing.T) {
	// Taking en passant would open the fifth rank to the rook.
	b := mustBoard(t, "8/8/8/K2pP2r/8/8/8/7k w - d6 0 1")
	assert.NotContains(t, commands(b.LegalMoves()), "e5d6")
}

func TestCastlingRefusal(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		kingSide  bool
		queenSide bool
	}{
		{name: "both sides", fen: "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", kingSide: true, queenSide: true},
		{name: "king moved", fen: "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1"},
		{name: "king side rook moved", fen: "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", queenSide: true},
		{name: "squares occupied", fen: "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1"},
		{name: "king in check", fen: "r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1"},
		{name: "passes through check", fen: "r3k2r/8/8/8/5r2/8/8/R3K2R w KQkq - 0 1", queenSide: true},
		{name: "lands in check", fen: "r3k2r/8/8/8/2r5/8/8/R3K2R w KQkq - 0 1", kingSide: true},
		{name: "rook path attacked", fen: "r3k2r/8/8/8/1r6/8/8/R3K2R w KQkq - 0 1", kingSide: true, queenSide: true},
		{name: "corner holds a knight", fen: "r3k2r/8/8/8/8/8/8/N3K2R w KQkq - 0 1", kingSide: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := commands(mustBoard(t, tt.fen).LegalMoves())
			assert.Equal(t, tt.kingSide, contains(cmds, "e1g1"), "king side")
			assert.Equal(t, tt.queenSide, contains(cmds, "e1c1"), "queen side")
		})
	}
}

func TestCastlingAfterKingReturns(t *testing.T) {
	opt, err := FEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	g := NewGame(opt)
	for _, cmd := range []string{"e1f1", "a8a7", "f1e1", "a7a8"} {
		_, err := g.PushMove(cmd)
		require.NoError(t, err)
	}
	assert.Nil(t, g.LegalMove("e1g1"))
	assert.Nil(t, g.LegalMove("e1c1"))

	_, err = g.PushMove("h1h2")
	require.NoError(t, err)
	assert.NotNil(t, g.LegalMove("e8g8"))
	assert.Nil(t, g.LegalMove("e8c8"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		fen   string
		state GameState
	}{
		{fen: StartFEN, state: InProgress},
		{fen: "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", state: WhiteCheckmated},
		{fen: "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", state: BlackStalemated},
		{fen: "4k3/4R3/8/8/8/8/8/4K3 b - - 0 1", state: BlackInCheck},
		{fen: "4k3/8/8/8/8/8/4r3/K7 w - - 0 1", state: InProgress},
		{fen: "4k3/8/8/8/8/8/1r6/Kr6 w - - 0 1", state: WhiteCheckmated},
		{fen: "k7/8/1Q6/8/8/8/8/4K3 b - - 0 1", state: BlackStalemated},
	}
	for _, tt := range tests {
		b := mustBoard(t, tt.fen)
		assert.Equal(t, tt.state, b.State(), tt.fen)
		assert.Equal(t, tt.state.IsOver(), len(b.LegalMoves()) == 0, tt.fen)
	}
}

func TestDisambiguation(t *testing.T) {
	tests := []struct {
		fen  string
		want []string
	}{
		{fen: "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", want: []string{"Nbd2", "Nfd2"}},
		{fen: "4k3/R7/8/8/8/8/8/R3K3 w - - 0 1", want: []string{"R1a4", "R7a4"}},
		{fen: "4k3/8/8/8/8/Q7/8/Q1Q1K3 w - - 0 1", want: []string{"Qa1b2", "Q3b2", "Qcb2"}},
	}
	for _, tt := range tests {
		b := mustBoard(t, tt.fen)
		var san []string
		for _, m := range b.LegalMoves() {
			if s := m.Algebraic(); contains(tt.want, s) {
				san = append(san, s)
			}
		}
		assert.ElementsMatch(t, tt.want, san, tt.fen)
	}
}

// TestAgainstReference plays random games and compares every legal move
// list with an independent move generator. Under-promotions are left out
// since pawns always promote to a queen here.
func TestAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for game := 0; game < 20; game++ {
		b := NewBoard()
		ref := notnil.NewGame()
		for ply := 0; ply < 120 && ref.Outcome() == notnil.NoOutcome; ply++ {
			ours := commands(b.LegalMoves())
			sort.Strings(ours)

			theirs := []string{}
			index := map[string]*notnil.Move{}
			for _, m := range ref.ValidMoves() {
				if m.Promo() != notnil.NoPieceType && m.Promo() != notnil.Queen {
					continue
				}
				theirs = append(theirs, m.String())
				index[m.String()] = m
			}
			sort.Strings(theirs)
			require.Equal(t, theirs, ours, "position %s", b.FEN())
			if len(ours) == 0 {
				break
			}

			cmd := ours[rng.Intn(len(ours))]
			for _, m := range b.LegalMoves() {
				if m.Command() == cmd {
					b.Apply(m)
					break
				}
			}
			require.NoError(t, ref.Move(index[cmd]))
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
