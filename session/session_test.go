package session

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animats/chess"
	"github.com/animats/chess/search"
)

type recorder struct {
	NopListener

	mu       sync.Mutex
	progress []search.Progress
	messages []string

	moves     chan MoveInfo
	suggested chan MoveInfo
	finished  chan Summary
}

func newRecorder() *recorder {
	return &recorder{
		moves:     make(chan MoveInfo, 16),
		suggested: make(chan MoveInfo, 16),
		finished:  make(chan Summary, 16),
	}
}

func (r *recorder) Thinking(p search.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, p)
}

func (r *recorder) Message(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recorder) MoveMade(m MoveInfo)      { r.moves <- m }
func (r *recorder) SuggestedMove(m MoveInfo) { r.suggested <- m }
func (r *recorder) Finished(s Summary)       { r.finished <- s }

func (r *recorder) progressCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.progress)
}

func wait[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	var zero T
	return zero
}

func newSession(t *testing.T, rec *recorder, options ...Option) *Session {
	t.Helper()
	s := New(rec, append([]Option{WithDepth(2, 2), WithSeed(1)}, options...)...)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSubmitAndThink(t *testing.T) {
	rec := newRecorder()
	s := newSession(t, rec)

	info, err := s.Submit("e2e4")
	require.NoError(t, err)
	assert.Equal(t, "e4", info.Algebraic)
	assert.Equal(t, chess.White, info.Color)
	assert.Equal(t, 1, info.Number)
	assert.Equal(t, info, wait(t, rec.moves))

	require.NoError(t, s.Think())
	summary := wait(t, rec.finished)
	require.NotNil(t, summary.Move)
	assert.False(t, summary.Interrupted)
	assert.False(t, summary.Hint)
	assert.Positive(t, summary.Nodes)
	assert.True(t, strings.HasPrefix(summary.Line, "1... "), summary.Line)

	reply := wait(t, rec.moves)
	assert.Equal(t, *summary.Move, reply)
	assert.Equal(t, chess.Black, reply.Color)

	history, err := s.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, reply.Command, history[1].Command)

	snap, err := s.Board()
	require.NoError(t, err)
	assert.Equal(t, chess.White, snap.Turn)
	assert.Equal(t, 2, snap.Ply)
	assert.Equal(t, chess.InProgress, snap.State)
}

func TestSubmitRejected(t *testing.T) {
	s := newSession(t, newRecorder())

	_, err := s.Submit("e2e5")
	assert.ErrorIs(t, err, chess.ErrIllegalMove)
	_, err = s.Submit("pawn to e4")
	assert.ErrorIs(t, err, chess.ErrInvalidCommand)

	history, err := s.History()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHintDoesNotMove(t *testing.T) {
	rec := newRecorder()
	s := newSession(t, rec)

	require.NoError(t, s.Hint())
	summary := wait(t, rec.finished)
	assert.True(t, summary.Hint)
	hint := wait(t, rec.suggested)
	assert.Equal(t, chess.White, hint.Color)

	snap, err := s.Board()
	require.NoError(t, err)
	assert.Equal(t, chess.StartFEN, snap.FEN)

	legal, err := s.LegalMoves()
	require.NoError(t, err)
	assert.Len(t, legal, 20)
	var found bool
	for _, m := range legal {
		found = found || m.Command == hint.Command
	}
	assert.True(t, found, hint.Command)
}

func TestCommandsRejectedWhileThinking(t *testing.T) {
	rec := newRecorder()
	s := newSession(t, rec, WithDepth(7, 8))

	require.NoError(t, s.Think())
	assert.True(t, s.Thinking())
	assert.ErrorIs(t, s.Think(), ErrThinking)
	assert.ErrorIs(t, s.Hint(), ErrThinking)
	_, err := s.Submit("e2e4")
	assert.ErrorIs(t, err, ErrThinking)
	_, err = s.LegalMoves()
	assert.ErrorIs(t, err, ErrThinking)
	assert.ErrorIs(t, s.Reset(), ErrThinking)
	s.SetRandom(true)
	s.SetReport(search.ReportOff)

	assert.True(t, s.Cancel())
	summary := wait(t, rec.finished)
	assert.True(t, summary.Interrupted)
	assert.Nil(t, summary.Move)
	assert.False(t, s.Thinking())
	assert.False(t, s.Cancel())

	history, err := s.History()
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, rec.moves)
}

func TestEngineMates(t *testing.T) {
	opt, err := chess.FEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)
	rec := newRecorder()
	s := newSession(t, rec, WithGameOptions(opt))

	require.NoError(t, s.Think())
	wait(t, rec.finished)
	m := wait(t, rec.moves)
	assert.Equal(t, "a1a8", m.Command)
	assert.Equal(t, "Ra8#", m.Algebraic)
	assert.Equal(t, chess.BlackCheckmated, m.State)

	assert.ErrorIs(t, s.Think(), ErrGameOver)
	assert.False(t, s.Thinking())
	_, err = s.Submit("g8h8")
	assert.ErrorIs(t, err, ErrGameOver)

	sheet, err := s.ScoreSheet()
	require.NoError(t, err)
	assert.Equal(t, "1. Ra8# 1-0", sheet)
}

func TestProgressReports(t *testing.T) {
	rec := newRecorder()
	s := newSession(t, rec, WithReport(search.ReportNormal))

	require.NoError(t, s.Think())
	wait(t, rec.finished)
	wait(t, rec.moves)
	// both iterations report all twenty root moves
	assert.Equal(t, 40, rec.progressCount())

	s.SetReport(search.ReportOff)
	require.NoError(t, s.Think())
	wait(t, rec.finished)
	wait(t, rec.moves)
	assert.Equal(t, 40, rec.progressCount())
}

func TestTakeBackAndReset(t *testing.T) {
	rec := newRecorder()
	s := newSession(t, rec)

	_, err := s.Submit("e2e4")
	require.NoError(t, err)
	m, err := s.TakeBack()
	require.NoError(t, err)
	assert.Equal(t, "e4", m.Algebraic)
	_, err = s.TakeBack()
	assert.ErrorIs(t, err, chess.ErrNoHistory)

	_, err = s.Submit("d2d4")
	require.NoError(t, err)
	require.NoError(t, s.Reset())
	snap, err := s.Board()
	require.NoError(t, err)
	assert.Equal(t, chess.StartFEN, snap.FEN)
	assert.Equal(t, snap.WhiteMaterial, snap.BlackMaterial)
	assert.Equal(t, 3950, snap.WhiteMaterial)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"took back e4", "new game"}, rec.messages)
}

func TestWriteSVG(t *testing.T) {
	s := newSession(t, newRecorder())
	_, err := s.Submit("e2e4")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.WriteSVG(&buf))
	assert.Contains(t, buf.String(), "<svg")
	assert.Equal(t, 2, strings.Count(buf.String(), "fill:#cdd26a"))
}

func TestClose(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Close(), ErrClosed)
	assert.ErrorIs(t, s.Think(), ErrClosed)
	_, err := s.Submit("e2e4")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Board()
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, s.Cancel())
}

func TestCloseInterruptsSearch(t *testing.T) {
	rec := newRecorder()
	s := New(rec, WithDepth(7, 8))

	require.NoError(t, s.Think())
	require.NoError(t, s.Close())
	summary := wait(t, rec.finished)
	assert.True(t, summary.Interrupted)
	assert.False(t, s.Thinking())
}
