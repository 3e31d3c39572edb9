/*
Package session plays a chess game against the engine. A Session owns the
game and runs every command on one long-lived worker goroutine, so the
board has a single writer even while the engine is thinking.

Example usage:

	s := session.New(listener, session.WithDepth(4, 5))
	defer s.Close()

	s.Submit("e2e4")
	s.Think() // the reply arrives through listener.MoveMade
*/
package session

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/animats/chess"
	"github.com/animats/chess/image"
	"github.com/animats/chess/search"
)

var (
	// ErrThinking is returned for commands issued while a search runs.
	ErrThinking = errors.New("session: engine is thinking")
	// ErrClosed is returned for commands issued after Close.
	ErrClosed = errors.New("session: closed")
	// ErrGameOver is returned when the game has already ended.
	ErrGameOver = errors.New("session: game is over")
)

var markColor = color.RGBA{R: 205, G: 210, B: 106, A: 255}

type request struct {
	exec func()
	done chan struct{}
}

// A Session is safe for concurrent use.
type Session struct {
	listener    Listener
	logger      zerolog.Logger
	depth       int
	maxDepth    int
	rng         *rand.Rand
	gameOptions []func(*chess.Game)
	random      atomic.Bool
	report      atomic.Int32

	// Owned by the worker.
	game     *chess.Game
	searcher *search.Searcher

	requests chan request
	ctx      context.Context
	shutdown context.CancelFunc
	done     chan struct{}

	thinking atomic.Bool
	mu       sync.Mutex
	cancel   context.CancelFunc // of the running search
}

// New starts a session in the standard starting position, or the position
// set through WithGameOptions. A nil listener discards all callbacks.
func New(listener Listener, options ...Option) *Session {
	if listener == nil {
		listener = NopListener{}
	}
	defaults := search.DefaultOptions()
	s := &Session{
		listener: listener,
		logger:   zerolog.Nop(),
		depth:    defaults.Depth,
		maxDepth: defaults.MaxDepth,
		requests: make(chan request),
		done:     make(chan struct{}),
	}
	s.report.Store(int32(defaults.Report))
	for _, opt := range options {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.game = chess.NewGame(s.gameOptions...)
	s.searcher = search.New(s.game.Board(), s.searchOptions())
	s.ctx, s.shutdown = context.WithCancel(context.Background())

	go s.run()
	return s
}

func (s *Session) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Debug().Msg("worker exiting")
			return
		case req := <-s.requests:
			req.exec()
			close(req.done)
		}
	}
}

// send hands fn to the worker and returns once the worker has taken it.
func (s *Session) send(fn func()) (chan struct{}, error) {
	req := request{exec: fn, done: make(chan struct{})}
	select {
	case s.requests <- req:
		return req.done, nil
	case <-s.ctx.Done():
		return nil, ErrClosed
	}
}

// command runs fn on the worker and waits for it. fn is skipped when a
// search was started before the worker got to it.
func (s *Session) command(fn func()) error {
	if s.ctx.Err() != nil {
		return ErrClosed
	}
	if s.thinking.Load() {
		return ErrThinking
	}
	var busy bool
	done, err := s.send(func() {
		if busy = s.thinking.Load(); !busy {
			fn()
		}
	})
	if err != nil {
		return err
	}
	<-done
	if busy {
		return ErrThinking
	}
	return nil
}

func (s *Session) searchOptions() search.Options {
	opts := search.DefaultOptions()
	opts.Depth, opts.MaxDepth = s.depth, s.maxDepth
	opts.Shuffle = s.random.Load()
	opts.Rand = s.rng
	opts.Report = search.ReportLevel(s.report.Load())
	opts.Progress = s.listener.Thinking
	opts.Logger = s.logger
	return opts
}

// Submit plays a move given in coordinate form, e.g. "e2e4" or "e7e8q".
// Text that does not match a legal move is rejected with
// chess.ErrInvalidCommand or chess.ErrIllegalMove and changes nothing.
func (s *Session) Submit(command string) (MoveInfo, error) {
	var (
		info MoveInfo
		err  error
	)
	if cerr := s.command(func() {
		if s.game.State().IsOver() {
			err = ErrGameOver
			return
		}
		var m *chess.Move
		if m, err = s.game.PushMove(command); err != nil {
			return
		}
		info = newMoveInfo(m)
		s.logger.Info().
			Str("move", info.Algebraic).
			Str("state", info.State.String()).
			Msg("move submitted")
		s.listener.MoveMade(info)
	}); cerr != nil {
		return MoveInfo{}, cerr
	}
	if err != nil {
		s.logger.Debug().Err(err).Str("command", command).Msg("move rejected")
	}
	return info, err
}

// TakeBack undoes the last move of the game.
func (s *Session) TakeBack() (MoveInfo, error) {
	var (
		info MoveInfo
		err  error
	)
	if cerr := s.command(func() {
		var m *chess.Move
		if m, err = s.game.UndoMove(); err == nil {
			info = newMoveInfo(m)
			s.listener.Message(fmt.Sprintf("took back %s", info.Algebraic))
		}
	}); cerr != nil {
		return MoveInfo{}, cerr
	}
	return info, err
}

// Think starts a search for the side to move and plays the move it finds.
// It returns at once; the outcome arrives through Finished and MoveMade.
func (s *Session) Think() error {
	return s.start(false)
}

// Hint starts a search like Think but only reports the move it finds
// through SuggestedMove.
func (s *Session) Hint() error {
	return s.start(true)
}

func (s *Session) start(hint bool) error {
	if s.ctx.Err() != nil {
		return ErrClosed
	}
	if !s.thinking.CompareAndSwap(false, true) {
		return ErrThinking
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	started := make(chan error, 1)
	_, err := s.send(func() {
		if s.game.State().IsOver() {
			s.finish()
			started <- ErrGameOver
			return
		}
		started <- nil
		s.search(ctx, hint)
	})
	if err != nil {
		s.finish()
		return err
	}
	return <-started
}

// finish ends the thinking phase.
func (s *Session) finish() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.thinking.Store(false)
}

func (s *Session) search(ctx context.Context, hint bool) {
	opts := s.searchOptions()
	s.searcher.SetOptions(opts)
	s.logger.Info().
		Int("depth", opts.Depth).
		Int("max_depth", opts.MaxDepth).
		Bool("hint", hint).
		Bool("shuffle", opts.Shuffle).
		Msg("search started")

	res, stats := s.searcher.Search(ctx, s.game.ValidMoves())
	summary := Summary{
		Elapsed:        stats.Elapsed,
		Nodes:          stats.Nodes,
		NodesPerSecond: stats.NodesPerSecond,
		Evaluation:     res.Evaluation,
		Line:           res.String(),
		Hint:           hint,
		Interrupted:    stats.Interrupted,
	}
	if res.Move == nil {
		s.finish()
		s.logger.Info().
			Bool("interrupted", stats.Interrupted).
			Int("nodes", stats.Nodes).
			Msg("search ended without a move")
		s.listener.Finished(summary)
		return
	}

	if !hint {
		if err := s.game.Move(res.Move); err != nil {
			panic(fmt.Sprintf("session: search chose %s: %v", res.Move.Command(), err))
		}
	}
	s.finish()

	info := newMoveInfo(res.Move)
	summary.Move = &info
	s.logger.Info().
		Str("move", info.Algebraic).
		Int("eval", res.Evaluation).
		Int("nodes", stats.Nodes).
		Float64("nps", stats.NodesPerSecond).
		Dur("elapsed", stats.Elapsed).
		Msg("search finished")
	s.listener.Finished(summary)
	if hint {
		s.listener.SuggestedMove(info)
	} else {
		s.listener.MoveMade(info)
	}
}

// Cancel interrupts the running search and reports whether there was one.
// The search still ends with a Finished callback.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return false
	}
	s.cancel()
	s.logger.Info().Msg("search cancelled")
	return true
}

// Thinking reports whether a search is running.
func (s *Session) Thinking() bool {
	return s.thinking.Load()
}

// Reset starts a new game from the standard starting position.
func (s *Session) Reset() error {
	return s.command(func() {
		s.game.Reset()
		s.logger.Info().Msg("new game")
		s.listener.Message("new game")
	})
}

// SetRandom turns shuffling of the root moves on or off. It takes effect
// with the next search.
func (s *Session) SetRandom(on bool) {
	s.random.Store(on)
	s.logger.Debug().Bool("random", on).Msg("shuffle changed")
}

// SetReport sets how much search progress reaches Listener.Thinking. It
// takes effect with the next search.
func (s *Session) SetReport(level search.ReportLevel) {
	s.report.Store(int32(level))
	s.logger.Debug().Stringer("level", level).Msg("report level changed")
}

// LegalMoves returns the legal moves of the current position.
func (s *Session) LegalMoves() ([]MoveInfo, error) {
	var moves []MoveInfo
	err := s.command(func() {
		for _, m := range s.game.ValidMoves() {
			moves = append(moves, newMoveInfo(m))
		}
	})
	return moves, err
}

// History returns the moves played so far.
func (s *Session) History() ([]MoveInfo, error) {
	var moves []MoveInfo
	err := s.command(func() {
		for _, m := range s.game.Moves() {
			moves = append(moves, newMoveInfo(m))
		}
	})
	return moves, err
}

// ScoreSheet returns the numbered move list and the result, e.g.
// "1. e4 e5 2. Nf3 *".
func (s *Session) ScoreSheet() (string, error) {
	var sheet string
	err := s.command(func() {
		sheet = s.game.String()
	})
	return sheet, err
}

// Board returns a snapshot of the current position.
func (s *Session) Board() (BoardSnapshot, error) {
	var snap BoardSnapshot
	err := s.command(func() {
		b := s.game.Board()
		snap = BoardSnapshot{
			FEN:           b.FEN(),
			Diagram:       b.String(),
			Turn:          b.Turn(),
			State:         b.State(),
			WhiteMaterial: b.Material(chess.White),
			BlackMaterial: b.Material(chess.Black),
			Ply:           b.Ply(),
		}
	})
	return snap, err
}

// WriteSVG renders the current position to w with the last move marked.
func (s *Session) WriteSVG(w io.Writer, opts ...image.Option) error {
	var err error
	if cerr := s.command(func() {
		b := s.game.Board()
		if last := b.LastMove(); last != nil {
			opts = append([]image.Option{image.MarkSquares(markColor, last.From(), last.To())}, opts...)
		}
		err = image.SVG(w, b, opts...)
	}); cerr != nil {
		return cerr
	}
	return err
}

// Close interrupts any search and stops the worker. Commands issued after
// Close return ErrClosed.
func (s *Session) Close() error {
	if s.ctx.Err() != nil {
		return ErrClosed
	}
	s.shutdown()
	<-s.done
	s.logger.Info().Msg("session closed")
	return nil
}
