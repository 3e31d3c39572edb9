// Package search picks moves for the side to move with a fail-hard
// alpha-beta minimax over a shared board. White maximises and Black
// minimises. Iterative deepening orders the root moves for the final,
// deepest pass, which may look one ply further along capture lines.
package search

import (
	"cmp"
	"context"
	"math/rand"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/animats/chess"
)

// Infinity is the score of a checkmate. Any search window lies strictly
// inside (-Infinity-1, Infinity+1).
const Infinity = 30000

// ReportLevel controls how much progress a search reports.
type ReportLevel int32

const (
	// ReportOff reports nothing.
	ReportOff ReportLevel = iota
	// ReportTerse reports every improvement at the root.
	ReportTerse
	// ReportNormal also reports root moves that did not improve.
	ReportNormal
	// ReportVerbose also logs the root ordering after each iteration.
	ReportVerbose
)

var reportLevelNames = [...]string{"off", "terse", "normal", "verbose"}

func (l ReportLevel) String() string {
	if l >= 0 && int(l) < len(reportLevelNames) {
		return reportLevelNames[l]
	}
	return "unknown"
}

// ParseReportLevel returns the level named s.
func ParseReportLevel(s string) (ReportLevel, bool) {
	for i, name := range reportLevelNames {
		if name == s {
			return ReportLevel(i), true
		}
	}
	return ReportOff, false
}

// Progress describes a root move that has just been searched.
type Progress struct {
	Move       *chess.Move
	Ply        int
	Evaluation int
	Elapsed    time.Duration
	Nodes      int
	Line       string
}

// Stats summarises a finished search.
type Stats struct {
	Elapsed        time.Duration
	Nodes          int
	NodesPerSecond float64
	Interrupted    bool
}

// Options configure a Searcher.
type Options struct {
	// Depth is the look-ahead in plies of the final iteration.
	Depth int
	// MaxDepth bounds the final iteration when it extends capture lines.
	MaxDepth int
	// Shuffle randomises the root order before the first iteration so
	// that equally scored moves vary from game to game.
	Shuffle bool
	Rand    *rand.Rand

	Report   ReportLevel
	Progress func(Progress)

	// Evaluate scores leaf positions. Nil means Evaluate.
	Evaluate Evaluator
	Logger   zerolog.Logger
}

// DefaultOptions returns a five ply search extended to six along
// captures.
func DefaultOptions() Options {
	return Options{
		Depth:    5,
		MaxDepth: 6,
		Report:   ReportTerse,
		Evaluate: Evaluate,
		Logger:   zerolog.Nop(),
	}
}

type rootMove struct {
	move   *chess.Move
	result *Result
}

// A Searcher searches positions of a single board. It applies and takes
// back moves on that board, so nothing else may touch the board while
// Search runs.
type Searcher struct {
	board *chess.Board
	opts  Options
	stop  atomic.Bool

	requested int
	maxDepth  int
	root      []rootMove
	nodes     int
	start     time.Time
}

// New returns a Searcher for b.
func New(b *chess.Board, opts Options) *Searcher {
	s := &Searcher{board: b}
	s.SetOptions(opts)
	return s
}

// SetOptions replaces the options used by the next search.
func (s *Searcher) SetOptions(opts Options) {
	if opts.Depth < 1 {
		opts.Depth = 1
	}
	if opts.MaxDepth < opts.Depth {
		opts.MaxDepth = opts.Depth
	}
	if opts.Evaluate == nil {
		opts.Evaluate = Evaluate
	}
	s.opts = opts
}

// Options returns the options in effect.
func (s *Searcher) Options() Options {
	return s.opts
}

// Stop interrupts a running search. It is safe to call from any goroutine.
func (s *Searcher) Stop() {
	s.stop.Store(true)
}

// Search looks for the best of the root moves, which must be the legal
// moves of the board's current position. The root slice is not modified.
// When ctx is cancelled or Stop is called the search unwinds at once and
// returns an empty result with Stats.Interrupted set.
func (s *Searcher) Search(ctx context.Context, root []*chess.Move) (*Result, Stats) {
	s.stop.Store(false)
	defer context.AfterFunc(ctx, s.Stop)()
	if ctx.Err() != nil {
		s.Stop()
	}

	s.nodes = 0
	s.start = time.Now()
	s.root = make([]rootMove, len(root))
	for i, m := range root {
		s.root[i] = rootMove{move: m}
	}
	if s.opts.Shuffle {
		rng := s.opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		rng.Shuffle(len(s.root), func(i, j int) {
			s.root[i], s.root[j] = s.root[j], s.root[i]
		})
	}

	// Shallow iterations only order the root; captures are not extended
	// until the final pass.
	var best *Result
	for depth := 1; depth < s.opts.Depth && !s.stop.Load(); depth++ {
		s.requested, s.maxDepth = depth, depth
		best = s.buildTree(depth, -Infinity-1, Infinity+1)
		s.sortRoot()
	}
	if !s.stop.Load() {
		s.requested, s.maxDepth = s.opts.Depth, s.opts.MaxDepth
		best = s.buildTree(s.opts.Depth, -Infinity-1, Infinity+1)
	}

	stats := Stats{Elapsed: time.Since(s.start), Nodes: s.nodes}
	if secs := stats.Elapsed.Seconds(); secs > 0 {
		stats.NodesPerSecond = float64(s.nodes) / secs
	} else {
		stats.NodesPerSecond = float64(s.nodes)
	}
	if s.stop.Load() {
		stats.Interrupted = true
		best = &Result{}
	}
	return best, stats
}

func (s *Searcher) buildTree(ply, alpha, beta int) *Result {
	if s.stop.Load() {
		return &Result{}
	}

	switch s.board.State() {
	case chess.BlackCheckmated:
		return &Result{Evaluation: Infinity}
	case chess.WhiteCheckmated:
		return &Result{Evaluation: -Infinity}
	case chess.WhiteStalemated, chess.BlackStalemated:
		return &Result{}
	}

	if (ply < 1 && !s.board.LastMove().IsCapture()) || ply <= s.requested-s.maxDepth {
		return &Result{Evaluation: s.opts.Evaluate(s.board)}
	}
	ply--

	atRoot := ply == s.requested-1
	var moves []*chess.Move
	if atRoot {
		moves = make([]*chess.Move, len(s.root))
		for i, r := range s.root {
			moves[i] = r.move
		}
	} else {
		moves = s.board.LegalMoves()
	}
	s.nodes += len(moves)

	white := s.board.Turn() == chess.White
	result := &Result{Evaluation: beta}
	if white {
		result.Evaluation = alpha
	}
	for i, m := range moves {
		s.board.Apply(m)
		child := s.buildTree(ply, alpha, beta)
		s.board.Undo()

		improved := false
		if white && child.Evaluation > alpha {
			alpha = child.Evaluation
			improved = true
		} else if !white && child.Evaluation < beta {
			beta = child.Evaluation
			improved = true
		}
		if improved {
			result.Evaluation = child.Evaluation
			result.Depth = child.Depth + 1
			result.Move = m
			result.Next = child
		}
		if atRoot {
			s.root[i].result = child
			s.report(m, child, result, improved)
		}

		if alpha >= beta {
			break
		}
	}
	return result
}

func (s *Searcher) report(m *chess.Move, child, node *Result, improved bool) {
	if s.opts.Progress == nil || s.opts.Report == ReportOff || s.stop.Load() {
		return
	}
	if !improved && s.opts.Report < ReportNormal {
		return
	}
	line := append([]*chess.Move{m}, child.Line()...)
	s.opts.Progress(Progress{
		Move:       m,
		Ply:        node.Depth,
		Evaluation: child.Evaluation,
		Elapsed:    time.Since(s.start),
		Nodes:      s.nodes,
		Line:       chess.FormatLine(line),
	})
}

// sortRoot orders the root moves best first for the side to move. Moves
// cut off before they were searched keep their previous score.
func (s *Searcher) sortRoot() {
	if s.stop.Load() {
		return
	}
	white := s.board.Turn() == chess.White
	slices.SortStableFunc(s.root, func(a, b rootMove) int {
		if white {
			return cmp.Compare(b.score(), a.score())
		}
		return cmp.Compare(a.score(), b.score())
	})

	if s.opts.Report >= ReportVerbose {
		for _, r := range s.root {
			s.opts.Logger.Debug().
				Int("depth", s.requested).
				Str("move", r.move.Algebraic()).
				Int("eval", r.score()).
				Msg("root ordering")
		}
	}
}

func (r rootMove) score() int {
	if r.result == nil {
		return 0
	}
	return r.result.Evaluation
}
