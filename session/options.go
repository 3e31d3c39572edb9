package session

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/animats/chess"
	"github.com/animats/chess/search"
)

// Option configures a Session.
type Option func(*Session)

// WithDepth sets the look-ahead of the engine and the bound of its capture
// extension.
func WithDepth(depth, maxDepth int) Option {
	return func(s *Session) {
		s.depth, s.maxDepth = depth, maxDepth
	}
}

// WithLogger sets the logger. Sessions log nothing by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithRandom turns shuffling of the root moves on or off.
func WithRandom(on bool) Option {
	return func(s *Session) {
		s.random.Store(on)
	}
}

// WithSeed seeds the generator used to shuffle the root moves, making the
// engine's choice among equal moves repeatable.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithReport sets how much search progress reaches Listener.Thinking.
func WithReport(level search.ReportLevel) Option {
	return func(s *Session) {
		s.report.Store(int32(level))
	}
}

// WithGameOptions passes options such as chess.FEN to the game the
// session plays.
func WithGameOptions(options ...func(*chess.Game)) Option {
	return func(s *Session) {
		s.gameOptions = append(s.gameOptions, options...)
	}
}
