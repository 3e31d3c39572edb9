package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/animats/chess"
	"github.com/animats/chess/search"
	"github.com/animats/chess/session"
)

type console struct {
	session.NopListener
	logger   zerolog.Logger
	finished chan session.Summary
}

func (c *console) Thinking(p search.Progress) {
	c.logger.Info().
		Int("ply", p.Ply).
		Int("eval", p.Evaluation).
		Int("nodes", p.Nodes).
		Dur("elapsed", p.Elapsed).
		Msg(p.Line)
}

func (c *console) MoveMade(m session.MoveInfo) {
	fmt.Println(m.Description)
}

func (c *console) Finished(s session.Summary) {
	c.finished <- s
}

func (c *console) Message(msg string) {
	fmt.Println(msg)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		fen, profileMode, report, svgPath string
		perft, depth, maxDepth, plies     int
		random, verbose                   bool
	)
	flag.StringVar(&fen, "fen", chess.StartFEN, "Starting position.")
	flag.IntVar(&perft, "perft", 0, "Count leaf nodes up to this depth instead of playing.")
	flag.IntVar(&depth, "depth", 5, "Search depth in plies.")
	flag.IntVar(&maxDepth, "max", 6, "Search depth bound along capture lines.")
	flag.IntVar(&plies, "plies", 1, "Number of engine moves to play.")
	flag.BoolVar(&random, "random", false, "Shuffle equally scored moves.")
	flag.StringVar(&report, "report", "terse", "Progress report level: off, terse, normal or verbose.")
	flag.StringVar(&svgPath, "svg", "", "Write the final position as SVG to this file.")
	flag.StringVar(&profileMode, "profile", "", "Profile mode: cpu or mem.")
	flag.BoolVar(&verbose, "v", false, "Debug logging.")
	flag.Parse()

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		logger.Fatal().Str("profile", profileMode).Msg("unknown profile mode")
	}

	if perft > 0 {
		if err := runPerft(ctx, fen, perft); err != nil {
			logger.Error().Err(err).Msg("perft failed")
		}
		return
	}

	reportLevel, ok := search.ParseReportLevel(report)
	if !ok {
		logger.Fatal().Str("report", report).Msg("unknown report level")
	}
	gameOpt, err := chess.FEN(fen)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load position")
	}

	c := &console{logger: logger, finished: make(chan session.Summary, 1)}
	s := session.New(c,
		session.WithDepth(depth, maxDepth),
		session.WithRandom(random),
		session.WithReport(reportLevel),
		session.WithLogger(logger),
		session.WithGameOptions(gameOpt),
	)
	defer s.Close()

	play(ctx, s, c, plies)

	sheet, err := s.ScoreSheet()
	if err == nil {
		fmt.Println(sheet)
	}
	if svgPath != "" {
		if err := writeSVG(s, svgPath); err != nil {
			logger.Error().Err(err).Str("path", svgPath).Msg("could not write board")
		}
	}
}

func play(ctx context.Context, s *session.Session, c *console, plies int) {
	for i := 0; i < plies; i++ {
		if err := s.Think(); err != nil {
			if !errors.Is(err, session.ErrGameOver) {
				c.logger.Error().Err(err).Msg("engine did not start")
			}
			return
		}
		select {
		case sum := <-c.finished:
			if sum.Move == nil {
				return
			}
			c.logger.Info().
				Str("move", sum.Move.Algebraic).
				Int("eval", sum.Evaluation).
				Int("nodes", sum.Nodes).
				Float64("nps", sum.NodesPerSecond).
				Dur("elapsed", sum.Elapsed).
				Msg("searched")
		case <-ctx.Done():
			s.Cancel()
			<-c.finished
			return
		}
	}
}

func runPerft(ctx context.Context, fen string, depth int) error {
	b, err := chess.NewBoardFromFEN(fen)
	if err != nil {
		return err
	}
	for d := 1; d <= depth; d++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		start := time.Now()
		n := b.Perft(d)
		fmt.Printf("perft(%d) = %d in %v\n", d, n, time.Since(start))
	}
	return nil
}

func writeSVG(s *session.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteSVG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
