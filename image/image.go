// Package image renders chess boards as SVG documents.
package image

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/animats/chess"
)

const (
	squareSize = 45
	margin     = 20
	boardSize  = 8*squareSize + 2*margin
)

var glyphs = map[chess.Color]map[chess.PieceType]string{
	chess.White: {
		chess.King: "♔", chess.Queen: "♕", chess.Rook: "♖",
		chess.Bishop: "♗", chess.Knight: "♘", chess.Pawn: "♙",
	},
	chess.Black: {
		chess.King: "♚", chess.Queen: "♛", chess.Rook: "♜",
		chess.Bishop: "♝", chess.Knight: "♞", chess.Pawn: "♟",
	},
}

type encoder struct {
	light, dark color.Color
	mark        color.Color
	marked      map[chess.Square]bool
	perspective chess.Color
	coordinates bool
}

// Option configures the rendering.
type Option func(*encoder)

// SquareColors sets the colors of the light and dark squares.
func SquareColors(light, dark color.Color) Option {
	return func(e *encoder) {
		e.light, e.dark = light, dark
	}
}

// MarkSquares paints the given squares in c, typically the origin and
// destination of the last move.
func MarkSquares(c color.Color, sqs ...chess.Square) Option {
	return func(e *encoder) {
		e.mark = c
		for _, sq := range sqs {
			if sq.Valid() {
				e.marked[sq] = true
			}
		}
	}
}

// Perspective draws the board from the given side. White is at the bottom
// by default.
func Perspective(c chess.Color) Option {
	return func(e *encoder) {
		e.perspective = c
	}
}

// HideCoordinates leaves out the file and rank labels.
func HideCoordinates() Option {
	return func(e *encoder) {
		e.coordinates = false
	}
}

// SVG writes an SVG image of b to w.
func SVG(w io.Writer, b *chess.Board, opts ...Option) error {
	e := &encoder{
		light:       color.RGBA{R: 235, G: 209, B: 166, A: 255},
		dark:        color.RGBA{R: 165, G: 117, B: 81, A: 255},
		mark:        color.RGBA{R: 205, G: 210, B: 106, A: 255},
		marked:      map[chess.Square]bool{},
		perspective: chess.White,
		coordinates: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(boardSize, boardSize)
	canvas.Rect(0, 0, boardSize, boardSize, "fill:#ffffff")
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := chess.Sq(rank, file)
			x, y := e.origin(sq)
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+hex(e.fill(sq)))
			p := b.PieceAt(sq)
			if p == nil {
				continue
			}
			canvas.Text(x+squareSize/2, y+squareSize*4/5, glyphs[p.Color()][p.Type()],
				"text-anchor:middle;font-size:36px;font-family:serif")
		}
	}
	if e.coordinates {
		e.drawCoordinates(canvas)
	}
	canvas.End()
	return ew.err
}

// origin returns the top left corner of sq on the canvas.
func (e *encoder) origin(sq chess.Square) (x, y int) {
	col, row := sq.File, 7-sq.Rank
	if e.perspective == chess.Black {
		col, row = 7-sq.File, sq.Rank
	}
	return margin + col*squareSize, margin + row*squareSize
}

func (e *encoder) fill(sq chess.Square) color.Color {
	switch {
	case e.marked[sq]:
		return e.mark
	case (sq.Rank+sq.File)%2 == 0:
		return e.dark
	default:
		return e.light
	}
}

func (e *encoder) drawCoordinates(canvas *svg.SVG) {
	const style = "text-anchor:middle;font-size:12px;font-family:sans-serif"
	for i := 0; i < 8; i++ {
		x, _ := e.origin(chess.Sq(0, i))
		canvas.Text(x+squareSize/2, boardSize-margin/3, string(rune('a'+i)), style)
		_, y := e.origin(chess.Sq(i, 0))
		canvas.Text(margin/2, y+squareSize/2+4, string(rune('1'+i)), style)
	}
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
