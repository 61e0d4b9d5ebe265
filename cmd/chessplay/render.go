// render.go - Terminal board drawing
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lgbarn/chessplay-go/internal/chess"
)

// pieceSource is anything that can answer "what stands on file x, rank y".
type pieceSource interface {
	GetPieceAt(x, y int) (chess.Piece, bool)
}

// boardRenderer draws an 8x8 board with rank and file labels. With colour
// off it falls back to FEN letters and dots.
type boardRenderer struct {
	colour bool
	flip   bool
}

func newBoardRenderer(useColour, flip bool) *boardRenderer {
	return &boardRenderer{colour: useColour, flip: flip}
}

// render draws the board. Squares of last are highlighted when set.
func (r *boardRenderer) render(w io.Writer, src pieceSource, last *chess.Move) {
	for row := 0; row < chess.BoardSize; row++ {
		rank := chess.BoardSize - 1 - row
		if r.flip {
			rank = row
		}
		fmt.Fprintf(w, "%d ", rank+1)
		for col := 0; col < chess.BoardSize; col++ {
			file := col
			if r.flip {
				file = chess.BoardSize - 1 - col
			}
			sq := chess.Sq(file, rank)
			piece, ok := src.GetPieceAt(file, rank)
			r.cell(sq, piece, ok, last).Fprint(w, r.cellText(piece, ok))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "  ")
	for col := 0; col < chess.BoardSize; col++ {
		file := col
		if r.flip {
			file = chess.BoardSize - 1 - col
		}
		fmt.Fprintf(w, " %c ", rune(chess.FileBase+file))
	}
	fmt.Fprintln(w)
}

func (r *boardRenderer) cellText(piece chess.Piece, ok bool) string {
	switch {
	case ok:
		return fmt.Sprintf(" %c ", piece.FENLetter())
	case r.colour:
		return "   "
	default:
		return " . "
	}
}

// cell picks the colours for one square.
func (r *boardRenderer) cell(sq chess.Square, piece chess.Piece, occupied bool, last *chess.Move) *color.Color {
	bg := color.BgYellow
	if !sq.IsLight() {
		bg = color.BgGreen
	}
	if last != nil && (sq == last.From || sq == last.To) {
		bg = color.BgCyan
	}

	fg := color.FgHiWhite
	if occupied && piece.Colour == chess.Black {
		fg = color.FgBlack
	}

	c := color.New(bg, fg, color.Bold)
	if !r.colour {
		c.DisableColor()
	}
	return c
}
