package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// IsInCheck returns true if the given colour's king is attacked. A colour
// with no king on the board is never in check.
func (b *Board) IsInCheck(colour chess.Colour) bool {
	sq, ok := b.KingSquare(colour)
	if !ok {
		return false
	}
	return b.IsSquareAttacked(sq, colour.Opposite())
}

// IsSquareAttacked returns true if any piece of byColour attacks sq.
// It never consults king safety, so it is safe to call from IsLegal.
func (b *Board) IsSquareAttacked(sq chess.Square, byColour chess.Colour) bool {
	for i, from := range b.squares {
		if !from.OnBoard() {
			continue
		}
		piece := b.pieces[i]
		if piece.Colour != byColour {
			continue
		}
		if attacks(b, piece, from, sq) {
			return true
		}
	}
	return false
}
