package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

const (
	kingFile          = 4
	kingsideRookFile  = 7
	queensideRookFile = 0
)

// isCastlingShape reports whether a king move is a two-file step along a rank.
func isCastlingShape(piece chess.Piece, m chess.Move) bool {
	return piece.Kind == chess.King && m.From.Rank == m.To.Rank && abs(m.To.File-m.From.File) == 2
}

// castlingRookSquares returns the rook's start and end squares for a
// castling king move.
func castlingRookSquares(m chess.Move) (from, to chess.Square) {
	rank := m.From.Rank
	if m.To.File > m.From.File {
		return chess.Sq(kingsideRookFile, rank), chess.Sq(m.From.File+1, rank)
	}
	return chess.Sq(queensideRookFile, rank), chess.Sq(m.From.File-1, rank)
}

// canCastle checks every castling condition except the final
// king-safety test, which IsLegal applies to all moves.
func (b *Board) canCastle(m chess.Move) bool {
	colour := m.Colour
	home := colour.HomeRank()
	if m.From != chess.Sq(kingFile, home) || m.To.Rank != home {
		return false
	}

	kingside := m.To.File > m.From.File
	if !b.castling.Has(colour, kingside) {
		return false
	}

	rookFrom, _ := castlingRookSquares(m)
	rook, ok := b.PieceAtSquare(rookFrom)
	if !ok || rook != (chess.Piece{Kind: chess.Rook, Colour: colour}) {
		return false
	}

	// Every square strictly between king and rook must be empty.
	step := sign(rookFrom.File - m.From.File)
	for f := m.From.File + step; f != rookFrom.File; f += step {
		if b.grid[f][home] != NoPiece {
			return false
		}
	}

	// The king may not castle out of, through, or into check.
	enemy := colour.Opposite()
	for f := m.From.File; f != m.To.File+step; f += step {
		if b.IsSquareAttacked(chess.Sq(f, home), enemy) {
			return false
		}
	}
	return true
}
