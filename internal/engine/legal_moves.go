package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// LegalMoves returns every legal move for colour, grouped by piece in
// arena order.
func (b *Board) LegalMoves(colour chess.Colour) []chess.Move {
	return b.collectMoves(colour, false, false)
}

// LegalCaptures returns every legal capturing move for colour, en passant
// included.
func (b *Board) LegalCaptures(colour chess.Colour) []chess.Move {
	return b.collectMoves(colour, true, false)
}

// HasLegalMove reports whether colour has at least one legal move.
func (b *Board) HasLegalMove(colour chess.Colour) bool {
	return len(b.collectMoves(colour, false, true)) > 0
}

// IsCheckmate reports whether colour is in check with no legal move.
func (b *Board) IsCheckmate(colour chess.Colour) bool {
	return b.IsInCheck(colour) && !b.HasLegalMove(colour)
}

// IsStalemate reports whether colour is not in check but has no legal move.
// The game controller only asks this for the side to move.
func (b *Board) IsStalemate(colour chess.Colour) bool {
	return !b.IsInCheck(colour) && !b.HasLegalMove(colour)
}

// collectMoves enumerates candidate destinations for each piece of colour
// and keeps those that pass IsLegal.
func (b *Board) collectMoves(colour chess.Colour, capturesOnly, firstOnly bool) []chess.Move {
	var moves []chess.Move
	if !firstOnly {
		moves = make([]chess.Move, 0, 48)
	}
	var targets []chess.Square

	for _, id := range b.Pieces(colour) {
		from := b.squares[id]
		targets = b.candidateTargets(b.pieces[id], from, targets[:0])
		for _, to := range targets {
			m := chess.Move{From: from, To: to, Colour: colour}
			if capturesOnly && !b.IsCapture(m) {
				continue
			}
			if !b.IsLegal(m) {
				continue
			}
			moves = append(moves, m)
			if firstOnly {
				return moves
			}
		}
	}
	return moves
}

// candidateTargets appends the squares the piece could reach on an empty
// board, cut at the first blocker along each ray. It over-approximates:
// IsLegal has the final word.
func (b *Board) candidateTargets(piece chess.Piece, from chess.Square, out []chess.Square) []chess.Square {
	switch piece.Kind {
	case chess.Pawn:
		fwd := piece.Colour.Forward()
		for _, df := range []int{-1, 0, 1} {
			if to := from.Offset(df, fwd); to.OnBoard() {
				out = append(out, to)
			}
		}
		if from.Rank == piece.Colour.PawnRank() {
			out = append(out, from.Offset(0, 2*fwd))
		}

	case chess.Knight:
		out = appendOffsets(out, from, knightOffsets)

	case chess.King:
		out = appendOffsets(out, from, kingOffsets)
		if from == chess.Sq(kingFile, piece.Colour.HomeRank()) {
			out = append(out, from.Offset(2, 0), from.Offset(-2, 0))
		}

	case chess.Bishop:
		out = b.appendRays(out, from, diagonalDirs)

	case chess.Rook:
		out = b.appendRays(out, from, straightDirs)

	case chess.Queen:
		out = b.appendRays(out, from, diagonalDirs)
		out = b.appendRays(out, from, straightDirs)
	}
	return out
}

func appendOffsets(out []chess.Square, from chess.Square, offsets [][2]int) []chess.Square {
	for _, o := range offsets {
		if to := from.Offset(o[0], o[1]); to.OnBoard() {
			out = append(out, to)
		}
	}
	return out
}

func (b *Board) appendRays(out []chess.Square, from chess.Square, dirs [][2]int) []chess.Square {
	for _, d := range dirs {
		for to := from.Offset(d[0], d[1]); to.OnBoard(); to = to.Offset(d[0], d[1]) {
			out = append(out, to)
			if b.at(to) != NoPiece {
				break
			}
		}
	}
	return out
}
