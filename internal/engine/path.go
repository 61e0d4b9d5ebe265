package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// IsGeometricallyValid reports whether the piece standing on m.From may
// move to m.To by its own movement rule, ignoring whether the move leaves
// the mover's king attacked. Both squares must be on the board. Castling
// is not a geometric king move; IsLegal handles it.
func IsGeometricallyValid(b *Board, piece chess.Piece, m chess.Move) bool {
	if m.From == m.To {
		return false
	}
	target, occupied := b.PieceAtSquare(m.To)
	if occupied && target.Colour == piece.Colour {
		return false
	}

	df := m.To.File - m.From.File
	dr := m.To.Rank - m.From.Rank

	switch piece.Kind {
	case chess.Pawn:
		return isPawnMoveValid(b, piece.Colour, m, df, dr, occupied)

	case chess.Knight, chess.Bishop, chess.Rook, chess.Queen, chess.King:
		return attackPatternMatches(piece, df, dr) && isPathClear(b, m.From, m.To)
	}
	return false
}

// isPawnMoveValid applies the pawn's push, double push and capture rules.
func isPawnMoveValid(b *Board, colour chess.Colour, m chess.Move, df, dr int, occupied bool) bool {
	fwd := colour.Forward()

	switch {
	case df == 0 && dr == fwd:
		return !occupied

	case df == 0 && dr == 2*fwd:
		if m.From.Rank != colour.PawnRank() || occupied {
			return false
		}
		return b.at(m.From.Offset(0, fwd)) == NoPiece

	case abs(df) == 1 && dr == fwd:
		if occupied {
			return true
		}
		return b.isEnPassantCapture(colour, m)
	}
	return false
}

// isEnPassantCapture reports whether a diagonal pawn step onto an empty
// square captures en passant: the destination must be the current target
// and the passed pawn must stand beside the capturer.
func (b *Board) isEnPassantCapture(colour chess.Colour, m chess.Move) bool {
	if !b.epTarget.OnBoard() || m.To != b.epTarget {
		return false
	}
	victim, ok := b.PieceAtSquare(chess.Sq(m.To.File, m.From.Rank))
	return ok && victim.Kind == chess.Pawn && victim.Colour != colour
}

// attackPatternMatches is the cheap shape test: can a piece of this kind
// ever reach a square at offset (df, dr), ignoring blockers.
func attackPatternMatches(piece chess.Piece, df, dr int) bool {
	adf, adr := abs(df), abs(dr)
	switch piece.Kind {
	case chess.Pawn:
		return adf == 1 && dr == piece.Colour.Forward()
	case chess.Knight:
		return (adf == 1 && adr == 2) || (adf == 2 && adr == 1)
	case chess.Bishop:
		return adf == adr && adf != 0
	case chess.Rook:
		return (adf == 0) != (adr == 0)
	case chess.Queen:
		return (adf == adr && adf != 0) || ((adf == 0) != (adr == 0))
	case chess.King:
		return adf <= 1 && adr <= 1 && adf+adr != 0
	}
	return false
}

// isPathClear checks that every square strictly between from and to is
// empty. Squares that are not on a common line have no intervening
// squares, so knight and king steps pass trivially.
func isPathClear(b *Board, from, to chess.Square) bool {
	df := to.File - from.File
	dr := to.Rank - from.Rank
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return true
	}
	stepF, stepR := sign(df), sign(dr)

	sq := from.Offset(stepF, stepR)
	for sq != to {
		if b.at(sq) != NoPiece {
			return false
		}
		sq = sq.Offset(stepF, stepR)
	}
	return true
}

// attacks reports whether the piece on from attacks to. Unlike
// IsGeometricallyValid this ignores the occupant of to, so it also answers
// for empty squares (pawns attack diagonally whether or not they could
// move there).
func attacks(b *Board, piece chess.Piece, from, to chess.Square) bool {
	df := to.File - from.File
	dr := to.Rank - from.Rank
	if !attackPatternMatches(piece, df, dr) {
		return false
	}
	switch piece.Kind {
	case chess.Bishop, chess.Rook, chess.Queen:
		return isPathClear(b, from, to)
	}
	return true
}
