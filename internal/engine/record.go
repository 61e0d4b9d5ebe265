package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// MoveRecord is the undo journal entry for one applied move. It captures
// everything MakeMove changed so UndoMove can restore the prior state
// verbatim instead of recomputing it.
type MoveRecord struct {
	Move chess.Move

	// Moved is the piece that travelled From->To. After a promotion it is
	// off the board and Promoted stands on To instead.
	Moved PieceID

	// Captured is NoPiece for a quiet move. For en passant, CapturedSquare
	// is the passed pawn's square, not the move's destination.
	Captured       PieceID
	CapturedSquare chess.Square
	EnPassant      bool

	// Castle moves the rook RookFrom->RookTo in the same record.
	Castle   bool
	RookFrom chess.Square
	RookTo   chess.Square

	// Promoted is the queen created on the last rank, or NoPiece.
	Promoted PieceID

	PrevCastling  CastlingRights
	PrevEnPassant chess.Square
	PrevHash      uint64
}

// IsCapture reports whether the move removed an enemy piece.
func (r MoveRecord) IsCapture() bool {
	return r.Captured != NoPiece
}

// IsPromotion reports whether the move promoted a pawn.
func (r MoveRecord) IsPromotion() bool {
	return r.Promoted != NoPiece
}

// CastlingRights holds the four "king and rook never moved" flags.
// Flags only go from allowed to forbidden, except when a move is undone.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// AllCastlingRights is the starting-position state.
var AllCastlingRights = CastlingRights{true, true, true, true}

// Has reports whether the colour may still castle on the given side.
func (cr CastlingRights) Has(colour chess.Colour, kingside bool) bool {
	switch {
	case colour == chess.White && kingside:
		return cr.WhiteKingside
	case colour == chess.White:
		return cr.WhiteQueenside
	case kingside:
		return cr.BlackKingside
	default:
		return cr.BlackQueenside
	}
}

// Mask packs the flags as KQkq = bits 0..3.
func (cr CastlingRights) Mask() uint8 {
	var m uint8
	if cr.WhiteKingside {
		m |= 1
	}
	if cr.WhiteQueenside {
		m |= 2
	}
	if cr.BlackKingside {
		m |= 4
	}
	if cr.BlackQueenside {
		m |= 8
	}
	return m
}

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	s := ""
	if cr.WhiteKingside {
		s += "K"
	}
	if cr.WhiteQueenside {
		s += "Q"
	}
	if cr.BlackKingside {
		s += "k"
	}
	if cr.BlackQueenside {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// touch clears every right whose king or rook home square is sq. A move
// from or onto one of those squares means that king or rook has moved or
// been captured.
func (cr CastlingRights) touch(sq chess.Square) CastlingRights {
	switch sq {
	case chess.Sq(4, 0):
		cr.WhiteKingside, cr.WhiteQueenside = false, false
	case chess.Sq(7, 0):
		cr.WhiteKingside = false
	case chess.Sq(0, 0):
		cr.WhiteQueenside = false
	case chess.Sq(4, 7):
		cr.BlackKingside, cr.BlackQueenside = false, false
	case chess.Sq(7, 7):
		cr.BlackKingside = false
	case chess.Sq(0, 7):
		cr.BlackQueenside = false
	}
	return cr
}
