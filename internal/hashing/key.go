package hashing

import "github.com/lgbarn/chessplay-go/internal/chess"

// PositionKey is an exact, comparable encoding of a board: every square's
// occupant packed into a nibble, plus castling rights and en passant target.
// Unlike a Zobrist hash it cannot collide, so it is safe as a map key and
// for verifying table hits.
type PositionKey struct {
	Placement [32]byte
	Castling  uint8
	EnPassant int8 // square index, -1 when there is no target
}

// NewPositionKey returns a key for an empty board with no rights and no target.
func NewPositionKey() PositionKey {
	return PositionKey{EnPassant: -1}
}

// pieceCode packs a piece into 4 bits; 0 is reserved for empty.
func pieceCode(piece chess.Piece) byte {
	return byte(piece.Kind) | byte(piece.Colour)<<3
}

// SetPiece records a piece on the given square.
func (k *PositionKey) SetPiece(sq chess.Square, piece chess.Piece) {
	idx := sq.Index()
	code := pieceCode(piece)
	if idx%2 == 0 {
		k.Placement[idx/2] = k.Placement[idx/2]&0xf0 | code
	} else {
		k.Placement[idx/2] = k.Placement[idx/2]&0x0f | code<<4
	}
}

// PieceAt decodes the occupant of a square; ok is false for an empty square.
func (k PositionKey) PieceAt(sq chess.Square) (chess.Piece, bool) {
	idx := sq.Index()
	code := k.Placement[idx/2]
	if idx%2 == 1 {
		code >>= 4
	}
	code &= 0x0f
	if code == 0 {
		return chess.Piece{}, false
	}
	return chess.Piece{Kind: chess.Kind(code & 0x07), Colour: chess.Colour(code >> 3)}, true
}

// SetEnPassant records the en passant target; an off-board square clears it.
func (k *PositionKey) SetEnPassant(sq chess.Square) {
	if !sq.OnBoard() {
		k.EnPassant = -1
		return
	}
	k.EnPassant = int8(sq.Index())
}
