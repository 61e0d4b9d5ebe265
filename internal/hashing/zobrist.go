// Package hashing provides position hashing for chess boards: Zobrist keys
// for fast table indexing, exact position keys for equality, and a
// repetition table for draw detection.
package hashing

import (
	"golang.org/x/exp/rand"

	"github.com/lgbarn/chessplay-go/internal/chess"
)

// zobristSeed is fixed so hashes are reproducible across runs and tests.
const zobristSeed = 0xC0DE

var (
	zobristPiece     [chess.NumColours][chess.NumKinds][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	rnd := rand.New(rand.NewSource(zobristSeed))

	for c := 0; c < chess.NumColours; c++ {
		for k := chess.Pawn; k < chess.NumKinds; k++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][k][sq] = rnd.Uint64()
			}
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// PieceKey returns the Zobrist key for a piece standing on a square.
func PieceKey(piece chess.Piece, sq chess.Square) uint64 {
	return zobristPiece[piece.Colour][piece.Kind][sq.Index()]
}

// CastlingKey returns the Zobrist key for a castling-rights mask (0-15).
func CastlingKey(mask uint8) uint64 {
	return zobristCastle[mask&0x0f]
}

// EnPassantKey returns the Zobrist key for an en passant target square.
// An off-board square contributes nothing.
func EnPassantKey(sq chess.Square) uint64 {
	if !sq.OnBoard() {
		return 0
	}
	return zobristEnPassant[sq.File]
}

// SideKey returns the key folded in when the given colour is to move.
func SideKey(side chess.Colour) uint64 {
	if side == chess.Black {
		return zobristSide
	}
	return 0
}
