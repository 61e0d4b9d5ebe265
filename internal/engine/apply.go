package engine

import (
	"fmt"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// IsLegal reports whether m is a legal move on this board for m.Colour.
// The board is left unchanged.
func (b *Board) IsLegal(m chess.Move) bool {
	if !m.From.OnBoard() || !m.To.OnBoard() || m.From == m.To {
		return false
	}

	id := b.at(m.From)
	if id == NoPiece {
		return false
	}
	piece := b.pieces[id]
	if piece.Colour != m.Colour {
		return false
	}

	if target, ok := b.PieceAtSquare(m.To); ok {
		// Kings are never captured: a position where that is possible
		// already broke the rules on the previous move.
		if target.Colour == m.Colour || target.Kind == chess.King {
			return false
		}
	}

	if isCastlingShape(piece, m) {
		if !b.canCastle(m) {
			return false
		}
	} else if !IsGeometricallyValid(b, piece, m) {
		return false
	}

	return !b.leavesKingAttacked(m)
}

// leavesKingAttacked plays m, tests the mover's king, and takes m back.
func (b *Board) leavesKingAttacked(m chess.Move) bool {
	b.MakeMove(m)
	attacked := b.IsInCheck(m.Colour)
	b.UndoMove()
	return attacked
}

// MakeMove applies m, which must be legal, and pushes its undo record.
// Castling, en passant and promotion are inferred from the moving piece
// and the board: a king stepping two files castles, a pawn stepping
// diagonally onto an empty square captures en passant, and a pawn reaching
// the last rank always becomes a queen.
//
// MakeMove panics if either square is off the board or the source is empty.
func (b *Board) MakeMove(m chess.Move) MoveRecord {
	if !m.From.OnBoard() || !m.To.OnBoard() {
		panic(fmt.Errorf("make move %s: %w", m, errors.ErrOffBoard))
	}
	id := b.at(m.From)
	if id == NoPiece {
		panic(fmt.Errorf("make move %s from empty square: %w", m, errors.ErrBoardCorrupt))
	}
	piece := b.pieces[id]

	rec := MoveRecord{
		Move:           m,
		Moved:          id,
		Captured:       NoPiece,
		CapturedSquare: chess.NoSquare,
		RookFrom:       chess.NoSquare,
		RookTo:         chess.NoSquare,
		Promoted:       NoPiece,
		PrevCastling:   b.castling,
		PrevEnPassant:  b.epTarget,
		PrevHash:       b.hash,
	}

	if isCastlingShape(piece, m) {
		rec.Castle = true
		rec.RookFrom, rec.RookTo = castlingRookSquares(m)
		b.relocate(rec.RookFrom, rec.RookTo)
	}

	if piece.Kind == chess.Pawn && m.From.File != m.To.File && b.at(m.To) == NoPiece {
		rec.EnPassant = true
		rec.CapturedSquare = chess.Sq(m.To.File, m.From.Rank)
		rec.Captured = b.lift(rec.CapturedSquare)
	}

	b.setCastling(b.castling.touch(m.From).touch(m.To))

	b.setEnPassant(chess.NoSquare)
	if piece.Kind == chess.Pawn && abs(m.To.Rank-m.From.Rank) == 2 {
		b.setEnPassant(chess.Sq(m.From.File, m.From.Rank+piece.Colour.Forward()))
	}

	if b.at(m.To) != NoPiece {
		rec.CapturedSquare = m.To
		rec.Captured = b.lift(m.To)
	}
	b.relocate(m.From, m.To)

	if piece.Kind == chess.Pawn && m.To.Rank == piece.Colour.PromotionRank() {
		b.lift(m.To)
		rec.Promoted = b.spawn(chess.Piece{Kind: chess.Queen, Colour: piece.Colour})
		b.put(rec.Promoted, m.To)
	}

	b.history = append(b.history, rec)
	b.verifyIfStrict("make move " + m.String())
	return rec
}

// UndoMove reverts the most recent MakeMove. It panics if there is no
// move to undo.
func (b *Board) UndoMove() {
	n := len(b.history)
	if n == 0 {
		panic(errors.ErrEmptyHistory)
	}
	rec := b.history[n-1]
	b.history = b.history[:n-1]
	m := rec.Move

	if rec.Promoted != NoPiece {
		b.lift(m.To)
		b.despawn(rec.Promoted)
		b.put(rec.Moved, m.From)
	} else {
		b.relocate(m.To, m.From)
	}

	if rec.Captured != NoPiece {
		b.put(rec.Captured, rec.CapturedSquare)
	}

	if rec.Castle {
		b.relocate(rec.RookTo, rec.RookFrom)
	}

	b.castling = rec.PrevCastling
	b.epTarget = rec.PrevEnPassant
	b.hash = rec.PrevHash

	b.verifyIfStrict("undo move " + m.String())
}

// IsCapture reports whether m would remove an enemy piece, including en
// passant. It does not check legality.
func (b *Board) IsCapture(m chess.Move) bool {
	if !m.From.OnBoard() || !m.To.OnBoard() {
		return false
	}
	if target, ok := b.PieceAtSquare(m.To); ok {
		return target.Colour != m.Colour
	}
	mover, ok := b.PieceAtSquare(m.From)
	return ok && mover.Kind == chess.Pawn && m.From.File != m.To.File && b.isEnPassantCapture(mover.Colour, m)
}
