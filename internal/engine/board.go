// Package engine provides chess rules enforcement: the board model,
// per-piece geometry rules, legality checking, reversible move application,
// check and terminal-state detection, and FEN conversion.
package engine

import (
	"fmt"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/hashing"
)

// PieceID is a stable handle to a piece in a board's arena. Pieces keep
// their handle for their whole life, including while captured.
type PieceID int16

// NoPiece marks an empty square or an absent piece.
const NoPiece PieceID = -1

// Board is the mutable position. The grid holds piece handles; a separate
// handle->square table is kept in lockstep by put and lift, which are the
// only routines that write either of them.
type Board struct {
	// grid[file][rank] holds the handle of the occupant, or NoPiece.
	grid [chess.BoardSize][chess.BoardSize]PieceID

	// Arena of pieces. squares[id] is NoSquare while the piece is off the board.
	pieces  []chess.Piece
	squares []chess.Square

	// Keep track of where the two kings are for check detection.
	kings [chess.NumColours]chess.Square

	castling CastlingRights

	// epTarget is the square a pawn skipped on its last double step, or NoSquare.
	epTarget chess.Square

	// Zobrist hash of placement, castling rights and en passant target.
	hash uint64

	history []MoveRecord

	// strict enables verification after every mutation.
	strict bool
}

// NewBoard creates an empty board with no castling rights.
func NewBoard() *Board {
	b := &Board{
		pieces:   make([]chess.Piece, 0, 40),
		squares:  make([]chess.Square, 0, 40),
		kings:    [chess.NumColours]chess.Square{chess.NoSquare, chess.NoSquare},
		epTarget: chess.NoSquare,
		history:  make([]MoveRecord, 0, 64),
	}
	for f := range b.grid {
		for r := range b.grid[f] {
			b.grid[f][r] = NoPiece
		}
	}
	b.hash = hashing.CastlingKey(0)
	return b
}

// NewInitialBoard returns a board set up in the standard starting position.
func NewInitialBoard() *Board {
	setup, err := ParseFEN(InitialFEN)
	if err != nil {
		panic(fmt.Sprintf("initial FEN rejected: %v", err))
	}
	return setup.Board
}

// SetStrict enables or disables invariant verification after each
// MakeMove and UndoMove. Verification failures panic.
func (b *Board) SetStrict(on bool) {
	b.strict = on
}

// Place adds a new piece to an empty square, for board setup.
// It returns NoPiece if the square is off-board or occupied, or if the
// piece is a second king of its colour.
func (b *Board) Place(piece chess.Piece, sq chess.Square) PieceID {
	if !sq.OnBoard() || b.grid[sq.File][sq.Rank] != NoPiece {
		return NoPiece
	}
	if piece.Kind == chess.King && b.kings[piece.Colour].OnBoard() {
		return NoPiece
	}
	id := b.spawn(piece)
	b.put(id, sq)
	return id
}

// spawn appends a piece to the arena, off the board.
func (b *Board) spawn(piece chess.Piece) PieceID {
	id := PieceID(len(b.pieces))
	b.pieces = append(b.pieces, piece)
	b.squares = append(b.squares, chess.NoSquare)
	return id
}

// despawn removes the most recently spawned piece, which must be off the board.
func (b *Board) despawn(id PieceID) {
	if int(id) != len(b.pieces)-1 || b.squares[id].OnBoard() {
		panic(fmt.Errorf("despawn piece %d of %d: %w", id, len(b.pieces), errors.ErrBoardCorrupt))
	}
	b.pieces = b.pieces[:id]
	b.squares = b.squares[:id]
}

// put places an off-board piece on an empty square.
func (b *Board) put(id PieceID, sq chess.Square) {
	b.grid[sq.File][sq.Rank] = id
	b.squares[id] = sq
	piece := b.pieces[id]
	if piece.Kind == chess.King {
		b.kings[piece.Colour] = sq
	}
	b.hash ^= hashing.PieceKey(piece, sq)
}

// lift removes the occupant of sq from the board and returns its handle.
func (b *Board) lift(sq chess.Square) PieceID {
	id := b.grid[sq.File][sq.Rank]
	if id == NoPiece {
		panic(fmt.Errorf("lift from empty square %s: %w", sq, errors.ErrBoardCorrupt))
	}
	b.grid[sq.File][sq.Rank] = NoPiece
	b.squares[id] = chess.NoSquare
	piece := b.pieces[id]
	if piece.Kind == chess.King {
		b.kings[piece.Colour] = chess.NoSquare
	}
	b.hash ^= hashing.PieceKey(piece, sq)
	return id
}

// relocate moves the occupant of from onto the empty square to.
func (b *Board) relocate(from, to chess.Square) {
	b.put(b.lift(from), to)
}

func (b *Board) setCastling(cr CastlingRights) {
	b.hash ^= hashing.CastlingKey(b.castling.Mask()) ^ hashing.CastlingKey(cr.Mask())
	b.castling = cr
}

func (b *Board) setEnPassant(sq chess.Square) {
	b.hash ^= hashing.EnPassantKey(b.epTarget) ^ hashing.EnPassantKey(sq)
	b.epTarget = sq
}

// at returns the handle on an on-board square.
func (b *Board) at(sq chess.Square) PieceID {
	return b.grid[sq.File][sq.Rank]
}

// PieceAt returns the piece on (file, rank); ok is false for an empty or
// off-board square.
func (b *Board) PieceAt(file, rank int) (chess.Piece, bool) {
	return b.PieceAtSquare(chess.Sq(file, rank))
}

// PieceAtSquare returns the piece on sq; ok is false for an empty or off-board square.
func (b *Board) PieceAtSquare(sq chess.Square) (chess.Piece, bool) {
	if !sq.OnBoard() {
		return chess.Piece{}, false
	}
	id := b.at(sq)
	if id == NoPiece {
		return chess.Piece{}, false
	}
	return b.pieces[id], true
}

// Piece returns the descriptor of the piece with the given handle.
func (b *Board) Piece(id PieceID) chess.Piece {
	return b.pieces[id]
}

// SquareOf returns where the piece with the given handle stands, or NoSquare.
func (b *Board) SquareOf(id PieceID) chess.Square {
	return b.squares[id]
}

// Pieces returns the handles of the on-board pieces of one colour, in
// arena order.
func (b *Board) Pieces(colour chess.Colour) []PieceID {
	ids := make([]PieceID, 0, 16)
	for i := range b.pieces {
		if b.squares[i].OnBoard() && b.pieces[i].Colour == colour {
			ids = append(ids, PieceID(i))
		}
	}
	return ids
}

// KingSquare returns the cached king location; ok is false if the colour
// has no king on the board.
func (b *Board) KingSquare(colour chess.Colour) (chess.Square, bool) {
	sq := b.kings[colour]
	return sq, sq.OnBoard()
}

// Castling returns the current castling rights.
func (b *Board) Castling() CastlingRights {
	return b.castling
}

// EnPassantTarget returns the en passant target; ok is false if there is none.
func (b *Board) EnPassantTarget() (chess.Square, bool) {
	return b.epTarget, b.epTarget.OnBoard()
}

// Hash returns the Zobrist hash of the position (placement, rights, target).
func (b *Board) Hash() uint64 {
	return b.hash
}

// Key returns the exact position key (placement, rights, target).
func (b *Board) Key() hashing.PositionKey {
	key := hashing.NewPositionKey()
	for f := 0; f < chess.BoardSize; f++ {
		for r := 0; r < chess.BoardSize; r++ {
			if id := b.grid[f][r]; id != NoPiece {
				key.SetPiece(chess.Sq(f, r), b.pieces[id])
			}
		}
	}
	key.Castling = b.castling.Mask()
	key.SetEnPassant(b.epTarget)
	return key
}

// HistoryLen returns the number of applied moves not yet undone.
func (b *Board) HistoryLen() int {
	return len(b.history)
}

// Clone returns a deep copy of the board, history included. The copy
// shares nothing with the original.
func (b *Board) Clone() *Board {
	c := *b
	c.pieces = append(make([]chess.Piece, 0, cap(b.pieces)), b.pieces...)
	c.squares = append(make([]chess.Square, 0, cap(b.squares)), b.squares...)
	c.history = append(make([]MoveRecord, 0, cap(b.history)), b.history...)
	return &c
}

// Snapshot is a comparable copy of every piece of board state, used to
// check that a make/undo pair restores the board exactly.
type Snapshot struct {
	Grid       [chess.BoardSize][chess.BoardSize]PieceID
	Pieces     []chess.Piece
	Squares    []chess.Square
	Kings      [chess.NumColours]chess.Square
	Castling   CastlingRights
	EnPassant  chess.Square
	Hash       uint64
	HistoryLen int
}

// Snapshot captures the current board state.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Grid:       b.grid,
		Pieces:     append([]chess.Piece(nil), b.pieces...),
		Squares:    append([]chess.Square(nil), b.squares...),
		Kings:      b.kings,
		Castling:   b.castling,
		EnPassant:  b.epTarget,
		Hash:       b.hash,
		HistoryLen: len(b.history),
	}
}

// computeHash recalculates the Zobrist hash from scratch.
func (b *Board) computeHash() uint64 {
	h := hashing.CastlingKey(b.castling.Mask()) ^ hashing.EnPassantKey(b.epTarget)
	for id, sq := range b.squares {
		if sq.OnBoard() {
			h ^= hashing.PieceKey(b.pieces[id], sq)
		}
	}
	return h
}

// Verify reconciles the grid with the piece index, the king cache with
// both, and the incremental hash with a full recomputation.
func (b *Board) Verify() error {
	if len(b.pieces) != len(b.squares) {
		return fmt.Errorf("arena has %d pieces and %d squares: %w", len(b.pieces), len(b.squares), errors.ErrBoardCorrupt)
	}
	for f := 0; f < chess.BoardSize; f++ {
		for r := 0; r < chess.BoardSize; r++ {
			id := b.grid[f][r]
			if id == NoPiece {
				continue
			}
			if int(id) >= len(b.pieces) || id < 0 {
				return fmt.Errorf("square %s holds unknown piece %d: %w", chess.Sq(f, r), id, errors.ErrBoardCorrupt)
			}
			if b.squares[id] != chess.Sq(f, r) {
				return fmt.Errorf("square %s holds piece %d indexed at %s: %w", chess.Sq(f, r), id, b.squares[id], errors.ErrBoardCorrupt)
			}
		}
	}
	var kings [chess.NumColours]int
	for id, sq := range b.squares {
		if !sq.OnBoard() {
			continue
		}
		if b.grid[sq.File][sq.Rank] != PieceID(id) {
			return fmt.Errorf("piece %d indexed at %s but grid holds %d: %w", id, sq, b.grid[sq.File][sq.Rank], errors.ErrBoardCorrupt)
		}
		if p := b.pieces[id]; p.Kind == chess.King {
			kings[p.Colour]++
			if b.kings[p.Colour] != sq {
				return fmt.Errorf("%s king on %s but cached at %s: %w", p.Colour, sq, b.kings[p.Colour], errors.ErrBoardCorrupt)
			}
		}
	}
	for c := range kings {
		if kings[c] > 1 {
			return fmt.Errorf("%d %s kings: %w", kings[c], chess.Colour(c), errors.ErrBoardCorrupt)
		}
		if kings[c] == 0 && b.kings[c].OnBoard() {
			return fmt.Errorf("no %s king but cached at %s: %w", chess.Colour(c), b.kings[c], errors.ErrBoardCorrupt)
		}
	}
	if h := b.computeHash(); h != b.hash {
		return fmt.Errorf("hash %016x, recomputed %016x: %w", b.hash, h, errors.ErrBoardCorrupt)
	}
	return nil
}

func (b *Board) verifyIfStrict(op string) {
	if !b.strict {
		return
	}
	if err := b.Verify(); err != nil {
		panic(errors.Wrap(err, op))
	}
}

// String renders the board as eight FEN-like rows, rank 8 first.
func (b *Board) String() string {
	buf := make([]byte, 0, 72)
	for r := chess.BoardSize - 1; r >= 0; r-- {
		for f := 0; f < chess.BoardSize; f++ {
			if p, ok := b.PieceAt(f, r); ok {
				buf = append(buf, p.FENLetter())
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
