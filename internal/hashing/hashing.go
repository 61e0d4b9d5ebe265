package hashing

import "github.com/lgbarn/chessplay-go/internal/chess"

// repetitionKey distinguishes identical placements with different movers.
type repetitionKey struct {
	pos  PositionKey
	side chess.Colour
}

// RepetitionTable counts how often each position has occurred in a game.
// A position is the placement, castling rights, en passant target and the
// side to move.
type RepetitionTable struct {
	counts map[repetitionKey]int
	// maxCount is the highest count ever observed, kept for diagnostics.
	maxCount int
}

// NewRepetitionTable creates an empty repetition table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{
		counts: make(map[repetitionKey]int),
	}
}

// Add records one more occurrence of the position and returns its new count.
func (r *RepetitionTable) Add(pos PositionKey, side chess.Colour) int {
	key := repetitionKey{pos: pos, side: side}
	r.counts[key]++
	n := r.counts[key]
	if n > r.maxCount {
		r.maxCount = n
	}
	return n
}

// Remove reverses one Add of the position. Removing an unseen position is a no-op.
func (r *RepetitionTable) Remove(pos PositionKey, side chess.Colour) {
	key := repetitionKey{pos: pos, side: side}
	switch n := r.counts[key]; {
	case n <= 0:
		return
	case n == 1:
		delete(r.counts, key)
	default:
		r.counts[key] = n - 1
	}
}

// Count returns how many times the position has occurred.
func (r *RepetitionTable) Count(pos PositionKey, side chess.Colour) int {
	return r.counts[repetitionKey{pos: pos, side: side}]
}

// UniqueCount returns the number of distinct positions recorded.
func (r *RepetitionTable) UniqueCount() int {
	return len(r.counts)
}

// MaxCount returns the highest occurrence count the table has reached.
// Removals do not lower it.
func (r *RepetitionTable) MaxCount() int {
	return r.maxCount
}
