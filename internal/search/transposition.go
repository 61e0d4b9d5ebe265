package search

import (
	"fmt"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/hashing"
)

// Bound says how a stored score relates to the true minimax value.
type Bound uint8

const (
	// BoundExact scores fell strictly inside the search window.
	BoundExact Bound = iota
	// BoundLower scores failed high: the true value is at least Score.
	BoundLower
	// BoundUpper scores failed low: the true value is at most Score.
	BoundUpper
)

// TTEntry is one transposition table slot.
type TTEntry struct {
	Hash  uint64
	Key   hashing.PositionKey
	Depth int
	Side  chess.Colour
	Score int
	Bound Bound
	used  bool
}

// TransTable memoizes search results for one search invocation. A hit
// requires the exact position key, remaining depth and side to move; the
// Zobrist hash only picks the slot.
type TransTable struct {
	entries []TTEntry
	mask    uint64
	strict  bool
}

// NewTransTable creates a table with at least size slots, rounded up to a
// power of two.
func NewTransTable(size int) *TransTable {
	n := 1
	for n < size {
		n <<= 1
	}
	return &TransTable{
		entries: make([]TTEntry, n),
		mask:    uint64(n - 1),
	}
}

// SetStrict makes a slot whose full hash matches but whose key, depth or
// side do not panic with ErrTTMismatch instead of counting as a miss.
func (tt *TransTable) SetStrict(on bool) {
	tt.strict = on
}

// Len returns the number of slots.
func (tt *TransTable) Len() int {
	return len(tt.entries)
}

// Clear empties every slot.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// Used returns the number of occupied slots.
func (tt *TransTable) Used() int {
	n := 0
	for i := range tt.entries {
		if tt.entries[i].used {
			n++
		}
	}
	return n
}

// entryHash folds depth and side into the board hash so that the same
// position at another depth lands in another slot.
func entryHash(hash uint64, depth int, side chess.Colour) uint64 {
	h := hash ^ hashing.SideKey(side)
	h ^= uint64(depth+1) * 0x9E3779B97F4A7C15
	return h
}

// Probe looks up a position.
func (tt *TransTable) Probe(hash uint64, key hashing.PositionKey, depth int, side chess.Colour) (TTEntry, bool) {
	h := entryHash(hash, depth, side)
	e := tt.entries[h&tt.mask]
	if !e.used || e.Hash != h {
		return TTEntry{}, false
	}
	if e.Key != key || e.Depth != depth || e.Side != side {
		if tt.strict {
			panic(fmt.Errorf("slot %d holds depth %d side %v, probed depth %d side %v: %w",
				h&tt.mask, e.Depth, e.Side, depth, side, errors.ErrTTMismatch))
		}
		return TTEntry{}, false
	}
	return e, true
}

// Store records a search result, replacing whatever held the slot.
func (tt *TransTable) Store(hash uint64, key hashing.PositionKey, depth int, side chess.Colour, score int, bound Bound) {
	h := entryHash(hash, depth, side)
	tt.entries[h&tt.mask] = TTEntry{
		Hash:  h,
		Key:   key,
		Depth: depth,
		Side:  side,
		Score: score,
		Bound: bound,
		used:  true,
	}
}
