package config

import (
	"fmt"

	"github.com/lgbarn/chessplay-go/internal/errors"
)

// Search depth bounds, in plies.
const (
	MinDepth = 1
	MaxDepth = 5

	DefaultDepth           = 3
	DefaultQuiescenceDepth = 4
	DefaultTTEntries       = 1 << 16
)

// SearchConfig holds settings for the move search.
type SearchConfig struct {
	// Depth is the nominal search depth in plies (MinDepth..MaxDepth).
	Depth int

	// QuiescenceDepth bounds the capture-only extension below Depth.
	QuiescenceDepth int

	// TTEntries is the transposition table capacity (rounded up to a power of two).
	TTEntries int

	// Seed drives move-order jitter and tie-breaking. Zero picks a time-based seed.
	Seed uint64

	// Jitter adds a small random component to root move ordering.
	Jitter bool

	// Pruning enables alpha-beta cutoffs. With Pruning off the search is
	// plain minimax, which is only useful as a reference.
	Pruning bool
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		Depth:           DefaultDepth,
		QuiescenceDepth: DefaultQuiescenceDepth,
		TTEntries:       DefaultTTEntries,
		Jitter:          true,
		Pruning:         true,
	}
}

// Validate checks the search settings.
func (s *SearchConfig) Validate() error {
	if s.Depth < MinDepth || s.Depth > MaxDepth {
		return fmt.Errorf("search depth %d outside %d..%d: %w", s.Depth, MinDepth, MaxDepth, errors.ErrInvalidConfig)
	}
	if s.QuiescenceDepth < 0 {
		return fmt.Errorf("quiescence depth %d: %w", s.QuiescenceDepth, errors.ErrInvalidConfig)
	}
	if s.TTEntries < 0 {
		return fmt.Errorf("transposition entries %d: %w", s.TTEntries, errors.ErrInvalidConfig)
	}
	return nil
}

// ClampDepth forces a requested depth into MinDepth..MaxDepth.
func ClampDepth(depth int) int {
	if depth < MinDepth {
		return MinDepth
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}
