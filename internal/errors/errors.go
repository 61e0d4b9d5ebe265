// Package errors provides sentinel errors and error types for chessplay.
// Rule violations are reported as boolean results by the engine; the values
// here describe malformed input, invalid configuration, and the programmer
// errors that the engine refuses to survive.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules or cannot be parsed.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidSquare indicates a malformed or off-board square.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyHistory indicates an undo with no applied move to revert.
	ErrEmptyHistory = errors.New("undo with empty move history")

	// ErrOffBoard indicates a move applied to coordinates outside the grid.
	ErrOffBoard = errors.New("coordinates outside the board")

	// ErrBoardCorrupt indicates the grid and the piece index disagree.
	ErrBoardCorrupt = errors.New("board state inconsistent")

	// ErrTTMismatch indicates a transposition entry returned for a different depth or side.
	ErrTTMismatch = errors.New("transposition entry key mismatch")

	// ErrSearchBusy indicates a request made while a search owns the board.
	ErrSearchBusy = errors.New("search in progress")

	// ErrGameOver indicates a move submitted after the game has ended.
	ErrGameOver = errors.New("game is over")
)

// MoveError wraps errors with move context: the ply at which the move was
// attempted and its text. It supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	PlyNum   int    // 1-based ply number (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	FEN      string // Position the move was attempted in (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}
	if e.FEN != "" {
		parts = append(parts, fmt.Sprintf("position %q", e.FEN))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%s: %v", context, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "move error"
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain matches target.
// It re-exports the standard library function so callers need one import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
