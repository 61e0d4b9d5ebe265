package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chessplay-go/internal/chess"
)

// ParseLine parses a space-separated list of coordinate moves such as
// "e2e4 e7e5 g1f3". Colours alternate starting with first.
// It calls t.Fatal on a malformed move.
func ParseLine(t testing.TB, line string, first chess.Colour) []chess.Move {
	t.Helper()
	fields := strings.Fields(line)
	moves := make([]chess.Move, 0, len(fields))
	colour := first
	for _, f := range fields {
		m, err := chess.ParseMove(f, colour)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
		moves = append(moves, m)
		colour = colour.Opposite()
	}
	return moves
}

// MoveStrings converts moves to coordinate notation for readable diffs.
func MoveStrings(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
