package engine

import (
	"slices"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/testutil"
)

const (
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	endgameFEN   = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	promotionFEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	talkchessFEN = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

func perft(b *Board, colour chess.Colour, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := b.LegalMoves(colour)
	if depth == 1 {
		return len(moves)
	}
	total := 0
	for _, m := range moves {
		b.MakeMove(m)
		total += perft(b, colour.Opposite(), depth-1)
		b.UndoMove()
	}
	return total
}

func TestPerft(t *testing.T) {
	// Depths are chosen so no promotion occurs within the tree; this
	// engine only ever promotes to a queen.
	tests := []struct {
		name  string
		fen   string
		depth int
		want  int
	}{
		{"initial depth 1", InitialFEN, 1, 20},
		{"initial depth 2", InitialFEN, 2, 400},
		{"initial depth 3", InitialFEN, 3, 8902},
		{"kiwipete depth 1", kiwipeteFEN, 1, 48},
		{"kiwipete depth 2", kiwipeteFEN, 2, 2039},
		{"endgame depth 1", endgameFEN, 1, 14},
		{"endgame depth 2", endgameFEN, 2, 191},
		{"endgame depth 3", endgameFEN, 3, 2812},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if testing.Short() && tt.depth > 2 {
				t.Skip("skipping deep perft in short mode")
			}
			setup := MustParseFEN(tt.fen)
			before := setup.Board.Snapshot()
			if got := perft(setup.Board, setup.ToMove, tt.depth); got != tt.want {
				t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.want)
			}
			testutil.AssertEqual(t, setup.Board.Snapshot(), before, "board after perft")
		})
	}
}

// oracleMoves lists the reference generator's moves in coordinate form,
// keeping only queen promotions and dropping their suffix.
func oracleMoves(db *dragontoothmg.Board) map[string]dragontoothmg.Move {
	out := make(map[string]dragontoothmg.Move)
	for _, m := range db.GenerateLegalMoves() {
		s := m.String()
		if len(s) == 5 {
			if s[4] != 'q' {
				continue
			}
			s = s[:4]
		}
		out[s] = m
	}
	return out
}

func sortedKeys(m map[string]dragontoothmg.Move) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func sortedMoves(moves []chess.Move) []string {
	out := testutil.MoveStrings(moves)
	slices.Sort(out)
	return out
}

// compareWithOracle walks both generators in lockstep to the given depth.
func compareWithOracle(t *testing.T, b *Board, db *dragontoothmg.Board, colour chess.Colour, depth int, path []string) {
	t.Helper()
	want := oracleMoves(db)
	got := sortedMoves(b.LegalMoves(colour))
	if !cmp.Equal(got, sortedKeys(want)) {
		t.Fatalf("after %q: legal moves differ\n got: %v\nwant: %v\n%s",
			strings.Join(path, " "), got, sortedKeys(want), b)
	}
	if depth <= 1 {
		return
	}
	for _, text := range got {
		m := chess.MustParseMove(text, colour)
		b.MakeMove(m)
		undo := db.Apply(want[text])
		compareWithOracle(t, b, db, colour.Opposite(), depth-1, append(path, text))
		undo()
		b.UndoMove()
	}
}

func TestLegalMoves_MatchReferenceGenerator(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{"initial", InitialFEN, 2},
		{"kiwipete", kiwipeteFEN, 2},
		{"endgame", endgameFEN, 3},
		{"promotions", promotionFEN, 2},
		{"talkchess", talkchessFEN, 2},
		{"en passant available", "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", 2},
		{"en passant pinned", "8/8/8/K2pP2r/8/8/8/7k w - d6 0 1", 1},
		{"checked king", "4k3/8/8/8/8/8/3q4/4K3 w - - 0 1", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := MustParseFEN(tt.fen)
			setup.Board.SetStrict(true)
			db := dragontoothmg.ParseFen(tt.fen)
			compareWithOracle(t, setup.Board, &db, setup.ToMove, tt.depth, nil)
		})
	}
}

func TestLegalCaptures(t *testing.T) {
	setup := MustParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	got := sortedMoves(setup.Board.LegalCaptures(chess.White))
	testutil.AssertEqual(t, got, []string{"e5f6"})

	setup = MustParseFEN(kiwipeteFEN)
	for _, m := range setup.Board.LegalCaptures(chess.White) {
		testutil.AssertTrue(t, setup.Board.IsCapture(m), "%s is not a capture", m)
	}
	testutil.AssertEqual(t, len(setup.Board.LegalCaptures(chess.White)), 8)
}

func TestTerminalStates(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		colour    chess.Colour
		checkmate bool
		stalemate bool
	}{
		{"initial", InitialFEN, chess.White, false, false},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", chess.White, true, false},
		{"scholar's mate", "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4", chess.Black, true, false},
		{"back rank", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", chess.Black, false, false},
		{"back rank mated", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", chess.Black, true, false},
		{"king in corner stalemated", "k7/2Q5/8/8/8/8/8/7K b - - 0 1", chess.Black, false, true},
		{"stalemate only for side to move", "k7/2Q5/8/8/8/8/8/7K b - - 0 1", chess.White, false, false},
		{"check with escape", "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", chess.Black, false, false},
		{"boxed-in king stalemate", "8/8/8/8/8/k7/p7/K7 w - - 0 1", chess.White, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			testutil.AssertEqual(t, b.IsCheckmate(tt.colour), tt.checkmate, "IsCheckmate")
			testutil.AssertEqual(t, b.IsStalemate(tt.colour), tt.stalemate, "IsStalemate")
			testutil.AssertEqual(t, b.HasLegalMove(tt.colour), !tt.checkmate && !tt.stalemate, "HasLegalMove")
		})
	}
}
