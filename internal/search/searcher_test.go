package search

import (
	"context"
	"testing"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/eval"
	"github.com/lgbarn/chessplay-go/internal/testutil"
)

func testConfig(pruning bool) config.SearchConfig {
	cfg := *config.NewSearchConfig()
	cfg.Seed = 42
	cfg.Jitter = false
	cfg.Pruning = pruning
	cfg.QuiescenceDepth = 2
	cfg.TTEntries = 1 << 12
	return cfg
}

func newTestSearcher(pruning bool) *Searcher {
	s := NewSearcher(testConfig(pruning), eval.NewEvaluator(eval.DefaultWeights()))
	s.SetStrict(true)
	return s
}

func mustSetup(t *testing.T, fen string) engine.Setup {
	t.Helper()
	setup, err := engine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	setup.Board.SetStrict(true)
	return setup
}

func TestChooseMove_PrunedMatchesMinimax(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{"initial", engine.InitialFEN, 2},
		{"hanging queen", "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1", 3},
		{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 2},
		{"mate in one", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 2},
		{"black to move", "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if testing.Short() && tt.depth > 2 {
				t.Skip("skipping deep search in short mode")
			}
			setup := mustSetup(t, tt.fen)
			pruned, err := newTestSearcher(true).ChooseMove(context.Background(), setup.Board, setup.ToMove, tt.depth, nil)
			testutil.AssertNoError(t, err)
			plain, err := newTestSearcher(false).ChooseMove(context.Background(), setup.Board, setup.ToMove, tt.depth, nil)
			testutil.AssertNoError(t, err)

			testutil.AssertEqual(t, pruned.Score, plain.Score, "root score")
		})
	}
}

func TestChooseMove_FindsMateInOne(t *testing.T) {
	setup := mustSetup(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	for depth := 1; depth <= 3; depth++ {
		res, err := newTestSearcher(true).ChooseMove(context.Background(), setup.Board, chess.White, depth, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, res.Found, "depth %d found a move", depth)
		testutil.AssertEqual(t, res.Move.String(), "a1a8", "depth %d", depth)
		testutil.AssertTrue(t, res.Score >= eval.Mate, "depth %d score %d", depth, res.Score)
	}
}

func TestChooseMove_WinsHangingQueen(t *testing.T) {
	setup := mustSetup(t, "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	res, err := newTestSearcher(true).ChooseMove(context.Background(), setup.Board, chess.White, 2, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, res.Move.String(), "d1d5")
}

func TestChooseMove_BlackAvoidsMate(t *testing.T) {
	// Black must stop Qxf7#.
	setup := mustSetup(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR b KQkq - 3 3")
	res, err := newTestSearcher(true).ChooseMove(context.Background(), setup.Board, chess.Black, 2, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, res.Found)
	testutil.AssertTrue(t, res.Score > -eval.Mate/2, "black found no defence: %s scored %d", res.Move, res.Score)
}

func TestChooseMove_NoLegalMoves(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"stalemate", "k7/2Q5/8/8/8/8/8/7K b - - 0 1"},
		{"checkmate", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			setup := mustSetup(t, tt.fen)
			s := newTestSearcher(true)
			res, err := s.ChooseMove(context.Background(), setup.Board, chess.Black, 3, nil)
			testutil.AssertNoError(t, err)
			testutil.AssertFalse(t, res.Found, "Found")
			testutil.AssertEqual(t, res.Stats.TTUsed, 0, "table entries")
		})
	}
}

func TestChooseMove_LeavesBoardUnchanged(t *testing.T) {
	setup := mustSetup(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := setup.Board.Snapshot()
	res, err := newTestSearcher(true).ChooseMove(context.Background(), setup.Board, chess.White, 2, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, setup.Board.Snapshot(), before)
	testutil.AssertTrue(t, res.Stats.TTUsed > 0, "no table entries after a depth 2 search")
}

func TestChooseMove_ClampsDepth(t *testing.T) {
	setup := mustSetup(t, "7k/8/8/8/8/8/8/K7 w - - 0 1")
	run := func(depth int) Stats {
		res, err := newTestSearcher(true).ChooseMove(context.Background(), setup.Board, chess.White, depth, nil)
		testutil.AssertNoError(t, err)
		return res.Stats
	}
	testutil.AssertEqual(t, run(-3), run(config.MinDepth), "depth below range")
	testutil.AssertEqual(t, run(0), run(config.MinDepth), "zero depth")
	testutil.AssertEqual(t, run(99), run(config.MaxDepth), "depth above range")
}

func TestChooseMove_Progress(t *testing.T) {
	setup := mustSetup(t, engine.InitialFEN)
	var reports []int
	_, err := newTestSearcher(true).ChooseMove(context.Background(), setup.Board, chess.White, 1, func(p int) {
		reports = append(reports, p)
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(reports), 20, "one report per root move")
	for i := 1; i < len(reports); i++ {
		testutil.AssertTrue(t, reports[i] >= reports[i-1], "progress went backwards: %v", reports)
	}
	testutil.AssertEqual(t, reports[len(reports)-1], 100)
}

func TestChooseMove_Cancellation(t *testing.T) {
	t.Run("cancelled before start", func(t *testing.T) {
		setup := mustSetup(t, engine.InitialFEN)
		before := setup.Board.Snapshot()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := newTestSearcher(true).ChooseMove(ctx, setup.Board, chess.White, 3, nil)
		testutil.AssertErrorIs(t, err, context.Canceled)
		testutil.AssertFalse(t, res.Found)
		testutil.AssertEqual(t, setup.Board.Snapshot(), before)
	})

	t.Run("cancelled between root moves", func(t *testing.T) {
		setup := mustSetup(t, engine.InitialFEN)
		before := setup.Board.Snapshot()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		calls := 0
		res, err := newTestSearcher(true).ChooseMove(ctx, setup.Board, chess.White, 2, func(int) {
			calls++
			cancel()
		})
		testutil.AssertErrorIs(t, err, context.Canceled)
		testutil.AssertEqual(t, calls, 1, "root moves searched after cancel")
		testutil.AssertTrue(t, res.Found, "best move so far")
		testutil.AssertEqual(t, setup.Board.Snapshot(), before)
	})
}

func TestChooseMove_SeededTieBreakIsReproducible(t *testing.T) {
	setup := mustSetup(t, engine.InitialFEN)
	cfg := testConfig(true)
	cfg.Jitter = true
	first, err := NewSearcher(cfg, nil).ChooseMove(context.Background(), setup.Board, chess.White, 1, nil)
	testutil.AssertNoError(t, err)
	second, err := NewSearcher(cfg, nil).ChooseMove(context.Background(), setup.Board, chess.White, 1, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, first.Move, second.Move)
}

func TestQuiescence(t *testing.T) {
	s := newTestSearcher(true)
	ev := eval.NewEvaluator(eval.DefaultWeights())

	setup := mustSetup(t, "4k3/8/8/3p4/8/8/8/3QK3 w - - 0 1")
	standPat := ev.Evaluate(setup.Board, chess.White, chess.White)

	testutil.AssertEqual(t, s.Quiescence(setup.Board, chess.White, 0, -Infinity, Infinity), standPat, "qdepth 0 is stand-pat")
	got := s.Quiescence(setup.Board, chess.White, 2, -Infinity, Infinity)
	testutil.AssertTrue(t, got > standPat, "capturing the pawn should help: %d vs %d", got, standPat)

	testutil.AssertEqual(t, s.Quiescence(setup.Board, chess.White, 2, -Infinity, standPat-1), standPat-1, "fail high returns beta")
}
