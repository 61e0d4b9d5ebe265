// Package search chooses moves with depth-bounded minimax, alpha-beta
// pruning, a capture-only quiescence extension and a transposition table.
//
// A Searcher mutates the board it is given through MakeMove/UndoMove and
// restores it before returning. It is not safe for concurrent use; give
// each goroutine its own Searcher and its own board.
package search

import (
	"context"
	"time"

	"golang.org/x/exp/rand"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/eval"
)

// Infinity bounds every score, mates included.
const Infinity = 2 * eval.Mate

// Stats counts work done by one ChooseMove call.
type Stats struct {
	Nodes   int
	QNodes  int
	TTHits  int
	Cutoffs int
	TTUsed  int // occupied table slots when the search ended
}

// Result is the outcome of ChooseMove. Found is false when the side had no
// legal move; the caller decides whether that is mate or stalemate.
type Result struct {
	Move  chess.Move
	Score int
	Found bool
	Stats Stats
}

// ProgressFunc receives the percentage of root moves searched so far.
type ProgressFunc func(percent int)

// Searcher runs searches with one configuration.
type Searcher struct {
	cfg   config.SearchConfig
	eval  *eval.Evaluator
	tt    *TransTable
	rng   *rand.Rand
	stats Stats
}

// NewSearcher creates a searcher. A zero seed is replaced by the clock.
func NewSearcher(cfg config.SearchConfig, ev *eval.Evaluator) *Searcher {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if ev == nil {
		ev = eval.NewEvaluator(eval.DefaultWeights())
	}
	entries := cfg.TTEntries
	if entries <= 0 {
		entries = config.DefaultTTEntries
	}
	return &Searcher{
		cfg:  cfg,
		eval: ev,
		tt:   NewTransTable(entries),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// SetStrict enables transposition table verification panics.
func (s *Searcher) SetStrict(on bool) {
	s.tt.SetStrict(on)
}

// ChooseMove picks the best move for colour at the given depth, clamped
// to config.MinDepth..config.MaxDepth. The transposition table is cleared
// first. Ties between equally scored root moves are broken at random.
//
// ctx is checked only between root moves, so the board is always fully
// restored when ChooseMove returns. On cancellation the best move found so
// far is returned with ctx's error.
func (s *Searcher) ChooseMove(ctx context.Context, b *engine.Board, colour chess.Colour, depth int, progress ProgressFunc) (Result, error) {
	depth = config.ClampDepth(depth)
	s.tt.Clear()
	s.stats = Stats{}

	moves := b.LegalMoves(colour)
	if len(moves) == 0 {
		return Result{}, nil
	}
	moves = s.orderRoot(b, moves)

	best := -Infinity
	var candidates []chess.Move
	for i, m := range moves {
		if err := ctx.Err(); err != nil {
			return s.pick(candidates, best), err
		}

		b.MakeMove(m)
		score := s.Search(b, depth-1, false, -Infinity, Infinity, colour)
		b.UndoMove()

		switch {
		case score > best:
			best = score
			candidates = append(candidates[:0], m)
		case score == best:
			candidates = append(candidates, m)
		}

		if progress != nil {
			progress((i + 1) * 100 / len(moves))
		}
	}
	return s.pick(candidates, best), nil
}

func (s *Searcher) pick(candidates []chess.Move, score int) Result {
	s.stats.TTUsed = s.tt.Used()
	if len(candidates) == 0 {
		return Result{Stats: s.stats}
	}
	m := candidates[0]
	if len(candidates) > 1 {
		m = candidates[s.rng.Intn(len(candidates))]
	}
	return Result{Move: m, Score: score, Found: true, Stats: s.stats}
}

// Search is depth-bounded minimax with alpha-beta pruning. Scores are from
// root's point of view; maximizing is true when root is to move. Mates
// score Mate+depth so that nearer mates are preferred.
func (s *Searcher) Search(b *engine.Board, depth int, maximizing bool, alpha, beta int, root chess.Colour) int {
	s.stats.Nodes++
	side := root
	if !maximizing {
		side = root.Opposite()
	}

	hash, key := b.Hash(), b.Key()
	if e, ok := s.tt.Probe(hash, key, depth, side); ok {
		switch {
		case e.Bound == BoundExact,
			e.Bound == BoundLower && e.Score >= beta,
			e.Bound == BoundUpper && e.Score <= alpha:
			s.stats.TTHits++
			return e.Score
		}
	}

	if depth <= 0 {
		if maximizing {
			return s.Quiescence(b, side, s.cfg.QuiescenceDepth, alpha, beta)
		}
		return -s.Quiescence(b, side, s.cfg.QuiescenceDepth, -beta, -alpha)
	}

	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		score := 0
		if b.IsInCheck(side) {
			score = eval.Mate + depth
			if maximizing {
				score = -score
			}
		}
		s.tt.Store(hash, key, depth, side, score, BoundExact)
		return score
	}
	moves = orderInner(b, moves)

	origAlpha, origBeta := alpha, beta
	if !s.cfg.Pruning {
		// Plain minimax: every child sees the full window, so every
		// score is exact.
		alpha, beta = -Infinity, Infinity
		origAlpha, origBeta = alpha, beta
	}
	var best int
	if maximizing {
		best = -Infinity
		for _, m := range moves {
			b.MakeMove(m)
			score := s.Search(b, depth-1, false, alpha, beta, root)
			b.UndoMove()
			if score > best {
				best = score
			}
			if !s.cfg.Pruning {
				continue
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				s.stats.Cutoffs++
				break
			}
		}
	} else {
		best = Infinity
		for _, m := range moves {
			b.MakeMove(m)
			score := s.Search(b, depth-1, true, alpha, beta, root)
			b.UndoMove()
			if score < best {
				best = score
			}
			if !s.cfg.Pruning {
				continue
			}
			if best < beta {
				beta = best
			}
			if beta <= alpha {
				s.stats.Cutoffs++
				break
			}
		}
	}

	bound := BoundExact
	switch {
	case best <= origAlpha:
		bound = BoundUpper
	case best >= origBeta:
		bound = BoundLower
	}
	s.tt.Store(hash, key, depth, side, best, bound)
	return best
}
