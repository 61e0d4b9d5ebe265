package search

import (
	"cmp"
	"slices"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/eval"
)

const (
	checkOrderBonus = 50
	jitterRange     = 5
)

// scoredMove pairs a move with its ordering score.
type scoredMove struct {
	move  chess.Move
	score int
}

// attackerValue is the ordering cost of the capturing piece. The king is
// the most expensive attacker.
func attackerValue(kind chess.Kind) int {
	if kind == chess.King {
		return 2 * eval.PieceValues[chess.Queen]
	}
	return eval.PieceValues[kind]
}

// captureScore ranks captures by victim value minus a tenth of the
// attacker's value. Quiet moves score zero.
func captureScore(b *engine.Board, m chess.Move) int {
	if !b.IsCapture(m) {
		return 0
	}
	mover, _ := b.PieceAtSquare(m.From)
	victim := chess.Pawn
	if p, ok := b.PieceAtSquare(m.To); ok {
		victim = p.Kind
	}
	return eval.PieceValues[victim] - attackerValue(mover.Kind)/10
}

// centrality is 0 on the edge files and 3 on the d and e files.
func centrality(file int) int {
	if file > 3 {
		file = 7 - file
	}
	return file
}

// orderRoot sorts root moves: captures, then pawn moves toward the centre,
// plus optional jitter.
func (s *Searcher) orderRoot(b *engine.Board, moves []chess.Move) []chess.Move {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		score := captureScore(b, m)
		if p, ok := b.PieceAtSquare(m.From); ok && p.Kind == chess.Pawn {
			score += 5 * centrality(m.To.File)
		}
		if s.cfg.Jitter {
			score += s.rng.Intn(jitterRange)
		}
		scored[i] = scoredMove{move: m, score: score}
	}
	return sortScored(scored)
}

// orderInner sorts moves below the root: captures, checks, and pawns
// close to promotion.
func orderInner(b *engine.Board, moves []chess.Move) []chess.Move {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		score := captureScore(b, m)
		mover, _ := b.PieceAtSquare(m.From)
		if mover.Kind == chess.Pawn {
			dist := (mover.Colour.PromotionRank() - m.To.Rank) * mover.Colour.Forward()
			score += 10 * (chess.BoardSize - 1 - dist)
		}
		b.MakeMove(m)
		if b.IsInCheck(m.Colour.Opposite()) {
			score += checkOrderBonus
		}
		b.UndoMove()
		scored[i] = scoredMove{move: m, score: score}
	}
	return sortScored(scored)
}

func sortScored(scored []scoredMove) []chess.Move {
	slices.SortStableFunc(scored, func(a, b scoredMove) int {
		return cmp.Compare(b.score, a.score)
	})
	out := make([]chess.Move, len(scored))
	for i, sm := range scored {
		out[i] = sm.move
	}
	return out
}
