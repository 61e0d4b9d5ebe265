package search

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
)

// Quiescence extends the search through capture sequences so that leaves
// are not scored in the middle of an exchange. It is negamax: the score is
// from side's point of view and the result is clamped to alpha..beta.
func (s *Searcher) Quiescence(b *engine.Board, side chess.Colour, qdepth, alpha, beta int) int {
	s.stats.QNodes++

	standPat := s.eval.Evaluate(b, side, side)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qdepth <= 0 {
		return alpha
	}

	captures := b.LegalCaptures(side)
	if len(captures) == 0 {
		return alpha
	}
	for _, m := range orderInner(b, captures) {
		b.MakeMove(m)
		score := -s.Quiescence(b, side.Opposite(), qdepth-1, -beta, -alpha)
		b.UndoMove()

		if score >= beta {
			s.stats.Cutoffs++
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
