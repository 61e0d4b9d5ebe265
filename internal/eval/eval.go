// Package eval scores chess positions statically.
package eval

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
)

// Mate is the magnitude of a checkmate score. Every non-terminal score is
// far below it.
const Mate = 100000

// Weights holds the heuristic bonuses on top of material and piece-square
// values. A zero weight disables its term.
type Weights struct {
	// Check is awarded for giving check and charged for being in check.
	Check int
	// Centre is awarded per centre square occupied, and half of it per
	// centre square attacked.
	Centre int
	// Development is charged per knight or bishop still on its home square.
	Development int
}

// DefaultWeights returns the weights used by the engine.
func DefaultWeights() Weights {
	return Weights{
		Check:       50,
		Centre:      10,
		Development: 15,
	}
}

// Evaluator computes static scores. It holds no per-position state and is
// safe to share between goroutines.
type Evaluator struct {
	weights Weights
}

// NewEvaluator creates an evaluator with the given weights.
func NewEvaluator(w Weights) *Evaluator {
	return &Evaluator{weights: w}
}

// Evaluate scores the board from perspective's point of view; positive is
// good for perspective. toMove is the side whose turn it is and decides
// stalemate. The result is antisymmetric in perspective.
func (e *Evaluator) Evaluate(b *engine.Board, perspective, toMove chess.Colour) int {
	score := e.whiteScore(b, toMove)
	if perspective == chess.Black {
		return -score
	}
	return score
}

// whiteScore evaluates from White's side.
func (e *Evaluator) whiteScore(b *engine.Board, toMove chess.Colour) int {
	whiteInCheck := b.IsInCheck(chess.White)
	blackInCheck := b.IsInCheck(chess.Black)

	if whiteInCheck && !b.HasLegalMove(chess.White) {
		return -Mate
	}
	if blackInCheck && !b.HasLegalMove(chess.Black) {
		return Mate
	}
	if !b.IsInCheck(toMove) && !b.HasLegalMove(toMove) {
		return 0
	}

	score := Material(b, chess.White) - Material(b, chess.Black)

	if blackInCheck {
		score += e.weights.Check
	}
	if whiteInCheck {
		score -= e.weights.Check
	}

	score += e.centre(b, chess.White) - e.centre(b, chess.Black)
	score -= e.weights.Development * (undeveloped(b, chess.White) - undeveloped(b, chess.Black))
	return score
}

// Material returns the material plus piece-square total for one colour.
func Material(b *engine.Board, colour chess.Colour) int {
	total := 0
	for _, id := range b.Pieces(colour) {
		piece := b.Piece(id)
		total += PieceValues[piece.Kind] + PieceSquare(piece, b.SquareOf(id))
	}
	return total
}

func (e *Evaluator) centre(b *engine.Board, colour chess.Colour) int {
	if e.weights.Centre == 0 {
		return 0
	}
	bonus := 0
	for _, sq := range centreSquares {
		if p, ok := b.PieceAtSquare(sq); ok && p.Colour == colour {
			bonus += e.weights.Centre
		}
		if b.IsSquareAttacked(sq, colour) {
			bonus += e.weights.Centre / 2
		}
	}
	return bonus
}

// undeveloped counts the colour's minor pieces still on their home squares.
func undeveloped(b *engine.Board, colour chess.Colour) int {
	n := 0
	rank := colour.HomeRank()
	for _, h := range minorHomes {
		p, ok := b.PieceAt(h.file, rank)
		if ok && p == (chess.Piece{Kind: h.kind, Colour: colour}) {
			n++
		}
	}
	return n
}
