package output

import (
	"fmt"

	nchess "github.com/notnil/chess"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// Ply is one replayed move with its derived notations.
type Ply struct {
	Number    int // full-move number the move belongs to
	Colour    chess.Colour
	UCI       string
	SAN       string
	Piece     chess.Kind
	Captured  chess.Kind // NoKind for a quiet move
	Promotion bool
	FEN       string // position after the move
}

// Replay plays moves from startFEN (the standard position if empty) and
// derives SAN for each through notnil/chess. Every move is checked against
// the engine's own rules first; an illegal move is reported as a
// *errors.MoveError wrapping ErrIllegalMove.
func Replay(startFEN string, moves []chess.Move) ([]Ply, error) {
	if startFEN == "" {
		startFEN = engine.InitialFEN
	}
	setup, err := engine.ParseFEN(startFEN)
	if err != nil {
		return nil, err
	}
	board := setup.Board
	toMove := setup.ToMove
	halfmove, fullmove := setup.HalfmoveClock, setup.FullmoveNumber

	// notnil/chess wants all six FEN fields.
	fenOpt, err := nchess.FEN(engine.FEN(board, toMove, halfmove, fullmove))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, errors.ErrInvalidFEN)
	}
	game := nchess.NewGame(fenOpt)

	plies := make([]Ply, 0, len(moves))
	for i, m := range moves {
		if m.Colour != toMove || !board.IsLegal(m) {
			return nil, &errors.MoveError{
				Err:      errors.ErrIllegalMove,
				PlyNum:   i + 1,
				MoveText: m.String(),
				FEN:      engine.FEN(board, toMove, halfmove, fullmove),
			}
		}

		mover, _ := board.PieceAtSquare(m.From)
		uci := m.String()
		if mover.Kind == chess.Pawn && m.To.Rank == m.Colour.PromotionRank() {
			uci += "q"
		}

		pos := game.Position()
		decoded, err := nchess.UCINotation{}.Decode(pos, uci)
		if err == nil {
			err = game.Move(decoded)
		}
		if err != nil {
			return nil, &errors.MoveError{
				Err:      fmt.Errorf("%v: %w", err, errors.ErrIllegalMove),
				PlyNum:   i + 1,
				MoveText: uci,
				FEN:      pos.String(),
			}
		}
		played := game.Moves()
		san := nchess.AlgebraicNotation{}.Encode(pos, played[len(played)-1])

		rec := board.MakeMove(m)
		ply := Ply{
			Number:    fullmove,
			Colour:    m.Colour,
			UCI:       uci,
			SAN:       san,
			Piece:     mover.Kind,
			Promotion: rec.IsPromotion(),
		}
		if rec.IsCapture() {
			ply.Captured = board.Piece(rec.Captured).Kind
		}

		if mover.Kind == chess.Pawn || rec.IsCapture() {
			halfmove = 0
		} else {
			halfmove++
		}
		if toMove == chess.Black {
			fullmove++
		}
		toMove = toMove.Opposite()
		ply.FEN = engine.FEN(board, toMove, halfmove, fullmove)
		plies = append(plies, ply)
	}
	return plies, nil
}

// SAN returns the standard algebraic notation of each move.
func SAN(startFEN string, moves []chess.Move) ([]string, error) {
	plies, err := Replay(startFEN, moves)
	if err != nil {
		return nil, err
	}
	san := make([]string, len(plies))
	for i, p := range plies {
		san[i] = p.SAN
	}
	return san, nil
}
