package game

import "github.com/lgbarn/chessplay-go/internal/chess"

// State is the controller's game state. Only InProgress accepts moves.
type State int

const (
	InProgress State = iota
	WhiteWinsByCheckmate
	BlackWinsByCheckmate
	DrawByStalemate
	DrawByInsufficientMaterial
	DrawByFiftyMoveRule
	DrawByRepetition
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case WhiteWinsByCheckmate:
		return "white wins by checkmate"
	case BlackWinsByCheckmate:
		return "black wins by checkmate"
	case DrawByStalemate:
		return "draw by stalemate"
	case DrawByInsufficientMaterial:
		return "draw by insufficient material"
	case DrawByFiftyMoveRule:
		return "draw by fifty-move rule"
	case DrawByRepetition:
		return "draw by threefold repetition"
	}
	return "unknown"
}

// IsOver reports whether the game has ended.
func (s State) IsOver() bool {
	return s != InProgress
}

// Result returns the PGN result token.
func (s State) Result() string {
	switch s {
	case InProgress:
		return "*"
	case WhiteWinsByCheckmate:
		return "1-0"
	case BlackWinsByCheckmate:
		return "0-1"
	}
	return "1/2-1/2"
}

// checkmated returns the win state for the side that delivered mate.
func checkmated(loser chess.Colour) State {
	if loser == chess.White {
		return BlackWinsByCheckmate
	}
	return WhiteWinsByCheckmate
}
