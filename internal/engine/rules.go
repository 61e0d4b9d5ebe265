package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// HasInsufficientMaterial returns true if neither side can ever deliver
// checkmate. Insufficient material includes:
// - K vs K
// - K+B vs K and K+N vs K
// - any number of bishops, on either side, all standing on one square colour
func HasInsufficientMaterial(board *Board) bool {
	white := MaterialCount(board, chess.White)
	black := MaterialCount(board, chess.Black)

	for _, kind := range []chess.Kind{chess.Pawn, chess.Rook, chess.Queen} {
		if white[kind]+black[kind] > 0 {
			return false
		}
	}

	knights := white[chess.Knight] + black[chess.Knight]
	bishops := white[chess.Bishop] + black[chess.Bishop]
	if knights+bishops <= 1 {
		return true
	}
	if knights > 0 {
		return false
	}

	// Only bishops left: mate needs bishops on both square colours.
	light := 0
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, id := range board.Pieces(colour) {
			if board.Piece(id).Kind == chess.Bishop && board.SquareOf(id).IsLight() {
				light++
			}
		}
	}
	return light == 0 || light == bishops
}

// MaterialCount returns the number of on-board pieces of each kind for a colour.
func MaterialCount(board *Board, colour chess.Colour) [chess.NumKinds]int {
	var counts [chess.NumKinds]int
	for _, id := range board.Pieces(colour) {
		counts[board.Piece(id).Kind]++
	}
	return counts
}
