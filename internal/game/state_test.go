package game

import (
	"testing"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/testutil"
)

func TestState(t *testing.T) {
	tests := []struct {
		state  State
		over   bool
		result string
	}{
		{InProgress, false, "*"},
		{WhiteWinsByCheckmate, true, "1-0"},
		{BlackWinsByCheckmate, true, "0-1"},
		{DrawByStalemate, true, "1/2-1/2"},
		{DrawByInsufficientMaterial, true, "1/2-1/2"},
		{DrawByFiftyMoveRule, true, "1/2-1/2"},
		{DrawByRepetition, true, "1/2-1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			testutil.AssertEqual(t, tt.state.IsOver(), tt.over)
			testutil.AssertEqual(t, tt.state.Result(), tt.result)
		})
	}
}

func TestCheckmated(t *testing.T) {
	testutil.AssertEqual(t, checkmated(chess.White), BlackWinsByCheckmate)
	testutil.AssertEqual(t, checkmated(chess.Black), WhiteWinsByCheckmate)
}
