package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	sentinels := []error{
		ErrInvalidFEN, ErrIllegalMove, ErrInvalidSquare, ErrInvalidConfig,
		ErrEmptyHistory, ErrOffBoard, ErrBoardCorrupt, ErrTTMismatch,
		ErrSearchBusy, ErrGameOver,
	}
	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", sentinel)
			if !Is(wrapped, sentinel) {
				t.Errorf("Is(wrapped, %v) = false, want true", sentinel)
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrOffBoard, ErrInvalidSquare) {
		t.Error("ErrOffBoard must not match ErrInvalidSquare")
	}
}

func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
		want     string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:      ErrIllegalMove,
				PlyNum:   12,
				MoveText: "e1g1",
				FEN:      "8/8/8/8/8/8/8/4K2R w K - 0 1",
			},
			contains: []string{"ply 12", "e1g1", "4K2R", "illegal move"},
		},
		{
			name:     "error only",
			err:      &MoveError{Err: ErrGameOver},
			contains: []string{"game is over"},
		},
		{
			name: "empty",
			err:  &MoveError{},
			want: "move error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
			if tt.want != "" && msg != tt.want {
				t.Errorf("MoveError.Error() = %q, want %q", msg, tt.want)
			}
		})
	}
}

func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{Err: ErrIllegalMove, PlyNum: 3, MoveText: "e2e5"}
	wrapped := fmt.Errorf("submit: %w", moveErr)

	var extracted *MoveError
	if !As(wrapped, &extracted) {
		t.Fatal("As() could not extract MoveError")
	}
	if extracted.PlyNum != 3 {
		t.Errorf("extracted.PlyNum = %d, want 3", extracted.PlyNum)
	}
	if !Is(wrapped, ErrIllegalMove) {
		t.Error("Is(wrapped, ErrIllegalMove) = false, want true")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	wrapped := Wrap(ErrInvalidFEN, "parsing FEN string")
	if !Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}
	if !strings.Contains(wrapped.Error(), "parsing FEN string") {
		t.Errorf("Wrap should include context, got %q", wrapped.Error())
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "ply %d", 15)
	if !Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !strings.Contains(wrapped.Error(), "ply 15") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
}
