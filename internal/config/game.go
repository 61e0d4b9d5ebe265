package config

import (
	"fmt"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// DefaultHintDepth is the depth of the shallow search behind a hint.
const DefaultHintDepth = 2

// GameConfig holds settings for the game controller.
type GameConfig struct {
	// Automated enables the engine-driven opponent.
	Automated bool

	// AutomatedColour is the side the engine plays when Automated is set.
	AutomatedColour chess.Colour

	// HintDepth is the search depth used by hint requests.
	HintDepth int

	// StartFEN is the starting position; empty means the standard position.
	StartFEN string
}

// NewGameConfig creates a GameConfig with default values: a human plays
// White against the engine.
func NewGameConfig() *GameConfig {
	return &GameConfig{
		Automated:       true,
		AutomatedColour: chess.Black,
		HintDepth:       DefaultHintDepth,
	}
}

// Validate checks the game settings.
func (g *GameConfig) Validate() error {
	if g.HintDepth < MinDepth || g.HintDepth > MaxDepth {
		return fmt.Errorf("hint depth %d outside %d..%d: %w", g.HintDepth, MinDepth, MaxDepth, errors.ErrInvalidConfig)
	}
	return nil
}
