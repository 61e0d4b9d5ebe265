// Package config provides configuration for the chess engine, the game
// controller and the command-line front end.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chessplay-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	// Verbosity controls logging: 0=nothing, 1=moves and search summaries,
	// 2=running commentary including search statistics.
	Verbosity int

	// Strict enables board invariant verification after every mutation.
	// Drift panics instead of being silently carried forward.
	Strict bool

	Search SearchConfig
	Game   GameConfig
	Output OutputConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Search:     *NewSearchConfig(),
		Game:       *NewGameConfig(),
		Output:     *NewOutputConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	return c.Game.Validate()
}

// Logf writes a log line when the configured verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}
