package config

import (
	"io"

	"github.com/lgbarn/chessplay-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithDepth sets the search depth. Out-of-range values are clamped.
func (b *ConfigBuilder) WithDepth(depth int) *ConfigBuilder {
	b.cfg.Search.Depth = ClampDepth(depth)
	return b
}

// WithQuiescenceDepth sets the capture-extension depth.
func (b *ConfigBuilder) WithQuiescenceDepth(depth int) *ConfigBuilder {
	b.cfg.Search.QuiescenceDepth = depth
	return b
}

// WithSeed fixes the random seed used for jitter and tie-breaking.
func (b *ConfigBuilder) WithSeed(seed uint64) *ConfigBuilder {
	b.cfg.Search.Seed = seed
	return b
}

// WithJitter enables or disables root move-order jitter.
func (b *ConfigBuilder) WithJitter(enabled bool) *ConfigBuilder {
	b.cfg.Search.Jitter = enabled
	return b
}

// WithPruning enables or disables alpha-beta cutoffs.
func (b *ConfigBuilder) WithPruning(enabled bool) *ConfigBuilder {
	b.cfg.Search.Pruning = enabled
	return b
}

// WithTTEntries sets the transposition table capacity.
func (b *ConfigBuilder) WithTTEntries(n int) *ConfigBuilder {
	b.cfg.Search.TTEntries = n
	return b
}

// WithAutomatedPlayer makes the engine play the given colour.
func (b *ConfigBuilder) WithAutomatedPlayer(colour chess.Colour) *ConfigBuilder {
	b.cfg.Game.Automated = true
	b.cfg.Game.AutomatedColour = colour
	return b
}

// WithoutAutomatedPlayer makes both sides human.
func (b *ConfigBuilder) WithoutAutomatedPlayer() *ConfigBuilder {
	b.cfg.Game.Automated = false
	return b
}

// WithHintDepth sets the hint search depth. Out-of-range values are clamped.
func (b *ConfigBuilder) WithHintDepth(depth int) *ConfigBuilder {
	b.cfg.Game.HintDepth = ClampDepth(depth)
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.Game.StartFEN = fen
	return b
}

// WithStrict enables board invariant verification.
func (b *ConfigBuilder) WithStrict(enabled bool) *ConfigBuilder {
	b.cfg.Strict = enabled
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithLogFile sets the log writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithColour enables or disables ANSI colours in board output.
func (b *ConfigBuilder) WithColour(enabled bool) *ConfigBuilder {
	b.cfg.Output.Colour = enabled
	return b
}
