package config

import (
	"bytes"
	"testing"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Search.Depth != DefaultDepth {
		t.Errorf("Search.Depth = %d, want %d", cfg.Search.Depth, DefaultDepth)
	}
	if cfg.Search.QuiescenceDepth != DefaultQuiescenceDepth {
		t.Errorf("Search.QuiescenceDepth = %d, want %d", cfg.Search.QuiescenceDepth, DefaultQuiescenceDepth)
	}
	if !cfg.Search.Pruning {
		t.Error("Search.Pruning should be true by default")
	}
	if !cfg.Game.Automated || cfg.Game.AutomatedColour != chess.Black {
		t.Error("engine should play Black by default")
	}
	if cfg.Game.HintDepth != DefaultHintDepth {
		t.Errorf("Game.HintDepth = %d, want %d", cfg.Game.HintDepth, DefaultHintDepth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestClampDepth(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, MinDepth},
		{0, MinDepth},
		{1, 1},
		{3, 3},
		{5, 5},
		{6, MaxDepth},
		{100, MaxDepth},
	}
	for _, tt := range tests {
		if got := ClampDepth(tt.in); got != tt.want {
			t.Errorf("ClampDepth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"depth zero", func(c *Config) { c.Search.Depth = 0 }},
		{"depth too deep", func(c *Config) { c.Search.Depth = 9 }},
		{"negative quiescence", func(c *Config) { c.Search.QuiescenceDepth = -1 }},
		{"negative tt", func(c *Config) { c.Search.TTEntries = -1 }},
		{"hint depth zero", func(c *Config) { c.Game.HintDepth = 0 }},
		{"negative verbosity", func(c *Config) { c.Verbosity = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigBuilder(t *testing.T) {
	var log bytes.Buffer
	cfg := NewConfigBuilder().
		WithDepth(8).
		WithHintDepth(0).
		WithSeed(42).
		WithJitter(false).
		WithPruning(false).
		WithAutomatedPlayer(chess.White).
		WithStrict(true).
		WithLogFile(&log).
		WithVerbosity(2).
		Build()

	if cfg.Search.Depth != MaxDepth {
		t.Errorf("Depth = %d, want clamped %d", cfg.Search.Depth, MaxDepth)
	}
	if cfg.Game.HintDepth != MinDepth {
		t.Errorf("HintDepth = %d, want clamped %d", cfg.Game.HintDepth, MinDepth)
	}
	if cfg.Search.Seed != 42 || cfg.Search.Jitter || cfg.Search.Pruning {
		t.Errorf("search settings not applied: %+v", cfg.Search)
	}
	if cfg.Game.AutomatedColour != chess.White || !cfg.Strict {
		t.Error("game settings not applied")
	}

	cfg.Logf(2, "depth %d", 5)
	cfg.Logf(3, "hidden")
	if got := log.String(); got != "depth 5\n" {
		t.Errorf("log = %q, want %q", got, "depth 5\n")
	}
}

func TestWithoutAutomatedPlayer(t *testing.T) {
	cfg := NewConfigBuilder().WithoutAutomatedPlayer().Build()
	if cfg.Game.Automated {
		t.Error("Automated should be false")
	}
}
