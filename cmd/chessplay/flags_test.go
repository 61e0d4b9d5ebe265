package main

import (
	"flag"
	"testing"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/testutil"
)

// setFlag sets a command-line flag for the duration of the test.
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	f := flag.Lookup(name)
	if f == nil {
		t.Fatalf("no flag -%s", name)
	}
	if err := flag.Set(name, value); err != nil {
		t.Fatalf("flag.Set(%s, %s): %v", name, value, err)
	}
	t.Cleanup(func() { _ = flag.Set(name, f.DefValue) })
}

func TestApplyFlags_Defaults(t *testing.T) {
	cfg := config.NewConfig()
	testutil.AssertNoError(t, applyFlags(cfg))

	testutil.AssertEqual(t, cfg.Search.Depth, config.DefaultDepth)
	testutil.AssertEqual(t, cfg.Search.QuiescenceDepth, config.DefaultQuiescenceDepth)
	testutil.AssertTrue(t, cfg.Search.Jitter)
	testutil.AssertTrue(t, cfg.Game.Automated)
	testutil.AssertEqual(t, cfg.Game.AutomatedColour, chess.Black)
	testutil.AssertEqual(t, cfg.Output.White, "Human")
	testutil.AssertEqual(t, cfg.Verbosity, 1)
	testutil.AssertTrue(t, cfg.Output.Colour)
}

func TestApplyFlags_Colour(t *testing.T) {
	tests := []struct {
		value     string
		automated bool
		engine    chess.Colour
		white     string
		black     string
	}{
		{"white", true, chess.Black, "Human", "chessplay"},
		{"W", true, chess.Black, "Human", "chessplay"},
		{"black", true, chess.White, "chessplay", "Human"},
		{"both", false, chess.Black, "Human", "Human"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			setFlag(t, "colour", tt.value)
			cfg := config.NewConfig()
			testutil.AssertNoError(t, applyFlags(cfg))
			testutil.AssertEqual(t, cfg.Game.Automated, tt.automated)
			if tt.automated {
				testutil.AssertEqual(t, cfg.Game.AutomatedColour, tt.engine)
			}
			testutil.AssertEqual(t, cfg.Output.White, tt.white)
			testutil.AssertEqual(t, cfg.Output.Black, tt.black)
		})
	}
}

func TestApplyFlags_BadColour(t *testing.T) {
	setFlag(t, "colour", "purple")
	err := applyFlags(config.NewConfig())
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestApplyFlags_SearchOptions(t *testing.T) {
	setFlag(t, "depth", "9")
	setFlag(t, "hint-depth", "0")
	setFlag(t, "qdepth", "1")
	setFlag(t, "seed", "99")
	setFlag(t, "nojitter", "true")
	setFlag(t, "strict", "true")

	cfg := config.NewConfig()
	testutil.AssertNoError(t, applyFlags(cfg))
	testutil.AssertEqual(t, cfg.Search.Depth, config.MaxDepth)
	testutil.AssertEqual(t, cfg.Game.HintDepth, config.MinDepth)
	testutil.AssertEqual(t, cfg.Search.QuiescenceDepth, 1)
	testutil.AssertEqual(t, cfg.Search.Seed, uint64(99))
	testutil.AssertFalse(t, cfg.Search.Jitter)
	testutil.AssertTrue(t, cfg.Strict)
}

func TestApplyFlags_InvalidQuiescence(t *testing.T) {
	setFlag(t, "qdepth", "-1")
	testutil.AssertErrorIs(t, applyFlags(config.NewConfig()), errors.ErrInvalidConfig)
}

func TestApplyFlags_Quiet(t *testing.T) {
	setFlag(t, "v", "2")
	setFlag(t, "s", "true")
	setFlag(t, "nocolour", "true")

	cfg := config.NewConfig()
	testutil.AssertNoError(t, applyFlags(cfg))
	testutil.AssertEqual(t, cfg.Verbosity, 0)
	testutil.AssertFalse(t, cfg.Output.Colour)
}
