// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

var (
	// Search options
	depth     = flag.Int("depth", config.DefaultDepth, "Search depth in plies (1-5)")
	qdepth    = flag.Int("qdepth", config.DefaultQuiescenceDepth, "Capture plies searched past -depth")
	hintDepth = flag.Int("hint-depth", config.DefaultHintDepth, "Search depth for hints (1-5)")
	seed      = flag.Uint64("seed", 0, "Random seed for move ordering and tie-breaks (0 = time based)")
	noJitter  = flag.Bool("nojitter", false, "Disable random jitter in root move ordering")
	ttEntries = flag.Int("tt", config.DefaultTTEntries, "Transposition table entries")

	// Game options
	humanSide = flag.String("colour", "white", "Side the human plays: white, black or both")
	startFEN  = flag.String("fen", "", "Starting position as FEN (default: standard position)")
	noColour  = flag.Bool("nocolour", false, "Draw the board without colours")
	flipBoard = flag.Bool("flip", false, "Draw the board from Black's side")

	// Output options
	outputFile = flag.String("o", "", "Write the game record or analysis here (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Write the game record or analysis as JSON")
	eventName  = flag.String("event", "Casual game", "PGN Event tag")

	// Batch analysis
	analyseFile = flag.String("analyse", "", "File of FEN positions, one per line, to analyse and exit")
	workers     = flag.Int("workers", 0, "Number of analysis workers (0 = auto-detect based on CPU cores)")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbosity = flag.Int("v", 1, "Diagnostic detail: 0 (none), 1 (moves), 2 (search statistics)")
	quiet     = flag.Bool("s", false, "Silent mode (no diagnostics)")

	// Debugging
	strictMode = flag.Bool("strict", false, "Verify board invariants after every move")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	applySearchFlags(cfg)
	if err := applyGameFlags(cfg); err != nil {
		return err
	}

	cfg.Output.Event = *eventName
	cfg.Output.Colour = !*noColour
	cfg.Strict = *strictMode
	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = 0
	}
	return cfg.Validate()
}

// applySearchFlags configures the engine's search.
func applySearchFlags(cfg *config.Config) {
	cfg.Search.Depth = config.ClampDepth(*depth)
	cfg.Search.QuiescenceDepth = *qdepth
	cfg.Search.Seed = *seed
	cfg.Search.Jitter = !*noJitter
	cfg.Search.TTEntries = *ttEntries
}

// applyGameFlags configures who plays which side and where the game starts.
func applyGameFlags(cfg *config.Config) error {
	cfg.Game.HintDepth = config.ClampDepth(*hintDepth)
	cfg.Game.StartFEN = *startFEN

	switch strings.ToLower(*humanSide) {
	case "white", "w":
		cfg.Game.Automated = true
		cfg.Game.AutomatedColour = chess.Black
		cfg.Output.White, cfg.Output.Black = "Human", "chessplay"
	case "black", "b":
		cfg.Game.Automated = true
		cfg.Game.AutomatedColour = chess.White
		cfg.Output.White, cfg.Output.Black = "chessplay", "Human"
	case "both":
		cfg.Game.Automated = false
		cfg.Output.White, cfg.Output.Black = "Human", "Human"
	default:
		return fmt.Errorf("-colour %q: want white, black or both: %w", *humanSide, errors.ErrInvalidConfig)
	}
	return nil
}
