// chessplay plays chess against a depth-limited alpha-beta engine in the
// terminal, or analyses a file of positions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/chessplay-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	os.Exit(run())
}

// run does the work of main and returns the exit code, so that deferred
// closes run before the process exits.
func run() int {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		return 0
	}

	if *version {
		fmt.Printf("chessplay version %s\n", programVersion)
		return 0
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	logF, err := setupLogFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logF != nil {
		defer logF.Close() //nolint:errcheck // diagnostics only
	}

	outF, err := setupOutputFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if outF != nil {
		defer func() {
			if err := outF.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing output file: %v\n", err)
			}
		}()
	}

	if *analyseFile != "" {
		return analyseFromFile(cfg, *analyseFile)
	}

	if err := runGame(cfg, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setupLogFile opens the log file named by -l (truncated) or -L
// (appended) and points cfg.LogFile at it. -L wins if both are given.
// The returned file is nil when no log file was requested.
func setupLogFile(cfg *config.Config) (*os.File, error) {
	var (
		file *os.File
		err  error
	)
	switch {
	case *appendLog != "":
		file, err = os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", *appendLog, err)
		}
	case *logFile != "":
		file, err = os.Create(*logFile)
		if err != nil {
			return nil, fmt.Errorf("creating log file %s: %w", *logFile, err)
		}
	default:
		return nil, nil
	}
	cfg.LogFile = file
	return file, nil
}

// setupOutputFile creates the -o file and points cfg.OutputFile at it.
func setupOutputFile(cfg *config.Config) (*os.File, error) {
	if *outputFile == "" {
		return nil, nil
	}

	file, err := os.Create(*outputFile)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", *outputFile, err)
	}
	cfg.OutputFile = file
	return file, nil
}

// analyseFromFile runs batch analysis and returns the process exit code.
func analyseFromFile(cfg *config.Config, name string) int {
	file, err := os.Open(name) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file %s: %v\n", name, err)
		return 1
	}
	defer file.Close() //nolint:errcheck // read-only

	failed, err := runAnalysis(cfg, file, cfg.OutputFile, *workers, *jsonOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if failed > 0 {
		if cfg.Verbosity > 0 {
			fmt.Fprintf(os.Stderr, "%d position(s) could not be analysed.\n", failed)
		}
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessplay [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess against the engine, or analyse positions with -analyse.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nCommands during play:\n")
	printCommands(os.Stderr)
}
