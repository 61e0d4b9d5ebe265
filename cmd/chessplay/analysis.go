// analysis.go - Batch position analysis on a worker pool
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/eval"
	"github.com/lgbarn/chessplay-go/internal/output"
	"github.com/lgbarn/chessplay-go/internal/search"
	"github.com/lgbarn/chessplay-go/internal/worker"
)

// positionJob is one FEN line from the input.
type positionJob struct {
	Line int
	FEN  string
}

// analysis is the engine's verdict on one position.
type analysis struct {
	Line   int    `json:"line"`
	FEN    string `json:"fen"`
	Move   string `json:"move,omitempty"`
	SAN    string `json:"san,omitempty"`
	Score  int    `json:"score"`
	Status string `json:"status"`
	Nodes  int    `json:"nodes"`
	Error  string `json:"error,omitempty"`
}

// readPositions collects non-blank, non-comment lines.
func readPositions(r io.Reader) ([]positionJob, error) {
	var jobs []positionJob
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		jobs = append(jobs, positionJob{Line: line, FEN: text})
	}
	return jobs, scanner.Err()
}

// analysePosition searches one position with its own board and searcher,
// so workers share nothing.
func analysePosition(ctx context.Context, cfg *config.Config, ev *eval.Evaluator, job positionJob) (analysis, error) {
	a := analysis{Line: job.Line, FEN: job.FEN}

	setup, err := engine.ParseFEN(job.FEN)
	if err != nil {
		return a, err
	}
	board := setup.Board
	board.SetStrict(cfg.Strict)

	s := search.NewSearcher(cfg.Search, ev)
	s.SetStrict(cfg.Strict)
	res, err := s.ChooseMove(ctx, board, setup.ToMove, cfg.Search.Depth, nil)
	if err != nil {
		return a, err
	}
	a.Nodes = res.Stats.Nodes + res.Stats.QNodes
	a.Status = positionStatus(board, setup.ToMove)
	if !res.Found {
		return a, nil
	}

	san, err := output.SAN(job.FEN, []chess.Move{res.Move})
	if err != nil {
		return a, err
	}
	a.Move = res.Move.String()
	a.SAN = san[0]
	a.Score = res.Score
	return a, nil
}

func positionStatus(board *engine.Board, toMove chess.Colour) string {
	switch {
	case board.IsCheckmate(toMove):
		return "checkmate"
	case board.IsStalemate(toMove):
		return "stalemate"
	case engine.HasInsufficientMaterial(board):
		return "insufficient material"
	case board.IsInCheck(toMove):
		return "check"
	}
	return "playing"
}

// runAnalysis analyses every position in r on numWorkers goroutines and
// writes the results to w in input order. It returns how many positions
// failed.
//
// Results are gathered by a single consumer and written only after the pool
// drains, so output order does not depend on scheduling.
func runAnalysis(cfg *config.Config, r io.Reader, w io.Writer, numWorkers int, asJSON bool) (int, error) {
	jobs, err := readPositions(r)
	if err != nil {
		return 0, err
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	ev := eval.NewEvaluator(eval.DefaultWeights())
	processFunc := func(ctx context.Context, job worker.Job[positionJob]) (analysis, error) {
		return analysePosition(ctx, cfg, ev, job.Value)
	}

	bufferSize := len(jobs)
	if bufferSize > 100 {
		bufferSize = 100
	}
	pool := worker.NewPool[positionJob, analysis](processFunc,
		worker.WithWorkers(numWorkers), worker.WithBufferSize(bufferSize))
	pool.Start()
	cfg.Logf(2, "analysing %d positions on %d workers", len(jobs), pool.NumWorkers())

	go func() {
		for i, job := range jobs {
			pool.Submit(worker.Job[positionJob]{Value: job, Index: i})
		}
		pool.Close()
	}()

	results := make([]analysis, len(jobs))
	failed := 0
	for res := range pool.Results() {
		a := res.Value
		if res.Err != nil {
			a.Line, a.FEN = jobs[res.Index].Line, jobs[res.Index].FEN
			a.Error = res.Err.Error()
			failed++
			cfg.Logf(1, "line %d: %v", a.Line, res.Err)
		}
		results[res.Index] = a
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return failed, enc.Encode(results)
	}
	for _, a := range results {
		writeAnalysis(w, a)
	}
	return failed, nil
}

func writeAnalysis(w io.Writer, a analysis) {
	switch {
	case a.Error != "":
		fmt.Fprintf(w, "%d: error: %s\n", a.Line, a.Error)
	case a.Move == "":
		fmt.Fprintf(w, "%d: no move (%s)\n", a.Line, a.Status)
	default:
		fmt.Fprintf(w, "%d: %s (%s) score %d, %d nodes\n", a.Line, a.SAN, a.Move, a.Score, a.Nodes)
	}
}
