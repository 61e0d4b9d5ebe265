// play.go - Interactive game loop
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/game"
	"github.com/lgbarn/chessplay-go/internal/output"
)

// session is one interactive game read from in and drawn on out.
type session struct {
	cfg      *config.Config
	ctrl     *game.Controller
	in       *bufio.Scanner
	out      io.Writer
	renderer *boardRenderer
	redraw   bool
}

// runGame plays a game until it ends, the user quits, or input runs out,
// then writes the game record to cfg.OutputFile.
func runGame(cfg *config.Config, in io.Reader, out io.Writer) error {
	listener := game.ListenerFuncs{
		OnSearchProgress: func(percent int) {
			cfg.Logf(2, "thinking: %d%%", percent)
		},
	}
	ctrl, err := game.New(cfg, listener)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	s := &session{
		cfg:      cfg,
		ctrl:     ctrl,
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: newBoardRenderer(cfg.Output.Colour, *flipBoard),
		redraw:   true,
	}
	return s.run()
}

func (s *session) run() error {
	s.ctrl.Start()
	s.ctrl.Wait()

	for {
		if s.redraw {
			s.draw()
			s.redraw = false
		}
		if st := s.ctrl.State(); st.IsOver() {
			fmt.Fprintf(s.out, "Game over: %s (%s)\n", st, st.Result())
			return s.writeRecord()
		}

		fmt.Fprintf(s.out, "%s to move> ", s.ctrl.ToMove())
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			if err := s.in.Err(); err != nil {
				return err
			}
			return s.writeRecord()
		}
		if quit := s.handle(s.in.Text()); quit {
			return s.writeRecord()
		}
	}
}

// handle executes one line of input and reports whether the user quit.
func (s *session) handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "q", "exit":
		return true
	case "help", "?":
		printCommands(s.out)
	case "hint":
		if m, ok := s.ctrl.RequestHint(); ok {
			fmt.Fprintf(s.out, "Hint: %s\n", m)
		} else {
			fmt.Fprintln(s.out, "No hint available")
		}
	case "undo":
		if s.ctrl.UndoLastExchange() {
			s.ctrl.Wait()
			s.redraw = true
		} else {
			fmt.Fprintln(s.out, "Nothing to undo")
		}
	case "fen":
		fmt.Fprintln(s.out, s.ctrl.FEN())
	case "pgn":
		if err := output.WritePGN(s.out, s.record(), output.DefaultLineLength); err != nil {
			fmt.Fprintf(s.out, "Cannot write PGN: %v\n", err)
		}
	case "board":
		s.redraw = true
	case "depth":
		s.setDepth(fields[1:])
	default:
		s.playMove(fields[0])
	}
	return false
}

func (s *session) playMove(text string) {
	m, err := chess.ParseMove(text, s.ctrl.ToMove())
	if err != nil {
		fmt.Fprintf(s.out, "Unrecognised input %q (type help for commands)\n", text)
		return
	}
	if err := s.ctrl.Play(m); err != nil {
		fmt.Fprintf(s.out, "Move rejected: %v\n", err)
		return
	}
	s.ctrl.Wait()
	s.redraw = true
}

func (s *session) setDepth(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(s.out, "Depth is %d\n", s.ctrl.Depth())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Bad depth %q\n", args[0])
		return
	}
	fmt.Fprintf(s.out, "Depth set to %d\n", s.ctrl.SetDepth(n))
}

func (s *session) draw() {
	var last *chess.Move
	if moves := s.ctrl.Moves(); len(moves) > 0 {
		last = &moves[len(moves)-1]
	}
	s.renderer.render(s.out, s.ctrl, last)
}

func (s *session) record() output.Record {
	rec := output.NewRecord(s.ctrl.StartFEN(), s.ctrl.Moves(), s.cfg.Output, s.ctrl.State().Result())
	rec.Tags["PlyCount"] = strconv.Itoa(len(rec.Moves))
	return rec
}

// writeRecord writes the finished game to the configured output.
func (s *session) writeRecord() error {
	rec := s.record()
	if len(rec.Moves) == 0 || s.cfg.OutputFile == nil {
		return nil
	}

	var w output.GameWriter
	if *jsonOutput {
		w = output.NewJSONWriterSingle(s.cfg.OutputFile, false)
	} else {
		w = output.NewPGNWriter(s.cfg.OutputFile)
	}
	if err := w.WriteGame(rec); err != nil {
		return err
	}
	return w.Close()
}

func printCommands(w io.Writer) {
	fmt.Fprintf(w, "  e2e4       play a move in coordinate notation\n")
	fmt.Fprintf(w, "  hint       suggest a move for the side to move\n")
	fmt.Fprintf(w, "  undo       take back your last move and the reply\n")
	fmt.Fprintf(w, "  depth [N]  show or set the engine's search depth\n")
	fmt.Fprintf(w, "  board      redraw the board\n")
	fmt.Fprintf(w, "  fen        print the position as FEN\n")
	fmt.Fprintf(w, "  pgn        print the game so far as PGN\n")
	fmt.Fprintf(w, "  quit       stop and write the game record\n")
}
