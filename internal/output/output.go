// Package output renders games as SAN, PGN and JSON. Everything here is a
// view derived from a start position and a move list; nothing feeds back
// into play.
package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/engine"
)

// DefaultLineLength is the PGN movetext width.
const DefaultLineLength = 80

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	"Event",
	"Site",
	"Date",
	"Round",
	"White",
	"Black",
	"Result",
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// Record is a game to be written: where it started, what was played, and
// its tags. The Result tag doubles as the movetext terminator.
type Record struct {
	StartFEN string
	Moves    []chess.Move
	Tags     map[string]string
}

// NewRecord builds a record with the tag roster filled from cfg.
func NewRecord(startFEN string, moves []chess.Move, cfg config.OutputConfig, result string) Record {
	if result == "" {
		result = "*"
	}
	return Record{
		StartFEN: startFEN,
		Moves:    moves,
		Tags: map[string]string{
			"Event":  cfg.Event,
			"Site":   cfg.Site,
			"Date":   "????.??.??",
			"Round":  "-",
			"White":  cfg.White,
			"Black":  cfg.Black,
			"Result": result,
		},
	}
}

// Result returns the record's result tag, or "*".
func (r Record) Result() string {
	if res := r.Tags["Result"]; res != "" {
		return res
	}
	return "*"
}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// PGN renders a game as PGN text.
func PGN(startFEN string, moves []chess.Move, tags map[string]string) (string, error) {
	var sb strings.Builder
	err := WritePGN(&sb, Record{StartFEN: startFEN, Moves: moves, Tags: tags}, DefaultLineLength)
	return sb.String(), err
}

// WritePGN writes one game: tags, a blank line, wrapped movetext ending in
// the result, and a trailing blank line. Nothing is written if a move
// cannot be replayed.
func WritePGN(w io.Writer, rec Record, maxLineLength int) error {
	plies, err := Replay(rec.StartFEN, rec.Moves)
	if err != nil {
		return err
	}

	writeTags(w, rec)
	fmt.Fprintln(w)

	ow := NewOutputWriter(w, maxLineLength)
	for i, p := range plies {
		if p.Colour == chess.White {
			ow.Write(fmt.Sprintf("%d.", p.Number))
		} else if i == 0 {
			ow.Write(fmt.Sprintf("%d...", p.Number))
		}
		ow.Write(p.SAN)
	}
	ow.Write(rec.Result())
	ow.NewLine()

	fmt.Fprintln(w)
	return nil
}

// writeTags writes the seven tag roster, the setup tags for a non-standard
// start, then any other tags in name order.
func writeTags(w io.Writer, rec Record) {
	for _, tag := range SevenTagRoster {
		value := rec.Tags[tag]
		if tag == "Result" {
			value = rec.Result()
		}
		if value == "" {
			value = "?"
		}
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value))
	}

	if rec.StartFEN != "" && rec.StartFEN != engine.InitialFEN {
		fmt.Fprintf(w, "[SetUp \"1\"]\n")
		fmt.Fprintf(w, "[FEN \"%s\"]\n", escapeTagValue(rec.StartFEN))
	}

	extra := make([]string, 0, len(rec.Tags))
	for tag := range rec.Tags {
		if !IsSevenTagRosterTag(tag) && tag != "SetUp" && tag != "FEN" {
			extra = append(extra, tag)
		}
	}
	slices.Sort(extra)
	for _, tag := range extra {
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(rec.Tags[tag]))
	}
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
