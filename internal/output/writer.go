package output

import (
	"encoding/json"
	"io"
)

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (PGN, JSON).
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(rec Record) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// PGNWriter writes games in PGN format.
type PGNWriter struct {
	w             io.Writer
	maxLineLength int
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer) *PGNWriter {
	return &PGNWriter{
		w:             w,
		maxLineLength: DefaultLineLength,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(rec Record) error {
	return WritePGN(pw.w, rec, pw.maxLineLength)
}

// Flush is a no-op: PGN is written immediately.
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	recs    []Record
	single  bool // If true, write each game immediately instead of batching
	withFEN bool
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer, withFEN bool) *JSONWriter {
	return &JSONWriter{
		w:       w,
		withFEN: withFEN,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer, withFEN bool) *JSONWriter {
	return &JSONWriter{
		w:       w,
		single:  true,
		withFEN: withFEN,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(rec Record) error {
	if jw.single {
		jg, err := GameToJSON(rec, jw.withFEN)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(jg)
	}

	jw.recs = append(jw.recs, rec)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.recs) == 0 {
		return nil
	}
	err := OutputGamesJSON(jw.w, jw.recs, jw.withFEN)
	jw.recs = jw.recs[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
