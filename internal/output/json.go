package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags       map[string]string `json:"tags"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result"`
	PlyCount   int               `json:"plyCount"`
	FinalFEN   string            `json:"finalFEN"`
	InitialFEN string            `json:"initialFEN,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber,omitempty"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	FEN        string `json:"fen,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a record to JSON form. withFEN adds the position
// after every move.
func GameToJSON(rec Record, withFEN bool) (*JSONGame, error) {
	plies, err := Replay(rec.StartFEN, rec.Moves)
	if err != nil {
		return nil, err
	}

	jg := &JSONGame{
		Tags:     copyTags(rec),
		Moves:    make([]JSONMove, 0, len(plies)),
		Result:   rec.Result(),
		PlyCount: len(plies),
		FinalFEN: startOrInitial(rec.StartFEN),
	}
	if rec.StartFEN != "" {
		jg.InitialFEN = rec.StartFEN
	}

	for i, p := range plies {
		jm := JSONMove{
			Color: colorName(p.Colour),
			SAN:   p.SAN,
			UCI:   p.UCI,
			From:  rec.Moves[i].From.String(),
			To:    rec.Moves[i].To.String(),
			Piece: pieceTypeName(p.Piece),
		}
		if p.Colour == chess.White {
			jm.MoveNumber = p.Number
		}
		if p.Captured != chess.NoKind {
			jm.Captured = pieceTypeName(p.Captured)
		}
		if p.Promotion {
			jm.Promotion = pieceTypeName(chess.Queen)
		}
		if withFEN {
			jm.FEN = p.FEN
		}
		jg.Moves = append(jg.Moves, jm)
		jg.FinalFEN = p.FEN
	}
	return jg, nil
}

func startOrInitial(fen string) string {
	if fen == "" {
		return engine.InitialFEN
	}
	return fen
}

// OutputGamesJSON writes records as one indented JSON array.
func OutputGamesJSON(w io.Writer, recs []Record, withFEN bool) error {
	out := &JSONOutput{Games: make([]*JSONGame, 0, len(recs))}
	for _, rec := range recs {
		jg, err := GameToJSON(rec, withFEN)
		if err != nil {
			return err
		}
		out.Games = append(out.Games, jg)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// copyTags copies the record's tags and ensures the seven tag roster has values.
func copyTags(rec Record) map[string]string {
	result := make(map[string]string, len(rec.Tags)+len(SevenTagRoster))
	for k, v := range rec.Tags {
		result[k] = v
	}
	for _, tag := range SevenTagRoster {
		if _, ok := result[tag]; !ok {
			result[tag] = "?"
		}
	}
	result["Result"] = rec.Result()
	return result
}

// colorName returns "white" or "black".
func colorName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// pieceTypeName returns the piece type as a lowercase word.
func pieceTypeName(k chess.Kind) string {
	if k == chess.NoKind {
		return ""
	}
	return strings.ToLower(k.String())
}
