package chess

import (
	"fmt"

	"github.com/lgbarn/chessplay-go/internal/errors"
)

// Square is a board coordinate: file 0-7 (a-h) and rank 0-7 (1-8).
type Square struct {
	File int
	Rank int
}

// NoSquare is the off-board sentinel used for captured pieces and an
// absent en passant target.
var NoSquare = Square{File: -1, Rank: -1}

// Sq creates a square from file and rank indices.
func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// OnBoard reports whether the square lies on the 8x8 grid.
func (s Square) OnBoard() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// Offset returns the square displaced by (df, dr). The result may be off-board.
func (s Square) Offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// IsLight reports whether the square is a light square (h1 is light).
func (s Square) IsLight() bool {
	return (s.File+s.Rank)%2 == 1
}

// Index returns the 0-63 index (a1=0, h8=63).
func (s Square) Index() int {
	return s.Rank*BoardSize + s.File
}

// String returns algebraic notation, e.g. "e4", or "-" when off-board.
func (s Square) String() string {
	if !s.OnBoard() {
		return "-"
	}
	return string([]byte{byte(FileBase + s.File), byte(RankBase + s.Rank)})
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, fmt.Errorf("square %q: %w", text, errors.ErrInvalidSquare)
	}
	sq := Square{File: int(text[0]) - FileBase, Rank: int(text[1]) - RankBase}
	if !sq.OnBoard() {
		return NoSquare, fmt.Errorf("square %q: %w", text, errors.ErrInvalidSquare)
	}
	return sq, nil
}

// Move is a from-square, to-square and the colour making the move.
// Castling, en passant and promotion are not tagged here; the board infers
// them from its own state when the move is applied.
type Move struct {
	From   Square
	To     Square
	Colour Colour
}

// NewMove creates a move from file/rank coordinates.
func NewMove(fromFile, fromRank, toFile, toRank int, colour Colour) Move {
	return Move{From: Sq(fromFile, fromRank), To: Sq(toFile, toRank), Colour: colour}
}

// String returns coordinate notation, e.g. "e2e4".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove parses coordinate notation such as "e2e4". A trailing promotion
// letter is accepted and ignored: pawns always promote to a queen.
func ParseMove(text string, colour Colour) (Move, error) {
	if len(text) == 5 && KindFromLetter(text[4]) != NoKind {
		text = text[:4]
	}
	if len(text) != 4 {
		return Move{}, fmt.Errorf("move %q: %w", text, errors.ErrIllegalMove)
	}
	from, err := ParseSquare(text[:2])
	if err != nil {
		return Move{}, errors.Wrapf(err, "move %q", text)
	}
	to, err := ParseSquare(text[2:])
	if err != nil {
		return Move{}, errors.Wrapf(err, "move %q", text)
	}
	return Move{From: from, To: to, Colour: colour}, nil
}

// MustParseMove is like ParseMove but panics on malformed input.
// Intended for fixed move tables and tests.
func MustParseMove(text string, colour Colour) Move {
	m, err := ParseMove(text, colour)
	if err != nil {
		panic(err)
	}
	return m
}
