package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Setup is a parsed FEN: the board plus the game-level fields the board
// does not own.
type Setup struct {
	Board          *Board
	ToMove         chess.Colour
	HalfmoveClock  int
	FullmoveNumber int
}

// ParseFEN creates a board from a FEN string. Missing trailing fields take
// their defaults (White to move, no rights, no target, clocks 0 and 1).
func ParseFEN(fen string) (Setup, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return Setup{}, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	setup := Setup{
		Board:          NewBoard(),
		ToMove:         chess.White,
		FullmoveNumber: 1,
	}

	if err := parsePiecePositions(setup.Board, parts[0]); err != nil {
		return Setup{}, err
	}
	if err := parseSideToMove(&setup, parts); err != nil {
		return Setup{}, err
	}
	if err := parseCastlingRights(setup.Board, parts); err != nil {
		return Setup{}, err
	}
	if err := parseEnPassant(setup.Board, parts); err != nil {
		return Setup{}, err
	}
	if err := parseClocks(&setup, parts); err != nil {
		return Setup{}, err
	}
	return setup, nil
}

// MustParseFEN is like ParseFEN but panics on error. Intended for fixed
// positions and tests.
func MustParseFEN(fen string) Setup {
	setup, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return setup
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("%d ranks in placement: %w", len(ranks), errors.ErrInvalidFEN)
	}

	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				kind := chess.KindFromLetter(byte(c))
				if kind == chess.NoKind {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if file >= chess.BoardSize {
					return fmt.Errorf("rank %d overflows: %w", rank+1, errors.ErrInvalidFEN)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				if board.Place(chess.Piece{Kind: kind, Colour: colour}, chess.Sq(file, rank)) == NoPiece {
					return fmt.Errorf("second %s king: %w", colour, errors.ErrInvalidFEN)
				}
				file++
			}
		}
		if file != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", rank+1, file, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(setup *Setup, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		setup.ToMove = chess.White
	case "b":
		setup.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *Board, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	var cr CastlingRights
	for _, c := range parts[2] {
		switch c {
		case 'K':
			cr.WhiteKingside = true
		case 'Q':
			cr.WhiteQueenside = true
		case 'k':
			cr.BlackKingside = true
		case 'q':
			cr.BlackQueenside = true
		default:
			return fmt.Errorf("invalid castling field %q: %w", parts[2], errors.ErrInvalidFEN)
		}
	}
	board.setCastling(cr)
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *Board, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(parts[3])
	if err != nil || (sq.Rank != 2 && sq.Rank != 5) {
		return fmt.Errorf("invalid en passant square %q: %w", parts[3], errors.ErrInvalidFEN)
	}
	board.setEnPassant(sq)
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(setup *Setup, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid halfmove clock %q: %w", parts[4], errors.ErrInvalidFEN)
		}
		setup.HalfmoveClock = n
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid fullmove number %q: %w", parts[5], errors.ErrInvalidFEN)
		}
		setup.FullmoveNumber = n
	}
	return nil
}

// FEN converts a board and the game-level fields to a FEN string.
func FEN(board *Board, toMove chess.Colour, halfmoveClock, fullmoveNumber int) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	if toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(board.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(board.epTarget.String())
	fmt.Fprintf(&sb, " %d %d", halfmoveClock, fullmoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece, ok := board.PieceAt(file, rank)
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.FENLetter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}
