// Package fen contains utilities for reading and writing chess positions
// in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Initial is the FEN of the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Parse decodes a FEN string into a GameState. It rejects FENs that do not
// satisfy the six-field grammar, out-of-range run lengths, invalid digits,
// an invalid side-to-move field, castling rights whose king/rook are
// absent from the canonical square, an en-passant target on the wrong
// rank, a negative halfmove clock or a non-positive fullmove number.
func Parse(s string) (board.GameState, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) != 6 {
		return board.GameState{}, fmt.Errorf("fen: expected 6 fields, got %v: %q", len(parts), s)
	}

	b, err := parsePlacement(parts[0])
	if err != nil {
		return board.GameState{}, fmt.Errorf("fen: %w: %q", err, s)
	}

	side, err := parseSide(parts[1])
	if err != nil {
		return board.GameState{}, fmt.Errorf("fen: %w: %q", err, s)
	}

	castling, err := parseCastling(parts[2])
	if err != nil {
		return board.GameState{}, fmt.Errorf("fen: %w: %q", err, s)
	}
	if err := validateCastling(b, castling); err != nil {
		return board.GameState{}, fmt.Errorf("fen: %w: %q", err, s)
	}

	ep, err := parseEnPassant(parts[3], side)
	if err != nil {
		return board.GameState{}, fmt.Errorf("fen: %w: %q", err, s)
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return board.GameState{}, fmt.Errorf("fen: invalid halfmove clock: %q", s)
	}

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove <= 0 {
		return board.GameState{}, fmt.Errorf("fen: invalid fullmove number: %q", s)
	}

	return board.GameState{
		Board: b,
		Metadata: board.PositionMetadata{
			SideToMove:     side,
			Castling:       castling,
			EnPassant:      ep,
			HalfmoveClock:  halfmove,
			FullmoveNumber: fullmove,
		},
	}, nil
}

// Generate encodes a GameState as a FEN string. Generate(Parse(x)) == x for
// any x accepted by Parse.
func Generate(s board.GameState) string {
	var sb strings.Builder

	for r := int(board.NumRanks) - 1; r >= 0; r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			piece, color, ok, _ := s.Board.Get(f, board.Rank(r))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(piece, color))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > 0 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if sq, ok := s.Metadata.EnPassant.V(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printSide(s.Metadata.SideToMove), s.Metadata.Castling, ep, s.Metadata.HalfmoveClock, s.Metadata.FullmoveNumber)
}

func parsePlacement(field string) (board.Board, error) {
	b := board.Empty()

	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return b, fmt.Errorf("expected 8 ranks, got %v", len(ranks))
	}

	for i, rank := range ranks {
		r := board.Rank(7 - i)
		f := board.ZeroFile
		for _, ch := range rank {
			switch {
			case unicode.IsDigit(ch):
				n := int(ch - '0')
				if n < 1 || n > 8 {
					return b, fmt.Errorf("invalid run length %q in rank %q", string(ch), rank)
				}
				f += board.File(n)
			default:
				piece, color, ok := parsePiece(ch)
				if !ok {
					return b, fmt.Errorf("invalid piece %q in rank %q", string(ch), rank)
				}
				if !f.IsValid() {
					return b, fmt.Errorf("rank %q overflows 8 files", rank)
				}
				var err error
				b, err = b.Set(f, r, piece, color)
				if err != nil {
					return b, err
				}
				f++
			}
		}
		if f != board.NumFiles {
			return b, fmt.Errorf("rank %q does not sum to 8 files", rank)
		}
	}

	return b, nil
}

func parseSide(field string) (board.Color, error) {
	switch field {
	case "w":
		return board.White, nil
	case "b":
		return board.Black, nil
	default:
		return 0, fmt.Errorf("invalid side to move: %q", field)
	}
}

func printSide(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parseCastling(field string) (board.Castling, error) {
	var c board.Castling
	if field == "-" {
		return c, nil
	}
	for _, r := range field {
		switch r {
		case 'K':
			c |= board.WhiteKingSideCastle
		case 'Q':
			c |= board.WhiteQueenSideCastle
		case 'k':
			c |= board.BlackKingSideCastle
		case 'q':
			c |= board.BlackQueenSideCastle
		default:
			return 0, fmt.Errorf("invalid castling field: %q", field)
		}
	}
	return c, nil
}

// validateCastling rejects rights that cannot correspond to a king/rook on
// the canonical square.
func validateCastling(b board.Board, c board.Castling) error {
	check := func(color board.Color, right board.Castling, file board.File) error {
		if !c.IsAllowed(right) {
			return nil
		}
		home := board.HomeRank(color)
		if kp, kc, ok, _ := b.Get(board.FileE, home); !ok || kp != board.King || kc != color {
			return fmt.Errorf("castling right %v requires a %v king on e%v", right, color, home.V()+1)
		}
		if rp, rc, ok, _ := b.Get(file, home); !ok || rp != board.Rook || rc != color {
			return fmt.Errorf("castling right %v requires a %v rook on its home square", right, color)
		}
		return nil
	}

	if err := check(board.White, board.WhiteKingSideCastle, board.FileH); err != nil {
		return err
	}
	if err := check(board.White, board.WhiteQueenSideCastle, board.FileA); err != nil {
		return err
	}
	if err := check(board.Black, board.BlackKingSideCastle, board.FileH); err != nil {
		return err
	}
	if err := check(board.Black, board.BlackQueenSideCastle, board.FileA); err != nil {
		return err
	}
	return nil
}

func parseEnPassant(field string, side board.Color) (lang.Optional[board.Square], error) {
	var ep lang.Optional[board.Square]
	if field == "-" {
		return ep, nil
	}

	sq, err := board.ParseSquareStr(field)
	if err != nil {
		return ep, fmt.Errorf("invalid en passant target: %q", field)
	}

	// The EP target mirrors the side that just moved: Black just moved
	// (White to move) means the target sits on rank 6; White just moved
	// (Black to move) means rank 3.
	if side == board.White && sq.Rank() != board.Rank6 {
		return ep, fmt.Errorf("en passant target %q has wrong rank for side %v to move", field, side)
	}
	if side == board.Black && sq.Rank() != board.Rank3 {
		return ep, fmt.Errorf("en passant target %q has wrong rank for side %v to move", field, side)
	}

	return lang.Some(sq), nil
}

func parsePiece(r rune) (board.Piece, board.Color, bool) {
	p, ok := board.ParsePiece(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return p, board.White, true
	}
	return p, board.Black, true
}

func printPiece(p board.Piece, c board.Color) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
