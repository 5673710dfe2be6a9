// Package san parses Standard Algebraic Notation moves and applies them to
// a board.GameState. PGN is trusted to be legal: san never verifies that a
// move is legal, only that it is well-formed and, where ambiguous,
// resolvable to exactly one source square.
package san

import (
	"fmt"
	"strings"

	"github.com/herohde/chessbuddy/pkg/board"
)

// kind distinguishes the SAN move shapes recognised in priority order.
type kind int

const (
	kindKingSideCastle kind = iota
	kindQueenSideCastle
	kindPieceMove
	kindPawnCapture
	kindPawnPush
)

// Parsed is the structured decomposition of one SAN token, before source
// resolution against a position.
type Parsed struct {
	Kind kind

	Piece     board.Piece // King, Queen, Rook, Bishop or Knight for kindPieceMove; Pawn otherwise
	Dest      board.Square
	IsCapture bool
	Promotion board.Piece // NoPiece unless the move promotes

	// Disambiguation hints, as given in the SAN text. Both may be set
	// together when the SAN gives a full source square.
	DisambigFile    board.File
	HasDisambigFile bool
	DisambigRank    board.Rank
	HasDisambigRank bool

	IsCheck bool
	IsMate  bool

	Raw string
}

// IsCastleMove reports whether p decodes a king- or queen-side castle.
func (p Parsed) IsCastleMove() bool {
	return p.Kind == kindKingSideCastle || p.Kind == kindQueenSideCastle
}

// Parse decomposes a single SAN token (no move number, no comments) into
// its structural parts. It does not consult a position: source-square
// resolution is a separate step (Resolve).
func Parse(san string) (Parsed, error) {
	raw := san
	s := strings.TrimSpace(san)
	if s == "" {
		return Parsed{}, fmt.Errorf("san: empty move")
	}

	p := Parsed{Raw: raw}

	// Strip trailing check/mate markers.
	for strings.HasSuffix(s, "+") || strings.HasSuffix(s, "#") {
		if strings.HasSuffix(s, "#") {
			p.IsMate = true
		} else {
			p.IsCheck = true
		}
		s = s[:len(s)-1]
	}

	// Normalise castling notation using zero ("O") rather than digit zero.
	normalized := strings.ReplaceAll(strings.ToUpper(s), "0", "O")

	switch normalized {
	case "O-O":
		p.Kind = kindKingSideCastle
		p.Piece = board.King
		return p, nil
	case "O-O-O":
		p.Kind = kindQueenSideCastle
		p.Piece = board.King
		return p, nil
	}

	// Promotion suffix: "=X".
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx != len(s)-2 {
			return Parsed{}, fmt.Errorf("san: malformed promotion suffix: %q", raw)
		}
		promo, ok := board.ParsePiece(rune(s[idx+1]))
		if !ok || promo == board.Pawn || promo == board.King {
			return Parsed{}, fmt.Errorf("san: invalid promotion piece in %q", raw)
		}
		p.Promotion = promo
		s = s[:idx]
	}

	runes := []rune(s)
	if len(runes) < 2 {
		return Parsed{}, fmt.Errorf("san: move too short: %q", raw)
	}

	if isPieceLetter(runes[0]) {
		// Piece move: "Nf3", "Nbd2", "R1a3", "Qh4xe1", etc.
		p.Kind = kindPieceMove
		piece, ok := board.ParsePiece(runes[0])
		if !ok {
			return Parsed{}, fmt.Errorf("san: unknown piece letter in %q", raw)
		}
		p.Piece = piece

		body := runes[1:]
		if idx := indexRune(body, 'x'); idx >= 0 {
			p.IsCapture = true
			body = append(append([]rune{}, body[:idx]...), body[idx+1:]...)
		}

		if len(body) < 2 {
			return Parsed{}, fmt.Errorf("san: missing destination square in %q", raw)
		}

		dest, err := board.ParseSquareStr(string(body[len(body)-2:]))
		if err != nil {
			return Parsed{}, fmt.Errorf("san: invalid destination in %q: %w", raw, err)
		}
		p.Dest = dest

		disambig := body[:len(body)-2]
		if err := applyDisambiguation(&p, disambig, raw); err != nil {
			return Parsed{}, err
		}
		return p, nil
	}

	// Pawn move: capture ("exd5") or push ("e4").
	if isFileLetter(runes[0]) {
		if idx := indexRune(runes, 'x'); idx >= 0 {
			p.Kind = kindPawnCapture
			p.Piece = board.Pawn
			p.IsCapture = true

			file, ok := board.ParseFile(runes[0])
			if !ok {
				return Parsed{}, fmt.Errorf("san: invalid source file in %q", raw)
			}
			p.DisambigFile, p.HasDisambigFile = file, true

			dest, err := board.ParseSquareStr(string(runes[idx+1:]))
			if err != nil {
				return Parsed{}, fmt.Errorf("san: invalid destination in %q: %w", raw, err)
			}
			p.Dest = dest
			return p, nil
		}

		p.Kind = kindPawnPush
		p.Piece = board.Pawn
		dest, err := board.ParseSquareStr(string(runes))
		if err != nil {
			return Parsed{}, fmt.Errorf("san: invalid pawn push in %q: %w", raw, err)
		}
		p.Dest = dest
		return p, nil
	}

	return Parsed{}, fmt.Errorf("san: unrecognised move: %q", raw)
}

func applyDisambiguation(p *Parsed, hint []rune, raw string) error {
	switch len(hint) {
	case 0:
		return nil
	case 1:
		if f, ok := board.ParseFile(hint[0]); ok {
			p.DisambigFile, p.HasDisambigFile = f, true
			return nil
		}
		if r, ok := board.ParseRank(hint[0]); ok {
			p.DisambigRank, p.HasDisambigRank = r, true
			return nil
		}
		return fmt.Errorf("san: invalid disambiguation in %q", raw)
	case 2:
		sq, err := board.ParseSquareStr(string(hint))
		if err != nil {
			return fmt.Errorf("san: invalid disambiguation square in %q: %w", raw, err)
		}
		p.DisambigFile, p.HasDisambigFile = sq.File(), true
		p.DisambigRank, p.HasDisambigRank = sq.Rank(), true
		return nil
	default:
		return fmt.Errorf("san: malformed disambiguation in %q", raw)
	}
}

func isPieceLetter(r rune) bool {
	switch r {
	case 'K', 'Q', 'R', 'B', 'N':
		return true
	default:
		return false
	}
}

func isFileLetter(r rune) bool {
	return r >= 'a' && r <= 'h'
}

func indexRune(rs []rune, target rune) int {
	for i, r := range rs {
		if r == target {
			return i
		}
	}
	return -1
}
