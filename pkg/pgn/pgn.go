// Package pgn streams games out of a Portable Game Notation source one at
// a time, without holding the whole corpus in memory. It drives the chess
// core to derive fen_before/fen_after for every half-move as it goes.
package pgn

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/board/fen"
	"github.com/herohde/chessbuddy/pkg/board/san"
	"github.com/herohde/chessbuddy/pkg/pattern"
	"github.com/seekerror/logw"
)

// Game is one parsed PGN game: its tag pairs, the derived move sequence
// with before/after FENs and board states, and the final result.
type Game struct {
	Tags   map[string]string
	Moves  []pattern.Move
	Result board.Result
}

// Tag returns a header value by key.
func (g Game) Tag(key string) (string, bool) {
	v, ok := g.Tags[key]
	return v, ok
}

// Parser pulls Games off an io.Reader.
type Parser struct {
	r *bufio.Reader
}

// NewParser wraps r for streaming PGN parsing.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: bufio.NewReader(r)}
}

// Next returns the next game, or io.EOF once the source is exhausted.
func (p *Parser) Next(ctx context.Context) (*Game, error) {
	tags, sawAny, err := p.readTags()
	if err != nil {
		return nil, err
	}
	if !sawAny {
		return nil, io.EOF
	}

	sanTokens, result, err := p.readMovetext()
	if err != nil {
		return nil, err
	}

	state := board.InitialState()
	moves := make([]pattern.Move, 0, len(sanTokens))
	for i, tok := range sanTokens {
		ply := i + 1
		before := state
		mover := before.Metadata.SideToMove

		next, _, aerr := san.Apply(before, tok)
		if aerr != nil {
			logw.Warningf(ctx, "pgn: ply %d move %q failed to apply: %v; carrying over prior position", ply, tok, aerr)
			next = before
		}

		moves = append(moves, pattern.Move{
			Ply:       ply,
			SAN:       tok,
			Mover:     mover,
			FENBefore: fen.Generate(before),
			FENAfter:  fen.Generate(next),
			Before:    before,
			After:     next,
		})
		state = next
	}

	return &Game{Tags: tags, Moves: moves, Result: result}, nil
}

// readTags consumes the leading `[Key "Value"]` block. sawAny is false when
// the source held nothing but whitespace (the normal end-of-stream case).
func (p *Parser) readTags() (map[string]string, bool, error) {
	tags := map[string]string{}
	sawAny := false
	for {
		r, err := p.peekNonSpace()
		if err != nil {
			if err == io.EOF {
				return tags, sawAny, nil
			}
			return nil, sawAny, err
		}
		if r != '[' {
			return tags, sawAny, nil
		}
		key, value, err := p.readTagPair()
		if err != nil {
			return nil, sawAny, err
		}
		tags[key] = value
		sawAny = true
	}
}

func (p *Parser) readTagPair() (string, string, error) {
	if r, err := p.readRune(); err != nil || r != '[' {
		return "", "", fmt.Errorf("pgn: expected '[' to start tag pair")
	}

	var key strings.Builder
	for {
		r, err := p.readRune()
		if err != nil {
			return "", "", fmt.Errorf("pgn: unterminated tag pair: %w", err)
		}
		if isSpace(r) {
			break
		}
		key.WriteRune(r)
	}

	for {
		r, err := p.readRune()
		if err != nil {
			return "", "", fmt.Errorf("pgn: unterminated tag pair: %w", err)
		}
		if r == '"' {
			break
		}
	}

	var value strings.Builder
	for {
		r, err := p.readRune()
		if err != nil {
			return "", "", fmt.Errorf("pgn: unterminated tag value: %w", err)
		}
		if r == '\\' {
			esc, err := p.readRune()
			if err != nil {
				return "", "", fmt.Errorf("pgn: unterminated tag value: %w", err)
			}
			value.WriteRune(esc)
			continue
		}
		if r == '"' {
			break
		}
		value.WriteRune(r)
	}

	for {
		r, err := p.readRune()
		if err != nil {
			return "", "", fmt.Errorf("pgn: unterminated tag pair: %w", err)
		}
		if r == ']' {
			break
		}
	}

	return key.String(), value.String(), nil
}

// readMovetext consumes move numbers, SAN moves, comments, RAV and NAGs up
// to and including the terminating result token.
func (p *Parser) readMovetext() ([]string, board.Result, error) {
	var tokens []string
	for {
		word, err := p.nextWord()
		if err != nil {
			if err == io.EOF {
				return tokens, board.Undecided, nil
			}
			return nil, board.Undecided, err
		}
		if word == "" {
			continue
		}
		if isResultToken(word) {
			result, _ := board.ParseResult(word)
			return tokens, result, nil
		}
		word = stripMoveNumberPrefix(word)
		if word == "" || isMoveNumberLabel(word) || strings.HasPrefix(word, "$") {
			continue
		}
		tokens = append(tokens, word)
	}
}

func (p *Parser) nextWord() (string, error) {
	r, err := p.skipSpace()
	if err != nil {
		return "", err
	}

	switch r {
	case '{':
		if err := p.skipBraced('{', '}'); err != nil {
			return "", err
		}
		return p.nextWord()
	case '(':
		if err := p.skipBraced('(', ')'); err != nil {
			return "", err
		}
		return p.nextWord()
	case ';':
		if err := p.skipLineComment(); err != nil {
			return "", err
		}
		return p.nextWord()
	}

	var sb strings.Builder
	sb.WriteRune(r)
	for {
		next, err := p.readRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
		if isSpace(next) || next == '{' || next == '(' || next == ';' {
			_ = p.r.UnreadRune()
			break
		}
		sb.WriteRune(next)
	}
	return sb.String(), nil
}

func (p *Parser) skipSpace() (rune, error) {
	for {
		r, err := p.readRune()
		if err != nil {
			return 0, err
		}
		if !isSpace(r) {
			return r, nil
		}
	}
}

func (p *Parser) peekNonSpace() (rune, error) {
	r, err := p.skipSpace()
	if err != nil {
		return 0, err
	}
	if err := p.r.UnreadRune(); err != nil {
		return 0, err
	}
	return r, nil
}

func (p *Parser) skipBraced(open, close rune) error {
	depth := 1
	for depth > 0 {
		r, err := p.readRune()
		if err != nil {
			return fmt.Errorf("pgn: unterminated %q block: %w", open, err)
		}
		switch r {
		case open:
			depth++
		case close:
			depth--
		}
	}
	return nil
}

func (p *Parser) skipLineComment() error {
	for {
		r, err := p.readRune()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}

// readRune decodes the next valid rune, silently dropping malformed UTF-8
// byte sequences while preserving every valid multibyte codepoint.
func (p *Parser) readRune() (rune, error) {
	for {
		r, size, err := p.r.ReadRune()
		if err != nil {
			return 0, err
		}
		if r == utf8.RuneError && size == 1 {
			continue
		}
		return r, nil
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isResultToken(s string) bool {
	switch s {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	default:
		return false
	}
}

// stripMoveNumberPrefix strips a leading move-number label glued directly
// to the move that follows it, e.g. "2.Nf3" -> "Nf3", "1...Nf6" -> "Nf6".
// Words with no digit-then-dot prefix are returned unchanged.
func stripMoveNumberPrefix(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '.' {
		return s
	}
	for i < len(s) && s[i] == '.' {
		i++
	}
	return s[i:]
}

func isMoveNumberLabel(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '.' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
