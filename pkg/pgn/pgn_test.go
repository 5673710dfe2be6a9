package pgn_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/pgn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoGames = `[Event "Test Open"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "Alpha"]
[Black "Beta"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 {the Ruy Lopez} a6 (3... Nf6 4. O-O) 4. Ba4 1-0

[Event "Test Open"]
[Site "?"]
[Date "2024.01.01"]
[Round "2"]
[White "Gamma"]
[Black "Delta"]
[Result "1/2-1/2"]

1. d4 d5 2. c4 e6 1/2-1/2
`

func TestParsesTwoGames(t *testing.T) {
	p := pgn.NewParser(strings.NewReader(twoGames))
	ctx := context.Background()

	g1, err := p.Next(ctx)
	require.NoError(t, err)
	white, ok := g1.Tag("White")
	require.True(t, ok)
	assert.Equal(t, "Alpha", white)
	assert.Equal(t, board.WhiteWins, g1.Result)
	require.Len(t, g1.Moves, 7)
	assert.Equal(t, "e4", g1.Moves[0].SAN)
	assert.Equal(t, "Ba4", g1.Moves[6].SAN)
	assert.Equal(t, board.White, g1.Moves[0].Mover)
	assert.Equal(t, board.Black, g1.Moves[1].Mover)

	g2, err := p.Next(ctx)
	require.NoError(t, err)
	white2, _ := g2.Tag("White")
	assert.Equal(t, "Gamma", white2)
	assert.Equal(t, board.Draw, g2.Result)
	require.Len(t, g2.Moves, 4)

	_, err = p.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestMoveStepsProduceFENs(t *testing.T) {
	p := pgn.NewParser(strings.NewReader(twoGames))
	g, err := p.Next(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, g.Moves[0].FENAfter)
	assert.Contains(t, g.Moves[0].FENAfter, "4P3")
}

func TestMalformedSANIsRecoveredNotFatal(t *testing.T) {
	const pgnText = `[Event "Recovery"]
[White "A"]
[Black "B"]
[Result "*"]

1. e4 Zx9 2. Nf3 *
`
	p := pgn.NewParser(strings.NewReader(pgnText))
	g, err := p.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, g.Moves, 3)

	// The malformed move carries over the prior position unchanged.
	assert.Equal(t, g.Moves[0].FENAfter, g.Moves[1].FENAfter)
}

func TestMoveNumberGluedToMoveIsStripped(t *testing.T) {
	const pgnText = `[Event "Compact"]
[White "A"]
[Black "B"]
[Result "1-0"]

1.e4 e5 2.Nf3 Nc6 3.Bb5 a6 1-0
`
	p := pgn.NewParser(strings.NewReader(pgnText))
	g, err := p.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, g.Moves, 6)
	assert.Equal(t, "e4", g.Moves[0].SAN)
	assert.Equal(t, "Nf3", g.Moves[2].SAN)
	assert.Equal(t, "Bb5", g.Moves[4].SAN)
}

func TestBlackMoveNumberEllipsisIsStripped(t *testing.T) {
	const pgnText = `[Event "Variation"]
[White "A"]
[Black "B"]
[Result "*"]

1. e4 e5 2. Nf3 1...Nf6 *
`
	p := pgn.NewParser(strings.NewReader(pgnText))
	g, err := p.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, g.Moves, 4)
	assert.Equal(t, "Nf6", g.Moves[3].SAN)
	assert.Equal(t, board.Black, g.Moves[3].Mover)
}

func TestInvalidUTF8CommentIsSanitized(t *testing.T) {
	pgnText := "[Event \"X\"]\n[White \"A\"]\n[Black \"B\"]\n[Result \"*\"]\n\n1. e4 {caf\xff\xe9} e5 *\n"
	p := pgn.NewParser(strings.NewReader(pgnText))
	g, err := p.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, g.Moves, 2)
}
