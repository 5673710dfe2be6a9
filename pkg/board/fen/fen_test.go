package fen_test

import (
	"testing"

	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
	}

	for _, tt := range tests {
		s, err := fen.Parse(tt)
		require.NoError(t, err)

		assert.Equal(t, tt, fen.Generate(s))
	}
}

func TestParseInitial(t *testing.T) {
	s, err := fen.Parse(fen.Initial)
	require.NoError(t, err)
	assert.Equal(t, board.White, s.Metadata.SideToMove)
	assert.Equal(t, board.FullCastingRights, s.Metadata.Castling)
	assert.Equal(t, 0, s.Metadata.HalfmoveClock)
	assert.Equal(t, 1, s.Metadata.FullmoveNumber)
	_, ok := s.Metadata.EnPassant.V()
	assert.False(t, ok)
}

func TestInitialStateFEN(t *testing.T) {
	assert.Equal(t, fen.Initial, fen.Generate(board.InitialState()))
}

func TestParseRejectsInvalidFEN(t *testing.T) {
	tests := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0", // 5 fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1", // rank missing a square
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1", // EP wrong rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", // negative halfmove
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",  // non-positive fullmove
		"8/8/8/8/8/8/8/8 w KQkq - 0 1",                              // castling without king/rook
	}

	for _, tt := range tests {
		_, err := fen.Parse(tt)
		assert.Error(t, err, tt)
	}
}
