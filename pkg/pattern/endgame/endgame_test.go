package endgame_test

import (
	"testing"

	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/pattern"
	"github.com/herohde/chessbuddy/pkg/pattern/endgame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, b board.Board, f board.File, r board.Rank, piece board.Piece, color board.Color) board.Board {
	t.Helper()
	next, err := b.Set(f, r, piece, color)
	require.NoError(t, err)
	return next
}

func TestLucenaDetection(t *testing.T) {
	b := board.Empty()
	b = mustSet(t, b, board.FileE, board.Rank1, board.King, board.White)
	b = mustSet(t, b, board.FileG, board.Rank8, board.King, board.Black)
	b = mustSet(t, b, board.FileA, board.Rank1, board.Rook, board.White)
	b = mustSet(t, b, board.FileF, board.Rank7, board.Pawn, board.White)
	b = mustSet(t, b, board.FileH, board.Rank8, board.Rook, board.Black)

	moves := []pattern.Move{{Ply: 80, After: board.GameState{Board: b}}}

	d := endgame.Lucena{}.Detect(moves, board.WhiteWins)
	require.True(t, d.Detected)
	assert.Equal(t, board.White, d.InitiatingColor)
	assert.Equal(t, 0.6, d.Confidence)

	success, outcome := endgame.Lucena{}.ClassifySuccess(d, board.WhiteWins)
	assert.True(t, success)
	assert.Equal(t, pattern.Victory, outcome)
}

func TestLucenaNotDetectedWithExtraMaterial(t *testing.T) {
	b := board.Empty()
	b = mustSet(t, b, board.FileE, board.Rank1, board.King, board.White)
	b = mustSet(t, b, board.FileG, board.Rank8, board.King, board.Black)
	b = mustSet(t, b, board.FileA, board.Rank1, board.Rook, board.White)
	b = mustSet(t, b, board.FileF, board.Rank7, board.Pawn, board.White)
	b = mustSet(t, b, board.FileC, board.Rank1, board.Bishop, board.White)
	b = mustSet(t, b, board.FileH, board.Rank8, board.Rook, board.Black)

	moves := []pattern.Move{{Ply: 80, After: board.GameState{Board: b}}}

	d := endgame.Lucena{}.Detect(moves, board.WhiteWins)
	assert.False(t, d.Detected)
}

func TestPhilidorDetection(t *testing.T) {
	b := board.Empty()
	b = mustSet(t, b, board.FileG, board.Rank1, board.King, board.White)
	b = mustSet(t, b, board.FileG, board.Rank8, board.King, board.Black)
	b = mustSet(t, b, board.FileA, board.Rank1, board.Rook, board.White)
	b = mustSet(t, b, board.FileE, board.Rank6, board.Pawn, board.White)
	b = mustSet(t, b, board.FileF, board.Rank6, board.Rook, board.Black)

	moves := []pattern.Move{{Ply: 90, After: board.GameState{Board: b}}}

	d := endgame.Philidor{}.Detect(moves, board.Draw)
	require.True(t, d.Detected)
	assert.Equal(t, board.White, d.InitiatingColor)
	assert.Equal(t, 0.5, d.Confidence)

	success, outcome := endgame.Philidor{}.ClassifySuccess(d, board.Draw)
	assert.True(t, success)
	assert.Equal(t, pattern.DrawNeutral, outcome)
}
