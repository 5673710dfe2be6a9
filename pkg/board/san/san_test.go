package san_test

import (
	"testing"

	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/board/fen"
	"github.com/herohde/chessbuddy/pkg/board/san"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, s board.GameState, move string) board.GameState {
	t.Helper()
	next, _, err := san.Apply(s, move)
	require.NoError(t, err, move)
	return next
}

func TestOpeningMoves(t *testing.T) {
	s := board.InitialState()

	s = apply(t, s, "e4")
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", fen.Generate(s))

	s = apply(t, s, "c5")
	assert.Equal(t, "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2", fen.Generate(s))

	s = apply(t, s, "Nf3")
	assert.Equal(t, "rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", fen.Generate(s))
}

func TestCastlingKingSide(t *testing.T) {
	b := board.Empty()
	b, _ = b.Set(board.FileE, board.Rank1, board.King, board.White)
	b, _ = b.Set(board.FileH, board.Rank1, board.Rook, board.White)
	s := board.GameState{Board: b, Metadata: board.PositionMetadata{SideToMove: board.White, Castling: board.WhiteKingSideCastle | board.WhiteQueenSideCastle, FullmoveNumber: 1}}

	next, d, err := san.Apply(s, "O-O")
	require.NoError(t, err)
	assert.True(t, d.IsCastle)

	_, _, ok, _ := next.Board.Get(board.FileE, board.Rank1)
	assert.False(t, ok)
	_, _, ok, _ = next.Board.Get(board.FileH, board.Rank1)
	assert.False(t, ok)

	kp, kc, ok, _ := next.Board.Get(board.FileG, board.Rank1)
	require.True(t, ok)
	assert.Equal(t, board.King, kp)
	assert.Equal(t, board.White, kc)

	rp, rc, ok, _ := next.Board.Get(board.FileF, board.Rank1)
	require.True(t, ok)
	assert.Equal(t, board.Rook, rp)
	assert.Equal(t, board.White, rc)

	assert.False(t, next.Metadata.Castling.IsAllowed(board.WhiteKingSideCastle))
	assert.False(t, next.Metadata.Castling.IsAllowed(board.WhiteQueenSideCastle))
}

func TestEnPassantCapture(t *testing.T) {
	b := board.Empty()
	b, _ = b.Set(board.FileE, board.Rank5, board.Pawn, board.White)
	b, _ = b.Set(board.FileD, board.Rank5, board.Pawn, board.Black)
	s := board.GameState{
		Board: b,
		Metadata: board.PositionMetadata{
			SideToMove:     board.White,
			EnPassant:      lang.Some(board.NewSquare(board.FileD, board.Rank6)),
			FullmoveNumber: 5,
		},
	}

	next, d, err := san.Apply(s, "exd6")
	require.NoError(t, err)
	assert.True(t, d.IsEnPassant)
	assert.True(t, d.IsCapture)

	cp, ok := d.Captured.V()
	require.True(t, ok)
	assert.Equal(t, board.Pawn, cp)

	p, c, ok, _ := next.Board.Get(board.FileD, board.Rank6)
	require.True(t, ok)
	assert.Equal(t, board.Pawn, p)
	assert.Equal(t, board.White, c)

	_, _, ok, _ = next.Board.Get(board.FileD, board.Rank5)
	assert.False(t, ok)

	assert.Equal(t, 0, next.Metadata.HalfmoveClock)
}

func TestPromotion(t *testing.T) {
	b := board.Empty()
	b, _ = b.Set(board.FileE, board.Rank7, board.Pawn, board.White)
	s := board.GameState{Board: b, Metadata: board.PositionMetadata{SideToMove: board.White, FullmoveNumber: 40}}

	next, d, err := san.Apply(s, "e8=Q")
	require.NoError(t, err)
	assert.True(t, d.IsPromotion)
	assert.Equal(t, board.Queen, d.Promotion)

	_, _, ok, _ := next.Board.Get(board.FileE, board.Rank7)
	assert.False(t, ok)

	p, c, ok, _ := next.Board.Get(board.FileE, board.Rank8)
	require.True(t, ok)
	assert.Equal(t, board.Queen, p)
	assert.Equal(t, board.White, c)
}

func TestPromotionCapture(t *testing.T) {
	b := board.Empty()
	b, _ = b.Set(board.FileE, board.Rank7, board.Pawn, board.White)
	b, _ = b.Set(board.FileD, board.Rank8, board.Rook, board.Black)
	s := board.GameState{Board: b, Metadata: board.PositionMetadata{SideToMove: board.White, FullmoveNumber: 40}}

	next, d, err := san.Apply(s, "exd8=Q")
	require.NoError(t, err)
	assert.True(t, d.IsCapture)
	assert.True(t, d.IsPromotion)
	cp, ok := d.Captured.V()
	require.True(t, ok)
	assert.Equal(t, board.Rook, cp)

	p, _, ok, _ := next.Board.Get(board.FileD, board.Rank8)
	require.True(t, ok)
	assert.Equal(t, board.Queen, p)
}

func TestAmbiguousMoveIsRejected(t *testing.T) {
	b := board.Empty()
	b, _ = b.Set(board.FileA, board.Rank1, board.Rook, board.White)
	b, _ = b.Set(board.FileH, board.Rank1, board.Rook, board.White)
	s := board.GameState{Board: b, Metadata: board.PositionMetadata{SideToMove: board.White, FullmoveNumber: 1}}

	_, _, err := san.Apply(s, "Rd1")
	assert.Error(t, err)
}

func TestDisambiguationResolvesMultipleCandidates(t *testing.T) {
	b := board.Empty()
	b, _ = b.Set(board.FileA, board.Rank1, board.Rook, board.White)
	b, _ = b.Set(board.FileH, board.Rank1, board.Rook, board.White)
	s := board.GameState{Board: b, Metadata: board.PositionMetadata{SideToMove: board.White, FullmoveNumber: 1}}

	next, _, err := san.Apply(s, "Rad1")
	require.NoError(t, err)

	_, _, ok, _ := next.Board.Get(board.FileA, board.Rank1)
	assert.False(t, ok)
	p, _, ok, _ := next.Board.Get(board.FileD, board.Rank1)
	require.True(t, ok)
	assert.Equal(t, board.Rook, p)
}

func TestBlockedSlideIsNotACandidate(t *testing.T) {
	b := board.Empty()
	b, _ = b.Set(board.FileA, board.Rank1, board.Rook, board.White)
	b, _ = b.Set(board.FileA, board.Rank2, board.Pawn, board.White)
	s := board.GameState{Board: b, Metadata: board.PositionMetadata{SideToMove: board.White, FullmoveNumber: 1}}

	// The a1 rook's path to a3 is blocked by its own pawn on a2: no
	// candidate should resolve, so this must fail to parse a source.
	_, _, err := san.Apply(s, "Ra3")
	assert.Error(t, err)
}
