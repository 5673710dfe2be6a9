package hashembed_test

import (
	"context"
	"testing"

	"github.com/herohde/chessbuddy/pkg/embed/hashembed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedIsDeterministic(t *testing.T) {
	e := hashembed.New()
	ctx := context.Background()

	v1, version1, err := e.Embed(ctx, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	v2, version2, err := e.Embed(ctx, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, version1, version2)
	assert.Len(t, v1, hashembed.Dimension)
}

func TestEmbedDiffersByInput(t *testing.T) {
	e := hashembed.New()
	ctx := context.Background()

	v1, _, err := e.Embed(ctx, "fen-a")
	require.NoError(t, err)
	v2, _, err := e.Embed(ctx, "fen-b")
	require.NoError(t, err)

	assert.NotEqual(t, v1, v2)
}

func TestEmbedIsBounded(t *testing.T) {
	e := hashembed.New()
	v, _, err := e.Embed(context.Background(), "any-fen-text")
	require.NoError(t, err)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, float32(-1.0))
		assert.LessOrEqual(t, x, float32(1.0))
	}
}
