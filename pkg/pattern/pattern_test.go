package pattern_test

import (
	"testing"

	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDetector struct {
	id string
}

func (s stubDetector) PatternID() string     { return s.id }
func (s stubDetector) PatternName() string   { return "stub: " + s.id }
func (s stubDetector) PatternType() pattern.Type { return pattern.Strategic }

func (s stubDetector) Detect(moves []pattern.Move, result board.Result) pattern.DetectionResult {
	return pattern.DetectionResult{Detected: len(moves) > 0}
}

func (s stubDetector) ClassifySuccess(d pattern.DetectionResult, result board.Result) (bool, pattern.SuccessOutcome) {
	return result == board.WhiteWins, pattern.OutcomeFor(result, board.White)
}

func TestRegisterIsIdempotent(t *testing.T) {
	r := pattern.NewRegistry()
	first := stubDetector{id: "greek-gift"}
	second := stubDetector{id: "greek-gift"}

	r.Register(first)
	r.Register(second)

	require.Len(t, r.List(), 1)

	got, ok := r.Lookup("greek-gift")
	require.True(t, ok)
	assert.Equal(t, first, got)
}

func TestLookupMissing(t *testing.T) {
	r := pattern.NewRegistry()
	_, ok := r.Lookup("nonexistent")
	assert.False(t, ok)
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, pattern.Victory, pattern.OutcomeFor(board.WhiteWins, board.White))
	assert.Equal(t, pattern.Defeat, pattern.OutcomeFor(board.WhiteWins, board.Black))
	assert.Equal(t, pattern.DrawNeutral, pattern.OutcomeFor(board.Draw, board.White))
	assert.Equal(t, pattern.DrawNeutral, pattern.OutcomeFor(board.Undecided, board.Black))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, pattern.Clamp01(-0.4))
	assert.Equal(t, 1.0, pattern.Clamp01(1.4))
	assert.Equal(t, 0.6, pattern.Clamp01(0.6))
}
