package majority

import (
	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/pattern"
)

const MinorityAttackID = "minority_attack"

// Minority detects a minority attack: a color that was numerically
// outnumbered in the queenside zone at some point nonetheless pushes its
// pawns there to provoke a weakness.
type Minority struct{}

func (Minority) PatternID() string         { return MinorityAttackID }
func (Minority) PatternName() string       { return "Minority attack" }
func (Minority) PatternType() pattern.Type { return pattern.Strategic }

func (Minority) Detect(moves []pattern.Move, result board.Result) pattern.DetectionResult {
	states := reduce(moves)

	if conf, ok := qualifyMinority(states[board.White]); ok {
		return build(board.White, states[board.White], conf)
	}
	if conf, ok := qualifyMinority(states[board.Black]); ok {
		return build(board.Black, states[board.Black], conf)
	}
	return pattern.DetectionResult{}
}

func (Minority) ClassifySuccess(d pattern.DetectionResult, result board.Result) (bool, pattern.SuccessOutcome) {
	// Draws count as success for the minority attack: the motif commonly
	// yields a durable structural advantage even without a decisive result.
	return successOutcome(false)(d, result)
}

func qualifyMinority(st *colorState) (float64, bool) {
	if !st.minorityObserved || len(st.pushes) < 2 {
		return 0, false
	}
	if !(st.opponentPawnRemoved || st.opponentIslandDelta > 0 || st.passedCreated) {
		return 0, false
	}

	conf := 0.45
	conf += min(0.20, 0.08*float64(len(st.pushes)))
	if st.opponentPawnRemoved {
		conf += 0.15
	}
	if st.passedCreated {
		conf += 0.10
	}
	conf += min(0.10, 0.05*float64(st.opponentIslandDelta))
	return pattern.Clamp01(conf), true
}
