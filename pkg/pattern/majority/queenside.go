package majority

import (
	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/pattern"
)

const QueensideMajorityID = "queenside_majority_attack"

// Queenside detects a sustained queenside pawn-majority attack: a color
// holds a numeric majority in the queenside zone for a sustained stretch of
// the game, pushes it forward at least twice, and either creates a passed
// pawn, removes an opposing pawn from the zone, or simply pushes enough.
type Queenside struct{}

func (Queenside) PatternID() string         { return QueensideMajorityID }
func (Queenside) PatternName() string       { return "Queenside majority attack" }
func (Queenside) PatternType() pattern.Type { return pattern.Strategic }

func (Queenside) Detect(moves []pattern.Move, result board.Result) pattern.DetectionResult {
	states := reduce(moves)

	if conf, ok := qualify(board.White, states[board.White]); ok {
		return build(board.White, states[board.White], conf)
	}
	if conf, ok := qualify(board.Black, states[board.Black]); ok {
		return build(board.Black, states[board.Black], conf)
	}
	return pattern.DetectionResult{}
}

func (Queenside) ClassifySuccess(d pattern.DetectionResult, result board.Result) (bool, pattern.SuccessOutcome) {
	return successOutcome(true)(d, result)
}

// qualify reports whether st satisfies the queenside-majority emission
// rule for color, returning the confidence score when it does.
func qualify(color board.Color, st *colorState) (float64, bool) {
	if st.majoritySpan < 3 || len(st.pushes) < 2 {
		return 0, false
	}
	if !(st.passedCreated || st.opponentPawnRemoved || len(st.pushes) >= 2) {
		return 0, false
	}

	conf := 0.55
	conf += min(0.25, 0.05*float64(st.majoritySpan))
	conf += min(0.20, 0.08*float64(len(st.pushes)))
	if st.opponentPawnRemoved {
		conf += 0.10
	}
	if st.passedCreated {
		conf += 0.15
	}
	conf += min(0.10, 0.05*float64(st.opponentIslandDelta))
	if st.hasMaxRank && isAdvancedMaxRank(color, st.maxRank) {
		conf += 0.10
	}
	return pattern.Clamp01(conf), true
}

func isAdvancedMaxRank(color board.Color, r board.Rank) bool {
	if color == board.White {
		return r >= board.Rank5
	}
	return r <= board.Rank4
}

func build(color board.Color, st *colorState, confidence float64) pattern.DetectionResult {
	return pattern.DetectionResult{
		Detected:        true,
		Confidence:      confidence,
		InitiatingColor: color,
		HasInitiator:    true,
		StartPly:        st.firstPly,
		EndPly:          st.lastPly,
		Metadata:        metadata(st),
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
