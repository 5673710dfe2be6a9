// Package majority implements the queenside-majority-attack and
// minority-attack strategic detectors: both reduce over a game's move list
// tracking per-color pawn-structure state in the queenside zone.
package majority

import (
	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/pattern"
	"github.com/herohde/chessbuddy/pkg/pawns"
)

const zone = pawns.Queenside

// colorState accumulates the per-color reduction described by the
// queenside-majority and minority-attack detectors.
type colorState struct {
	majoritySpan        int
	minorityObserved    bool
	firstPly, lastPly   int
	hasFirstPly         bool
	pushes              []pawns.Transition
	passedCreated       bool
	opponentPawnRemoved bool
	opponentIslandDelta int
	maxRank             board.Rank
	hasMaxRank          bool
}

func reduce(moves []pattern.Move) map[board.Color]*colorState {
	states := map[board.Color]*colorState{
		board.White: {},
		board.Black: {},
	}

	for _, mv := range moves {
		before, after := mv.Before.Board, mv.After.Board

		for _, color := range []board.Color{board.White, board.Black} {
			st := states[color]
			opp := color.Opponent()

			if pawns.HasZoneMajority(after, zone, color) {
				st.majoritySpan++
				if !st.hasFirstPly {
					st.firstPly, st.hasFirstPly = mv.Ply, true
				}
				st.lastPly = mv.Ply
			}
			if pawns.CountZone(before, color, zone) < pawns.CountZone(before, opp, zone) {
				st.minorityObserved = true
			}

			if t, ok := pawns.DetectTransition(before, after, color, zone); ok {
				st.pushes = append(st.pushes, t)
				if pawns.PassedPawnCreated(before, after, color, zone) {
					st.passedCreated = true
				}
				r := t.To.Rank
				if !st.hasMaxRank || moreAdvanced(color, r, st.maxRank) {
					st.maxRank, st.hasMaxRank = r, true
				}
			}

			if pawns.CountZone(after, opp, zone) < pawns.CountZone(before, opp, zone) {
				st.opponentPawnRemoved = true
			}

			delta := pawns.IslandCount(after, opp) - pawns.IslandCount(before, opp)
			if delta > 0 {
				st.opponentIslandDelta += delta
			}
		}
	}

	return states
}

func moreAdvanced(color board.Color, r, than board.Rank) bool {
	if color == board.White {
		return r > than
	}
	return r < than
}

func metadata(st *colorState) map[string]any {
	return map[string]any{
		"push_count":            len(st.pushes),
		"passed_pawn":           st.passedCreated,
		"opponent_pawn_removed": st.opponentPawnRemoved,
		"island_delta":          st.opponentIslandDelta,
		"pushes":                st.pushes,
	}
}

func successOutcome(victoryAndAdvantage bool) func(pattern.DetectionResult, board.Result) (bool, pattern.SuccessOutcome) {
	return func(d pattern.DetectionResult, result board.Result) (bool, pattern.SuccessOutcome) {
		color := board.White
		if d.HasInitiator {
			color = d.InitiatingColor
		}
		outcome := pattern.OutcomeFor(result, color)
		if victoryAndAdvantage {
			switch outcome {
			case pattern.Victory, pattern.DrawAdvantage:
				return true, outcome
			default:
				return false, outcome
			}
		}
		// Draws count as success for the minority attack: the motif
		// commonly yields a durable structural advantage even without a win.
		switch outcome {
		case pattern.Victory, pattern.DrawAdvantage, pattern.DrawNeutral:
			return true, outcome
		default:
			return false, outcome
		}
	}
}
