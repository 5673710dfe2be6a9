package endgame

import (
	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/pattern"
)

const PhilidorID = "philidor_position"

// Philidor qualifies when a defender holds a bare rook against an
// attacker's rook-and-pawn, with the attacking pawn advanced to the 6th
// rank (White attacker) or 3rd rank (Black attacker) — the classic
// third-rank-defense drawing endgame. The rank-only check is a weak
// structural approximation of the actual defensive setup.
type Philidor struct{}

func (Philidor) PatternID() string         { return PhilidorID }
func (Philidor) PatternName() string       { return "Philidor position" }
func (Philidor) PatternType() pattern.Type { return pattern.Endgame }

func (Philidor) Detect(moves []pattern.Move, result board.Result) pattern.DetectionResult {
	if len(moves) == 0 {
		return pattern.DetectionResult{}
	}
	final := moves[len(moves)-1].After.Board

	for _, attacker := range []board.Color{board.White, board.Black} {
		defender := attacker.Opponent()

		def := countMaterial(final, defender)
		if def.rooks != 1 || def.pawns != 0 {
			continue
		}

		att := countMaterial(final, attacker)
		if att.rooks != 1 || att.pawns != 1 {
			continue
		}

		pawns := pawnSquares(final, attacker)
		if len(pawns) != 1 {
			continue
		}
		want := board.Rank6
		if attacker == board.Black {
			want = board.Rank3
		}
		if pawns[0].Rank() != want {
			continue
		}

		lastPly := moves[len(moves)-1].Ply
		return pattern.DetectionResult{
			Detected:        true,
			Confidence:      0.5,
			InitiatingColor: attacker,
			HasInitiator:    true,
			StartPly:        lastPly,
			EndPly:          lastPly,
			Metadata: map[string]any{
				"defender": defender.String(),
			},
		}
	}
	return pattern.DetectionResult{}
}

func (Philidor) ClassifySuccess(d pattern.DetectionResult, result board.Result) (bool, pattern.SuccessOutcome) {
	color := board.White
	if d.HasInitiator {
		color = d.InitiatingColor
	}
	outcome := pattern.OutcomeFor(result, color)
	return result == board.Draw, outcome
}
