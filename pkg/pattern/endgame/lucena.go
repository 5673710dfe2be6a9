package endgame

import (
	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/pattern"
)

const LucenaID = "lucena_position"

// Lucena qualifies when one side has exactly a single pawn and a single
// rook with no minors or queens, and the other side has no pawns at all:
// the textbook winning rook-and-pawn-versus-rook endgame.
type Lucena struct{}

func (Lucena) PatternID() string         { return LucenaID }
func (Lucena) PatternName() string       { return "Lucena position" }
func (Lucena) PatternType() pattern.Type { return pattern.Endgame }

func (Lucena) Detect(moves []pattern.Move, result board.Result) pattern.DetectionResult {
	if len(moves) == 0 {
		return pattern.DetectionResult{}
	}
	final := moves[len(moves)-1].After.Board

	for _, color := range []board.Color{board.White, board.Black} {
		opp := color.Opponent()
		m := countMaterial(final, color)
		o := countMaterial(final, opp)

		if m.pawns == 1 && m.rooks == 1 && m.minors == 0 && m.queens == 0 && o.pawns == 0 {
			lastPly := moves[len(moves)-1].Ply
			return pattern.DetectionResult{
				Detected:        true,
				Confidence:      0.6,
				InitiatingColor: color,
				HasInitiator:    true,
				StartPly:        lastPly,
				EndPly:          lastPly,
				Metadata: map[string]any{
					"defending_rooks": o.rooks,
				},
			}
		}
	}
	return pattern.DetectionResult{}
}

func (Lucena) ClassifySuccess(d pattern.DetectionResult, result board.Result) (bool, pattern.SuccessOutcome) {
	color := board.White
	if d.HasInitiator {
		color = d.InitiatingColor
	}
	outcome := pattern.OutcomeFor(result, color)
	winner, decided := result.Winner()
	lost := decided && winner != color
	return !lost, outcome
}
