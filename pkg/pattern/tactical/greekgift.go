// Package tactical implements move-scanning tactical detectors, starting
// with the greek-gift bishop sacrifice.
package tactical

import (
	"strings"

	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/pattern"
)

const GreekGiftID = "greek_gift_sacrifice"

// GreekGift scans a game's SAN for the classic Bxh7/Bxh2 bishop sacrifice
// and stops at the first occurrence.
type GreekGift struct{}

func (GreekGift) PatternID() string         { return GreekGiftID }
func (GreekGift) PatternName() string       { return "Greek gift sacrifice" }
func (GreekGift) PatternType() pattern.Type { return pattern.Tactical }

func (GreekGift) Detect(moves []pattern.Move, result board.Result) pattern.DetectionResult {
	for _, mv := range moves {
		var matched bool
		switch mv.Mover {
		case board.White:
			matched = strings.Contains(mv.SAN, "Bxh7")
		case board.Black:
			matched = strings.Contains(mv.SAN, "Bxh2")
		}
		if !matched {
			continue
		}

		confidence := 0.8
		if strings.HasSuffix(mv.SAN, "#") {
			confidence = 1.0
		}

		return pattern.DetectionResult{
			Detected:        true,
			Confidence:      confidence,
			InitiatingColor: mv.Mover,
			HasInitiator:    true,
			StartPly:        mv.Ply,
			EndPly:          mv.Ply,
			Metadata: map[string]any{
				"san": mv.SAN,
			},
		}
	}
	return pattern.DetectionResult{}
}

func (GreekGift) ClassifySuccess(d pattern.DetectionResult, result board.Result) (bool, pattern.SuccessOutcome) {
	color := board.White
	if d.HasInitiator {
		color = d.InitiatingColor
	}
	outcome := pattern.OutcomeFor(result, color)
	winner, decided := result.Winner()
	return decided && winner == color, outcome
}
