package board

import (
	"fmt"

	"github.com/seekerror/stdlib/pkg/lang"
)

// PositionMetadata is the non-board half of a FEN: whose turn it is, the
// surviving castling rights, the en-passant target (if any), and the two
// move clocks.
type PositionMetadata struct {
	SideToMove     Color
	Castling       Castling
	EnPassant      lang.Optional[Square]
	HalfmoveClock  int
	FullmoveNumber int
}

func (m PositionMetadata) String() string {
	ep := "-"
	if sq, ok := m.EnPassant.V(); ok {
		ep = sq.String()
	}
	return fmt.Sprintf("{turn=%v, castling=%v, ep=%v, halfmove=%v, fullmove=%v}", m.SideToMove, m.Castling, ep, m.HalfmoveClock, m.FullmoveNumber)
}

// GameState is a full chess position: a Board plus its PositionMetadata.
// GameState values are freely copied.
type GameState struct {
	Board    Board
	Metadata PositionMetadata
}

// InitialState is the standard starting position: all four castling
// rights enabled, no en-passant target, clocks (0, 1), White to move.
func InitialState() GameState {
	return GameState{
		Board: Initial(),
		Metadata: PositionMetadata{
			SideToMove:     White,
			Castling:       FullCastingRights,
			HalfmoveClock:  0,
			FullmoveNumber: 1,
		},
	}
}

func (s GameState) String() string {
	return fmt.Sprintf("%v%v", s.Board, s.Metadata)
}
