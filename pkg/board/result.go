package board

import "fmt"

// Result represents a PGN game result tag. 2 bits.
type Result uint8

const (
	Undecided Result = iota
	WhiteWins
	BlackWins
	Draw
)

// ParseResult parses one of the four PGN result tokens.
func ParseResult(str string) (Result, error) {
	switch str {
	case "1-0":
		return WhiteWins, nil
	case "0-1":
		return BlackWins, nil
	case "1/2-1/2":
		return Draw, nil
	case "*":
		return Undecided, nil
	default:
		return Undecided, fmt.Errorf("board: invalid result token: %q", str)
	}
}

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Winner returns the winning color, if the result is decisive.
func (r Result) Winner() (Color, bool) {
	switch r {
	case WhiteWins:
		return White, true
	case BlackWins:
		return Black, true
	default:
		return 0, false
	}
}
