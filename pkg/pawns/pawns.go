// Package pawns contains pure functions over a board.Board's pawn
// structure: zone counts, pawn transitions between two positions, pawn
// islands and a passed-pawn heuristic. Every function here is
// side-effect-free and holds no state between calls.
package pawns

import "github.com/herohde/chessbuddy/pkg/board"

// Zone is one of the three file groupings pawn-structure detectors reason
// about.
type Zone int

const (
	Queenside Zone = iota // files a-c
	Centre                // files d-e
	Kingside              // files f-h
)

// Files returns the inclusive [lo, hi] file range of the zone.
func (z Zone) Files() (lo, hi board.File) {
	switch z {
	case Queenside:
		return board.FileA, board.FileC
	case Centre:
		return board.FileD, board.FileE
	default:
		return board.FileF, board.FileH
	}
}

func (z Zone) contains(f board.File) bool {
	lo, hi := z.Files()
	return f >= lo && f <= hi
}

// Position is a pawn's (file, rank) coordinate.
type Position struct {
	File board.File
	Rank board.Rank
}

// PawnPositions returns the coordinates of every pawn of the given color.
func PawnPositions(b board.Board, color board.Color) []Position {
	var out []Position
	for f := board.ZeroFile; f < board.NumFiles; f++ {
		for r := board.ZeroRank; r < board.NumRanks; r++ {
			piece, c, ok, _ := b.Get(f, r)
			if ok && piece == board.Pawn && c == color {
				out = append(out, Position{File: f, Rank: r})
			}
		}
	}
	return out
}

// CountZone returns the number of the given color's pawns in zone.
func CountZone(b board.Board, color board.Color, zone Zone) int {
	n := 0
	for _, p := range PawnPositions(b, color) {
		if zone.contains(p.File) {
			n++
		}
	}
	return n
}

// HasZoneMajority reports whether color has strictly more pawns than its
// opponent in zone.
func HasZoneMajority(b board.Board, zone Zone, color board.Color) bool {
	return CountZone(b, color, zone) > CountZone(b, color.Opponent(), zone)
}

// Transition describes a pawn move of color within zone, identified by
// diffing two positions.
type Transition struct {
	From, To   Position
	IsCapture  bool
	DoubleStep bool
}

// DetectTransition finds the pawn square in zone that is new in after but
// absent from before, and locates a plausible source for it: the same
// file one rank back, an adjacent file one rank back (a capture), or the
// same file two ranks back from the color's initial pawn rank (a double
// step). Returns ok=false if no such transition is found.
func DetectTransition(before, after board.Board, color board.Color, zone Zone) (Transition, bool) {
	beforeSet := toSet(PawnPositions(before, color))

	dir := 1
	startRank := board.Rank2
	if color == board.Black {
		dir = -1
		startRank = board.Rank7
	}

	for _, to := range PawnPositions(after, color) {
		if !zone.contains(to.File) {
			continue
		}
		if _, existed := beforeSet[to]; existed {
			continue
		}

		// Candidate sources, checked in order of likelihood.
		sameFileOneBack := Position{File: to.File, Rank: board.Rank(int(to.Rank) - dir)}
		if _, ok := beforeSet[sameFileOneBack]; ok && validRank(sameFileOneBack.Rank) {
			return Transition{From: sameFileOneBack, To: to, IsCapture: false, DoubleStep: false}, true
		}

		twoBack := Position{File: to.File, Rank: board.Rank(int(to.Rank) - 2*dir)}
		if twoBack.Rank == startRank {
			if _, ok := beforeSet[twoBack]; ok {
				return Transition{From: twoBack, To: to, IsCapture: false, DoubleStep: true}, true
			}
		}

		for _, df := range []int{-1, 1} {
			src := Position{File: board.File(int(to.File) + df), Rank: board.Rank(int(to.Rank) - dir)}
			if !validFile(src.File) || !validRank(src.Rank) {
				continue
			}
			if _, ok := beforeSet[src]; ok {
				// is_capture iff before's destination square was occupied by
				// the opposite color, or the source file differs (it
				// always does here, since this branch is the adjacent-file
				// case).
				return Transition{From: src, To: to, IsCapture: true, DoubleStep: false}, true
			}
		}
	}

	return Transition{}, false
}

// PassedPawnCreated reports whether the pawn transition detected between
// before and after in zone resulted in a passed pawn: no opposing pawn
// remains on the destination file or an adjacent file, ahead of the
// pushed pawn.
func PassedPawnCreated(before, after board.Board, color board.Color, zone Zone) bool {
	t, ok := DetectTransition(before, after, color, zone)
	if !ok {
		return false
	}

	opp := color.Opponent()
	for _, p := range PawnPositions(after, opp) {
		if abs(int(p.File)-int(t.To.File)) > 1 {
			continue
		}
		if isAhead(color, p.Rank, t.To.Rank) {
			return false
		}
	}
	return true
}

// IslandCount returns the number of maximal contiguous file-ranges
// containing at least one pawn of color.
func IslandCount(b board.Board, color board.Color) int {
	var occupied [8]bool
	for _, p := range PawnPositions(b, color) {
		occupied[p.File] = true
	}

	islands := 0
	inIsland := false
	for f := 0; f < 8; f++ {
		if occupied[f] {
			if !inIsland {
				islands++
				inIsland = true
			}
		} else {
			inIsland = false
		}
	}
	return islands
}

// MaxRankInZone returns the most advanced rank of color's pawns in zone:
// the greatest rank for White, the least for Black. ok is false if color
// has no pawn in zone.
func MaxRankInZone(b board.Board, color board.Color, zone Zone) (rank board.Rank, ok bool) {
	best := -1
	for _, p := range PawnPositions(b, color) {
		if !zone.contains(p.File) {
			continue
		}
		r := int(p.Rank)
		if color == board.Black {
			r = int(board.NumRanks) - 1 - r // invert so "best" means "most advanced" either way
		}
		if r > best {
			best = r
		}
	}
	if best < 0 {
		return 0, false
	}
	if color == board.Black {
		return board.Rank(int(board.NumRanks) - 1 - best), true
	}
	return board.Rank(best), true
}

func toSet(ps []Position) map[Position]bool {
	m := make(map[Position]bool, len(ps))
	for _, p := range ps {
		m[p] = true
	}
	return m
}

func validFile(f board.File) bool { return f.IsValid() }
func validRank(r board.Rank) bool { return r.IsValid() }

func isAhead(color board.Color, rank, of board.Rank) bool {
	if color == board.White {
		return rank > of
	}
	return rank < of
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
