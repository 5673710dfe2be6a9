package san

import (
	"fmt"

	"github.com/herohde/chessbuddy/pkg/board"
)

// Resolve finds the unique source square for a parsed (non-castling) SAN
// move against the given state. Zero candidates is a parse error; more
// than one is an ambiguity error, since the caller should not advance
// state on either.
func Resolve(state board.GameState, p Parsed) (board.Square, bool, error) {
	color := state.Metadata.SideToMove

	var candidates []board.Square
	var isEnPassant bool

	switch p.Kind {
	case kindPawnPush:
		candidates = pawnPushCandidates(state.Board, color, p.Dest)
	case kindPawnCapture:
		var ep bool
		candidates, ep = pawnCaptureCandidates(state, color, p.Dest)
		isEnPassant = ep
	case kindPieceMove:
		candidates = pieceCandidates(state.Board, color, p.Piece, p.Dest)
	default:
		return board.ZeroSquare, false, fmt.Errorf("san: resolve called on castling move %q", p.Raw)
	}

	candidates = filterDisambiguation(candidates, p)

	switch len(candidates) {
	case 0:
		return board.ZeroSquare, false, fmt.Errorf("san: no source square for %q", p.Raw)
	case 1:
		return candidates[0], isEnPassant, nil
	default:
		return board.ZeroSquare, false, fmt.Errorf("san: ambiguous move %q (%v candidates)", p.Raw, len(candidates))
	}
}

func filterDisambiguation(candidates []board.Square, p Parsed) []board.Square {
	if !p.HasDisambigFile && !p.HasDisambigRank {
		return candidates
	}
	var out []board.Square
	for _, sq := range candidates {
		if p.HasDisambigFile && sq.File() != p.DisambigFile {
			continue
		}
		if p.HasDisambigRank && sq.Rank() != p.DisambigRank {
			continue
		}
		out = append(out, sq)
	}
	return out
}

func pawnPushCandidates(b board.Board, color board.Color, dest board.Square) []board.Square {
	dir := 1
	startRank := board.Rank2
	if color == board.Black {
		dir = -1
		startRank = board.Rank7
	}

	var out []board.Square

	// One step back from dest, same file.
	if r := int(dest.Rank()) - dir; r >= 0 && r < int(board.NumRanks) {
		src := board.NewSquare(dest.File(), board.Rank(r))
		if piece, c, ok, _ := b.At(src); ok && piece == board.Pawn && c == color {
			out = append(out, src)
		}
	}

	// Two steps back from dest, same file, only from the color's initial rank.
	if r := int(dest.Rank()) - 2*dir; board.Rank(r) == startRank {
		src := board.NewSquare(dest.File(), board.Rank(r))
		if piece, c, ok, _ := b.At(src); ok && piece == board.Pawn && c == color {
			out = append(out, src)
		}
	}

	return out
}

func pawnCaptureCandidates(state board.GameState, color board.Color, dest board.Square) ([]board.Square, bool) {
	b := state.Board
	dir := 1
	if color == board.Black {
		dir = -1
	}

	isEnPassant := false
	if ep, ok := state.Metadata.EnPassant.V(); ok && ep == dest {
		isEnPassant = true
	}

	var out []board.Square
	for _, df := range []int{-1, 1} {
		f := int(dest.File()) + df
		r := int(dest.Rank()) - dir
		if f < 0 || f >= int(board.NumFiles) || r < 0 || r >= int(board.NumRanks) {
			continue
		}
		src := board.NewSquare(board.File(f), board.Rank(r))
		if piece, c, ok, _ := b.At(src); ok && piece == board.Pawn && c == color {
			out = append(out, src)
		}
	}
	return out, isEnPassant
}

func pieceCandidates(b board.Board, color board.Color, piece board.Piece, dest board.Square) []board.Square {
	var out []board.Square
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		p, c, ok, _ := b.At(sq)
		if !ok || p != piece || c != color {
			continue
		}
		if canReach(b, piece, sq, dest) {
			out = append(out, sq)
		}
	}
	return out
}

func canReach(b board.Board, piece board.Piece, from, to board.Square) bool {
	if from == to {
		return false
	}
	df := int(to.File()) - int(from.File())
	dr := int(to.Rank()) - int(from.Rank())

	switch piece {
	case board.Knight:
		a, c := abs(df), abs(dr)
		return (a == 1 && c == 2) || (a == 2 && c == 1)
	case board.King:
		return maxInt(abs(df), abs(dr)) == 1
	case board.Rook:
		return (df == 0 || dr == 0) && clearPath(b, from, to)
	case board.Bishop:
		return abs(df) == abs(dr) && clearPath(b, from, to)
	case board.Queen:
		return (df == 0 || dr == 0 || abs(df) == abs(dr)) && clearPath(b, from, to)
	default:
		return false
	}
}

// clearPath reports whether every square strictly between from and to
// (exclusive) is empty. Sliding pieces never jump over occupied squares;
// per spec, blocker checks are always performed rather than deferred.
func clearPath(b board.Board, from, to board.Square) bool {
	stepF := sign(int(to.File()) - int(from.File()))
	stepR := sign(int(to.Rank()) - int(from.Rank()))

	f, r := int(from.File())+stepF, int(from.Rank())+stepR
	for f != int(to.File()) || r != int(to.Rank()) {
		if _, _, ok, _ := b.Get(board.File(f), board.Rank(r)); ok {
			return false
		}
		f += stepF
		r += stepR
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
