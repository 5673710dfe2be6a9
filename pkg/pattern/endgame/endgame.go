// Package endgame implements detectors that inspect only a game's final
// board: Lucena and Philidor rook-endgame positions.
package endgame

import "github.com/herohde/chessbuddy/pkg/board"

// material tallies one color's non-king force on a board.
type material struct {
	pawns, rooks, minors, queens int
}

func countMaterial(b board.Board, color board.Color) material {
	var m material
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		piece, c, ok, _ := b.At(sq)
		if !ok || c != color {
			continue
		}
		switch piece {
		case board.Pawn:
			m.pawns++
		case board.Rook:
			m.rooks++
		case board.Bishop, board.Knight:
			m.minors++
		case board.Queen:
			m.queens++
		}
	}
	return m
}

func pawnSquares(b board.Board, color board.Color) []board.Square {
	var out []board.Square
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		piece, c, ok, _ := b.At(sq)
		if ok && c == color && piece == board.Pawn {
			out = append(out, sq)
		}
	}
	return out
}
