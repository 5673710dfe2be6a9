package san

import (
	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Details describes the concrete effect of an applied move: which squares
// changed, what (if anything) was captured, and the SAN-derived check/mate
// flags.
type Details struct {
	From, To    board.Square
	Piece       board.Piece
	Captured    lang.Optional[board.Piece]
	IsCapture   bool
	IsEnPassant bool
	IsPromotion bool
	Promotion   board.Piece
	IsCastle    bool
	IsCheck     bool
	IsMate      bool
}

// Apply parses san, resolves its source square against state, and returns
// the resulting state together with the move's details. It never mutates
// state; on any error (unparseable SAN, ambiguous move) state is returned
// unchanged so the caller can retain the prior position.
func Apply(state board.GameState, san string) (board.GameState, Details, error) {
	p, err := Parse(san)
	if err != nil {
		return state, Details{}, err
	}

	color := state.Metadata.SideToMove

	if p.Kind == kindKingSideCastle || p.Kind == kindQueenSideCastle {
		return applyCastle(state, p)
	}

	from, isEnPassant, err := Resolve(state, p)
	if err != nil {
		return state, Details{}, err
	}

	d := Details{
		From:        from,
		To:          p.Dest,
		Piece:       p.Piece,
		IsCapture:   p.IsCapture,
		IsEnPassant: isEnPassant,
		IsPromotion: p.Promotion != board.NoPiece,
		Promotion:   p.Promotion,
		IsCheck:     p.IsCheck,
		IsMate:      p.IsMate,
	}

	next := state
	b := state.Board

	if isEnPassant {
		capturedSq := board.NewSquare(p.Dest.File(), from.Rank())
		if cp, _, ok, _ := b.At(capturedSq); ok {
			d.Captured = lang.Some(cp)
		}
		var cerr error
		b, cerr = b.Clear(capturedSq.File(), capturedSq.Rank())
		if cerr != nil {
			return state, Details{}, cerr
		}
	} else if cp, _, ok, _ := b.At(p.Dest); ok {
		d.Captured = lang.Some(cp)
	}

	var berr error
	b, berr = b.Clear(from.File(), from.Rank())
	if berr != nil {
		return state, Details{}, berr
	}

	placed := p.Piece
	if d.IsPromotion {
		placed = p.Promotion
	}
	b, berr = b.Set(p.Dest.File(), p.Dest.Rank(), placed, color)
	if berr != nil {
		return state, Details{}, berr
	}

	next.Board = b
	next.Metadata = nextMetadata(state.Metadata, color, p.Piece, from, p.Dest, d.IsCapture || isEnPassant, d.Captured)

	return next, d, nil
}

func applyCastle(state board.GameState, p Parsed) (board.GameState, Details, error) {
	color := state.Metadata.SideToMove
	home := board.HomeRank(color)

	kingFrom := board.NewSquare(board.FileE, home)
	var kingTo, rookFrom, rookTo board.Square
	if p.Kind == kindKingSideCastle {
		kingTo = board.NewSquare(board.FileG, home)
		rookFrom = board.NewSquare(board.FileH, home)
		rookTo = board.NewSquare(board.FileF, home)
	} else {
		kingTo = board.NewSquare(board.FileC, home)
		rookFrom = board.NewSquare(board.FileA, home)
		rookTo = board.NewSquare(board.FileD, home)
	}

	b := state.Board
	var err error
	if b, err = b.Clear(kingFrom.File(), kingFrom.Rank()); err != nil {
		return state, Details{}, err
	}
	if b, err = b.Set(kingTo.File(), kingTo.Rank(), board.King, color); err != nil {
		return state, Details{}, err
	}
	if b, err = b.Clear(rookFrom.File(), rookFrom.Rank()); err != nil {
		return state, Details{}, err
	}
	if b, err = b.Set(rookTo.File(), rookTo.Rank(), board.Rook, color); err != nil {
		return state, Details{}, err
	}

	next := state
	next.Board = b
	next.Metadata = nextMetadata(state.Metadata, color, board.King, kingFrom, kingTo, false, lang.Optional[board.Piece]{})

	d := Details{
		From:     kingFrom,
		To:       kingTo,
		Piece:    board.King,
		IsCastle: true,
		IsCheck:  p.IsCheck,
		IsMate:   p.IsMate,
	}
	return next, d, nil
}

// nextMetadata computes castling rights, EP target, halfmove clock, side
// to move and fullmove number for the position after a move.
func nextMetadata(m board.PositionMetadata, mover board.Color, piece board.Piece, from, to board.Square, isCaptureOrEP bool, captured lang.Optional[board.Piece]) board.PositionMetadata {
	next := m

	// Castling rights: king move clears both; rook departure from a home
	// corner clears one; a rook captured on its home corner clears the
	// opponent's corresponding right. A castle is handled by the caller
	// passing piece=King with from/to already reflecting the king's move.
	castling := m.Castling
	if piece == board.King {
		castling = castling.Without(board.Both(mover))
	}
	castling = clearRookRight(castling, mover, from)
	if cp, ok := captured.V(); ok && cp == board.Rook {
		castling = clearRookRight(castling, mover.Opponent(), to)
	}
	next.Castling = castling

	// En-passant target: only set for a two-square pawn push.
	next.EnPassant = lang.Optional[board.Square]{}
	if piece == board.Pawn {
		delta := int(to.Rank()) - int(from.Rank())
		if delta == 2 || delta == -2 {
			mid := (int(from.Rank()) + int(to.Rank())) / 2
			next.EnPassant = lang.Some(board.NewSquare(from.File(), board.Rank(mid)))
		}
	}

	// Halfmove clock: reset on pawn move or capture.
	if piece == board.Pawn || isCaptureOrEP {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock = m.HalfmoveClock + 1
	}

	// Fullmove number increments after Black's move.
	next.FullmoveNumber = m.FullmoveNumber
	if mover == board.Black {
		next.FullmoveNumber++
	}

	next.SideToMove = mover.Opponent()
	return next
}

func clearRookRight(c board.Castling, color board.Color, sq board.Square) board.Castling {
	home := board.HomeRank(color)
	if sq.Rank() != home {
		return c
	}
	switch sq.File() {
	case board.FileA:
		return c.Without(board.QueenSide(color))
	case board.FileH:
		return c.Without(board.KingSide(color))
	default:
		return c
	}
}
