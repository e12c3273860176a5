package chessmg

// MoveRecord describes an applied move and carries the snapshot needed to
// take it back exactly.
type MoveRecord struct {
	Move      Move
	Piece     Piece     // the piece that moved
	Captured  Piece     // piece taken on the destination or, for en passant, behind it
	EnPassant bool      // Captured was taken en passant
	Castle    bool      // the king castled
	Promotion PieceKind // NoKind unless a pawn promoted

	before Board
}

// movePieces relocates the pieces a move touches: the en passant victim,
// the castling rook and the promotion. It leaves rights, clocks and the side
// to move alone, so it is enough for check simulation.
func (b *Board) movePieces(from, to Square, promo PieceKind) (captured Piece, enPassant, castle bool) {
	p := b.squares[from]
	switch {
	case b.isEnPassant(from, to):
		enPassant = true
		captured = b.clearSquare(NewSquare(to.File(), from.Rank()))
	default:
		captured = b.squares[to]
	}

	if p.Kind == King && abs(to.File()-from.File()) == 2 {
		castle = true
		rookFrom, rookTo := NewSquare(7, from.Rank()), NewSquare(5, from.Rank())
		if to.File() < from.File() {
			rookFrom, rookTo = NewSquare(0, from.Rank()), NewSquare(3, from.Rank())
		}
		b.setPiece(rookTo, b.clearSquare(rookFrom))
	}

	b.clearSquare(from)
	if p.Kind == Pawn && to.Rank() == lastRank(p.Color) {
		if !promo.IsPromotion() {
			promo = Queen
		}
		p.Kind = promo
	}
	b.setPiece(to, p)
	return captured, enPassant, castle
}

// rightsLost maps a square to the castling flags that vanish when a piece
// leaves or is captured on it.
var rightsLost = func() (t [64]CastlingRights) {
	t[E1] = CastlingWhiteK | CastlingWhiteQ
	t[H1] = CastlingWhiteK
	t[A1] = CastlingWhiteQ
	t[E8] = CastlingBlackK | CastlingBlackQ
	t[H8] = CastlingBlackK
	t[A8] = CastlingBlackQ
	return t
}()

// play applies from->to with all rule side effects and returns the record.
// The move is assumed legal.
func (b *Board) play(from, to Square, promo PieceKind) MoveRecord {
	rec := MoveRecord{Move: NewMove(from, to), Piece: b.squares[from], before: *b}
	mover := rec.Piece

	// movePieces needs the old target to spot an en passant capture.
	rec.Captured, rec.EnPassant, rec.Castle = b.movePieces(from, to, promo)
	b.enPassantSquare = NoSquare
	if mover.Kind == Pawn && to.Rank() == lastRank(mover.Color) {
		rec.Promotion = b.squares[to].Kind
	}

	// A king or rook leaving home, or a rook captured at home, clears rights.
	b.castlingRights &^= rightsLost[from] | rightsLost[to]

	if mover.Kind == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		b.enPassantSquare = NewSquare(from.File(), (from.Rank()+to.Rank())/2)
	}

	if mover.Kind == Pawn || !rec.Captured.IsNone() {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if mover.Color == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = mover.Color.Other()
	return rec
}

// Trial plays m in place, promoting to a queen, and returns the function
// that restores b to its prior value. Callers defer the restore so that it
// runs on every exit path.
func (b *Board) Trial(m Move) (restore func()) {
	saved := *b
	b.play(m.From(), m.To(), Queen)
	return func() { *b = saved }
}

// After returns a copy of b with m played, promoting to promo.
func (b *Board) After(m Move, promo PieceKind) Board {
	next := *b
	next.play(m.From(), m.To(), promo)
	return next
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
