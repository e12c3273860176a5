package chessmg

// PseudoTargets returns the squares the piece on from may move to by its
// movement rule alone, ignoring whether its own king would be left in check.
// Castling is not a pseudo move; see castlingTargets.
func (b *Board) PseudoTargets(from Square) uint64 {
	p := b.squares[from]
	if p.IsNone() {
		return 0
	}
	own := b.occupancy[p.Color]
	switch p.Kind {
	case Pawn:
		return b.pawnTargets(from, p.Color)
	case Knight:
		return knightMoves[from] &^ own
	case Bishop:
		return b.slidingTargets(from, &bishopDirections) &^ own
	case Rook:
		return b.slidingTargets(from, &rookDirections) &^ own
	case Queen:
		return (b.slidingTargets(from, &rookDirections) | b.slidingTargets(from, &bishopDirections)) &^ own
	case King:
		return kingMoves[from] &^ own
	}
	return 0
}

// PseudoMoves lists the pseudo targets of the piece on from in ascending
// square order.
func (b *Board) PseudoMoves(from Square) []Square {
	var out []Square
	for m := b.PseudoTargets(from); m != 0; {
		out = append(out, popLSB(&m))
	}
	return out
}

func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func pawnHomeRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// enPassantRank is the rank an en passant target must sit on for c to take it.
func enPassantRank(c Color) int {
	if c == White {
		return 5
	}
	return 2
}

func (b *Board) pawnTargets(from Square, c Color) uint64 {
	var mask uint64
	dir := pawnDirection(c)
	if one, ok := step(from, 0, dir); ok && b.IsEmpty(one) {
		mask |= bb(one)
		if from.Rank() == pawnHomeRank(c) {
			if two, ok := step(one, 0, dir); ok && b.IsEmpty(two) {
				mask |= bb(two)
			}
		}
	}
	attacks := pawnAttacks[c][from]
	mask |= attacks & b.occupancy[c.Other()]
	if ep := b.enPassantSquare; ep != NoSquare && ep.Rank() == enPassantRank(c) && attacks&bb(ep) != 0 {
		mask |= bb(ep)
	}
	return mask
}

var castleSpecs = [2][2]struct {
	right     CastlingRights
	king      Square
	rook      Square
	target    Square
	between   []Square // must be empty
	kingsPath []Square // must not be attacked, origin included
}{
	White: {
		{CastlingWhiteK, E1, H1, G1, []Square{F1, G1}, []Square{E1, F1, G1}},
		{CastlingWhiteQ, E1, A1, C1, []Square{D1, C1, B1}, []Square{E1, D1, C1}},
	},
	Black: {
		{CastlingBlackK, E8, H8, G8, []Square{F8, G8}, []Square{E8, F8, G8}},
		{CastlingBlackQ, E8, A8, C8, []Square{D8, C8, B8}, []Square{E8, D8, C8}},
	},
}

// castlingTargets returns the castling destinations available to the king of
// c standing on from. The king must not be in check and must not cross or
// land on an attacked square; each square of its path is tested with the
// king standing on it.
func (b *Board) castlingTargets(from Square, c Color) uint64 {
	var mask uint64
	for _, cs := range castleSpecs[c] {
		if from != cs.king || !b.castlingRights.Has(cs.right) || !b.isPiece(cs.rook, c, Rook) {
			continue
		}
		empty := true
		for _, sq := range cs.between {
			if !b.IsEmpty(sq) {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		safe := true
		for _, sq := range cs.kingsPath {
			scratch := *b
			scratch.clearSquare(from)
			scratch.setPiece(sq, NewPiece(c, King))
			if scratch.IsSquareAttacked(sq, c.Other()) {
				safe = false
				break
			}
		}
		if safe {
			mask |= bb(cs.target)
		}
	}
	return mask
}

// candidateTargets is the full target set for the piece on from: pseudo
// targets plus castling for a king.
func (b *Board) candidateTargets(from Square) uint64 {
	p := b.squares[from]
	targets := b.PseudoTargets(from)
	if p.Kind == King {
		targets |= b.castlingTargets(from, p.Color)
	}
	return targets
}

// leavesKingSafe plays from->to on a scratch copy and reports whether the
// mover's king is then out of check.
func (b *Board) leavesKingSafe(from, to Square) bool {
	c := b.squares[from].Color
	scratch := *b
	scratch.movePieces(from, to, Queen)
	return !scratch.InCheck(c)
}

// IsLegal reports whether the piece on from may legally move to to. The
// piece may belong to either side; legality is judged for its owner.
func (b *Board) IsLegal(from, to Square) bool {
	if !from.Valid() || !to.Valid() || b.IsEmpty(from) {
		return false
	}
	if b.candidateTargets(from)&bb(to) == 0 {
		return false
	}
	return b.leavesKingSafe(from, to)
}

// LegalTargets returns the legal destinations of the piece on from.
func (b *Board) LegalTargets(from Square) uint64 {
	var legal uint64
	for m := b.candidateTargets(from); m != 0; {
		to := popLSB(&m)
		if b.leavesKingSafe(from, to) {
			legal |= bb(to)
		}
	}
	return legal
}

// LegalMoves lists every legal move of side c, ordered by origin square and
// then by destination square.
func (b *Board) LegalMoves(c Color) []Move {
	return b.AppendLegalMoves(make([]Move, 0, 48), c)
}

// AppendLegalMoves appends the legal moves of c to dst.
func (b *Board) AppendLegalMoves(dst []Move, c Color) []Move {
	for own := b.occupancy[c]; own != 0; {
		from := popLSB(&own)
		for m := b.LegalTargets(from); m != 0; {
			dst = append(dst, NewMove(from, popLSB(&m)))
		}
	}
	return dst
}

// CountLegalMoves counts the legal moves of c without allocating.
func (b *Board) CountLegalMoves(c Color) int {
	n := 0
	for own := b.occupancy[c]; own != 0; {
		n += popCount(b.LegalTargets(popLSB(&own)))
	}
	return n
}

// HasLegalMoves reports whether c has at least one legal move.
func (b *Board) HasLegalMoves(c Color) bool {
	for own := b.occupancy[c]; own != 0; {
		if b.LegalTargets(popLSB(&own)) != 0 {
			return true
		}
	}
	return false
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck(b.sideToMove) && !b.HasLegalMoves(b.sideToMove)
}

// InStalemate reports whether the side to move has no legal move and is not in check.
func (b *Board) InStalemate() bool {
	return !b.InCheck(b.sideToMove) && !b.HasLegalMoves(b.sideToMove)
}
