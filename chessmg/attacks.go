package chessmg

// Precomputed leaper masks from each square.
var knightMoves [64]uint64
var kingMoves [64]uint64

// pawnAttacks[color][sq] holds the squares a pawn of color attacks from sq.
var pawnAttacks [2][64]uint64

// Sliding directions as (file, rank) steps.
var rookDirections = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var bishopDirections = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}

func init() {
	initAttackTables()
}

func initAttackTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := Square(0); sq < 64; sq++ {
		knightMoves[sq] = offsetMask(sq, knightOffsets[:])
		kingMoves[sq] = offsetMask(sq, kingOffsets[:])
		pawnAttacks[White][sq] = offsetMask(sq, [][2]int{{-1, 1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetMask(sq, [][2]int{{-1, -1}, {1, -1}})
	}
}

func offsetMask(sq Square, offsets [][2]int) uint64 {
	var mask uint64
	for _, off := range offsets {
		if t, ok := step(sq, off[0], off[1]); ok {
			mask |= bb(t)
		}
	}
	return mask
}

func step(sq Square, df, dr int) (Square, bool) {
	f, r := sq.File()+df, sq.Rank()+dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}

// slidingTargets collects the squares reachable from sq along dirs, stopping
// at and including the first occupied square.
func (b *Board) slidingTargets(sq Square, dirs *[4][2]int) uint64 {
	var mask uint64
	occ := b.AllOccupancy()
	for _, d := range dirs {
		t := sq
		for {
			next, ok := step(t, d[0], d[1])
			if !ok {
				break
			}
			mask |= bb(next)
			if occ&bb(next) != 0 {
				break
			}
			t = next
		}
	}
	return mask
}

// IsSquareAttacked reports whether any piece of side by could capture on sq.
// The test mirrors every piece's capture pattern outward from sq, which is
// equivalent to asking whether sq is among the pseudo-move targets of an
// enemy piece when sq is occupied.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	for m := pawnAttacks[by.Other()][sq]; m != 0; {
		if b.isPiece(popLSB(&m), by, Pawn) {
			return true
		}
	}
	for m := knightMoves[sq]; m != 0; {
		if b.isPiece(popLSB(&m), by, Knight) {
			return true
		}
	}
	for m := kingMoves[sq]; m != 0; {
		if b.isPiece(popLSB(&m), by, King) {
			return true
		}
	}
	for _, d := range rookDirections {
		if p := b.firstPiece(sq, d[0], d[1]); p.Color == by && (p.Kind == Rook || p.Kind == Queen) {
			return true
		}
	}
	for _, d := range bishopDirections {
		if p := b.firstPiece(sq, d[0], d[1]); p.Color == by && (p.Kind == Bishop || p.Kind == Queen) {
			return true
		}
	}
	return false
}

func (b *Board) firstPiece(sq Square, df, dr int) Piece {
	for {
		next, ok := step(sq, df, dr)
		if !ok {
			return NoPiece
		}
		if p := b.squares[next]; !p.IsNone() {
			return p
		}
		sq = next
	}
}

// InCheck reports whether the king of side c is attacked.
func (b *Board) InCheck(c Color) bool {
	return b.IsSquareAttacked(b.KingSquare(c), c.Other())
}
