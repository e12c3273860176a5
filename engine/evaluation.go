package engine

import gm "minimax-chess/chessmg"

// Evaluation is a score split into its terms, all from white's point of view.
type Evaluation struct {
	Material int
	Position int
	Mobility int
	Check    int
}

// Total sums the terms.
func (e Evaluation) Total() int { return e.Material + e.Position + e.Mobility + e.Check }

// pstBonus looks up the table for p standing on sq. Row 0 of a table is the
// eighth rank, so white reads row 7-rank and black reads row rank.
func pstBonus(p gm.Piece, sq gm.Square) int {
	row := 7 - sq.Rank()
	if p.Color == gm.Black {
		row = sq.Rank()
	}
	return pieceSquareTables[p.Kind][row][sq.File()]
}

// Evaluate scores b statically: positive favors white. b is only read.
func Evaluate(b *gm.Board) int {
	return EvaluateTerms(b).Total()
}

// EvaluateTerms returns the terms that make up Evaluate.
func EvaluateTerms(b *gm.Board) Evaluation {
	var e Evaluation
	for sq := gm.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.IsNone() {
			continue
		}
		sign := 1
		if p.Color == gm.Black {
			sign = -1
		}
		e.Material += sign * PieceValue[p.Kind]
		e.Position += sign * pstBonus(p, sq)
	}

	e.Mobility = (b.CountLegalMoves(gm.White) - b.CountLegalMoves(gm.Black)) * MobilityWeight

	if b.InCheck(gm.White) {
		e.Check -= CheckPenalty
	}
	if b.InCheck(gm.Black) {
		e.Check += CheckPenalty
	}
	return e
}
