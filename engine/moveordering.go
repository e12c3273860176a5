package engine

import (
	"sort"

	"golang.org/x/exp/slices"

	gm "minimax-chess/chessmg"
)

// Relative piece values for MVV-LVA, indexed by kind.
var mvvLvaValue = [7]int{
	gm.Pawn:   1,
	gm.Knight: 3,
	gm.Bishop: 3,
	gm.Rook:   5,
	gm.Queen:  9,
	gm.King:   100,
}

// The TT move sits above every capture, captures above every quiet move.
const (
	ttMoveOffset  = 1 << 20
	captureOffset = 1 << 10
)

type scoredMove struct {
	move  gm.Move
	score int
}

// captureScore is victim*10 - attacker for a capture, ok=false otherwise.
func captureScore(b *gm.Board, m gm.Move) (score int, ok bool) {
	victim := b.CapturedKind(m)
	if victim == gm.NoKind {
		return 0, false
	}
	attacker := b.PieceAt(m.From()).Kind
	return mvvLvaValue[victim]*10 - mvvLvaValue[attacker], true
}

// OrderMoves sorts moves in place: the TT move first when present, then
// captures by descending MVV-LVA, then quiet moves in generator order. Equal
// scores keep generator order. The returned slice aliases moves.
func OrderMoves(b *gm.Board, moves []gm.Move, ttMove gm.Move) []gm.Move {
	scored := make([]scoredMove, len(moves))
	ttIndex := -1
	if ttMove != gm.NullMove {
		ttIndex = slices.Index(moves, ttMove)
	}
	for i, m := range moves {
		s := 0
		if cs, ok := captureScore(b, m); ok {
			s = captureOffset + cs
		}
		if i == ttIndex {
			s = ttMoveOffset
		}
		scored[i] = scoredMove{move: m, score: s}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	for i := range scored {
		moves[i] = scored[i].move
	}
	return moves
}
