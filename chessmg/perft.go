package chessmg

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// promotionKinds is the fan-out perft uses for a pawn reaching its last rank.
var promotionKinds = [...]PieceKind{Queen, Rook, Bishop, Knight}

// Perft counts leaf nodes of the legal move tree to the given depth, with
// every promotion counted once per promotion piece.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{}
	return perftRec(b, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	for len(pc.bufs) <= depth {
		pc.bufs = append(pc.bufs, make([]Move, 0, 64))
	}
	return pc.bufs[depth][:0]
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	moves := b.AppendLegalMoves(pc.bufFor(depth), b.sideToMove)
	pc.bufs[depth] = moves
	var nodes uint64
	for _, m := range moves {
		if !b.IsPromotion(m) {
			if depth == 1 {
				nodes++
				continue
			}
			child := b.After(m, NoKind)
			nodes += perftRec(&child, depth-1, pc)
			continue
		}
		for _, k := range promotionKinds {
			if depth == 1 {
				nodes++
				continue
			}
			child := b.After(m, k)
			nodes += perftRec(&child, depth-1, pc)
		}
	}
	return nodes
}

// DivideEntry is one root move of a perft divide. Promotion is set for
// promotion moves, which appear once per piece.
type DivideEntry struct {
	Move      Move
	Promotion PieceKind
}

func (e DivideEntry) String() string {
	if e.Promotion == NoKind {
		return e.Move.String()
	}
	return e.Move.String() + string(NewPiece(Black, e.Promotion).Letter())
}

func rootEntries(b *Board) []DivideEntry {
	var out []DivideEntry
	for _, m := range b.LegalMoves(b.sideToMove) {
		if !b.IsPromotion(m) {
			out = append(out, DivideEntry{Move: m})
			continue
		}
		for _, k := range promotionKinds {
			out = append(out, DivideEntry{Move: m, Promotion: k})
		}
	}
	return out
}

// PerftDivide reports the perft count below each root move.
func PerftDivide(b *Board, depth int) map[DivideEntry]uint64 {
	out := make(map[DivideEntry]uint64)
	if depth <= 0 {
		return out
	}
	for _, e := range rootEntries(b) {
		child := b.After(e.Move, e.Promotion)
		out[e] = Perft(&child, depth-1)
	}
	return out
}

// PerftDivideParallel is PerftDivide with root moves spread over at most
// workers goroutines. Each goroutine works on its own copy of the board.
func PerftDivideParallel(ctx context.Context, b *Board, depth, workers int) (map[DivideEntry]uint64, error) {
	out := make(map[DivideEntry]uint64)
	if depth <= 0 {
		return out, nil
	}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	root := *b
	for _, e := range rootEntries(&root) {
		e := e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child := root.After(e.Move, e.Promotion)
			n := Perft(&child, depth-1)
			mu.Lock()
			out[e] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
