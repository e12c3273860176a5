package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	gm "minimax-chess/chessmg"
)

// ParallelBestMove splits the root moves of b across Config.Workers
// goroutines. Every worker owns a board copy and a private table and scores
// its moves with a full window, so the returned score matches BestMove. Ties
// go to the earliest move in ordered sequence. The context is checked between
// root moves.
func (s *Searcher) ParallelBestMove(ctx context.Context, b gm.Board, depth int) (Result, bool, error) {
	side := b.SideToMove()
	moves := OrderMoves(&b, b.LegalMoves(side), gm.NullMove)
	if len(moves) == 0 {
		return Result{}, false, nil
	}
	depth = Max(depth, 1)
	maximizing := side == gm.White
	workers := Min(s.cfg.Workers, len(moves))

	start := time.Now()
	scores := make([]int, len(moves))
	next := make(chan int)
	var mu sync.Mutex
	var total CutStatistics

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(next)
		for i := range moves {
			select {
			case next <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			worker := &Searcher{
				cfg:    s.cfg,
				tt:     NewTransTable(Min(s.cfg.TTBits, maxWorkerTTBits)),
				logger: zerolog.Nop(),
			}
			for i := range next {
				if err := ctx.Err(); err != nil {
					return err
				}
				child := b.After(moves[i], gm.Queen)
				scores[i] = worker.search(&child, depth-1, -Infinity, Infinity, !maximizing).Score
			}
			mu.Lock()
			total.add(worker.stats)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, false, err
	}

	best := Result{Score: scores[0], Move: moves[0]}
	for i := 1; i < len(moves); i++ {
		if (maximizing && scores[i] > best.Score) || (!maximizing && scores[i] < best.Score) {
			best = Result{Score: scores[i], Move: moves[i]}
		}
	}
	s.stats = total

	s.logger.Debug().
		Int("depth", depth).
		Int("workers", workers).
		Int("score", best.Score).
		Stringer("move", best.Move).
		Object("stats", total).
		Dur("elapsed", time.Since(start)).
		Msg("parallel-best-move")
	return best, true, nil
}
