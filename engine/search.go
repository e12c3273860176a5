package engine

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	gm "minimax-chess/chessmg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	Infinity  = 1 << 30
	MateScore = 10000
	DrawScore = 0
)

// Result is a search score, from white's point of view, and the move that
// reaches it. Move is gm.NullMove at leaves and terminal nodes.
type Result struct {
	Score int
	Move  gm.Move
}

// Searcher runs fixed-depth minimax with alpha-beta pruning over a
// transposition table it owns. A Searcher is used by one goroutine at a time.
type Searcher struct {
	cfg    Config
	tt     *TransTable
	stats  CutStatistics
	logger zerolog.Logger
}

func NewSearcher(cfg Config, logger zerolog.Logger) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Searcher{
		cfg:    cfg,
		tt:     NewTransTable(cfg.TTBits),
		logger: logger,
	}, nil
}

func (s *Searcher) Config() Config { return s.cfg }

func (s *Searcher) Table() *TransTable { return s.tt }

// Stats returns the counters of the most recent BestMove call, or the running
// totals of direct Search calls since the last reset.
func (s *Searcher) Stats() CutStatistics { return s.stats }

// ResetStats zeroes the counters. BestMove calls it before each search;
// direct Search callers call it to start a fresh tally.
func (s *Searcher) ResetStats() { s.stats = CutStatistics{} }

// NewGame empties the transposition table. Entries survive between moves of
// one game.
func (s *Searcher) NewGame() {
	s.tt.Clear()
	s.ResetStats()
}

// Search scores b to depth plies with side to move. maximizing selects the
// white point of view (higher is better) or the black one. b is mutated while
// the search runs and holds its original value again on return.
func (s *Searcher) Search(b *gm.Board, depth int, side gm.Color, alpha, beta int, maximizing bool) Result {
	prev := b.SideToMove()
	b.SetSideToMove(side)
	defer b.SetSideToMove(prev)
	return s.search(b, depth, alpha, beta, maximizing)
}

func (s *Searcher) search(b *gm.Board, depth int, alpha, beta int, maximizing bool) Result {
	s.stats.Nodes++
	hash := b.Hash()

	s.stats.TTProbes++
	ttMove, ttScore, usable := s.tt.Probe(hash, depth, alpha, beta)
	if ttMove != gm.NullMove {
		s.stats.TTHits++
	}
	if usable {
		s.stats.TTCutoffs++
		return Result{Score: ttScore, Move: ttMove}
	}

	if depth <= 0 {
		return Result{Score: Evaluate(b)}
	}

	side := b.SideToMove()
	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		if !b.InCheck(side) {
			return Result{Score: DrawScore}
		}
		if maximizing {
			return Result{Score: -MateScore}
		}
		return Result{Score: MateScore}
	}
	moves = OrderMoves(b, moves, ttMove)

	alphaOrig, betaOrig := alpha, beta
	best := Result{Score: Infinity, Move: moves[0]}
	if maximizing {
		best.Score = -Infinity
	}

	for _, m := range moves {
		score := s.child(b, m, depth, alpha, beta, maximizing)
		if maximizing {
			if score > best.Score {
				best = Result{Score: score, Move: m}
			}
			alpha = Max(alpha, score)
		} else {
			if score < best.Score {
				best = Result{Score: score, Move: m}
			}
			beta = Min(beta, score)
		}
		if beta <= alpha {
			s.stats.BetaCutoffs++
			break
		}
	}

	bound := ExactBound
	if best.Score <= alphaOrig {
		bound = UpperBound
	} else if best.Score >= betaOrig {
		bound = LowerBound
	}
	s.tt.Store(hash, depth, best.Score, bound, best.Move)
	return best
}

// child plays m on b, searches the reply one ply shallower and restores b
// before returning.
func (s *Searcher) child(b *gm.Board, m gm.Move, depth, alpha, beta int, maximizing bool) int {
	restore := b.Trial(m)
	defer restore()
	return s.search(b, depth-1, alpha, beta, !maximizing).Score
}

// BestMove searches b for its side to move. ok is false only when that side
// has no legal move. Depths below 1 search one ply.
func (s *Searcher) BestMove(b gm.Board, depth int) (r Result, ok bool) {
	side := b.SideToMove()
	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		return Result{}, false
	}
	depth = Max(depth, 1)

	start := time.Now()
	s.ResetStats()
	r = s.Search(&b, depth, side, -Infinity, Infinity, side == gm.White)
	// A slot collision can hand back a move from another position.
	if !slices.Contains(moves, r.Move) {
		r.Move = OrderMoves(&b, moves, gm.NullMove)[0]
	}

	s.logger.Debug().
		Int("depth", depth).
		Int("score", r.Score).
		Stringer("move", r.Move).
		Object("stats", s.stats).
		Dur("elapsed", time.Since(start)).
		Msg("best-move")
	return r, true
}
