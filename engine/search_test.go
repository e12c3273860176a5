package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	gm "minimax-chess/chessmg"
)

func newTestSearcher(t testing.TB, cfg Config) *Searcher {
	t.Helper()
	s, err := NewSearcher(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new searcher: %v", err)
	}
	return s
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.TTBits = 16
	return cfg
}

// minimax is the unpruned reference search with the same leaf and
// terminal scoring.
func minimax(b *gm.Board, depth int, maximizing bool) int {
	if depth == 0 {
		return Evaluate(b)
	}
	side := b.SideToMove()
	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		if !b.InCheck(side) {
			return DrawScore
		}
		if maximizing {
			return -MateScore
		}
		return MateScore
	}
	best := Infinity
	if maximizing {
		best = -Infinity
	}
	for _, m := range moves {
		restore := b.Trial(m)
		score := minimax(b, depth-1, !maximizing)
		restore()
		if maximizing {
			best = Max(best, score)
		} else {
			best = Min(best, score)
		}
	}
	return best
}

var searchFENs = []struct {
	name  string
	fen   string
	depth int
}{
	{"start", gm.FENStartPos, 3},
	{"open game", "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", 2},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
	{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
	{"black to move", "4k3/8/8/3q4/4P3/8/8/4K3 b - - 0 1", 3},
}

func TestSearchMatchesMinimax(t *testing.T) {
	for _, tc := range searchFENs {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			maximizing := b.SideToMove() == gm.White
			want := minimax(&b, tc.depth, maximizing)

			s := newTestSearcher(t, smallConfig())
			got := s.Search(&b, tc.depth, b.SideToMove(), -Infinity, Infinity, maximizing)
			if got.Score != want {
				t.Fatalf("alpha-beta score: got %d want %d", got.Score, want)
			}
		})
	}
}

func TestSearchScoreStableWithWarmTable(t *testing.T) {
	for _, tc := range searchFENs {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			side := b.SideToMove()
			maximizing := side == gm.White

			cold := newTestSearcher(t, smallConfig())
			want := cold.Search(&b, tc.depth, side, -Infinity, Infinity, maximizing).Score

			warm := newTestSearcher(t, smallConfig())
			warm.Search(&b, tc.depth-1, side, -Infinity, Infinity, maximizing)
			if got := warm.Search(&b, tc.depth, side, -Infinity, Infinity, maximizing).Score; got != want {
				t.Fatalf("warm table score: got %d want %d", got, want)
			}
			if warm.Stats().TTHits == 0 {
				t.Fatalf("warm search never hit the table")
			}
		})
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	b := mustBoard(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := b
	s := newTestSearcher(t, smallConfig())
	s.Search(&b, 2, gm.Black, -Infinity, Infinity, false)
	if b != before {
		t.Fatalf("board changed by search:\n%s\nwant\n%s", b.String(), before.String())
	}
}

func TestSearchStatsAccumulateUntilReset(t *testing.T) {
	b := mustBoard(t, gm.FENStartPos)
	s := newTestSearcher(t, smallConfig())

	s.Search(&b, 2, gm.White, -Infinity, Infinity, true)
	first := s.Stats().Nodes
	s.Search(&b, 2, gm.White, -Infinity, Infinity, true)
	if got := s.Stats().Nodes; got <= first {
		t.Fatalf("nodes after second search: got %d want more than %d", got, first)
	}

	s.ResetStats()
	if got := s.Stats(); got != (CutStatistics{}) {
		t.Fatalf("stats after reset: got %+v", got)
	}
}

func TestBestMoveTakesHangingQueen(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	s := newTestSearcher(t, smallConfig())
	r, ok := s.BestMove(b, 1)
	if !ok {
		t.Fatalf("no move found")
	}
	if r.Move != mustMove(t, "e4d5") {
		t.Fatalf("best move: got %v want e4d5", r.Move)
	}
}

func TestBestMoveFindsMate(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		score int
	}{
		{"white mates", "7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1", MateScore},
		{"black mates", "6k1/8/2b5/8/8/6q1/6PP/7K b - - 0 1", -MateScore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			s := newTestSearcher(t, smallConfig())
			r, ok := s.BestMove(b, 2)
			if !ok {
				t.Fatalf("no move found")
			}
			if r.Score != tc.score {
				t.Fatalf("score: got %d want %d", r.Score, tc.score)
			}
			after := b.After(r.Move, gm.Queen)
			if !after.InCheckmate() {
				t.Fatalf("%v does not mate:\n%s", r.Move, after.String())
			}
		})
	}
}

func TestSearchTerminalScores(t *testing.T) {
	s := newTestSearcher(t, smallConfig())

	stalemate := mustBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if r := s.Search(&stalemate, 3, gm.Black, -Infinity, Infinity, false); r.Score != DrawScore {
		t.Fatalf("stalemate: got %d want %d", r.Score, DrawScore)
	}
	if _, ok := s.BestMove(stalemate, 3); ok {
		t.Fatalf("stalemated side got a best move")
	}

	mated := mustBoard(t, "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")
	if r := s.Search(&mated, 2, gm.Black, -Infinity, Infinity, false); r.Score != MateScore {
		t.Fatalf("black mated: got %d want %d", r.Score, MateScore)
	}
	if _, ok := s.BestMove(mated, 2); ok {
		t.Fatalf("mated side got a best move")
	}
}

func TestBestMoveStoresRoot(t *testing.T) {
	b := gm.StartBoard()
	s := newTestSearcher(t, smallConfig())
	r, _ := s.BestMove(b, 2)
	e, ok := s.Table().Entry(b.Hash())
	if !ok {
		t.Fatalf("root not stored")
	}
	if e.Move != r.Move || int(e.Depth) != 2 || e.Bound != ExactBound {
		t.Fatalf("root entry: got %+v want move %v depth 2 exact", e, r.Move)
	}
	if s.Stats().Nodes == 0 {
		t.Fatalf("no nodes counted")
	}

	s.NewGame()
	if s.Table().Used() != 0 {
		t.Fatalf("NewGame left %d entries", s.Table().Used())
	}
}

func TestParallelBestMoveMatchesSequential(t *testing.T) {
	cfg := smallConfig()
	cfg.Workers = 3
	for _, tc := range searchFENs {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			depth := Min(tc.depth, 2)

			seq, ok := newTestSearcher(t, smallConfig()).BestMove(b, depth)
			if !ok {
				t.Fatalf("sequential found no move")
			}
			par, ok, err := newTestSearcher(t, cfg).ParallelBestMove(context.Background(), b, depth)
			if err != nil || !ok {
				t.Fatalf("parallel: ok %v err %v", ok, err)
			}
			if par.Score != seq.Score {
				t.Fatalf("score: parallel %d sequential %d", par.Score, seq.Score)
			}
			if !b.IsLegal(par.Move.From(), par.Move.To()) {
				t.Fatalf("parallel move %v is illegal", par.Move)
			}
		})
	}
}

func TestParallelBestMoveCancelled(t *testing.T) {
	cfg := smallConfig()
	cfg.Workers = 2
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := newTestSearcher(t, cfg).ParallelBestMove(ctx, gm.StartBoard(), 3)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err: got %v want %v", err, context.Canceled)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
	bad := []Config{
		{TTBits: 0, Workers: 1},
		{TTBits: 40, Workers: 1},
		{TTBits: 10, Workers: 0},
		{TTBits: 10, Workers: 1, BookFullmoves: -1},
	}
	for _, cfg := range bad {
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%+v: got %v want ErrInvalidConfig", cfg, err)
		}
		if _, err := NewSearcher(cfg, zerolog.Nop()); err == nil {
			t.Fatalf("%+v: NewSearcher accepted invalid config", cfg)
		}
	}
}

func BenchmarkSearchStart(b *testing.B) {
	s := newTestSearcher(b, smallConfig())
	start := gm.StartBoard()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.NewGame()
		s.BestMove(start, 3)
	}
}
