package bench

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	gm "minimax-chess/chessmg"
	"minimax-chess/engine"
)

func benchPerft(b *testing.B, fen string, depth int) {
	board := mustBoard(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gm.Perft(&board, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, gm.FENStartPos, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	benchPerft(b, kiwipeteFEN, 3)
}

func BenchmarkPerftDivideParallel_Initial_D4(b *testing.B) {
	board := mustBoard(b, gm.FENStartPos)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gm.PerftDivideParallel(context.Background(), &board, 4, 4); err != nil {
			b.Fatalf("divide: %v", err)
		}
	}
}

func BenchmarkEvaluate_Kiwipete(b *testing.B) {
	board := mustBoard(b, kiwipeteFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Evaluate(&board)
	}
}

func benchSearch(b *testing.B, fen string, depth, workers int) {
	board := mustBoard(b, fen)
	cfg := engine.DefaultConfig()
	cfg.TTBits = 16
	cfg.Workers = workers
	s, err := engine.NewSearcher(cfg, zerolog.Nop())
	if err != nil {
		b.Fatalf("NewSearcher: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.NewGame()
		if workers > 1 {
			if _, _, err := s.ParallelBestMove(context.Background(), board, depth); err != nil {
				b.Fatalf("search: %v", err)
			}
			continue
		}
		s.BestMove(board, depth)
	}
}

func BenchmarkSearch_Kiwipete_D2(b *testing.B) {
	benchSearch(b, kiwipeteFEN, 2, 1)
}

func BenchmarkSearch_Pos6_D3(b *testing.B) {
	benchSearch(b, pos6FEN, 3, 1)
}

func BenchmarkParallelSearch_Pos6_D3(b *testing.B) {
	benchSearch(b, pos6FEN, 3, 4)
}
