package bench

import (
	"testing"

	gm "minimax-chess/chessmg"
)

const (
	kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos6FEN     = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
)

func mustBoard(b *testing.B, fen string) gm.Board {
	board, err := gm.ParseBoard(fen)
	if err != nil {
		b.Fatalf("ParseBoard: %v", err)
	}
	return board
}

func benchLegalMoves(b *testing.B, fen string) {
	board := mustBoard(b, fen)
	buf := make([]gm.Move, 0, 256)
	side := board.SideToMove()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = board.AppendLegalMoves(buf[:0], side)
	}
}

func BenchmarkLegalMoves_Initial(b *testing.B) {
	benchLegalMoves(b, gm.FENStartPos)
}

func BenchmarkLegalMoves_Kiwipete(b *testing.B) {
	benchLegalMoves(b, kiwipeteFEN)
}

func BenchmarkLegalMoves_Pos6(b *testing.B) {
	benchLegalMoves(b, pos6FEN)
}

func BenchmarkInCheck_Kiwipete(b *testing.B) {
	board := mustBoard(b, kiwipeteFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.InCheck(gm.White)
	}
}

func BenchmarkHash_Kiwipete(b *testing.B) {
	board := mustBoard(b, kiwipeteFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.Hash()
	}
}

func BenchmarkTrial_Kiwipete(b *testing.B) {
	board := mustBoard(b, kiwipeteFEN)
	moves := board.LegalMoves(gm.White)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		restore := board.Trial(moves[i%len(moves)])
		restore()
	}
}
