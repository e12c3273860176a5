package engine

import (
	"strings"
	"testing"

	gm "minimax-chess/chessmg"
)

// mirrorFEN flips the board vertically and swaps the colours.
func mirrorFEN(fen string) string {
	f := strings.Fields(fen)
	ranks := strings.Split(f[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	f[0] = swapCase(strings.Join(ranks, "/"))
	if f[1] == "w" {
		f[1] = "b"
	} else {
		f[1] = "w"
	}
	if f[2] != "-" {
		f[2] = swapCase(f[2])
		// Keep the canonical KQkq order.
		var upper, lower strings.Builder
		for _, r := range f[2] {
			if r >= 'A' && r <= 'Z' {
				upper.WriteRune(r)
			} else {
				lower.WriteRune(r)
			}
		}
		f[2] = upper.String() + lower.String()
	}
	if f[3] != "-" {
		f[3] = f[3][:1] + string(rune('1'+('8'-f[3][1])))
	}
	return strings.Join(f, " ")
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}
		return r
	}, s)
}

func TestEvaluateStartIsBalanced(t *testing.T) {
	b := gm.StartBoard()
	if got := Evaluate(&b); got != 0 {
		t.Fatalf("start position: got %d want 0", got)
	}
}

func TestEvaluateMirrorNegates(t *testing.T) {
	for _, fen := range []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp2ppp/8/3pp3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq d6 0 3",
		"4k3/8/8/8/8/8/4q3/4K3 w - - 0 1",
	} {
		b := mustBoard(t, fen)
		m := mustBoard(t, mirrorFEN(fen))
		if got, want := Evaluate(&m), -Evaluate(&b); got != want {
			t.Fatalf("%s: mirrored eval got %d want %d", fen, got, want)
		}
	}
}

func TestEvaluateMaterial(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	if got := EvaluateTerms(&b).Material; got != PieceValue[gm.Queen] {
		t.Fatalf("material: got %d want %d", got, PieceValue[gm.Queen])
	}
}

func TestEvaluatePieceSquareMirroring(t *testing.T) {
	e4, _ := gm.ParseSquare("e4")
	e5, _ := gm.ParseSquare("e5")
	if got := pstBonus(gm.NewPiece(gm.White, gm.Pawn), e4); got != 20 {
		t.Fatalf("white pawn e4: got %d want 20", got)
	}
	if got := pstBonus(gm.NewPiece(gm.Black, gm.Pawn), e5); got != 20 {
		t.Fatalf("black pawn e5: got %d want 20", got)
	}
	if got := pstBonus(gm.NewPiece(gm.White, gm.King), gm.G1); got != 30 {
		t.Fatalf("white king g1: got %d want 30", got)
	}
	if got := pstBonus(gm.NewPiece(gm.Black, gm.King), gm.G8); got != 30 {
		t.Fatalf("black king g8: got %d want 30", got)
	}
}

func TestEvaluateCheckPenalty(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/4q3/4K3 w - - 0 1")
	if got := EvaluateTerms(&b).Check; got != -CheckPenalty {
		t.Fatalf("check term: got %d want %d", got, -CheckPenalty)
	}
	quiet := gm.StartBoard()
	if got := EvaluateTerms(&quiet).Check; got != 0 {
		t.Fatalf("check term without check: got %d want 0", got)
	}
}

func TestEvaluateMobility(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	want := (b.CountLegalMoves(gm.White) - b.CountLegalMoves(gm.Black)) * MobilityWeight
	if got := EvaluateTerms(&b).Mobility; got != want {
		t.Fatalf("mobility: got %d want %d", got, want)
	}
	if want <= 0 {
		t.Fatalf("queen side should be more mobile, got %d", want)
	}
}

func TestEvaluateLeavesBoardAlone(t *testing.T) {
	b := mustBoard(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1")
	before := b
	Evaluate(&b)
	if b != before {
		t.Fatalf("Evaluate changed the board")
	}
}
