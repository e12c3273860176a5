package engine

import (
	"sort"
	"testing"

	gm "minimax-chess/chessmg"
)

func mustBoard(t testing.TB, fen string) gm.Board {
	t.Helper()
	b, err := gm.ParseBoard(fen)
	if err != nil {
		t.Fatalf("parse FEN %q: %v", fen, err)
	}
	return b
}

func mustMove(t testing.TB, text string) gm.Move {
	t.Helper()
	m, _, err := gm.ParseMove(text)
	if err != nil {
		t.Fatalf("parse move %q: %v", text, err)
	}
	return m
}

func moveStrings(moves []gm.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

const captureFEN = "4k3/8/8/2q1r3/3P4/5N2/8/7K w - - 0 1"

func TestOrderMovesCapturesByMVVLVA(t *testing.T) {
	b := mustBoard(t, captureFEN)
	ordered := OrderMoves(&b, b.LegalMoves(gm.White), gm.NullMove)

	want := []string{"d4c5", "d4e5", "f3e5"}
	got := moveStrings(ordered[:3])
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("capture order: got %v want %v", got, want)
		}
	}
	for _, m := range ordered[3:] {
		if b.IsCapture(m) {
			t.Fatalf("capture %v ordered after quiet moves", m)
		}
	}
}

func TestOrderMovesTTMoveFirst(t *testing.T) {
	b := mustBoard(t, captureFEN)
	tt := mustMove(t, "h1g1")
	ordered := OrderMoves(&b, b.LegalMoves(gm.White), tt)
	if ordered[0] != tt {
		t.Fatalf("first move: got %v want %v", ordered[0], tt)
	}
	if ordered[1] != mustMove(t, "d4c5") {
		t.Fatalf("second move: got %v want d4c5", ordered[1])
	}
}

func TestOrderMovesIgnoresForeignTTMove(t *testing.T) {
	b := mustBoard(t, captureFEN)
	ordered := OrderMoves(&b, b.LegalMoves(gm.White), mustMove(t, "a2a4"))
	if ordered[0] != mustMove(t, "d4c5") {
		t.Fatalf("first move: got %v want d4c5", ordered[0])
	}
}

func TestOrderMovesKeepsQuietGeneratorOrder(t *testing.T) {
	b := gm.StartBoard()
	moves := b.LegalMoves(gm.White)
	want := moveStrings(moves)
	got := moveStrings(OrderMoves(&b, append([]gm.Move(nil), moves...), gm.NullMove))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("quiet order changed at %d: got %v want %v", i, got, want)
		}
	}
}

func TestOrderMovesIsPermutation(t *testing.T) {
	for _, fen := range []string{
		captureFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	} {
		b := mustBoard(t, fen)
		moves := b.LegalMoves(b.SideToMove())
		want := moveStrings(moves)
		got := moveStrings(OrderMoves(&b, append([]gm.Move(nil), moves...), moves[len(moves)-1]))
		sort.Strings(want)
		sort.Strings(got)
		if len(got) != len(want) {
			t.Fatalf("%s: length changed: got %d want %d", fen, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s: move sets differ: got %v want %v", fen, got, want)
			}
		}
	}
}
