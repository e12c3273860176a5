package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	gm "minimax-chess/chessmg"
	"minimax-chess/game"
)

func runConsole(t *testing.T, script string) (string, *game.Session) {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Engine.TTBits = 12
	cfg.Difficulty = [2]game.Difficulty{game.Beginner, game.Beginner}
	s, err := game.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	var out bytes.Buffer
	c := &console{s: s, out: &out, auto: true}
	if err := c.run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String(), s
}

func TestConsoleMoveReplyUndo(t *testing.T) {
	out, s := runConsole(t, "e2e4\nundo\nquit\ne2e4\n")
	if !strings.Contains(out, "engine plays") {
		t.Fatalf("no engine reply in output:\n%s", out)
	}
	if !strings.Contains(out, "undid 2 plies") {
		t.Fatalf("undo not reported:\n%s", out)
	}
	if len(s.Moves()) != 0 {
		t.Fatalf("moves after quit: got %v want none", s.Moves())
	}
}

func TestConsoleReportsErrors(t *testing.T) {
	out, _ := runConsole(t, "e2e5\nmoves z9\nlevel white impossible\npromote q\n")
	for _, want := range []string{"illegal move", "invalid square", "unknown difficulty", "no promotion pending"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestConsolePromotion(t *testing.T) {
	out, s := runConsole(t, "fen 8/P6k/8/8/8/8/8/K7 w - - 0 1\na7a8\npromote n\n")
	if !strings.Contains(out, "promotion pending for a7a8") {
		t.Fatalf("pending promotion not reported:\n%s", out)
	}
	rec := s.Moves()
	if len(rec) == 0 || rec[0].String() != "a7a8" {
		t.Fatalf("moves: got %v", rec)
	}
	b := s.Board()
	if b.PieceAt(gm.A8) != gm.NewPiece(gm.White, gm.Knight) {
		t.Fatalf("a8: got %v want white knight", b.PieceAt(gm.A8))
	}
}

func TestConsoleWatchAuto(t *testing.T) {
	_, s := runConsole(t, "mode watch\nauto 4\n")
	if n := len(s.Moves()); n != 4 {
		t.Fatalf("plies played: got %d want 4", n)
	}
}

func TestParseColor(t *testing.T) {
	if c, err := parseColor("B"); err != nil || c != gm.Black {
		t.Fatalf("B: got %v %v", c, err)
	}
	if _, err := parseColor("green"); err == nil {
		t.Fatalf("green accepted")
	}
}
