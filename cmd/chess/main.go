package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	gm "minimax-chess/chessmg"
	"minimax-chess/engine"
	"minimax-chess/game"
	"minimax-chess/internal/cliutil"
)

const helpText = `commands:
  <move>              play a move in coordinate form, e.g. e2e4 or e7e8q
  promote <q|r|b|n>   finish a pending promotion
  go                  let the engine move
  auto <n>            let the engine play n plies
  hint                suggest a move
  undo                take back the last move (both plies against the engine)
  new                 start a new game
  fen <fen>           start from a FEN position
  mode <human|watch>  switch mode
  human <white|black> choose the human colour
  level <white|black> <beginner|easy|medium|hard>
  moves <square>      list legal moves from a square
  board | status | captured | help | quit`

func main() {
	cfg := game.DefaultConfig()
	defaultLevel := game.Medium
	if d, err := game.ParseDifficulty(strconv.Itoa(cliutil.EnvInt(cliutil.EnvDepth, game.Medium.Depth()))); err == nil {
		defaultLevel = d
	}

	level := flag.String("level", defaultLevel.String(), "engine difficulty for both colours")
	mode := flag.String("mode", cfg.Mode.String(), "human or watch")
	human := flag.String("human", "white", "human colour in human mode")
	ttBits := flag.Int("tt-bits", cliutil.EnvInt(cliutil.EnvTTBits, cfg.Engine.TTBits), "transposition table size as a power of two")
	workers := flag.Int("workers", cfg.Engine.Workers, "root search workers")
	book := flag.Int("book", cfg.Engine.BookFullmoves, "use the opening book up to this fullmove (0 = off)")
	auto := flag.Bool("auto", true, "reply automatically after each human move")
	fen := flag.String("fen", "", "start from this FEN")
	logLevel := flag.String("log-level", cliutil.EnvString(cliutil.EnvLogLevel, "warn"), "zerolog level")
	flag.Parse()

	logger, err := cliutil.NewLogger(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", *logLevel).Msg("bad log level")
	}
	log.Logger = logger

	d, err := game.ParseDifficulty(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("level")
	}
	if cfg.Mode, err = game.ParseMode(*mode); err != nil {
		log.Fatal().Err(err).Msg("mode")
	}
	if cfg.Human, err = parseColor(*human); err != nil {
		log.Fatal().Err(err).Msg("human")
	}
	cfg.Difficulty = [2]game.Difficulty{d, d}
	cfg.Engine.TTBits = *ttBits
	cfg.Engine.Workers = *workers
	cfg.Engine.BookFullmoves = *book

	s, err := game.New(cfg, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("new game")
	}
	if *fen != "" {
		if err := s.Load(*fen); err != nil {
			log.Fatal().Err(err).Msg("load fen")
		}
	}

	c := &console{s: s, out: os.Stdout, auto: *auto}
	if err := c.run(context.Background(), os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("console")
	}
}

func parseColor(text string) (gm.Color, error) {
	switch strings.ToLower(text) {
	case "white", "w":
		return gm.White, nil
	case "black", "b":
		return gm.Black, nil
	}
	return gm.White, fmt.Errorf("unknown colour %q", text)
}

type console struct {
	s    *game.Session
	out  io.Writer
	auto bool
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.status()
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		if quit := c.handle(ctx, tokens); quit {
			return nil
		}
	}
	return scanner.Err()
}

// handle runs one command line and reports whether the loop should stop.
func (c *console) handle(ctx context.Context, tokens []string) bool {
	arg := strings.Join(tokens[1:], " ")
	switch strings.ToLower(tokens[0]) {
	case "quit", "exit":
		return true
	case "help":
		c.printf("%s\n", helpText)
	case "new":
		c.s.NewGame()
		c.status()
	case "fen":
		if err := c.s.Load(arg); err != nil {
			c.printf("error: %v\n", err)
			return false
		}
		c.status()
	case "board":
		b := c.s.Board()
		c.printf("%s", b.String())
	case "status":
		c.status()
	case "captured":
		for _, side := range []gm.Color{gm.White, gm.Black} {
			c.printf("%s took: %v\n", side, c.s.CapturedCounts(side))
		}
	case "moves":
		sq, err := gm.ParseSquare(arg)
		if err != nil {
			c.printf("error: %v\n", err)
			return false
		}
		c.printf("%v\n", c.s.LegalMovesFrom(sq))
	case "mode":
		m, err := game.ParseMode(arg)
		if err != nil {
			c.printf("error: %v\n", err)
			return false
		}
		c.s.SetMode(m)
		c.printf("mode %s\n", m)
	case "human":
		side, err := parseColor(arg)
		if err != nil {
			c.printf("error: %v\n", err)
			return false
		}
		c.s.SetHuman(side)
		c.printf("human plays %s\n", side)
	case "level":
		if len(tokens) != 3 {
			c.printf("usage: level <white|black> <difficulty>\n")
			return false
		}
		side, err := parseColor(tokens[1])
		if err != nil {
			c.printf("error: %v\n", err)
			return false
		}
		d, err := game.ParseDifficulty(tokens[2])
		if err == nil {
			err = c.s.SetDifficulty(side, d)
		}
		if err != nil {
			c.printf("error: %v\n", err)
			return false
		}
		c.printf("%s level %s\n", side, d)
	case "go":
		c.engineMove(ctx)
	case "auto":
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			c.printf("usage: auto <plies>\n")
			return false
		}
		for i := 0; i < n && !c.s.Outcome().Over(); i++ {
			if !c.engineMove(ctx) {
				break
			}
		}
	case "hint":
		m, ok, err := c.s.Hint(ctx)
		switch {
		case err != nil:
			c.printf("error: %v\n", err)
		case !ok:
			c.printf("no legal move\n")
		default:
			c.printf("hint %s\n", m)
		}
	case "undo":
		undone, err := c.s.Undo()
		if err != nil {
			c.printf("error: %v\n", err)
			return false
		}
		c.printf("undid %d plies\n", len(undone))
		c.status()
	case "promote":
		kind, ok := gm.NoKind, false
		if len(arg) == 1 {
			kind, ok = gm.ParsePromotion(arg[0])
		}
		if !ok {
			c.printf("usage: promote <q|r|b|n>\n")
			return false
		}
		if _, err := c.s.Promote(kind); err != nil {
			c.printf("error: %v\n", err)
			return false
		}
		c.afterHumanMove(ctx)
	default:
		c.humanMove(ctx, tokens[0])
	}
	return false
}

func (c *console) humanMove(ctx context.Context, text string) {
	res, err := c.s.PlayText(text)
	if err != nil {
		c.printf("error: %v\n", err)
		return
	}
	if res.NeedsPromotion {
		m, _ := c.s.Pending()
		c.printf("promotion pending for %s: promote <q|r|b|n>\n", m)
		return
	}
	c.afterHumanMove(ctx)
}

func (c *console) afterHumanMove(ctx context.Context) {
	c.status()
	if c.auto && c.s.IsEngineTurn() && !c.s.Outcome().Over() {
		c.engineMove(ctx)
	}
}

func (c *console) engineMove(ctx context.Context) bool {
	em, err := c.s.EngineMove(ctx)
	if err != nil {
		if errors.Is(err, game.ErrGameOver) {
			c.printf("game over: %s\n", c.s.Outcome())
		} else {
			c.printf("error: %v\n", err)
		}
		return false
	}
	c.printf("engine plays %s (%s", em.Record.Move, em.Source)
	if em.Source == game.FromSearch {
		c.printf(", depth %d, score %d", em.Depth, em.Score)
		if engine.Abs(em.Score) == engine.MateScore {
			c.printf(", mate")
		}
	}
	c.printf(")\n")
	c.status()
	return true
}

func (c *console) status() {
	st := c.s.Status()
	c.printf("fen %s\n", st.FEN)
	line := fmt.Sprintf("%s to move, eval %d", st.Side, st.Eval)
	if st.InCheck {
		line += ", check"
	}
	if st.Outcome.Over() {
		line = "game over: " + st.Outcome.String()
	}
	c.printf("%s\n", line)
}
