package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	gm "minimax-chess/chessmg"
	"minimax-chess/engine"
)

// Source tells where an engine move came from.
type Source uint8

const (
	FromBook Source = iota
	FromSearch
)

func (s Source) String() string {
	if s == FromBook {
		return "book"
	}
	return "search"
}

// EngineMove is a move the engine played.
type EngineMove struct {
	Record gm.MoveRecord
	Source Source
	Depth  int // zero for book moves
	Score  int // white's point of view; zero for book moves
}

// Status is a snapshot for a front end.
type Status struct {
	Side     gm.Color
	InCheck  bool
	Outcome  gm.Outcome
	Halfmove int
	Fullmove int
	FEN      string
	Eval     int
}

// Session is one game between a human and the engine, or between two engine
// levels. It is not safe for concurrent use.
type Session struct {
	cfg      Config
	pos      *gm.Position
	searcher *engine.Searcher
	book     *engine.OpeningBook
	logger   zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	searcher, err := engine.NewSearcher(cfg.Engine, logger)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:      cfg,
		pos:      gm.InitialPosition(),
		searcher: searcher,
		book:     engine.DefaultOpeningBook(),
		logger:   logger,
	}, nil
}

func (s *Session) Config() Config { return s.cfg }

// Board returns a copy of the current board.
func (s *Session) Board() gm.Board { return s.pos.Board }

func (s *Session) SideToMove() gm.Color { return s.pos.SideToMove() }

// Moves lists the moves played so far.
func (s *Session) Moves() []gm.Move { return s.pos.Moves() }

// Pending returns the pawn move awaiting a promotion choice.
func (s *Session) Pending() (gm.Move, bool) { return s.pos.Pending() }

// Outcome reports whether the game has ended.
func (s *Session) Outcome() gm.Outcome { return s.pos.IsGameOver() }

// NewGame restarts from the initial position and empties the engine table.
func (s *Session) NewGame() {
	s.reset(gm.InitialPosition())
}

// Load restarts from a FEN position.
func (s *Session) Load(fen string) error {
	p, err := gm.ParseFEN(fen)
	if err != nil {
		return err
	}
	s.reset(p)
	return nil
}

func (s *Session) reset(p *gm.Position) {
	s.pos = p
	s.searcher.NewGame()
	s.logger.Info().Str("fen", p.FEN()).Str("mode", s.cfg.Mode.String()).Msg("new-game")
}

func (s *Session) SetMode(m Mode) { s.cfg.Mode = m }

func (s *Session) SetHuman(c gm.Color) { s.cfg.Human = c }

func (s *Session) SetDifficulty(c gm.Color, d Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: difficulty %d", ErrInvalidConfig, d)
	}
	s.cfg.Difficulty[c] = d
	return nil
}

// IsEngineTurn reports whether the side to move is played by the engine.
func (s *Session) IsEngineTurn() bool {
	return s.cfg.Mode == Watch || s.pos.SideToMove() != s.cfg.Human
}

// Play applies a human move. A pawn reaching its last rank without promo
// leaves the move pending; finish it with Promote.
func (s *Session) Play(from, to gm.Square, promo gm.PieceKind) (gm.ApplyResult, error) {
	if s.pos.IsGameOver().Over() {
		return gm.ApplyResult{}, ErrGameOver
	}
	if s.IsEngineTurn() {
		return gm.ApplyResult{}, ErrNotHumanTurn
	}
	res, err := s.pos.ApplyMove(from, to, promo)
	if err != nil {
		return res, err
	}
	if res.NeedsPromotion {
		s.logger.Debug().Str("move", from.String()+to.String()).Msg("promotion-pending")
		return res, nil
	}
	s.played(res.Record, "human")
	return res, nil
}

// PlayText parses coordinate text such as "e2e4" or "e7e8n" and plays it.
func (s *Session) PlayText(text string) (gm.ApplyResult, error) {
	m, promo, err := gm.ParseMove(text)
	if err != nil {
		return gm.ApplyResult{}, err
	}
	return s.Play(m.From(), m.To(), promo)
}

// Promote completes the pending promotion.
func (s *Session) Promote(kind gm.PieceKind) (gm.MoveRecord, error) {
	rec, err := s.pos.CompletePromotion(kind)
	if err != nil {
		return rec, err
	}
	s.played(rec, "human")
	return rec, nil
}

func (s *Session) CancelPromotion() error { return s.pos.CancelPromotion() }

// engineDifficulty is the level used for the side to move, or for the
// engine's colour when the human is on move.
func (s *Session) engineDifficulty() Difficulty {
	if s.cfg.Mode == Watch {
		return s.cfg.Difficulty[s.pos.SideToMove()]
	}
	return s.cfg.Difficulty[s.cfg.Human.Other()]
}

func (s *Session) search(ctx context.Context, depth int) (engine.Result, bool, error) {
	if s.cfg.Engine.Workers > 1 {
		return s.searcher.ParallelBestMove(ctx, s.pos.Board, depth)
	}
	r, ok := s.searcher.BestMove(s.pos.Board, depth)
	return r, ok, nil
}

// EngineMove picks and plays the engine's reply: a book move while the
// opening book applies, a search at the configured depth otherwise.
// Engine promotions are always to a queen.
func (s *Session) EngineMove(ctx context.Context) (EngineMove, error) {
	if s.pos.IsGameOver().Over() {
		return EngineMove{}, ErrGameOver
	}
	if !s.IsEngineTurn() {
		return EngineMove{}, ErrNotEngineTurn
	}
	if _, ok := s.pos.Pending(); ok {
		return EngineMove{}, gm.ErrPromotionPending
	}

	em := EngineMove{Source: FromBook}
	m, ok := s.book.Lookup(s.pos, s.cfg.Engine.BookFullmoves)
	if !ok {
		em.Source = FromSearch
		em.Depth = s.engineDifficulty().Depth()
		r, found, err := s.search(ctx, em.Depth)
		if err != nil {
			return EngineMove{}, err
		}
		if !found {
			// IsGameOver already covered every position without a move.
			panic("game: no engine move in a live position")
		}
		m, em.Score = r.Move, r.Score
	}

	promo := gm.NoKind
	if s.pos.IsPromotion(m) {
		promo = gm.Queen
	}
	res, err := s.pos.ApplyMove(m.From(), m.To(), promo)
	if err != nil {
		return EngineMove{}, fmt.Errorf("engine move %s: %w", m, err)
	}
	em.Record = res.Record
	s.logger.Info().
		Stringer("source", em.Source).
		Int("depth", em.Depth).
		Int("score", em.Score).
		Msg("engine-reply")
	s.played(res.Record, "engine")
	return em, nil
}

// Hint suggests a move for the side to move without playing it.
func (s *Session) Hint(ctx context.Context) (gm.Move, bool, error) {
	if s.pos.IsGameOver().Over() {
		return gm.NullMove, false, ErrGameOver
	}
	depth := engine.Min(s.engineDifficulty().Depth(), maxHintDepth)
	r, ok, err := s.search(ctx, depth)
	if err != nil || !ok {
		return gm.NullMove, false, err
	}
	return r.Move, true, nil
}

// Undo takes back the last ply, or in HumanVsEngine mode every ply back to
// the human's previous turn. With a promotion pending only that choice is
// dropped.
func (s *Session) Undo() ([]gm.MoveRecord, error) {
	if _, ok := s.pos.Pending(); ok {
		s.logger.Debug().Msg("promotion-cancelled")
		return nil, s.pos.CancelPromotion()
	}
	rec, err := s.pos.Undo()
	if err != nil {
		return nil, err
	}
	undone := []gm.MoveRecord{rec}
	if s.cfg.Mode == HumanVsEngine && s.pos.SideToMove() != s.cfg.Human && len(s.pos.Records()) > 0 {
		rec, err = s.pos.Undo()
		if err != nil {
			return undone, err
		}
		undone = append(undone, rec)
	}
	s.logger.Info().Int("plies", len(undone)).Msg("undo")
	return undone, nil
}

func (s *Session) played(rec gm.MoveRecord, by string) {
	ev := s.logger.Info().Str("by", by).Stringer("move", rec.Move).Stringer("piece", rec.Piece)
	if !rec.Captured.IsNone() {
		ev = ev.Stringer("captured", rec.Captured)
	}
	ev.Msg("move")
	if o := s.pos.IsGameOver(); o.Over() {
		s.logger.Info().Stringer("outcome", o).Msg("game-over")
	}
}

// Captured lists the pieces taken by side c, oldest first.
func (s *Session) Captured(c gm.Color) []gm.Piece {
	taken := lo.Filter(s.pos.Records(), func(r gm.MoveRecord, _ int) bool {
		return r.Piece.Color == c && !r.Captured.IsNone()
	})
	return lo.Map(taken, func(r gm.MoveRecord, _ int) gm.Piece { return r.Captured })
}

// CapturedCounts tallies the pieces taken by side c per kind.
func (s *Session) CapturedCounts(c gm.Color) map[gm.PieceKind]int {
	taken := s.Captured(c)
	counts := make(map[gm.PieceKind]int)
	for _, k := range []gm.PieceKind{gm.Pawn, gm.Knight, gm.Bishop, gm.Rook, gm.Queen} {
		if n := lo.CountBy(taken, func(p gm.Piece) bool { return p.Kind == k }); n > 0 {
			counts[k] = n
		}
	}
	return counts
}

// LegalMovesFrom lists the legal moves of the piece on sq for the side to move.
func (s *Session) LegalMovesFrom(sq gm.Square) []gm.Move {
	return lo.Filter(s.pos.LegalMoves(s.pos.SideToMove()), func(m gm.Move, _ int) bool {
		return m.From() == sq
	})
}

func (s *Session) Status() Status {
	return Status{
		Side:     s.pos.SideToMove(),
		InCheck:  s.pos.InCheck(s.pos.SideToMove()),
		Outcome:  s.pos.IsGameOver(),
		Halfmove: s.pos.HalfmoveClock(),
		Fullmove: s.pos.FullmoveNumber(),
		FEN:      s.pos.FEN(),
		Eval:     engine.Evaluate(&s.pos.Board),
	}
}
