package chessmg

import "fmt"

// Position is a game in progress: the current board, the repetition log and
// the undo stack. The zero value is not usable; start from InitialPosition
// or ParseFEN.
type Position struct {
	Board

	origin  Board // the board the game started from
	history []Key // every reached position, the starting one included
	records []MoveRecord
	pending *Move // pawn move waiting for a promotion choice
}

// ApplyResult reports the outcome of ApplyMove.
type ApplyResult struct {
	Record MoveRecord
	// NeedsPromotion is set when a pawn reaches its last rank without a
	// promotion choice. The position is left untouched until
	// CompletePromotion or CancelPromotion.
	NeedsPromotion bool
}

// Reason explains why a game ended.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonCheckmate
	ReasonStalemate
	ReasonFiftyMove
	ReasonThreefoldRepetition
)

var reasonNames = [...]string{"none", "checkmate", "stalemate", "fifty-move rule", "threefold repetition"}

func (r Reason) String() string { return reasonNames[r] }

// Outcome is the game-over status of a position.
type Outcome struct {
	Reason Reason
	Winner Color // meaningful only for checkmate
}

// Over reports whether the game has ended.
func (o Outcome) Over() bool { return o.Reason != ReasonNone }

// Decisive reports whether the game ended with a winner.
func (o Outcome) Decisive() bool { return o.Reason == ReasonCheckmate }

func (o Outcome) String() string {
	if o.Decisive() {
		return fmt.Sprintf("%s wins by %s", o.Winner, o.Reason)
	}
	if o.Over() {
		return "draw by " + o.Reason.String()
	}
	return "in progress"
}

// InitialPosition returns the standard starting position.
func InitialPosition() *Position {
	return NewPosition(StartBoard())
}

// NewPosition starts a game from b.
func NewPosition(b Board) *Position {
	return &Position{Board: b, origin: b, history: []Key{b.Key()}}
}

// Origin returns the board the game started from.
func (p *Position) Origin() Board { return p.origin }

// FromStart reports whether the game began at the standard initial position.
func (p *Position) FromStart() bool { return p.origin == StartBoard() }

// ParseFEN starts a game from a FEN string.
func ParseFEN(fen string) (*Position, error) {
	b, err := ParseBoard(fen)
	if err != nil {
		return nil, err
	}
	return NewPosition(b), nil
}

// Clone returns a deep copy of p.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append([]Key(nil), p.history...)
	c.records = append([]MoveRecord(nil), p.records...)
	if p.pending != nil {
		m := *p.pending
		c.pending = &m
	}
	return &c
}

// Records returns the applied moves, oldest first.
func (p *Position) Records() []MoveRecord { return p.records }

// Moves returns the applied moves as coordinates, oldest first.
func (p *Position) Moves() []Move {
	out := make([]Move, len(p.records))
	for i := range p.records {
		out[i] = p.records[i].Move
	}
	return out
}

// Pending returns the pawn move awaiting a promotion choice, if any.
func (p *Position) Pending() (Move, bool) {
	if p.pending == nil {
		return NullMove, false
	}
	return *p.pending, true
}

// ApplyMove plays from->to for the side on move. promo selects the
// promotion piece and must be NoKind for any other move. Invalid requests
// return an error and leave p unchanged.
func (p *Position) ApplyMove(from, to Square, promo PieceKind) (ApplyResult, error) {
	if p.pending != nil {
		return ApplyResult{}, fmt.Errorf("apply %s%s: %w", from, to, ErrPromotionPending)
	}
	if !from.Valid() || !to.Valid() {
		return ApplyResult{}, fmt.Errorf("apply %d->%d: %w", from, to, ErrInvalidSquare)
	}
	piece := p.PieceAt(from)
	switch {
	case piece.IsNone():
		return ApplyResult{}, fmt.Errorf("apply %s%s: %w", from, to, ErrNoPiece)
	case piece.Color != p.SideToMove():
		return ApplyResult{}, fmt.Errorf("apply %s%s: %w", from, to, ErrWrongSide)
	case !p.IsLegal(from, to):
		return ApplyResult{}, fmt.Errorf("apply %s%s: %w", from, to, ErrIllegalMove)
	}

	m := NewMove(from, to)
	if !p.IsPromotion(m) {
		if promo != NoKind {
			return ApplyResult{}, fmt.Errorf("apply %s with %s: %w", m, promo, ErrInvalidPromotion)
		}
		return ApplyResult{Record: p.commit(m, NoKind)}, nil
	}
	if promo == NoKind {
		p.pending = &m
		return ApplyResult{NeedsPromotion: true}, nil
	}
	if !promo.IsPromotion() {
		return ApplyResult{}, fmt.Errorf("apply %s with %s: %w", m, promo, ErrInvalidPromotion)
	}
	return ApplyResult{Record: p.commit(m, promo)}, nil
}

// CompletePromotion finishes the pending pawn move with the chosen piece.
func (p *Position) CompletePromotion(kind PieceKind) (MoveRecord, error) {
	if p.pending == nil {
		return MoveRecord{}, ErrNoPendingPromotion
	}
	if !kind.IsPromotion() {
		return MoveRecord{}, fmt.Errorf("promote to %s: %w", kind, ErrInvalidPromotion)
	}
	m := *p.pending
	p.pending = nil
	return p.commit(m, kind), nil
}

// CancelPromotion drops the pending pawn move.
func (p *Position) CancelPromotion() error {
	if p.pending == nil {
		return ErrNoPendingPromotion
	}
	p.pending = nil
	return nil
}

func (p *Position) commit(m Move, promo PieceKind) MoveRecord {
	rec := p.play(m.From(), m.To(), promo)
	p.records = append(p.records, rec)
	p.history = append(p.history, p.Key())
	return rec
}

// Undo takes back the last applied move.
func (p *Position) Undo() (MoveRecord, error) {
	if p.pending != nil {
		return MoveRecord{}, ErrPromotionPending
	}
	n := len(p.records)
	if n == 0 {
		return MoveRecord{}, ErrNothingToUndo
	}
	rec := p.records[n-1]
	p.records = p.records[:n-1]
	p.history = p.history[:len(p.history)-1]
	p.Board = rec.before
	return rec, nil
}

// RepetitionCount reports how many times the current position has been
// reached, this occurrence included.
func (p *Position) RepetitionCount() int {
	current := p.Key()
	n := 0
	for i := range p.history {
		if p.history[i] == current {
			n++
		}
	}
	return n
}

// IsGameOver reports whether the game has ended and why. Checkmate takes
// precedence over the draw rules.
func (p *Position) IsGameOver() Outcome {
	side := p.SideToMove()
	if !p.HasLegalMoves(side) {
		if p.InCheck(side) {
			return Outcome{Reason: ReasonCheckmate, Winner: side.Other()}
		}
		return Outcome{Reason: ReasonStalemate}
	}
	if p.HalfmoveClock() >= 100 {
		return Outcome{Reason: ReasonFiftyMove}
	}
	if p.RepetitionCount() >= 3 {
		return Outcome{Reason: ReasonThreefoldRepetition}
	}
	return Outcome{}
}
