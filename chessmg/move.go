package chessmg

import (
	"fmt"
	"strings"
)

// Move packs a from/to pair into 12 bits: from in bits 0-5, to in bits 6-11.
// The promotion piece is not part of a Move; search promotes to a queen and
// interactive play asks for a choice.
type Move uint16

// NullMove is the zero Move. a1a1 is never legal, so it doubles as "none".
const NullMove Move = 0

// NewMove packs a from/to pair.
func NewMove(from, to Square) Move {
	return Move(uint16(from) | uint16(to)<<6)
}

func (m Move) From() Square { return Square(m & 0x3F) }
func (m Move) To() Square   { return Square((m >> 6) & 0x3F) }

// String renders m in coordinate form, e.g. "e2e4". NullMove renders as "0000".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	return m.From().String() + m.To().String()
}

// ParseMove converts coordinate text such as "e2e4" or "e7e8q" into a move
// and an optional promotion kind.
func ParseMove(text string) (Move, PieceKind, error) {
	text = strings.TrimSpace(text)
	if len(text) != 4 && len(text) != 5 {
		return NullMove, NoKind, fmt.Errorf("move %q: %w", text, ErrInvalidMove)
	}
	from, err := ParseSquare(strings.ToLower(text[0:2]))
	if err != nil {
		return NullMove, NoKind, fmt.Errorf("move %q: %w", text, err)
	}
	to, err := ParseSquare(strings.ToLower(text[2:4]))
	if err != nil {
		return NullMove, NoKind, fmt.Errorf("move %q: %w", text, err)
	}
	promo := NoKind
	if len(text) == 5 {
		k, ok := ParsePromotion(text[4])
		if !ok {
			return NullMove, NoKind, fmt.Errorf("move %q: %w", text, ErrInvalidPromotion)
		}
		promo = k
	}
	return NewMove(from, to), promo, nil
}

// IsCapture reports whether m takes a piece on b, en passant included.
func (b *Board) IsCapture(m Move) bool {
	if b.enemyOf(m.To(), b.squares[m.From()].Color) && !b.IsEmpty(m.From()) {
		return true
	}
	return b.isEnPassant(m.From(), m.To())
}

// CapturedKind returns the kind m would capture, Pawn for en passant.
func (b *Board) CapturedKind(m Move) PieceKind {
	if b.isEnPassant(m.From(), m.To()) {
		return Pawn
	}
	mover := b.squares[m.From()]
	if target := b.squares[m.To()]; !target.IsNone() && target.Color != mover.Color {
		return target.Kind
	}
	return NoKind
}

// IsPromotion reports whether m moves a pawn onto its last rank.
func (b *Board) IsPromotion(m Move) bool {
	p := b.squares[m.From()]
	if p.Kind != Pawn {
		return false
	}
	return m.To().Rank() == lastRank(p.Color)
}

func (b *Board) isEnPassant(from, to Square) bool {
	p := b.squares[from]
	return p.Kind == Pawn && to == b.enPassantSquare && from.File() != to.File() && b.IsEmpty(to)
}

func lastRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}
