package chessmg

import "fmt"

// Color identifies a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind is the colorless type of a piece. NoKind marks an empty square.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k PieceKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("PieceKind(%d)", uint8(k))
}

// IsPromotion reports whether k is a legal promotion choice.
func (k PieceKind) IsPromotion() bool {
	return k == Knight || k == Bishop || k == Rook || k == Queen
}

// ParsePromotion maps a promotion letter (q, r, b, n in either case) to its kind.
func ParsePromotion(ch byte) (PieceKind, bool) {
	switch ch {
	case 'q', 'Q':
		return Queen, true
	case 'r', 'R':
		return Rook, true
	case 'b', 'B':
		return Bishop, true
	case 'n', 'N':
		return Knight, true
	}
	return NoKind, false
}

// Piece is a kind tagged with its owner. The zero value is an empty square.
type Piece struct {
	Kind  PieceKind
	Color Color
}

// NoPiece is the empty square.
var NoPiece = Piece{}

// NewPiece combines a side and a kind.
func NewPiece(c Color, k PieceKind) Piece { return Piece{Kind: k, Color: c} }

// IsNone reports whether the square holding p is empty.
func (p Piece) IsNone() bool { return p.Kind == NoKind }

// Is reports whether p is a piece of kind k owned by c.
func (p Piece) Is(c Color, k PieceKind) bool { return p.Kind == k && p.Color == c }

const fenLetters = " pnbrqk"

// Letter returns the FEN letter for p: uppercase for white, lowercase for black.
func (p Piece) Letter() byte {
	if p.IsNone() {
		return '.'
	}
	ch := fenLetters[p.Kind]
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string {
	if p.IsNone() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

func pieceFromLetter(ch rune) (Piece, bool) {
	switch ch {
	case 'P':
		return NewPiece(White, Pawn), true
	case 'N':
		return NewPiece(White, Knight), true
	case 'B':
		return NewPiece(White, Bishop), true
	case 'R':
		return NewPiece(White, Rook), true
	case 'Q':
		return NewPiece(White, Queen), true
	case 'K':
		return NewPiece(White, King), true
	case 'p':
		return NewPiece(Black, Pawn), true
	case 'n':
		return NewPiece(Black, Knight), true
	case 'b':
		return NewPiece(Black, Bishop), true
	case 'r':
		return NewPiece(Black, Rook), true
	case 'q':
		return NewPiece(Black, Queen), true
	case 'k':
		return NewPiece(Black, King), true
	}
	return NoPiece, false
}

// Square indexes the board from a1 = 0 to h8 = 63.
type Square int8

// NoSquare marks an absent square, such as a missing en passant target.
const NoSquare Square = -1

// Named squares used by castling.
const (
	A1 Square = 0
	B1 Square = 1
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	A8 Square = 56
	B8 Square = 57
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	F8 Square = 61
	G8 Square = 62
	H8 Square = 63
)

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

// Valid reports whether s lies on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare converts algebraic coordinates such as "e4".
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, fmt.Errorf("square %q: %w", text, ErrInvalidSquare)
	}
	file := int(text[0]) - 'a'
	rank := int(text[1]) - '1'
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("square %q: %w", text, ErrInvalidSquare)
	}
	return NewSquare(file, rank), nil
}
