package chessmg

import (
	"fmt"
	"math/bits"
	"strings"
)

// CastlingRights holds the four castling flags. A flag is only ever cleared.
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ

	CastlingAll = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

// Has reports whether every flag in f is granted.
func (cr CastlingRights) Has(f CastlingRights) bool { return cr&f == f }

func (cr CastlingRights) String() string {
	if cr == 0 {
		return "-"
	}
	var sb strings.Builder
	for i, ch := range "KQkq" {
		if cr&(1<<uint(i)) != 0 {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// Board is the part of a position that move generation reads and move
// application writes. It is a plain value: copying a Board yields an
// independent board, which is how trial moves and worker copies are made.
type Board struct {
	squares         [64]Piece
	occupancy       [2]uint64 // per color
	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	fullmoveNumber  int
}

// Key is the canonical identity of a position under the repetition rule.
// Move counters are deliberately absent.
type Key struct {
	squares   [64]Piece
	side      Color
	castling  CastlingRights
	enPassant Square
}

// Key returns the repetition key of b.
func (b *Board) Key() Key {
	return Key{
		squares:   b.squares,
		side:      b.sideToMove,
		castling:  b.castlingRights,
		enPassant: b.enPassantSquare,
	}
}

// StartBoard returns the standard initial arrangement.
func StartBoard() Board {
	var b Board
	back := [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		b.setPiece(NewSquare(file, 0), NewPiece(White, back[file]))
		b.setPiece(NewSquare(file, 1), NewPiece(White, Pawn))
		b.setPiece(NewSquare(file, 6), NewPiece(Black, Pawn))
		b.setPiece(NewSquare(file, 7), NewPiece(Black, back[file]))
	}
	b.sideToMove = White
	b.castlingRights = CastlingAll
	b.enPassantSquare = NoSquare
	b.fullmoveNumber = 1
	return b
}

// Accessors
func (b *Board) PieceAt(sq Square) Piece { return b.squares[sq] }
func (b *Board) SideToMove() Color { return b.sideToMove }
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }
func (b *Board) Occupancy(c Color) uint64 { return b.occupancy[c] }
func (b *Board) AllOccupancy() uint64 { return b.occupancy[White] | b.occupancy[Black] }
func (b *Board) IsEmpty(sq Square) bool { return b.squares[sq].IsNone() }
func (b *Board) CanCastle(f CastlingRights) bool { return b.castlingRights.Has(f) }
func (b *Board) ownedBy(sq Square, c Color) bool { return b.occupancy[c]&bb(sq) != 0 }
func (b *Board) enemyOf(sq Square, c Color) bool { return b.occupancy[c.Other()]&bb(sq) != 0 }
func (b *Board) isPiece(sq Square, c Color, k PieceKind) bool { return b.squares[sq].Is(c, k) }

// SetSideToMove overrides the side on move. Callers that probe the other
// side are expected to restore the previous value.
func (b *Board) SetSideToMove(c Color) { b.sideToMove = c }

// KingSquare locates the king of c by scanning that side's pieces. A missing
// king means the board was corrupted and is reported by panicking.
func (b *Board) KingSquare(c Color) Square {
	for occ := b.occupancy[c]; occ != 0; {
		if sq := popLSB(&occ); b.squares[sq].Kind == King {
			return sq
		}
	}
	panic(fmt.Sprintf("chessmg: no %s king on board", c))
}

func (b *Board) setPiece(sq Square, p Piece) {
	b.clearSquare(sq)
	if p.IsNone() {
		return
	}
	b.squares[sq] = p
	b.occupancy[p.Color] |= bb(sq)
}

func (b *Board) clearSquare(sq Square) Piece {
	p := b.squares[sq]
	if !p.IsNone() {
		b.occupancy[p.Color] &^= bb(sq)
		b.squares[sq] = NoPiece
	}
	return p
}

// CountPieces reports how many pieces of kind k side c has.
func (b *Board) CountPieces(c Color, k PieceKind) int {
	n := 0
	for occ := b.occupancy[c]; occ != 0; {
		if b.squares[popLSB(&occ)].Kind == k {
			n++
		}
	}
	return n
}

// String renders the board as eight ranks of FEN letters, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sb.WriteByte(b.squares[NewSquare(file, rank)].Letter())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Validate cross-checks the mailbox against the occupancy masks and the
// king count. It is meant for tests and debugging.
func (b *Board) Validate() error {
	var occ [2]uint64
	kings := [2]int{}
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if p.IsNone() {
			continue
		}
		occ[p.Color] |= bb(sq)
		if p.Kind == King {
			kings[p.Color]++
		}
	}
	if occ != b.occupancy {
		return fmt.Errorf("occupancy mismatch")
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("king count white=%d black=%d", kings[White], kings[Black])
	}
	if b.enPassantSquare != NoSquare && !b.enPassantSquare.Valid() {
		return fmt.Errorf("en passant square %d out of range", b.enPassantSquare)
	}
	return nil
}

func bb(sq Square) uint64 { return 1 << uint(sq) }

func popCount(mask uint64) int { return bits.OnesCount64(mask) }

func popLSB(mask *uint64) Square {
	sq := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(sq)
}
