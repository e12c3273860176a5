package chessmg

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// ParseBoard parses a FEN string into a Board. The halfmove and fullmove
// fields are optional and default to 0 and 1.
func ParseBoard(fen string) (Board, error) {
	var b Board
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return b, fenError("not enough fields")
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return b, fenError("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, ok := pieceFromLetter(ch)
			if !ok {
				return b, fenError("unrecognized piece %q", ch)
			}
			if file >= 8 {
				return b, fenError("rank %d has too many squares", rank+1)
			}
			b.setPiece(NewSquare(file, rank), p)
			file++
		}
		if file != 8 {
			return b, fenError("rank %d does not have 8 files", rank+1)
		}
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return b, fenError("side to move must be 'w' or 'b'")
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				b.castlingRights |= CastlingWhiteK
			case 'Q':
				b.castlingRights |= CastlingWhiteQ
			case 'k':
				b.castlingRights |= CastlingBlackK
			case 'q':
				b.castlingRights |= CastlingBlackQ
			default:
				return b, fenError("invalid castling character %q", ch)
			}
		}
	}

	b.enPassantSquare = NoSquare
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return b, fenError("en passant square %q", fields[3])
		}
		b.enPassantSquare = sq
	}

	b.fullmoveNumber = 1
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return b, fenError("halfmove clock %q", fields[4])
		}
		b.halfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return b, fenError("fullmove number %q", fields[5])
		}
		b.fullmoveNumber = n
	}

	for _, c := range []Color{White, Black} {
		if n := b.CountPieces(c, King); n != 1 {
			return b, fenError("%s has %d kings", c, n)
		}
	}
	return b, nil
}

// FEN renders b in Forsyth-Edwards notation.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[NewSquare(file, rank)]
			if p.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	side := "w"
	if b.sideToMove == Black {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s %s %s %d %d", side, b.castlingRights, b.enPassantSquare, b.halfmoveClock, b.fullmoveNumber)
	return sb.String()
}
