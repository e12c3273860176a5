package chessmg

import "math/rand"

// Zobrist keys for pieces, castling flags, en passant files and side to move.
// Keys are 32 bits wide.
var zobristPiece [2][7][64]uint32 // [color][kind][square]
var zobristCastle [4]uint32       // one per castling flag
var zobristEnPassant [8]uint32    // by file
var zobristSide uint32            // black to move

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so hashes, and with them table contents, repeat run to run.
	rnd := rand.New(rand.NewSource(0xC0DE))

	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][k][sq] = rnd.Uint32()
			}
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rnd.Uint32()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint32()
	}
	zobristSide = rnd.Uint32()
}

// Hash computes the Zobrist hash of b from scratch. The value fits in 32
// bits; it is returned widened for table indexing.
func (b *Board) Hash() uint64 {
	var key uint32
	for occ := b.AllOccupancy(); occ != 0; {
		sq := popLSB(&occ)
		p := b.squares[sq]
		key ^= zobristPiece[p.Color][p.Kind][sq]
	}
	if b.sideToMove == Black {
		key ^= zobristSide
	}
	for i := range zobristCastle {
		if b.castlingRights&(1<<uint(i)) != 0 {
			key ^= zobristCastle[i]
		}
	}
	if b.enPassantSquare != NoSquare {
		key ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	return uint64(key)
}
