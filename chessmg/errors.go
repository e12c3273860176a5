package chessmg

import "errors"

var (
	ErrInvalidSquare      = errors.New("invalid square")
	ErrInvalidMove        = errors.New("invalid move text")
	ErrNoPiece            = errors.New("no piece on square")
	ErrWrongSide          = errors.New("piece belongs to the side not on move")
	ErrIllegalMove        = errors.New("illegal move")
	ErrInvalidPromotion   = errors.New("invalid promotion")
	ErrPromotionPending   = errors.New("promotion choice pending")
	ErrNoPendingPromotion = errors.New("no promotion pending")
	ErrNothingToUndo      = errors.New("nothing to undo")
	ErrInvalidFEN         = errors.New("invalid FEN")
)
