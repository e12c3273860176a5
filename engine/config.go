package engine

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("engine: invalid config")

const (
	minTTBits = 1
	maxTTBits = 28

	// Root workers each own a private table; theirs is capped at this size.
	maxWorkerTTBits = 18
)

type Config struct {
	// TTBits is the transposition table size as a power of two.
	TTBits int
	// Workers above 1 split the root moves across goroutines.
	Workers int
	// BookFullmoves is the last fullmove number at which the opening book
	// is consulted. Zero disables the book.
	BookFullmoves int
}

func DefaultConfig() Config {
	return Config{
		TTBits:        20,
		Workers:       1,
		BookFullmoves: 3,
	}
}

func (c Config) Validate() error {
	if c.TTBits < minTTBits || c.TTBits > maxTTBits {
		return fmt.Errorf("%w: tt bits %d outside [%d, %d]", ErrInvalidConfig, c.TTBits, minTTBits, maxTTBits)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d, need at least 1", ErrInvalidConfig, c.Workers)
	}
	if c.BookFullmoves < 0 {
		return fmt.Errorf("%w: negative book horizon %d", ErrInvalidConfig, c.BookFullmoves)
	}
	return nil
}
