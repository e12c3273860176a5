package engine

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"lukechampine.com/frand"

	gm "minimax-chess/chessmg"
)

// defaultBookLines maps a space separated sequence of played moves to the
// candidate replies. The empty key is the starting position.
var defaultBookLines = map[string][]string{
	"":     {"e2e4", "d2d4", "c2c4", "g1f3"},
	"e2e4": {"e7e5", "c7c5", "e7e6", "c7c6"},
	"d2d4": {"d7d5", "g8f6", "f7f5"},
}

// OpeningBook holds candidate replies keyed by the moves played so far.
type OpeningBook struct {
	lines map[string][]gm.Move
}

// NewOpeningBook parses lines in the format of defaultBookLines.
func NewOpeningBook(lines map[string][]string) (*OpeningBook, error) {
	ob := &OpeningBook{lines: make(map[string][]gm.Move, len(lines))}
	for key, replies := range lines {
		if _, err := parseLine(key); err != nil {
			return nil, fmt.Errorf("opening book key %q: %w", key, err)
		}
		moves, err := parseLine(strings.Join(replies, " "))
		if err != nil {
			return nil, fmt.Errorf("opening book replies to %q: %w", key, err)
		}
		ob.lines[key] = moves
	}
	return ob, nil
}

// DefaultOpeningBook returns the built-in book.
func DefaultOpeningBook() *OpeningBook {
	ob, err := NewOpeningBook(defaultBookLines)
	if err != nil {
		panic(err)
	}
	return ob
}

func parseLine(line string) ([]gm.Move, error) {
	fields := strings.Fields(line)
	moves := make([]gm.Move, 0, len(fields))
	for _, f := range fields {
		m, _, err := gm.ParseMove(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

func lineKey(played []gm.Move) string {
	parts := make([]string, len(played))
	for i, m := range played {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Candidates returns the book replies after played, or nil.
func (ob *OpeningBook) Candidates(played []gm.Move) []gm.Move {
	return ob.lines[lineKey(played)]
}

// Lookup picks a random legal book reply for p. It gives up when the game
// did not begin at the initial position, once p is past fullmove horizon,
// when the side to move does not match the length of the played line, or
// when no candidate is legal.
func (ob *OpeningBook) Lookup(p *gm.Position, horizon int) (gm.Move, bool) {
	if !p.FromStart() || p.FullmoveNumber() > horizon {
		return gm.NullMove, false
	}
	played := p.Moves()
	wantSide := gm.White
	if len(played)%2 == 1 {
		wantSide = gm.Black
	}
	if p.SideToMove() != wantSide {
		return gm.NullMove, false
	}

	legal := p.LegalMoves(wantSide)
	var options []gm.Move
	for _, m := range ob.Candidates(played) {
		if slices.Contains(legal, m) {
			options = append(options, m)
		}
	}
	if len(options) == 0 {
		return gm.NullMove, false
	}
	return options[frand.Intn(len(options))], true
}
