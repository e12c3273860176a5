package engine

import (
	gm "minimax-chess/chessmg"
)

// Bound tells how a stored score relates to the true value of its node.
type Bound int8

const (
	ExactBound Bound = iota
	LowerBound       // true value >= score
	UpperBound       // true value <= score
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	}
	return "unknown"
}

type TTEntry struct {
	Hash  uint64
	Depth int16
	Score int32
	Bound Bound
	Move  gm.Move
	used  bool
}

// TransTable is a fixed, power-of-two sized table indexed by hash. It is not
// safe for concurrent use; parallel searches give each worker its own table.
type TransTable struct {
	entries []TTEntry
	mask    uint64
	stored  int
}

// NewTransTable allocates a table with 2^bits entries. bits is clamped to
// the range Config accepts.
func NewTransTable(bits int) *TransTable {
	bits = Clamp(bits, minTTBits, maxTTBits)
	size := uint64(1) << uint(bits)
	return &TransTable{entries: make([]TTEntry, size), mask: size - 1}
}

// Len is the slot count.
func (tt *TransTable) Len() int { return len(tt.entries) }

// Used reports how many slots hold an entry.
func (tt *TransTable) Used() int { return tt.stored }

// Clear empties every slot. Called once per new game.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.stored = 0
}

func (tt *TransTable) slot(hash uint64) *TTEntry {
	return &tt.entries[hash&tt.mask]
}

// Store records a search result. The slot is overwritten unless it already
// holds a deeper entry, for any position.
func (tt *TransTable) Store(hash uint64, depth int, score int, bound Bound, move gm.Move) {
	e := tt.slot(hash)
	if e.used && int(e.Depth) > depth {
		return
	}
	if !e.used {
		tt.stored++
	}
	*e = TTEntry{Hash: hash, Depth: int16(depth), Score: int32(score), Bound: bound, Move: move, used: true}
}

// Probe looks hash up. Whenever the slot holds this hash its move is
// returned for ordering; usable is set only when the entry is deep enough
// and its bound settles the (alpha, beta) window.
func (tt *TransTable) Probe(hash uint64, depth int, alpha, beta int) (move gm.Move, score int, usable bool) {
	e := tt.slot(hash)
	if !e.used || e.Hash != hash {
		return gm.NullMove, 0, false
	}
	move = e.Move
	if int(e.Depth) < depth {
		return move, 0, false
	}
	score = int(e.Score)
	switch e.Bound {
	case ExactBound:
		usable = true
	case LowerBound:
		usable = score >= beta
	case UpperBound:
		usable = score <= alpha
	}
	return move, score, usable
}

// Entry returns the raw slot content for hash.
func (tt *TransTable) Entry(hash uint64) (TTEntry, bool) {
	e := tt.slot(hash)
	if !e.used || e.Hash != hash {
		return TTEntry{}, false
	}
	return *e, true
}
