package engine

import (
	"github.com/hailam/gothello/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact value
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// String returns the bound name.
func (f TTFlag) String() string {
	switch f {
	case TTExact:
		return "exact"
	case TTLowerBound:
		return "lower"
	case TTUpperBound:
		return "upper"
	default:
		return "unknown"
	}
}

// TTEntry represents an entry in the transposition table.
// Depth -1 marks an entry that must not be used.
type TTEntry struct {
	Key      uint64     // Zobrist key of the position
	BestMove board.Move // Best move found at this node
	Value    int        // Value (bounded by flag)
	Flag     TTFlag     // Type of bound
	Depth    int        // Remaining depth the value was computed at
}

// missEntry is returned by Lookup when the position is not in the table.
var missEntry = TTEntry{Depth: -1}

// TTStats holds table counters.
type TTStats struct {
	Probes uint64
	Hits   uint64
	Stores uint64
	Size   int
}

// HitRate returns the lookup hit rate as a percentage.
func (s TTStats) HitRate() float64 {
	if s.Probes == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Probes) * 100
}

// TranspositionTable maps Zobrist keys to search results. It grows for the
// lifetime of one game and is cleared between games. It is not safe for
// concurrent use; the searcher is single-threaded.
type TranspositionTable struct {
	zobrist *board.Zobrist
	entries map[uint64]TTEntry

	probes uint64
	hits   uint64
	stores uint64
}

// NewTranspositionTable creates an empty table with freshly drawn Zobrist keys.
func NewTranspositionTable() *TranspositionTable {
	return NewTranspositionTableWithKeys(board.NewZobrist())
}

// NewTranspositionTableWithKeys creates an empty table hashing with z.
func NewTranspositionTableWithKeys(z *board.Zobrist) *TranspositionTable {
	return &TranspositionTable{
		zobrist: z,
		entries: make(map[uint64]TTEntry),
	}
}

// Hash returns the key of b under this table's Zobrist keys.
func (tt *TranspositionTable) Hash(b *board.Board) uint64 {
	return tt.zobrist.Hash(b)
}

// Lookup returns the stored entry for b, or an entry with Depth -1.
func (tt *TranspositionTable) Lookup(b *board.Board) TTEntry {
	return tt.Probe(tt.Hash(b))
}

// Probe returns the stored entry for key, or an entry with Depth -1.
func (tt *TranspositionTable) Probe(key uint64) TTEntry {
	tt.probes++
	entry, ok := tt.entries[key]
	if !ok {
		return missEntry
	}
	tt.hits++
	return entry
}

// Store saves entry under b's key, replacing whatever was there.
func (tt *TranspositionTable) Store(b *board.Board, entry TTEntry) {
	tt.Put(tt.Hash(b), entry)
}

// Put saves entry under key, replacing whatever was there.
func (tt *TranspositionTable) Put(key uint64, entry TTEntry) {
	entry.Key = key
	tt.entries[key] = entry
	tt.stores++
}

// Clear empties the table and resets its counters.
func (tt *TranspositionTable) Clear() {
	clear(tt.entries)
	tt.probes = 0
	tt.hits = 0
	tt.stores = 0
}

// Len returns the number of stored positions.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// Stats returns the table counters.
func (tt *TranspositionTable) Stats() TTStats {
	return TTStats{
		Probes: tt.probes,
		Hits:   tt.hits,
		Stores: tt.stores,
		Size:   len(tt.entries),
	}
}
