// Package memo implements the analyzer's transposition table: a map from
// an order-independent completion-subset hash to a tri-state
// {unknown, losing, winning} value.
package memo

// Key is the XOR of per-completion FNV-1a-64 hashes for a completion
// subrange — see grid.SubsetHash.
type Key = uint64

// Handle is returned by Lookup. HasValue/GetWinning/SetWinning are
// called across the recursive call that sits between a node's own
// lookup and its eventual write, so implementations must either keep
// handles valid across further inserts (RealMemo, backed by a Go map,
// whose entries are never invalidated by further insertions) or
// re-resolve the key on every access (LossyMemo).
type Handle interface {
	HasValue() bool
	GetWinning() bool
	SetWinning(winning bool)
}

// Memo is the interface the analyzer consumes; callers do not care which
// of the three implementations below backs it.
type Memo interface {
	Lookup(key Key) Handle
}
