// Package completionset provides the in-place partitioning operation the
// analyzer uses to narrow a subrange of hashed completions by a move,
// without allocating a new backing array per recursive call.
package completionset

import "nonet/internal/grid"

// Set is a mutable view over a contiguous slice of hashed completions.
// Analyzer recursion reorders entries in place; callers must treat the
// slice as having unspecified order after a Partition call.
type Set []grid.HashedCompletion

// Hash returns the order-independent subset hash of the set.
func (s Set) Hash() uint64 { return grid.SubsetHash(s) }

// Partition moves every completion with digit at pos to the front of s
// and returns the matching prefix as a new Set header sharing s's
// backing array. The matching entries keep their relative order; the
// non-matching suffix occupies the remainder of s[:len(s)] after the
// returned prefix and may be reordered within itself.
func (s Set) Partition(pos, digit int) Set {
	matched := 0
	for i := 0; i < len(s); i++ {
		if int(s[i].Digits[pos]) == digit {
			s[matched], s[i] = s[i], s[matched]
			matched++
		}
	}
	return s[:matched]
}
