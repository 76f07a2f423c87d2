package grid

// Completion is a fully-filled grid: every cell holds a digit in 1..9 and
// every row, column and box is a permutation of 1..9.
type Completion [81]uint8

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Hash computes the per-completion FNV-1a-64 hash over the 81 digit
// bytes. Two completions with the same digits always hash identically;
// the hash is NOT a function of insertion order, which is what lets
// HashedCompletion subset hashes be combined by plain XOR.
func (c Completion) Hash() uint64 {
	h := uint64(fnvOffset64)
	for _, d := range c {
		h ^= uint64(d)
		h *= fnvPrime64
	}
	return h
}

// HashedCompletion pairs a Completion with its precomputed hash, as
// carried through one call to Analyze.
type HashedCompletion struct {
	Hash   uint64
	Digits Completion
}

// Hash computes the hashes for a batch of completions.
func Hash(completions []Completion) []HashedCompletion {
	out := make([]HashedCompletion, len(completions))
	for i, c := range completions {
		out[i] = HashedCompletion{Hash: c.Hash(), Digits: c}
	}
	return out
}

// SubsetHash is the order-independent hash of a subrange of hashed
// completions: the XOR of their individual hashes.
func SubsetHash(subset []HashedCompletion) uint64 {
	var h uint64
	for _, hc := range subset {
		h ^= hc.Hash
	}
	return h
}

// CandidateMask computes, for every cell, the OR over the given
// completions of (1 << digit). A cell with a single bit set is
// "inferred" (its value is forced given this completion set); one with
// two or more bits is a "choice" cell.
func CandidateMask(subset []HashedCompletion) [81]uint16 {
	var mask [81]uint16
	for _, hc := range subset {
		for i, d := range hc.Digits {
			mask[i] |= 1 << uint(d)
		}
	}
	return mask
}

// Determined reports whether a candidate mask has exactly one bit set.
func Determined(mask uint16) bool { return mask != 0 && mask&(mask-1) == 0 }
