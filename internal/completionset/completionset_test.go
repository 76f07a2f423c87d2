package completionset

import (
	"sort"
	"testing"

	"nonet/internal/grid"
)

func mkSet(grids ...[81]uint8) Set {
	completions := make([]grid.Completion, len(grids))
	for i, g := range grids {
		completions[i] = grid.Completion(g)
	}
	return Set(grid.Hash(completions))
}

func digitsOf(s Set) [][81]uint8 {
	out := make([][81]uint8, len(s))
	for i, hc := range s {
		out[i] = [81]uint8(hc.Digits)
	}
	sort.Slice(out, func(i, j int) bool {
		for k := 0; k < 81; k++ {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return out
}

func TestPartitionSelectsMatches(t *testing.T) {
	var a, b, c [81]uint8
	a[40], b[40], c[40] = 3, 3, 7
	s := mkSet(a, b, c)

	matched := s.Partition(40, 3)
	if len(matched) != 2 {
		t.Fatalf("expected 2 completions with digit 3 at pos 40, got %d", len(matched))
	}
	for _, hc := range matched {
		if hc.Digits[40] != 3 {
			t.Fatalf("partition returned a non-matching completion: %v", hc.Digits[40])
		}
	}
}

func TestPartitionPreservesCombinedSet(t *testing.T) {
	var a, b, c [81]uint8
	a[0], b[0], c[0] = 1, 2, 1
	s := mkSet(a, b, c)
	before := digitsOf(s)

	_ = s.Partition(0, 1)
	after := digitsOf(s)

	if len(before) != len(after) {
		t.Fatalf("partition changed set size: %d != %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("partition changed the combined multiset at index %d", i)
		}
	}
}

func TestHashOrderIndependent(t *testing.T) {
	var a, b [81]uint8
	a[0], b[0] = 1, 2
	s1 := mkSet(a, b)
	s2 := mkSet(b, a)
	if s1.Hash() != s2.Hash() {
		t.Fatalf("set hash must not depend on order")
	}
}
