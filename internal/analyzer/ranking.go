package analyzer

import (
	"sort"

	"nonet/internal/completionset"
)

// buildRankedMoves tallies, for each choice cell and each digit still a
// candidate there, how many completions in subset have that digit at
// that cell, then returns the list sorted ascending by that count. Ties
// are broken by (pos ascending, digit ascending) — guaranteed by
// building the list in that order and sorting stably, per spec.md §9's
// "equal-score ties ... broken deterministically by (pos ascending,
// digit ascending)".
func buildRankedMoves(choiceCells []int, mask [81]uint16, subset completionset.Set) []RankedMove {
	sorted := append([]int(nil), choiceCells...)
	sort.Ints(sorted)

	var moves []RankedMove
	for _, pos := range sorted {
		var counts [10]int
		for _, hc := range subset {
			counts[hc.Digits[pos]]++
		}
		for digit := 1; digit <= 9; digit++ {
			if mask[pos]&(1<<uint(digit)) == 0 {
				continue
			}
			moves = append(moves, RankedMove{Pos: pos, Digit: digit, SolutionCount: counts[digit]})
		}
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].SolutionCount < moves[j].SolutionCount
	})
	return moves
}

// findImmediatelyWinningMove reports the first (pos, digit) among
// choiceCells such that exactly one completion in subset has that digit
// at that pos — the "TODO: optimize by only checking positions known to
// differ" loop from the original, kept as a full scan since subset is
// always small relative to 81 cells in practice.
func findImmediatelyWinningMove(choiceCells []int, mask [81]uint16, subset completionset.Set) (pos, digit int, ok bool) {
	sorted := append([]int(nil), choiceCells...)
	sort.Ints(sorted)
	for _, p := range sorted {
		var counts [10]int
		for _, hc := range subset {
			counts[hc.Digits[p]]++
		}
		for d := 1; d <= 9; d++ {
			if mask[p]&(1<<uint(d)) != 0 && counts[d] == 1 {
				return p, d, true
			}
		}
	}
	return 0, 0, false
}

// removeCell returns a copy of cells with pos removed (by value, not
// index), mirroring the original's Remove<T> helper.
func removeCell(cells []int, pos int) []int {
	out := make([]int, 0, len(cells)-1)
	for _, c := range cells {
		if c != pos {
			out = append(out, c)
		}
	}
	return out
}
