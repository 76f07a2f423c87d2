// Package solver implements the constraint solver: recursive backtracking
// over a grid.State's empty cells using the most-constrained-cell
// heuristic, bounded by a count cap and a work budget.
package solver

import (
	"math/bits"

	"nonet/internal/grid"
)

// CountResult reports the outcome of CountSolutions.
type CountResult struct {
	Count              int
	MaxCount           int
	Work               int64
	MaxWork            int64
	ReachedCountLimit  bool
	ReachedWorkLimit   bool
}

// EnumerateResult reports the outcome of EnumerateSolutions.
type EnumerateResult struct {
	Success          bool
	Work             int64
	MaxWork          int64
	ReachedWorkLimit bool
}

// CountSolutions counts up to maxCount completions of s, never
// distinguishing "exactly maxCount" from "at least maxCount" — callers
// inspect ReachedCountLimit. maxWork bounds the total recursive work
// performed; ReachedWorkLimit signals the count may be an undercount.
func CountSolutions(s *grid.State, maxCount int, maxWork int64) CountResult {
	if maxCount < 0 || maxWork < 0 {
		panic("solver: maxCount and maxWork must be non-negative")
	}
	todo := s.EmptyPositions()
	cs := &countState{countLeft: maxCount, workLeft: maxWork}
	countRecurse(s, todo, cs)
	return CountResult{
		Count:             maxCount - cs.countLeft,
		MaxCount:          maxCount,
		Work:              maxWork - cs.workLeft,
		MaxWork:           maxWork,
		ReachedCountLimit: cs.countLeft <= 0,
		ReachedWorkLimit:  cs.workLeft <= 0,
	}
}

type countState struct {
	countLeft int
	workLeft  int64
}

// countRecurse mirrors EnumerateSolutionsImpl but never actually writes
// any digits into s — it only tracks the chosen cell's mask locally.
func countRecurse(s *grid.State, todo []grid.Position, cs *countState) {
	if len(todo) == 0 {
		cs.countLeft--
		return
	}

	idx, mask, ok := mostConstrained(s, todo)
	if !ok {
		return // unsolvable branch
	}
	todo[idx], todo[len(todo)-1] = todo[len(todo)-1], todo[idx]
	pos := todo[len(todo)-1]
	remaining := todo[:len(todo)-1]

	for mask != 0 && cs.countLeft > 0 && cs.workLeft > 0 {
		cs.workLeft--

		bit := mask & (mask - 1) ^ mask // lowest set bit
		mask &= mask - 1

		applyCellMask(s, pos, bit)
		countRecurse(s, remaining, cs)
		applyCellMask(s, pos, bit)
	}
}

// EnumerateSolutions fills `out` with up to maxCount completions of s (in
// a non-guaranteed order) and returns success=false only if the result
// was artificially truncated by maxCount (the internal callback form
// always stops the search at that point, mirroring the original's
// vector-filling wrapper around the callback form).
func EnumerateSolutions(s *grid.State, maxCount int, maxWork int64, rng Shuffler) ([]grid.Completion, EnumerateResult) {
	if maxCount < 0 {
		panic("solver: maxCount must be non-negative")
	}
	var out []grid.Completion
	res := EnumerateSolutionsCallback(s, maxWork, rng, func(c grid.Completion) bool {
		out = append(out, c)
		return len(out) < maxCount
	})
	return out, res
}

// Shuffler randomizes the initial empty-position order for tie-break
// randomization; nil means no shuffling (deterministic ascending-index
// order). Matches the signature of math/rand.Shuffle and
// lukechampine.com/frand.Shuffle, so either can be passed directly.
type Shuffler func(n int, swap func(i, j int))

// EnumerateSolutionsCallback enumerates completions of s and invokes
// callback for each until it returns false or the work budget runs out.
// Returns success=false iff the callback ever returned false.
func EnumerateSolutionsCallback(s *grid.State, maxWork int64, rng Shuffler, callback func(grid.Completion) bool) EnumerateResult {
	todo := s.EmptyPositions()
	if rng != nil {
		rng(len(todo), func(i, j int) { todo[i], todo[j] = todo[j], todo[i] })
	}
	workLeft := maxWork
	success := enumerateRecurse(s, todo, &workLeft, callback)
	return EnumerateResult{
		Success:          success,
		Work:             maxWork - workLeft,
		MaxWork:          maxWork,
		ReachedWorkLimit: workLeft <= 0,
	}
}

func enumerateRecurse(s *grid.State, todo []grid.Position, workLeft *int64, callback func(grid.Completion) bool) bool {
	if len(todo) == 0 {
		return callback(grid.Completion(s.Digits()))
	}

	idx, mask, ok := mostConstrained(s, todo)
	if !ok {
		return true // unsolvable branch, not a callback rejection
	}
	todo[idx], todo[len(todo)-1] = todo[len(todo)-1], todo[idx]
	pos := todo[len(todo)-1]
	remaining := todo[:len(todo)-1]

	for mask != 0 && *workLeft > 0 {
		*workLeft--

		d := bits.TrailingZeros16(mask)
		bit := uint16(1) << uint(d)
		mask ^= bit

		m := grid.Move{Pos: int(pos.I), Digit: d}
		s.Play(m)
		result := enumerateRecurse(s, remaining, workLeft, callback)
		s.Undo(m)

		if !result {
			return false
		}
	}
	return true
}

// mostConstrained scans todo for the cell with the fewest remaining
// candidates and returns its index idx in todo (the caller then moves
// it to the end) and its candidate mask. ok=false means some cell in todo has
// zero candidates (the branch is unsolvable).
func mostConstrained(s *grid.State, todo []grid.Position) (idx int, mask uint16, ok bool) {
	minCount := 10
	minIndex := -1
	var minMask uint16
	for j, p := range todo {
		unused := s.CellUnused(int(p.I))
		if unused == 0 {
			return 0, 0, false
		}
		count := bits.OnesCount16(unused)
		if count < minCount {
			minCount = count
			minIndex = j
			minMask = unused
		}
	}
	return minIndex, minMask, true
}

// applyCellMask toggles the given single-bit digit mask into the row,
// column and box unused-masks for pos, without touching s.digit — used
// by the count-only path, which never needs the digit array itself.
func applyCellMask(s *grid.State, pos grid.Position, bit uint16) {
	s.ToggleUnused(int(pos.I), bit)
}
