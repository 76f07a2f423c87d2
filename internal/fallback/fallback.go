// Package fallback implements the heuristic move-selection the driver
// falls back to when the full completion set for a position isn't known
// or is too large to hand to the analyzer — spec.md §1 names this as an
// out-of-core "heuristic fallback" collaborator, grounded on the
// original's PickRandomMove / PickMoveIncomplete.
package fallback

import (
	"math/bits"

	"nonet/internal/grid"
)

// Shuffler matches math/rand.Shuffle's and frand.Shuffle's signature.
type Shuffler func(n int, swap func(i, j int))

// PickRandomMove plays uniformly at random among every legal move on s,
// using rng to pick the index. Panics if s has no legal move (the driver
// is expected to have already detected game-over before calling this).
func PickRandomMove(s *grid.State, intn func(n int) int) grid.Move {
	var legal []grid.Move
	for _, p := range s.EmptyPositions() {
		unused := s.CellUnused(int(p.I))
		for unused != 0 {
			d := bits.TrailingZeros16(unused)
			unused &= unused - 1
			legal = append(legal, grid.Move{Pos: int(p.I), Digit: d})
		}
	}
	if len(legal) == 0 {
		panic("fallback: no legal move available")
	}
	return legal[intn(len(legal))]
}

// PickMoveIncomplete chooses a move without a known completion set: for
// each legal move it counts the remaining solutions of the resulting
// grid (bounded by maxWork) and, when maximizeRemaining is true, picks
// among the moves leaving the most solutions remaining (mirroring
// MAXIMIZE_SOLUTIONS_REMAINING); otherwise it falls back to
// PickRandomMove. countSolutions is injected so callers can pass
// solver.CountSolutions without this package depending on it directly.
func PickMoveIncomplete(
	s *grid.State,
	maximizeRemaining bool,
	maxWork int64,
	countSolutions func(s *grid.State, maxCount int, maxWork int64) int,
	intn func(n int) int,
) grid.Move {
	if !maximizeRemaining {
		return PickRandomMove(s, intn)
	}

	var best []grid.Move
	bestCount := -1
	for _, p := range s.EmptyPositions() {
		unused := s.CellUnused(int(p.I))
		for unused != 0 {
			d := bits.TrailingZeros16(unused)
			unused &= unused - 1
			m := grid.Move{Pos: int(p.I), Digit: d}
			s.Play(m)
			count := countSolutions(s, 1_000_000, maxWork)
			s.Undo(m)
			switch {
			case count > bestCount:
				bestCount = count
				best = []grid.Move{m}
			case count == bestCount:
				best = append(best, m)
			}
		}
	}
	if len(best) == 0 {
		panic("fallback: no legal move available")
	}
	return best[intn(len(best))]
}
