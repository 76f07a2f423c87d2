package fallback

import (
	"testing"

	"nonet/internal/grid"
)

func TestPickRandomMoveIsLegal(t *testing.T) {
	var givens [81]uint8
	givens[0] = 5
	s := grid.New(givens)
	m := PickRandomMove(s, func(n int) int { return 0 })
	if !s.CanPlay(m) {
		t.Fatalf("PickRandomMove returned an illegal move: %+v", m)
	}
}

func TestPickMoveIncompleteMaximizesRemaining(t *testing.T) {
	var givens [81]uint8
	s := grid.New(givens)

	calls := 0
	countSolutions := func(s *grid.State, maxCount int, maxWork int64) int {
		calls++
		// Deterministic stand-in: only placing 7 at cell 40 leaves many
		// solutions; every other move reports one.
		if s.Digit(40) == 7 {
			return 100
		}
		return 1
	}
	m := PickMoveIncomplete(s, true, 1000, countSolutions, func(n int) int { return 0 })
	if !s.CanPlay(m) {
		t.Fatalf("PickMoveIncomplete returned an illegal move: %+v", m)
	}
	if m != (grid.Move{Pos: 40, Digit: 7}) {
		t.Fatalf("expected the move leaving the most solutions (Ee7), got %+v", m)
	}
	if calls == 0 {
		t.Fatalf("expected countSolutions to be consulted")
	}
}

func TestPickMoveIncompleteFallsBackToRandom(t *testing.T) {
	var givens [81]uint8
	s := grid.New(givens)
	m := PickMoveIncomplete(s, false, 1000, nil, func(n int) int { return 0 })
	if !s.CanPlay(m) {
		t.Fatalf("expected a legal move from the random fallback path")
	}
}
