package analyzer

import (
	"testing"

	"nonet/internal/counters"
	"nonet/internal/grid"
	"nonet/internal/memo"
)

func newAnalyzer() *Analyzer {
	return New(memo.NewReal(), counters.New(), Options{ParityReduction: true, MaximizeSolutionsRemaining: true})
}

func completion(overrides map[int]uint8) grid.Completion {
	var c grid.Completion
	for pos, d := range overrides {
		c[pos] = d
	}
	return c
}

// S1: exactly one completion -> WIN_IMMEDIATE with a bare claim.
func TestScenarioS1UniqueCompletionClaim(t *testing.T) {
	a := newAnalyzer()
	var givens [81]uint8
	c := completion(map[int]uint8{0: 5})
	res := a.Analyze(givens, []grid.Completion{c}, 1, 1e6)
	if res.Outcome == nil || *res.Outcome != WinImmediate {
		t.Fatalf("expected WIN_IMMEDIATE, got %+v", res.Outcome)
	}
	if len(res.OptimalTurns) != 1 || res.OptimalTurns[0].HasMove || !res.OptimalTurns[0].ClaimUnique {
		t.Fatalf("expected a single bare claim_unique turn, got %+v", res.OptimalTurns)
	}
}

// S2: two completions differing only at one cell -> WIN_IMMEDIATE.
func TestScenarioS2ImmediateWinByDigitChoice(t *testing.T) {
	a := newAnalyzer()
	var givens [81]uint8
	c1 := completion(map[int]uint8{40: 3})
	c2 := completion(map[int]uint8{40: 7})
	res := a.Analyze(givens, []grid.Completion{c1, c2}, 2, 1e6)
	if res.Outcome == nil || *res.Outcome != WinImmediate {
		t.Fatalf("expected WIN_IMMEDIATE, got %+v", res.Outcome)
	}
	for _, turn := range res.OptimalTurns {
		if !turn.HasMove || turn.Move.Pos != 40 || !turn.ClaimUnique {
			t.Fatalf("unexpected turn %+v", turn)
		}
	}
}

// S3: four completions forming a non-reducible "rectangle" -> LOSS.
// Every cell outside the rectangle is a given, so no inferred cells
// shift the parity.
func TestScenarioS3ForcedLoss(t *testing.T) {
	a := newAnalyzer()
	var givens [81]uint8
	for i := range givens {
		givens[i] = uint8(1 + i%9)
	}
	givens[40], givens[41] = 0, 0
	rect := func(d40, d41 uint8) grid.Completion {
		c := grid.Completion(givens)
		c[40], c[41] = d40, d41
		return c
	}
	cs := []grid.Completion{rect(3, 7), rect(3, 8), rect(5, 7), rect(5, 8)}
	res := a.Analyze(givens, cs, 4, 1e6)
	if res.Outcome == nil || *res.Outcome != Loss {
		t.Fatalf("expected LOSS, got %+v", res.Outcome)
	}
	if len(res.OptimalTurns) == 0 {
		t.Fatalf("expected at least one least-bad turn to be listed")
	}
}

// S4: three completions on three choice cells. Digit 5 at cell 10
// occurs in only one completion, so the position is already an
// immediate win; either winning outcome is accepted.
func TestScenarioS4TwoPlyWin(t *testing.T) {
	a := newAnalyzer()
	var givens [81]uint8
	cs := []grid.Completion{
		completion(map[int]uint8{10: 3, 11: 7, 12: 1}),
		completion(map[int]uint8{10: 3, 11: 8, 12: 2}),
		completion(map[int]uint8{10: 5, 11: 7, 12: 2}),
	}
	res := a.Analyze(givens, cs, 3, 1e6)
	if res.Outcome == nil {
		t.Fatalf("expected a concrete outcome, got aborted")
	}
	if *res.Outcome != WinReduce && *res.Outcome != WinImmediate {
		t.Fatalf("expected a winning outcome, got %v", *res.Outcome)
	}
}

// S5: a huge completion set with a tiny work budget aborts; a later
// call with a large budget succeeds.
func TestScenarioS5WorkAbort(t *testing.T) {
	a := newAnalyzer()
	var givens [81]uint8
	cs := make([]grid.Completion, 0, 10001)
	for i := 0; i < 10001; i++ {
		c := completion(map[int]uint8{
			0: uint8(1 + i%9),
			1: uint8(1 + (i/9)%9),
			2: uint8(1 + (i/81)%9),
		})
		cs = append(cs, c)
	}
	res := a.Analyze(givens, cs, 1, 100)
	if res.Outcome != nil {
		t.Fatalf("expected the tiny work budget to abort, got outcome %v", *res.Outcome)
	}
	if len(res.OptimalTurns) != 0 {
		t.Fatalf("expected no turns on abort")
	}

	res2 := a.Analyze(givens, cs, 1, 1e18)
	if res2.Outcome == nil {
		t.Fatalf("expected a concrete outcome with a huge work budget")
	}
}

// S6: re-analyzing the same position with the same memo needs strictly
// fewer recursive calls, because the first analysis memoized the root's
// verdict.
func TestScenarioS6MemoReuse(t *testing.T) {
	m := memo.NewReal()
	c := counters.New()
	a := New(m, c, Options{ParityReduction: true, MaximizeSolutionsRemaining: true})

	var givens [81]uint8
	cs := []grid.Completion{
		completion(map[int]uint8{10: 3, 11: 7, 12: 1}),
		completion(map[int]uint8{10: 3, 11: 8, 12: 2}),
		completion(map[int]uint8{10: 5, 11: 7, 12: 2}),
		completion(map[int]uint8{10: 5, 11: 8, 12: 1}),
	}
	_ = a.Analyze(givens, cs, 4, 1e9)
	firstCalls := c.RecursiveCalls.MaxValue()

	c.Reset()
	_ = a.Analyze(givens, cs, 4, 1e9)
	secondCalls := c.RecursiveCalls.MaxValue()

	if secondCalls >= firstCalls {
		t.Fatalf("expected memo reuse to reduce the recursive call count: first=%d second=%d", firstCalls, secondCalls)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	var givens [81]uint8
	cs := []grid.Completion{
		completion(map[int]uint8{40: 3, 41: 7}),
		completion(map[int]uint8{40: 3, 41: 8}),
		completion(map[int]uint8{40: 5, 41: 7}),
		completion(map[int]uint8{40: 5, 41: 8}),
	}
	a1 := newAnalyzer()
	a2 := newAnalyzer()
	r1 := a1.Analyze(givens, cs, 4, 1e6)
	r2 := a2.Analyze(givens, cs, 4, 1e6)
	if (r1.Outcome == nil) != (r2.Outcome == nil) {
		t.Fatalf("determinism violated: outcome presence differs")
	}
	if r1.Outcome != nil && *r1.Outcome != *r2.Outcome {
		t.Fatalf("determinism violated: %v != %v", *r1.Outcome, *r2.Outcome)
	}
	if len(r1.OptimalTurns) != len(r2.OptimalTurns) {
		t.Fatalf("determinism violated: turn counts differ")
	}
	for i := range r1.OptimalTurns {
		if r1.OptimalTurns[i] != r2.OptimalTurns[i] {
			t.Fatalf("determinism violated at turn %d: %+v != %+v", i, r1.OptimalTurns[i], r2.OptimalTurns[i])
		}
	}
}

func TestAnalyzePanicsOnEmptyCompletions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic on an empty completion set")
		}
	}()
	a := newAnalyzer()
	var givens [81]uint8
	a.Analyze(givens, nil, 1, 1e6)
}
