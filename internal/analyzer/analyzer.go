package analyzer

import (
	"github.com/rs/zerolog"

	"nonet/internal/completionset"
	"nonet/internal/counters"
	"nonet/internal/grid"
	"nonet/internal/memo"
)

// paritySalt distinguishes a memoized "odd inferred-cell parity at this
// node" result from the plain subset-hash result for the same subset,
// per spec.md §4.5's inferred-move variant.
const paritySalt = 0x9e3779b97f4a7c15

// Options configures the two compile-time variants spec.md §9 names,
// plus the logger used for per-node trace / per-turn summaries.
type Options struct {
	// ParityReduction enables the odd-parity inferred-move argument
	// (WinInferred at the top level, and the local parity flip inside
	// the recursive search). Default true, matching the original's
	// unconditional MUST_REDUCE behavior.
	ParityReduction bool
	// MaximizeSolutionsRemaining controls the LOSS-case optimal-turn
	// set: true picks all moves leaving the maximum completions
	// remaining, false picks all moves that reduce the set at all.
	// Default true, matching the original's
	// MAXIMIZE_SOLUTIONS_REMAINING=1.
	MaximizeSolutionsRemaining bool
	Logger                     zerolog.Logger
}

// Analyzer owns the memo and counters shared across calls to Analyze —
// spec.md §9's "single owned analyzer object holding both", passed
// explicitly rather than kept as process globals.
type Analyzer struct {
	Memo     memo.Memo
	Counters *counters.Counters
	Options  Options
}

// New returns an Analyzer. Pass memo.NewReal() for the required default
// memo implementation.
func New(m memo.Memo, c *counters.Counters, opts Options) *Analyzer {
	return &Analyzer{Memo: m, Counters: c, Options: opts}
}

// Analyze is the driver façade's single entry point: given the givens
// grid and the complete set of its completions, decide whether the
// position is winning for the player to move and return the optimal
// turn set. May be called repeatedly with a fresh maxWork for coarse
// time-slicing; memo state persists across calls on the same Analyzer.
func (a *Analyzer) Analyze(givens [81]uint8, completions []grid.Completion, maxWinningTurns int, maxWork int64) AnalyzeResult {
	if len(completions) == 0 {
		panic("analyzer: empty completion set")
	}
	if maxWinningTurns < 1 {
		panic("analyzer: maxWinningTurns must be >= 1")
	}
	if maxWork <= 0 {
		panic("analyzer: maxWork must be positive")
	}

	if len(completions) == 1 {
		outcome := WinImmediate
		return AnalyzeResult{Outcome: &outcome, OptimalTurns: []Turn{{ClaimUnique: true}}}
	}

	hashed := grid.Hash(completions)
	mask := grid.CandidateMask(hashed)

	var choiceCells []int
	var inferredMoves []grid.Move
	for i := 0; i < 81; i++ {
		if givens[i] != 0 {
			continue
		}
		if grid.Determined(mask[i]) {
			choiceMask := mask[i]
			digit := 0
			for d := 1; d <= 9; d++ {
				if choiceMask&(1<<uint(d)) != 0 {
					digit = d
					break
				}
			}
			inferredMoves = append(inferredMoves, grid.Move{Pos: i, Digit: digit})
		} else {
			choiceCells = append(choiceCells, i)
		}
	}

	subset := completionset.Set(hashed)

	if pos, digit, ok := findImmediatelyWinningMove(choiceCells, mask, subset); ok {
		a.Options.Logger.Debug().Int("pos", pos).Int("digit", digit).Msg("immediately winning move found")
		a.Counters.ImmediatelyWon.Inc()
		ranked := buildRankedMoves(choiceCells, mask, subset)
		var turns []Turn
		for _, rm := range ranked {
			if rm.SolutionCount != 1 {
				continue
			}
			turns = append(turns, Turn{HasMove: true, Move: grid.Move{Pos: rm.Pos, Digit: rm.Digit}, ClaimUnique: true})
			if len(turns) >= maxWinningTurns {
				break
			}
		}
		outcome := WinImmediate
		return AnalyzeResult{Outcome: &outcome, OptimalTurns: turns}
	}

	if a.Options.ParityReduction && len(inferredMoves)%2 == 1 {
		a.Options.Logger.Debug().Int("inferred_moves", len(inferredMoves)).Msg("odd inferred-move parity: winning without search")
		turns := make([]Turn, 0, min(len(inferredMoves), maxWinningTurns))
		for _, m := range inferredMoves {
			turns = append(turns, Turn{HasMove: true, Move: m})
			if len(turns) >= maxWinningTurns {
				break
			}
		}
		outcome := WinInferred
		return AnalyzeResult{Outcome: &outcome, OptimalTurns: turns}
	}

	ranked := buildRankedMoves(choiceCells, mask, subset)
	workLeft := maxWork

	// The root's verdict is memoized under the same unsalted subset key
	// isWinning uses, so re-analyzing a known losing position needs no
	// recursive calls.
	a.Counters.MemoAccessed.Inc()
	root := a.Memo.Lookup(subset.Hash())
	if root.HasValue() && !root.GetWinning() {
		a.Counters.MemoReturned.Inc()
		outcome := Loss
		return AnalyzeResult{Outcome: &outcome, OptimalTurns: a.lossTurns(ranked, inferredMoves, maxWinningTurns)}
	}

	var winningMoves []RankedMove
	for _, rm := range ranked {
		newChoiceCells := removeCell(choiceCells, rm.Pos)
		child := subset.Partition(rm.Pos, rm.Digit)
		childWinning, aborted := a.isWinning(child, newChoiceCells, &workLeft)
		if aborted {
			a.Options.Logger.Warn().Msg("analyze aborted: work budget exhausted")
			return AnalyzeResult{}
		}
		if !childWinning {
			winningMoves = append(winningMoves, rm)
			if len(winningMoves) >= maxWinningTurns {
				break
			}
		}
	}

	if len(winningMoves) > 0 {
		root.SetWinning(true)
		turns := make([]Turn, len(winningMoves))
		for i, rm := range winningMoves {
			turns[i] = Turn{HasMove: true, Move: grid.Move{Pos: rm.Pos, Digit: rm.Digit}}
		}
		outcome := WinReduce
		return AnalyzeResult{Outcome: &outcome, OptimalTurns: turns}
	}

	root.SetWinning(false)
	outcome := Loss
	return AnalyzeResult{Outcome: &outcome, OptimalTurns: a.lossTurns(ranked, inferredMoves, maxWinningTurns)}
}

// lossTurns picks the best-effort "least-bad" set of moves for a LOSS
// position, per spec.md §4.5's MAXIMIZE_SOLUTIONS_REMAINING switch.
func (a *Analyzer) lossTurns(ranked []RankedMove, inferredMoves []grid.Move, maxWinningTurns int) []Turn {
	if len(ranked) == 0 {
		turns := make([]Turn, 0, min(len(inferredMoves), maxWinningTurns))
		for _, m := range inferredMoves {
			turns = append(turns, Turn{HasMove: true, Move: m})
			if len(turns) >= maxWinningTurns {
				break
			}
		}
		return turns
	}

	var candidates []RankedMove
	if a.Options.MaximizeSolutionsRemaining {
		maxCount := ranked[len(ranked)-1].SolutionCount
		for _, rm := range ranked {
			if rm.SolutionCount == maxCount {
				candidates = append(candidates, rm)
			}
		}
	} else {
		candidates = ranked
	}

	turns := make([]Turn, 0, min(len(candidates), maxWinningTurns))
	for _, rm := range candidates {
		turns = append(turns, Turn{HasMove: true, Move: grid.Move{Pos: rm.Pos, Digit: rm.Digit}})
		if len(turns) >= maxWinningTurns {
			break
		}
	}
	return turns
}

// isWinning is the recursive minimax core, ported from the original's
// IsWinning with memoization, the work budget, and ranked move ordering
// added: each node visits its candidate moves via buildRankedMoves
// (ascending by solution_count, the ordering spec.md prescribes for
// every search node, not just the top-level Analyze call) rather than
// the original's raw position/digit scan. Counters.MaxDepth tracks live
// recursion depth via the Inc/Dec bracketing below, so no explicit
// depth parameter is needed.
func (a *Analyzer) isWinning(subset completionset.Set, oldChoiceCells []int, workLeft *int64) (winning, aborted bool) {
	a.Counters.MaxDepth.Inc()
	defer a.Counters.MaxDepth.Dec()
	a.Counters.RecursiveCalls.Inc()
	a.Counters.TotalSolutions.Add(int64(len(subset)))

	*workLeft -= int64(len(subset))
	if *workLeft < 0 {
		return false, true
	}

	mask := grid.CandidateMask(subset)
	choiceCells := make([]int, 0, len(oldChoiceCells))
	inferredOdd := false
	for _, pos := range oldChoiceCells {
		if grid.Determined(mask[pos]) {
			if a.Options.ParityReduction {
				inferredOdd = !inferredOdd
			}
		} else {
			choiceCells = append(choiceCells, pos)
		}
	}

	key := subset.Hash()
	if a.Options.ParityReduction && inferredOdd {
		key ^= paritySalt
	}
	a.Counters.MemoAccessed.Inc()
	h := a.Memo.Lookup(key)
	if h.HasValue() {
		a.Counters.MemoReturned.Inc()
		return h.GetWinning(), false
	}

	if _, _, ok := findImmediatelyWinningMove(choiceCells, mask, subset); ok {
		a.Counters.ImmediatelyWon.Inc()
		h.SetWinning(true)
		return true, false
	}

	for _, rm := range buildRankedMoves(choiceCells, mask, subset) {
		newChoiceCells := removeCell(choiceCells, rm.Pos)
		child := subset.Partition(rm.Pos, rm.Digit)
		childWinning, aborted := a.isWinning(child, newChoiceCells, workLeft)
		if aborted {
			return false, true
		}
		if !childWinning {
			result := !inferredOdd
			h.SetWinning(result)
			return result, false
		}
	}

	h.SetWinning(inferredOdd)
	return inferredOdd, false
}
