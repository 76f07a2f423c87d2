// Package analyzer implements the endgame minimax engine: given a partial
// grid's complete set of completions, it decides whether the position is
// winning for the player to move and returns a set of optimal turns.
package analyzer

import "nonet/internal/grid"

// Outcome labels the game-theoretic value of a position.
type Outcome int

const (
	// Loss: every legal move (and every inferred move, if applicable)
	// leads to a winning position for the opponent.
	Loss Outcome = iota
	// WinImmediate: a move reduces the completion set to size 1.
	WinImmediate
	// WinReduce: a non-immediate move leaves the opponent losing.
	WinReduce
	// WinInferred: the odd-parity inferred-cell argument proves the
	// position winning without further search.
	WinInferred
)

func (o Outcome) String() string {
	switch o {
	case Loss:
		return "LOSS"
	case WinImmediate:
		return "WIN_IMMEDIATE"
	case WinReduce:
		return "WIN_REDUCE"
	case WinInferred:
		return "WIN_INFERRED"
	default:
		return "UNKNOWN"
	}
}

// Turn is either a bare unique-completion claim (HasMove=false,
// ClaimUnique=true) or a single move, optionally also claiming
// uniqueness.
type Turn struct {
	HasMove     bool
	Move        grid.Move
	ClaimUnique bool
}

// AnalyzeResult is the outcome of one call to Analyze. Outcome is the
// zero value's pointer-nil when the search was aborted by the work
// budget; OptimalTurns is then empty.
type AnalyzeResult struct {
	Outcome      *Outcome
	OptimalTurns []Turn
}

// RankedMove pairs a candidate (pos, digit) with the number of
// completions in the current subrange having that digit at that
// position — used to order the search so moves likely to prune come
// first.
type RankedMove struct {
	Pos           int
	Digit         int
	SolutionCount int
}
