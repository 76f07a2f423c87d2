// Package ports declares the interfaces usecase.Service depends on,
// decoupling it from the concrete internal/solver and internal/analyzer
// implementations — the same hexagonal seam the teacher uses to let
// adapters swap implementations (e.g. for tests) without touching
// usecase logic.
package ports

import (
	"context"
	"time"

	"nonet/internal/analyzer"
	"nonet/internal/grid"
	"nonet/internal/solver"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver counts and enumerates completions of a grid under the
// row/column/box constraints.
type Solver interface {
	CountSolutions(ctx context.Context, s *grid.State, maxCount int, maxWork int64) (solver.CountResult, Stats, error)
	EnumerateSolutions(ctx context.Context, s *grid.State, maxCount int, maxWork int64) ([]grid.Completion, solver.EnumerateResult, Stats, error)
}

// Analyzer decides whether a position is winning and returns optimal
// turns.
type Analyzer interface {
	Analyze(ctx context.Context, givens [81]uint8, completions []grid.Completion, maxWinningTurns int, maxWork int64) (analyzer.AnalyzeResult, Stats, error)
}

// Validator performs the boundary precondition check on a raw givens
// grid before it is trusted by the rest of the pipeline.
type Validator interface {
	Validate(ctx context.Context, givens [81]uint8) (ok bool, conflicts []grid.Conflict, err error)
}
