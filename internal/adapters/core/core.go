// Package core adapts the context-free internal/solver and
// internal/analyzer packages to the ports.Solver / ports.Analyzer
// interfaces, adding the context-cancellation check at the boundary the
// way the teacher's backtracking solver does (ctx.Err() checked before
// committing to the call — the core itself has no async suspend point,
// per spec.md §5, so cancellation can only be honored between calls,
// not mid-search).
package core

import (
	"context"
	"errors"
	"time"

	coreanalyzer "nonet/internal/analyzer"
	"nonet/internal/grid"
	"nonet/internal/ports"
	coresolver "nonet/internal/solver"
)

var errCanceled = errors.New("core: context canceled")

// Solver adapts internal/solver's free functions to ports.Solver.
type Solver struct {
	Shuffle coresolver.Shuffler // nil for deterministic enumeration order
}

func (s Solver) CountSolutions(ctx context.Context, g *grid.State, maxCount int, maxWork int64) (coresolver.CountResult, ports.Stats, error) {
	start := time.Now()
	if ctx.Err() != nil {
		return coresolver.CountResult{}, ports.Stats{Duration: time.Since(start)}, errCanceled
	}
	res := coresolver.CountSolutions(g, maxCount, maxWork)
	return res, ports.Stats{Nodes: int(res.Work), Duration: time.Since(start)}, nil
}

func (s Solver) EnumerateSolutions(ctx context.Context, g *grid.State, maxCount int, maxWork int64) ([]grid.Completion, coresolver.EnumerateResult, ports.Stats, error) {
	start := time.Now()
	if ctx.Err() != nil {
		return nil, coresolver.EnumerateResult{}, ports.Stats{Duration: time.Since(start)}, errCanceled
	}
	completions, res := coresolver.EnumerateSolutions(g, maxCount, maxWork, s.Shuffle)
	return completions, res, ports.Stats{Nodes: int(res.Work), Duration: time.Since(start)}, nil
}

// Analyzer adapts *analyzer.Analyzer to ports.Analyzer.
type Analyzer struct {
	Core *coreanalyzer.Analyzer
}

func (a Analyzer) Analyze(ctx context.Context, givens [81]uint8, completions []grid.Completion, maxWinningTurns int, maxWork int64) (coreanalyzer.AnalyzeResult, ports.Stats, error) {
	start := time.Now()
	if ctx.Err() != nil {
		return coreanalyzer.AnalyzeResult{}, ports.Stats{Duration: time.Since(start)}, errCanceled
	}
	res := a.Core.Analyze(givens, completions, maxWinningTurns, maxWork)
	return res, ports.Stats{Nodes: int(a.Core.Counters.RecursiveCalls.CurValue()), Duration: time.Since(start)}, nil
}

// Validator adapts grid.ValidateGivens to ports.Validator.
type Validator struct{}

func (Validator) Validate(ctx context.Context, givens [81]uint8) (bool, []grid.Conflict, error) {
	if ctx.Err() != nil {
		return false, nil, errCanceled
	}
	ok, conflicts := grid.ValidateGivens(givens)
	return ok, conflicts, nil
}
