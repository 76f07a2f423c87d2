// Package usecase wires the ports interfaces into the operations the
// transport adapters (HTTP, WS, CLI) call, keeping those adapters free
// of any direct dependency on internal/solver or internal/analyzer.
package usecase

import (
	"context"
	"errors"

	"nonet/internal/analyzer"
	"nonet/internal/domain"
	"nonet/internal/grid"
	"nonet/internal/ports"
	"nonet/internal/solver"
)

// Service is the single entry point transport adapters call into.
type Service struct {
	Solver    ports.Solver
	Analyzer  ports.Analyzer
	Validator ports.Validator
}

func NewService(s ports.Solver, a ports.Analyzer, v ports.Validator) *Service {
	return &Service{Solver: s, Analyzer: a, Validator: v}
}

var errNotConfigured = errors.New("usecase dependency not configured")
var errInvalidGivens = errors.New("usecase: board violates a row, column, or box constraint")

// Validate checks a raw board for row/column/box conflicts before it is
// trusted by Count, Enumerate, or Analyze.
func (u *Service) Validate(ctx context.Context, b domain.Board) (bool, []domain.CellCoord, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	ok, conflicts, err := u.Validator.Validate(ctx, b.ToFlat())
	if err != nil {
		return false, nil, err
	}
	coords := make([]domain.CellCoord, len(conflicts))
	for i, c := range conflicts {
		coords[i] = domain.CellCoordFromPos(c.Pos)
	}
	return ok, coords, nil
}

// CountSolutions reports how many completions a board admits, capped at
// maxCount and maxWork.
func (u *Service) CountSolutions(ctx context.Context, b domain.Board, maxCount int, maxWork int64) (solver.CountResult, ports.Stats, error) {
	if u.Solver == nil {
		return solver.CountResult{}, ports.Stats{}, errNotConfigured
	}
	flat := b.ToFlat()
	if ok, _ := grid.ValidateGivens(flat); !ok {
		return solver.CountResult{}, ports.Stats{}, errInvalidGivens
	}
	s := grid.New(flat)
	return u.Solver.CountSolutions(ctx, s, maxCount, maxWork)
}

// EnumerateSolutions materializes up to maxCount completions of a board.
func (u *Service) EnumerateSolutions(ctx context.Context, b domain.Board, maxCount int, maxWork int64) ([]grid.Completion, solver.EnumerateResult, ports.Stats, error) {
	if u.Solver == nil {
		return nil, solver.EnumerateResult{}, ports.Stats{}, errNotConfigured
	}
	flat := b.ToFlat()
	if ok, _ := grid.ValidateGivens(flat); !ok {
		return nil, solver.EnumerateResult{}, ports.Stats{}, errInvalidGivens
	}
	s := grid.New(flat)
	return u.Solver.EnumerateSolutions(ctx, s, maxCount, maxWork)
}

// Analyze runs the full decide-and-enumerate pipeline: it enumerates
// completions, then asks the analyzer whether the position is winning
// for the player to move.
func (u *Service) Analyze(ctx context.Context, b domain.Board, maxCompletions int, maxWinningTurns int, maxWork int64) (analyzer.AnalyzeResult, ports.Stats, error) {
	if u.Analyzer == nil || u.Solver == nil {
		return analyzer.AnalyzeResult{}, ports.Stats{}, errNotConfigured
	}
	flat := b.ToFlat()
	if ok, _ := grid.ValidateGivens(flat); !ok {
		return analyzer.AnalyzeResult{}, ports.Stats{}, errInvalidGivens
	}
	s := grid.New(flat)
	completions, _, _, err := u.Solver.EnumerateSolutions(ctx, s, maxCompletions, maxWork)
	if err != nil {
		return analyzer.AnalyzeResult{}, ports.Stats{}, err
	}
	if len(completions) == 0 {
		return analyzer.AnalyzeResult{}, ports.Stats{}, errors.New("usecase: board has no completions")
	}
	return u.Analyzer.Analyze(ctx, flat, completions, maxWinningTurns, maxWork)
}
