package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"nonet/internal/analyzer"
	"nonet/internal/counters"
	"nonet/internal/grid"
	"nonet/internal/memo"
	"nonet/internal/solver"
)

func newBatchCommand() *cobra.Command {
	var (
		maxWork         int64
		maxCompletions  int
		maxWinningTurns int
		concurrency     int
	)
	cmd := &cobra.Command{
		Use:   "batch [puzzle-file...]",
		Short: "Analyze each given 81-digit puzzle file independently and print the outcome",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args, maxCompletions, maxWinningTurns, maxWork, concurrency)
		},
	}
	cmd.Flags().Int64Var(&maxWork, "max-work", 100_000_000, "maximum work per puzzle's analysis")
	cmd.Flags().IntVar(&maxCompletions, "max-completions", 100_000, "maximum number of solutions to enumerate per puzzle")
	cmd.Flags().IntVar(&maxWinningTurns, "max-winning-turns", 1, "maximum number of optimal turns to collect when winning")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of puzzle files analyzed at once")
	return cmd
}

type batchResult struct {
	path    string
	outcome string
	err     error
}

// runBatch analyzes every path concurrently, one Analyzer (and thus one
// memo/counters pair) per file — this parallelizes across independent
// games, never inside a single Analyze call's recursive search.
func runBatch(paths []string, maxCompletions, maxWinningTurns int, maxWork int64, concurrency int) error {
	results := make([]batchResult, len(paths))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = analyzeFile(path, maxCompletions, maxWinningTurns, maxWork)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stdout, "%s\tERROR\t%s\n", r.path, r.err)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s\t%s\n", r.path, r.outcome)
	}
	return nil
}

func analyzeFile(path string, maxCompletions, maxWinningTurns int, maxWork int64) batchResult {
	givens, err := readGivens(path)
	if err != nil {
		return batchResult{path: path, err: err}
	}
	if ok, conflicts := grid.ValidateGivens(givens); !ok {
		return batchResult{path: path, err: fmt.Errorf("%d conflicting cell(s)", len(conflicts))}
	}

	s := grid.New(givens)
	completions, enumRes := solver.EnumerateSolutions(s, maxCompletions, maxWork, nil)
	if !enumRes.Success || enumRes.ReachedWorkLimit {
		return batchResult{path: path, err: fmt.Errorf("could not enumerate all completions within budget")}
	}
	if len(completions) == 0 {
		return batchResult{path: path, err: fmt.Errorf("no completions")}
	}

	az := analyzer.New(memo.NewReal(), counters.New(), analyzer.Options{
		ParityReduction:            true,
		MaximizeSolutionsRemaining: true,
		Logger:                     logger,
	})
	res := az.Analyze(givens, completions, maxWinningTurns, maxWork)
	if res.Outcome == nil {
		return batchResult{path: path, err: fmt.Errorf("analysis aborted by work budget")}
	}
	return batchResult{path: path, outcome: res.Outcome.String()}
}

// readGivens reads an 81-character digit string (0 for empty) from
// path, tolerating surrounding whitespace/newlines.
func readGivens(path string) ([81]uint8, error) {
	var givens [81]uint8
	f, err := os.Open(path)
	if err != nil {
		return givens, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var sb strings.Builder
	for scanner.Scan() {
		sb.WriteString(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return givens, err
	}
	line := sb.String()
	if len(line) != 81 {
		return givens, fmt.Errorf("expected 81 digits, got %d", len(line))
	}
	for i, ch := range []byte(line) {
		if ch == '.' || ch == '0' {
			continue
		}
		if ch < '1' || ch > '9' {
			return givens, fmt.Errorf("invalid character %q at position %d", ch, i)
		}
		givens[i] = ch - '0'
	}
	return givens, nil
}
