package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"lukechampine.com/frand"

	"nonet/internal/analyzer"
	"nonet/internal/counters"
	"nonet/internal/fallback"
	"nonet/internal/grid"
	"nonet/internal/memo"
	"nonet/internal/protocol"
	"nonet/internal/solver"
	"nonet/internal/turnlog"
	"nonet/internal/turntimer"
)

func newPlayCommand() *cobra.Command {
	var (
		enumerateMaxCount int
		enumerateMaxWork  int64
		analyzeMaxCount   int
		analyzeMaxWork    int64
		timeLimitSec      int
		analyzeBatchSize  int64
		parityReduction   bool
		maximizeRemaining bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game over the line-oriented move protocol on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return playGame(playConfig{
				enumerateMaxCount: enumerateMaxCount,
				enumerateMaxWork:  enumerateMaxWork,
				analyzeMaxCount:   analyzeMaxCount,
				analyzeMaxWork:    analyzeMaxWork,
				timeLimit:         time.Duration(timeLimitSec) * time.Second,
				analyzeBatchSize:  analyzeBatchSize,
				parityReduction:   parityReduction,
				maximizeRemaining: maximizeRemaining,
			})
		},
	}
	cmd.Flags().IntVar(&enumerateMaxCount, "enumerate-max-count", 200_000, "maximum number of solutions to enumerate")
	cmd.Flags().Int64Var(&enumerateMaxWork, "enumerate-max-work", 20_000_000, "maximum recursive work while enumerating solutions")
	cmd.Flags().IntVar(&analyzeMaxCount, "analyze-max-count", 100_000, "analysis only starts once the solution count is at or below this")
	cmd.Flags().Int64Var(&analyzeMaxWork, "analyze-max-work", 100_000_000, "maximum work per analysis when no time limit is given")
	cmd.Flags().IntVar(&timeLimitSec, "time-limit", 27, "time limit in seconds, 0 disables time-based pacing")
	cmd.Flags().Int64Var(&analyzeBatchSize, "analyze-batch-size", 10_000_000, "work done per Analyze call when time-limited")
	cmd.Flags().BoolVar(&parityReduction, "parity-reduction", true, "enable the odd-parity inferred-move shortcut")
	cmd.Flags().BoolVar(&maximizeRemaining, "maximize-remaining", true, "on loss, prefer moves leaving the most solutions remaining")
	return cmd
}

type playConfig struct {
	enumerateMaxCount int
	enumerateMaxWork  int64
	analyzeMaxCount   int
	analyzeMaxWork    int64
	timeLimit         time.Duration
	analyzeBatchSize  int64
	parityReduction   bool
	maximizeRemaining bool
}

// playGame runs one game against the referee protocol on stdin/stdout,
// ported from original_source/src/player.cc's PlayGame.
func playGame(cfg playConfig) error {
	in := bufio.NewReader(os.Stdin)

	first, err := readWord(in)
	if err != nil {
		return err
	}
	myPlayer := 1
	if first == "Start" {
		myPlayer = 0
	}

	totalTimer := &turntimer.Timer{}
	totalTimer.Resume()

	state := grid.New([81]uint8{})
	var solutions []grid.Completion
	solutionsComplete := false
	winningState := false
	analyzeMaxCount := cfg.analyzeMaxCount

	mem := memo.NewReal()
	cnt := counters.New()
	az := analyzer.New(mem, cnt, analyzer.Options{
		ParityReduction:            cfg.parityReduction,
		MaximizeSolutionsRemaining: cfg.maximizeRemaining,
		Logger:                     logger,
	})
	tracker := turnlog.New(logger)

	playMove := func(m grid.Move) {
		state.Play(m)
		if len(solutions) == 0 {
			return
		}
		if !solutionsComplete {
			solutions = nil
			return
		}
		next := solutions[:0:0]
		for _, c := range solutions {
			if c[m.Pos] == uint8(m.Digit) {
				next = append(next, c)
			}
		}
		if len(next) == len(solutions) {
			logger.Warn().Str("move", protocol.FormatMove(m)).Msg("non-reducing move")
		}
		solutions = next
	}

	input := first
	for turn := 0; ; turn++ {
		if turn%2 == myPlayer {
			logger.Info().Int("turn", turn).Str("state", state.DebugString()).Dur("elapsed", totalTimer.Elapsed()).Msg("my turn")

			if !solutionsComplete {
				completions, res := solver.EnumerateSolutions(state, cfg.enumerateMaxCount, cfg.enumerateMaxWork, frand.Shuffle)
				solutions = completions
				if res.Success && !res.ReachedWorkLimit {
					solutionsComplete = true
					if len(solutions) == 0 {
						return fmt.Errorf("play: no solutions remain")
					}
				} else if len(solutions) == 0 {
					logger.Warn().Msg("no solutions found (may still exist)")
				}
			}

			var out analyzer.Turn
			switch {
			case len(solutions) == 0:
				out = analyzer.Turn{HasMove: true, Move: fallback.PickRandomMove(state, frand.Intn)}
			case !solutionsComplete || len(solutions) > analyzeMaxCount:
				out = analyzer.Turn{HasMove: true, Move: fallback.PickMoveIncomplete(
					state, cfg.maximizeRemaining, cfg.analyzeMaxWork, countSolutionsAdapter, frand.Intn)}
			default:
				res := runAnalysis(az, state, solutions, cfg, cfg.timeLimit-totalTimer.Elapsed())
				if res.Outcome == nil {
					logger.Warn().Msg("analysis aborted, falling back to heuristic move")
					out = analyzer.Turn{HasMove: true, Move: fallback.PickMoveIncomplete(
						state, cfg.maximizeRemaining, cfg.analyzeMaxWork, countSolutionsAdapter, frand.Intn)}
					analyzeMaxCount = len(solutions) - 1
				} else {
					out = res.OptimalTurns[frand.Intn(len(res.OptimalTurns))]
					tracker.Observe(*res.Outcome)
					winningState = *res.Outcome != analyzer.Loss
					_ = winningState
				}
			}

			if out.HasMove {
				if !state.CanPlay(out.Move) {
					return fmt.Errorf("play: selected move is invalid")
				}
				playMove(out.Move)
			}
			totalTimer.Pause()
			if err := protocol.WriteTurn(os.Stdout, out); err != nil {
				return err
			}
		} else {
			if turn > 0 {
				input, err = readWord(in)
				if err != nil {
					return err
				}
				totalTimer.Resume()
			}
			m, err := protocol.ParseMove(input)
			if err != nil {
				return fmt.Errorf("play: could not parse opponent move %q: %w", input, err)
			}
			if !state.CanPlay(m) {
				return fmt.Errorf("play: invalid opponent move %q", input)
			}
			playMove(m)
		}
	}
}

func countSolutionsAdapter(s *grid.State, maxCount int, maxWork int64) int {
	return solver.CountSolutions(s, maxCount, maxWork).Count
}

func runAnalysis(az *analyzer.Analyzer, state *grid.State, solutions []grid.Completion, cfg playConfig, remaining time.Duration) analyzer.AnalyzeResult {
	givens := state.Digits()
	if cfg.timeLimit <= 0 {
		return az.Analyze(givens, solutions, 1, cfg.analyzeMaxWork)
	}
	deadline := time.Now().Add(remaining / 3)
	for {
		res := az.Analyze(givens, solutions, 1, cfg.analyzeBatchSize)
		if res.Outcome != nil || time.Now().After(deadline) {
			return res
		}
		logger.Debug().Msg("continuing analysis")
	}
}

func readWord(r *bufio.Reader) (string, error) {
	var word []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if len(word) > 0 {
				break
			}
			return "", err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			if len(word) == 0 {
				continue
			}
			break
		}
		word = append(word, b)
	}
	s := string(word)
	if s == "Quit" {
		return "", fmt.Errorf("play: %w", protocol.ErrQuit)
	}
	return s, nil
}
