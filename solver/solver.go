// Package solver is the uniform façade over the three solving algorithms:
// single-threaded ACS, backtracking, and parallel ACS. It dispatches by
// algorithm number, times the run, and reports CP timing alongside the
// solver's own result.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/arjunmehta/sudoku-aco/backtrack"
	"github.com/arjunmehta/sudoku-aco/board"
	"github.com/arjunmehta/sudoku-aco/colony"
	"github.com/arjunmehta/sudoku-aco/coordinator"
	"github.com/arjunmehta/sudoku-aco/cp"
)

// Algorithm numbers, matching the CLI's --alg flag exactly.
const (
	AlgorithmACS         = 0
	AlgorithmBacktrack   = 1
	AlgorithmParallelACS = 2
)

// Options carries every tunable the CLI exposes, regardless of which
// algorithm ends up consuming it.
type Options struct {
	Algorithm      int
	NumAnts        int
	NumSubcolonies int
	Q0             float64
	Rho            float64
	Evap           float64
	Seed           int64
	TimeLimit      time.Duration
}

// Outcome is the algorithm-agnostic result of a solve attempt.
type Outcome struct {
	Solution       *board.Board
	Success        bool
	ElapsedSeconds float64
	Iterations     int
	Communication  bool
}

// Solve dispatches to the algorithm named by opts.Algorithm and runs it to
// completion against puzzle (the post-initial-CP board). Callers should
// call cp.ResetTiming() before constructing puzzle if they want a clean CP
// timing report for this run alone.
func Solve(ctx context.Context, puzzle *board.Board, opts Options) (Outcome, error) {
	start := time.Now()

	switch opts.Algorithm {
	case AlgorithmACS:
		cfg := colony.Config{
			NumAnts:  opts.NumAnts,
			Q0:       opts.Q0,
			Rho:      float32(opts.Rho),
			BestEvap: opts.Evap,
			MaxTime:  opts.TimeLimit,
			Seed:     opts.Seed,
		}
		c := colony.New(cfg, puzzle)
		c.Run()
		return Outcome{
			Solution:       c.BestSol().Clone(),
			Success:        c.Solved(),
			ElapsedSeconds: time.Since(start).Seconds(),
			Iterations:     c.CurrentIteration(),
		}, nil

	case AlgorithmBacktrack:
		solution, ok := backtrack.Solve(ctx, puzzle, opts.TimeLimit)
		return Outcome{
			Solution:       solution,
			Success:        ok,
			ElapsedSeconds: time.Since(start).Seconds(),
		}, nil

	case AlgorithmParallelACS:
		cfg := coordinator.Config{
			NumSubcolonies: opts.NumSubcolonies,
			MaxTime:        opts.TimeLimit,
			Colony: colony.Config{
				NumAnts:  opts.NumAnts,
				Q0:       opts.Q0,
				Rho:      float32(opts.Rho),
				BestEvap: opts.Evap,
				Seed:     opts.Seed,
			},
		}
		co := coordinator.New(cfg, puzzle)
		co.Run()
		sol, score, iterations := co.Result()
		return Outcome{
			Solution:       sol,
			Success:        score == puzzle.CellCount(),
			ElapsedSeconds: time.Since(start).Seconds(),
			Iterations:     iterations,
			Communication:  co.CommunicationOccurred(),
		}, nil

	default:
		return Outcome{}, fmt.Errorf("solver: invalid algorithm: %d", opts.Algorithm)
	}
}

// CPTiming reports the process-wide CP timing counters accumulated during
// the most recent run, averaging ant-phase time across numThreads the way
// the parallel algorithm's per-colony CP work is divided for reporting.
type CPTiming struct {
	Initial  float64
	AntTotal float64
	AntAvg   float64
	Calls    int64
	Total    float64
}

// ReportCPTiming reads the global CP timing counters.
func ReportCPTiming(numThreads int) CPTiming {
	if numThreads <= 0 {
		numThreads = 1
	}
	initial := cp.InitialCPTime()
	antTotal := cp.AntCPTime()
	return CPTiming{
		Initial:  initial,
		AntTotal: antTotal,
		AntAvg:   antTotal / float64(numThreads),
		Calls:    cp.CPCallCount(),
		Total:    initial + antTotal,
	}
}

// DefaultTimeout returns the cell-count-based default wall-clock budget
// the CLI falls back to when --timeout isn't given.
func DefaultTimeout(numCells int) time.Duration {
	switch numCells {
	case 81:
		return 5 * time.Second
	case 256:
		return 20 * time.Second
	case 625:
		return 120 * time.Second
	default:
		return 120 * time.Second
	}
}
