// Command sudokusolver loads a Sudoku puzzle, runs one of the three
// solving algorithms against it, and reports the result as plain text or
// JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/golang/glog"

	"github.com/arjunmehta/sudoku-aco/cp"
	"github.com/arjunmehta/sudoku-aco/output"
	"github.com/arjunmehta/sudoku-aco/puzzleio"
	"github.com/arjunmehta/sudoku-aco/solver"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		alg         = flag.Int("alg", 0, "0 = single-thread ACS, 1 = backtracking, 2 = parallel ACS")
		puzzleFlag  = flag.String("puzzle", "", "inline puzzle in character form")
		fileFlag    = flag.String("file", "", "path to a text puzzle file")
		blank       = flag.Bool("blank", false, "generate an empty puzzle of the given order")
		order       = flag.Int("order", 0, "puzzle order k, only used with --blank")
		timeoutSecs = flag.Int("timeout", -1, "max wall time in seconds (default depends on puzzle size)")
		ants        = flag.Int("ants", 10, "ants per colony")
		subcolonies = flag.Int("subcolonies", 4, "sub-colony count (alg=2)")
		q0          = flag.Float64("q0", 0.9, "pseudo-random-proportional threshold")
		rho         = flag.Float64("rho", 0.9, "evaporation constant")
		evap        = flag.Float64("evap", 0.005, "best-pheromone decay per non-communication iteration")
		verbose     = flag.Bool("verbose", false, "verbose text output")
		showInitial = flag.Bool("showinitial", false, "print the board after initial constraint propagation")
		jsonOutput  = flag.Bool("json", false, "emit a single-line JSON result")
	)
	flag.Parse()

	puzzleString, err := resolvePuzzle(*blank, *order, *puzzleFlag, *fileFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 0
	}

	cp.ResetTiming()
	puzzle, err := cp.NewBoard(puzzleString)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 0
	}

	if *showInitial {
		fmt.Println(puzzle.AsString(false, true))
	}

	timeout := resolveTimeout(*timeoutSecs, puzzle.CellCount())

	opts := solver.Options{
		Algorithm:      *alg,
		NumAnts:        *ants,
		NumSubcolonies: *subcolonies,
		Q0:             *q0,
		Rho:            *rho,
		Evap:           *evap,
		TimeLimit:      timeout,
	}
	if opts.Algorithm < 0 || opts.Algorithm > 2 {
		fmt.Fprintf(os.Stderr, "Invalid algorithm: %d. Use 0 (single-thread ACS), 1 (backtracking), or 2 (parallel ACS).\n", opts.Algorithm)
		return 1
	}

	outcome, err := solver.Solve(context.Background(), puzzle, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	errorMessage := ""
	if outcome.Success && !puzzle.CheckSolution(outcome.Solution) {
		errorMessage = "solution not valid"
		log.Errorf("solution not valid: alg=%d fixed=%d", opts.Algorithm, outcome.Solution.FixedCellCount())
		outcome.Success = false
	}

	numThreads := 1
	if opts.Algorithm == solver.AlgorithmParallelACS {
		numThreads = opts.NumSubcolonies
	}
	timing := solver.ReportCPTiming(numThreads)

	result := output.Result{
		Success:       outcome.Success,
		Algorithm:     opts.Algorithm,
		TimeSeconds:   outcome.ElapsedSeconds,
		Iterations:    outcome.Iterations,
		Communication: outcome.Communication,
		Solution:      outcome.Solution.NumberString(),
		Error:         errorMessage,
		CPInitial:     timing.Initial,
		CPAntAvg:      timing.AntAvg,
		CPAntTotal:    timing.AntTotal,
		CPCalls:       timing.Calls,
		CPTotal:       timing.Total,
	}

	if *jsonOutput {
		text, err := result.JSON()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(text)
		return 0
	}

	fmt.Print(result.Text(*verbose))
	return 0
}

func resolvePuzzle(blank bool, order int, puzzleFlag, fileFlag string) (string, error) {
	if blank && order != 0 {
		return puzzleio.Blank(order), nil
	}
	if puzzleFlag != "" {
		return puzzleFlag, nil
	}
	if fileFlag != "" {
		puzzle, err := puzzleio.ReadFile(fileFlag)
		if err != nil {
			return "", err
		}
		return puzzle, nil
	}
	return "", fmt.Errorf("no puzzle specified")
}

func resolveTimeout(timeoutSecs, numCells int) time.Duration {
	if timeoutSecs > 0 {
		return time.Duration(timeoutSecs) * time.Second
	}
	return solver.DefaultTimeout(numCells)
}
