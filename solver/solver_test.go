package solver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/arjunmehta/sudoku-aco/board"
	"github.com/arjunmehta/sudoku-aco/cp"
)

func TestSolveRejectsUnknownAlgorithm(t *testing.T) {
	puzzle, err := cp.NewBoard(strings.Repeat(".", 81))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if _, err := Solve(context.Background(), puzzle, Options{Algorithm: 99}); err == nil {
		t.Fatal("expected an error for an unrecognized algorithm number")
	}
}

func TestSolveBacktrackingSolvesAlreadyComplete(t *testing.T) {
	solved := board.GenerateSolved(3, 1)
	var sb strings.Builder
	for i := 0; i < solved.CellCount(); i++ {
		sb.WriteString(solved.Cell(i).String(board.Alphabet(3)))
	}
	puzzle, err := cp.NewBoard(sb.String())
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	outcome, err := Solve(context.Background(), puzzle, Options{Algorithm: AlgorithmBacktrack, TimeLimit: time.Second})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !outcome.Success {
		t.Fatal("an already-complete puzzle should solve immediately via backtracking")
	}
}

func TestDefaultTimeoutMatchesCellCountTable(t *testing.T) {
	cases := map[int]time.Duration{81: 5 * time.Second, 256: 20 * time.Second, 625: 120 * time.Second, 4096: 120 * time.Second}
	for numCells, want := range cases {
		if got := DefaultTimeout(numCells); got != want {
			t.Errorf("DefaultTimeout(%d) = %v, want %v", numCells, got, want)
		}
	}
}

func TestReportCPTimingDividesAntTimeAcrossThreads(t *testing.T) {
	cp.ResetTiming()
	if _, err := cp.NewBoard(strings.Repeat(".", 81)); err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	report := ReportCPTiming(4)
	if report.AntAvg != report.AntTotal/4 {
		t.Fatalf("AntAvg = %v, want AntTotal/4 = %v", report.AntAvg, report.AntTotal/4)
	}
	if report.Total != report.Initial+report.AntTotal {
		t.Fatalf("Total = %v, want Initial+AntTotal = %v", report.Total, report.Initial+report.AntTotal)
	}
}
