package backtrack

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/arjunmehta/sudoku-aco/board"
	"github.com/arjunmehta/sudoku-aco/cp"
)

func TestSolveFindsSolutionForEasyPuzzle(t *testing.T) {
	// A blank board: no givens, so any consistent completion is accepted.
	puzzle := strings.Repeat(".", 81)
	b, err := cp.NewBoard(puzzle)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	solution, ok := Solve(context.Background(), b, 5*time.Second)
	if !ok {
		t.Fatal("Solve should find a solution for a blank board")
	}
	if !b.CheckSolution(solution) {
		t.Fatal("CheckSolution rejected backtrack's own output")
	}
}

func TestSolveRespectsAlreadySolvedInput(t *testing.T) {
	solved := board.GenerateSolved(3, 1)
	var sb strings.Builder
	for i := 0; i < solved.CellCount(); i++ {
		sb.WriteString(solved.Cell(i).String(board.Alphabet(3)))
	}
	puzzle := sb.String()
	b, err := cp.NewBoard(puzzle)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	solution, ok := Solve(context.Background(), b, time.Second)
	if !ok {
		t.Fatal("Solve should immediately accept an already-complete board")
	}
	if !b.CheckSolution(solution) {
		t.Fatal("CheckSolution rejected an already-solved board echoed back")
	}
}

func TestSolveReturnsFalseWhenContextAlreadyCanceled(t *testing.T) {
	b, err := cp.NewBoard(strings.Repeat(".", 81))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := Solve(ctx, b, time.Second); ok {
		t.Fatal("Solve should not succeed once its context is already canceled")
	}
}
