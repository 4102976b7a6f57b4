package subcolony

import (
	"math"
	"strings"
	"testing"

	"github.com/arjunmehta/sudoku-aco/colony"
	"github.com/arjunmehta/sudoku-aco/cp"
	"github.com/arjunmehta/sudoku-aco/valueset"
)

func TestReceiveSlotsAreIndependentCopies(t *testing.T) {
	puzzle, err := cp.NewBoard(strings.Repeat(".", 81))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	s := New(colony.Config{Seed: 1, NumAnts: 2}, puzzle, 0)

	sent := puzzle.Clone()
	sent.SetDirect(0, valueset.Single(9, 3))
	s.ReceiveIterationBest(sent, 1)

	sent.SetDirect(0, valueset.Single(9, 7))
	if s.receivedIterationBest.Cell(0).Index() != 2 {
		t.Fatal("ReceiveIterationBest should store an independent copy, not alias the sender's board")
	}
}

func TestThreeSourceUpdateSkipsUncontributedCells(t *testing.T) {
	puzzle, err := cp.NewBoard(strings.Repeat(".", 81))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	s := New(colony.Config{Seed: 1, NumAnts: 2}, puzzle, 0)

	before := s.PherAt(0, 1)
	s.ThreeSourceUpdate() // every score is 0, so nothing should evaporate
	if got := s.PherAt(0, 1); got != before {
		t.Fatalf("PherAt(0,1) changed from %v to %v despite no contributing source", before, got)
	}
}

func TestScoreToPherDeltaIsInfiniteForACompleteAssignment(t *testing.T) {
	if got := scoreToPherDelta(81, 81); !math.IsInf(float64(got), 1) {
		t.Fatalf("scoreToPherDelta(81, 81) = %v, want +Inf", got)
	}
	if got := scoreToPherDelta(81, 80); math.IsInf(float64(got), 1) {
		t.Fatalf("scoreToPherDelta(81, 80) = %v, want a finite value", got)
	}
	if got := scoreToPherDelta(81, 0); got != 0 {
		t.Fatalf("scoreToPherDelta(81, 0) = %v, want 0", got)
	}
}

func TestThreeSourceUpdateDepositsFromLocalIterationBest(t *testing.T) {
	puzzle, err := cp.NewBoard(strings.Repeat(".", 81))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	s := New(colony.Config{Seed: 1, NumAnts: 2}, puzzle, 0)
	s.ConstructIteration()

	s.ThreeSourceUpdate()

	cell := s.IterationBest().Cell(0)
	if !cell.Fixed() {
		t.Skip("cell 0 wasn't fixed by this random construction; nothing to assert")
	}
	digit := cell.Index() + 1
	if got := s.PherAt(0, digit); got <= 0 {
		t.Fatalf("PherAt(0,%d) = %v, want a positive deposit from the local iteration-best", digit, got)
	}
}
