package cp

import (
	"strings"
	"testing"

	"github.com/arjunmehta/sudoku-aco/board"
	"github.com/arjunmehta/sudoku-aco/valueset"
)

func TestNewBoardRejectsBadLength(t *testing.T) {
	if _, err := NewBoard("123"); err == nil {
		t.Fatal("expected an error for an unsupported puzzle length")
	}
}

func TestNewBoardFixesGivenCell(t *testing.T) {
	puzzle := "5" + strings.Repeat(".", 80)
	b, err := NewBoard(puzzle)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if !b.Cell(0).Fixed() || b.Cell(0).Index() != 4 {
		t.Fatalf("cell 0 = %v, want fixed digit 5", b.Cell(0))
	}
	// Every peer of cell 0 (its row, column, and box) must have had digit 5
	// eliminated as a candidate by propagation.
	for j := 1; j < b.NumUnits(); j++ {
		peer := b.RowCell(0, j)
		if b.Cell(peer).Has(5) {
			t.Fatalf("row peer %d should have lost digit 5 as a candidate", peer)
		}
	}
}

// A row with eight of nine digits already fixed must propagate the last
// cell to the missing digit via Rule1.
func TestRule1ElimationFixesLastCell(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("12345678.")
	sb.WriteString(strings.Repeat(".", 72))
	b, err := NewBoard(sb.String())
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	last := b.RowCell(0, 8)
	if !b.Cell(last).Fixed() || b.Cell(last).Index() != 8 {
		t.Fatalf("last row cell = %v, want fixed digit 9", b.Cell(last))
	}
}

func TestSetCellAndPropagateSkipsAlreadyFixedCell(t *testing.T) {
	b := board.New(3)
	b.SetDirect(0, valueset.Single(9, 1))
	b.IncrementFixedCells()
	before := b.FixedCellCount()
	SetCellAndPropagate(b, 0, valueset.Single(9, 2))
	if b.FixedCellCount() != before {
		t.Fatalf("SetCellAndPropagate should no-op on an already-fixed cell, fixed count changed from %d to %d", before, b.FixedCellCount())
	}
	if b.Cell(0).Index() != 0 {
		t.Fatalf("SetCellAndPropagate should not overwrite an already-fixed cell's value")
	}
}

func TestTimingAccumulatesDuringInitialPhase(t *testing.T) {
	ResetTiming()
	if _, err := NewBoard(strings.Repeat(".", 81)); err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if InitialCPTime() < 0 {
		t.Fatal("InitialCPTime should never be negative")
	}
	if AntCPTime() != 0 {
		t.Fatalf("AntCPTime should be untouched by initial construction, got %f", AntCPTime())
	}
}

func TestTimingAccumulatesOutsideInitialPhase(t *testing.T) {
	ResetTiming()
	b := board.New(3)
	SetCellAndPropagate(b, 0, valueset.Single(9, 1))
	if CPCallCount() != 1 {
		t.Fatalf("CPCallCount() = %d, want 1", CPCallCount())
	}
}
