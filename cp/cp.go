// Package cp implements the two classic Sudoku elimination rules — naked
// single and hidden single — and the set-and-propagate recursion that
// drives them across a board.Board, run once on every initially-fixed cell
// before the ant colony ever sees the puzzle and again after every cell an
// ant sets.
package cp

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/arjunmehta/sudoku-aco/board"
	"github.com/arjunmehta/sudoku-aco/valueset"
)

// Timing statistics are process-global, matching the original cost-benefit
// instrumentation: propagation during initial board construction is billed
// separately from propagation triggered later by an ant's placements, even
// though both run the same Rule1/Rule2 code.
var (
	initialCPTimeBits uint64
	antCPTimeBits     uint64
	cpCallCount       int64
	inInitialCP       atomic.Bool
)

// ResetTiming zeroes the global CP timing counters. Call this once before a
// solve run so timing reflects that run alone.
func ResetTiming() {
	atomic.StoreUint64(&initialCPTimeBits, 0)
	atomic.StoreUint64(&antCPTimeBits, 0)
	atomic.StoreInt64(&cpCallCount, 0)
	inInitialCP.Store(false)
}

// InitialCPTime returns the accumulated seconds spent in propagation during
// initial board construction.
func InitialCPTime() float64 {
	return math.Float64frombits(atomic.LoadUint64(&initialCPTimeBits))
}

// AntCPTime returns the accumulated seconds spent in propagation triggered
// by ant placements after the initial phase.
func AntCPTime() float64 {
	return math.Float64frombits(atomic.LoadUint64(&antCPTimeBits))
}

// CPCallCount returns the number of SetCellAndPropagate calls made outside
// the initial phase that fixed a cell; a call on an already-fixed cell is
// not counted.
func CPCallCount() int64 {
	return atomic.LoadInt64(&cpCallCount)
}

func addTime(elapsed time.Duration) {
	addr := &antCPTimeBits
	if inInitialCP.Load() {
		addr = &initialCPTimeBits
	}
	delta := elapsed.Seconds()
	for {
		old := atomic.LoadUint64(addr)
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(addr, old, next) {
			return
		}
	}
}

// NewBoard parses a character-form puzzle string and runs the full initial
// propagation pass over every given cell, exactly as a fresh puzzle is
// loaded before the colony ever touches it.
func NewBoard(puzzle string) (*board.Board, error) {
	order, ok := board.OrderForLength(len(puzzle))
	if !ok {
		return nil, fmt.Errorf("cp: invalid puzzle length %d", len(puzzle))
	}

	b := board.New(order)
	alphabet := board.Alphabet(order)
	index := make(map[byte]int, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		index[alphabet[i]] = i
	}

	inInitialCP.Store(true)
	defer inInitialCP.Store(false)

	for i := 0; i < b.CellCount(); i++ {
		c := puzzle[i]
		if c == '.' {
			continue
		}
		pos, known := index[byte(c)]
		if !known {
			return nil, fmt.Errorf("cp: character %q not valid for order %d", c, order)
		}
		SetCellAndPropagate(b, i, valueset.Single(b.NumUnits(), pos+1))
	}
	return b, nil
}

// Rule1Elimination removes, from the cell at cellIndex, every value already
// fixed elsewhere in its row, column, or box. If that leaves exactly one
// candidate, the cell is fixed (and further propagation is triggered) and
// Rule1Elimination reports true.
func Rule1Elimination(b *board.Board, cellIndex int) bool {
	start := time.Now()
	cell := b.Cell(cellIndex)
	if cell.Empty() || cell.Fixed() {
		addTime(time.Since(start))
		return false
	}

	numUnits := b.NumUnits()
	iBox := b.BoxForCell(cellIndex)
	iCol := b.ColForCell(cellIndex)
	iRow := b.RowForCell(cellIndex)

	boxFixed := valueset.New(numUnits)
	colFixed := valueset.New(numUnits)
	rowFixed := valueset.New(numUnits)

	for j := 0; j < numUnits; j++ {
		if k := b.BoxCell(iBox, j); k != cellIndex && b.Cell(k).Fixed() {
			boxFixed = boxFixed.Union(b.Cell(k))
		}
		if k := b.ColCell(iCol, j); k != cellIndex && b.Cell(k).Fixed() {
			colFixed = colFixed.Union(b.Cell(k))
		}
		if k := b.RowCell(iRow, j); k != cellIndex && b.Cell(k).Fixed() {
			rowFixed = rowFixed.Union(b.Cell(k))
		}
	}

	fixed := rowFixed.Union(colFixed).Union(boxFixed)
	remaining := cell.Xor(cell.Intersect(fixed))
	addTime(time.Since(start))

	if remaining.Fixed() {
		SetCellAndPropagate(b, cellIndex, remaining)
		return true
	}
	b.SetDirect(cellIndex, remaining)
	return false
}

// Rule2HiddenSingle checks whether any candidate of the cell at cellIndex is
// excluded from every other cell in its row, column, or box — a value that
// can only go here. If so the cell is fixed and Rule2HiddenSingle reports
// true.
func Rule2HiddenSingle(b *board.Board, cellIndex int) bool {
	start := time.Now()
	cell := b.Cell(cellIndex)
	if cell.Empty() || cell.Fixed() {
		addTime(time.Since(start))
		return false
	}

	numUnits := b.NumUnits()
	iBox := b.BoxForCell(cellIndex)
	iCol := b.ColForCell(cellIndex)
	iRow := b.RowForCell(cellIndex)

	boxAll := valueset.New(numUnits)
	colAll := valueset.New(numUnits)
	rowAll := valueset.New(numUnits)

	for j := 0; j < numUnits; j++ {
		if k := b.BoxCell(iBox, j); k != cellIndex {
			boxAll = boxAll.Union(b.Cell(k))
		}
		if k := b.ColCell(iCol, j); k != cellIndex {
			colAll = colAll.Union(b.Cell(k))
		}
		if k := b.RowCell(iRow, j); k != cellIndex {
			rowAll = rowAll.Union(b.Cell(k))
		}
	}

	addTime(time.Since(start))

	if only := cell.Diff(rowAll); only.Fixed() {
		SetCellAndPropagate(b, cellIndex, only)
		return true
	}
	if only := cell.Diff(colAll); only.Fixed() {
		SetCellAndPropagate(b, cellIndex, only)
		return true
	}
	if only := cell.Diff(boxAll); only.Fixed() {
		SetCellAndPropagate(b, cellIndex, only)
		return true
	}
	return false
}

// PropagateConstraints applies Rule1 then, if it didn't fix the cell,
// Rule2 to the cell at cellIndex, marking the cell infeasible if it ends up
// with no candidates left.
func PropagateConstraints(b *board.Board, cellIndex int) {
	cell := b.Cell(cellIndex)
	if cell.Empty() || cell.Fixed() {
		return
	}
	if Rule1Elimination(b, cellIndex) {
		return
	}
	Rule2HiddenSingle(b, cellIndex)
	if b.Cell(cellIndex).Empty() {
		b.IncrementInfeasible()
	}
}

// SetCellAndPropagate fixes the cell at cellIndex to value and propagates
// that fact to every peer cell in its row, column, and box. This is the
// single entry point both initial board construction and ant placement use
// to mutate a board.
func SetCellAndPropagate(b *board.Board, cellIndex int, value valueset.ValueSet) {
	if b.Cell(cellIndex).Fixed() {
		return
	}

	b.SetDirect(cellIndex, value)
	b.IncrementFixedCells()

	if !inInitialCP.Load() {
		atomic.AddInt64(&cpCallCount, 1)
	}

	numUnits := b.NumUnits()
	iBox := b.BoxForCell(cellIndex)
	iCol := b.ColForCell(cellIndex)
	iRow := b.RowForCell(cellIndex)

	for j := 0; j < numUnits; j++ {
		if k := b.BoxCell(iBox, j); k != cellIndex {
			PropagateConstraints(b, k)
		}
		if k := b.ColCell(iCol, j); k != cellIndex {
			PropagateConstraints(b, k)
		}
		if k := b.RowCell(iRow, j); k != cellIndex {
			PropagateConstraints(b, k)
		}
	}
}
