package board

import (
	"math/rand"

	"github.com/arjunmehta/sudoku-aco/valueset"
)

// GenerateSolved returns a randomly generated, fully solved board of the
// given order, for use as a test fixture across the rest of the module.
// It seeds the order diagonal boxes with independent random permutations
// of 1..numUnits — diagonal boxes share no row, column, or box, so they
// never conflict with each other — then completes the rest of the grid by
// backtracking, the same two-phase approach as
// generateSolvedBoard/fillBox in the pack's parallel Sudoku solver
// example. That example hands the second phase to its own general-purpose
// solver; this package can't import this module's equivalent (the
// backtrack package already imports board, so the reverse import would
// cycle), so the completion step here is a small recursive search private
// to this file instead.
func GenerateSolved(order int, seed int64) *Board {
	r := rand.New(rand.NewSource(seed))
	b := New(order)
	numUnits := order * order

	for d := 0; d < order; d++ {
		fillDiagonalBox(b, d*order+d, numUnits, r)
	}

	if !completeBySearch(b) {
		panic("board: diagonal-seeded board has no completion")
	}
	return b
}

func fillDiagonalBox(b *Board, boxNum, numUnits int, r *rand.Rand) {
	digits := make([]int, numUnits)
	for i := range digits {
		digits[i] = i + 1
	}
	r.Shuffle(numUnits, func(i, j int) { digits[i], digits[j] = digits[j], digits[i] })

	for i := 0; i < numUnits; i++ {
		cell := b.BoxCell(boxNum, i)
		b.cells[cell] = valueset.Single(numUnits, digits[i])
		b.numFixedCells++
	}
}

// completeBySearch fills every remaining cell of b with a most-constrained
// -cell-first recursive search, undoing a placement when it leads nowhere.
func completeBySearch(b *Board) bool {
	cell, allFixed := mostConstrainedCell(b)
	if allFixed {
		return true
	}

	candidates := b.cells[cell]
	for d := 1; d <= b.numUnits; d++ {
		if !candidates.Has(d) || !consistentPlacement(b, cell, d) {
			continue
		}

		b.cells[cell] = valueset.Single(b.numUnits, d)
		b.numFixedCells++

		if completeBySearch(b) {
			return true
		}

		b.cells[cell] = candidates
		b.numFixedCells--
	}
	return false
}

func mostConstrainedCell(b *Board) (cell int, allFixed bool) {
	best := -1
	bestCount := b.numUnits + 1
	for i := 0; i < b.numCells; i++ {
		c := b.cells[i]
		if c.Fixed() {
			continue
		}
		if n := c.Count(); n < bestCount {
			bestCount = n
			best = i
		}
	}
	if best == -1 {
		return -1, true
	}
	return best, false
}

func consistentPlacement(b *Board, cell, d int) bool {
	row := b.RowForCell(cell)
	col := b.ColForCell(cell)
	box := b.BoxForCell(cell)
	for j := 0; j < b.numUnits; j++ {
		if k := b.RowCell(row, j); k != cell && b.cells[k].Fixed() && b.cells[k].Index()+1 == d {
			return false
		}
		if k := b.ColCell(col, j); k != cell && b.cells[k].Fixed() && b.cells[k].Index()+1 == d {
			return false
		}
		if k := b.BoxCell(box, j); k != cell && b.cells[k].Fixed() && b.cells[k].Index()+1 == d {
			return false
		}
	}
	return true
}
