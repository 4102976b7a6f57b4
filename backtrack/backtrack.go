// Package backtrack implements the reference depth-first search solver
// (Algorithm 1): most-constrained-cell-first recursive search with
// explicit peer-consistency checks, used as a baseline solver. The board
// package's solved-board generator does not use it.
package backtrack

import (
	"context"
	"time"

	"github.com/arjunmehta/sudoku-aco/board"
	"github.com/arjunmehta/sudoku-aco/valueset"
)

// Solve runs depth-first search over a clone of b until it finds a
// complete, consistent assignment or timeLimit elapses. It reports whether
// a solution was found; the returned board is always a clone, never b
// itself.
func Solve(ctx context.Context, b *board.Board, timeLimit time.Duration) (*board.Board, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeLimit)
	defer cancel()

	work := b.Clone()
	return work, dfs(ctx, work)
}

func dfs(ctx context.Context, b *board.Board) bool {
	if ctx.Err() != nil {
		return false
	}

	cell, allFixed := selectCell(b)
	if allFixed {
		return true
	}

	candidates := b.Cell(cell)
	numUnits := b.NumUnits()
	for d := 1; d <= numUnits; d++ {
		if !candidates.Has(d) || !placementValid(b, cell, d) {
			continue
		}

		b.SetDirect(cell, valueset.Single(numUnits, d))
		b.IncrementFixedCells()

		if dfs(ctx, b) {
			return true
		}

		b.SetDirect(cell, candidates)
		b.DecrementFixedCells()
	}
	return false
}

// selectCell picks the unfixed cell with the fewest remaining candidates
// (the most-constrained-cell heuristic). allFixed is true once every cell
// is fixed, i.e. the board is solved.
func selectCell(b *board.Board) (cell int, allFixed bool) {
	best := -1
	bestCount := b.NumUnits() + 1
	for i := 0; i < b.CellCount(); i++ {
		c := b.Cell(i)
		if c.Fixed() {
			continue
		}
		if c.Empty() {
			return i, false
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

// placementValid reports whether digit d is free to be placed at cell: no
// already-fixed peer in its row, column, or box holds the same digit.
func placementValid(b *board.Board, cell, d int) bool {
	numUnits := b.NumUnits()
	iRow := b.RowForCell(cell)
	iCol := b.ColForCell(cell)
	iBox := b.BoxForCell(cell)

	for j := 0; j < numUnits; j++ {
		if k := b.RowCell(iRow, j); k != cell && b.Cell(k).Fixed() && b.Cell(k).Index()+1 == d {
			return false
		}
		if k := b.ColCell(iCol, j); k != cell && b.Cell(k).Fixed() && b.Cell(k).Index()+1 == d {
			return false
		}
		if k := b.BoxCell(iBox, j); k != cell && b.Cell(k).Fixed() && b.Cell(k).Index()+1 == d {
			return false
		}
	}
	return true
}
