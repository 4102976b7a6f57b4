// Package ant implements the pheromone-guided constructive agent: given a
// pristine board and a colony to consult for pheromone weights and random
// draws, an Ant builds one candidate assignment one cell at a time.
package ant

import (
	"github.com/arjunmehta/sudoku-aco/board"
	"github.com/arjunmehta/sudoku-aco/cp"
	"github.com/arjunmehta/sudoku-aco/valueset"
)

// Colony is everything an Ant needs from the colony it belongs to: the
// pseudo-random-proportional threshold, pheromone reads, the local
// pheromone update rule, and a source of uniform randomness. colony.Colony
// and subcolony.SubColony both satisfy this.
type Colony interface {
	Q0() float64
	PherAt(cell, digit int) float32
	LocalPheromoneUpdate(cell, digit int)
	NextFloat() float64
}

// Ant holds one agent's working board and scratch state. Reuse a single Ant
// across iterations via InitSolution rather than allocating a fresh one;
// its scratch arrays are sized once on first use.
type Ant struct {
	working   *board.Board
	numCells  int
	numUnits  int
	cursor    int
	failCells int

	roulette     []float32
	rouletteVals []int
}

// New returns an unused Ant. Call InitSolution before stepping it.
func New() *Ant {
	return &Ant{}
}

// InitSolution deep-clones puzzle into the ant's working board, positions
// its cursor at startCell, and resets its failure counter.
func (a *Ant) InitSolution(puzzle *board.Board, startCell int) {
	if a.working == nil {
		a.working = puzzle.Clone()
	} else {
		a.working.CopyFrom(puzzle)
	}
	a.numCells = a.working.CellCount()
	a.numUnits = a.working.NumUnits()
	a.cursor = startCell
	a.failCells = 0

	if a.roulette == nil {
		a.roulette = make([]float32, a.numUnits)
		a.rouletteVals = make([]int, a.numUnits)
	}
}

// StepSolution advances the ant by one cell along its linear cursor. A
// fixed cell costs nothing; an infeasible cell counts as a failure; an open
// cell is assigned a digit chosen by the pseudo-random-proportional rule,
// after which the colony's local pheromone update fires and constraint
// propagation runs on the cell's peers.
func (a *Ant) StepSolution(colony Colony) {
	i := a.cursor
	a.cursor = (a.cursor + 1) % a.numCells

	cell := a.working.Cell(i)
	switch {
	case cell.Fixed():
		return
	case cell.Empty():
		a.failCells++
		return
	}

	n := 0
	best := -1
	var bestWeight float32 = -1
	var total float32
	for j := 1; j <= a.numUnits; j++ {
		if !cell.Has(j) {
			continue
		}
		w := colony.PherAt(i, j)
		total += w
		a.rouletteVals[n] = j
		a.roulette[n] = total
		if w > bestWeight {
			bestWeight = w
			best = j
		}
		n++
	}

	chosen := best
	if colony.NextFloat() >= colony.Q0() {
		draw := float32(colony.NextFloat()) * total
		chosen = a.rouletteVals[n-1]
		for k := 0; k < n; k++ {
			if draw <= a.roulette[k] {
				chosen = a.rouletteVals[k]
				break
			}
		}
	}

	colony.LocalPheromoneUpdate(i, chosen)
	cp.SetCellAndPropagate(a.working, i, valueset.Single(a.numUnits, chosen))
}

// NumCellsFilled returns the number of cells this ant has successfully
// fixed, i.e. everything except the cells it walked over while empty.
func (a *Ant) NumCellsFilled() int {
	return a.numCells - a.failCells
}

// Board exposes the ant's current working board, e.g. so a colony can clone
// it as the iteration-best candidate.
func (a *Ant) Board() *board.Board {
	return a.working
}

// FailCells returns the number of infeasible cells this ant has walked
// over since the last InitSolution.
func (a *Ant) FailCells() int {
	return a.failCells
}
