// Package colony implements the single-threaded Ant Colony System solver
// (Algorithm 0): a pheromone matrix, a fixed population of ants, and the
// per-iteration construct/evaluate/update cycle.
package colony

import (
	"math"
	"math/rand"
	"time"

	"github.com/arjunmehta/sudoku-aco/ant"
	"github.com/arjunmehta/sudoku-aco/board"
)

// Local pheromone mixing constants are ACS-canonical, not tunable.
const (
	localUpdateDecay = 0.9
	localUpdateFloor = 0.1
)

// timeoutPollInterval is how often, in iterations, the colony checks the
// wall clock against its time budget.
const timeoutPollInterval = 100

// Config carries every tunable ACS parameter. Zero-valued fields are
// replaced with defaults in New.
type Config struct {
	NumAnts  int
	Q0       float64
	Rho      float32
	BestEvap float64
	MaxTime  time.Duration
	Seed     int64
}

func (c *Config) applyDefaults() {
	if c.NumAnts <= 0 {
		c.NumAnts = 10
	}
	if c.Q0 <= 0 {
		c.Q0 = 0.9
	}
	if c.Rho <= 0 {
		c.Rho = 0.9
	}
	if c.BestEvap <= 0 {
		c.BestEvap = 0.005
	}
	if c.MaxTime <= 0 {
		c.MaxTime = 20 * time.Second
	}
}

// Colony runs Algorithm 0 against a single pristine puzzle board.
type Colony struct {
	config Config

	puzzle   *board.Board
	numCells int
	numUnits int
	pher0    float32

	ants []*ant.Ant
	rng  *rand.Rand
	pher []float32

	iterationBest      *board.Board
	iterationBestScore int

	bestSol      *board.Board
	bestSolScore int
	bestPher     float64

	solved           bool
	currentIteration int
	startTime        time.Time
}

// New builds a colony bound to puzzle (the post-initial-CP board). The
// colony never mutates puzzle; every ant works a clone.
func New(config Config, puzzle *board.Board) *Colony {
	config.applyDefaults()

	numCells := puzzle.CellCount()
	numUnits := puzzle.NumUnits()
	pher0 := float32(1) / float32(numCells)

	c := &Colony{
		config:        config,
		puzzle:        puzzle,
		numCells:      numCells,
		numUnits:      numUnits,
		pher0:         pher0,
		ants:          make([]*ant.Ant, config.NumAnts),
		rng:           rand.New(rand.NewSource(config.Seed)),
		pher:          make([]float32, numCells*numUnits),
		iterationBest: puzzle.Clone(),
		bestSol:       puzzle.Clone(),
	}
	for i := range c.ants {
		c.ants[i] = ant.New()
	}
	for i := range c.pher {
		c.pher[i] = pher0
	}
	c.startTime = time.Now()
	return c
}

// Q0 implements ant.Colony.
func (c *Colony) Q0() float64 { return c.config.Q0 }

// PherAt implements ant.Colony.
func (c *Colony) PherAt(cell, digit int) float32 {
	return c.pher[cell*c.numUnits+(digit-1)]
}

// SetPherAt overwrites the pheromone value at (cell, digit). Exported for
// the subcolony package's three-source update.
func (c *Colony) SetPherAt(cell, digit int, value float32) {
	c.pher[cell*c.numUnits+(digit-1)] = value
}

// LocalPheromoneUpdate implements ant.Colony: τ[i][j] ← 0.9·τ[i][j] + 0.1·τ0.
func (c *Colony) LocalPheromoneUpdate(cell, digit int) {
	idx := cell*c.numUnits + (digit - 1)
	c.pher[idx] = localUpdateDecay*c.pher[idx] + localUpdateFloor*c.pher0
}

// NextFloat implements ant.Colony.
func (c *Colony) NextFloat() float64 { return c.rng.Float64() }

// NumCells returns the board's cell count.
func (c *Colony) NumCells() int { return c.numCells }

// NumUnits returns the board's unit count.
func (c *Colony) NumUnits() int { return c.numUnits }

// Rho returns the evaporation constant used by the global and
// three-source pheromone updates.
func (c *Colony) Rho() float32 { return c.config.Rho }

// Puzzle returns the pristine board every ant is cloned from.
func (c *Colony) Puzzle() *board.Board { return c.puzzle }

// IterationBest returns the best board built during the most recent
// iteration.
func (c *Colony) IterationBest() *board.Board { return c.iterationBest }

// IterationBestScore returns the cell-filled score of IterationBest.
func (c *Colony) IterationBestScore() int { return c.iterationBestScore }

// BestSol returns the best board seen across all iterations so far.
func (c *Colony) BestSol() *board.Board { return c.bestSol }

// BestSolScore returns the cell-filled score of BestSol.
func (c *Colony) BestSolScore() int { return c.bestSolScore }

// BestPher returns the current best-pheromone scalar.
func (c *Colony) BestPher() float64 { return c.bestPher }

// SetBestPher overwrites the best-pheromone scalar. Only this package's
// tests call it; the subcolony's comm-iteration path simply skips the decay
// step.
func (c *Colony) SetBestPher(v float64) { c.bestPher = v }

// Solved reports whether any iteration has produced a complete assignment.
func (c *Colony) Solved() bool { return c.solved }

// CurrentIteration returns the number of iterations run so far.
func (c *Colony) CurrentIteration() int { return c.currentIteration }

// pherAdd computes the score-to-pheromone conversion used by the global
// update: num_cells / (num_cells - filled), or +Inf for a complete
// assignment. The three-source update uses subcolony.scoreToPherDelta,
// which applies the same formula.
func pherAdd(numCells, filled int) float32 {
	if filled >= numCells {
		return float32(math.Inf(1))
	}
	return float32(numCells) / float32(numCells-filled)
}

// ConstructIteration runs steps 1-5 of the Algorithm-0 iteration protocol:
// every ant builds a candidate assignment, the best of them becomes this
// iteration's iteration-best, and best_sol is replaced when the resulting
// pheromone contribution exceeds the running best. It does not perform the
// global pheromone update or decay — call GlobalUpdateAndDecay for that, or
// let a coordinator perform the three-source update instead.
func (c *Colony) ConstructIteration() {
	c.currentIteration++

	for _, a := range c.ants {
		start := c.rng.Intn(c.numCells)
		a.InitSolution(c.puzzle, start)
	}
	for step := 0; step < c.numCells; step++ {
		for _, a := range c.ants {
			a.StepSolution(c)
		}
	}

	bestIdx := 0
	bestFilled := c.ants[0].NumCellsFilled()
	for i := 1; i < len(c.ants); i++ {
		if filled := c.ants[i].NumCellsFilled(); filled > bestFilled {
			bestFilled = filled
			bestIdx = i
		}
	}

	c.iterationBest.CopyFrom(c.ants[bestIdx].Board())
	c.iterationBestScore = bestFilled

	toAdd := pherAdd(c.numCells, bestFilled)
	if float64(toAdd) > c.bestPher {
		c.bestSol.CopyFrom(c.iterationBest)
		c.bestSolScore = bestFilled
		c.bestPher = float64(toAdd)
		if bestFilled == c.numCells {
			c.solved = true
		}
	}
}

// GlobalUpdateAndDecay runs steps 6-7 of the Algorithm-0 protocol: every
// fixed cell of best_sol deposits pheromone proportional to best_pher, then
// best_pher decays toward zero. A best_pher of +Inf (set once a construction
// fills every cell) stays +Inf.
func (c *Colony) GlobalUpdateAndDecay() {
	rho := c.config.Rho
	bestPher := float32(c.bestPher)
	for i := 0; i < c.numCells; i++ {
		cell := c.bestSol.Cell(i)
		if !cell.Fixed() {
			continue
		}
		j := cell.Index() + 1
		idx := i*c.numUnits + (j - 1)
		c.pher[idx] = (1-rho)*c.pher[idx] + rho*bestPher
	}
	c.bestPher *= 1 - c.config.BestEvap
}

// RunIteration runs one full Algorithm-0 iteration: construct, evaluate,
// globally update, and decay. This is the entry point for the single-colony
// (alg=0) solver; the parallel coordinator instead calls ConstructIteration
// and GlobalUpdateAndDecay (or the subcolony three-source update)
// separately so it can interleave communication barriers.
func (c *Colony) RunIteration() {
	c.ConstructIteration()
	c.GlobalUpdateAndDecay()
}

// TimedOut reports whether the colony's wall-clock budget has been
// exceeded. Callers should only check this every timeoutPollInterval
// iterations, matching the reference solver's polling granularity.
func (c *Colony) TimedOut() bool {
	return time.Since(c.startTime) >= c.config.MaxTime
}

// ShouldPollTimeout reports whether the current iteration count is a
// multiple of the timeout poll interval.
func (c *Colony) ShouldPollTimeout() bool {
	return c.currentIteration%timeoutPollInterval == 0
}

// Run drives Algorithm 0 to completion: iterate until solved or the time
// budget is exhausted, polling the clock every 100 iterations as the
// reference solver does.
func (c *Colony) Run() {
	for {
		c.RunIteration()
		if c.solved {
			return
		}
		if c.ShouldPollTimeout() && c.TimedOut() {
			return
		}
	}
}
