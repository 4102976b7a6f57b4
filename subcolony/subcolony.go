// Package subcolony extends colony with the slots and selective pheromone
// update a parallel coordinator needs: two inbound solution slots filled
// between barriers, and a three-source update that replaces the ordinary
// global update on communication iterations.
package subcolony

import (
	"math"

	"github.com/arjunmehta/sudoku-aco/board"
	"github.com/arjunmehta/sudoku-aco/colony"
)

// SubColony is a colony.Colony plus the state a parallel coordinator needs
// to deliver and apply solutions received from peers.
type SubColony struct {
	*colony.Colony

	index int

	receivedIterationBest      *board.Board
	receivedIterationBestScore int

	receivedBestSol      *board.Board
	receivedBestSolScore int

	contributions   []float32
	hasContribution []bool
}

// New builds a SubColony at the given coordinator index.
func New(config colony.Config, puzzle *board.Board, index int) *SubColony {
	c := colony.New(config, puzzle)
	return &SubColony{
		Colony:                c,
		index:                 index,
		receivedIterationBest: puzzle.Clone(),
		receivedBestSol:       puzzle.Clone(),
		contributions:         make([]float32, c.NumUnits()),
		hasContribution:       make([]bool, c.NumUnits()),
	}
}

// Index returns this sub-colony's position in the coordinator's colony
// list, used to address ring and random exchanges.
func (s *SubColony) Index() int { return s.index }

// ReceiveIterationBest is called by the coordinator's master phase during a
// ring exchange: it overwrites this sub-colony's received-iteration-best
// slot with a peer's iteration-best solution.
func (s *SubColony) ReceiveIterationBest(sol *board.Board, score int) {
	s.receivedIterationBest.CopyFrom(sol)
	s.receivedIterationBestScore = score
}

// ReceiveBestSol is called by the coordinator's master phase during a
// random exchange: it overwrites this sub-colony's received-best-sol slot
// with a peer's best-so-far solution.
func (s *SubColony) ReceiveBestSol(sol *board.Board, score int) {
	s.receivedBestSol.CopyFrom(sol)
	s.receivedBestSolScore = score
}

// ThreeSourceUpdate replaces the ordinary global update and decay on a
// communication iteration: it blends the local iteration-best with the two
// received solutions, evaporating only cells that received a deposit from
// at least one of the three sources.
func (s *SubColony) ThreeSourceUpdate() {
	numCells := s.NumCells()
	numUnits := s.NumUnits()
	rho := s.Rho()

	delta1 := scoreToPherDelta(numCells, s.IterationBestScore())
	delta2 := scoreToPherDelta(numCells, s.receivedIterationBestScore)
	delta3 := scoreToPherDelta(numCells, s.receivedBestSolScore)

	local := s.IterationBest()
	received1 := s.receivedIterationBest
	received2 := s.receivedBestSol

	for i := 0; i < numCells; i++ {
		for j := 0; j < numUnits; j++ {
			s.contributions[j] = 0
			s.hasContribution[j] = false
		}

		deposit(s.contributions, s.hasContribution, local.Cell(i), delta1)
		deposit(s.contributions, s.hasContribution, received1.Cell(i), delta2)
		deposit(s.contributions, s.hasContribution, received2.Cell(i), delta3)

		for j := 0; j < numUnits; j++ {
			if !s.hasContribution[j] {
				continue
			}
			current := s.PherAt(i, j+1)
			s.SetPherAt(i, j+1, (1-rho)*current+rho*s.contributions[j])
		}
	}
}

// deposit credits delta to the fixed digit of cell, if cell is fixed and
// delta is positive.
func deposit(contributions []float32, has []bool, cell interface {
	Fixed() bool
	Index() int
}, delta float32) {
	if delta <= 0 || !cell.Fixed() {
		return
	}
	j := cell.Index()
	contributions[j] += delta
	has[j] = true
}

// scoreToPherDelta is colony's pherAdd formula with an added zero guard for
// a non-positive score, matching the spec's "if local score > 0, else 0"
// guard for each of the three sources. Like pherAdd, it returns +Inf for a
// complete assignment (score == numCells), since the original's identical
// numCells/(numCells-filled) formula diverges to infinity there too.
func scoreToPherDelta(numCells, score int) float32 {
	if score <= 0 {
		return 0
	}
	if score >= numCells {
		return float32(math.Inf(1))
	}
	return float32(numCells) / float32(numCells-score)
}
