// Package coordinator implements the parallel multi-colony solver
// (Algorithm 2): one worker goroutine per sub-colony, periodic barrier
// synchronization, and ring/random communication exchanges between
// barriers.
package coordinator

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/golang/glog"

	"github.com/arjunmehta/sudoku-aco/board"
	"github.com/arjunmehta/sudoku-aco/colony"
	"github.com/arjunmehta/sudoku-aco/subcolony"
)

const (
	timeoutPollInterval = 100
	progressInterval    = 50
	barrierWaitInterval = 100 * time.Millisecond
)

// isCommIteration reports whether iter is a communication barrier
// iteration: multiples of 100 up to and including 200, multiples of 10
// afterward. Iteration 200 deliberately still uses the coarser schedule.
func isCommIteration(iter int) bool {
	if iter <= 200 {
		return iter%100 == 0
	}
	return iter%10 == 0
}

// Config carries the coordinator's own tunables plus the per-colony ACS
// config every sub-colony is built from.
type Config struct {
	NumSubcolonies int
	Colony         colony.Config
	MaxTime        time.Duration
}

func (c *Config) applyDefaults() {
	if c.NumSubcolonies <= 0 {
		c.NumSubcolonies = 4
	}
	if c.MaxTime <= 0 {
		c.MaxTime = 20 * time.Second
	}
}

// Coordinator runs Algorithm 2 across a fixed set of sub-colonies.
type Coordinator struct {
	colonies []*subcolony.SubColony
	maxTime  time.Duration

	mu   sync.Mutex
	cond *sync.Cond

	barrier atomic.Int32
	stop    atomic.Bool
	commOK  atomic.Bool

	masterRNG *rand.Rand
	startTime time.Time

	wg sync.WaitGroup
}

// New builds a coordinator over config.NumSubcolonies sub-colonies, each
// seeded from config.Colony.Seed offset by its index so colonies diverge.
func New(config Config, puzzle *board.Board) *Coordinator {
	config.applyDefaults()

	colonies := make([]*subcolony.SubColony, config.NumSubcolonies)
	for i := range colonies {
		cfg := config.Colony
		cfg.Seed = config.Colony.Seed + int64(i)
		if cfg.MaxTime <= 0 {
			cfg.MaxTime = config.MaxTime
		}
		colonies[i] = subcolony.New(cfg, puzzle, i)
	}

	co := &Coordinator{
		colonies:  colonies,
		maxTime:   config.MaxTime,
		masterRNG: rand.New(rand.NewSource(config.Colony.Seed + 1000)),
	}
	co.cond = sync.NewCond(&co.mu)
	return co
}

// NumSubcolonies returns the sub-colony count this coordinator was built
// with.
func (co *Coordinator) NumSubcolonies() int { return len(co.colonies) }

// CommunicationOccurred reports whether at least one barrier round has run.
func (co *Coordinator) CommunicationOccurred() bool { return co.commOK.Load() }

// Run drives every sub-colony's worker loop to completion: construct,
// evaluate, and either globally update or join a communication barrier,
// until a sub-colony reaches a complete solution or the time budget is
// exhausted.
func (co *Coordinator) Run() {
	co.startTime = time.Now()

	done := make(chan struct{})
	go co.watchdog(done)

	for _, sc := range co.colonies {
		co.wg.Add(1)
		go co.workerLoop(sc)
	}
	co.wg.Wait()
	close(done)
}

// watchdog periodically broadcasts the barrier condition variable so a
// worker waiting on it wakes up on a bounded cadence even if the barrier
// never fills — the Go equivalent of a condition-variable wait_for timeout.
func (co *Coordinator) watchdog(done <-chan struct{}) {
	ticker := time.NewTicker(barrierWaitInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			co.mu.Lock()
			co.cond.Broadcast()
			co.mu.Unlock()
		}
	}
}

func (co *Coordinator) workerLoop(sc *subcolony.SubColony) {
	defer co.wg.Done()

	single := len(co.colonies) == 1

	for {
		sc.ConstructIteration()
		iter := sc.CurrentIteration()

		if !single && isCommIteration(iter) {
			co.enterBarrier()
			sc.ThreeSourceUpdate()
		} else {
			sc.GlobalUpdateAndDecay()
		}

		if sc.Index() == 0 && iter%progressInterval == 0 {
			co.reportProgress(iter)
		}

		if sc.BestSolScore() == sc.NumCells() {
			co.stop.Store(true)
		}
		if iter%timeoutPollInterval == 0 && time.Since(co.startTime) >= co.maxTime {
			co.stop.Store(true)
		}

		if co.stop.Load() {
			return
		}
	}
}

// enterBarrier blocks the calling worker until every sub-colony has arrived
// for this iteration. The last arrival runs the master phase (exchanges
// plus termination test) and releases everyone else.
func (co *Coordinator) enterBarrier() {
	n := int32(len(co.colonies))
	if co.barrier.Add(1) == n {
		co.runMasterPhase()
		return
	}

	co.mu.Lock()
	for co.barrier.Load() != 0 && !co.stop.Load() {
		co.cond.Wait()
		if time.Since(co.startTime) >= co.maxTime {
			co.stop.Store(true)
		}
	}
	co.mu.Unlock()
}

func (co *Coordinator) runMasterPhase() {
	co.commOK.Store(true)
	n := len(co.colonies)

	ringBest := make([]*board.Board, n)
	ringScore := make([]int, n)
	for i, c := range co.colonies {
		ringBest[i] = c.IterationBest().Clone()
		ringScore[i] = c.IterationBestScore()
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		co.colonies[next].ReceiveIterationBest(ringBest[i], ringScore[i])
	}

	perm := co.masterRNG.Perm(n)
	randBest := make([]*board.Board, n)
	randScore := make([]int, n)
	for i, c := range co.colonies {
		randBest[i] = c.BestSol().Clone()
		randScore[i] = c.BestSolScore()
	}
	for i := 0; i < n; i++ {
		recv := perm[i]
		sender := perm[(i-1+n)%n]
		co.colonies[recv].ReceiveBestSol(randBest[sender], randScore[sender])
	}

	if best := co.bestColony(); best.BestSolScore() == best.NumCells() {
		co.stop.Store(true)
	}

	co.barrier.Store(0)
	co.mu.Lock()
	co.cond.Broadcast()
	co.mu.Unlock()
}

// bestColony returns the sub-colony currently holding the highest
// best_sol_score.
func (co *Coordinator) bestColony() *subcolony.SubColony {
	best := co.colonies[0]
	for _, c := range co.colonies[1:] {
		if c.BestSolScore() > best.BestSolScore() {
			best = c
		}
	}
	return best
}

func (co *Coordinator) reportProgress(iter int) {
	co.mu.Lock()
	best := co.bestColony().BestSolScore()
	co.mu.Unlock()
	log.Infof("iteration %d: best score %d", iter, best)
}

// Result returns the best solution found across every sub-colony once Run
// has returned, the score it achieved, and the total iteration count
// reported by colony 0 (the designated progress colony).
func (co *Coordinator) Result() (sol *board.Board, score int, iterations int) {
	best := co.bestColony()
	return best.BestSol().Clone(), best.BestSolScore(), co.colonies[0].CurrentIteration()
}
