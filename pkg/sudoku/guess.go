package sudoku

import (
	"context"
	"math/bits"
	"runtime"
	"sync"
	"sync/atomic"
)

// This file is the Guess Driver from spec §4.3, grounded on
// original_source/src/Logical.java's FallbackSolver.guessAndCheck (serial
// candidate loop) and ParallelLogical.java's SolverTask.compute (forking
// one task per candidate). Go's goroutines plus a buffered-channel
// semaphore — the same bounded-fan-out idiom the teacher's concurrency.go
// uses for its strategy race — stand in for the Java original's
// ForkJoinPool.
//
// Each candidate at the chosen cell gets its own cloned State (spec §3's
// ownership rule: one State per solve attempt) and recurses through the
// scheduler and, if still incomplete, another round of guessing. Per
// spec §9's "Sibling-branch cancellation" open question, branches already
// running on their own goroutines are not cancelled when a sibling
// succeeds, but once any candidate at a cell has succeeded the candidates
// not yet started there are skipped; the first success recorded wins.

type guessDriver struct {
	mode            Mode
	parallelWorkers int
	sem             chan struct{}

	mu    sync.Mutex
	stats *Stats
}

func newGuessDriver(mode Mode, parallelWorkers, maxConcurrentBranches int, stats *Stats) *guessDriver {
	if maxConcurrentBranches <= 0 {
		maxConcurrentBranches = runtime.GOMAXPROCS(0)
	}
	return &guessDriver{
		mode:            mode,
		parallelWorkers: parallelWorkers,
		sem:             make(chan struct{}, maxConcurrentBranches),
		stats:           stats,
	}
}

// merge folds a branch's locally-accumulated strategy counts into the
// driver's shared Stats. A mutex, not atomics, guards this: the critical
// section is one struct copy long and runs once per scheduler call, not
// once per candidate elimination, so contention is negligible.
func (g *guessDriver) merge(local *Stats, depth int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats.NakedSingles += local.NakedSingles
	g.stats.HiddenSingles += local.HiddenSingles
	g.stats.NakedPairs += local.NakedPairs
	g.stats.HiddenPairs += local.HiddenPairs
	g.stats.BoxLine += local.BoxLine
	g.stats.Pointing += local.Pointing
	g.stats.SchedulerRounds += local.SchedulerRounds
	g.stats.ContentionSkips += local.ContentionSkips
	g.stats.ContentionForced += local.ContentionForced
	g.stats.GuessBranches++
	if depth > g.stats.GuessDepthReached {
		g.stats.GuessDepthReached = depth
	}
}

// solve runs the scheduler on s, and if that alone doesn't finish the
// grid, picks an MRV cell and recurses once per remaining candidate.
func (g *guessDriver) solve(ctx context.Context, s *State, depth int) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	local := &Stats{}
	if err := runScheduler(ctx, s, g.mode, g.parallelWorkers, local); err != nil {
		g.merge(local, depth)
		return nil, err
	}
	if s.IsComplete() {
		g.merge(local, depth)
		return s, nil
	}
	i, j, ok := pickMRVCell(s)
	g.merge(local, depth)
	if !ok {
		return nil, newSolveError(EmptyCell, "grid incomplete but every cell has a known value or no candidates")
	}

	mask := s.cand[i][j]
	var wg sync.WaitGroup
	var found atomic.Bool
	results := make(chan *State, bits.OnesCount16(mask))
	eachCandidate(mask, func(v int) {
		if found.Load() {
			return
		}
		child := s.Clone()
		child.setValue(i, j, v)

		// A goroutine must never block acquiring a slot for its own child
		// while holding the slot its parent gave it — with enough
		// concurrent branches that's a fork-join deadlock, every slot
		// holder waiting to enqueue a grandchild and none able to return
		// theirs. select-acquire falls back to running the branch inline,
		// on the parent's own goroutine, whenever the pool is full.
		select {
		case g.sem <- struct{}{}:
			wg.Add(1)
			go func(v int) {
				defer wg.Done()
				defer func() { <-g.sem }()
				if res, err := g.solve(ctx, child, depth+1); err == nil {
					found.Store(true)
					results <- res
				}
			}(v)
		default:
			if res, err := g.solve(ctx, child, depth+1); err == nil {
				found.Store(true)
				results <- res
			}
		}
	})
	wg.Wait()
	close(results)

	for res := range results {
		return res, nil
	}
	return nil, newSolveError(ExhaustedGuesses, "R%dC%d: no candidate led to a solution", i, j)
}

// pickMRVCell returns the unknown cell with the fewest remaining
// candidates (minimum remaining values), spec §4.3's cell-selection rule.
// By the time the Guess Driver runs, Naked Singles has already resolved
// any cell down to one candidate, so every unknown cell here has at
// least two.
func pickMRVCell(s *State) (i, j int, ok bool) {
	best := size + 1
	bi, bj := -1, -1
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if s.value[r][c] != unknown {
				continue
			}
			if n := bits.OnesCount16(s.cand[r][c]); n < best {
				best, bi, bj = n, r, c
			}
		}
	}
	if bi == -1 {
		return 0, 0, false
	}
	return bi, bj, true
}
