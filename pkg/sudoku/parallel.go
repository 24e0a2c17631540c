package sudoku

import (
	"context"
	"runtime"
	"sync"
)

// This file is the independent-parallel orchestrator from spec §4.5,
// grounded on original_source/src/ParallelLogical.java's SubsolverTask and
// BoardState's AtomicIntegerArray lock counters, with the goroutine
// fan-out idiom from the teacher's concurrency.go (bounded worker count,
// sync.WaitGroup join) in place of the Java original's ForkJoinPool.
//
// A box's row-scoped and column-scoped strategies read and write cells
// outside the box itself, across the box's whole row band or column
// stack. Two boxes that share a row band (same by) or a column stack
// (same bx) can therefore race on the same cells if processed
// concurrently; two boxes with neither in common cannot. So acquiring a
// box for processing means acquiring exclusive use of its row band and
// column stack too, not just the box: rowReaders[by] and colReaders[bx]
// double as per-line exclusive locks here, even though their name
// (inherited from the Java original, where reads and writes are tracked
// separately) suggests otherwise.

// acquireLine tries to take exclusive ownership of box (by,bx)'s row band,
// column stack, and box-writer slot in one shot, releasing anything it
// already grabbed on partial failure.
func (s *State) acquireLine(by, bx int) bool {
	if !s.rowReaders[by].CompareAndSwap(0, 1) {
		return false
	}
	if !s.colReaders[bx].CompareAndSwap(0, 1) {
		s.rowReaders[by].Store(0)
		return false
	}
	if !s.boxWriters[by][bx].CompareAndSwap(0, 1) {
		s.rowReaders[by].Store(0)
		s.colReaders[bx].Store(0)
		return false
	}
	return true
}

func (s *State) releaseLine(by, bx int) {
	s.boxWriters[by][bx].Store(0)
	s.rowReaders[by].Store(0)
	s.colReaders[bx].Store(0)
}

// forceAcquireLine spins until it owns box (by,bx)'s line locks outright,
// used only once a worker has scanned every dirty box and found each one
// contended — the escalation spec §5 calls for so a lone straggler box
// can't starve forever behind other workers' churn.
func (s *State) forceAcquireLine(ctx context.Context, by, bx int) bool {
	for {
		if s.acquireLine(by, bx) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		default:
			runtime.Gosched()
		}
	}
}

type contentionCounters struct {
	skips, forced uint64
}

func independentWorker(ctx context.Context, id int, s *State, results chan<- workerResult) {
	var local contentionCounters
	var reports []stepReport

	consecutiveFailures := 0
	for {
		select {
		case <-ctx.Done():
			results <- workerResult{reports: reports, contention: local}
			return
		default:
		}

		by, bx, claimed := scanForBox(s, id)
		if !claimed {
			if !s.anyDirty() {
				results <- workerResult{reports: reports, contention: local}
				return
			}
			consecutiveFailures++
			local.skips++
			if consecutiveFailures > 2*numBoxesX*numBoxesY {
				// Every box currently dirty was line-contended on every
				// pass through the scan; force through the next one seen.
				if by2, bx2, ok := firstDirty(s); ok {
					if !s.forceAcquireLine(ctx, by2, bx2) {
						continue
					}
					local.forced++
					by, bx = by2, bx2
					claimed = true
				}
			}
			if !claimed {
				runtime.Gosched()
				continue
			}
		}
		consecutiveFailures = 0

		changed, foreign, report, err := runBoxStep(s, by, bx)
		s.releaseLine(by, bx)
		if err != nil {
			results <- workerResult{err: err, reports: reports, contention: local}
			return
		}
		reports = append(reports, report)
		if changed {
			foreign = append(foreign, bandAndStackMarks(by, bx)...)
		}
		s.markDirty(foreign...)
	}
}

type workerResult struct {
	err        error
	reports    []stepReport
	contention contentionCounters
}

// scanForBox looks for one dirty, unlocked box, starting at an
// id-dependent offset so workers don't all contend for box (0,0) first.
// Any box it claims-but-fails-to-lock is re-marked dirty before moving on.
func scanForBox(s *State, id int) (by, bx int, ok bool) {
	n := numBoxesY * numBoxesX
	for k := 0; k < n; k++ {
		idx := (k + id) % n
		cby, cbx := idx/numBoxesX, idx%numBoxesX
		if !s.claimDirty(cby, cbx) {
			continue
		}
		if s.acquireLine(cby, cbx) {
			return cby, cbx, true
		}
		s.markDirty(dirtyMark{by: cby, bx: cbx, isRow: true}, dirtyMark{by: cby, bx: cbx, isRow: false})
	}
	return 0, 0, false
}

func firstDirty(s *State) (by, bx int, ok bool) {
	for by := 0; by < numBoxesY; by++ {
		for bx := 0; bx < numBoxesX; bx++ {
			if s.claimDirty(by, bx) {
				return by, bx, true
			}
		}
	}
	return 0, 0, false
}

// RunIndependentParallel runs spec §4.5's IndependentParallel mode: workers
// goroutines share one State, racing to claim dirty boxes under the line
// locks above, until the grid is quiescent. workers <= 0 defaults to one
// goroutine per box.
func RunIndependentParallel(ctx context.Context, s *State, stats *Stats, workers int) error {
	if workers <= 0 {
		workers = numBoxesX * numBoxesY
	}

	results := make(chan workerResult, workers)
	var wg sync.WaitGroup
	for id := 0; id < workers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			independentWorker(ctx, id, s, results)
		}(id)
	}
	wg.Wait()
	close(results)

	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
		for _, r := range res.reports {
			r.addTo(stats)
		}
		stats.ContentionSkips += res.contention.skips
		stats.ContentionForced += res.contention.forced
	}
	stats.SchedulerRounds++
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
