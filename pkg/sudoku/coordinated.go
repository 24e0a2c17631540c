package sudoku

import (
	"context"
	"sync"
)

// This file is the coordinated-parallel orchestrator from spec §4.5,
// grounded on original_source/src/CoordinatedLogical.java's SolverTask:
// workers own a fixed line for the whole run — one per row band, one per
// column stack — rather than racing for boxes, so no lock is needed.
//
// A row-band worker's row-scoped strategies write only inside its own
// three rows, whatever the column; a column-stack worker's column-scoped
// strategies write only inside its own three columns, whatever the row.
// That makes every row-band worker safe to run alongside every other
// row-band worker, and likewise for column-stack workers — but a
// row-band worker and a column-stack worker always share exactly one box
// (the intersection of the row-band worker's rows and the column-stack
// worker's columns), so the two kinds can never run at the same time.
// Each round is therefore two barriers, not one: every row-band worker
// runs to completion, then every column-stack worker does. Box-scoped
// strategies run in both phases since they're confined to one worker's
// own box either way; only the row/column-scoped halves (including
// pointingBoxRow/Col, see strategies.go) are phase-specific.
//
// Each phase, a worker's box rotates across its line so that, over a
// full numBoxesX- or numBoxesY-round cycle, every worker has visited
// every box on its line. The run stops once max(numBoxesY, numBoxesX)
// consecutive rounds produce no change anywhere on the grid.

func rowScopedStep(s *State, by, bx int) (changed bool, foreign []dirtyMark, report stepReport, err error) {
	minY, maxY, minX, maxX := boxBounds(by, bx)

	if c, err := nakedSinglesBox(s, minY, maxY, minX, maxX); err != nil {
		return changed, foreign, report, err
	} else if c {
		changed = true
		report.nakedSingles++
	}
	if hiddenSinglesBox(s, minY, maxY, minX, maxX) {
		changed = true
		report.hiddenSingles++
	}
	if hiddenSinglesRows(s, minY, maxY, minX, maxX) {
		changed = true
		report.hiddenSingles++
	}
	if nakedPairsBox(s, minY, maxY, minX, maxX) {
		changed = true
		report.nakedPairs++
	}
	if nakedPairsRows(s, minY, maxY, minX, maxX) {
		changed = true
		report.nakedPairs++
	}
	if hiddenPairsBox(s, minY, maxY, minX, maxX) {
		changed = true
		report.hiddenPairs++
	}
	if c, f := hiddenPairsRows(s, minY, maxY, minX, maxX); c {
		changed = true
		report.hiddenPairs++
		foreign = append(foreign, f...)
	}
	if c, err := boxLineRows(s, minY, maxY, minX, maxX); err != nil {
		return changed, foreign, report, err
	} else if c {
		changed = true
		report.boxLine++
	}
	if f := pointingBoxRow(s, minY, maxY, minX, maxX); len(f) > 0 {
		report.pointing++
		foreign = append(foreign, f...)
	}
	if c, err := nakedSinglesBox(s, minY, maxY, minX, maxX); err != nil {
		return changed, foreign, report, err
	} else if c {
		changed = true
		report.nakedSingles++
	}
	return changed, foreign, report, nil
}

func colScopedStep(s *State, by, bx int) (changed bool, foreign []dirtyMark, report stepReport, err error) {
	minY, maxY, minX, maxX := boxBounds(by, bx)

	if c, err := nakedSinglesBox(s, minY, maxY, minX, maxX); err != nil {
		return changed, foreign, report, err
	} else if c {
		changed = true
		report.nakedSingles++
	}
	if hiddenSinglesBox(s, minY, maxY, minX, maxX) {
		changed = true
		report.hiddenSingles++
	}
	if hiddenSinglesCols(s, minY, maxY, minX, maxX) {
		changed = true
		report.hiddenSingles++
	}
	if nakedPairsBox(s, minY, maxY, minX, maxX) {
		changed = true
		report.nakedPairs++
	}
	if nakedPairsCols(s, minY, maxY, minX, maxX) {
		changed = true
		report.nakedPairs++
	}
	if hiddenPairsBox(s, minY, maxY, minX, maxX) {
		changed = true
		report.hiddenPairs++
	}
	if c, f := hiddenPairsCols(s, minY, maxY, minX, maxX); c {
		changed = true
		report.hiddenPairs++
		foreign = append(foreign, f...)
	}
	if c, err := boxLineCols(s, minY, maxY, minX, maxX); err != nil {
		return changed, foreign, report, err
	} else if c {
		changed = true
		report.boxLine++
	}
	if f := pointingBoxCol(s, minY, maxY, minX, maxX); len(f) > 0 {
		report.pointing++
		foreign = append(foreign, f...)
	}
	if c, err := nakedSinglesBox(s, minY, maxY, minX, maxX); err != nil {
		return changed, foreign, report, err
	} else if c {
		changed = true
		report.nakedSingles++
	}
	return changed, foreign, report, nil
}

// runPhase runs one step function across n workers concurrently (a single
// barrier), folding their reports into stats and returning whether any of
// them changed their box.
func runPhase(n int, stats *Stats, box func(worker int) (by, bx int), step func(s *State, by, bx int) (bool, []dirtyMark, stepReport, error), s *State) (anyChange bool, err error) {
	changes := make([]bool, n)
	foreigns := make([][]dirtyMark, n)
	reports := make([]stepReport, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			by, bx := box(w)
			changed, foreign, report, err := step(s, by, bx)
			changes[w], foreigns[w], reports[w], errs[w] = changed, foreign, report, err
		}(w)
	}
	wg.Wait()

	for w := 0; w < n; w++ {
		if errs[w] != nil {
			return anyChange, errs[w]
		}
		reports[w].addTo(stats)
		if changes[w] {
			anyChange = true
			by, bx := box(w)
			s.markDirty(dirtyMark{by: by, bx: bx, isRow: true}, dirtyMark{by: by, bx: bx, isRow: false})
		}
		s.markDirty(foreigns[w]...)
	}
	return anyChange, nil
}

// RunCoordinatedParallel runs spec §4.5's CoordinatedParallel mode to
// quiescence.
func RunCoordinatedParallel(ctx context.Context, s *State, stats *Stats) error {
	maxClean := numBoxesY
	if numBoxesX > maxClean {
		maxClean = numBoxesX
	}

	cleanRounds := 0
	rotation := 0
	for cleanRounds < maxClean {
		if err := ctx.Err(); err != nil {
			return err
		}

		rowChanged, err := runPhase(numBoxesY, stats,
			func(by int) (int, int) { return by, rotation % numBoxesX },
			rowScopedStep, s)
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		colChanged, err := runPhase(numBoxesX, stats,
			func(bx int) (int, int) { return rotation % numBoxesY, bx },
			colScopedStep, s)
		if err != nil {
			return err
		}

		stats.SchedulerRounds++
		rotation++
		if rowChanged || colChanged {
			cleanRounds = 0
		} else {
			cleanRounds++
		}
	}
	return nil
}
