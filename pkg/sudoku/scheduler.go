package sudoku

// This file is the sequential Box Scheduler from spec §4.2, ported from
// original_source/src/Logical.java's solve/doSolveStep. It repeatedly
// sweeps the nine boxes, skipping any that aren't marked dirty, running
// the full strategy library against each dirty box, and alternating the
// sweep's iteration order (row-major, then column-major) every pass —
// exactly as the Java original does, to avoid a directional bias in which
// boxes get attention first.

type boxPos struct{ by, bx int }

func sweepOrder(rowMajor bool) []boxPos {
	order := make([]boxPos, 0, numBoxesY*numBoxesX)
	if rowMajor {
		for by := 0; by < numBoxesY; by++ {
			for bx := 0; bx < numBoxesX; bx++ {
				order = append(order, boxPos{by, bx})
			}
		}
	} else {
		for bx := 0; bx < numBoxesX; bx++ {
			for by := 0; by < numBoxesY; by++ {
				order = append(order, boxPos{by, bx})
			}
		}
	}
	return order
}

// stepReport tallies how many strategy applications a single runBoxStep
// call made. Counting locally and letting the caller fold the numbers into
// a *Stats afterward keeps runBoxStep itself free of any assumption about
// whether it's being called from one goroutine (Sequential) or many
// (IndependentParallel, CoordinatedParallel).
type stepReport struct {
	nakedSingles, hiddenSingles, nakedPairs, hiddenPairs, boxLine, pointing uint64
}

func (r stepReport) addTo(stats *Stats) {
	stats.NakedSingles += r.nakedSingles
	stats.HiddenSingles += r.hiddenSingles
	stats.NakedPairs += r.nakedPairs
	stats.HiddenPairs += r.hiddenPairs
	stats.BoxLine += r.boxLine
	stats.Pointing += r.pointing
}

// bandAndStackMarks returns a dirtyMark for every box in (by,bx)'s row band
// and every box in its column stack — the re-dirty set spec §4.2's
// doSolveStep applies to a box that changed (Logical.java's doSolveStep
// sets rowDirtied[by][*] and colDirtied[*][bx]). A changed box's own
// setValue calls (naked/hidden singles) and nakedPairsRows/Cols eliminate
// candidates anywhere in the row band or column stack, not just inside the
// box itself, and report no foreign dirtyMarks for those eliminations — only
// hiddenPairsRows/Cols and pointingBoxRow/Col do. Re-dirtying the whole band
// and stack on any change, not just the box that changed, is what makes
// those silent cross-box eliminations get re-examined.
func bandAndStackMarks(by, bx int) []dirtyMark {
	marks := make([]dirtyMark, 0, numBoxesX+numBoxesY)
	for x := 0; x < numBoxesX; x++ {
		marks = append(marks, dirtyMark{by: by, bx: x, isRow: true})
	}
	for y := 0; y < numBoxesY; y++ {
		marks = append(marks, dirtyMark{by: y, bx: bx, isRow: false})
	}
	return marks
}

// runBoxStep runs the full strategy library against one box, in the order
// Logical.java's doSolveStep invokes them: singles before pairs, box-local
// before row/column-scoped, box-line and pointing last.
func runBoxStep(s *State, by, bx int) (changed bool, foreign []dirtyMark, report stepReport, err error) {
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
	if hiddenSinglesCols(s, minY, maxY, minX, maxX) {
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
	if nakedPairsCols(s, minY, maxY, minX, maxX) {
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
	if c, f := hiddenPairsCols(s, minY, maxY, minX, maxX); c {
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
	if c, err := boxLineCols(s, minY, maxY, minX, maxX); err != nil {
		return changed, foreign, report, err
	} else if c {
		changed = true
		report.boxLine++
	}

	if f := pointingBoxRow(s, minY, maxY, minX, maxX); len(f) > 0 {
		report.pointing++
		foreign = append(foreign, f...)
	}
	if f := pointingBoxCol(s, minY, maxY, minX, maxX); len(f) > 0 {
		report.pointing++
		foreign = append(foreign, f...)
	}

	// nakedSinglesBox may have filled cells whose own mask collapsed to a
	// single bit only after this box's other strategies ran; re-check once
	// more before returning so a box never leaves a step with an unresolved
	// naked single that the next dirty sweep would have to rediscover.
	if c, err := nakedSinglesBox(s, minY, maxY, minX, maxX); err != nil {
		return changed, foreign, report, err
	} else if c {
		changed = true
		report.nakedSingles++
	}

	return changed, foreign, report, nil
}

// RunSequential runs the Box Scheduler to quiescence on a single goroutine,
// per spec §4.5's Sequential mode. It assumes the caller has already
// applied givens and marked the grid dirty (Initialize does both).
func RunSequential(s *State, stats *Stats) error {
	rowMajor := true
	for {
		anyDirty := false
		for _, pos := range sweepOrder(rowMajor) {
			by, bx := pos.by, pos.bx
			if !s.claimDirty(by, bx) {
				continue
			}
			anyDirty = true

			changed, foreign, report, err := runBoxStep(s, by, bx)
			if err != nil {
				return err
			}
			report.addTo(stats)
			if changed {
				foreign = append(foreign, bandAndStackMarks(by, bx)...)
			}
			s.markDirty(foreign...)
		}
		stats.SchedulerRounds++
		if !anyDirty {
			return nil
		}
		rowMajor = !rowMajor
	}
}
