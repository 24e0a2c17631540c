package sudoku

import (
	"math/bits"
	"sync"
	"sync/atomic"
)

// State is the mutable pair (values, candidates) described in spec §3, plus
// per-box dirty flags and the reader/writer lock counters the parallel
// orchestrators use. A State is exclusively owned by one logical solve
// attempt; Clone produces an independently-owned deep copy for the Guess
// Driver, exactly as spec §3's ownership model requires.
type State struct {
	value [size][size]int
	cand  [size][size]uint16

	// dirtyMu guards rowDirty/colDirty. The sequential scheduler runs on one
	// goroutine and pays its cost for nothing; the parallel orchestrators
	// share one State across workers and need it for real.
	dirtyMu  sync.Mutex
	rowDirty [numBoxesY][numBoxesX]bool
	colDirty [numBoxesY][numBoxesX]bool

	// Lock counters used only by the parallel orchestrators (spec §5).
	// The sequential scheduler never touches these.
	boxWriters [numBoxesY][numBoxesX]atomic.Int32
	rowReaders [numBoxesY]atomic.Int32
	colReaders [numBoxesX]atomic.Int32
}

// NewState builds a State with every cell's candidate mask fully open
// (fullMask) and no values set. Callers apply givens via Initialize.
func NewState() *State {
	s := &State{}
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			s.cand[i][j] = fullMask
		}
	}
	return s
}

// Clone returns a deep copy sharing no mutable state with s, suitable for
// the Guess Driver to branch on (spec §3, §4.3). The copy's dirty flags
// start all-true, matching spec §4.3 step 3a; lock counters start at zero.
func (s *State) Clone() *State {
	c := &State{}
	c.value = s.value
	c.cand = s.cand
	c.DirtyAll()
	return c
}

// DirtyAll marks every box's row band and column stack as needing
// re-examination, used at initialization and by Clone.
func (s *State) DirtyAll() {
	for by := 0; by < numBoxesY; by++ {
		for bx := 0; bx < numBoxesX; bx++ {
			s.rowDirty[by][bx] = true
			s.colDirty[by][bx] = true
		}
	}
}

// Value returns the solved/given digit at (i,j), or 0 if unknown.
func (s *State) Value(i, j int) int { return s.value[i][j] }

// Candidates returns the bitmask of still-possible digits at (i,j); bit v
// (1..9) is set iff v remains possible. For a known cell only the bit of
// its value is set.
func (s *State) Candidates(i, j int) uint16 { return s.cand[i][j] }

// CandidateCount returns the number of still-possible digits at (i,j).
func (s *State) CandidateCount(i, j int) int { return bits.OnesCount16(s.cand[i][j]) }

// Board copies the current values out as a plain Board.
func (s *State) Board() Board {
	var b Board
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			b[i][j] = s.value[i][j]
		}
	}
	return b
}

// IsComplete reports whether every cell has a known value.
func (s *State) IsComplete() bool {
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if s.value[i][j] == unknown {
				return false
			}
		}
	}
	return true
}

// claimDirty atomically reports whether (by,bx) was dirty and, if so,
// clears both its flags so a concurrent worker won't also claim it.
func (s *State) claimDirty(by, bx int) bool {
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()
	if !s.rowDirty[by][bx] && !s.colDirty[by][bx] {
		return false
	}
	s.rowDirty[by][bx] = false
	s.colDirty[by][bx] = false
	return true
}

// markDirty applies a batch of dirtyMarks under a single lock acquisition.
func (s *State) markDirty(marks ...dirtyMark) {
	if len(marks) == 0 {
		return
	}
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()
	for _, m := range marks {
		if m.isRow {
			s.rowDirty[m.by][m.bx] = true
		} else {
			s.colDirty[m.by][m.bx] = true
		}
	}
}

// anyDirty reports whether any box still needs a scheduler pass.
func (s *State) anyDirty() bool {
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()
	for by := 0; by < numBoxesY; by++ {
		for bx := 0; bx < numBoxesX; bx++ {
			if s.rowDirty[by][bx] || s.colDirty[by][bx] {
				return true
			}
		}
	}
	return false
}

func boxOf(i, j int) (by, bx int) { return i / boxHeight, j / boxWidth }

func boxBounds(by, bx int) (minY, maxY, minX, maxX int) {
	minY, minX = by*boxHeight, bx*boxWidth
	return minY, minY + boxHeight, minX, minX + boxWidth
}

// setValue sets cell (i,j) to digit v and eliminates v from every peer:
// the rest of the cell's own candidate mask, the rest of its row, the rest
// of its column, and the rest of its box. Centralising cross-box
// elimination here (rather than in a separate updateCandidatesBox pass)
// means the sequential, independent-parallel, and coordinated-parallel
// schedulers all observe the same elimination semantics — resolving the
// spec §9 open question about the asymmetry in the original source.
//
// cand and value are plain fields, not atomics, and this writes value last
// without any release fence between it and the cand writes above. Spec §5's
// ordering guarantee — candidate writes published before the value a
// concurrent reader in another row band/column stack might observe — is
// therefore not actually enforced; IndependentParallel's line locks make
// this safe in practice for same-box access, but a worker whose row band
// or column stack doesn't overlap (by,bx) can still read this box's cand
// cells in the gap (e.g. via hiddenPairsRows/pointingBoxCol crossing into
// a foreign box) without a synchronization point forcing it to see a
// consistent snapshot of this call's writes.
func (s *State) setValue(i, j, v int) {
	vb := uint16(1) << v
	s.cand[i][j] = vb
	for j1 := 0; j1 < size; j1++ {
		if j1 != j {
			s.cand[i][j1] &^= vb
		}
	}
	for i1 := 0; i1 < size; i1++ {
		if i1 != i {
			s.cand[i1][j] &^= vb
		}
	}
	minY, maxY, minX, maxX := boxBounds(boxOf(i, j))
	for i2 := minY; i2 < maxY; i2++ {
		for j2 := minX; j2 < maxX; j2++ {
			if i2 != i || j2 != j {
				s.cand[i2][j2] &^= vb
			}
		}
	}
	s.value[i][j] = v
}

// eliminate clears candidate v from (i,j) if present, reporting whether it
// changed anything. Callers are responsible for re-dirtying affected boxes.
func (s *State) eliminate(i, j, v int) bool {
	vb := uint16(1) << v
	if s.cand[i][j]&vb == 0 {
		return false
	}
	s.cand[i][j] &^= vb
	return true
}

// checkInvariants validates I1-I3 from spec §3 over the whole grid; used by
// tests after every mutation. I4 (duplicate knowns in a region) is checked
// separately by validate.go at initialization time, since strategies are
// specified to never introduce it once the givens are clean.
func (s *State) checkInvariants() error {
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			v := s.value[i][j]
			if v != unknown {
				want := uint16(1) << v
				if s.cand[i][j] != want {
					return newSolveError(EmptyCell, "R%dC%d: known=%d but candidates=%#x", i, j, v, s.cand[i][j])
				}
				minY, maxY, minX, maxX := boxBounds(boxOf(i, j))
				for i1 := 0; i1 < size; i1++ {
					for j1 := 0; j1 < size; j1++ {
						peer := i1 == i || j1 == j || (minY <= i1 && i1 < maxY && minX <= j1 && j1 < maxX)
						if peer && (i1 != i || j1 != j) && s.cand[i1][j1]&want != 0 {
							return newSolveError(EmptyCell, "R%dC%d: known=%d still a candidate at peer R%dC%d", i, j, v, i1, j1)
						}
					}
				}
				continue
			}
			if s.cand[i][j] == 0 {
				return newSolveError(EmptyCell, "R%dC%d has no remaining candidates", i, j)
			}
		}
	}
	return nil
}
