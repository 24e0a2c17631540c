package sudoku

import "math/bits"

// This file implements the nine box-scoped deduction strategies from
// spec §4.1, ported from original_source/src/Logical.java's private
// methods of the same names. Each strategy:
//
//   - is named with a Rows/Cols/Box suffix indicating whether it scans the
//     box's row band, column stack, or just the box itself;
//   - takes the inclusive-exclusive bounds (minY, maxY, minX, maxX) of one
//     3x3 box;
//   - never adds a candidate or unsets a known value;
//   - may set values or eliminate candidates inside the box freely, and may
//     eliminate candidates in other boxes only when scanning a row/column
//     (naked pairs, hidden pairs, pointing) — apart from setValue, which
//     the singles strategies call and which clears the set digit from the
//     cell's whole row, column and box;
//   - returns whether it changed anything, plus any foreign boxes it
//     reports as dirtied (so the scheduler — not the strategy — owns the
//     dirty-flag state, per spec §9's message-passing redesign note).
//
// i and j name the cell being modified; i1, j1 (and so on) name a cell
// being compared against it; c names the candidate digit under
// consideration — the same convention the Java source documents.

type dirtyMark struct {
	by, bx int
	isRow  bool // true: mark rowDirty[by][bx]; false: mark colDirty[by][bx]
}

func eachCandidate(mask uint16, f func(c int)) {
	for mask != 0 {
		c := bits.TrailingZeros16(mask)
		f(c)
		mask &^= uint16(1) << c
	}
}

// nakedSinglesBox fills in any unknown cell in the box with exactly one
// remaining candidate.
func nakedSinglesBox(s *State, minY, maxY, minX, maxX int) (changed bool, err error) {
	for i := minY; i < maxY; i++ {
		for j := minX; j < maxX; j++ {
			if s.value[i][j] != unknown {
				continue
			}
			mask := s.cand[i][j]
			if mask == 0 {
				return changed, newSolveError(EmptyCell, "no candidates in cell R%dC%d", i, j)
			}
			if bits.OnesCount16(mask) == 1 {
				s.setValue(i, j, bits.TrailingZeros16(mask))
				changed = true
			}
		}
	}
	return changed, nil
}

// hiddenSinglesRows fills in a cell whose candidate digit appears nowhere
// else in its row.
func hiddenSinglesRows(s *State, minY, maxY, minX, maxX int) (changed bool) {
	for i := minY; i < maxY; i++ {
		for j := minX; j < maxX; j++ {
			if s.value[i][j] != unknown {
				continue
			}
			found := -1
			eachCandidate(s.cand[i][j], func(c int) {
				if found != -1 {
					return
				}
				for j1 := 0; j1 < size; j1++ {
					if j1 != j && s.cand[i][j1]&(uint16(1)<<c) != 0 {
						return
					}
				}
				found = c
			})
			if found != -1 {
				s.setValue(i, j, found)
				changed = true
			}
		}
	}
	return changed
}

// hiddenSinglesCols is hiddenSinglesRows scanning the column stack instead.
func hiddenSinglesCols(s *State, minY, maxY, minX, maxX int) (changed bool) {
	for i := minY; i < maxY; i++ {
		for j := minX; j < maxX; j++ {
			if s.value[i][j] != unknown {
				continue
			}
			found := -1
			eachCandidate(s.cand[i][j], func(c int) {
				if found != -1 {
					return
				}
				for i1 := 0; i1 < size; i1++ {
					if i1 != i && s.cand[i1][j]&(uint16(1)<<c) != 0 {
						return
					}
				}
				found = c
			})
			if found != -1 {
				s.setValue(i, j, found)
				changed = true
			}
		}
	}
	return changed
}

// hiddenSinglesBox is hiddenSinglesRows/Cols restricted to the box itself.
func hiddenSinglesBox(s *State, minY, maxY, minX, maxX int) (changed bool) {
	for i := minY; i < maxY; i++ {
		for j := minX; j < maxX; j++ {
			if s.value[i][j] != unknown {
				continue
			}
			found := -1
			eachCandidate(s.cand[i][j], func(c int) {
				if found != -1 {
					return
				}
				for i1 := minY; i1 < maxY; i1++ {
					for j1 := minX; j1 < maxX; j1++ {
						if (i1 != i || j1 != j) && s.cand[i1][j1]&(uint16(1)<<c) != 0 {
							return
						}
					}
				}
				found = c
			})
			if found != -1 {
				s.setValue(i, j, found)
				changed = true
			}
		}
	}
	return changed
}

// nakedPairsRows looks for two cells in a row sharing an identical
// <=2-candidate mask, eliminating those candidates from the rest of the
// row. A 1-candidate mask matching itself degrades harmlessly into a
// naked single.
func nakedPairsRows(s *State, minY, maxY, minX, maxX int) (changed bool) {
	for i := minY; i < maxY; i++ {
	cells:
		for j := minX; j < maxX; j++ {
			if s.value[i][j] != unknown {
				continue cells
			}
			mask := s.cand[i][j]
			if bits.OnesCount16(mask) > 2 {
				continue cells
			}
			for j1 := 0; j1 < size; j1++ {
				if j1 == j || s.cand[i][j1] != mask {
					continue
				}
				for j2 := 0; j2 < size; j2++ {
					if j2 == j || j2 == j1 || s.value[i][j2] != unknown {
						continue
					}
					if s.cand[i][j2]&mask != 0 {
						s.cand[i][j2] &^= mask
						changed = true
					}
				}
				continue cells
			}
		}
	}
	return changed
}

// nakedPairsCols is nakedPairsRows scanning the column stack instead.
func nakedPairsCols(s *State, minY, maxY, minX, maxX int) (changed bool) {
	for j := minX; j < maxX; j++ {
	cells:
		for i := minY; i < maxY; i++ {
			if s.value[i][j] != unknown {
				continue cells
			}
			mask := s.cand[i][j]
			if bits.OnesCount16(mask) > 2 {
				continue cells
			}
			for i1 := 0; i1 < size; i1++ {
				if i1 == i || s.cand[i1][j] != mask {
					continue
				}
				for i2 := 0; i2 < size; i2++ {
					if i2 == i || i2 == i1 || s.value[i2][j] != unknown {
						continue
					}
					if s.cand[i2][j]&mask != 0 {
						s.cand[i2][j] &^= mask
						changed = true
					}
				}
				continue cells
			}
		}
	}
	return changed
}

// nakedPairsBox is nakedPairsRows/Cols restricted to the box itself.
func nakedPairsBox(s *State, minY, maxY, minX, maxX int) (changed bool) {
	for i := minY; i < maxY; i++ {
	cells:
		for j := minX; j < maxX; j++ {
			if s.value[i][j] != unknown {
				continue cells
			}
			mask := s.cand[i][j]
			if bits.OnesCount16(mask) > 2 {
				continue cells
			}
			for i1 := minY; i1 < maxY; i1++ {
				for j1 := minX; j1 < maxX; j1++ {
					if (i1 == i && j1 == j) || s.cand[i1][j1] != mask {
						continue
					}
					for i2 := minY; i2 < maxY; i2++ {
						for j2 := minX; j2 < maxX; j2++ {
							if (i2 == i && j2 == j) || (i2 == i1 && j2 == j1) || s.value[i2][j2] != unknown {
								continue
							}
							if s.cand[i2][j2]&mask != 0 {
								s.cand[i2][j2] &^= mask
								changed = true
							}
						}
					}
					continue cells
				}
			}
		}
	}
	return changed
}

// hiddenPairsRows looks for a pair of candidates (c1,c2) in a cell such
// that exactly one other cell in the row also carries either, and
// restricts both cells to exactly that pair. The other cell may live in a
// foreign box, which this reports via the returned dirtyMark.
func hiddenPairsRows(s *State, minY, maxY, minX, maxX int) (changed bool, foreign []dirtyMark) {
	for i := minY; i < maxY; i++ {
	cells:
		for j := minX; j < maxX; j++ {
			if s.value[i][j] != unknown {
				continue cells
			}
			mask := s.cand[i][j]
			for c1 := 1; c1 < size; c1++ {
				if mask&(uint16(1)<<c1) == 0 {
					continue
				}
			candidatePairs:
				for c2 := c1 + 1; c2 <= size; c2++ {
					if mask&(uint16(1)<<c2) == 0 {
						continue
					}
					pairMask := uint16(1)<<c1 | uint16(1)<<c2
					otherJ := -1
					for j1 := 0; j1 < size; j1++ {
						if j1 == j {
							continue
						}
						if s.cand[i][j1]&pairMask != 0 {
							if otherJ != -1 {
								continue candidatePairs
							}
							otherJ = j1
						}
					}
					if otherJ == -1 {
						continue
					}
					if s.cand[i][j]&^pairMask != 0 {
						s.cand[i][j] &= pairMask
						changed = true
					}
					if s.cand[i][otherJ]&^pairMask != 0 {
						s.cand[i][otherJ] &= pairMask
						changed = true
						_, bx := boxOf(i, otherJ)
						if bx != minX/boxWidth {
							foreign = append(foreign, dirtyMark{by: minY / boxHeight, bx: bx, isRow: false})
						}
					}
					continue cells
				}
			}
		}
	}
	return changed, foreign
}

// hiddenPairsCols is hiddenPairsRows scanning the column stack instead.
func hiddenPairsCols(s *State, minY, maxY, minX, maxX int) (changed bool, foreign []dirtyMark) {
	for j := minX; j < maxX; j++ {
	cells:
		for i := minY; i < maxY; i++ {
			if s.value[i][j] != unknown {
				continue cells
			}
			mask := s.cand[i][j]
			for c1 := 1; c1 < size; c1++ {
				if mask&(uint16(1)<<c1) == 0 {
					continue
				}
			candidatePairs:
				for c2 := c1 + 1; c2 <= size; c2++ {
					if mask&(uint16(1)<<c2) == 0 {
						continue
					}
					pairMask := uint16(1)<<c1 | uint16(1)<<c2
					otherI := -1
					for i1 := 0; i1 < size; i1++ {
						if i1 == i {
							continue
						}
						if s.cand[i1][j]&pairMask != 0 {
							if otherI != -1 {
								continue candidatePairs
							}
							otherI = i1
						}
					}
					if otherI == -1 {
						continue
					}
					if s.cand[i][j]&^pairMask != 0 {
						s.cand[i][j] &= pairMask
						changed = true
					}
					if s.cand[otherI][j]&^pairMask != 0 {
						s.cand[otherI][j] &= pairMask
						changed = true
						by, _ := boxOf(otherI, j)
						if by != minY/boxHeight {
							foreign = append(foreign, dirtyMark{by: by, bx: minX / boxWidth, isRow: true})
						}
					}
					continue cells
				}
			}
		}
	}
	return changed, foreign
}

// hiddenPairsBox is hiddenPairsRows/Cols restricted to the box itself, so
// it never dirties a foreign box.
func hiddenPairsBox(s *State, minY, maxY, minX, maxX int) (changed bool) {
	for i := minY; i < maxY; i++ {
	cells:
		for j := minX; j < maxX; j++ {
			if s.value[i][j] != unknown {
				continue cells
			}
			mask := s.cand[i][j]
			for c1 := 1; c1 < size; c1++ {
				if mask&(uint16(1)<<c1) == 0 {
					continue
				}
			candidatePairs:
				for c2 := c1 + 1; c2 <= size; c2++ {
					if mask&(uint16(1)<<c2) == 0 {
						continue
					}
					pairMask := uint16(1)<<c1 | uint16(1)<<c2
					otherI, otherJ := -1, -1
					for i1 := minY; i1 < maxY; i1++ {
						for j1 := minX; j1 < maxX; j1++ {
							if i1 == i && j1 == j {
								continue
							}
							if s.cand[i1][j1]&pairMask != 0 {
								if otherI != -1 {
									continue candidatePairs
								}
								otherI, otherJ = i1, j1
							}
						}
					}
					if otherI == -1 {
						continue
					}
					if s.cand[i][j]&^pairMask != 0 {
						s.cand[i][j] &= pairMask
						changed = true
					}
					if s.cand[otherI][otherJ]&^pairMask != 0 {
						s.cand[otherI][otherJ] &= pairMask
						changed = true
					}
					continue cells
				}
			}
		}
	}
	return changed
}

// boxLineRows looks, for each row in the box, for a digit whose only
// remaining candidates in that row lie inside this box, and eliminates it
// from the box's other rows. A digit absent from the row entirely is a
// contradiction.
func boxLineRows(s *State, minY, maxY, minX, maxX int) (changed bool, err error) {
	for i := minY; i < maxY; i++ {
		for c := 1; c <= size; c++ {
			vb := uint16(1) << c
			foundC := false
			outsideBox := false
			for j1 := 0; j1 < size; j1++ {
				if s.cand[i][j1]&vb != 0 {
					if minX <= j1 && j1 < maxX {
						foundC = true
					} else {
						outsideBox = true
						break
					}
				}
			}
			if outsideBox {
				continue
			}
			if !foundC {
				return changed, newSolveError(MissingDigit, "digit %d not found in row %d", c, i)
			}
			for i2 := minY; i2 < maxY; i2++ {
				if i2 == i {
					continue
				}
				for j2 := minX; j2 < maxX; j2++ {
					if s.cand[i2][j2]&vb != 0 {
						s.cand[i2][j2] &^= vb
						changed = true
					}
				}
			}
		}
	}
	return changed, nil
}

// boxLineCols is boxLineRows scanning the column stack instead.
func boxLineCols(s *State, minY, maxY, minX, maxX int) (changed bool, err error) {
	for j := minX; j < maxX; j++ {
		for c := 1; c <= size; c++ {
			vb := uint16(1) << c
			foundC := false
			outsideBox := false
			for i1 := 0; i1 < size; i1++ {
				if s.cand[i1][j]&vb != 0 {
					if minY <= i1 && i1 < maxY {
						foundC = true
					} else {
						outsideBox = true
						break
					}
				}
			}
			if outsideBox {
				continue
			}
			if !foundC {
				return changed, newSolveError(MissingDigit, "digit %d not found in column %d", c, j)
			}
			for j2 := minX; j2 < maxX; j2++ {
				if j2 == j {
					continue
				}
				for i2 := minY; i2 < maxY; i2++ {
					if s.cand[i2][j2]&vb != 0 {
						s.cand[i2][j2] &^= vb
						changed = true
					}
				}
			}
		}
	}
	return changed, nil
}

// pointingBoxRow looks for a digit whose only candidates within this box
// all lie in a single row, and eliminates it from that row outside the
// box. It never modifies this box, so it reports no "changed" flag — only
// the foreign boxes it dirtied. Its writes stay within this box's row
// band, which is what lets CoordinatedParallel run it during a row-phase
// alongside other boxes' row-scoped strategies without a shared lock;
// pointingBoxCol below is the column-scoped half, kept as a separate
// function for exactly that reason even though Sequential and
// IndependentParallel — which hold a whole box's row band and column
// stack at once — always call both together.
func pointingBoxRow(s *State, minY, maxY, minX, maxX int) (foreign []dirtyMark) {
	selfBy, selfBx := minY/boxHeight, minX/boxWidth
	for i := minY; i < maxY; i++ {
		for c := 1; c <= size; c++ {
			vb := uint16(1) << c
			onlyThisRow := true
			for i1 := minY; i1 < maxY; i1++ {
				found := false
				for j1 := minX; j1 < maxX; j1++ {
					if s.cand[i1][j1]&vb != 0 {
						found = true
					}
				}
				if found != (i == i1) {
					onlyThisRow = false
					break
				}
			}
			if !onlyThisRow {
				continue
			}
			for j := 0; j < size; j++ {
				if minX <= j && j < maxX {
					continue
				}
				if s.cand[i][j]&vb != 0 {
					s.cand[i][j] &^= vb
					by, bx := boxOf(i, j)
					foreign = append(foreign, dirtyMark{by: by, bx: bx, isRow: true}, dirtyMark{by: by, bx: bx, isRow: false})
					foreign = append(foreign, dirtyMark{by: selfBy, bx: selfBx, isRow: true})
				}
			}
		}
	}
	return foreign
}

// pointingBoxCol is pointingBoxRow's column-scoped half: it only writes
// within this box's column stack.
func pointingBoxCol(s *State, minY, maxY, minX, maxX int) (foreign []dirtyMark) {
	selfBy, selfBx := minY/boxHeight, minX/boxWidth
	for j := minX; j < maxX; j++ {
		for c := 1; c <= size; c++ {
			vb := uint16(1) << c
			onlyThisCol := true
			for j1 := minX; j1 < maxX; j1++ {
				found := false
				for i1 := minY; i1 < maxY; i1++ {
					if s.cand[i1][j1]&vb != 0 {
						found = true
					}
				}
				if found != (j == j1) {
					onlyThisCol = false
					break
				}
			}
			if !onlyThisCol {
				continue
			}
			for i := 0; i < size; i++ {
				if minY <= i && i < maxY {
					continue
				}
				if s.cand[i][j]&vb != 0 {
					s.cand[i][j] &^= vb
					by, bx := boxOf(i, j)
					foreign = append(foreign, dirtyMark{by: by, bx: bx, isRow: true}, dirtyMark{by: by, bx: bx, isRow: false})
					foreign = append(foreign, dirtyMark{by: selfBy, bx: selfBx, isRow: false})
				}
			}
		}
	}
	return foreign
}
