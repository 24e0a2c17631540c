package sudoku

// Initialize builds a fresh State from a Board of givens, the Initialiser
// from spec §4.4, grounded on original_source/src/ParallelLogical.java's
// init(): apply each given with setValue (so its peers' candidates are
// eliminated immediately, not deferred to the first scheduler pass), then
// mark the whole grid dirty so every orchestrator starts from a clean
// sweep. Two givens that directly collide — same digit, same row, column,
// or box — are reported as GivensConflict before any solving begins.
func Initialize(b Board) (*State, error) {
	if err := validateShape(b); err != nil {
		return nil, err
	}

	s := NewState()
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			v := b[i][j]
			if v == unknown {
				continue
			}
			if s.cand[i][j]&(uint16(1)<<v) == 0 {
				return nil, newSolveError(GivensConflict, "given %d at R%dC%d conflicts with an earlier given", v, i, j)
			}
			s.setValue(i, j, v)
		}
	}
	s.DirtyAll()
	return s, nil
}

// validateShape reports MalformedInput if b contains anything outside
// 0-9, the one check spec §4.4 requires before the Initialiser can trust
// the board's digits as given/unknown markers.
func validateShape(b Board) error {
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if b[i][j] < 0 || b[i][j] > size {
				return newSolveError(MalformedInput, "R%dC%d holds %d, want 0-9", i, j, b[i][j])
			}
		}
	}
	return nil
}
