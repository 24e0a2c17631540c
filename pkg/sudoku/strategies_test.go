package sudoku

import "testing"

func TestNakedSinglesBoxFillsSoleCandidate(t *testing.T) {
	s := NewState()
	s.cand[1][1] = uint16(1) << 5 // only one candidate left

	changed, err := nakedSinglesBox(s, 0, boxHeight, 0, boxWidth)
	if err != nil {
		t.Fatalf("nakedSinglesBox: %v", err)
	}
	if !changed {
		t.Fatal("nakedSinglesBox: want the sole candidate resolved")
	}
	if s.Value(1, 1) != 5 {
		t.Fatalf("nakedSinglesBox: Value(1,1) = %d, want 5", s.Value(1, 1))
	}
}

func TestHiddenSinglesRowsFindsConfinedCandidate(t *testing.T) {
	s := NewState()
	// Row 0: every cell except (0,0) has digit 1 excluded, so 1 is hidden
	// in (0,0) even though (0,0) carries several other candidates too.
	for j := 1; j < size; j++ {
		s.cand[0][j] &^= uint16(1) << 1
	}
	if !hiddenSinglesRows(s, 0, boxHeight, 0, boxWidth) {
		t.Fatal("hiddenSinglesRows: want a hidden single found in row 0")
	}
	if s.Value(0, 0) != 1 {
		t.Fatalf("hiddenSinglesRows: Value(0,0) = %d, want 1", s.Value(0, 0))
	}
}

func TestNakedPairsRowsEliminatesFromRestOfRow(t *testing.T) {
	s := NewState()
	pair := uint16(1)<<2 | uint16(1)<<3
	s.cand[0][0] = pair
	s.cand[0][1] = pair

	if !nakedPairsRows(s, 0, boxHeight, 0, boxWidth) {
		t.Fatal("nakedPairsRows: want an elimination from the naked pair")
	}
	for j := 2; j < size; j++ {
		if s.cand[0][j]&pair != 0 {
			t.Errorf("nakedPairsRows: (0,%d) still carries a digit from the pair", j)
		}
	}
	if s.cand[0][0] != pair || s.cand[0][1] != pair {
		t.Error("nakedPairsRows: the pair cells themselves must be untouched")
	}
}

func TestHiddenPairsRowsRestrictsBothCells(t *testing.T) {
	s := NewState()
	// Confine digits 4 and 5 to cells (0,0) and (0,6) only, across row 0.
	for j := 0; j < size; j++ {
		if j == 0 || j == 6 {
			continue
		}
		s.cand[0][j] &^= uint16(1)<<4 | uint16(1)<<5
	}

	changed, foreign := hiddenPairsRows(s, 0, boxHeight, 0, boxWidth)
	if !changed {
		t.Fatal("hiddenPairsRows: want a hidden pair found in row 0")
	}
	want := uint16(1)<<4 | uint16(1)<<5
	if s.cand[0][0] != want {
		t.Errorf("hiddenPairsRows: (0,0) candidates = %#x, want %#x", s.cand[0][0], want)
	}
	if s.cand[0][6] != want {
		t.Errorf("hiddenPairsRows: (0,6) candidates = %#x, want %#x", s.cand[0][6], want)
	}
	if len(foreign) == 0 {
		t.Error("hiddenPairsRows: want a foreign dirty mark for the box containing (0,6)")
	}
}

func TestBoxLineRowsEliminatesOutsideRows(t *testing.T) {
	s := NewState()
	// Confine digit 9, across the whole of row 0, to the top-left box's
	// three columns: boxLineRows must then eliminate 9 from the box's
	// other two rows, since row 0 is the only place left for it.
	for j := boxWidth; j < size; j++ {
		s.cand[0][j] &^= uint16(1) << 9
	}
	changed, err := boxLineRows(s, 0, boxHeight, 0, boxWidth)
	if err != nil {
		t.Fatalf("boxLineRows: %v", err)
	}
	if !changed {
		t.Fatal("boxLineRows: want an elimination")
	}
	for i := 1; i < boxHeight; i++ {
		for j := 0; j < boxWidth; j++ {
			if s.cand[i][j]&(uint16(1)<<9) != 0 {
				t.Errorf("boxLineRows: (%d,%d) still carries 9", i, j)
			}
		}
	}
}

func TestPointingBoxRowEliminatesOutsideBox(t *testing.T) {
	s := NewState()
	// Confine digit 6 within the top-left box to row 0 only.
	for i := 1; i < boxHeight; i++ {
		for j := 0; j < boxWidth; j++ {
			s.cand[i][j] &^= uint16(1) << 6
		}
	}
	foreign := pointingBoxRow(s, 0, boxHeight, 0, boxWidth)
	if len(foreign) == 0 {
		t.Fatal("pointingBoxRow: want at least one elimination reported")
	}
	for j := boxWidth; j < size; j++ {
		if s.cand[0][j]&(uint16(1)<<6) != 0 {
			t.Errorf("pointingBoxRow: (0,%d) still carries 6", j)
		}
	}
}
