package sudoku

import (
	"context"
	"testing"
)

func TestRowScopedStepAppliesBoxLineRows(t *testing.T) {
	s := NewState()
	// Confine digit 9 in row 0 to the top-left box, so the row-scoped
	// half of the step has something to eliminate from the box's other
	// two rows.
	for j := boxWidth; j < size; j++ {
		s.cand[0][j] &^= uint16(1) << 9
	}
	_, _, report, err := rowScopedStep(s, 0, 0)
	if err != nil {
		t.Fatalf("rowScopedStep: %v", err)
	}
	if report.boxLine == 0 {
		t.Error("rowScopedStep: want a box-line elimination recorded")
	}
	for j := boxWidth; j < size; j++ {
		if s.cand[0][j]&(uint16(1)<<9) != 0 {
			t.Errorf("rowScopedStep: (0,%d) still carries 9", j)
		}
	}
}

func TestColScopedStepAppliesBoxLineCols(t *testing.T) {
	s := NewState()
	for i := boxHeight; i < size; i++ {
		s.cand[i][0] &^= uint16(1) << 9
	}
	_, _, report, err := colScopedStep(s, 0, 0)
	if err != nil {
		t.Fatalf("colScopedStep: %v", err)
	}
	if report.boxLine == 0 {
		t.Error("colScopedStep: want a box-line elimination recorded")
	}
	for i := boxHeight; i < size; i++ {
		if s.cand[i][0]&(uint16(1)<<9) != 0 {
			t.Errorf("colScopedStep: (%d,0) still carries 9", i)
		}
	}
}

func TestRunCoordinatedParallelSolvesNakedSinglesPuzzle(t *testing.T) {
	board := parseGrid(t, nakedSinglesPuzzle)
	want := parseGrid(t, nakedSinglesSolution)

	s, err := Initialize(board)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	stats := &Stats{}
	if err := RunCoordinatedParallel(context.Background(), s, stats); err != nil {
		t.Fatalf("RunCoordinatedParallel: %v", err)
	}
	if !s.IsComplete() {
		t.Fatal("RunCoordinatedParallel: grid not complete after run")
	}
	if s.Board() != want {
		t.Fatalf("RunCoordinatedParallel: got %v, want %v", s.Board(), want)
	}
	if err := s.checkInvariants(); err != nil {
		t.Fatalf("checkInvariants: %v", err)
	}
}

func TestRunCoordinatedParallelStopsWhenQuiescent(t *testing.T) {
	board := parseGrid(t, nakedSinglesSolution)
	s, err := Initialize(board)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	stats := &Stats{}
	if err := RunCoordinatedParallel(context.Background(), s, stats); err != nil {
		t.Fatalf("RunCoordinatedParallel: %v", err)
	}
	maxClean := numBoxesY
	if numBoxesX > maxClean {
		maxClean = numBoxesX
	}
	if stats.SchedulerRounds != uint64(maxClean) {
		t.Errorf("RunCoordinatedParallel: SchedulerRounds = %d, want %d on an already-solved grid", stats.SchedulerRounds, maxClean)
	}
}

func TestRunCoordinatedParallelRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	board := parseGrid(t, nakedSinglesPuzzle)
	s, err := Initialize(board)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	stats := &Stats{}
	if err := RunCoordinatedParallel(ctx, s, stats); err == nil {
		t.Fatal("RunCoordinatedParallel: got nil error with an already-cancelled context")
	}
}
