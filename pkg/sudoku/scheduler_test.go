package sudoku

import "testing"

func TestSweepOrderVisitsEveryBoxOnce(t *testing.T) {
	for _, rowMajor := range []bool{true, false} {
		seen := make(map[boxPos]bool)
		for _, pos := range sweepOrder(rowMajor) {
			if seen[pos] {
				t.Fatalf("sweepOrder(%v): box %v visited twice", rowMajor, pos)
			}
			seen[pos] = true
		}
		if len(seen) != numBoxesY*numBoxesX {
			t.Fatalf("sweepOrder(%v): visited %d boxes, want %d", rowMajor, len(seen), numBoxesY*numBoxesX)
		}
	}
}

func TestRunSequentialSolvesNakedSinglesPuzzle(t *testing.T) {
	board := parseGrid(t, nakedSinglesPuzzle)
	want := parseGrid(t, nakedSinglesSolution)

	s, err := Initialize(board)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	stats := &Stats{}
	if err := RunSequential(s, stats); err != nil {
		t.Fatalf("RunSequential: %v", err)
	}
	if !s.IsComplete() {
		t.Fatal("RunSequential: grid not complete after run")
	}
	if s.Board() != want {
		t.Fatalf("RunSequential: got %v, want %v", s.Board(), want)
	}
	if stats.SchedulerRounds == 0 {
		t.Error("RunSequential: SchedulerRounds = 0, want at least one pass")
	}
	if err := s.checkInvariants(); err != nil {
		t.Fatalf("checkInvariants: %v", err)
	}
}

func TestRunSequentialStopsWhenQuiescent(t *testing.T) {
	// A fully solved board has nothing left to do; the scheduler should
	// still terminate after its first clean pass rather than loop forever:
	// one pass over the nine boxes Initialize dirtied, which changes
	// nothing, then one pass that finds no dirty box.
	board := parseGrid(t, nakedSinglesSolution)
	s, err := Initialize(board)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	stats := &Stats{}
	if err := RunSequential(s, stats); err != nil {
		t.Fatalf("RunSequential: %v", err)
	}
	if stats.SchedulerRounds != 2 {
		t.Errorf("RunSequential: SchedulerRounds = %d, want 2 on an already-solved grid", stats.SchedulerRounds)
	}
}

func TestRunSequentialDetectsContradiction(t *testing.T) {
	s := NewState()
	// Starve (0,0) of every candidate directly; the next Naked Singles pass
	// over its box must report EmptyCell rather than silently ignore it.
	s.cand[0][0] = 0
	s.DirtyAll()

	stats := &Stats{}
	err := RunSequential(s, stats)
	if !Contradiction(err) {
		t.Fatalf("RunSequential: got err=%v, want a *SolveError", err)
	}
	if kind, _ := KindOf(err); kind != EmptyCell {
		t.Fatalf("RunSequential: got kind=%v, want EmptyCell", kind)
	}
}
