package sudoku

import (
	"context"
	"testing"
)

func TestAcquireLineExclusivity(t *testing.T) {
	s := NewState()

	if !s.acquireLine(0, 0) {
		t.Fatal("acquireLine(0,0) = false on an unlocked state")
	}
	// Box (0,1) shares row band 0 with box (0,0); its line is unavailable
	// until (0,0) releases.
	if s.acquireLine(0, 1) {
		t.Fatal("acquireLine(0,1) = true while (0,0) holds row band 0")
	}
	// Box (1,0) shares column stack 0 with box (0,0); same story.
	if s.acquireLine(1, 0) {
		t.Fatal("acquireLine(1,0) = true while (0,0) holds column stack 0")
	}
	// Box (1,1) shares neither a row band nor a column stack with (0,0).
	if !s.acquireLine(1, 1) {
		t.Fatal("acquireLine(1,1) = false despite disjoint row/column")
	}
	s.releaseLine(1, 1)

	s.releaseLine(0, 0)
	if !s.acquireLine(0, 1) {
		t.Fatal("acquireLine(0,1) = false after (0,0) released its line")
	}
}

func TestRunIndependentParallelSolvesNakedSinglesPuzzle(t *testing.T) {
	board := parseGrid(t, nakedSinglesPuzzle)
	want := parseGrid(t, nakedSinglesSolution)

	s, err := Initialize(board)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	stats := &Stats{}
	if err := RunIndependentParallel(context.Background(), s, stats, 4); err != nil {
		t.Fatalf("RunIndependentParallel: %v", err)
	}
	if !s.IsComplete() {
		t.Fatal("RunIndependentParallel: grid not complete after run")
	}
	if s.Board() != want {
		t.Fatalf("RunIndependentParallel: got %v, want %v", s.Board(), want)
	}
	if err := s.checkInvariants(); err != nil {
		t.Fatalf("checkInvariants: %v", err)
	}
}

func TestRunIndependentParallelDefaultsWorkerCount(t *testing.T) {
	board := parseGrid(t, nakedSinglesPuzzle)
	s, err := Initialize(board)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	stats := &Stats{}
	if err := RunIndependentParallel(context.Background(), s, stats, 0); err != nil {
		t.Fatalf("RunIndependentParallel: %v", err)
	}
	if !s.IsComplete() {
		t.Fatal("RunIndependentParallel: grid not complete with default worker count")
	}
}

func TestRunIndependentParallelRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	board := parseGrid(t, nakedSinglesPuzzle)
	s, err := Initialize(board)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	stats := &Stats{}
	if err := RunIndependentParallel(ctx, s, stats, 4); err == nil {
		t.Fatal("RunIndependentParallel: got nil error with an already-cancelled context")
	}
}
