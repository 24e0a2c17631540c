package sudoku

import (
	"strconv"
	"strings"
)

// This file is diagnostic formatting, grounded on the teacher's utils.go
// (Grid.String, GetPerformanceReport).

// String renders b as nine lines of nine characters, '.' for an unknown
// cell and the digit itself otherwise — the dot/digit grid format
// cmd/sudokulogic reads and writes.
func (b Board) String() string {
	var sb strings.Builder
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if b[i][j] == unknown {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + b[i][j]))
			}
		}
		if i < size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Snapshot renders s's current values and, for unknown cells, their
// remaining candidate count in brackets — useful when diagnosing a stalled
// scheduler run before the Guess Driver takes over.
func (s *State) Snapshot() string {
	var sb strings.Builder
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if v := s.value[i][j]; v != unknown {
				sb.WriteByte(byte('0' + v))
			} else {
				sb.WriteByte('[')
				sb.WriteString(strconv.Itoa(s.CandidateCount(i, j)))
				sb.WriteByte(']')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders a Stats report as a human-readable summary line, used by
// cmd/sudokulogic's default output and by test failure messages.
func (st Stats) String() string {
	var sb strings.Builder
	sb.WriteString(st.Mode.String())
	sb.WriteString(": naked_singles=")
	sb.WriteString(strconv.FormatUint(st.NakedSingles, 10))
	sb.WriteString(" hidden_singles=")
	sb.WriteString(strconv.FormatUint(st.HiddenSingles, 10))
	sb.WriteString(" naked_pairs=")
	sb.WriteString(strconv.FormatUint(st.NakedPairs, 10))
	sb.WriteString(" hidden_pairs=")
	sb.WriteString(strconv.FormatUint(st.HiddenPairs, 10))
	sb.WriteString(" box_line=")
	sb.WriteString(strconv.FormatUint(st.BoxLine, 10))
	sb.WriteString(" pointing=")
	sb.WriteString(strconv.FormatUint(st.Pointing, 10))
	sb.WriteString(" rounds=")
	sb.WriteString(strconv.FormatUint(st.SchedulerRounds, 10))
	sb.WriteString(" guess_branches=")
	sb.WriteString(strconv.FormatUint(st.GuessBranches, 10))
	sb.WriteString(" guess_depth=")
	sb.WriteString(strconv.Itoa(st.GuessDepthReached))
	sb.WriteString(" elapsed=")
	sb.WriteString(st.Elapsed.String())
	return sb.String()
}
