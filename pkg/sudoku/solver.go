package sudoku

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// This file is the top-level solve orchestrator from spec §4.5/§6,
// grounded on the teacher's solver.go (New/LoadPuzzle/Solve dispatch) and
// adaptive.go (detectDifficulty), generalized from racing strategies to
// picking one of three coordination Modes and, for logging, borrowing the
// package-level logrus.Logger idiom from
// other_examples/vancomm-minesweeper-server__main.go and the
// uuid-per-request correlation pattern from
// other_examples/dyluth-holt__doc.go.

// Options configures a Solve call. The zero value runs Sequential mode
// with up to GOMAXPROCS guess-driver branches running concurrently.
type Options struct {
	Mode Mode

	// MaxGuessBranches caps how many guess-driver candidates run
	// concurrently at once across the whole recursion tree. Zero means
	// GOMAXPROCS.
	MaxGuessBranches int

	// ParallelWorkers is the worker count IndependentParallel starts.
	// Zero means one per box.
	ParallelWorkers int

	// Logger receives structured progress/diagnostic entries. Nil means
	// no logging.
	Logger *logrus.Logger
}

// runScheduler dispatches to the Box Scheduler implementation the given
// Mode names. Both Solve and the Guess Driver call this, so the three
// orchestration protocols share one entry point.
func runScheduler(ctx context.Context, s *State, mode Mode, workers int, stats *Stats) error {
	stats.Mode = mode
	switch mode {
	case Sequential:
		return RunSequential(s, stats)
	case IndependentParallel:
		return RunIndependentParallel(ctx, s, stats, workers)
	case CoordinatedParallel:
		return RunCoordinatedParallel(ctx, s, stats)
	default:
		return newSolveError(MalformedInput, "unknown mode %v", mode)
	}
}

// Solve applies b's givens, runs the chosen Mode's Box Scheduler, and —
// if logical deduction alone doesn't finish the grid — falls back to the
// Guess Driver, per spec §4.5. It returns the solved Board and the run's
// Stats, or an error if the givens conflict or the grid has no solution.
func Solve(ctx context.Context, b Board, opts Options) (Board, Stats, error) {
	start := time.Now()
	log := opts.Logger
	runID := uuid.New().String()

	if log != nil {
		log.WithFields(logrus.Fields{"run_id": runID, "mode": opts.Mode}).Info("solve starting")
	}

	s, err := Initialize(b)
	if err != nil {
		if log != nil {
			log.WithFields(logrus.Fields{"run_id": runID, "error": err}).Warn("givens rejected")
		}
		return Board{}, Stats{Mode: opts.Mode}, err
	}

	stats := Stats{Mode: opts.Mode}
	if err := runScheduler(ctx, s, opts.Mode, opts.ParallelWorkers, &stats); err != nil {
		stats.Elapsed = time.Since(start)
		stats.Snapshot = s.Snapshot()
		if log != nil {
			log.WithFields(logrus.Fields{"run_id": runID, "error": err}).Warn("scheduler reported contradiction")
		}
		return Board{}, stats, err
	}

	if !s.IsComplete() {
		if log != nil {
			log.WithFields(logrus.Fields{"run_id": runID}).Info("deduction stalled, starting guess driver")
		}
		driver := newGuessDriver(opts.Mode, opts.ParallelWorkers, opts.MaxGuessBranches, &stats)
		solved, err := driver.solve(ctx, s, 0)
		if err != nil {
			stats.Elapsed = time.Since(start)
			stats.Snapshot = s.Snapshot()
			if log != nil {
				log.WithFields(logrus.Fields{"run_id": runID, "error": err}).Warn("guess driver exhausted")
			}
			return Board{}, stats, err
		}
		s = solved
	}

	stats.Elapsed = time.Since(start)
	if log != nil {
		log.WithFields(logrus.Fields{
			"run_id":         runID,
			"elapsed":        stats.Elapsed,
			"guess_branches": stats.GuessBranches,
		}).Info("solve finished")
	}
	return s.Board(), stats, nil
}

// RecommendMode classifies b's apparent difficulty from its given count
// alone, and returns the Mode best suited to it —
// a convenience for callers with no opinion of their own, generalized
// from the teacher's adaptive.go difficulty detector. Sparse, hard
// puzzles that lean on the Guess Driver benefit most from the extra
// worker concurrency of CoordinatedParallel; dense, easy puzzles that
// deduction alone resolves gain nothing from parallelism worth its
// coordination overhead.
func RecommendMode(b Board) (Mode, Difficulty) {
	given := 0
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if b[i][j] != unknown {
				given++
			}
		}
	}

	switch {
	case given >= 45:
		return Sequential, DifficultyEasy
	case given >= 32:
		return Sequential, DifficultyMedium
	case given >= 24:
		return IndependentParallel, DifficultyHard
	default:
		return CoordinatedParallel, DifficultyExtreme
	}
}
