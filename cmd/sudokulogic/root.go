package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abzium/parallel-sudoku/pkg/sudoku"
)

// This file is the CLI surface spec.md §6 describes and SPEC_FULL.md §8
// carries forward as an external interface: `sudokulogic <filename>
// <algorithm>`. It's grounded on
// other_examples/operator-framework-deppy__cmd.go for the cobra command
// shape and on spf13/viper for flag/env binding, the conventional cobra
// pairing the rest of the Go CLI ecosystem this pack draws from uses.

var log = logrus.New()

// algorithms maps spec.md §6's six CLI algorithm names onto the engine.
// The three logical ones dispatch into pkg/sudoku; the other three name a
// brute-force/backtracking family the SPEC_FULL.md Non-goals section
// explicitly excludes from this engine (see DESIGN.md) and are accepted
// on the command line only so the CLI's argument surface matches
// spec.md §6 exactly, reporting clearly that they're unimplemented.
var algorithms = map[string]sudoku.Mode{
	"logical":            sudoku.Sequential,
	"parallelLogical":    sudoku.IndependentParallel,
	"coordinatedLogical": sudoku.CoordinatedParallel,
}

var unimplementedAlgorithms = map[string]bool{
	"backtracking":             true,
	"parallelizedBacktracking": true,
	"bruteforce":               true,
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sudokulogic <filename> <algorithm>",
		Short: "Solve a 9x9 Sudoku puzzle with box-scoped logical deduction",
		Long: "sudokulogic loads a puzzle from a dot/digit grid file and solves it with the\n" +
			"chosen algorithm: logical, parallelLogical, or coordinatedLogical.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSolve,
	}

	cmd.PersistentFlags().Int("workers", 0, "worker goroutines for parallelLogical (0 = one per box)")
	cmd.PersistentFlags().Int("max-guess-branches", 0, "concurrent guess-driver branches (0 = GOMAXPROCS)")
	cmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	cmd.PersistentFlags().Bool("snapshot", false, "on failure, print the stalled grid's candidate snapshot")

	viper.SetEnvPrefix("SUDOKULOGIC")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(cmd.PersistentFlags())

	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	filename, algorithm := args[0], args[1]

	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	board, err := loadBoard(filename)
	if err != nil {
		// File-not-found (and any other load failure) is the one case
		// spec.md §6 requires a nonzero exit for.
		return err
	}

	if unimplementedAlgorithms[algorithm] {
		fmt.Fprintf(cmd.OutOrStdout(), "algorithm %q is not implemented by this engine\n", algorithm)
		return nil
	}
	mode, ok := algorithms[algorithm]
	if !ok {
		return fmt.Errorf("unknown algorithm %q", algorithm)
	}

	opts := sudoku.Options{
		Mode:             mode,
		ParallelWorkers:  viper.GetInt("workers"),
		MaxGuessBranches: viper.GetInt("max-guess-branches"),
		Logger:           log,
	}

	solved, stats, err := sudoku.Solve(context.Background(), board, opts)
	out := cmd.OutOrStdout()
	if err != nil {
		fmt.Fprintf(out, "unsolvable: %v\n", err)
		fmt.Fprintln(out, stats.String())
		if viper.GetBool("snapshot") && stats.Snapshot != "" {
			fmt.Fprintln(out, stats.Snapshot)
		}
		return nil // unsolvable puzzles still exit zero, per spec.md §6
	}

	fmt.Fprintln(out, solved.String())
	fmt.Fprintln(out, stats.String())
	return nil
}
