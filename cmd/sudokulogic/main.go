// Command sudokulogic solves a 9x9 Sudoku puzzle loaded from a text file
// using box-scoped logical deduction with a recursive guess-and-check
// fallback.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
