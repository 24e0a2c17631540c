package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/abzium/parallel-sudoku/pkg/sudoku"
)

// loadBoard reads a 9x9 puzzle from path in the dot/digit grid format
// sudoku.Board.String writes: nine lines of nine characters, '.' or '0'
// for unknown, '1'-'9' for a given. Blank lines and lines starting with
// '#' are skipped so puzzle files can carry a comment header.
func loadBoard(path string) (sudoku.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return sudoku.Board{}, err
	}
	defer f.Close()

	var b sudoku.Board
	row := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && row < 9 {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(line) < 9 {
			return sudoku.Board{}, fmt.Errorf("%s: row %d has %d columns, want 9", path, row, len(line))
		}
		for col := 0; col < 9; col++ {
			switch c := line[col]; {
			case c == '.' || c == '0':
				b[row][col] = 0
			case c >= '1' && c <= '9':
				b[row][col] = int(c - '0')
			default:
				return sudoku.Board{}, fmt.Errorf("%s: row %d col %d has %q, want a digit or '.'", path, row, col, c)
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return sudoku.Board{}, err
	}
	if row != 9 {
		return sudoku.Board{}, fmt.Errorf("%s: found %d puzzle rows, want 9", path, row)
	}
	return b, nil
}
