// Package mazeio reads and writes mazes in the formats the solver accepts:
// ASCII grids, YAML documents, images and a compact protobuf wire form.
package mazeio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-mazesolver/maze"
)

const pathSymbol = '*'

// MaxDimension is the largest height or width any decoder accepts. Callers may
// enforce a tighter limit afterwards.
const MaxDimension = 4096

var (
	ErrUnknownSymbol = errors.New("unknown maze symbol")
	ErrUnknownColor  = errors.New("unknown maze color")
	ErrMalformed     = errors.New("malformed maze data")
	ErrTooLarge      = errors.New("maze exceeds the decoder size limit")
)

// ParseRows builds a maze from ASCII rows: '#' wall, '.' or ' ' open, 'S'
// start, 'E' end.
func ParseRows(rows []string) (*maze.Maze, error) {
	if len(rows) > MaxDimension {
		return nil, fmt.Errorf("%w: %d rows", ErrTooLarge, len(rows))
	}
	states := make([][]maze.CellState, len(rows))
	for r, row := range rows {
		if len(row) > MaxDimension {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrTooLarge, r, len(row))
		}
		states[r] = make([]maze.CellState, len(row))
		for c := 0; c < len(row); c++ {
			s, ok := maze.StateFromSymbol(row[c])
			if !ok {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownSymbol, row[c], r, c)
			}
			states[r][c] = s
		}
	}
	return maze.FromStates(states)
}

// ParseText reads an ASCII maze, one row per line. Trailing blank lines are
// ignored.
func ParseText(r io.Reader) (*maze.Maze, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return ParseRows(rows)
}

// FormatText renders m with the open cells of path drawn as '*'.
func FormatText(m *maze.Maze, path []maze.Cell) string {
	rows := m.Rows()
	grid := make([][]byte, len(rows))
	for i, row := range rows {
		grid[i] = []byte(row)
	}
	for _, c := range path {
		if c.State == maze.Open {
			grid[c.Row][c.Col] = pathSymbol
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
