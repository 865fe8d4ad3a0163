/*
Package maze models a rectangular walled maze as a grid graph.

A Maze owns a dense grid of Cell values addressed by (row, col). Every cell is
Open, Blocked, Start or End. Cells are connected to the up to eight cells of
their Moore neighbourhood; the maze itself knows nothing about search and hands
the work to a pluggable Solver through Solve.
*/
package maze

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfBounds     = errors.New("position out of bounds")
)

// ResultFunc receives the normalized outcome of a solve. path is empty when
// found is false.
type ResultFunc func(path []Cell, found bool)

// Solver searches a maze and reports the path through cb exactly once.
// A nil path means no solution exists.
type Solver interface {
	Solve(m WalledMaze, cb func(path []Cell)) error
}

// WalledMaze is the read-only contract a Solver works against.
type WalledMaze interface {
	Height() int
	Width() int
	StartNode() (Cell, bool)
	Node(row, col int) (Cell, error)
	Nodes() iter.Seq[Cell]
	AdjacentNodes(c Cell) iter.Seq[Cell]
	IsEndNode(c *Cell) bool
}

var _ WalledMaze = &Maze{}

// Maze is a fixed height x width grid of cells.
type Maze struct {
	height int
	width  int
	cells  []Cell // row-major, len == height*width

	start    int          // index into cells, -1 when the maze has no start
	endNodes map[int]bool // indices of end cells
}

// New builds a maze from a pre-populated grid. The grid must be non-empty and
// rectangular and every cell must sit at its own coordinates. The first Start
// cell in row-major order becomes the start node and every End cell an end node.
func New(grid [][]Cell) (*Maze, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("%w: grid is empty", ErrInvalidArgument)
	}

	height, width := len(grid), len(grid[0])
	m := &Maze{
		height:   height,
		width:    width,
		cells:    make([]Cell, 0, height*width),
		start:    -1,
		endNodes: make(map[int]bool),
	}

	for row, cells := range grid {
		if len(cells) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidArgument, row, len(cells), width)
		}
		for col, cell := range cells {
			if cell.Row != row || cell.Col != col {
				return nil, fmt.Errorf("%w: cell %s stored at (%d,%d)", ErrInvalidArgument, cell.CellPosition, row, col)
			}
			idx := len(m.cells)
			m.cells = append(m.cells, cell)
			switch cell.State {
			case Start:
				if m.start < 0 {
					m.start = idx
				}
			case End:
				m.endNodes[idx] = true
			}
		}
	}

	return m, nil
}

// FromStates builds a maze from a grid of states, creating the cells.
func FromStates(states [][]CellState) (*Maze, error) {
	grid := make([][]Cell, len(states))
	for row := range states {
		grid[row] = make([]Cell, len(states[row]))
		for col, state := range states[row] {
			grid[row][col] = NewCell(row, col, state)
		}
	}
	return New(grid)
}

// Height returns the number of rows.
func (m *Maze) Height() int {
	return m.height
}

// Width returns the number of columns.
func (m *Maze) Width() int {
	return m.width
}

// InBound reports whether (row, col) lies inside the grid.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.height && col >= 0 && col < m.width
}

func (m *Maze) index(row, col int) (int, error) {
	if !m.InBound(row, col) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, row, col, m.height, m.width)
	}
	return row*m.width + col, nil
}

// Node returns the cell at (row, col).
func (m *Maze) Node(row, col int) (Cell, error) {
	idx, err := m.index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return m.cells[idx], nil
}

// Nodes yields every cell in row-major order. The sequence can be ranged over
// any number of times.
func (m *Maze) Nodes() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range m.cells {
			if !yield(c) {
				return
			}
		}
	}
}

// AdjacentNodes yields the Moore neighbourhood of c clipped to the grid, in
// row-major order within the 3x3 block around c.
func (m *Maze) AdjacentNodes(c Cell) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for row := c.Row - 1; row <= c.Row+1; row++ {
			for col := c.Col - 1; col <= c.Col+1; col++ {
				if !m.InBound(row, col) || (row == c.Row && col == c.Col) {
					continue
				}
				if !yield(m.cells[row*m.width+col]) {
					return
				}
			}
		}
	}
}

// IsEndNode reports whether c is an end cell. A nil cell is never an end.
func (m *Maze) IsEndNode(c *Cell) bool {
	if c == nil {
		return false
	}
	return c.State == End
}

// StartNode returns the start cell, if the maze has one.
func (m *Maze) StartNode() (Cell, bool) {
	if m.start < 0 {
		return Cell{}, false
	}
	return m.cells[m.start], true
}

// EndNodes returns the end cells in row-major order.
func (m *Maze) EndNodes() []Cell {
	ends := make([]Cell, 0, len(m.endNodes))
	for idx, c := range m.cells {
		if m.endNodes[idx] {
			ends = append(ends, c)
		}
	}
	return ends
}

// SetStartNode makes the cell at pos the start node. The cell keeps its state,
// so a start placed on an End cell is already solved. Blocked cells are refused.
func (m *Maze) SetStartNode(pos CellPosition) error {
	idx, err := m.index(pos.Row, pos.Col)
	if err != nil {
		return err
	}
	if m.cells[idx].State == Blocked {
		return fmt.Errorf("%w: start %s is blocked", ErrInvalidArgument, pos)
	}
	m.start = idx
	return nil
}

// ClearStartNode removes the start node.
func (m *Maze) ClearStartNode() {
	m.start = -1
}

// AddEndNode turns the cell at pos into an end node. Blocked cells are refused.
func (m *Maze) AddEndNode(pos CellPosition) error {
	idx, err := m.index(pos.Row, pos.Col)
	if err != nil {
		return err
	}
	if m.cells[idx].State == Blocked {
		return fmt.Errorf("%w: end %s is blocked", ErrInvalidArgument, pos)
	}
	m.setState(idx, End)
	return nil
}

// SetCellState reassigns the state of the cell at pos and keeps the start and
// end records in step: an End state adds an end node, any other state removes
// one, blocking the start cell clears the start, and a Start state becomes the
// start when the maze has none. It is meant for maze builders and must not be
// called while a solve is running.
func (m *Maze) SetCellState(pos CellPosition, state CellState) error {
	idx, err := m.index(pos.Row, pos.Col)
	if err != nil {
		return err
	}
	m.setState(idx, state)
	return nil
}

func (m *Maze) setState(idx int, state CellState) {
	m.cells[idx].State = state
	if state == End {
		m.endNodes[idx] = true
	} else {
		delete(m.endNodes, idx)
	}

	switch {
	case state == Blocked && idx == m.start:
		m.start = -1
	case state == Start && m.start < 0:
		m.start = idx
	}
}

// Solve runs s against the maze and calls cb exactly once with the normalized
// result. It fails before any search work when s or cb is nil.
func (m *Maze) Solve(s Solver, cb ResultFunc) error {
	if s == nil {
		return fmt.Errorf("%w: solver cannot be nil", ErrInvalidArgument)
	}
	if cb == nil {
		return fmt.Errorf("%w: result callback cannot be nil", ErrInvalidArgument)
	}

	return s.Solve(m, func(path []Cell) {
		if path == nil {
			cb([]Cell{}, false)
			return
		}
		cb(path, true)
	})
}

// Rows renders the maze as one ASCII string per row.
func (m *Maze) Rows() []string {
	rows := make([]string, m.height)
	line := make([]byte, m.width)
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			line[col] = m.cells[row*m.width+col].State.Symbol()
		}
		rows[row] = string(line)
	}
	return rows
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	return strings.Join(m.Rows(), "\n") + "\n"
}
