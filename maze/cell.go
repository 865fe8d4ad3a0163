package maze

import "fmt"

// CellState is the semantic meaning of a single maze cell.
type CellState uint8

const (
	Open CellState = iota
	Blocked
	Start
	End
)

// String returns the lower-case name of the state.
func (s CellState) String() string {
	switch s {
	case Open:
		return "open"
	case Blocked:
		return "blocked"
	case Start:
		return "start"
	case End:
		return "end"
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// Symbol returns the ASCII symbol used by String renderings of a maze.
func (s CellState) Symbol() byte {
	switch s {
	case Blocked:
		return '#'
	case Start:
		return 'S'
	case End:
		return 'E'
	default:
		return '.'
	}
}

// StateFromSymbol is the inverse of Symbol.
func StateFromSymbol(b byte) (CellState, bool) {
	switch b {
	case '.', ' ':
		return Open, true
	case '#':
		return Blocked, true
	case 'S':
		return Start, true
	case 'E':
		return End, true
	}
	return 0, false
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// GetRow returns the row index of the cell.
func (cp CellPosition) GetRow() int {
	return cp.Row
}

// GetCol returns the column index of the cell.
func (cp CellPosition) GetCol() int {
	return cp.Col
}

// String formats the position as "(row,col)".
func (cp CellPosition) String() string {
	return fmt.Sprintf("(%d,%d)", cp.Row, cp.Col)
}

// Cell is a single grid position together with its state.
// Two cells compare equal with == when row, column and state all match.
type Cell struct {
	CellPosition
	State CellState
}

// NewCell creates a cell at the given coordinates.
func NewCell(row, col int, state CellState) Cell {
	return Cell{CellPosition: CellPosition{Row: row, Col: col}, State: state}
}

// Position returns the coordinates of the cell.
func (c Cell) Position() CellPosition {
	return c.CellPosition
}
