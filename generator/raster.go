package generator

import (
	"github.com/beka-birhanu/vinom-mazesolver/maze"
)

// corridorWidth is the number of open cells across a room or passage. Three is
// the narrowest corridor whose middle line touches no wall.
const corridorWidth = 3

const pitch = corridorWidth + 1

// GridSize returns how many grid cells a run of n rooms spans.
func GridSize(n int) int {
	return n*pitch + 1
}

// Rasterize converts the lattice into a walled maze. Every room becomes a
// corridorWidth square of open cells, walls and wall posts one blocked cell
// thick. The start sits in the middle of the top-left room and the end in the
// middle of the bottom-right room.
func (l *Lattice) Rasterize() (*maze.Maze, error) {
	height, width := GridSize(l.Height), GridSize(l.Width)
	states := make([][]maze.CellState, height)
	for r := range states {
		states[r] = make([]maze.CellState, width)
		for c := range states[r] {
			states[r][c] = maze.Blocked
		}
	}

	for row := 0; row < l.Height; row++ {
		for col := 0; col < l.Width; col++ {
			top, left := row*pitch+1, col*pitch+1
			room := l.Grid[row][col]
			for i := 0; i < corridorWidth; i++ {
				for j := 0; j < corridorWidth; j++ {
					states[top+i][left+j] = maze.Open
				}
				if !room.EastWall {
					states[top+i][left+corridorWidth] = maze.Open
				}
				if !room.SouthWall {
					states[top+corridorWidth][left+i] = maze.Open
				}
			}
		}
	}

	mid := corridorWidth / 2
	states[1+mid][1+mid] = maze.Start
	states[(l.Height-1)*pitch+1+mid][(l.Width-1)*pitch+1+mid] = maze.End

	return maze.FromStates(states)
}

// New generates a width x height room maze from seed and rasterises it.
func New(width, height int, seed int64) (*maze.Maze, error) {
	l, err := NewLattice(width, height, seed)
	if err != nil {
		return nil, err
	}
	return l.Rasterize()
}
