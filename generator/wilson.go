/*
Package generator produces solvable walled mazes.

Layouts are generated on a lattice of rooms with Wilson's algorithm, so every
room is reachable from every other room through exactly one route. The lattice
is then rasterised into a maze.Maze whose corridors are wide enough for the
breadth-first solver to pass.
*/
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

const (
	maxLatticeDimension = 64
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
)

type direction struct {
	name string
	dRow int
	dCol int
}

// directions is ordered so a seeded walk is reproducible.
var directions = []direction{
	{"North", -1, 0},
	{"South", 1, 0},
	{"East", 0, 1},
	{"West", 0, -1},
}

// Room is a single lattice cell with its four walls.
type Room struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north side of the room.
	SouthWall bool // SouthWall indicates whether there is a wall on the south side of the room.
	EastWall  bool // EastWall indicates whether there is a wall on the east side of the room.
	WestWall  bool // WestWall indicates whether there is a wall on the west side of the room.
}

type roomPosition struct {
	Row int
	Col int
}

type move struct {
	From      roomPosition
	To        roomPosition
	Direction string
}

// Lattice is a rectangular grid of rooms separated by walls.
type Lattice struct {
	Width  int       // Width of the lattice (number of columns)
	Height int       // Height of the lattice (number of rows)
	Grid   [][]*Room // 2D grid of rooms

	rng *rand.Rand
}

// NewLattice initializes a lattice of the given dimensions and carves it with
// Wilson's algorithm using a generator seeded with seed.
func NewLattice(width, height int, seed int64) (*Lattice, error) {
	if min(width, height) <= 0 || max(width, height) > maxLatticeDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	// Start and end live in different rooms.
	if width*height < 2 {
		return nil, fmt.Errorf("%w: need at least two rooms", ErrInvalidDimensions)
	}

	grid := make([][]*Room, height)
	for i := range grid {
		grid[i] = make([]*Room, width)
		for j := range grid[i] {
			grid[i][j] = &Room{
				NorthWall: true,
				SouthWall: true,
				EastWall:  true,
				WestWall:  true,
			}
		}
	}

	l := &Lattice{
		Width:  width,
		Height: height,
		Grid:   grid,
		rng:    rand.New(rand.NewSource(seed)),
	}
	l.generate()
	return l, nil
}

// randomPosition picks a random room.
func (l *Lattice) randomPosition() roomPosition {
	return roomPosition{Row: l.rng.Intn(l.Height), Col: l.rng.Intn(l.Width)}
}

// randomUnvisitedPosition picks a random room that is not yet part of the maze.
func (l *Lattice) randomUnvisitedPosition(visited map[roomPosition]bool) roomPosition {
	for {
		pos := l.randomPosition()
		if !visited[pos] {
			return pos
		}
	}
}

// neighbors lists the moves leading out of pos.
func (l *Lattice) neighbors(pos roomPosition) []move {
	var result []move
	for _, d := range directions {
		to := roomPosition{Row: pos.Row + d.dRow, Col: pos.Col + d.dCol}
		if to.Row >= 0 && to.Row < l.Height && to.Col >= 0 && to.Col < l.Width {
			result = append(result, move{From: pos, To: to, Direction: d.name})
		}
	}
	return result
}

// openWall removes the wall crossed by m on both sides.
func (l *Lattice) openWall(m move) {
	from, to := l.Grid[m.From.Row][m.From.Col], l.Grid[m.To.Row][m.To.Col]
	switch m.Direction {
	case "North":
		from.NorthWall, to.SouthWall = false, false
	case "South":
		from.SouthWall, to.NorthWall = false, false
	case "East":
		from.EastWall, to.WestWall = false, false
	case "West":
		from.WestWall, to.EastWall = false, false
	}
}

// randomWalk walks from an unvisited room until it hits the maze and returns
// the last exit taken from every room on the way.
func (l *Lattice) randomWalk(visited map[roomPosition]bool) map[roomPosition]move {
	pos := l.randomUnvisitedPosition(visited)
	exits := make(map[roomPosition]move)
	var order []roomPosition

	for {
		neighbors := l.neighbors(pos)
		next := neighbors[l.rng.Intn(len(neighbors))]
		if _, seen := exits[pos]; !seen {
			order = append(order, pos)
		}
		exits[pos] = next
		if visited[next.To] {
			break
		}
		pos = next.To
	}

	// Keep only the loop-erased path so the result stays a tree.
	path := make(map[roomPosition]move, len(order))
	for pos := order[0]; !visited[pos]; pos = exits[pos].To {
		path[pos] = exits[pos]
	}
	return path
}

func (l *Lattice) generate() {
	visited := map[roomPosition]bool{l.randomPosition(): true}

	for len(visited) < l.Width*l.Height {
		for pos, m := range l.randomWalk(visited) {
			l.openWall(m)
			visited[pos] = true
		}
	}
}

// String provides a textual representation of the lattice.
func (l *Lattice) String() string {
	var output strings.Builder

	output.WriteString("+" + strings.Repeat("---+", l.Width) + "\n")
	for row := 0; row < l.Height; row++ {
		output.WriteString("|")
		for col := 0; col < l.Width; col++ {
			if l.Grid[row][col].EastWall {
				output.WriteString("   |")
			} else {
				output.WriteString("    ")
			}
		}
		output.WriteString("\n+")
		for col := 0; col < l.Width; col++ {
			if l.Grid[row][col].SouthWall {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
