package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mazesolver/domain"
	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"github.com/google/uuid"
)

// MazeSolver solves mazes and looks up earlier solutions.
type MazeSolver interface {
	Solve(ctx context.Context, m *maze.Maze) (*dmn.Solution, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Solution, error)
}

// MazeGenerator builds solvable mazes.
type MazeGenerator interface {
	Generate(width, height int, seed int64) (*maze.Maze, error)
}
