// Package mazeapi provides the request and response bodies of the maze endpoints.
package mazeapi

import (
	"strings"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazesolver/domain"
	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"github.com/beka-birhanu/vinom-mazesolver/mazeio"
)

// GenerateRequest asks for a random maze of Width x Height rooms.
type GenerateRequest struct {
	Width  int    `json:"width" binding:"required,min=1"`
	Height int    `json:"height" binding:"required,min=1"`
	Seed   *int64 `json:"seed"`
}

// MazeResponse is an ASCII maze.
type MazeResponse struct {
	Height int      `json:"height"`
	Width  int      `json:"width"`
	Seed   int64    `json:"seed"`
	Rows   []string `json:"rows"`
}

// SolveRequest carries an ASCII maze.
type SolveRequest struct {
	Rows []string `json:"rows" binding:"required,min=1"`
}

// SolutionResponse describes a solved maze. Rendered is only set when the maze
// itself is at hand.
type SolutionResponse struct {
	ID        string         `json:"id"`
	Found     bool           `json:"found"`
	Hops      int            `json:"hops"`
	Expanded  int            `json:"expanded"`
	Path      []dmn.Position `json:"path"`
	Rendered  []string       `json:"rendered,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func newSolutionResponse(sol *dmn.Solution, m *maze.Maze) *SolutionResponse {
	path := sol.Path
	if path == nil {
		path = []dmn.Position{}
	}

	res := &SolutionResponse{
		ID:        sol.ID.String(),
		Found:     sol.Found,
		Hops:      sol.Hops(),
		Expanded:  sol.Expanded,
		Path:      path,
		CreatedAt: sol.CreatedAt,
	}
	if m != nil {
		res.Rendered = strings.Split(strings.TrimSuffix(mazeio.FormatText(m, pathCells(m, sol)), "\n"), "\n")
	}
	return res
}

func pathCells(m *maze.Maze, sol *dmn.Solution) []maze.Cell {
	cells := make([]maze.Cell, 0, len(sol.Path))
	for _, p := range sol.Path {
		if c, err := m.Node(p.Row, p.Col); err == nil {
			cells = append(cells, c)
		}
	}
	return cells
}

func newWireSolution(sol *dmn.Solution) mazeio.Solution {
	return mazeio.Solution{
		ID:       sol.ID.String(),
		Found:    sol.Found,
		Path:     sol.CellPositions(),
		Expanded: sol.Expanded,
	}
}
