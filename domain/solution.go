// Package domain holds the records the service stores and returns.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"github.com/beka-birhanu/vinom-mazesolver/maze/bfs"
	"github.com/google/uuid"
)

var (
	ErrSolutionNotFound = errors.New("solution not found")
	ErrSolutionConflict = errors.New("solution already stored for this maze")
)

// Position is a grid coordinate in stored and serialized solutions.
type Position struct {
	Row int `bson:"row" json:"row"`
	Col int `bson:"col" json:"col"`
}

// Solution is the stored outcome of solving one maze.
type Solution struct {
	ID          uuid.UUID  `bson:"_id" json:"id"`
	Fingerprint string     `bson:"fingerprint" json:"fingerprint"`
	Height      int        `bson:"height" json:"height"`
	Width       int        `bson:"width" json:"width"`
	Found       bool       `bson:"found" json:"found"`
	Path        []Position `bson:"path" json:"path"`
	Expanded    int        `bson:"expanded" json:"expanded"`
	CreatedAt   time.Time  `bson:"createdAt" json:"created_at"`
}

// NewSolution records the result of solving m.
func NewSolution(m *maze.Maze, res maze.Result, st bfs.Stats) *Solution {
	path := make([]Position, 0, len(res.Path))
	for _, c := range res.Path {
		path = append(path, Position{Row: c.Row, Col: c.Col})
	}

	return &Solution{
		ID:          uuid.New(),
		Fingerprint: Fingerprint(m),
		Height:      m.Height(),
		Width:       m.Width(),
		Found:       res.Found,
		Path:        path,
		Expanded:    st.Expanded,
		CreatedAt:   time.Now().UTC(),
	}
}

// Hops returns the number of moves along the path.
func (s *Solution) Hops() int {
	if len(s.Path) == 0 {
		return 0
	}
	return len(s.Path) - 1
}

// CellPositions converts the path back to maze coordinates.
func (s *Solution) CellPositions() []maze.CellPosition {
	out := make([]maze.CellPosition, len(s.Path))
	for i, p := range s.Path {
		out[i] = maze.CellPosition{Row: p.Row, Col: p.Col}
	}
	return out
}

// Fingerprint identifies a maze by the SHA-256 of its ASCII rendering. Mazes
// with the same layout, start and ends share a fingerprint.
func Fingerprint(m *maze.Maze) string {
	sum := sha256.Sum256([]byte(m.String()))
	return hex.EncodeToString(sum[:])
}
