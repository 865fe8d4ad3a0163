package service

import (
	"fmt"

	"github.com/beka-birhanu/vinom-mazesolver/generator"
	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"github.com/beka-birhanu/vinom-mazesolver/service/i"
)

// Generator builds random mazes whose rasterised size stays within a limit.
type Generator struct {
	maxDimension int
	logger       i.Logger
}

func NewGenerator(maxDimension int, logger i.Logger) i.MazeGenerator {
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}
	return &Generator{maxDimension: maxDimension, logger: logger}
}

// Generate builds a width x height room maze. width and height count rooms,
// not grid cells.
func (g *Generator) Generate(width, height int, seed int64) (*maze.Maze, error) {
	if generator.GridSize(width) > g.maxDimension || generator.GridSize(height) > g.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d rooms, limit %d cells", ErrMazeTooLarge, width, height, g.maxDimension)
	}

	m, err := generator.New(width, height, seed)
	if err != nil {
		return nil, err
	}
	if g.logger != nil {
		g.logger.Info(fmt.Sprintf("Generated %dx%d maze from seed %d", m.Height(), m.Width(), seed))
	}
	return m, nil
}
