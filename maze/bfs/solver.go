// Package bfs implements a breadth-first maze.Solver.
//
// The search runs over the 8-connected grid exposed by maze.WalledMaze and
// returns a path with the fewest hops from the start cell to the first end cell
// it dequeues. A candidate cell is only enqueued when none of its own
// neighbours is blocked, so the search never slips diagonally between two wall
// corners.
package bfs

import (
	"fmt"
	"math"
	"slices"

	"github.com/beka-birhanu/vinom-mazesolver/maze"
)

var _ maze.Solver = &Solver{}

// Stats describes a finished solve.
type Stats struct {
	Expanded   int  // nodes popped from the queue
	Enqueued   int  // nodes pushed to the queue, start included
	Pruned     int  // candidates rejected by the corner-squeeze rule
	Found      bool // whether an end cell was reached
	PathLength int  // hops along the path, 0 when not found
}

// Options defines parameters for the solver.
type Options struct {
	StatsHook func(Stats)
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithStatsHook registers a function called with the stats of every solve,
// after the result callback has returned.
func WithStatsHook(hook func(Stats)) Option {
	return func(o *Options) { o.StatsHook = hook }
}

// Solver is a breadth-first maze solver. It keeps no per-solve state and may
// be shared between goroutines.
type Solver struct {
	opts Options
}

// New creates a breadth-first solver.
func New(options ...Option) *Solver {
	s := &Solver{}
	for _, option := range options {
		option(&s.opts)
	}
	return s
}

// Solve searches m and calls cb once with the path from start to end, or with
// nil when the maze has no start or no end is reachable.
func (s *Solver) Solve(m maze.WalledMaze, cb func(path []maze.Cell)) error {
	if s == nil {
		return fmt.Errorf("%w: solver cannot be nil", maze.ErrInvalidArgument)
	}
	if m == nil {
		return fmt.Errorf("%w: maze cannot be nil", maze.ErrInvalidArgument)
	}
	if cb == nil {
		return fmt.Errorf("%w: result callback cannot be nil", maze.ErrInvalidArgument)
	}

	start, ok := m.StartNode()
	if !ok {
		cb(nil)
		s.report(Stats{})
		return nil
	}

	r := newRun(m)
	path, err := r.search(start)
	if err != nil {
		return err
	}

	cb(path)
	s.report(r.stats)
	return nil
}

func (s *Solver) report(st Stats) {
	if s.opts.StatsHook != nil {
		s.opts.StatsHook(st)
	}
}

type visitState uint8

const (
	notVisited visitState = iota
	queued
	visited
)

const (
	unreachable   = math.MaxInt
	noPredecessor = -1
)

// node is the solver's scratch record for one grid cell.
type node struct {
	distance    int
	predecessor int
	state       visitState
}

// run owns the working nodes of a single solve.
type run struct {
	m     maze.WalledMaze
	width int
	nodes []node
	stats Stats
}

func newRun(m maze.WalledMaze) *run {
	r := &run{
		m:     m,
		width: m.Width(),
		nodes: make([]node, m.Height()*m.Width()),
	}

	for c := range m.Nodes() {
		n := &r.nodes[r.index(c)]
		n.distance = unreachable
		n.predecessor = noPredecessor
		// Walls are closed up front and never expanded.
		if c.State == maze.Blocked {
			n.state = visited
		}
	}
	return r
}

func (r *run) index(c maze.Cell) int {
	return c.Row*r.width + c.Col
}

func (r *run) cellAt(idx int) (maze.Cell, error) {
	return r.m.Node(idx/r.width, idx%r.width)
}

func (r *run) search(start maze.Cell) ([]maze.Cell, error) {
	startIdx := r.index(start)
	r.nodes[startIdx] = node{distance: 0, predecessor: noPredecessor, state: queued}
	queue := []int{startIdx}
	r.stats.Enqueued++

	for head := 0; head < len(queue); head++ {
		current := queue[head]
		cell, err := r.cellAt(current)
		if err != nil {
			return nil, err
		}
		r.stats.Expanded++

		if r.m.IsEndNode(&cell) {
			path, err := r.trace(current)
			if err != nil {
				return nil, err
			}
			r.stats.Found = true
			r.stats.PathLength = len(path) - 1
			return path, nil
		}

		for adjacent := range r.m.AdjacentNodes(cell) {
			idx := r.index(adjacent)
			if r.nodes[idx].state != notVisited {
				continue
			}
			if r.squeezed(adjacent) {
				r.stats.Pruned++
				continue
			}
			r.nodes[idx] = node{
				distance:    r.nodes[current].distance + 1,
				predecessor: current,
				state:       queued,
			}
			queue = append(queue, idx)
			r.stats.Enqueued++
		}
		r.nodes[current].state = visited
	}

	return nil, nil
}

// squeezed reports whether any neighbour of c is a wall. Such cells are too
// narrow to pass and are never enqueued.
func (r *run) squeezed(c maze.Cell) bool {
	for neighbour := range r.m.AdjacentNodes(c) {
		if neighbour.State == maze.Blocked {
			return true
		}
	}
	return false
}

// trace walks predecessor links from the end node and returns the path in
// start-to-end order.
func (r *run) trace(end int) ([]maze.Cell, error) {
	var path []maze.Cell
	for idx := end; idx != noPredecessor; idx = r.nodes[idx].predecessor {
		cell, err := r.cellAt(idx)
		if err != nil {
			return nil, err
		}
		path = append(path, cell)
	}
	slices.Reverse(path)
	return path, nil
}
