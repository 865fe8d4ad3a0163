package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazesolver/domain"
	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"github.com/beka-birhanu/vinom-mazesolver/maze/bfs"
	"github.com/beka-birhanu/vinom-mazesolver/metrics"
	"github.com/beka-birhanu/vinom-mazesolver/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 1024
)

var (
	ErrMazeTooLarge = errors.New("maze exceeds the maximum dimension")
)

type SolveOptions struct {
	// MaxDimension bounds both the height and the width of accepted mazes.
	MaxDimension int
}

// SolveService solves mazes with the breadth-first solver, caching and
// persisting every solution by maze fingerprint.
type SolveService struct {
	repo   i.SolutionRepo
	cache  i.SolutionCache
	logger i.Logger
	opts   *SolveOptions
}

func NewSolveService(repo i.SolutionRepo, cache i.SolutionCache, logger i.Logger, opts *SolveOptions) (i.MazeSolver, error) {
	if repo == nil || cache == nil || logger == nil {
		return nil, fmt.Errorf("%w: solve service dependencies cannot be nil", maze.ErrInvalidArgument)
	}

	if opts == nil {
		opts = &SolveOptions{MaxDimension: defaultMaxDimension}
	}

	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}

	return &SolveService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		opts:   opts,
	}, nil
}

// Solve returns the solution of m. A maze that was solved before is served from
// the cache or the repository without searching again.
func (s *SolveService) Solve(ctx context.Context, m *maze.Maze) (*dmn.Solution, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: maze cannot be nil", maze.ErrInvalidArgument)
	}
	if m.Height() > s.opts.MaxDimension || m.Width() > s.opts.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d, limit %d", ErrMazeTooLarge, m.Height(), m.Width(), s.opts.MaxDimension)
	}

	fingerprint := dmn.Fingerprint(m)
	if sol := s.cached(ctx, fingerprint); sol != nil {
		return sol, nil
	}

	unlock, err := s.cache.Lock(ctx, fingerprint)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("solving %s without lock: %s", short(fingerprint), err))
	} else {
		defer unlock()
		// Another holder of the lock may have solved it while we waited.
		if sol := s.cached(ctx, fingerprint); sol != nil {
			return sol, nil
		}
	}

	sol, err := s.repo.ByFingerprint(ctx, fingerprint)
	switch {
	case err == nil:
		s.logger.Info(fmt.Sprintf("solution %s loaded from repository", sol.ID))
		s.store(ctx, sol)
		return sol, nil
	case !errors.Is(err, dmn.ErrSolutionNotFound):
		s.logger.Warning(fmt.Sprintf("repository lookup for %s: %s", short(fingerprint), err))
	}

	sol, err = s.solve(m)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, sol); err != nil {
		if !errors.Is(err, dmn.ErrSolutionConflict) {
			s.logger.Error(fmt.Sprintf("saving solution %s: %s", sol.ID, err))
			return nil, err
		}
		// Another solver stored this maze first; serve its record.
		stored, lookupErr := s.repo.ByFingerprint(ctx, fingerprint)
		if lookupErr != nil {
			s.logger.Error(fmt.Sprintf("saving solution %s: %s; reloading: %s", sol.ID, err, lookupErr))
			return nil, err
		}
		s.logger.Info(fmt.Sprintf("solution %s already stored as %s", sol.ID, stored.ID))
		sol = stored
	}
	s.store(ctx, sol)
	return sol, nil
}

// ByID returns a stored solution.
func (s *SolveService) ByID(ctx context.Context, id uuid.UUID) (*dmn.Solution, error) {
	return s.repo.ByID(ctx, id)
}

func (s *SolveService) solve(m *maze.Maze) (*dmn.Solution, error) {
	var stats bfs.Stats
	solver := bfs.New(bfs.WithStatsHook(func(st bfs.Stats) { stats = st }))

	started := time.Now()
	res, err := maze.SolveResult(m, solver)
	if err != nil {
		metrics.ObserveSolveError()
		s.logger.Error(fmt.Sprintf("solving %dx%d maze: %s", m.Height(), m.Width(), err))
		return nil, err
	}
	elapsed := time.Since(started)
	metrics.ObserveSolve(stats, elapsed)

	sol := dmn.NewSolution(m, res, stats)
	s.logger.Info(fmt.Sprintf("Solved %dx%d maze: ID=%s found=%t hops=%d expanded=%d in %s",
		m.Height(), m.Width(), sol.ID, sol.Found, sol.Hops(), stats.Expanded, elapsed))
	return sol, nil
}

func (s *SolveService) cached(ctx context.Context, fingerprint string) *dmn.Solution {
	sol, err := s.cache.Get(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, dmn.ErrSolutionNotFound) {
			s.logger.Warning(fmt.Sprintf("cache lookup for %s: %s", short(fingerprint), err))
		}
		metrics.ObserveCacheLookup(false)
		return nil
	}
	metrics.ObserveCacheLookup(true)
	return sol
}

func (s *SolveService) store(ctx context.Context, sol *dmn.Solution) {
	if err := s.cache.Set(ctx, sol); err != nil {
		s.logger.Warning(fmt.Sprintf("caching solution %s: %s", sol.ID, err))
	}
}

func short(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
