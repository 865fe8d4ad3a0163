package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	dmn "github.com/beka-birhanu/vinom-mazesolver/domain"
	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*dmn.Solution
	saves   int
	saveErr error
	// winner is stored by a concurrent writer just before Save runs.
	winner *dmn.Solution
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uuid.UUID]*dmn.Solution{}}
}

func (r *fakeRepo) Save(_ context.Context, s *dmn.Solution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.winner != nil {
		r.byID[r.winner.ID] = r.winner
		return fmt.Errorf("%w: E11000 duplicate key", dmn.ErrSolutionConflict)
	}
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.byID[s.ID] = s
	return nil
}

func (r *fakeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Solution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byID[id]; ok {
		return s, nil
	}
	return nil, dmn.ErrSolutionNotFound
}

func (r *fakeRepo) ByFingerprint(_ context.Context, fingerprint string) (*dmn.Solution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.Fingerprint == fingerprint {
			return s, nil
		}
	}
	return nil, dmn.ErrSolutionNotFound
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*dmn.Solution
	lockErr error
	locks   int
	unlocks int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*dmn.Solution{}}
}

func (c *fakeCache) Get(_ context.Context, fingerprint string) (*dmn.Solution, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.entries[fingerprint]; ok {
		return s, nil
	}
	return nil, dmn.ErrSolutionNotFound
}

func (c *fakeCache) Set(_ context.Context, s *dmn.Solution) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[s.Fingerprint] = s
	return nil
}

func (c *fakeCache) Lock(_ context.Context, _ string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return nil, c.lockErr
	}
	c.locks++
	return func() {
		c.mu.Lock()
		c.unlocks++
		c.mu.Unlock()
	}, nil
}

type fakeLogger struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
}

func (l *fakeLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *fakeLogger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func (l *fakeLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func mustRows(t *testing.T, rows ...string) *maze.Maze {
	t.Helper()
	states := make([][]maze.CellState, len(rows))
	for r, row := range rows {
		for _, ch := range []byte(row) {
			s, ok := maze.StateFromSymbol(ch)
			require.True(t, ok, "symbol %q", ch)
			states[r] = append(states[r], s)
		}
	}
	m, err := maze.FromStates(states)
	require.NoError(t, err)
	return m
}

func newTestService(t *testing.T) (*SolveService, *fakeRepo, *fakeCache, *fakeLogger) {
	t.Helper()
	repo, cache, logger := newFakeRepo(), newFakeCache(), &fakeLogger{}
	svc, err := NewSolveService(repo, cache, logger, &SolveOptions{MaxDimension: 16})
	require.NoError(t, err)
	return svc.(*SolveService), repo, cache, logger
}

func TestNewSolveService(t *testing.T) {
	t.Run("Missing dependencies", func(t *testing.T) {
		_, err := NewSolveService(nil, newFakeCache(), &fakeLogger{}, nil)
		assert.ErrorIs(t, err, maze.ErrInvalidArgument)
	})

	t.Run("Default options", func(t *testing.T) {
		svc, err := NewSolveService(newFakeRepo(), newFakeCache(), &fakeLogger{}, &SolveOptions{MaxDimension: -1})
		require.NoError(t, err)
		assert.Equal(t, defaultMaxDimension, svc.(*SolveService).opts.MaxDimension)
	})
}

func TestSolveService_Solve(t *testing.T) {
	ctx := context.Background()

	t.Run("Nil maze", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.Solve(ctx, nil)
		assert.ErrorIs(t, err, maze.ErrInvalidArgument)
	})

	t.Run("Too large", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.Solve(ctx, mustRows(t, "S................E"))
		assert.ErrorIs(t, err, ErrMazeTooLarge)
	})

	t.Run("Solves and stores", func(t *testing.T) {
		svc, repo, cache, _ := newTestService(t)
		m := mustRows(t, "S...E", ".....")

		sol, err := svc.Solve(ctx, m)
		require.NoError(t, err)
		assert.True(t, sol.Found)
		assert.Equal(t, 4, sol.Hops())
		assert.Equal(t, dmn.Position{Row: 0, Col: 0}, sol.Path[0])
		assert.Equal(t, dmn.Position{Row: 0, Col: 4}, sol.Path[len(sol.Path)-1])
		assert.Positive(t, sol.Expanded)

		assert.Equal(t, 1, repo.saves)
		assert.Same(t, sol, cache.entries[dmn.Fingerprint(m)])
		assert.Equal(t, 1, cache.locks)
		assert.Equal(t, 1, cache.unlocks)
	})

	t.Run("Second solve is cached", func(t *testing.T) {
		svc, repo, cache, _ := newTestService(t)

		first, err := svc.Solve(ctx, mustRows(t, "S...E", "....."))
		require.NoError(t, err)
		second, err := svc.Solve(ctx, mustRows(t, "S...E", "....."))
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, repo.saves)
		assert.Equal(t, 1, cache.locks)
	})

	t.Run("Served from repository", func(t *testing.T) {
		svc, repo, cache, _ := newTestService(t)
		m := mustRows(t, "S..E")
		stored := &dmn.Solution{ID: uuid.New(), Fingerprint: dmn.Fingerprint(m), Found: true}
		require.NoError(t, repo.Save(ctx, stored))

		sol, err := svc.Solve(ctx, m)
		require.NoError(t, err)
		assert.Same(t, stored, sol)
		assert.Equal(t, 1, repo.saves)
		assert.Same(t, stored, cache.entries[stored.Fingerprint])
	})

	t.Run("No path", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		sol, err := svc.Solve(ctx, mustRows(t, "S.#.E"))
		require.NoError(t, err)
		assert.False(t, sol.Found)
		assert.Empty(t, sol.Path)
		assert.Equal(t, 0, sol.Hops())
	})

	t.Run("Lock unavailable", func(t *testing.T) {
		svc, repo, cache, logger := newTestService(t)
		cache.lockErr = errors.New("redis down")

		sol, err := svc.Solve(ctx, mustRows(t, "S...E"))
		require.NoError(t, err)
		assert.True(t, sol.Found)
		assert.Equal(t, 1, repo.saves)
		require.Len(t, logger.warnings, 1)
		assert.Contains(t, logger.warnings[0], "without lock")
	})

	t.Run("Lost save race", func(t *testing.T) {
		svc, repo, cache, logger := newTestService(t)
		m := mustRows(t, "S...E")
		repo.winner = &dmn.Solution{ID: uuid.New(), Fingerprint: dmn.Fingerprint(m), Found: true}

		sol, err := svc.Solve(ctx, m)
		require.NoError(t, err)
		assert.Same(t, repo.winner, sol)
		assert.Same(t, repo.winner, cache.entries[sol.Fingerprint])
		assert.Empty(t, logger.errors)
	})

	t.Run("Lost save race without a stored record", func(t *testing.T) {
		svc, repo, _, logger := newTestService(t)
		repo.winner = &dmn.Solution{ID: uuid.New(), Fingerprint: "other"}

		_, err := svc.Solve(ctx, mustRows(t, "S...E"))
		assert.ErrorIs(t, err, dmn.ErrSolutionConflict)
		assert.Len(t, logger.errors, 1)
	})

	t.Run("Save fails", func(t *testing.T) {
		svc, repo, cache, logger := newTestService(t)
		repo.saveErr = errors.New("mongo down")

		_, err := svc.Solve(ctx, mustRows(t, "S...E"))
		assert.EqualError(t, err, "mongo down")
		assert.Empty(t, cache.entries)
		assert.Len(t, logger.errors, 1)
	})
}

func TestSolveService_ByID(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	sol, err := svc.Solve(ctx, mustRows(t, "S...E"))
	require.NoError(t, err)

	got, err := svc.ByID(ctx, sol.ID)
	require.NoError(t, err)
	assert.Same(t, sol, got)

	_, err = svc.ByID(ctx, uuid.New())
	assert.ErrorIs(t, err, dmn.ErrSolutionNotFound)
}

func TestGenerator(t *testing.T) {
	g := NewGenerator(41, &fakeLogger{})

	t.Run("Generates", func(t *testing.T) {
		m, err := g.Generate(10, 3, 7)
		require.NoError(t, err)
		assert.Equal(t, 41, m.Width())
		assert.Equal(t, 13, m.Height())
	})

	t.Run("Too large", func(t *testing.T) {
		_, err := g.Generate(11, 3, 7)
		assert.ErrorIs(t, err, ErrMazeTooLarge)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := g.Generate(0, 3, 7)
		assert.Error(t, err)
	})
}
