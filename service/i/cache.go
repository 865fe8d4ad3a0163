package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mazesolver/domain"
)

// SolutionCache keeps recently solved mazes keyed by fingerprint.
type SolutionCache interface {
	// Get returns the cached solution, or dmn.ErrSolutionNotFound on a miss.
	Get(ctx context.Context, fingerprint string) (*dmn.Solution, error)

	// Set caches s under its fingerprint until the cache TTL elapses.
	Set(ctx context.Context, s *dmn.Solution) error

	// Lock takes a distributed lock on fingerprint so only one caller solves a
	// given maze at a time. The returned func releases it.
	Lock(ctx context.Context, fingerprint string) (func(), error)
}
