package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazesolver/domain"
	"github.com/beka-birhanu/vinom-mazesolver/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix  = "mazesolver"
	solutionKeyFmt = "%s:solution:%s"
	lockKeyFmt     = "%s:solution:%s:solve_lock"
	lockExpiry     = 30 * time.Second
)

var _ i.SolutionCache = (*RedisSolutionCache)(nil)

// RedisSolutionCache keeps solutions in Redis with TTL support and serialises
// solving of the same maze with a redsync mutex.
type RedisSolutionCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	prefix string
}

// NewRedisSolutionCache initializes a RedisSolutionCache with the provided Redis client and TTL.
func NewRedisSolutionCache(client *redis.Client, ttlSeconds int, prefix string) (*RedisSolutionCache, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = defaultPrefix
	}

	cache := &RedisSolutionCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		prefix: prefix,
	}
	pool := goredis.NewPool(client)
	cache.locker = redsync.New(pool)
	return cache, nil
}

// Get returns the cached solution for fingerprint.
func (c *RedisSolutionCache) Get(ctx context.Context, fingerprint string) (*dmn.Solution, error) {
	raw, err := c.client.Get(ctx, c.solutionKey(fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dmn.ErrSolutionNotFound
		}
		return nil, err
	}
	return decodeSolution(raw)
}

// Set stores s under its fingerprint. A non-positive TTL keeps it forever.
func (c *RedisSolutionCache) Set(ctx context.Context, s *dmn.Solution) error {
	raw, err := encodeSolution(s)
	if err != nil {
		return err
	}

	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.solutionKey(s.Fingerprint), raw, ttl).Err()
}

// Lock acquires the solve lock of fingerprint.
func (c *RedisSolutionCache) Lock(ctx context.Context, fingerprint string) (func(), error) {
	mutex := c.locker.NewMutex(c.lockKey(fingerprint), redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

func (c *RedisSolutionCache) solutionKey(fingerprint string) string {
	return fmt.Sprintf(solutionKeyFmt, c.prefix, fingerprint)
}

func (c *RedisSolutionCache) lockKey(fingerprint string) string {
	return fmt.Sprintf(lockKeyFmt, c.prefix, fingerprint)
}

func encodeSolution(s *dmn.Solution) ([]byte, error) {
	if s == nil {
		return nil, errors.New("solution cannot be nil")
	}
	return json.Marshal(s)
}

func decodeSolution(raw []byte) (*dmn.Solution, error) {
	var s dmn.Solution
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("corrupt cached solution: %w", err)
	}
	return &s, nil
}
