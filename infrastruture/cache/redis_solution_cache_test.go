package cache

import (
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazesolver/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisSolutionCache(t *testing.T) {
	t.Run("Nil client", func(t *testing.T) {
		_, err := NewRedisSolutionCache(nil, 60, "")
		assert.Error(t, err)
	})

	t.Run("Keys", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
		defer client.Close()

		c, err := NewRedisSolutionCache(client, 60, "")
		require.NoError(t, err)
		assert.Equal(t, time.Minute, c.ttl)
		assert.Equal(t, "mazesolver:solution:abc", c.solutionKey("abc"))
		assert.Equal(t, "mazesolver:solution:abc:solve_lock", c.lockKey("abc"))

		c, err = NewRedisSolutionCache(client, 60, "test")
		require.NoError(t, err)
		assert.Equal(t, "test:solution:abc", c.solutionKey("abc"))
	})
}

func TestSolutionEncoding(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		s := &dmn.Solution{
			ID:          uuid.New(),
			Fingerprint: "abc",
			Height:      2,
			Width:       3,
			Found:       true,
			Path:        []dmn.Position{{Row: 0, Col: 0}, {Row: 1, Col: 2}},
			Expanded:    4,
			CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		}

		raw, err := encodeSolution(s)
		require.NoError(t, err)
		decoded, err := decodeSolution(raw)
		require.NoError(t, err)
		assert.Equal(t, s, decoded)
	})

	t.Run("Nil solution", func(t *testing.T) {
		_, err := encodeSolution(nil)
		assert.Error(t, err)
	})

	t.Run("Corrupt", func(t *testing.T) {
		_, err := decodeSolution([]byte("{"))
		assert.Error(t, err)
	})
}
