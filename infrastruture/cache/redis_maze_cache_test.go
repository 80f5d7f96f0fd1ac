package cache

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisMazeCache(t *testing.T) {
	t.Run("Nil client", func(t *testing.T) {
		_, err := NewRedisMazeCache(nil, nil)
		assert.Error(t, err)
	})

	t.Run("Defaults", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
		defer client.Close()

		c, err := NewRedisMazeCache(client, nil)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, c.opts.TTL)
		assert.Equal(t, 10*time.Second, c.opts.LockExpiry)
		assert.Equal(t, 32, c.opts.LockTries)
	})

	t.Run("Keeps explicit options", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
		defer client.Close()

		c, err := NewRedisMazeCache(client, &RedisMazeCacheOptions{TTL: time.Minute, LockTries: 3})
		require.NoError(t, err)
		assert.Equal(t, time.Minute, c.opts.TTL)
		assert.Equal(t, 3, c.opts.LockTries)
	})
}

func TestLockName(t *testing.T) {
	assert.Equal(t, "maze:prims:3x3:ab:generate_lock", lockName("maze:prims:3x3:ab"))
}
