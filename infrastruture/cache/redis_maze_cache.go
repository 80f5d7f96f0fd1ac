package cache

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var _ i.MazeCache = &RedisMazeCache{}

// RedisMazeCacheOptions holds the tunables of RedisMazeCache.
type RedisMazeCacheOptions struct {
	// TTL of cached mazes.
	TTL time.Duration

	// LockExpiry bounds how long a crashed holder keeps a key locked.
	LockExpiry time.Duration

	// LockTries is how many times Lock attempts to take a busy lock.
	LockTries int

	// Logger receives lock release failures. Optional.
	Logger i.Logger
}

// RedisMazeCache stores encoded mazes in Redis and guards their generation
// with a Redlock mutex per key.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	opts   *RedisMazeCacheOptions
}

// NewRedisMazeCache creates a cache on top of the given Redis client.
func NewRedisMazeCache(client *redis.Client, opts *RedisMazeCacheOptions) (*RedisMazeCache, error) {
	if client == nil {
		return nil, errors.New("redis maze cache: nil client")
	}

	if opts == nil {
		opts = &RedisMazeCacheOptions{}
	}
	if opts.TTL <= 0 {
		opts.TTL = time.Hour
	}
	if opts.LockExpiry <= 0 {
		opts.LockExpiry = 10 * time.Second
	}
	if opts.LockTries <= 0 {
		opts.LockTries = 32
	}

	pool := goredis.NewPool(client)
	return &RedisMazeCache{
		client: client,
		locker: redsync.New(pool),
		opts:   opts,
	}, nil
}

// Get implements i.MazeCache.
func (c *RedisMazeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements i.MazeCache.
func (c *RedisMazeCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, key, value, c.opts.TTL).Err()
}

// Lock implements i.MazeCache.
func (c *RedisMazeCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(
		lockName(key),
		redsync.WithExpiry(c.opts.LockExpiry),
		redsync.WithTries(c.opts.LockTries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		// The caller's context may be done by now, the lock still has to go.
		ok, err := mutex.UnlockContext(context.WithoutCancel(ctx))
		if c.opts.Logger == nil {
			return
		}
		if err != nil {
			c.opts.Logger.Warning("releasing " + mutex.Name() + ": " + err.Error())
		} else if !ok {
			c.opts.Logger.Warning("releasing " + mutex.Name() + ": lock already expired")
		}
	}, nil
}

func lockName(key string) string {
	return key + ":generate_lock"
}
