package i

import "context"

// MazeCache stores encoded mazes for a limited time.
type MazeCache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value under the key with the cache TTL.
	Set(ctx context.Context, key string, value []byte) error

	// Lock takes a lock shared by every cache client for the key.
	// The returned function releases it.
	Lock(ctx context.Context, key string) (func(), error)
}
