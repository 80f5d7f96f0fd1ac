package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeService generates, stores and serves mazes.
type MazeService interface {
	// Generate builds the requested maze, serving seeded requests from the cache.
	Generate(ctx context.Context, req dmn.GenerateRequest) (*dmn.MazeRecord, error)

	// Save generates the requested maze and persists it.
	Save(ctx context.Context, req dmn.GenerateRequest) (*dmn.MazeRecord, error)

	// ByID returns a persisted maze.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)

	// Delete removes a persisted maze.
	Delete(ctx context.Context, id uuid.UUID) error

	// Trace generates the requested maze and returns its passages in carving order.
	Trace(ctx context.Context, req dmn.GenerateRequest) (*dmn.MazeRecord, []maze.Edge, error)
}
