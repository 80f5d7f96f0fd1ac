package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze persistence operations.
type MazeRepo interface {
	// Save inserts or updates a maze record.
	// If the record already exists, it updates it. Otherwise, it creates a new one.
	Save(ctx context.Context, record *dmn.MazeRecord) error

	// ByID retrieves a maze record by its unique ID.
	// Returns an error if the record is not found or in case of an unexpected error.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)

	// Delete removes a maze record by its unique ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
