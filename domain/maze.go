// Package domain holds the records the service layer stores and serves.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// GenerateRequest describes the maze a caller asks for.
type GenerateRequest struct {
	Algorithm maze.Algorithm
	Width     int
	Height    int
	Seed      *maze.Seed    // nil lets the service draw a fresh seed
	Options   *maze.Options // nil selects the algorithm defaults
}

// MazeRecord is a generated maze together with everything needed to reproduce it.
type MazeRecord struct {
	ID        uuid.UUID
	Algorithm maze.Algorithm
	Seed      maze.Seed
	Options   maze.Options
	Maze      *maze.Maze
	CreatedAt time.Time
}

// CacheKey identifies the maze a seeded request produces.
// Requests that differ in anything that changes the output get different keys.
func (r GenerateRequest) CacheKey(seed maze.Seed) string {
	key := fmt.Sprintf("%s:%dx%d:%s", r.Algorithm, r.Width, r.Height, seed)
	if r.Options == nil {
		return key
	}
	switch r.Algorithm {
	case maze.AlgorithmEllers:
		if o := r.Options.Ellers; o != nil {
			key += fmt.Sprintf(":m%g:v%g", o.MergeProbability, o.VerticalProbability)
		}
	case maze.AlgorithmGrowingTree:
		if o := r.Options.GrowingTree; o != nil {
			key += fmt.Sprintf(":%s:%g", o.Policy, o.NewestRatio)
		}
	}
	return key
}

// ErrMazeNotFound is returned when no maze is stored under an ID.
var ErrMazeNotFound = errors.New("maze not found")
