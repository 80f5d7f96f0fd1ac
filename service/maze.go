package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

var _ i.MazeService = &Mazes{}

var (
	ErrDimensionTooLarge = errors.New("maze dimension too large")
	ErrNoRepo            = errors.New("maze storage is not configured")
)

// MazeOptions holds the tunables of the maze service.
type MazeOptions struct {
	// MaxDimension caps both width and height of requested mazes.
	MaxDimension int

	// CachePrefix is prepended to every cache key.
	CachePrefix string
}

// Mazes generates mazes, caches seeded results and persists saved ones.
type Mazes struct {
	cache   i.MazeCache
	repo    i.MazeRepo
	encoder i.MazeEncoder
	logger  i.Logger
	opts    *MazeOptions
	now     func() time.Time
}

// NewMazeService creates a maze service.
// cache and repo may be nil: without a cache every request is generated afresh,
// without a repo Save, ByID and Delete fail with ErrNoRepo.
func NewMazeService(cache i.MazeCache, repo i.MazeRepo, encoder i.MazeEncoder, logger i.Logger, opts *MazeOptions) (*Mazes, error) {
	if encoder == nil {
		return nil, errors.New("maze service: nil encoder")
	}
	if logger == nil {
		return nil, errors.New("maze service: nil logger")
	}

	if opts == nil {
		opts = &MazeOptions{}
	}
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = 100
	}
	if opts.CachePrefix == "" {
		opts.CachePrefix = "maze"
	}

	return &Mazes{
		cache:   cache,
		repo:    repo,
		encoder: encoder,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
	}, nil
}

// Generate implements i.MazeService.
// Seeded requests are deterministic, so their results are cached and concurrent
// requests for the same maze generate it only once.
func (s *Mazes) Generate(ctx context.Context, req dmn.GenerateRequest) (*dmn.MazeRecord, error) {
	if err := s.checkSize(req); err != nil {
		return nil, err
	}
	if req.Seed == nil || s.cache == nil {
		return s.generate(req, s.seedOf(req), nil)
	}

	seed := *req.Seed
	key := s.opts.CachePrefix + ":" + req.CacheKey(seed)
	if record, ok := s.fromCache(ctx, req, seed, key); ok {
		return record, nil
	}

	unlock, err := s.cache.Lock(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("locking %s: %v", key, err))
		return s.generate(req, seed, nil)
	}
	defer unlock()

	// Another instance may have filled the entry while we waited for the lock.
	if record, ok := s.fromCache(ctx, req, seed, key); ok {
		return record, nil
	}

	record, err := s.generate(req, seed, nil)
	if err != nil {
		return nil, err
	}

	payload, err := s.encoder.MarshalMaze(record.Maze)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("encoding %s: %v", key, err))
		return record, nil
	}
	if err := s.cache.Set(ctx, key, payload); err != nil {
		s.logger.Warning(fmt.Sprintf("caching %s: %v", key, err))
	}
	return record, nil
}

// Save implements i.MazeService.
func (s *Mazes) Save(ctx context.Context, req dmn.GenerateRequest) (*dmn.MazeRecord, error) {
	if s.repo == nil {
		return nil, ErrNoRepo
	}

	record, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Error(fmt.Sprintf("saving maze %s: %v", record.ID, err))
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("saved %s maze %s (%dx%d)", record.Algorithm, record.ID, req.Width, req.Height))
	return record, nil
}

// ByID implements i.MazeService.
func (s *Mazes) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	if s.repo == nil {
		return nil, ErrNoRepo
	}
	return s.repo.ByID(ctx, id)
}

// Delete implements i.MazeService.
func (s *Mazes) Delete(ctx context.Context, id uuid.UUID) error {
	if s.repo == nil {
		return ErrNoRepo
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info(fmt.Sprintf("deleted maze %s", id))
	return nil
}

// Trace implements i.MazeService.
// Traced requests bypass the cache since the carving order is not cached.
func (s *Mazes) Trace(ctx context.Context, req dmn.GenerateRequest) (*dmn.MazeRecord, []maze.Edge, error) {
	if err := s.checkSize(req); err != nil {
		return nil, nil, err
	}

	edges := make([]maze.Edge, 0, max(req.Width*req.Height-1, 0))
	record, err := s.generate(req, s.seedOf(req), func(from, to maze.Coordinates) {
		edges = append(edges, maze.Edge{A: from, B: to})
	})
	if err != nil {
		return nil, nil, err
	}
	return record, edges, nil
}

func (s *Mazes) checkSize(req dmn.GenerateRequest) error {
	if req.Width > s.opts.MaxDimension || req.Height > s.opts.MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrDimensionTooLarge, req.Width, req.Height, s.opts.MaxDimension)
	}
	return nil
}

func (s *Mazes) seedOf(req dmn.GenerateRequest) maze.Seed {
	if req.Seed != nil {
		return *req.Seed
	}
	return maze.RandomSeed()
}

func (s *Mazes) generate(req dmn.GenerateRequest, seed maze.Seed, onCarve maze.CarveFunc) (*dmn.MazeRecord, error) {
	gen, err := maze.New(req.Algorithm, &seed, req.Options)
	if err != nil {
		return nil, err
	}
	if onCarve != nil {
		gen.OnCarve(onCarve)
	}

	m, err := gen.Generate(req.Width, req.Height)
	if err != nil {
		return nil, err
	}
	return s.newRecord(req, seed, m), nil
}

func (s *Mazes) fromCache(ctx context.Context, req dmn.GenerateRequest, seed maze.Seed, key string) (*dmn.MazeRecord, bool) {
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("reading %s from cache: %v", key, err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	m, err := s.encoder.UnmarshalMaze(payload)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("decoding cached %s: %v", key, err))
		return nil, false
	}
	return s.newRecord(req, seed, m), true
}

func (s *Mazes) newRecord(req dmn.GenerateRequest, seed maze.Seed, m *maze.Maze) *dmn.MazeRecord {
	record := &dmn.MazeRecord{
		ID:        uuid.New(),
		Algorithm: req.Algorithm,
		Seed:      seed,
		Maze:      m,
		CreatedAt: s.now().UTC(),
	}
	if req.Options != nil {
		record.Options = *req.Options
	}
	return record
}
