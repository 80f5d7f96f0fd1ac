package service

import (
	"context"
	"errors"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	locks   int
	lockErr error
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Lock(_ context.Context, _ string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return nil, c.lockErr
	}
	c.locks++
	return func() {}, nil
}

type memoryRepo struct {
	records map[uuid.UUID]*dmn.MazeRecord
	saveErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: map[uuid.UUID]*dmn.MazeRecord{}}
}

func (r *memoryRepo) Save(_ context.Context, record *dmn.MazeRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records[record.ID] = record
	return nil
}

func (r *memoryRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, dmn.ErrMazeNotFound
	}
	return record, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return dmn.ErrMazeNotFound
	}
	delete(r.records, id)
	return nil
}

type recordingLogger struct {
	infos, warnings, errors []string
}

func (l *recordingLogger) Info(msg string)    { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warning(msg string) { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(msg string)   { l.errors = append(l.errors, msg) }

type stubTokenizer struct {
	claims map[string]any
	ttl    time.Duration
}

func (s *stubTokenizer) Generate(claims map[string]any, ttl time.Duration) (string, error) {
	s.claims, s.ttl = claims, ttl
	return "token", nil
}

func (s *stubTokenizer) Decode(token string) (map[string]any, error) {
	if token != "token" {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}
