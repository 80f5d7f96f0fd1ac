package maze

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
)

// Seed fixes the random stream of a generator.
// The same seed, algorithm and size always produce the same maze.
type Seed [32]byte

// ParseSeed decodes a seed from its 64 character hex form.
func ParseSeed(s string) (Seed, error) {
	var seed Seed
	raw, err := hex.DecodeString(s)
	if err != nil {
		return seed, fmt.Errorf("parse seed: %w", err)
	}
	if len(raw) != len(seed) {
		return seed, fmt.Errorf("parse seed: want %d bytes, got %d", len(seed), len(raw))
	}
	copy(seed[:], raw)
	return seed, nil
}

// SeedFromPhrase derives a seed from an arbitrary string.
func SeedFromPhrase(phrase string) Seed {
	return Seed(sha256.Sum256([]byte(phrase)))
}

// RandomSeed draws a fresh seed from the runtime's entropy source.
func RandomSeed() Seed {
	var seed Seed
	for i := 0; i < len(seed); i += 8 {
		binary.LittleEndian.PutUint64(seed[i:], rand.Uint64())
	}
	return seed
}

// String returns the hex form of the seed.
func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

// CarveFunc observes every passage a generator opens, in carving order.
type CarveFunc func(from, to Coordinates)

// Generator builds perfect mazes.
//
// A generator owns its random source and is not safe for concurrent use.
// Use one generator per goroutine, each with its own seed.
type Generator interface {
	// Generate builds a maze of the given size.
	// It fails with ErrInvalidSize when width or height is not positive.
	Generate(width, height int) (*Maze, error)

	// OnCarve registers a callback invoked for every carved passage.
	OnCarve(fn CarveFunc)
}

// source holds the state every generator shares: its random stream and carve hook.
type source struct {
	rng     *rand.Rand
	onCarve CarveFunc
}

// newSource keys a ChaCha8 stream with all 32 seed bytes.
func newSource(seed *Seed) source {
	if seed == nil {
		fresh := RandomSeed()
		seed = &fresh
	}
	return source{rng: rand.New(rand.NewChaCha8(*seed))}
}

// OnCarve registers a callback invoked for every carved passage.
func (s *source) OnCarve(fn CarveFunc) {
	s.onCarve = fn
}

func (s *source) carve(m *Maze, from, to Coordinates) {
	m.carve(from, to)
	if s.onCarve != nil {
		s.onCarve(from, to)
	}
}

// pick returns a uniformly chosen element of candidates.
func pick[T any](s *source, candidates []T) T {
	return candidates[s.rng.IntN(len(candidates))]
}
