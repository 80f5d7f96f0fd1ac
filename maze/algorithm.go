package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm names a maze generation algorithm.
type Algorithm string

const (
	AlgorithmBacktracking Algorithm = "backtracking"
	AlgorithmPrims        Algorithm = "prims"
	AlgorithmEllers       Algorithm = "ellers"
	AlgorithmGrowingTree  Algorithm = "growing-tree"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmBacktracking, AlgorithmPrims, AlgorithmEllers, AlgorithmGrowingTree}
}

// ParseAlgorithm maps a name to its algorithm, ignoring case.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms() {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Options carries the algorithm specific settings for New.
// Settings for other algorithms than the requested one are ignored.
type Options struct {
	Ellers      *EllersOptions
	GrowingTree *GrowingTreeOptions
}

// New creates a generator for the given algorithm.
func New(alg Algorithm, seed *Seed, opts *Options) (Generator, error) {
	if opts == nil {
		opts = &Options{}
	}

	switch alg {
	case AlgorithmBacktracking:
		return NewBacktracking(seed), nil
	case AlgorithmPrims:
		return NewPrims(seed), nil
	case AlgorithmEllers:
		g, err := NewEllers(seed, opts.Ellers)
		if err != nil {
			return nil, err
		}
		return g, nil
	case AlgorithmGrowingTree:
		g, err := NewGrowingTree(seed, opts.GrowingTree)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
}
