package maze

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Policy selects the active cell the growing tree extends next.
type Policy uint8

const (
	// PolicyNewest always extends the most recently added cell, which makes the
	// growing tree behave like recursive backtracking.
	PolicyNewest Policy = iota
	// PolicyRandom extends a uniformly chosen cell, which gives Prim's-like mazes.
	PolicyRandom
	// PolicyMixed extends the newest cell with probability NewestRatio and a random
	// one otherwise.
	PolicyMixed
)

var policyNames = map[Policy]string{
	PolicyNewest: "newest",
	PolicyRandom: "random",
	PolicyMixed:  "mixed",
}

// String returns the policy name.
func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// ParsePolicy maps a policy name back to its value.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown policy %q", ErrInvalidOptions, s)
}

// GrowingTreeOptions configures the growing tree generator.
type GrowingTreeOptions struct {
	Policy      Policy
	NewestRatio float64 // Only used by PolicyMixed; must lie in [0, 1]
}

// DefaultGrowingTreeOptions returns an even mix of newest and random selection.
func DefaultGrowingTreeOptions() GrowingTreeOptions {
	return GrowingTreeOptions{Policy: PolicyMixed, NewestRatio: 0.5}
}

// GrowingTree generates mazes with the growing tree algorithm.
//
// It keeps a list of active cells. Each step selects one according to the policy and
// carves into a random unvisited neighbour, which becomes active too. Cells without
// unvisited neighbours leave the list.
//
// The start cell is drawn at random and the goal is a cell at maximum passage
// distance from it.
type GrowingTree struct {
	source
	opts GrowingTreeOptions
}

// NewGrowingTree creates a growing tree generator.
// Nil options select DefaultGrowingTreeOptions.
func NewGrowingTree(seed *Seed, opts *GrowingTreeOptions) (*GrowingTree, error) {
	if opts == nil {
		defaults := DefaultGrowingTreeOptions()
		opts = &defaults
	}
	if _, ok := policyNames[opts.Policy]; !ok {
		return nil, fmt.Errorf("%w: unknown policy %d", ErrInvalidOptions, opts.Policy)
	}
	if !validProbability(opts.NewestRatio) {
		return nil, fmt.Errorf("%w: newest ratio %v", ErrInvalidOptions, opts.NewestRatio)
	}

	return &GrowingTree{source: newSource(seed), opts: *opts}, nil
}

// Generate implements Generator.
func (g *GrowingTree) Generate(width, height int) (*Maze, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	start := Coordinates{X: g.rng.IntN(width), Y: g.rng.IntN(height)}
	m := newMaze(width, height, start, start)
	visited := make([]bool, width*height)
	visited[m.graph.index(start)] = true
	var active activeCells
	active.push(start)
	candidates := make([]Coordinates, 0, len(directions))

	for active.len() > 0 {
		i := g.selectActive(&active)
		cell := active.cells[i]
		candidates = m.unvisitedNeighbors(cell, visited, candidates[:0])
		if len(candidates) == 0 {
			active.remove(i)
			continue
		}

		next := pick(&g.source, candidates)
		g.carve(m, cell, next)
		visited[m.graph.index(next)] = true
		active.push(next)
	}

	m.goal = m.farthestFrom(start)
	return m, nil
}

func (g *GrowingTree) selectActive(a *activeCells) int {
	switch g.opts.Policy {
	case PolicyNewest:
		return a.newest()
	case PolicyRandom:
		return a.random(g.rng)
	}
	if g.rng.Float64() < g.opts.NewestRatio {
		return a.newest()
	}
	return a.random(g.rng)
}

// activeCells is the growing tree's active list in insertion order.
// Removed cells leave holes that are skipped by random picks and compacted away
// once they make up half of the list, so removal never shifts the tail.
type activeCells struct {
	cells   []Coordinates
	removed []bool
	live    int
}

func (a *activeCells) len() int {
	return a.live
}

func (a *activeCells) push(c Coordinates) {
	a.cells = append(a.cells, c)
	a.removed = append(a.removed, false)
	a.live++
}

// newest returns the index of the most recently added cell.
// The last slot is never a hole.
func (a *activeCells) newest() int {
	return len(a.cells) - 1
}

// random returns the index of a uniformly chosen live cell.
func (a *activeCells) random(rng *rand.Rand) int {
	for {
		i := rng.IntN(len(a.cells))
		if !a.removed[i] {
			return i
		}
	}
}

func (a *activeCells) remove(i int) {
	a.removed[i] = true
	a.live--

	n := len(a.cells)
	for n > 0 && a.removed[n-1] {
		n--
	}
	a.cells, a.removed = a.cells[:n], a.removed[:n]

	if len(a.cells) > 2*a.live {
		a.compact()
	}
}

func (a *activeCells) compact() {
	n := 0
	for i, c := range a.cells {
		if !a.removed[i] {
			a.cells[n] = c
			a.removed[n] = false
			n++
		}
	}
	a.cells, a.removed = a.cells[:n], a.removed[:n]
}
