package maze

import "fmt"

const (
	defaultMergeProbability    = 0.5
	defaultVerticalProbability = 0.5
)

// EllersOptions tunes Eller's algorithm.
type EllersOptions struct {
	// MergeProbability is the chance of joining two horizontally adjacent cells of
	// different sets. The last row ignores it and joins all of them.
	MergeProbability float64

	// VerticalProbability is the chance of an extra passage down from a cell of a
	// set that already has its one mandatory passage into the next row.
	VerticalProbability float64
}

// DefaultEllersOptions returns coin flips for both decisions.
func DefaultEllersOptions() EllersOptions {
	return EllersOptions{
		MergeProbability:    defaultMergeProbability,
		VerticalProbability: defaultVerticalProbability,
	}
}

// Ellers generates mazes row by row with Eller's algorithm.
//
// Each cell of the current row carries a set id; cells share an id exactly when they
// are already connected. Random horizontal passages merge sets, then every set sends
// at least one passage down so that no set is cut off. The last row merges all
// remaining sets. Only one row of state is kept.
//
// The start is the north-west corner (0, 0) and the goal is the south-east corner
// (width-1, height-1).
type Ellers struct {
	source
	opts EllersOptions
}

// NewEllers creates an Eller's algorithm generator.
// Nil options select DefaultEllersOptions. Probabilities must lie in [0, 1].
func NewEllers(seed *Seed, opts *EllersOptions) (*Ellers, error) {
	if opts == nil {
		defaults := DefaultEllersOptions()
		opts = &defaults
	}
	if !validProbability(opts.MergeProbability) {
		return nil, fmt.Errorf("%w: merge probability %v", ErrInvalidOptions, opts.MergeProbability)
	}
	if !validProbability(opts.VerticalProbability) {
		return nil, fmt.Errorf("%w: vertical probability %v", ErrInvalidOptions, opts.VerticalProbability)
	}

	return &Ellers{source: newSource(seed), opts: *opts}, nil
}

// Generate implements Generator.
func (g *Ellers) Generate(width, height int) (*Maze, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	m := newMaze(width, height, Coordinates{X: 0, Y: 0}, Coordinates{X: width - 1, Y: height - 1})
	sets := make([]int, width) // 0 means no set yet
	nextID := 1

	for y := 0; y < height; y++ {
		for x := range sets {
			if sets[x] == 0 {
				sets[x] = nextID
				nextID++
			}
		}

		lastRow := y == height-1
		for x := 0; x < width-1; x++ {
			if sets[x] == sets[x+1] {
				continue
			}
			if lastRow || g.rng.Float64() < g.opts.MergeProbability {
				g.carve(m, Coordinates{X: x, Y: y}, Coordinates{X: x + 1, Y: y})
				mergeSets(sets, sets[x+1], sets[x])
			}
		}
		if lastRow {
			break
		}

		sets = g.carveDown(m, y, sets)
	}

	return m, nil
}

// carveDown opens the vertical passages out of row y and returns the set ids the
// next row inherits through them.
func (g *Ellers) carveDown(m *Maze, y int, sets []int) []int {
	// Members are grouped in order of first appearance so the random stream is
	// consumed in a fixed order.
	var order []int
	members := make(map[int][]int)
	for x, id := range sets {
		if _, ok := members[id]; !ok {
			order = append(order, id)
		}
		members[id] = append(members[id], x)
	}

	next := make([]int, len(sets))
	for _, id := range order {
		cols := members[id]
		forced := pick(&g.source, cols)
		for _, x := range cols {
			if x != forced && g.rng.Float64() >= g.opts.VerticalProbability {
				continue
			}
			g.carve(m, Coordinates{X: x, Y: y}, Coordinates{X: x, Y: y + 1})
			next[x] = id
		}
	}
	return next
}

// mergeSets relabels every cell of set from to set into.
func mergeSets(sets []int, from, into int) {
	for i, id := range sets {
		if id == from {
			sets[i] = into
		}
	}
}

func validProbability(p float64) bool {
	return p >= 0 && p <= 1
}
