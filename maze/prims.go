package maze

// Prims generates mazes with a randomized version of Prim's algorithm.
//
// The tree grows from the start cell. Every step takes a random candidate passage
// from the frontier, which holds passages from a cell inside the tree to a cell that
// was outside when the candidate was added. Candidates whose target joined the tree
// in the meantime are dropped. Mazes branch a lot and have many short dead ends.
//
// The start is the north-west corner (0, 0) and the goal is the south-east corner
// (width-1, height-1).
type Prims struct {
	source
}

type frontierEdge struct {
	from Coordinates
	to   Coordinates
}

// NewPrims creates a randomized Prim's generator.
// A nil seed draws the random stream from the runtime's entropy source.
func NewPrims(seed *Seed) *Prims {
	return &Prims{source: newSource(seed)}
}

// Generate implements Generator.
func (g *Prims) Generate(width, height int) (*Maze, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	m := newMaze(width, height, Coordinates{X: 0, Y: 0}, Coordinates{X: width - 1, Y: height - 1})
	visited := make([]bool, width*height)
	var frontier []frontierEdge
	var neighbors []Coordinates

	grow := func(cell Coordinates) {
		visited[m.graph.index(cell)] = true
		neighbors = m.unvisitedNeighbors(cell, visited, neighbors[:0])
		for _, n := range neighbors {
			frontier = append(frontier, frontierEdge{from: cell, to: n})
		}
	}

	grow(m.start)
	for len(frontier) > 0 {
		i := g.rng.IntN(len(frontier))
		candidate := frontier[i]
		last := len(frontier) - 1
		frontier[i] = frontier[last]
		frontier = frontier[:last]

		if visited[m.graph.index(candidate.to)] {
			continue
		}
		g.carve(m, candidate.from, candidate.to)
		grow(candidate.to)
	}

	return m, nil
}
