package maze

// Backtracking generates mazes with randomized depth-first search.
//
// It walks from the start cell into a random unvisited neighbour as long as one
// exists and backtracks otherwise. The walk uses an explicit stack, so the maze size
// is not limited by the call depth. Mazes have long winding corridors and few
// dead ends.
//
// The start is the north-west corner (0, 0) and the goal is the south-west corner
// (0, height-1).
type Backtracking struct {
	source
}

// NewBacktracking creates a recursive backtracking generator.
// A nil seed draws the random stream from the runtime's entropy source.
func NewBacktracking(seed *Seed) *Backtracking {
	return &Backtracking{source: newSource(seed)}
}

// Generate implements Generator.
func (g *Backtracking) Generate(width, height int) (*Maze, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	m := newMaze(width, height, Coordinates{X: 0, Y: 0}, Coordinates{X: 0, Y: height - 1})
	visited := make([]bool, width*height)
	visited[m.graph.index(m.start)] = true
	stack := []Coordinates{m.start}
	candidates := make([]Coordinates, 0, len(directions))

	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		candidates = m.unvisitedNeighbors(cell, visited, candidates[:0])
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := pick(&g.source, candidates)
		g.carve(m, cell, next)
		visited[m.graph.index(next)] = true
		stack = append(stack, next)
	}

	return m, nil
}
