/*
Package maze generates perfect rectangular mazes.

A maze is a spanning tree over the grid graph of its cells: every cell is reachable
and there is exactly one simple path between any two cells. Mazes are built by one of
the Generator implementations (recursive backtracking, randomized Prim's, Eller's
algorithm and the growing tree family) and are read-only afterwards.

The package also renders mazes as text and SVG and compares them by isomorphism.
*/
package maze

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize    = errors.New("invalid maze size")
	ErrInvalidMaze    = errors.New("invalid maze")
	ErrInvalidOptions = errors.New("invalid generator options")
	ErrRender         = errors.New("render maze")
)

// Maze is a perfect maze together with its start and goal cells.
//
// The passage graph is owned by the maze. It can only be taken out with TakeGraph,
// which leaves the maze empty.
type Maze struct {
	graph *Graph
	start Coordinates
	goal  Coordinates
}

func newMaze(width, height int, start, goal Coordinates) *Maze {
	return &Maze{
		graph: newGraph(width, height),
		start: start,
		goal:  goal,
	}
}

// FromCells rebuilds a maze from row-major passage masks as returned by Cells.
// The result is validated, so only perfect mazes are accepted.
func FromCells(width, height int, start, goal Coordinates, cells []uint8) (*Maze, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid", ErrInvalidMaze, len(cells), width, height)
	}

	m := newMaze(width, height, start, goal)
	for i, mask := range cells {
		if mask&^0x0f != 0 {
			return nil, fmt.Errorf("%w: unknown passage bits %#x at %s", ErrInvalidMaze, mask, m.graph.coordinates(i))
		}
		c := m.graph.coordinates(i)
		for _, d := range directions {
			if mask&d.bit() == 0 {
				continue
			}
			next := c.Next(d)
			if !m.graph.Contains(next) {
				return nil, fmt.Errorf("%w: passage %s leaves the grid at %s", ErrInvalidMaze, d, c)
			}
			if cells[m.graph.index(next)]&d.Opposite().bit() == 0 {
				return nil, fmt.Errorf("%w: one-sided passage %s at %s", ErrInvalidMaze, d, c)
			}
			m.graph.AddEdge(c, next)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Start returns the coordinates of the start cell.
func (m *Maze) Start() Coordinates { return m.start }

// Goal returns the coordinates of the goal cell.
func (m *Maze) Goal() Coordinates { return m.goal }

// Width returns the number of columns.
func (m *Maze) Width() int {
	if m.graph == nil {
		return 0
	}
	return m.graph.width
}

// Height returns the number of rows.
func (m *Maze) Height() int {
	if m.graph == nil {
		return 0
	}
	return m.graph.height
}

// Size returns the dimensions as (width, height).
func (m *Maze) Size() (width, height int) {
	return m.Width(), m.Height()
}

// InBound reports whether the coordinates lie inside the maze.
func (m *Maze) InBound(c Coordinates) bool {
	return m.graph != nil && m.graph.Contains(c)
}

// Field returns the cell at c. It reports false when c is outside the maze.
func (m *Maze) Field(c Coordinates) (Field, bool) {
	if !m.InBound(c) {
		return Field{}, false
	}

	fieldType := FieldNormal
	switch c {
	case m.start:
		fieldType = FieldStart
	case m.goal:
		fieldType = FieldGoal
	}

	return Field{
		Type:        fieldType,
		Coordinates: c,
		passages:    m.graph.cells[m.graph.index(c)],
	}, true
}

// PassageCount returns the number of open passages.
func (m *Maze) PassageCount() int {
	if m.graph == nil {
		return 0
	}
	return m.graph.edges
}

// Cells returns a copy of the row-major passage masks, one byte per cell.
// Bit 0 is North, bit 1 East, bit 2 South and bit 3 West.
func (m *Maze) Cells() []uint8 {
	if m.graph == nil {
		return nil
	}
	cells := make([]uint8, len(m.graph.cells))
	copy(cells, m.graph.cells)
	return cells
}

// Edges returns every passage once, sorted.
func (m *Maze) Edges() []Edge {
	if m.graph == nil {
		return nil
	}
	return m.graph.Edges()
}

// TakeGraph hands the passage graph over to the caller and empties the maze.
// The graph is no longer guarded by the maze invariants once taken.
func (m *Maze) TakeGraph() *Graph {
	g := m.graph
	*m = Maze{}
	return g
}

// Validate checks that the maze is a perfect maze with start and goal inside it.
func (m *Maze) Validate() error {
	if m.graph == nil {
		return fmt.Errorf("%w: no graph", ErrInvalidMaze)
	}
	if err := validateSize(m.graph.width, m.graph.height); err != nil {
		return err
	}
	if !m.graph.Contains(m.start) {
		return fmt.Errorf("%w: start %s outside of the maze", ErrInvalidMaze, m.start)
	}
	if !m.graph.Contains(m.goal) {
		return fmt.Errorf("%w: goal %s outside of the maze", ErrInvalidMaze, m.goal)
	}
	nodes := m.graph.NodeCount()
	if m.graph.edges != nodes-1 {
		return fmt.Errorf("%w: %d passages for %d cells", ErrInvalidMaze, m.graph.edges, nodes)
	}
	if !m.graph.connected() {
		return fmt.Errorf("%w: not connected", ErrInvalidMaze)
	}
	return nil
}

// carve opens the passage between two adjacent cells.
func (m *Maze) carve(from, to Coordinates) {
	m.graph.AddEdge(from, to)
}

// unvisitedNeighbors appends the in-bound, unvisited neighbours of c in direction order.
func (m *Maze) unvisitedNeighbors(c Coordinates, visited []bool, dst []Coordinates) []Coordinates {
	for _, d := range directions {
		next := c.Next(d)
		if m.graph.Contains(next) && !visited[m.graph.index(next)] {
			dst = append(dst, next)
		}
	}
	return dst
}

// farthestFrom returns the last cell reached by a breadth-first walk from c that
// explores neighbours in direction order. It lies at maximum passage distance.
func (m *Maze) farthestFrom(c Coordinates) Coordinates {
	g := m.graph
	seen := make([]bool, len(g.cells))
	root := g.index(c)
	seen[root] = true
	queue := []int{root}
	last := root
	var buf []int
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		last = v
		buf = g.neighborIndexes(v, buf[:0])
		for _, u := range buf {
			if !seen[u] {
				seen[u] = true
				queue = append(queue, u)
			}
		}
	}
	return g.coordinates(last)
}

func validateSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}
