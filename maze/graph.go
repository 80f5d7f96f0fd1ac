package maze

import "slices"

// Graph is an undirected grid graph whose nodes are the cells of a width x height
// rectangle and whose edges are open passages between neighbouring cells.
//
// Nodes live in an arena indexed in row-major order. Every node stores a 4-bit mask
// with one bit per direction, so both endpoints of an edge record it.
type Graph struct {
	width  int
	height int
	cells  []uint8
	edges  int
}

// Edge is an undirected passage. A always sorts before B.
type Edge struct {
	A Coordinates
	B Coordinates
}

func newGraph(width, height int) *Graph {
	return &Graph{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}
}

// Width returns the number of columns of the grid.
func (g *Graph) Width() int { return g.width }

// Height returns the number of rows of the grid.
func (g *Graph) Height() int { return g.height }

// NodeCount returns the number of cells in the graph.
func (g *Graph) NodeCount() int { return len(g.cells) }

// EdgeCount returns the number of passages in the graph.
func (g *Graph) EdgeCount() int { return g.edges }

// Contains reports whether c is a node of the graph.
func (g *Graph) Contains(c Coordinates) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// ContainsEdge reports whether a passage connects a and b.
func (g *Graph) ContainsEdge(a, b Coordinates) bool {
	if !g.Contains(a) || !g.Contains(b) {
		return false
	}
	d, ok := DirectionFromDelta(b.X-a.X, b.Y-a.Y)
	if !ok {
		return false
	}
	return g.cells[g.index(a)]&d.bit() != 0
}

// AddEdge opens a passage between a and b.
// It reports false and leaves the graph untouched when either node is outside the
// grid, the nodes are not grid-adjacent, or the passage already exists.
func (g *Graph) AddEdge(a, b Coordinates) bool {
	if !g.Contains(a) || !g.Contains(b) {
		return false
	}
	d, ok := DirectionFromDelta(b.X-a.X, b.Y-a.Y)
	if !ok {
		return false
	}
	ia, ib := g.index(a), g.index(b)
	if g.cells[ia]&d.bit() != 0 {
		return false
	}
	g.cells[ia] |= d.bit()
	g.cells[ib] |= d.Opposite().bit()
	g.edges++
	return true
}

// Neighbors returns the nodes connected to c by a passage, in direction order.
func (g *Graph) Neighbors(c Coordinates) []Coordinates {
	if !g.Contains(c) {
		return nil
	}
	mask := g.cells[g.index(c)]
	var result []Coordinates
	for _, d := range directions {
		if mask&d.bit() != 0 {
			result = append(result, c.Next(d))
		}
	}
	return result
}

// Edges returns every passage once, sorted by A then B.
func (g *Graph) Edges() []Edge {
	result := make([]Edge, 0, g.edges)
	for i, mask := range g.cells {
		c := g.coordinates(i)
		// East and South are enough to list each edge exactly once.
		if mask&East.bit() != 0 {
			result = append(result, Edge{A: c, B: c.Next(East)})
		}
		if mask&South.bit() != 0 {
			result = append(result, Edge{A: c, B: c.Next(South)})
		}
	}
	slices.SortFunc(result, func(x, y Edge) int {
		if c := x.A.Compare(y.A); c != 0 {
			return c
		}
		return x.B.Compare(y.B)
	})
	return result
}

func (g *Graph) index(c Coordinates) int {
	return c.Y*g.width + c.X
}

func (g *Graph) coordinates(i int) Coordinates {
	return Coordinates{X: i % g.width, Y: i / g.width}
}

// neighborIndexes appends the arena indexes of the nodes connected to node i.
func (g *Graph) neighborIndexes(i int, dst []int) []int {
	mask := g.cells[i]
	for _, d := range directions {
		if mask&d.bit() == 0 {
			continue
		}
		dx, dy := d.Delta()
		dst = append(dst, i+dy*g.width+dx)
	}
	return dst
}

// connected reports whether every node is reachable from node 0.
func (g *Graph) connected() bool {
	if len(g.cells) == 0 {
		return true
	}
	seen := make([]bool, len(g.cells))
	seen[0] = true
	queue := []int{0}
	count := 1
	var buf []int
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		buf = g.neighborIndexes(v, buf[:0])
		for _, u := range buf {
			if !seen[u] {
				seen[u] = true
				count++
				queue = append(queue, u)
			}
		}
	}
	return count == len(g.cells)
}
