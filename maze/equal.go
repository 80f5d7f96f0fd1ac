package maze

import (
	"slices"
	"strconv"
	"strings"
)

// Equal reports whether two mazes have the same size, start and goal and
// isomorphic passage graphs. The passages do not need to be laid out identically;
// only the shape of the tree they form has to match.
func Equal(a, b *Maze) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.start != b.start || a.goal != b.goal {
		return false
	}
	aw, ah := a.Size()
	bw, bh := b.Size()
	if aw != bw || ah != bh {
		return false
	}
	if a.graph == nil || b.graph == nil {
		return a.graph == b.graph
	}
	return treesIsomorphic(a.graph, b.graph)
}

// treesIsomorphic compares two trees with the AHU canonical form.
// An isomorphism maps centres onto centres, so rooting the first tree at one of its
// centres and the second at each of its centres covers every case.
func treesIsomorphic(a, b *Graph) bool {
	n := a.NodeCount()
	if n != b.NodeCount() || a.edges != n-1 || b.edges != n-1 {
		return false
	}
	if !a.connected() || !b.connected() {
		return false
	}
	if !slices.Equal(degreeHistogram(a), degreeHistogram(b)) {
		return false
	}

	ca, cb := treeCenters(a), treeCenters(b)
	if len(ca) != len(cb) {
		return false
	}

	c := canonicalizer{ids: make(map[string]int)}
	want := c.rootedID(a, ca[0])
	for _, root := range cb {
		if c.rootedID(b, root) == want {
			return true
		}
	}
	return false
}

func degreeHistogram(g *Graph) []int {
	hist := make([]int, len(directions)+1)
	var buf []int
	for i := range g.cells {
		buf = g.neighborIndexes(i, buf[:0])
		hist[len(buf)]++
	}
	return hist
}

// treeCenters returns the one or two nodes left after repeatedly removing all leaves.
func treeCenters(g *Graph) []int {
	n := g.NodeCount()
	if n <= 2 {
		centers := make([]int, n)
		for i := range centers {
			centers[i] = i
		}
		return centers
	}

	degree := make([]int, n)
	var leaves []int
	var buf []int
	for i := range n {
		buf = g.neighborIndexes(i, buf[:0])
		degree[i] = len(buf)
		if degree[i] <= 1 {
			leaves = append(leaves, i)
		}
	}

	remaining := n
	for remaining > 2 {
		remaining -= len(leaves)
		var next []int
		for _, leaf := range leaves {
			buf = g.neighborIndexes(leaf, buf[:0])
			for _, u := range buf {
				degree[u]--
				if degree[u] == 1 {
					next = append(next, u)
				}
			}
		}
		leaves = next
	}
	return leaves
}

// canonicalizer assigns the same id to isomorphic rooted subtrees.
// The id table is shared between the trees being compared.
type canonicalizer struct {
	ids map[string]int
}

func (c *canonicalizer) rootedID(g *Graph, root int) int {
	n := g.NodeCount()
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	parent[root] = root
	order := make([]int, 0, n)
	order = append(order, root)
	var buf []int
	for i := 0; i < len(order); i++ {
		v := order[i]
		buf = g.neighborIndexes(v, buf[:0])
		for _, u := range buf {
			if parent[u] == -1 {
				parent[u] = v
				order = append(order, u)
			}
		}
	}

	// Children are labelled before their parents by walking the BFS order backwards.
	children := make([][]int, n)
	label := make([]int, n)
	var key strings.Builder
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		kids := children[v]
		slices.Sort(kids)

		key.Reset()
		for _, k := range kids {
			key.WriteString(strconv.Itoa(k))
			key.WriteByte(',')
		}
		id, ok := c.ids[key.String()]
		if !ok {
			id = len(c.ids)
			c.ids[key.String()] = id
		}
		label[v] = id

		if v != root {
			children[parent[v]] = append(children[parent[v]], id)
		}
	}
	return label[root]
}
