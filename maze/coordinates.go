package maze

import "fmt"

// Coordinates addresses a single cell of a maze.
// X grows eastwards and Y grows southwards, so (0, 0) is the north-west corner.
type Coordinates struct {
	X int // Column of the cell
	Y int // Row of the cell
}

// NewCoordinates creates coordinates from their components.
func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// Next returns the neighbouring coordinates in the given direction.
// The result may lie outside of any maze; bounds are checked by the maze itself.
func (c Coordinates) Next(d Direction) Coordinates {
	dx, dy := d.Delta()
	return Coordinates{X: c.X + dx, Y: c.Y + dy}
}

// Compare orders coordinates by X first and Y second.
// It returns -1, 0 or +1 like cmp.Compare.
func (c Coordinates) Compare(other Coordinates) int {
	switch {
	case c.X < other.X:
		return -1
	case c.X > other.X:
		return 1
	case c.Y < other.Y:
		return -1
	case c.Y > other.Y:
		return 1
	}
	return 0
}

// Less reports whether c sorts before other.
func (c Coordinates) Less(other Coordinates) bool {
	return c.Compare(other) < 0
}

// String returns the coordinates as "(x, y)".
func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// adjacent reports whether the two coordinates are one step apart on the grid.
func adjacent(a, b Coordinates) bool {
	_, ok := DirectionFromDelta(b.X-a.X, b.Y-a.Y)
	return ok
}
