package maze

// Direction is one of the four grid directions a passage can lead to.
type Direction uint8

// The four directions, in the order returned by Directions.
const (
	North Direction = iota
	East
	South
	West
)

var directions = [4]Direction{North, East, South, West}

var directionNames = [4]string{"North", "East", "South", "West"}

// Directions returns all four directions in the fixed order North, East, South, West.
func Directions() [4]Direction {
	return directions
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// MirrorHorizontal mirrors the direction across the vertical axis,
// swapping East and West and leaving North and South untouched.
func (d Direction) MirrorHorizontal() Direction {
	switch d {
	case East:
		return West
	case West:
		return East
	}
	return d
}

// MirrorVertical mirrors the direction across the horizontal axis,
// swapping North and South and leaving East and West untouched.
func (d Direction) MirrorVertical() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	}
	return d
}

// Delta returns the coordinate offset of one step in the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// DirectionFromDelta maps a unit offset back to its direction.
// It reports false for any offset that is not exactly one grid step.
func DirectionFromDelta(dx, dy int) (Direction, bool) {
	switch {
	case dx == 0 && dy == -1:
		return North, true
	case dx == 1 && dy == 0:
		return East, true
	case dx == 0 && dy == 1:
		return South, true
	case dx == -1 && dy == 0:
		return West, true
	}
	return 0, false
}

// String returns the direction name.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "Direction(?)"
}

// bit is the passage mask bit of the direction.
func (d Direction) bit() uint8 {
	return 1 << d
}
