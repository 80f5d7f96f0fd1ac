package maze

import (
	"fmt"
	"strings"
)

// FieldType tells start and goal cells apart from ordinary ones.
type FieldType uint8

const (
	FieldNormal FieldType = iota
	FieldStart
	FieldGoal
)

// String returns the field type name.
func (t FieldType) String() string {
	switch t {
	case FieldStart:
		return "Start"
	case FieldGoal:
		return "Goal"
	}
	return "Normal"
}

// Field is a read-only view of one cell of a maze.
// It is derived from the maze graph on demand and never stored.
type Field struct {
	Type        FieldType   // Start, Goal or Normal
	Coordinates Coordinates // Position of the cell
	passages    uint8
}

// HasPassage reports whether a passage leaves the cell in the given direction.
func (f Field) HasPassage(d Direction) bool {
	return f.passages&d.bit() != 0
}

// HasWall reports whether the cell is closed in the given direction.
func (f Field) HasWall(d Direction) bool {
	return !f.HasPassage(d)
}

// Passages lists the open directions of the cell in direction order.
func (f Field) Passages() []Direction {
	var result []Direction
	for _, d := range directions {
		if f.HasPassage(d) {
			result = append(result, d)
		}
	}
	return result
}

// String describes every side of the cell, e.g.
// "Field{north: wall, east: wall, south: passage, west: wall}".
func (f Field) String() string {
	parts := make([]string, 0, len(directions))
	for _, d := range directions {
		side := "wall"
		if f.HasPassage(d) {
			side = "passage"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(d.String()), side))
	}
	return "Field{" + strings.Join(parts, ", ") + "}"
}
