package maze

import (
	"fmt"
	"io"
	"strings"
)

// errWriter remembers the first write error so rendering code can write freely and
// check once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) result() error {
	if ew.err != nil {
		return fmt.Errorf("%w: %w", ErrRender, ew.err)
	}
	return nil
}

// WriteText draws the maze as ASCII art.
//
// Every row produces a line of corners ("·") with "-" for a northern wall, and a line
// with "|" for a western wall followed by "S", "G" or a blank for the cell. The last
// row is closed by a line of corners and walls. A 2x1 maze with a passage between its
// cells and start and goal on them renders as:
//
//	·-·-·
//	|S G|
//	·-·-·
func WriteText(w io.Writer, m *Maze) error {
	ew := &errWriter{w: w}
	width, height := m.Size()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			field, _ := m.Field(Coordinates{X: x, Y: y})
			ew.print("·")
			if field.HasPassage(North) {
				ew.print(" ")
			} else {
				ew.print("-")
			}
		}
		ew.print("·\n")

		for x := 0; x < width; x++ {
			field, _ := m.Field(Coordinates{X: x, Y: y})
			if field.HasPassage(West) {
				ew.print(" ")
			} else {
				ew.print("|")
			}
			switch field.Type {
			case FieldStart:
				ew.print("S")
			case FieldGoal:
				ew.print("G")
			default:
				ew.print(" ")
			}
		}
		ew.print("|\n")
	}

	if height > 0 {
		ew.print(strings.Repeat("·-", width))
		ew.print("·\n")
	}

	return ew.result()
}

// String returns the text rendering of the maze.
func (m *Maze) String() string {
	var sb strings.Builder
	_ = WriteText(&sb, m)
	return sb.String()
}
