package maze

import (
	"fmt"
	"io"
	"regexp"
)

// SVGOptions controls the vector rendering of a maze.
type SVGOptions struct {
	Padding     int    // Blank border around the maze, in pixels
	Height      int    // Height of the maze without padding; 0 derives it from Padding
	MarkerSize  int    // Radius of the start and goal circles
	StrokeWidth int    // Width of the wall lines
	StrokeColor string // Colour of the wall lines
	StartColor  string // Colour of the start marker
	GoalColor   string // Colour of the goal marker
}

// DefaultSVGOptions returns black walls with a red start and a blue goal marker.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Padding:     10,
		MarkerSize:  2,
		StrokeWidth: 2,
		StrokeColor: "black",
		StartColor:  "red",
		GoalColor:   "blue",
	}
}

// colorPattern accepts hex colours, colour keywords and the rgb/hsl functions.
// None of them can contain a quote or markup.
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9a-z.,%/ ]+\))$`)

func (o SVGOptions) validate() error {
	for _, c := range []struct{ name, value string }{
		{"stroke", o.StrokeColor},
		{"start", o.StartColor},
		{"goal", o.GoalColor},
	} {
		if !colorPattern.MatchString(c.value) {
			return fmt.Errorf("%w: %s colour %q", ErrInvalidOptions, c.name, c.value)
		}
	}
	return nil
}

// WriteSVG renders the maze as an SVG document.
//
// Each missing northern or western passage becomes a line; the southern and eastern
// border are drawn once at the end. Start and goal are marked with filled circles.
// Colours that are not plain CSS colour values fail with ErrInvalidOptions before
// anything is written.
func WriteSVG(w io.Writer, m *Maze, opts SVGOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	ew := &errWriter{w: w}
	cols, rows := m.Size()
	if cols == 0 || rows == 0 {
		ew.print("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<svg xmlns=\"http://www.w3.org/2000/svg\"/>\n")
		return ew.result()
	}

	padding := opts.Padding
	height := opts.Height
	if height <= 0 {
		height = (2 + rows) * padding
	}
	width := height * cols / rows

	// Scale factors from maze coordinates to image coordinates.
	scx := max(width/cols, 1)
	scy := max(height/rows, 1)
	width = scx * cols
	height = scy * rows

	ew.print("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	ew.print("<svg xmlns=\"http://www.w3.org/2000/svg\"\n")
	ew.print("    xmlns:xlink=\"http://www.w3.org/1999/xlink\"\n")
	ew.printf("    width=\"%d\" height=\"%d\" viewBox=\"%d %d %d %d\">\n",
		width+2*padding, height+2*padding, -padding, -padding, width+2*padding, height+2*padding)
	ew.print("<defs>\n<style type=\"text/css\"><![CDATA[\n")
	ew.print("line {\n")
	ew.printf("    stroke: %s;\n    stroke-linecap: square;\n", opts.StrokeColor)
	ew.printf("    stroke-width: %d;\n}\n", opts.StrokeWidth)
	ew.print("]]></style>\n</defs>\n")

	line := func(x1, y1, x2, y2 int) {
		ew.printf("<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\"/>\n", x1, y1, x2, y2)
	}
	marker := func(x, y int, color string) {
		ew.printf("<circle cx=\"%d\" cy=\"%d\" r=\"%d\" stroke=\"%s\" stroke-width=\"%d\" fill=\"%s\" />\n",
			x*scx+scx/2, y*scy+scy/2, opts.MarkerSize, color, opts.MarkerSize+1, color)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			field, _ := m.Field(Coordinates{X: x, Y: y})
			if field.HasWall(North) {
				line(x*scx, y*scy, (x+1)*scx, y*scy)
			}
		}
		for x := 0; x < cols; x++ {
			field, _ := m.Field(Coordinates{X: x, Y: y})
			if field.HasWall(West) {
				line(x*scx, y*scy, x*scx, (y+1)*scy)
			}
			switch field.Type {
			case FieldStart:
				marker(x, y, opts.StartColor)
			case FieldGoal:
				marker(x, y, opts.GoalColor)
			}
		}
	}

	line(0, height, width, height)
	line(width, 0, width, height)
	ew.print("</svg>\n")

	return ew.result()
}
