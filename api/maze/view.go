package mazeapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
)

//go:generate templ generate -f view.templ

const xmlProlog = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"

// renderPage writes a standalone HTML page with the SVG drawing of the maze and
// its text form.
func renderPage(ctx context.Context, w io.Writer, record *dmn.MazeRecord) error {
	var svg bytes.Buffer
	if err := maze.WriteSVG(&svg, record.Maze, maze.DefaultSVGOptions()); err != nil {
		return err
	}
	title := fmt.Sprintf("%s maze %dx%d", record.Algorithm, record.Maze.Width(), record.Maze.Height())
	return mazePage(record, title, strings.TrimPrefix(svg.String(), xmlProlog)).Render(ctx, w)
}
