package maze

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{ after int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errors.New("disk full")
	}
	f.after--
	return len(p), nil
}

func TestWriteText(t *testing.T) {
	t.Run("Small maze", func(t *testing.T) {
		want := "" +
			"·-·-·\n" +
			"|S|G|\n" +
			"· · ·\n" +
			"|   |\n" +
			"·-·-·\n"
		assert.Equal(t, want, uShape(t).String())
	})

	t.Run("Every row is equally wide", func(t *testing.T) {
		seed := testSeed
		m, err := NewPrims(&seed).Generate(6, 4)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSuffix(m.String(), "\n"), "\n")
		require.Len(t, lines, 2*4+1)
		for _, line := range lines {
			assert.Equal(t, 2*6+1, len([]rune(line)), "line %q", line)
		}
	})

	t.Run("Write errors are wrapped", func(t *testing.T) {
		err := WriteText(&failingWriter{after: 3}, uShape(t))
		assert.ErrorIs(t, err, ErrRender)
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestWriteSVG(t *testing.T) {
	t.Run("Document structure", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSVG(&buf, uShape(t), DefaultSVGOptions()))
		svg := buf.String()

		assert.True(t, strings.HasPrefix(svg, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<svg"))
		assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
		// 2x2 with padding 10: height 40, width 40, cells of 20 pixels.
		assert.Contains(t, svg, `width="60" height="60" viewBox="-10 -10 60 60"`)
		assert.Contains(t, svg, "stroke: black;")
		assert.Contains(t, svg, `<circle cx="10" cy="10" r="2" stroke="red" stroke-width="3" fill="red" />`)
		assert.Contains(t, svg, `<circle cx="30" cy="10" r="2" stroke="blue" stroke-width="3" fill="blue" />`)

		// North walls of both top cells, west walls of (0,0), (1,0) and (0,1), two borders.
		assert.Equal(t, 7, strings.Count(svg, "<line "))
		assert.Contains(t, svg, `<line x1="20" y1="0" x2="20" y2="20"/>`)
		assert.NotContains(t, svg, `<line x1="20" y1="20" x2="20" y2="40"/>`)
	})

	t.Run("Fixed height", func(t *testing.T) {
		opts := DefaultSVGOptions()
		opts.Height = 100
		opts.StrokeColor = "#333"
		var buf bytes.Buffer
		require.NoError(t, WriteSVG(&buf, uShape(t), opts))
		assert.Contains(t, buf.String(), `width="120" height="120"`)
		assert.Contains(t, buf.String(), "stroke: #333;")
	})

	t.Run("Colours that would break the markup", func(t *testing.T) {
		for _, color := range []string{`red" onload="x`, "red]]><script/>", "", "url(#a)", "<b>"} {
			opts := DefaultSVGOptions()
			opts.GoalColor = color
			var buf bytes.Buffer
			err := WriteSVG(&buf, uShape(t), opts)
			assert.ErrorIs(t, err, ErrInvalidOptions, "colour %q", color)
			assert.Zero(t, buf.Len())
		}
	})

	t.Run("CSS colour forms", func(t *testing.T) {
		for _, color := range []string{"#fff", "#a0b1c2ff", "DarkSlateGray", "rgb(10, 20, 30)", "hsla(120, 50%, 50%, 0.3)"} {
			opts := DefaultSVGOptions()
			opts.StartColor = color
			var buf bytes.Buffer
			require.NoError(t, WriteSVG(&buf, uShape(t), opts), "colour %q", color)
			assert.Contains(t, buf.String(), `fill="`+color+`"`)
		}
	})

	t.Run("Write errors are wrapped", func(t *testing.T) {
		err := WriteSVG(&failingWriter{after: 5}, uShape(t), DefaultSVGOptions())
		assert.ErrorIs(t, err, ErrRender)
	})
}
