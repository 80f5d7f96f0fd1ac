package pb

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func generated(t *testing.T, alg maze.Algorithm, w, h int) *maze.Maze {
	t.Helper()
	seed := maze.SeedFromPhrase("pb")
	gen, err := maze.New(alg, &seed, nil)
	require.NoError(t, err)
	m, err := gen.Generate(w, h)
	require.NoError(t, err)
	return m
}

func TestProtobuf(t *testing.T) {
	encoder := &Protobuf{}

	t.Run("Round trip", func(t *testing.T) {
		for _, alg := range maze.Algorithms() {
			m := generated(t, alg, 9, 7)
			b, err := encoder.MarshalMaze(m)
			require.NoError(t, err)

			decoded, err := encoder.UnmarshalMaze(b)
			require.NoError(t, err, alg)
			assert.Equal(t, m.Start(), decoded.Start(), alg)
			assert.Equal(t, m.Goal(), decoded.Goal(), alg)
			assert.Equal(t, m.Edges(), decoded.Edges(), alg)
		}
	})

	t.Run("Wire layout", func(t *testing.T) {
		m := generated(t, maze.AlgorithmPrims, 2, 1)
		b, err := encoder.MarshalMaze(m)
		require.NoError(t, err)

		// width=2, height=1, start (0,0) is an empty Pos, goal (1,0) sets only x.
		want := []byte{
			0x08, 0x02,
			0x10, 0x01,
			0x1a, 0x00,
			0x22, 0x02, 0x08, 0x01,
			0x2a, 0x02, 0x02, 0x08,
		}
		assert.Equal(t, want, b)
	})

	t.Run("Unknown fields are skipped", func(t *testing.T) {
		m := generated(t, maze.AlgorithmEllers, 3, 3)
		b, err := encoder.MarshalMaze(m)
		require.NoError(t, err)
		b = protowire.AppendTag(b, 15, protowire.BytesType)
		b = protowire.AppendString(b, "from a newer writer")

		decoded, err := encoder.UnmarshalMaze(b)
		require.NoError(t, err)
		assert.True(t, maze.Equal(m, decoded))
	})

	t.Run("Malformed input", func(t *testing.T) {
		_, err := encoder.UnmarshalMaze([]byte{0xff})
		assert.ErrorIs(t, err, ErrMalformed)

		_, err = encoder.UnmarshalMaze([]byte{0x2a, 0x05, 0x01})
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("Invalid maze", func(t *testing.T) {
		m := generated(t, maze.AlgorithmBacktracking, 3, 3)
		b, err := encoder.MarshalMaze(m)
		require.NoError(t, err)
		b[len(b)-1] ^= 0x01 // toggles the north passage of the last cell

		_, err = encoder.UnmarshalMaze(b)
		assert.ErrorIs(t, err, maze.ErrInvalidMaze)
	})

	t.Run("Nil maze", func(t *testing.T) {
		_, err := encoder.MarshalMaze(nil)
		assert.Error(t, err)
	})

	assert.Equal(t, "application/x-protobuf", encoder.ContentType())
}
