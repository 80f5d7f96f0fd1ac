package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEllers(t *testing.T) {
	t.Run("Single component for any probabilities", func(t *testing.T) {
		for _, opts := range []EllersOptions{
			{MergeProbability: 0, VerticalProbability: 0},
			{MergeProbability: 1, VerticalProbability: 0},
			{MergeProbability: 0, VerticalProbability: 1},
			{MergeProbability: 1, VerticalProbability: 1},
			{MergeProbability: 0.3, VerticalProbability: 0.8},
		} {
			seed := testSeed
			g, err := NewEllers(&seed, &opts)
			require.NoError(t, err)
			m, err := g.Generate(13, 17)
			require.NoError(t, err)
			requirePerfect(t, m, 13, 17)
		}
	})

	t.Run("Never merging horizontally leaves only the last row open sideways", func(t *testing.T) {
		seed := testSeed
		g, err := NewEllers(&seed, &EllersOptions{MergeProbability: 0, VerticalProbability: 1})
		require.NoError(t, err)
		m, err := g.Generate(6, 5)
		require.NoError(t, err)

		for y := 0; y < 4; y++ {
			for x := 0; x < 6; x++ {
				field, ok := m.Field(Coordinates{x, y})
				require.True(t, ok)
				assert.False(t, field.HasPassage(East), "cell %d,%d", x, y)
				assert.True(t, field.HasPassage(South), "cell %d,%d", x, y)
			}
		}
	})

	t.Run("Single row is one corridor", func(t *testing.T) {
		g, err := NewEllers(nil, nil)
		require.NoError(t, err)
		m, err := g.Generate(8, 1)
		require.NoError(t, err)
		for x := 0; x < 7; x++ {
			assert.True(t, m.graph.ContainsEdge(Coordinates{x, 0}, Coordinates{x + 1, 0}))
		}
	})

	t.Run("Conventions", func(t *testing.T) {
		g, err := NewEllers(nil, nil)
		require.NoError(t, err)
		m, err := g.Generate(4, 6)
		require.NoError(t, err)
		assert.Equal(t, Coordinates{0, 0}, m.Start())
		assert.Equal(t, Coordinates{3, 5}, m.Goal())
	})

	t.Run("Probabilities outside of [0, 1]", func(t *testing.T) {
		_, err := NewEllers(nil, &EllersOptions{MergeProbability: -0.5, VerticalProbability: 0.5})
		assert.ErrorIs(t, err, ErrInvalidOptions)
		_, err = NewEllers(nil, &EllersOptions{MergeProbability: 0.5, VerticalProbability: 1.5})
		assert.ErrorIs(t, err, ErrInvalidOptions)
	})
}

func TestPrims_Conventions(t *testing.T) {
	m, err := NewPrims(nil).Generate(5, 3)
	require.NoError(t, err)
	assert.Equal(t, Coordinates{0, 0}, m.Start())
	assert.Equal(t, Coordinates{4, 2}, m.Goal())
}
