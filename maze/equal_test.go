package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	t.Run("Same layout", func(t *testing.T) {
		assert.True(t, Equal(uShape(t), uShape(t)))
	})

	t.Run("Different layout with the same shape", func(t *testing.T) {
		// Both mazes are a path over four cells.
		//
		//	·-·-·      ·-·-·
		//	|S|G|      |S G|
		//	· · ·      ·-· ·
		//	|   |      |   |
		//	·-·-·      ·-·-·
		other, err := FromCells(2, 2, Coordinates{0, 0}, Coordinates{1, 0}, []uint8{
			openE, openW | openS,
			openE, openN | openW,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uShape(t).Edges(), other.Edges())
		assert.True(t, Equal(uShape(t), other))
	})

	t.Run("Different shape", func(t *testing.T) {
		// A star around (1,1) is not a path.
		star, err := FromCells(3, 3, Coordinates{0, 0}, Coordinates{2, 2}, []uint8{
			openE, openW | openE | openS, openW,
			openE, openN | openE | openS | openW, openW,
			openE, openN | openE | openW, openW,
		})
		require.NoError(t, err)
		comb, err := FromCells(3, 3, Coordinates{0, 0}, Coordinates{2, 2}, []uint8{
			openS, openS, openS,
			openN | openS, openN | openS, openN | openS,
			openN | openE, openN | openE | openW, openN | openW,
		})
		require.NoError(t, err)
		assert.False(t, Equal(star, comb))
	})

	t.Run("Start, goal and size matter", func(t *testing.T) {
		moved, err := FromCells(2, 2, Coordinates{0, 1}, Coordinates{1, 0}, []uint8{
			openS, openS,
			openN | openE, openN | openW,
		})
		require.NoError(t, err)
		assert.False(t, Equal(uShape(t), moved))

		seed := testSeed
		wide, err := NewPrims(&seed).Generate(4, 1)
		require.NoError(t, err)
		tall, err := NewPrims(&seed).Generate(1, 4)
		require.NoError(t, err)
		assert.False(t, Equal(wide, tall))
	})

	t.Run("Generated maze equals its rebuilt copy", func(t *testing.T) {
		seed := testSeed
		g, err := NewGrowingTree(&seed, nil)
		require.NoError(t, err)
		m, err := g.Generate(12, 12)
		require.NoError(t, err)
		copied, err := FromCells(12, 12, m.Start(), m.Goal(), m.Cells())
		require.NoError(t, err)
		assert.True(t, Equal(m, copied))
	})

	t.Run("Nil mazes", func(t *testing.T) {
		assert.True(t, Equal(nil, nil))
		assert.False(t, Equal(uShape(t), nil))
	})
}
