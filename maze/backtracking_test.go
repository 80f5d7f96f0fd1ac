package maze

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fortyTwoSeed() *Seed {
	var seed Seed
	for i := range seed {
		seed[i] = 42
	}
	return &seed
}

func TestBacktracking_Regression(t *testing.T) {
	m, err := NewBacktracking(fortyTwoSeed()).Generate(3, 3)
	require.NoError(t, err)

	wantEdges := []Edge{
		{A: Coordinates{0, 0}, B: Coordinates{0, 1}},
		{A: Coordinates{0, 1}, B: Coordinates{1, 1}},
		{A: Coordinates{0, 2}, B: Coordinates{1, 2}},
		{A: Coordinates{1, 0}, B: Coordinates{1, 1}},
		{A: Coordinates{1, 0}, B: Coordinates{2, 0}},
		{A: Coordinates{1, 2}, B: Coordinates{2, 2}},
		{A: Coordinates{2, 0}, B: Coordinates{2, 1}},
		{A: Coordinates{2, 1}, B: Coordinates{2, 2}},
	}
	if diff := cmp.Diff(wantEdges, m.Edges()); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}

	want := "" +
		"·-·-·-·\n" +
		"|S|   |\n" +
		"· · · ·\n" +
		"|   | |\n" +
		"·-·-· ·\n" +
		"|G    |\n" +
		"·-·-·-·\n"
	assert.Equal(t, want, m.String())

	start, ok := m.Field(m.Start())
	require.True(t, ok)
	assert.Equal(t, "Field{north: wall, east: wall, south: passage, west: wall}", start.String())
}

func TestBacktracking_Conventions(t *testing.T) {
	m, err := NewBacktracking(nil).Generate(9, 4)
	require.NoError(t, err)
	assert.Equal(t, Coordinates{0, 0}, m.Start())
	assert.Equal(t, Coordinates{0, 3}, m.Goal())
}

func TestBacktracking_Large(t *testing.T) {
	// The walk is iterative, a long corridor must not exhaust the stack.
	m, err := NewBacktracking(fortyTwoSeed()).Generate(1, 200000)
	require.NoError(t, err)
	assert.Equal(t, 199999, m.PassageCount())

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, m))
}
