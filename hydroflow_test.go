package hydroflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hydroflow "github.com/jblindsay/go-watershed"
	"github.com/jblindsay/go-watershed/grid"
)

// Flat plateau: spec.md §8 scenario 1.
func TestFlatPlateauEndToEnd(t *testing.T) {
	g, err := grid.New(5, 5, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for i := range h {
		h[i] = 10
	}

	acc, err := hydroflow.AccumulateFlow(g, h)
	require.NoError(t, err)

	for _, i := range g.Interior() {
		assert.Equal(t, 9.0, acc[i])
	}
}

// Single pit: an isolated one-cell pit in a tilted plane is raised to the
// level of its lowest neighbour.
func TestSingleCellPitIsFilled(t *testing.T) {
	g, err := grid.New(5, 5, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			h[g.Index(row, col)] = float64(10 - row)
		}
	}
	h[g.Index(2, 2)] = 0 // an isolated single-cell pit in an otherwise tilted plane

	n, err := hydroflow.FillSingleCellPits(g, h)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Greater(t, h[g.Index(2, 2)], 0.0)
}

// MakeDepressionless is idempotent (P6): a second call changes nothing.
func TestMakeDepressionlessIsIdempotent(t *testing.T) {
	g, err := grid.New(7, 7, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for i := range h {
		h[i] = 5
	}
	for row := 1; row <= 5; row++ {
		for col := 1; col <= 5; col++ {
			h[g.Index(row, col)] = 20
		}
	}
	for row := 2; row <= 4; row++ {
		for col := 2; col <= 4; col++ {
			h[g.Index(row, col)] = 10
		}
	}

	changed, err := hydroflow.MakeDepressionless(g, h)
	require.NoError(t, err)
	assert.Equal(t, 9, changed)

	before := append([]float64(nil), h...)
	changedAgain, err := hydroflow.MakeDepressionless(g, h)
	require.NoError(t, err)
	assert.Equal(t, 0, changedAgain)
	assert.Equal(t, before, h)
}

func TestGridNewRejectsTooSmallGrid(t *testing.T) {
	_, err := grid.New(2, 2, 1, grid.Eight)
	require.Error(t, err)
}

func TestStatsSummarizesAccumulationAndTraps(t *testing.T) {
	acc := []float64{0, 1, 2, 3, 0}
	trap := [][]int{{0, 1, 2}, {3, 4}}

	s := hydroflow.Stats(acc, trap)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
	assert.InDelta(t, 2.0, s.Mean, 1e-9)
	assert.Equal(t, 2, s.TrapCount)
	assert.Equal(t, 3, s.LargestTrap)
}
