package pitfill_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/pitfill"
)

func TestFillSingleCellPit(t *testing.T) {
	g, err := grid.New(5, 5, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for i := range h {
		h[i] = 5
	}
	h[g.Index(2, 2)] = 0

	n, err := pitfill.FillSingleCellPits(g, h)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 5.0, h[g.Index(2, 2)])
}

func TestFillLeavesMultiCellDepressionAlone(t *testing.T) {
	g, err := grid.New(6, 6, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for i := range h {
		h[i] = 10
	}
	h[g.Index(2, 2)] = 1
	h[g.Index(2, 3)] = 1

	n, err := pitfill.FillSingleCellPits(g, h)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1.0, h[g.Index(2, 2)])
	assert.Equal(t, 1.0, h[g.Index(2, 3)])
}

func TestFillRejectsNonFinite(t *testing.T) {
	g, err := grid.New(5, 5, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	h[0] = math.NaN()
	_, err = pitfill.FillSingleCellPits(g, h)
	require.Error(t, err)
}
