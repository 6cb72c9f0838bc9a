package flowfield_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblindsay/go-watershed/flowfield"
	"github.com/jblindsay/go-watershed/grid"
)

func TestFlatPlateauIsAllPits(t *testing.T) {
	g, err := grid.New(5, 5, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for i := range h {
		h[i] = 10
	}
	flow, err := flowfield.Compute(g, h)
	require.NoError(t, err)
	for _, i := range g.Interior() {
		assert.Equal(t, flowfield.Pit, flow[i])
	}
}

func TestTiltedPlaneDrainsSouth(t *testing.T) {
	g, err := grid.New(5, 5, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			h[g.Index(row, col)] = 10 - float64(row)
		}
	}
	flow, err := flowfield.Compute(g, h)
	require.NoError(t, err)

	for row := 1; row <= 3; row++ {
		for col := 1; col <= 3; col++ {
			i := g.Index(row, col)
			want := g.Index(row+1, col)
			if row == 3 {
				// Row 4 is the boundary ring, so the southward flow is Out.
				want = flowfield.Out
			}
			assert.Equal(t, want, flow[i])
		}
	}
}

func TestBoundaryCrossingBecomesOut(t *testing.T) {
	g, err := grid.New(5, 5, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for i := range h {
		h[i] = 10
	}
	// Row 1 drains toward row 0 (the boundary) via a steep gradient there.
	for col := 0; col < 5; col++ {
		h[g.Index(0, col)] = 0
	}
	flow, err := flowfield.Compute(g, h)
	require.NoError(t, err)

	i := g.Index(1, 2)
	assert.Equal(t, flowfield.Out, flow[i])
}
