package endpoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblindsay/go-watershed/endpoint"
	"github.com/jblindsay/go-watershed/flowfield"
	"github.com/jblindsay/go-watershed/grid"
)

func TestAllInteriorDrainsToSinglePit(t *testing.T) {
	g, err := grid.New(5, 5, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			h[g.Index(row, col)] = float64((row-2)*(row-2) + (col-2)*(col-2))
		}
	}
	flow, err := flowfield.Compute(g, h)
	require.NoError(t, err)
	end, err := endpoint.Label(g, flow)
	require.NoError(t, err)

	center := g.Index(2, 2)
	for _, i := range g.Interior() {
		assert.Equal(t, center, end[i])
	}
	for _, i := range g.BoundaryIndices() {
		assert.Equal(t, endpoint.None, end[i])
	}
}
