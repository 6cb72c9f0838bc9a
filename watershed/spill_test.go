package watershed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblindsay/go-watershed/endpoint"
	"github.com/jblindsay/go-watershed/flowfield"
	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/minima"
	"github.com/jblindsay/go-watershed/watershed"
)

func buildWatersheds(t *testing.T, g *grid.Grid, h []float64) ([]*watershed.Watershed, []int) {
	t.Helper()
	flow, err := flowfield.Compute(g, h)
	require.NoError(t, err)
	end, err := endpoint.Label(g, flow)
	require.NoError(t, err)
	components, memberOf, err := minima.CombinedMinima(g, flow)
	require.NoError(t, err)
	ws, cellToWs := watershed.Assemble(g.N(), end, components, memberOf)
	return ws, cellToWs
}

// Bowl spilling out through its rim: scenario 4 of spec.md §8. The rim
// (the outermost ring of interior cells) is bounded by a domain edge lower
// than itself on every side, so the rim drains outward rather than into
// the bowl; only the 3x3 floor remains as the trapped watershed.
func TestBowlSpillsOutThroughRim(t *testing.T) {
	g, err := grid.New(7, 7, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for i := range h {
		h[i] = 5 // domain edge: lower than the rim on every side
	}
	for row := 1; row <= 5; row++ {
		for col := 1; col <= 5; col++ {
			h[g.Index(row, col)] = 20 // rim
		}
	}
	for row := 2; row <= 4; row++ {
		for col := 2; col <= 4; col++ {
			h[g.Index(row, col)] = 10 // bowl floor
		}
	}

	ws, _ := buildWatersheds(t, g, h)
	require.Len(t, ws, 1)
	assert.Len(t, ws[0].Cells, 9)

	final, pairs, err := watershed.ComputeSpillPairs(g, h, ws)
	require.NoError(t, err)
	require.Len(t, final, 1)
	require.Len(t, pairs, 1)

	assert.Equal(t, 10.0, h[pairs[0].From])
	assert.Equal(t, 20.0, h[pairs[0].To])

	spillHeight, trap, trapSize := watershed.ResolveTraps(h, final, pairs)
	assert.Equal(t, 9, trapSize[0])
	assert.Len(t, trap[0], 9)
	assert.Equal(t, 20.0, spillHeight[0])
}

func TestMutuallySpillingBasinsMerge(t *testing.T) {
	g, err := grid.New(9, 5, 1, grid.Eight)
	require.NoError(t, err)

	h := make([]float64, g.N())
	for i := range h {
		h[i] = 20
	}
	// Two adjacent equal-depth basins, columns 1-3 and 5-7, separated by a
	// one-column rim at column 4 lower than the outer rim but higher than
	// the basin floors, so each basin's steepest spill points at the other.
	for row := 1; row <= 3; row++ {
		for col := 1; col <= 3; col++ {
			h[g.Index(row, col)] = 10
		}
		for col := 5; col <= 7; col++ {
			h[g.Index(row, col)] = 10
		}
		h[g.Index(row, 4)] = 15
	}

	ws, _ := buildWatersheds(t, g, h)
	require.Len(t, ws, 2)

	final, pairs, err := watershed.ComputeSpillPairs(g, h, ws)
	require.NoError(t, err)
	require.Len(t, final, 1)
	require.Len(t, pairs, 1)
	assert.Len(t, final[0].Cells, 21)
}
