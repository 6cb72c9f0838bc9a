package asciigrid_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblindsay/go-watershed/asciigrid"
	"github.com/jblindsay/go-watershed/grid"
)

func TestReadParsesHeaderAndData(t *testing.T) {
	src := strings.Join([]string{
		"ncols 3",
		"nrows 2",
		"xllcorner 0",
		"yllcorner 0",
		"cellsize 1.5",
		"NODATA_value -9999",
		"1 2 3",
		"4 5 6",
		"",
	}, "\n")

	g, err := asciigrid.Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, g.NX)
	assert.Equal(t, 2, g.NY)
	assert.Equal(t, 1.5, g.CellSize)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, g.Height)
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	gr, err := grid.New(3, 3, 2, grid.Eight)
	require.NoError(t, err)
	h := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	var buf bytes.Buffer
	require.NoError(t, asciigrid.Write(&buf, gr, h))

	parsed, err := asciigrid.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, gr.NX, parsed.NX)
	assert.Equal(t, gr.NY, parsed.NY)
	assert.Equal(t, gr.Step, parsed.CellSize)
	assert.Equal(t, h, parsed.Height)
}
