// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from the header-parsing loop in
// geospatialfiles/raster/arcGisAsciiRaster.go's readHeaderFile/readData,
// stripped to the handful of fields spec.md §6's "Landscape loader" and
// "Rendering front-end" collaborators actually need: nx, ny, cell size and
// a flat elevation array. It does not attempt the teacher's full
// ArcGIS/GRASS/Whitebox/GeoTIFF raster stack, projection handling, or
// NODATA masking, all out of scope per spec.md's Non-goals.

// Package asciigrid reads and writes a minimal ArcGIS-style ASCII grid: a
// six-line header (ncols, nrows, xllcorner, yllcorner, cellsize,
// NODATA_value) followed by nrows rows of ncols whitespace-separated
// values, used by cmd/hydroflow as its on-disk format.
package asciigrid

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/internal/arr2d"
)

// Grid is a loaded ASCII grid: the elevation raster plus enough geometry
// to build a grid.Grid over it.
type Grid struct {
	NX, NY   int
	CellSize float64
	NoData   float64
	Height   []float64
}

// Read parses a minimal ArcGIS ASCII grid from r.
func Read(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	out := &Grid{NoData: -9999}
	fields := map[string]*float64{}
	var ncols, nrows int

	for i := 0; i < 6; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("asciigrid: unexpected end of header at line %d", i+1)
		}
		parts := strings.Fields(sc.Text())
		if len(parts) != 2 {
			return nil, fmt.Errorf("asciigrid: malformed header line %q", sc.Text())
		}
		key := strings.ToLower(parts[0])
		switch key {
		case "ncols":
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("asciigrid: ncols: %w", err)
			}
			ncols = n
		case "nrows":
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("asciigrid: nrows: %w", err)
			}
			nrows = n
		case "cellsize":
			v, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, fmt.Errorf("asciigrid: cellsize: %w", err)
			}
			out.CellSize = v
		case "nodata_value":
			v, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, fmt.Errorf("asciigrid: nodata_value: %w", err)
			}
			out.NoData = v
		case "xllcorner", "yllcorner":
			v, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, fmt.Errorf("asciigrid: %s: %w", key, err)
			}
			fields[key] = &v
		default:
			return nil, fmt.Errorf("asciigrid: unrecognized header field %q", parts[0])
		}
	}
	if ncols <= 0 || nrows <= 0 {
		return nil, fmt.Errorf("asciigrid: ncols/nrows must be positive, got %d/%d", ncols, nrows)
	}

	out.NX, out.NY = ncols, nrows
	// rows is a 2D view backed by the same contiguous slice Height will
	// become, so each parsed row is written directly into its final
	// row-major position with no separate flatten step.
	rows := arr2d.Float64(nrows, ncols)
	for row := 0; row < nrows; row++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("asciigrid: missing data row %d", row)
		}
		vals := strings.Fields(sc.Text())
		if len(vals) != ncols {
			return nil, fmt.Errorf("asciigrid: row %d has %d values, want %d", row, len(vals), ncols)
		}
		for col, s := range vals {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("asciigrid: row %d col %d: %w", row, col, err)
			}
			rows[row][col] = v
		}
	}
	out.Height = rows[0][:nrows*ncols]
	return out, nil
}

// Write serialises height (row-major, length g.N()) as a minimal ArcGIS
// ASCII grid.
func Write(w io.Writer, g *grid.Grid, height []float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", g.NX)
	fmt.Fprintf(bw, "nrows %d\n", g.NY)
	fmt.Fprintf(bw, "xllcorner 0\n")
	fmt.Fprintf(bw, "yllcorner 0\n")
	fmt.Fprintf(bw, "cellsize %g\n", g.Step)
	fmt.Fprintf(bw, "NODATA_value -9999\n")
	for row := 0; row < g.NY; row++ {
		for col := 0; col < g.NX; col++ {
			if col > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%g", height[g.Index(row, col)])
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
