// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from the neighbor-offset and distance logic in
// tools/d8FlowAccumulation.go and tools/fillDepressions.go.

// Package grid implements the grid kernel: neighbor enumeration under
// 4- or 8-connectivity, linear-index/(row,col) conversions, and domain
// boundary membership for a rectangular raster.
package grid

import (
	"math"

	"github.com/jblindsay/go-watershed/herr"
)

// Mode selects the connectivity used for neighbor enumeration.
type Mode int

const (
	// Four connects each cell to its E, S, W, N neighbors.
	Four Mode = iota
	// Eight connects each cell to its NE, E, SE, S, SW, W, NW, N neighbors.
	Eight
)

// dRow8/dCol8 give the canonical neighbor order for 8-connectivity:
// NE, E, SE, S, SW, W, NW, N. This order is load-bearing: it is the
// tie-break order for flow-field and spill-pair selection.
var dRow8 = [8]int{-1, 0, 1, 1, 1, 0, -1, -1}
var dCol8 = [8]int{1, 1, 1, 0, -1, -1, -1, 0}

// the 4-connected order is the second, fourth, sixth, and eighth entries of
// the 8-connected table: E, S, W, N.
var eightToFour = [4]int{1, 3, 5, 7}

// Grid describes the raster's shape and the active connectivity.
type Grid struct {
	NX, NY int
	Step   float64
	Mode   Mode

	diag float64
}

// New validates nx, ny and constructs a Grid. Per spec.md §7, nx < 3 or
// ny < 3 is a dimension error: there is no interior.
func New(nx, ny int, step float64, mode Mode) (*Grid, error) {
	if nx < 3 || ny < 3 {
		return nil, herr.New(herr.Dimension, "grid: nx=%d ny=%d have no interior (need nx>=3 and ny>=3)", nx, ny)
	}
	return &Grid{NX: nx, NY: ny, Step: step, Mode: mode, diag: step * math.Sqrt2}, nil
}

// N returns the total number of cells, nx*ny.
func (g *Grid) N() int { return g.NX * g.NY }

// RowCol converts a linear index into (row, col).
func (g *Grid) RowCol(i int) (row, col int) {
	return i / g.NX, i % g.NX
}

// Index converts (row, col) into a linear index.
func (g *Grid) Index(row, col int) int {
	return row*g.NX + col
}

// InBounds reports whether (row, col) lies within the raster.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.NY && col >= 0 && col < g.NX
}

// IsBoundary reports whether linear index i lies on the outermost ring,
// i.e. it is not strictly interior (spec.md §3).
func (g *Grid) IsBoundary(i int) bool {
	row, col := g.RowCol(i)
	return row == 0 || row == g.NY-1 || col == 0 || col == g.NX-1
}

// IsInterior is the complement of IsBoundary.
func (g *Grid) IsInterior(i int) bool {
	return !g.IsBoundary(i)
}

// Interior returns the linear indices of every strictly interior cell, in
// row-major order.
func (g *Grid) Interior() []int {
	out := make([]int, 0, (g.NY-2)*(g.NX-2))
	for row := 1; row <= g.NY-2; row++ {
		for col := 1; col <= g.NX-2; col++ {
			out = append(out, g.Index(row, col))
		}
	}
	return out
}

// BoundaryIndices returns the linear indices of the outermost ring.
func (g *Grid) BoundaryIndices() []int {
	out := make([]int, 0, 2*g.NX+2*g.NY-4)
	for col := 0; col < g.NX; col++ {
		out = append(out, g.Index(0, col))
		if g.NY > 1 {
			out = append(out, g.Index(g.NY-1, col))
		}
	}
	for row := 1; row < g.NY-1; row++ {
		out = append(out, g.Index(row, 0))
		if g.NX > 1 {
			out = append(out, g.Index(row, g.NX-1))
		}
	}
	return out
}

// neighborCount returns 4 or 8 depending on the active mode.
func (g *Grid) neighborCount() int {
	if g.Mode == Four {
		return 4
	}
	return 8
}

// Neighbors returns the linear index of each neighbor of i in canonical
// order, or -1 for a neighbor that would fall outside the raster.
func (g *Grid) Neighbors(i int) []int {
	row, col := g.RowCol(i)
	n := g.neighborCount()
	out := make([]int, n)
	for k := 0; k < n; k++ {
		dr, dc := g.offset(k)
		r, c := row+dr, col+dc
		if g.InBounds(r, c) {
			out[k] = g.Index(r, c)
		} else {
			out[k] = -1
		}
	}
	return out
}

// offset returns the (drow, dcol) offset of the k-th canonical neighbor.
func (g *Grid) offset(k int) (int, int) {
	if g.Mode == Eight {
		return dRow8[k], dCol8[k]
	}
	idx := eightToFour[k]
	return dRow8[idx], dCol8[idx]
}

// Distances returns the per-neighbor step distance in canonical order:
// cardinal moves cost Step, diagonal moves cost Step*sqrt(2).
func (g *Grid) Distances() []float64 {
	n := g.neighborCount()
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		out[k] = g.Distance(k)
	}
	return out
}

// Distance returns the step distance of the k-th canonical neighbor.
func (g *Grid) Distance(k int) float64 {
	if g.isDiagonal(k) {
		return g.diag
	}
	return g.Step
}

// isDiagonal classifies the k-th canonical neighbor using the index-delta
// rule of spec.md §4.1: |a-b| in {1, nx} is cardinal, else diagonal.
func (g *Grid) isDiagonal(k int) bool {
	dr, dc := g.offset(k)
	delta := dr*g.NX + dc
	if delta < 0 {
		delta = -delta
	}
	return delta != 1 && delta != g.NX
}

// DistanceBetween returns the step distance between two grid-adjacent
// cells a and b, classified by their index difference.
func DistanceBetween(a, b, nx int, step float64) float64 {
	delta := a - b
	if delta < 0 {
		delta = -delta
	}
	if delta == 1 || delta == nx {
		return step
	}
	return step * math.Sqrt2
}
