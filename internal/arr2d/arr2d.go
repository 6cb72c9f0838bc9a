// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package arr2d provides localized-allocation 2D scratch arrays, adapted
// from the go-spatial structures package for use as row/column scratch
// buffers around the flat []float64 elevation raster.
package arr2d

// Float64 allocates a rows x columns 2D array backed by a single
// contiguous slice, so the whole array lives in one allocation.
func Float64(rows, columns int) [][]float64 {
	a := make([][]float64, rows)
	e := make([]float64, rows*columns)
	for i := range a {
		a[i] = e[i*columns : (i+1)*columns]
	}
	return a
}

// Int allocates a rows x columns 2D array backed by a single contiguous
// slice.
func Int(rows, columns int) [][]int {
	a := make([][]int, rows)
	e := make([]int, rows*columns)
	for i := range a {
		a[i] = e[i*columns : (i+1)*columns]
	}
	return a
}

// Bool allocates a rows x columns 2D array backed by a single contiguous
// slice.
func Bool(rows, columns int) [][]bool {
	a := make([][]bool, rows)
	e := make([]bool, rows*columns)
	for i := range a {
		a[i] = e[i*columns : (i+1)*columns]
	}
	return a
}
