// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from tools/fillDepressions.go's in-place raster
// mutation style (there via rout.SetValue on a raster.RasterType; here
// directly on the caller-owned []float64 buffer).
package watershed

// Flatten overwrites the elevation of every trap cell with its watershed's
// spill height (spec.md §4.9), mutating height in place. It returns the
// number of cells changed.
func Flatten(height []float64, trap [][]int, spillHeight []float64) int {
	changed := 0
	for idx, cells := range trap {
		sh := spillHeight[idx]
		for _, c := range cells {
			if height[c] != sh {
				changed++
			}
			height[c] = sh
		}
	}
	return changed
}
