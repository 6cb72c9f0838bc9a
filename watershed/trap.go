// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from
// original_source/lib/util.py:get_spill_heights, get_size_of_traps,
// get_all_traps.
package watershed

// ResolveTraps computes, for each watershed, its spill height and the set
// of cells forming its trap (the filled interior of the depression), per
// spec.md §4.8.
func ResolveTraps(height []float64, watersheds []*Watershed, pairs []SpillPair) (spillHeight []float64, trap [][]int, trapSize []int) {
	spillHeight = make([]float64, len(watersheds))
	trap = make([][]int, len(watersheds))
	trapSize = make([]int, len(watersheds))

	for idx, w := range watersheds {
		p := pairs[idx]
		sh := height[p.From]
		if height[p.To] > sh {
			sh = height[p.To]
		}
		spillHeight[idx] = sh

		var cells []int
		for _, c := range w.Cells {
			if height[c] <= sh {
				cells = append(cells, c)
			}
		}
		trap[idx] = cells
		trapSize[idx] = len(cells)
	}
	return spillHeight, trap, trapSize
}
