// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from the watershed-assembly helpers in
// original_source/lib/util.py:combine_watersheds /
// get_watersheds_with_combined_minima.

// Package watershed assembles watersheds from labelled endpoints and
// combined minima, runs the spill-pair fixed point, and resolves/flattens
// traps (spec.md §4.6-§4.9).
package watershed

import (
	"sort"

	"github.com/jblindsay/go-watershed/grid"
)

// Watershed is the set of cells draining to a combined minimum.
type Watershed struct {
	// Cells holds every interior cell belonging to the watershed, in
	// ascending index order.
	Cells []int
}

// SpillPair is the ordered (from, to) pair carrying a watershed's outward
// flow, per spec.md §3.
type SpillPair struct {
	From int
	To   int
}

// Assemble unions the local watersheds of each combined minimum's members
// into the final watershed list (spec.md §4.6). It returns the watersheds
// and a cell->watershed-index map (-1 for boundary/undefined cells).
func Assemble(n int, end []int, components [][]int, memberOf map[int]int) ([]*Watershed, []int) {
	cellToWs := make([]int, n)
	for i := range cellToWs {
		cellToWs[i] = -1
	}

	buckets := make([][]int, len(components))
	for i, e := range end {
		if e < 0 {
			continue // boundary (None) cell
		}
		compIdx, ok := memberOf[e]
		if !ok {
			continue
		}
		buckets[compIdx] = append(buckets[compIdx], i)
	}

	watersheds := make([]*Watershed, len(components))
	for idx, cells := range buckets {
		sort.Ints(cells)
		watersheds[idx] = &Watershed{Cells: cells}
		for _, c := range cells {
			cellToWs[c] = idx
		}
	}
	return watersheds, cellToWs
}

// BoundaryLength sums the grid distance from every cell in the watershed
// to each of its neighbors that lies outside the watershed (including the
// domain edge), a perimeter measure supplementing spec.md §4.6 from
// original_source/lib/util.py's summary-statistics helpers.
func (w *Watershed) BoundaryLength(g *grid.Grid) float64 {
	inside := make(map[int]bool, len(w.Cells))
	for _, c := range w.Cells {
		inside[c] = true
	}

	dist := g.Distances()
	var total float64
	for _, u := range w.Cells {
		for k, n := range g.Neighbors(u) {
			if n < 0 || !inside[n] {
				total += dist[k]
			}
		}
	}
	return total
}
