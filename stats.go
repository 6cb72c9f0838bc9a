// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file supplements a feature present in original_source/lib/util.py's
// small summary-statistics helpers but dropped by the distillation: a
// read-only roll-up over an already-computed accumulation raster and trap
// set (spec.md §10).
package hydroflow

// Summary is a read-only roll-up over an accumulation raster and its
// traps, mirroring the min/max/mean/trap-count helpers of
// original_source/lib/util.py.
type Summary struct {
	Min, Max, Mean float64
	TrapCount      int
	LargestTrap    int
}

// Stats summarises an accumulation raster (as returned by AccumulateFlow)
// together with the traps (as returned by watershed.ResolveTraps) that
// produced it. Non-interior cells (accumulation 0) are excluded from the
// min/max/mean.
func Stats(acc []float64, trap [][]int) Summary {
	s := Summary{TrapCount: len(trap)}

	first := true
	var sum float64
	var n int
	for _, v := range acc {
		if v <= 0 {
			continue
		}
		if first || v < s.Min {
			s.Min = v
		}
		if first || v > s.Max {
			s.Max = v
		}
		first = false
		sum += v
		n++
	}
	if n > 0 {
		s.Mean = sum / float64(n)
	}

	for _, cells := range trap {
		if len(cells) > s.LargestTrap {
			s.LargestTrap = len(cells)
		}
	}
	return s
}
