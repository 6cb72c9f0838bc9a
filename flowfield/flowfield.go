// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from the flow-direction loop in
// tools/d8FlowAccumulation.go's Run(): the same max-slope scan over the
// canonical neighbor order, generalized from an int8 "direction code" to a
// linear neighbor index and applied to the grid package's Neighbors/
// Distances instead of hand-rolled dX/dY tables.

// Package flowfield computes, for every interior cell, the steepest-descent
// neighbor (or a PIT/OUT sentinel), per spec.md §4.3.
package flowfield

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/herr"
)

const (
	// Pit marks a cell with no downslope neighbor.
	Pit = -1
	// Out marks a cell whose steepest descent would leave the domain
	// through the boundary ring. Unlike Pit it is not a minimum: the
	// endpoint labeller gives such a cell, and every cell draining to it,
	// the endpoint None, so it belongs to no watershed. The accumulation
	// graph gives it no successor, as it does for Pit.
	Out = -2
)

// Compute returns, for each cell, the linear index of its steepest-descent
// neighbor, or Pit/Out. Boundary cells are always Pit (they carry no
// valid flow per spec.md §3).
func Compute(g *grid.Grid, height []float64) ([]int, error) {
	if g == nil {
		return nil, herr.New(herr.Dimension, "flowfield: nil grid")
	}
	if len(height) != g.N() {
		return nil, herr.New(herr.Dimension, "flowfield: height has length %d, want %d", len(height), g.N())
	}
	for _, h := range height {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return nil, herr.New(herr.NonFinite, "flowfield: non-finite elevation in input raster")
		}
	}

	log := logrus.WithFields(logrus.Fields{"stage": "flowfield", "nx": g.NX, "ny": g.NY})

	flow := make([]int, g.N())
	for i := range flow {
		flow[i] = Pit
	}

	dist := g.Distances()
	for _, i := range g.Interior() {
		z := height[i]
		nbrs := g.Neighbors(i)
		maxSlope := math.Inf(-1)
		best := -1
		for k, n := range nbrs {
			if n < 0 {
				continue
			}
			slope := (z - height[n]) / dist[k]
			if slope > maxSlope {
				maxSlope = slope
				best = n
			}
		}
		if best < 0 || maxSlope <= 0 {
			flow[i] = Pit
			continue
		}
		if g.IsBoundary(best) {
			// Flow would exit the domain through the boundary ring.
			flow[i] = Out
			continue
		}
		flow[i] = best
	}

	log.Debug("flow field computed")
	return flow, nil
}
