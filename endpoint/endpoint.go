// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from the iterative relaxation scan in
// original_source/lib/util.py:get_node_endpoints / update_terminal_nodes.
// Design Note (a) of spec.md §9 calls for two distinct sentinels instead of
// the original's single mixed "unlabelled or boundary" marker; this
// implementation keeps an internal unlabelled marker private to the
// package and only ever returns the public None value to callers.

// Package endpoint labels every cell with the terminal minimum it drains
// to (spec.md §4.4).
package endpoint

import (
	"github.com/sirupsen/logrus"

	"github.com/jblindsay/go-watershed/flowfield"
	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/herr"
)

// None marks a cell with no defined endpoint: a domain-boundary cell, or an
// interior cell whose flow path leaves the domain (flowfield.Out).
const None = -1

// unlabelled is a private sentinel distinct from None, used only during
// the relaxation scan to mean "not yet labelled" for an interior cell.
const unlabelled = -2

// Label computes end[i], the linear index of the minimum cell that i
// ultimately drains to, for every cell. Boundary cells always carry None,
// as do interior cells that drain out of the domain.
func Label(g *grid.Grid, flow []int) ([]int, error) {
	if g == nil {
		return nil, herr.New(herr.Dimension, "endpoint: nil grid")
	}
	if len(flow) != g.N() {
		return nil, herr.New(herr.Dimension, "endpoint: flow has length %d, want %d", len(flow), g.N())
	}

	log := logrus.WithFields(logrus.Fields{"stage": "endpoint", "nx": g.NX, "ny": g.NY})

	end := make([]int, g.N())
	for i := range end {
		end[i] = unlabelled
	}
	for _, i := range g.BoundaryIndices() {
		end[i] = None
	}

	// Every PIT cell labels itself.
	for _, i := range g.Interior() {
		if flow[i] == flowfield.Pit {
			end[i] = i
		}
	}

	// Iterative relaxation: repeatedly copy a labelled downslope cell's
	// label upslope, until a full sweep changes nothing.
	rounds := 0
	for {
		changed := false
		for _, i := range g.Interior() {
			if end[i] != unlabelled {
				continue
			}
			j := flow[i]
			if j == flowfield.Out {
				end[i] = None
				changed = true
				continue
			}
			if j >= 0 && end[j] != unlabelled {
				end[i] = end[j]
				changed = true
			}
		}
		rounds++
		if !changed {
			break
		}
	}

	for _, i := range g.Interior() {
		if end[i] == unlabelled {
			// Should be unreachable: every interior cell's flow chain
			// terminates at a PIT or the boundary.
			return nil, herr.New(herr.Invariant, "endpoint: cell %d never converged to an endpoint after %d rounds", i, rounds)
		}
	}

	log.WithField("rounds", rounds).Debug("endpoints converged")
	return end, nil
}
