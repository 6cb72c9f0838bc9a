// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from
// original_source/lib/util.py:get_boundary_pairs_in_watersheds,
// get_steepest_spill_pair, merge_watersheds_flowing_into_each_other,
// combine_watersheds_spilling_into_each_other and remove_cycles. Where the
// original walks networkx digraphs for cycle removal, this implementation
// uses gonum.org/v1/gonum/graph/simple + graph/topo, grounded in
// spatialmodel/inmap's go.mod dependency on gonum.org/v1/gonum and in
// other_examples/33aa8dc7_gonum-graph__structure-structure.go.go's
// Tarjan-SCC-over-graph.Directed pattern.
package watershed

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/herr"
)

// ComputeSpillPairs runs the fixed-point merge/cycle-break loop of
// spec.md §4.7 and returns the final watershed list together with exactly
// one spill pair per watershed.
func ComputeSpillPairs(g *grid.Grid, height []float64, watersheds []*Watershed) ([]*Watershed, []SpillPair, error) {
	if g == nil {
		return nil, nil, herr.New(herr.Dimension, "watershed: nil grid")
	}

	log := logrus.WithFields(logrus.Fields{"stage": "spill"})

	ws := watersheds
	cellToWs := cellMembership(g.N(), ws)
	pairs := make([]SpillPair, len(ws))
	known := make([]bool, len(ws))

	// Round 0: every watershed needs its spill pair computed.
	formed := allIndices(len(ws))

	for round := 0; ; round++ {
		for _, idx := range formed {
			p, err := steepestSpillPair(g, height, ws[idx].Cells, idx, cellToWs)
			if err != nil {
				return nil, nil, err
			}
			pairs[idx] = p
			known[idx] = true
		}

		mutualGroups := findMutualGroups(pairs, cellToWs, len(ws))
		if len(mutualGroups) > 0 {
			ws, cellToWs, pairs, known, formed = mergeGroups(ws, cellToWs, pairs, known, mutualGroups)
			log.WithField("round", round).WithField("groups", len(mutualGroups)).Debug("merged mutually spilling watersheds")
			continue
		}

		cycleGroups := findCycleGroups(pairs, cellToWs, len(ws))
		if len(cycleGroups) > 0 {
			ws, cellToWs, pairs, known, formed = mergeGroups(ws, cellToWs, pairs, known, cycleGroups)
			log.WithField("round", round).WithField("cycles", len(cycleGroups)).Debug("broke spill cycles")
			continue
		}

		break
	}

	log.WithField("watersheds", len(ws)).Debug("spill fixed point reached")
	return ws, pairs, nil
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func cellMembership(n int, ws []*Watershed) []int {
	cellToWs := make([]int, n)
	for i := range cellToWs {
		cellToWs[i] = -1
	}
	for idx, w := range ws {
		for _, c := range w.Cells {
			cellToWs[c] = idx
		}
	}
	return cellToWs
}

// steepestSpillPair computes watershed idx's spill pair per spec.md §4.7:
// boundary pairs, the M threshold, candidate pairs, and the steepest
// candidate with first-seen tie-break in canonical scan order.
func steepestSpillPair(g *grid.Grid, height []float64, cells []int, idx int, cellToWs []int) (SpillPair, error) {
	type boundaryPair struct {
		from, to int
	}
	var pairs []boundaryPair
	for _, u := range cells {
		for _, v := range g.Neighbors(u) {
			if v < 0 {
				continue
			}
			if cellToWs[v] == idx {
				continue
			}
			pairs = append(pairs, boundaryPair{from: u, to: v})
		}
	}
	if len(pairs) == 0 {
		return SpillPair{}, herr.New(herr.Invariant, "watershed: no spill candidates for watershed %d (impossible under I1)", idx)
	}

	m := height[pairs[0].from]
	if height[pairs[0].to] > m {
		m = height[pairs[0].to]
	}
	for _, p := range pairs[1:] {
		hm := height[p.from]
		if height[p.to] > hm {
			hm = height[p.to]
		}
		if hm < m {
			m = hm
		}
	}

	best := pairs[0]
	bestSlope := math.Inf(-1)
	for _, p := range pairs {
		if height[p.from] > m || height[p.to] > m {
			continue
		}
		dist := grid.DistanceBetween(p.from, p.to, g.NX, g.Step)
		slope := (height[p.from] - height[p.to]) / dist
		if slope > bestSlope {
			bestSlope = slope
			best = p
		}
	}
	return SpillPair{From: best.from, To: best.to}, nil
}

// findMutualGroups finds watersheds a, b whose spill pairs point at each
// other and returns each such pair as a group to be merged.
func findMutualGroups(pairs []SpillPair, cellToWs []int, n int) [][]int {
	edge := make([]int, n)
	for i := range edge {
		edge[i] = -1
	}
	for i, p := range pairs {
		to := cellToWs[p.To]
		if to >= 0 && to != i {
			edge[i] = to
		}
	}

	seen := make([]bool, n)
	var groups [][]int
	for a := 0; a < n; a++ {
		if seen[a] || edge[a] < 0 {
			continue
		}
		b := edge[a]
		if b >= 0 && edge[b] == a {
			seen[a], seen[b] = true, true
			groups = append(groups, []int{a, b})
		}
	}
	return groups
}

// findCycleGroups builds the watershed-level spill digraph and returns
// every simple directed cycle of length > 2 as a group to be merged.
func findCycleGroups(pairs []SpillPair, cellToWs []int, n int) [][]int {
	g := simple.NewDirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i, p := range pairs {
		to := cellToWs[p.To]
		if to >= 0 && to != i {
			g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(to)))
		}
	}

	cycles := topo.DirectedCyclesIn(g)
	var groups [][]int
	for _, cyc := range cycles {
		if len(cyc) <= 2 {
			continue
		}
		group := make([]int, len(cyc))
		for i, node := range cyc {
			group[i] = int(node.ID())
		}
		sort.Ints(group)
		groups = append(groups, group)
	}
	return groups
}

// mergeGroups unions the cell sets of each group of watershed indices into
// a single new watershed, leaves every other watershed untouched, and
// returns the rebuilt watershed list, cell membership, carried-over spill
// pairs, their known-ness, and the indices (in the new list) that need a
// fresh spill-pair computation.
func mergeGroups(ws []*Watershed, cellToWs []int, pairs []SpillPair, known []bool, groups [][]int) ([]*Watershed, []int, []SpillPair, []bool, []int) {
	groupOf := make(map[int]int, len(ws))
	for gi, grp := range groups {
		for _, idx := range grp {
			groupOf[idx] = gi
		}
	}

	var newWS []*Watershed
	var newPairs []SpillPair
	var newKnown []bool
	var formed []int

	used := make(map[int]bool)
	for idx := range ws {
		if gi, ok := groupOf[idx]; ok {
			if used[gi] {
				continue
			}
			used[gi] = true
			var cells []int
			for _, member := range groups[gi] {
				cells = append(cells, ws[member].Cells...)
			}
			sort.Ints(cells)
			newIdx := len(newWS)
			newWS = append(newWS, &Watershed{Cells: cells})
			newPairs = append(newPairs, SpillPair{})
			newKnown = append(newKnown, false)
			formed = append(formed, newIdx)
			continue
		}
		newIdx := len(newWS)
		newWS = append(newWS, ws[idx])
		newPairs = append(newPairs, pairs[idx])
		newKnown = append(newKnown, known[idx])
	}

	newCellToWs := cellMembership(len(cellToWs), newWS)
	return newWS, newCellToWs, newPairs, newKnown, formed
}
