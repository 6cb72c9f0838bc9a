// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from original_source/lib/river_analysis.py, which
// builds a scipy.sparse.csr_matrix successor graph and rewrites it around
// trap super-nodes before running its accumulation pass. Here the graph is
// a pair of plain successor/predecessor slices rather than a CSR matrix:
// every node has out-degree at most 1 (trees with sinks, not general
// sparse structure), so a matrix library buys nothing a slice doesn't
// already give for free.

// Package accumulate builds the rewritten flow-accumulation graph of
// spec.md §4.10 and runs its wavefront propagation.
package accumulate

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/jblindsay/go-watershed/flowfield"
	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/herr"
	"github.com/jblindsay/go-watershed/watershed"
)

// graph is the accumulation graph over N cell nodes plus T trap
// super-nodes (node N+k stands for trap k). succ[i] is i's one successor,
// or -1 if i is a sink. pred[i] lists every node whose successor is i.
type graph struct {
	succ []int
	pred [][]int
}

// buildGraph performs steps 1-6 of spec.md §4.10: the per-cell successor
// edges from a depressionless flow field, trap super-node injection, the
// upstream rewrite of trap-boundary edges, and the removal of edges
// landing on the domain boundary.
func buildGraph(g *grid.Grid, flow []int, trap [][]int, pairs []watershed.SpillPair) (*graph, []int) {
	n := g.N()
	t := len(trap)
	total := n + t

	trapOf := make([]int, n)
	for i := range trapOf {
		trapOf[i] = -1
	}
	for k, cells := range trap {
		for _, c := range cells {
			trapOf[c] = k
		}
	}

	succ := make([]int, total)
	for i := range succ {
		succ[i] = -1
	}

	for _, i := range g.Interior() {
		if trapOf[i] >= 0 {
			continue // step 2: trap cells are sinks; only their super-node flows on
		}
		f := flow[i]
		if f == flowfield.Pit || f == flowfield.Out {
			continue
		}
		if k := trapOf[f]; k >= 0 {
			succ[i] = n + k // step 5: reroute into the trap's super-node
		} else {
			succ[i] = f
		}
	}

	for k, p := range pairs {
		if g.IsBoundary(p.To) {
			continue // step 6: drop spill edges that land on the domain boundary
		}
		succ[n+k] = p.To
	}

	pred := make([][]int, total)
	for i := 0; i < total; i++ {
		if succ[i] >= 0 {
			pred[succ[i]] = append(pred[succ[i]], i)
		}
	}
	return &graph{succ: succ, pred: pred}, trapOf
}

// origins returns every node with no incoming edge that is not a domain
// boundary cell and not a cell interior to a trap, per spec.md §4.10.
func origins(g *grid.Grid, gr *graph, n, t int, trapOf []int) []int {
	var out []int
	for i := 0; i < n; i++ {
		if trapOf[i] >= 0 || g.IsBoundary(i) {
			continue
		}
		if len(gr.pred[i]) == 0 {
			out = append(out, i)
		}
	}
	for k := 0; k < t; k++ {
		if len(gr.pred[n+k]) == 0 {
			out = append(out, n+k)
		}
	}
	return out
}

// assertAcyclic checks invariant I4: the rewritten graph must be a DAG.
func assertAcyclic(gr *graph, total int) error {
	dg := simple.NewDirectedGraph()
	for i := 0; i < total; i++ {
		dg.AddNode(simple.Node(i))
	}
	for i, s := range gr.succ {
		if s >= 0 {
			dg.SetEdge(dg.NewEdge(simple.Node(i), simple.Node(s)))
		}
	}
	if _, err := topo.Sort(dg); err != nil {
		return herr.New(herr.Invariant, "accumulate: rewritten graph is cyclic: %v", err)
	}
	return nil
}
