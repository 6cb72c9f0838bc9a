// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from tools/d8FlowAccumulation.go's flowQueue-driven
// wavefront (there a FIFO of cells whose upstream neighbours have already
// contributed; here a round-based "ready" set over the rewritten graph),
// using internal/queue.IntQueue in place of the teacher's flowqueuenode
// linked list.
package accumulate

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/herr"
	"github.com/jblindsay/go-watershed/internal/queue"
	"github.com/jblindsay/go-watershed/watershed"
)

// Accumulate runs the flow-accumulation pass of spec.md §4.10 over a
// depressionless flow field and its resolved traps, and returns the
// ny×nx upslope-count raster (row-major, length g.N()).
func Accumulate(g *grid.Grid, flow []int, trap [][]int, pairs []watershed.SpillPair) ([]float64, error) {
	if g == nil {
		return nil, herr.New(herr.Dimension, "accumulate: nil grid")
	}
	if len(trap) != len(pairs) {
		return nil, herr.New(herr.Invariant, "accumulate: %d traps but %d spill pairs", len(trap), len(pairs))
	}

	log := logrus.WithFields(logrus.Fields{"stage": "accumulate", "traps": len(trap)})

	n := g.N()
	t := len(trap)
	total := n + t

	gr, trapOf := buildGraph(g, flow, trap, pairs)
	if err := assertAcyclic(gr, total); err != nil {
		return nil, err
	}

	contrib := make([]float64, total)
	for i := 0; i < n; i++ {
		contrib[i] = 1
	}
	for k := 0; k < t; k++ {
		contrib[n+k] = float64(len(trap[k]))
	}

	acc := make([]float64, total)
	defined := make([]bool, total)

	origin := origins(g, gr, n, t, trapOf)
	for _, o := range origin {
		acc[o] = contrib[o]
		defined[o] = true
	}
	log.WithField("origins", len(origin)).Debug("seeded origins")

	current := successorsOf(gr, origin)
	for round := 0; len(current) > 0; round++ {
		next := make(map[int]bool)
		q := queue.NewIntQueue()
		for _, id := range sortedKeys(current) {
			q.Push(id)
		}
		for q.Len() > 0 {
			c := q.Pop()
			if defined[c] {
				continue
			}
			ready := true
			for _, p := range gr.pred[c] {
				if !defined[p] {
					ready = false
					break
				}
			}
			if !ready {
				next[c] = true
				continue
			}
			sum := contrib[c]
			for _, p := range gr.pred[c] {
				sum += acc[p]
			}
			acc[c] = sum
			defined[c] = true
			if s := gr.succ[c]; s >= 0 {
				next[s] = true
			}
		}
		current = next
		log.WithField("round", round).WithField("pending", len(current)).Debug("wavefront round complete")
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if k := trapOf[i]; k >= 0 {
			out[i] = acc[n+k]
		} else if defined[i] {
			out[i] = acc[i]
		}
	}
	return out, nil
}

func successorsOf(gr *graph, nodes []int) map[int]bool {
	out := make(map[int]bool)
	for _, i := range nodes {
		if s := gr.succ[i]; s >= 0 {
			out[s] = true
		}
	}
	return out
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
