// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from the BFS-style minima-merging in
// original_source/lib/util.py:combine_minima, reshaped into a disjoint-set
// union the way katalvlaran/lvlath/graph/prim_kruskal.go unions vertices
// for Kruskal's MST (there over string vertex IDs, here over int cell
// indices).

// Package minima groups spatially adjacent local minima (PIT cells) into
// combined minima via the union-find over grid adjacency described in
// spec.md §4.5.
package minima

import (
	"sort"

	"github.com/jblindsay/go-watershed/flowfield"
	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/herr"
)

type unionFind struct {
	parent map[int]int
	rank   map[int]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[int]int), rank: make(map[int]int)}
}

func (u *unionFind) find(x int) int {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
		u.rank[x] = 0
		return x
	}
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		u.parent[x], x = root, u.parent[x]
	}
	return root
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

// CombinedMinima groups the PIT cells of flow into connected components
// under the grid's active connectivity. It returns the components (each a
// sorted slice of cell indices) and a map from every PIT cell to the index
// of its component in the returned slice.
func CombinedMinima(g *grid.Grid, flow []int) ([][]int, map[int]int, error) {
	if g == nil {
		return nil, nil, herr.New(herr.Dimension, "minima: nil grid")
	}
	if len(flow) != g.N() {
		return nil, nil, herr.New(herr.Dimension, "minima: flow has length %d, want %d", len(flow), g.N())
	}

	var pits []int
	isPit := make(map[int]bool)
	for _, i := range g.Interior() {
		if flow[i] == flowfield.Pit {
			pits = append(pits, i)
			isPit[i] = true
		}
	}

	uf := newUnionFind()
	for _, i := range pits {
		uf.find(i)
		for _, n := range g.Neighbors(i) {
			if n >= 0 && isPit[n] {
				uf.union(i, n)
			}
		}
	}

	groups := make(map[int][]int)
	for _, i := range pits {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	var roots []int
	for r := range groups {
		roots = append(roots, r)
	}
	sort.Ints(roots)

	components := make([][]int, 0, len(roots))
	memberOf := make(map[int]int, len(pits))
	for idx, r := range roots {
		cells := groups[r]
		sort.Ints(cells)
		components = append(components, cells)
		for _, c := range cells {
			memberOf[c] = idx
		}
	}
	return components, memberOf, nil
}
