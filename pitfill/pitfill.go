// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from the pit-detection scan in
// tools/fillDepressions.go, simplified to the strictly-isolated
// single-cell case described in spec.md §4.2 (multi-cell depressions are
// handled by the spill engine and the landscape flattener instead).

// Package pitfill implements the one-pass single-cell pit filler.
package pitfill

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/herr"
)

// FillSingleCellPits raises every strictly interior cell whose minimum
// neighbor elevation is above its own elevation (an isolated one-cell pit)
// to the minimum neighbor elevation. All qualifying pits are detected
// against the original heights and then raised together in a single pass,
// so the raise of one pit never masks or creates another in the same call.
// It returns the number of cells raised.
func FillSingleCellPits(g *grid.Grid, height []float64) (int, error) {
	if err := validate(g, height); err != nil {
		return 0, err
	}

	log := logrus.WithFields(logrus.Fields{"stage": "pitfill", "nx": g.NX, "ny": g.NY})
	log.Debug("scanning for isolated single-cell pits")

	type raise struct {
		idx   int
		value float64
	}
	var raises []raise

	for _, i := range g.Interior() {
		z := height[i]
		maxNbr := math.Inf(-1)
		minNbr := math.Inf(1)
		for _, n := range g.Neighbors(i) {
			if n < 0 {
				continue
			}
			zN := height[n]
			if zN > maxNbr {
				maxNbr = zN
			}
			if zN < minNbr {
				minNbr = zN
			}
		}
		if minNbr > z {
			raises = append(raises, raise{idx: i, value: minNbr})
		}
	}

	for _, r := range raises {
		height[r.idx] = r.value
	}

	log.WithField("raised", len(raises)).Debug("pit fill complete")
	return len(raises), nil
}

func validate(g *grid.Grid, height []float64) error {
	if g == nil {
		return herr.New(herr.Dimension, "pitfill: nil grid")
	}
	if len(height) != g.N() {
		return herr.New(herr.Dimension, "pitfill: height has length %d, want %d", len(height), g.N())
	}
	for _, h := range height {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return herr.New(herr.NonFinite, "pitfill: non-finite elevation in input raster")
		}
	}
	return nil
}
