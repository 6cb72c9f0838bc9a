// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package hydroflow is the public surface of the watershed and
// flow-accumulation engine: pit filling, watershed/spill-pair computation,
// depressionless-DEM production, and flow accumulation, each wired over
// the grid/pitfill/flowfield/endpoint/minima/watershed/accumulate
// pipeline. It plays the role the teacher's go-spatial.go root command
// dispatcher played, but as an importable library rather than a REPL.
package hydroflow

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jblindsay/go-watershed/accumulate"
	"github.com/jblindsay/go-watershed/endpoint"
	"github.com/jblindsay/go-watershed/flowfield"
	"github.com/jblindsay/go-watershed/grid"
	"github.com/jblindsay/go-watershed/herr"
	"github.com/jblindsay/go-watershed/minima"
	"github.com/jblindsay/go-watershed/pitfill"
	"github.com/jblindsay/go-watershed/watershed"
)

// Kind classifies an Error without forcing callers to import the internal
// herr package.
type Kind int

const (
	ErrDimension Kind = iota
	ErrDegenerate
	ErrNonFinite
	ErrInvariant
)

func (k Kind) String() string {
	switch k {
	case ErrDimension:
		return "dimension"
	case ErrDegenerate:
		return "degenerate"
	case ErrNonFinite:
		return "non-finite"
	case ErrInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Error is the classified error returned by every operation in this
// package, in the spirit of the teacher's
// raster.UnsupportedRasterFormatError sentinel errors.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var he *herr.Error
	if errors.As(err, &he) {
		return &Error{Kind: Kind(he.Kind), Msg: fmt.Sprintf("hydroflow: %s: %s", op, he.Msg)}
	}
	return fmt.Errorf("hydroflow: %s: %w", op, err)
}

// FillSingleCellPits fills every single-cell pit in height in place and
// reports how many cells were raised.
func FillSingleCellPits(g *grid.Grid, height []float64) (int, error) {
	n, err := pitfill.FillSingleCellPits(g, height)
	if err != nil {
		return 0, wrap("FillSingleCellPits", err)
	}
	return n, nil
}

// Watersheds is the intermediate result of ComputeWatersheds: the final
// watershed list, one spill pair per watershed, and the flow field they
// were computed from.
type Watersheds struct {
	List  []*watershed.Watershed
	Pairs []watershed.SpillPair
	Flow  []int
}

// ComputeWatersheds runs flow-field computation, endpoint labelling,
// combined-minima merging, watershed assembly, and the spill-pair fixed
// point, without mutating height.
func ComputeWatersheds(g *grid.Grid, height []float64) (*Watersheds, error) {
	flow, err := flowfield.Compute(g, height)
	if err != nil {
		return nil, wrap("ComputeWatersheds", err)
	}
	end, err := endpoint.Label(g, flow)
	if err != nil {
		return nil, wrap("ComputeWatersheds", err)
	}
	components, memberOf, err := minima.CombinedMinima(g, flow)
	if err != nil {
		return nil, wrap("ComputeWatersheds", err)
	}
	ws, _ := watershed.Assemble(g.N(), end, components, memberOf)
	final, pairs, err := watershed.ComputeSpillPairs(g, height, ws)
	if err != nil {
		return nil, wrap("ComputeWatersheds", err)
	}
	return &Watersheds{List: final, Pairs: pairs, Flow: flow}, nil
}

// MakeDepressionless raises every trap cell to its watershed's spill
// height, producing the depressionless DEM of spec.md §4.9, and returns
// the number of cells changed. A second call against an already
// depressionless raster changes nothing (P6).
func MakeDepressionless(g *grid.Grid, height []float64) (int, error) {
	log := logrus.WithFields(logrus.Fields{"stage": "make-depressionless", "n": g.N()})

	ws, err := ComputeWatersheds(g, height)
	if err != nil {
		return 0, err
	}
	spillHeight, trap, trapSize := watershed.ResolveTraps(height, ws.List, ws.Pairs)
	changed := watershed.Flatten(height, trap, spillHeight)

	log.WithField("traps", len(trap)).WithField("largest", maxInt(trapSize)).WithField("changed", changed).Debug("flattened depressions")
	return changed, nil
}

// AccumulateFlow runs the complete pipeline end to end: it makes height
// depressionless in place, then builds and propagates the accumulation
// graph of spec.md §4.10, returning the ny×nx upslope-count raster.
func AccumulateFlow(g *grid.Grid, height []float64) ([]float64, error) {
	if _, err := MakeDepressionless(g, height); err != nil {
		return nil, err
	}
	ws, err := ComputeWatersheds(g, height)
	if err != nil {
		return nil, err
	}
	_, trap, _ := watershed.ResolveTraps(height, ws.List, ws.Pairs)

	acc, err := accumulate.Accumulate(g, ws.Flow, trap, ws.Pairs)
	if err != nil {
		return nil, wrap("AccumulateFlow", err)
	}
	return acc, nil
}

func maxInt(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
