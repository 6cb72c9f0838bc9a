// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was adapted from the teacher's go-spatial.go, which dispatched
// to tools via a PluginToolManager REPL; here the dispatch is a cobra
// command tree instead (grounded in spatialmodel/inmap's inmap/cmd/root.go
// pattern), with one subcommand per root hydroflow operation.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	hydroflow "github.com/jblindsay/go-watershed"
	"github.com/jblindsay/go-watershed/asciigrid"
	"github.com/jblindsay/go-watershed/grid"
)

var (
	mode8        bool
	outputFile   string
	logrusLogger = logrus.StandardLogger()
)

func main() {
	root := &cobra.Command{
		Use:   "hydroflow",
		Short: "Watershed and flow-accumulation engine over an ASCII grid DEM",
	}
	root.PersistentFlags().BoolVar(&mode8, "eight", true, "use 8-connectivity instead of 4-connectivity")
	root.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output ASCII grid path (default: stdout)")

	root.AddCommand(fillCmd(), watershedsCmd(), accumulateCmd())

	if err := root.Execute(); err != nil {
		logrusLogger.WithError(err).Error("hydroflow failed")
		os.Exit(1)
	}
}

func loadGrid(path string) (*grid.Grid, *asciigrid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("hydroflow: %w", err)
	}
	defer f.Close()

	ag, err := asciigrid.Read(f)
	if err != nil {
		return nil, nil, err
	}
	mode := grid.Four
	if mode8 {
		mode = grid.Eight
	}
	g, err := grid.New(ag.NX, ag.NY, ag.CellSize, mode)
	if err != nil {
		return nil, nil, err
	}
	return g, ag, nil
}

func writeOutput(g *grid.Grid, height []float64) error {
	if outputFile == "" {
		return asciigrid.Write(os.Stdout, g, height)
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("hydroflow: %w", err)
	}
	defer f.Close()
	return asciigrid.Write(f, g, height)
}

func fillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill <input.asc>",
		Short: "Fill single-cell pits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ag, err := loadGrid(args[0])
			if err != nil {
				return err
			}
			n, err := hydroflow.FillSingleCellPits(g, ag.Height)
			if err != nil {
				return err
			}
			logrusLogger.WithField("filled", n).Info("single-cell pits filled")
			return writeOutput(g, ag.Height)
		},
	}
}

func watershedsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watersheds <input.asc>",
		Short: "Compute watersheds and spill pairs, and flatten them into a depressionless DEM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ag, err := loadGrid(args[0])
			if err != nil {
				return err
			}
			ws, err := hydroflow.ComputeWatersheds(g, ag.Height)
			if err != nil {
				return err
			}
			logrusLogger.WithField("watersheds", len(ws.List)).Info("watersheds computed")
			changed, err := hydroflow.MakeDepressionless(g, ag.Height)
			if err != nil {
				return err
			}
			logrusLogger.WithField("changed", changed).Info("depressionless DEM written")
			return writeOutput(g, ag.Height)
		},
	}
}

func accumulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accumulate <input.asc>",
		Short: "Run the full pipeline and write the upslope-count raster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ag, err := loadGrid(args[0])
			if err != nil {
				return err
			}
			acc, err := hydroflow.AccumulateFlow(g, ag.Height)
			if err != nil {
				return err
			}
			return writeOutput(g, acc)
		},
	}
}
