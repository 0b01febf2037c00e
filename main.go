// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nlfem/fem"
	"github.com/cpmech/nlfem/inp"
	"github.com/cpmech/nlfem/out"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	alias  string   // word appended to the simulation key
	keep   bool     // keep previous results
	quiet  bool     // do not show messages
	step   int      // step of residual plot; -1 => all steps
	height int      // height of plots
	keys   []string // keys of results to plot
	nodes  []int    // nodes to plot
	bodies []string // rigid bodies to plot
	finalT float64  // new final time of restart
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	rootCmd := &cobra.Command{
		Use:           "nlfem",
		Short:         "nonlinear finite element solver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&alias, "alias", "", "word to add to results")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "do not show messages")

	runCmd := &cobra.Command{
		Use:   "run [file.sim]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().BoolVar(&keep, "keep", false, "keep previous results")

	restartCmd := &cobra.Command{
		Use:   "restart [file.rst|file.dmp]",
		Short: "continue simulation from archive",
		Args:  cobra.ExactArgs(1),
		RunE:  restartSimulation,
	}
	restartCmd.Flags().Float64Var(&finalT, "tf", 0, "new final time; 0 => use restart file or archive")

	residCmd := &cobra.Command{
		Use:   "resid [file.sim]",
		Short: "plot residuals of nonlinear iterations",
		Args:  cobra.ExactArgs(1),
		RunE:  plotResiduals,
	}
	residCmd.Flags().IntVar(&step, "step", -1, "step index; -1 => all steps")
	residCmd.Flags().IntVar(&height, "height", 12, "height of plot")

	plotCmd := &cobra.Command{
		Use:   "plot [file.sim]",
		Short: "plot time series of nodes and rigid bodies",
		Args:  cobra.ExactArgs(1),
		RunE:  plotResults,
	}
	plotCmd.Flags().StringSliceVar(&keys, "keys", []string{"ux"}, "keys of results; e.g. ux,uz,fz")
	plotCmd.Flags().IntSliceVar(&nodes, "nodes", nil, "node ids")
	plotCmd.Flags().StringSliceVar(&bodies, "rigid", nil, "names of rigid bodies")
	plotCmd.Flags().IntVar(&height, "height", 12, "height of plot")

	rootCmd.AddCommand(runCmd, restartCmd, residCmd, plotCmd)
	if err := rootCmd.Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	fnamepath := args[0]
	if !quiet {
		io.PfWhite("\nnlfem -- nonlinear finite element solver\n\n")
		io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"erase previous results", "erasePrev", !keep,
			"word to add to results", "alias", alias,
		))
	}
	m, err := fem.ReadModel(fnamepath, alias, !keep)
	if err != nil {
		return err
	}
	if quiet {
		m.Verbose = false
	}
	return m.Run()
}

func restartSimulation(cmd *cobra.Command, args []string) error {
	m, err := fem.LoadRestart(args[0])
	if err != nil {
		return err
	}
	if finalT > 0 {
		if finalT <= m.Time {
			return chk.Err("final time %g must be greater than the archived time %g", finalT, m.Time)
		}
		m.Sim.Control.Tf = finalT
	}
	if quiet {
		m.Verbose = false
	}
	return m.Run()
}

func plotResiduals(cmd *cobra.Command, args []string) error {
	sim, err := inp.ReadSim(args[0], alias, false)
	if err != nil {
		return err
	}
	sum, err := fem.ReadSum(sim.DirOut, sim.Key, sim.Data.Encoder)
	if err != nil {
		return err
	}
	nsteps := len(sum.Steps)
	if nsteps == 0 {
		return chk.Err("summary of %q has no converged steps", sim.Key)
	}
	var resids []float64
	caption := "log10(residual) of all steps"
	if step >= 0 {
		if step >= nsteps {
			return chk.Err("step index must be smaller than %d; %d is invalid", nsteps, step)
		}
		resids = sum.StepResids(step)
		caption = "log10(residual) of step " + strconv.Itoa(step)
	} else {
		for i := 0; i < nsteps; i++ {
			resids = append(resids, sum.StepResids(i)...)
		}
	}
	if len(resids) == 0 {
		return chk.Err("no residuals recorded")
	}
	y := make([]float64, len(resids))
	for i, r := range resids {
		y[i] = math.Log10(math.Max(r, 1e-300))
	}
	io.Pf("%s\n", asciigraph.Plot(y, asciigraph.Height(height), asciigraph.Caption(caption)))
	return nil
}

func plotResults(cmd *cobra.Command, args []string) error {
	r, err := out.Start(args[0], alias)
	if err != nil {
		return err
	}
	var names []string
	for _, vid := range nodes {
		name := "node " + strconv.Itoa(vid)
		if err = r.Define("!"+name, out.N{vid}); err != nil {
			return err
		}
		names = append(names, name)
	}
	for _, b := range bodies {
		if err = r.Define("!"+b, out.R{b}); err != nil {
			return err
		}
		names = append(names, b)
	}
	if len(names) == 0 {
		return chk.Err("at least one node or rigid body must be given")
	}
	if err = r.LoadResults(nil); err != nil {
		return err
	}
	out.Height = height
	for _, key := range keys {
		r.Splot(strings.Join(names, ", "))
		for _, name := range names {
			if err = r.Plot("t", key, name, -1); err != nil {
				return err
			}
		}
	}
	io.Pf("%s", r.Draw())
	return nil
}
