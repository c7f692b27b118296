/*
Copyright © 2026 the PDep authors.
This file is part of PDep.

PDep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PDep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PDep.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package pdeputil holds the command-line interface of the PDep
// pressure-dependent kinetics calculator.
package pdeputil

import (
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/pdep"
)

func init() {
	Root.AddCommand(versionCmd)
	Root.AddCommand(exampleCmd)

	Root.PersistentFlags().BoolVar(&verbose, "verbose", false,
		"Print progress information while calculating.")

	exampleCmd.Flags().StringVar(&method, "method", "modified strong collision",
		`The master equation solution method: "modified strong collision",
"reservoir state", or "chemically-significant eigenvalues".`)
	exampleCmd.Flags().Float64Var(&tMin, "Tmin", 600, "The lowest temperature [K].")
	exampleCmd.Flags().Float64Var(&tMax, "Tmax", 1200, "The highest temperature [K].")
	exampleCmd.Flags().IntVar(&tNum, "Tnum", 3, "The number of temperatures.")
	exampleCmd.Flags().Float64Var(&pMin, "Pmin", 1.0e3, "The lowest pressure [Pa].")
	exampleCmd.Flags().Float64Var(&pMax, "Pmax", 1.0e7, "The highest pressure [Pa].")
	exampleCmd.Flags().IntVar(&pNum, "Pnum", 3, "The number of pressures.")
	exampleCmd.Flags().Float64Var(&grainSize, "grainsize", 2000,
		"The energy grain size [J/mol].")
}

var (
	verbose   bool
	method    string
	tMin      float64
	tMax      float64
	tNum      int
	pMin      float64
	pMax      float64
	pNum      int
	grainSize float64
)

// Root is the main command.
var Root = &cobra.Command{
	Use:   "pdep",
	Short: "A pressure-dependent reaction rate calculator.",
	Long: `PDep calculates phenomenological rate coefficients k(T,P) for chemical
reaction networks of arbitrary complexity involving isomerization,
dissociation, and association reactions, by constructing and reducing a
one-dimensional master equation in total energy.
Use the subcommands specified below to access the functionality.`,
	DisableAutoGenTag: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of PDep.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("PDep v%s\n", pdep.Version)
	},
	DisableAutoGenTag: true,
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Calculate k(T,P) for a bundled example network.",
	Long: `example builds a small bundled reaction network (the isomerization of
methyl isocyanide to acetonitrile, with a dissociation channel) and
calculates its phenomenological rate coefficients over a grid of
temperatures and pressures, printing the resulting rate matrices.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExample(cmd.OutOrStdout(), ExampleNetwork())
	},
	DisableAutoGenTag: true,
}

func runExample(w io.Writer, nw *pdep.Network) error {
	tlist, err := logSpace(tMin, tMax, tNum)
	if err != nil {
		return err
	}
	plist, err := logSpace(pMin, pMax, pNum)
	if err != nil {
		return err
	}

	e, err := nw.AutoGrid(tlist[len(tlist)-1], grainSize, 0)
	if err != nil {
		return fmt.Errorf("building the energy grid: %v", err)
	}
	log.Infof("Using %d energy grains from %g to %g kJ/mol",
		len(e), e[0]/1000, e[len(e)-1]/1000)

	k, err := nw.RateCoefficients(tlist, plist, e, method)
	if err != nil {
		return fmt.Errorf("calculating rate coefficients: %v", err)
	}

	labels := channelLabels(nw)
	for t, T := range tlist {
		for p, P := range plist {
			fmt.Fprintf(w, "T = %g K, P = %g bar\n", T, P/1.0e5)
			tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
			fmt.Fprint(tw, "\t")
			for _, l := range labels {
				fmt.Fprintf(tw, "from %s\t", l)
			}
			fmt.Fprintln(tw)
			for i, l := range labels {
				fmt.Fprintf(tw, "to %s\t", l)
				for j := range labels {
					fmt.Fprintf(tw, "%.4e\t", k.Get(t, p, i, j))
				}
				fmt.Fprintln(tw)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

// channelLabels lists the configurations of the network in the order the
// rate matrices index them: isomers, then reactant channels, then product
// channels.
func channelLabels(nw *pdep.Network) []string {
	var labels []string
	for _, iso := range nw.Isomers {
		labels = append(labels, iso.Label)
	}
	for _, ch := range nw.Reactants {
		labels = append(labels, ch.String())
	}
	for _, ch := range nw.Products {
		labels = append(labels, ch.String())
	}
	return labels
}

// logSpace returns n points spaced evenly in logarithm between lo and hi.
func logSpace(lo, hi float64, n int) ([]float64, error) {
	if lo <= 0 || hi < lo || n < 1 {
		return nil, fmt.Errorf("invalid range [%g, %g] with %d points", lo, hi, n)
	}
	if n == 1 {
		return []float64{lo}, nil
	}
	out := make([]float64, n)
	ratio := hi / lo
	for i := range out {
		out[i] = lo * math.Pow(ratio, float64(i)/float64(n-1))
	}
	return out, nil
}

// Execute runs the root command, printing any error to standard error.
func Execute() {
	if err := Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
