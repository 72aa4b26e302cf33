/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/notargets/gofvm/FV1D"
	"github.com/notargets/gofvm/model_problems/ConvectionSource1D"
	"github.com/spf13/cobra"
)

type ModelConvection struct {
	K                    int
	U, Alpha, Phi0, XMax float64
	Scheme               FV1D.SchemeType
	Graph                bool
	Delay                time.Duration
	CSVFile              string
}

// ConvectionCmd represents the convection command
var ConvectionCmd = &cobra.Command{
	Use:   "convection",
	Short: "One dimensional convection with an implicit source, compared against the analytic solution",
	Long: `
Solves d(u*phi)/dx + alpha*phi = 0 with a fixed inlet value and an open
outlet, then reports the deviation from phi0*exp(-alpha*x/u),

gofvm convection -k 5000 -s powerLaw`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("convection called")
		mc := &ModelConvection{}
		mc.K, _ = cmd.Flags().GetInt("k")
		mc.U, _ = cmd.Flags().GetFloat64("u")
		mc.Alpha, _ = cmd.Flags().GetFloat64("alpha")
		mc.Phi0, _ = cmd.Flags().GetFloat64("phi0")
		mc.XMax, _ = cmd.Flags().GetFloat64("xMax")
		mc.Graph, _ = cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		mc.Delay = time.Duration(dr) * time.Millisecond
		mc.CSVFile, _ = cmd.Flags().GetString("csvFile")
		schemeName, _ := cmd.Flags().GetString("scheme")
		if mc.Scheme, err = FV1D.ParseScheme(schemeName); err != nil {
			panic(err)
		}
		RunConvection(mc)
	},
}

func init() {
	rootCmd.AddCommand(ConvectionCmd)
	ConvectionCmd.Flags().IntP("k", "k", 5000, "Number of cells in the grid")
	ConvectionCmd.Flags().Float64("u", 1, "convection velocity")
	ConvectionCmd.Flags().Float64("alpha", 1, "implicit source coefficient")
	ConvectionCmd.Flags().Float64("phi0", 1, "fixed value at the inlet")
	ConvectionCmd.Flags().Float64("xMax", 10, "Maximum X coordinate - make sure to increase K with XMax")
	ConvectionCmd.Flags().StringP("scheme", "s", "powerLaw", "convection scheme: central, upwind, hybrid, powerLaw, exponential")
	ConvectionCmd.Flags().BoolP("graph", "g", false, "display a graph of the solution against the exact profile")
	ConvectionCmd.Flags().IntP("delay", "d", 5000, "milliseconds to keep the graph up")
	ConvectionCmd.Flags().String("csvFile", "", "append the error entry to a convergence study file")
}

func RunConvection(mc *ModelConvection) {
	c := ConvectionSource1D.NewConvection(mc.U, mc.Alpha, mc.Phi0, mc.XMax, mc.K, mc.Scheme)
	c.Run(mc.Graph, mc.Delay)
	if len(mc.CSVFile) != 0 {
		if err := c.AppendToCSV(mc.CSVFile); err != nil {
			panic(err)
		}
		fmt.Printf("Appended entry to %s\n", mc.CSVFile)
	}
}
