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

//go:build linux

package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
	"github.com/notargets/gofvm/FV1D"
	"github.com/notargets/gofvm/InputParameters"
	"github.com/notargets/gofvm/model_problems/ConvectionSource1D"
	"github.com/notargets/gofvm/model_problems/GapFillDiffusion2D"
	"github.com/spf13/cobra"
)

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure hardware counters around the assembly and solve hot paths",
	Long: `
Measure retired instructions and cycles around the assembly and solve hot
paths of both model problems. Needs perf event access
(kernel.perf_event_paranoid),

gofvm bench -k 100000`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bench called")
		k, _ := cmd.Flags().GetInt("k")
		RunBench(k)
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().IntP("k", "k", 5000, "Number of cells for the convection solve")
}

func RunBench(k int) {
	c := ConvectionSource1D.NewConvection(1, 1, 1, 10, k, FV1D.PowerLaw)
	profileCounters("convection assembly+solve", func() {
		if err := c.Solve(); err != nil {
			panic(err)
		}
	})

	cp := InputParameters.NewCaseParameters()
	d, err := GapFillDiffusion2D.NewDiffusion(cp.GapFillParams(), cp.Gamma, nil)
	if err != nil {
		panic(err)
	}
	profileCounters("gapfill assembly+solve", func() {
		if _, err := d.Solve(); err != nil {
			panic(err)
		}
	})
}

// profileCounters runs f once per hardware counter, instructions first.
func profileCounters(name string, f func()) {
	instructions, err := perf.CPUInstructions(f)
	if err != nil {
		panic(err)
	}
	cycles, err := perf.CPUCycles(f)
	if err != nil {
		panic(err)
	}
	ipc := float64(instructions.Value) / float64(cycles.Value)
	fmt.Printf("%s: %d instructions, %d cycles, IPC = %5.2f\n",
		name, instructions.Value, cycles.Value, ipc)
}
