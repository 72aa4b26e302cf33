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
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/notargets/gofvm/InputParameters"
	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/mesh/gmshgen"
	"github.com/notargets/gofvm/model_problems/GapFillDiffusion2D"
	"github.com/spf13/cobra"
)

type ModelGapFill struct {
	ICFile  string
	Mesher  string
	MSHFile string
	Graph   bool
	Delay   time.Duration
}

// GapFillCmd represents the gapfill command
var GapFillCmd = &cobra.Command{
	Use:   "gapfill",
	Short: "Diffusion across a composite gap fill mesh, compared against the linear profile",
	Long: `
Builds the fine/transition/boundary layer composite mesh, solves steady
diffusion between the bottom and top walls and reports the deviation from
the linear profile,

gofvm gapfill -g
gofvm gapfill --mesher gmsh --mshFile gapfill.msh`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("gapfill called")
		mgf := &ModelGapFill{}
		mgf.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		mgf.Mesher, _ = cmd.Flags().GetString("mesher")
		mgf.MSHFile, _ = cmd.Flags().GetString("mshFile")
		mgf.Graph, _ = cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		mgf.Delay = time.Duration(dr) * time.Millisecond
		cp := processInput(mgf.ICFile)
		RunGapFill(mgf, cp)
	},
}

func init() {
	rootCmd.AddCommand(GapFillCmd)
	GapFillCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- CellSize\n\t- DomainHeight")
	GapFillCmd.Flags().String("mesher", "", "transition region mesher: delaunay (in process) or gmsh (external)")
	GapFillCmd.Flags().String("mshFile", "", "write the composite mesh to this file in MSH 2.2 format")
	GapFillCmd.Flags().BoolP("graph", "g", false, "display the solved field on the composite mesh")
	GapFillCmd.Flags().IntP("delay", "d", 5000, "milliseconds to keep the graph up")
}

func processInput(icFile string) (cp *InputParameters.CaseParameters) {
	cp = InputParameters.NewCaseParameters()
	if len(icFile) != 0 {
		data, err := ioutil.ReadFile(icFile)
		if err != nil {
			panic(err)
		}
		if err = cp.Parse(data); err != nil {
			panic(err)
		}
	}
	cp.Print()
	return
}

func RunGapFill(mgf *ModelGapFill, cp *InputParameters.CaseParameters) {
	var (
		gfm    *mesh.GapFillMesh
		err    error
		gp     = cp.GapFillParams()
		mesher = cp.Mesher
	)
	if len(mgf.Mesher) != 0 {
		mesher = mgf.Mesher
	}
	switch mesher {
	case "gmsh":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		var workDir string
		if workDir, err = ioutil.TempDir("", "gapfill"); err != nil {
			panic(err)
		}
		defer os.RemoveAll(workDir)
		if gfm, err = gmshgen.Generate(ctx, gp, workDir); err != nil {
			panic(err)
		}
	case "delaunay":
		fallthrough
	default:
		// NewDiffusion runs the in process mesher
	}
	d, err := GapFillDiffusion2D.NewDiffusion(gp, cp.Gamma, gfm)
	if err != nil {
		panic(err)
	}
	d.Tolerance = cp.Tolerance
	if cp.MaxIterations > d.MaxIterations {
		d.MaxIterations = cp.MaxIterations
	}
	d.Run(mgf.Graph, mgf.Delay)
	if len(mgf.MSHFile) != 0 {
		d.SaveMesh(mgf.MSHFile)
	}
}
