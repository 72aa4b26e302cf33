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
	"os"

	"github.com/notargets/gofvm/mesh/readers"
	"github.com/spf13/cobra"
)

// MeshInfoCmd represents the meshinfo command
var MeshInfoCmd = &cobra.Command{
	Use:   "meshinfo",
	Short: "Read a mesh file and print its statistics",
	Long: `
Read a mesh file and print its statistics,

gofvm meshinfo -F gapfill.msh`,
	Run: func(cmd *cobra.Command, args []string) {
		gridFile, _ := cmd.Flags().GetString("gridFile")
		if len(gridFile) == 0 {
			err := fmt.Errorf("must supply a grid file (-F, --gridFile) in .msh (MSH version 2) or .neu (Gambit neutral) format")
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		m, err := readers.ReadMeshFile(gridFile)
		if err != nil {
			panic(err)
		}
		fmt.Printf("Mesh file: %s\n", gridFile)
		m.PrintStatistics()
	},
}

func init() {
	rootCmd.AddCommand(MeshInfoCmd)
	MeshInfoCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in MSH version 2 (.msh) or Gambit neutral (.neu) format")
}
