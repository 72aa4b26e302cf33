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
	"os"
	"os/signal"

	"github.com/notargets/gofvm/server"
	"github.com/spf13/cobra"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Serve case runs to websocket viewers",
	Long: `
Serve case runs to websocket viewers. A viewer connects to /ws, sets case
parameters and starts a run; iteration residuals and the solved field stream
back as JSON frames,

gofvm watch -a :9000`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("watch called")
		addr, _ := cmd.Flags().GetString("addr")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		s := server.NewServer(addr)
		if err := s.Serve(ctx); err != nil {
			panic(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(WatchCmd)
	WatchCmd.Flags().StringP("addr", "a", ":9000", "address to listen on for websocket viewers")
}
