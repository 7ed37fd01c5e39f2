package main

import (
	"fmt"

	"github.com/aretw0/troupe"
	"github.com/aretw0/troupe/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of troupe",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if isTerminal(out) {
			tui.PrintBanner(out, termenv.NewOutput(out).Profile)
		}
		fmt.Fprintf(out, "troupe version %s\n", troupe.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
