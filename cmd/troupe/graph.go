package main

import (
	"context"
	"fmt"

	"github.com/aretw0/troupe"
	"github.com/aretw0/troupe/internal/presentation/graph"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <definition>",
	Short: "Export the actor tree visualization",
	Long: `Builds the definition and outputs a Mermaid diagram (graph TD) of its actor tree.
With --rehearse, the definition is run in dry mode and nodes are colored by status.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := newEngine()
		if err != nil {
			return err
		}
		defer closeStore()

		def, err := troupe.LoadFile(args[0])
		if err != nil {
			return err
		}
		root, err := eng.Build(def)
		if err != nil {
			return err
		}

		var overlay *domain.Result
		if rehearse, _ := cmd.Flags().GetBool("rehearse"); rehearse {
			run, err := eng.Execute(context.Background(), def, true)
			if err != nil {
				return err
			}
			overlay = run.Root
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(root, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("rehearse", false, "Color nodes with the outcome of a dry run")
}
