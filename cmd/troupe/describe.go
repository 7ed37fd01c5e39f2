package main

import (
	"fmt"

	"github.com/aretw0/troupe/internal/presentation/tui"
	"github.com/aretw0/troupe/pkg/report"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [kind]",
	Short: "Document the registered actor kinds",
	Long:  `Without arguments, lists the registered kinds. With a kind, shows its documentation and options.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := newEngine()
		if err != nil {
			return err
		}
		defer closeStore()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, kind := range eng.Kinds() {
				fmt.Fprintln(out, kind)
			}
			return nil
		}

		actor, err := eng.Lookup(args[0])
		if err != nil {
			return err
		}
		markdown := report.KindMarkdown(args[0], actor)

		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			fmt.Fprint(out, markdown)
			return nil
		}

		render, err := tui.NewPlainRenderer()
		if isTerminal(out) {
			render, err = tui.NewRenderer(100)
		}
		if err != nil {
			return err
		}
		rendered, err := render(markdown)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print the markdown source")
}
