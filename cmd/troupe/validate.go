package main

import (
	"fmt"

	"github.com/aretw0/troupe"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <definition>...",
	Short: "Check workflow definitions without running them",
	Long:  `Reports every unknown kind, malformed record and option error of each definition.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := newEngine()
		if err != nil {
			return err
		}
		defer closeStore()

		failed := 0
		for _, path := range args {
			def, err := troupe.LoadFile(path)
			if err == nil {
				err = eng.Validate(def)
			}
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ✘\n%v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ✔ valid\n", path)
		}

		if failed > 0 {
			return &exitError{code: 1}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
