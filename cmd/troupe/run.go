package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/troupe/pkg/report"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <definition>",
	Short: "Execute a workflow definition",
	Long: `Builds the definition and executes it. With --dry every actor reports what it
would have done without touching anything. Exits with status 2 when the run fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dry, _ := cmd.Flags().GetBool("dry")
		format := cfg.Report.Format
		if cmd.Flags().Changed("output") {
			format, _ = cmd.Flags().GetString("output")
		}
		f, err := report.ParseFormat(format)
		if err != nil {
			return err
		}

		eng, closeStore, err := newEngine()
		if err != nil {
			return err
		}
		defer closeStore()

		// Interrupts cancel the run; actors not yet started are reported as cancelled.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		run, err := eng.ExecuteFile(ctx, args[0], dry)
		if err != nil {
			return fmt.Errorf("invalid definition:\n%w", err)
		}

		out := cmd.OutOrStdout()
		if err := report.Render(out, run, f, report.WithProfile(colorProfile(out))); err != nil {
			return err
		}
		if !run.Succeeded() {
			return &exitError{code: 2}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("dry", false, "Rehearse the run without side effects")
	runCmd.Flags().StringP("output", "o", "text", "Report format (text, json, yaml)")
}
