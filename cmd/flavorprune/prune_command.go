package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"flavorprune/internal/logging"
	"flavorprune/pkg/prune"
	"flavorprune/pkg/textnorm"
)

func newPruneCommand(ctx *commandContext) *cobra.Command {
	var artistsPath string
	var flavorsPath string
	var apply bool
	var noBackup bool
	var preview int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Report or remove flavor lines that match artist names",
		Long: `Compares every flavor line against the normalized artist list and flags
lines that contain an artist name alongside the coordinating word. The
default run is a dry-run report; --apply rewrites the flavors file in
place after writing a timestamped backup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.newLogger(cmd, cfg)

			previewLimit := cfg.Report.PreviewLimit
			if cmd.Flags().Changed("preview") {
				previewLimit = preview
			}

			plan, err := prune.BuildPlan(artistsPath, flavorsPath, cfg.Heuristics(), textnorm.New(), logging.WithComponent(logger, "prune"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderSummary(out, plan, previewLimit)

			if !apply {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Dry-run: no files were modified. Re-run with --apply to apply changes.")
				return nil
			}

			makeBackup := cfg.Apply.Backup && !noBackup
			backupPath, err := plan.Apply(makeBackup, time.Now(), logging.WithComponent(logger, "apply"))
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			if backupPath != "" {
				fmt.Fprintf(out, "Backup of original flavors file written to: %s\n", backupPath)
			}
			fmt.Fprintf(out, "Updated flavors file written to: %s\n", flavorsPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&artistsPath, "artists", "a", "", "Path to the artist name list")
	cmd.Flags().StringVarP(&flavorsPath, "flavors", "f", "", "Path to the flavor list to prune")
	cmd.Flags().BoolVar(&apply, "apply", false, "Rewrite the flavors file in place (default is dry-run)")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the timestamped backup when applying")
	cmd.Flags().IntVar(&preview, "preview", 0, "Matched lines to preview, -1 for all (overrides config)")
	_ = cmd.MarkFlagRequired("artists")
	_ = cmd.MarkFlagRequired("flavors")

	return cmd
}
