package main

import (
	"github.com/spf13/cobra"

	"flavorprune/internal/logging"
	"flavorprune/pkg/prune"
	"flavorprune/pkg/textnorm"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var artistsPath string
	var flavorsPath string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List flavor lines an artist name almost matched",
		Long: `Reports every flavor line that contains an artist name but was kept
because a heuristic gate failed (token too short, or no coordinating
word in the line). Nothing is modified; use this to judge whether the
gates in the [matching] config section fit your lists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.newLogger(cmd, cfg)

			plan, err := prune.BuildPlan(artistsPath, flavorsPath, cfg.Heuristics(), textnorm.New(), logging.WithComponent(logger, "audit"))
			if err != nil {
				return err
			}

			renderNearMisses(cmd.OutOrStdout(), plan.NearMisses())
			return nil
		},
	}

	cmd.Flags().StringVarP(&artistsPath, "artists", "a", "", "Path to the artist name list")
	cmd.Flags().StringVarP(&flavorsPath, "flavors", "f", "", "Path to the flavor list to inspect")
	_ = cmd.MarkFlagRequired("artists")
	_ = cmd.MarkFlagRequired("flavors")

	return cmd
}
