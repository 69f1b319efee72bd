package commands

import (
	"github.com/spf13/cobra"

	"github.com/spcn/suite-draft/pkg/core/services"
	"github.com/spcn/suite-draft/pkg/exporter"
)

// StatusCmd creates the status command
func StatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the turn order, suite rosters and the unassigned pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderStatus(cmd.OutOrStdout(), app.Session.State())
			return nil
		},
	}
}

// SummaryCmd creates the summary command
func SummaryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show per-suite counts and role balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Session.State()
			if state == nil {
				return services.ErrNoDraft
			}
			renderSummary(cmd.OutOrStdout(), exporter.SuiteSummaries(state))
			return nil
		},
	}
}

// RecommendCmd creates the recommend command
func RecommendCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend [suite]",
		Short: "Rank the unassigned dancers for a suite (defaults to the suite on the clock)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")

			var suite string
			if len(args) == 1 {
				suite = args[0]
			}

			recs, err := services.Recommend(app.Session, suite, app.Cfg.PicksPerTurn)
			if err != nil {
				return err
			}

			renderRecommendations(cmd.OutOrStdout(), recs, all)
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "Also list every other unassigned dancer")

	return cmd
}
