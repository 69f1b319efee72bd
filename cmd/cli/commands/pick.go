package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/model"
	"github.com/spcn/suite-draft/pkg/core/services"
)

// PickCmd creates the pick command
func PickCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pick <dancer>...",
		Short: "Pick dancers for the suite on the clock and pass the turn",
		Long: `Pick dancers for the suite on the clock and pass the turn.

Dancers are referenced by id, an id prefix of at least four characters, or full name
(quote names with spaces).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("pick command", zap.Strings("refs", args))

			result, err := services.PickForActiveSuite(app.Ctx, app.Session, args, app.Cfg.PicksPerTurn, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderDancers(out, fmt.Sprintf("%s picked %s", result.Suite, pluralDancers(len(result.Dancers))), result.Dancers)
			printNext(cmd, result.Next)
			return nil
		},
	}
}

// AdvanceCmd creates the advance command
func AdvanceCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Pass the turn without picking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := services.AdvanceTurn(app.Ctx, app.Session)
			if err != nil {
				return err
			}
			printNext(cmd, next)
			return nil
		},
	}
}

// FinalizeCmd creates the finalize command
func FinalizeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <suite>",
		Short: "Close a suite to further picks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := services.FinalizeSuite(app.Ctx, app.Session, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n%s✓ %s finalized%s\n", colorGreen, suite, colorReset)
			next, _ := app.Session.ActiveSuite()
			printNext(cmd, next)
			return nil
		},
	}
}

func printNext(cmd *cobra.Command, next model.Suite) {
	out := cmd.OutOrStdout()
	if next == "" {
		fmt.Fprintf(out, "%sDraft complete%s\n\n", colorGreen, colorReset)
		return
	}
	fmt.Fprintf(out, "On the clock: %s%s%s\n\n", colorBold, next, colorReset)
}
