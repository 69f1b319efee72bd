package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/model"
	"github.com/spcn/suite-draft/pkg/core/services"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <suite> <dancer>...",
		Short: "Place dancers into a suite outside the turn order",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("assign command", zap.String("suite", args[0]), zap.Strings("refs", args[1:]))

			roster, err := services.AssignDancers(app.Ctx, app.Session, args[0], args[1:])
			if err != nil {
				return err
			}

			suite, _ := services.ResolveSuite(args[0])
			renderDancers(cmd.OutOrStdout(), fmt.Sprintf("%s now has %s", suite, pluralDancers(len(roster))), roster)
			return nil
		},
	}
}

// MoveCmd creates the move command
func MoveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "move <dancer> <suite>",
		Short: "Move a dancer to another suite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := services.MoveDancer(app.Ctx, app.Session, args[0], args[1])
			if err != nil {
				return err
			}

			renderDancers(cmd.OutOrStdout(), "Dancer moved", []model.Dancer{d})
			return nil
		},
	}
}

// UnassignCmd creates the unassign command
func UnassignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <dancer>...",
		Short: "Return dancers to the unassigned pool",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dancers, err := services.UnassignDancers(app.Ctx, app.Session, args)
			if err != nil {
				return err
			}

			renderDancers(cmd.OutOrStdout(), fmt.Sprintf("Returned %s to the pool", pluralDancers(len(dancers))), dancers)
			return nil
		},
	}
}
