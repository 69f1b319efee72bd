package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/services"
)

// BackupCmd creates the backup command
func BackupCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file>",
		Short: "Write the current draft to a JSON snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if err := services.BackupSnapshot(app.Session.State(), f, time.Now().UTC()); err != nil {
				return err
			}

			app.Logger.Info("Draft backed up", zap.String("path", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s✓ Draft saved to %s%s\n\n", colorGreen, args[0], colorReset)
			return nil
		},
	}
}

// RestoreCmd creates the restore command
func RestoreCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the current draft with a JSON snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer f.Close()

			state, err := services.RestoreSnapshot(app.Ctx, app.Session, f, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s✓ Draft restored from %s%s\n", colorGreen, args[0], colorReset)
			renderStatus(out, state)
			return nil
		},
	}
}

// ResetCmd creates the reset command
func ResetCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the current draft and its saved snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			out := cmd.OutOrStdout()

			if !yes && !confirm(cmd, "Discard the current draft? [y/N] ") {
				fmt.Fprintln(out, "Reset cancelled.")
				return nil
			}

			app.Session.Dispatch(app.Ctx, draft.Reset{})
			fmt.Fprintf(out, "\n%s✓ Draft cleared%s\n\n", colorGreen, colorReset)
			return nil
		},
	}

	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
