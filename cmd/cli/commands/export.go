package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/services"
)

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the assignments to CSV files or an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = app.Cfg.ExportDir
			}

			app.Logger.Debug("export command", zap.String("format", format), zap.String("dir", dir))

			paths, err := services.ExportDraft(app.Session.State(), dir, format, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s✓ Exported %d files%s\n", colorGreen, len(paths), colorReset)
			for _, p := range paths {
				fmt.Fprintf(out, "  %s\n", p)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().String("format", services.FormatCSV, "Export format: csv or xlsx")
	cmd.Flags().String("dir", "", "Output directory (defaults to exportDir from config)")

	return cmd
}

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the assignments to a tab in the publish spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheetID, _ := cmd.Flags().GetString("sheet")
			tab, _ := cmd.Flags().GetString("tab")
			if sheetID == "" {
				sheetID = app.Cfg.Sheets.PublishSheetID
			}

			if app.Session.State() == nil {
				return services.ErrNoDraft
			}

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			published, err := services.PublishDraft(app.Ctx, client, sheetID, app.Session.State(), tab, app.Logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n%s✓ Published %d rows to tab %q%s\n\n",
				colorGreen, len(published.Rows), published.TabTitle, colorReset)
			return nil
		},
	}

	cmd.Flags().String("sheet", "", "Spreadsheet ID (defaults to sheets.publishSheetId from config)")
	cmd.Flags().String("tab", "", "Tab title (defaults to one named after the draft start date)")

	return cmd
}
