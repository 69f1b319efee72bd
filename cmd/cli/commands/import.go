package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/services"
	"github.com/spcn/suite-draft/pkg/importer"
)

// ImportCmd creates the import command
func ImportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [roster_file]",
		Short: "Import a roster (.csv or .xlsx, or a Google Sheet) and start a draft",
		Long: `Import a roster and start a new draft.

The roster is read from a .csv or .xlsx file, or from a Google Sheet when --sheet
is given (or sheets.rosterSheetId is configured and no file is passed).

Columns are matched automatically. Use --map field=Header to choose them
explicitly, e.g. --map fullName=Name --map roleScore="Role pref".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheetID, _ := cmd.Flags().GetString("sheet")
			tab, _ := cmd.Flags().GetString("tab")
			pairs, _ := cmd.Flags().GetStringArray("map")
			force, _ := cmd.Flags().GetBool("force")

			mapping, err := importMapping(pairs, app.Cfg.Columns)
			if err != nil {
				return err
			}

			var source services.RosterSource
			switch {
			case len(args) == 1:
				source = services.FileRosterSource{Path: args[0]}
			default:
				if sheetID == "" {
					sheetID = app.Cfg.Sheets.RosterSheetID
				}
				if tab == "" {
					tab = app.Cfg.Sheets.RosterTab
				}
				if sheetID == "" {
					return errors.New("pass a roster file or --sheet")
				}
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				source = services.SheetRosterSource{Reader: client, SpreadsheetID: sheetID, Tab: tab}
			}

			app.Logger.Debug("import command", zap.Stringer("source", source), zap.Bool("force", force))

			result, err := services.ImportRoster(app.Ctx, source, mapping, app.Logger)
			if err != nil {
				return err
			}

			state, err := services.StartDraft(app.Ctx, app.Session, result.Dancers, force, app.Logger)
			if errors.Is(err, services.ErrDraftInProgress) {
				return fmt.Errorf("%w (use --force to replace it)", err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s✓ Imported %s from %s%s\n", colorGreen, pluralDancers(len(result.Dancers)), source, colorReset)
			renderStatus(out, state)
			return nil
		},
	}

	cmd.Flags().String("sheet", "", "Google Sheets spreadsheet ID to read the roster from")
	cmd.Flags().String("tab", "", "Sheet tab holding the roster (defaults to the first tab)")
	cmd.Flags().StringArray("map", nil, "Column mapping as field=Header (repeatable)")
	cmd.Flags().Bool("force", false, "Replace a draft that is already in progress")

	return cmd
}

// importMapping prefers --map pairs over the configured columns; nil means auto-detect
func importMapping(pairs []string, configured map[string]string) (importer.ColumnMapping, error) {
	if len(pairs) == 0 && len(configured) > 0 {
		for field, header := range configured {
			pairs = append(pairs, field+"="+header)
		}
	}
	if len(pairs) == 0 {
		return nil, nil
	}
	return importer.ParseMappingFlag(pairs)
}
