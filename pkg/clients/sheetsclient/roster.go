package sheetsclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/importer"
)

// ReadRosterTable reads the roster tab (the first tab when tab is empty) into a table
// with the first row as headers
func (c *Client) ReadRosterTable(ctx context.Context, spreadsheetID, tab string) (*importer.Table, error) {
	sheetRange := "A:ZZ"
	if tab != "" {
		sheetRange = quoteSheet(tab) + "!A:ZZ"
	}

	values, err := c.GetValues(ctx, spreadsheetID, sheetRange)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}

	table, err := importer.TableFromValues(values)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster sheet: %w", err)
	}

	c.logger.Debug("Roster sheet read",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("tab", tab),
		zap.Int("rows", len(table.Rows)))

	return table, nil
}
