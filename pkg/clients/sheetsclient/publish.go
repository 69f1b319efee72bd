package sheetsclient

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
)

const unassignedColumn = "Unassigned"

// PublishedAssignments is the grid written to the publish tab: one column per suite
// in draft order, then the unassigned pool. Rows list members in pick order.
type PublishedAssignments struct {
	TabTitle string
	Header   []string
	Status   []string
	Rows     [][]string
}

// TabTitle names the publish tab after the day the draft started, e.g.
// "Suite Draft Sat Sep 06 2025"
func TabTitle(startedAt time.Time) string {
	return "Suite Draft " + startedAt.Format("Mon Jan 02 2006")
}

// BuildPublishedAssignments lays out the draft for publishing. An empty tabTitle
// is derived from the draft start date.
func BuildPublishedAssignments(state *draft.State, tabTitle string) PublishedAssignments {
	if tabTitle == "" {
		tabTitle = TabTitle(state.StartedAt)
	}

	columns := make([][]model.Dancer, 0, len(state.SuiteOrder)+1)
	header := make([]string, 0, len(state.SuiteOrder)+1)
	status := make([]string, 0, len(state.SuiteOrder)+1)

	for _, suite := range state.SuiteOrder {
		dancers := state.RosterDancers(suite)
		columns = append(columns, dancers)
		header = append(header, string(suite))

		s := countLabel(len(dancers))
		if state.Suites[suite].Finalized {
			s += ", final"
		}
		status = append(status, s)
	}

	unassigned := state.UnassignedDancers()
	columns = append(columns, unassigned)
	header = append(header, unassignedColumn)
	status = append(status, countLabel(len(unassigned)))

	depth := 0
	for _, col := range columns {
		depth = max(depth, len(col))
	}

	rows := make([][]string, depth)
	for i := range rows {
		rows[i] = make([]string, len(columns))
		for j, col := range columns {
			if i < len(col) {
				rows[i][j] = col[i].FullName
			}
		}
	}

	return PublishedAssignments{
		TabTitle: tabTitle,
		Header:   header,
		Status:   status,
		Rows:     rows,
	}
}

func countLabel(n int) string {
	if n == 1 {
		return "1 dancer"
	}
	return fmt.Sprintf("%d dancers", n)
}

// values renders the grid with the title in A1 and a one-row gap above the header
func (p PublishedAssignments) values() [][]interface{} {
	out := [][]interface{}{
		{p.TabTitle},
		{},
		toRow(p.Header),
		toRow(p.Status),
	}
	for _, row := range p.Rows {
		out = append(out, toRow(row))
	}
	return out
}

func toRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// PublishAssignments writes the grid to its tab, creating the tab if needed and
// replacing whatever a previous publish left there
func (c *Client) PublishAssignments(ctx context.Context, spreadsheetID string, published PublishedAssignments) error {
	exists, err := c.HasSheet(ctx, spreadsheetID, published.TabTitle)
	if err != nil {
		return err
	}

	tab := quoteSheet(published.TabTitle)
	if exists {
		if err := c.ClearValues(ctx, spreadsheetID, tab); err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else {
		if _, err := c.CreateSheet(ctx, spreadsheetID, published.TabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if err := c.UpdateValues(ctx, spreadsheetID, tab+"!A1", published.values()); err != nil {
		return fmt.Errorf("failed to write assignments: %w", err)
	}

	c.logger.Info("Assignments published",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("tab", published.TabTitle),
		zap.Bool("replaced", exists))

	return nil
}
