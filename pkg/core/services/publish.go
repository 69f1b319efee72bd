package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/clients/sheetsclient"
	"github.com/spcn/suite-draft/pkg/core/draft"
)

// AssignmentPublisher writes a published grid to a spreadsheet
type AssignmentPublisher interface {
	PublishAssignments(ctx context.Context, spreadsheetID string, published sheetsclient.PublishedAssignments) error
}

// PublishDraft lays out the current assignments and writes them to the spreadsheet.
// An empty tabTitle names the tab after the draft start date.
func PublishDraft(
	ctx context.Context,
	publisher AssignmentPublisher,
	spreadsheetID string,
	state *draft.State,
	tabTitle string,
	logger *zap.Logger,
) (*sheetsclient.PublishedAssignments, error) {
	if state == nil {
		return nil, ErrNoDraft
	}
	if spreadsheetID == "" {
		return nil, errors.New("no publish spreadsheet configured")
	}

	published := sheetsclient.BuildPublishedAssignments(state, tabTitle)
	logger.Debug("Publishing assignments",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("tab", published.TabTitle),
		zap.Int("rows", len(published.Rows)))

	if err := publisher.PublishAssignments(ctx, spreadsheetID, published); err != nil {
		return nil, fmt.Errorf("failed to publish assignments: %w", err)
	}

	return &published, nil
}
