package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/model"
	"github.com/spcn/suite-draft/pkg/importer"
)

// RosterSource yields the raw roster table
type RosterSource interface {
	ReadTable(ctx context.Context) (*importer.Table, error)
	String() string
}

// FileRosterSource reads a .csv or .xlsx roster export from disk
type FileRosterSource struct {
	Path string
}

func (s FileRosterSource) String() string { return s.Path }

// ReadTable picks the reader from the file extension; anything but .xlsx/.xlsm is read as CSV
func (s FileRosterSource) ReadTable(ctx context.Context) (*importer.Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".xlsx", ".xlsm":
		return importer.ReadXLSX(f)
	default:
		return importer.ReadCSV(f)
	}
}

// RosterSheetReader reads a roster tab from Google Sheets
type RosterSheetReader interface {
	ReadRosterTable(ctx context.Context, spreadsheetID, tab string) (*importer.Table, error)
}

// SheetRosterSource reads the roster from a spreadsheet tab
type SheetRosterSource struct {
	Reader        RosterSheetReader
	SpreadsheetID string
	Tab           string
}

func (s SheetRosterSource) String() string {
	if s.Tab == "" {
		return "sheet " + s.SpreadsheetID
	}
	return fmt.Sprintf("sheet %s (%s)", s.SpreadsheetID, s.Tab)
}

func (s SheetRosterSource) ReadTable(ctx context.Context) (*importer.Table, error) {
	return s.Reader.ReadRosterTable(ctx, s.SpreadsheetID, s.Tab)
}

// ImportResult is a parsed roster and the mapping used to read it
type ImportResult struct {
	Dancers []model.Dancer
	Mapping importer.ColumnMapping
}

// ImportRoster reads the source, settles on a column mapping and parses every row.
// Any row error fails the whole import.
func ImportRoster(ctx context.Context, source RosterSource, explicit importer.ColumnMapping, logger *zap.Logger) (*ImportResult, error) {
	logger.Debug("Importing roster", zap.Stringer("source", source))

	table, err := source.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	logger.Debug("Roster table read",
		zap.Strings("headers", table.Headers),
		zap.Int("rows", len(table.Rows)))

	mapping, err := importer.SelectMapping(explicit, table.Headers)
	if err != nil {
		return nil, err
	}
	for _, field := range importer.RequiredFields {
		logger.Debug("Column mapped", zap.String("field", string(field)), zap.String("header", mapping[field]))
	}

	dancers, err := importer.ParseDancers(table, mapping, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	logger.Info("Roster imported", zap.Stringer("source", source), zap.Int("dancers", len(dancers)))

	return &ImportResult{Dancers: dancers, Mapping: mapping}, nil
}
