package services

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/exporter"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportDraft writes the draft to dir: one CSV for all assignments plus one per
// suite, or a single workbook. Returns the written paths.
func ExportDraft(state *draft.State, dir, format string, logger *zap.Logger) ([]string, error) {
	if state == nil {
		return nil, ErrNoDraft
	}

	var files []exporter.File
	switch format {
	case FormatCSV, "":
		csvs, err := exporter.AllCSVs(state)
		if err != nil {
			return nil, fmt.Errorf("failed to build csv export: %w", err)
		}
		files = csvs
	case FormatXLSX:
		workbook, err := exporter.Workbook(state)
		if err != nil {
			return nil, fmt.Errorf("failed to build workbook: %w", err)
		}
		files = []exporter.File{workbook}
	default:
		return nil, fmt.Errorf("unknown export format %q, expected csv or xlsx", format)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Content, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
		logger.Debug("Export written", zap.String("path", path), zap.Int("bytes", len(f.Content)))
		paths = append(paths, path)
	}

	logger.Info("Draft exported", zap.String("format", format), zap.String("dir", dir), zap.Int("files", len(paths)))
	return paths, nil
}
