package exporter

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
)

const (
	// WorkbookFileName is the name of the combined xlsx export
	WorkbookFileName = "suite_draft.xlsx"

	allAssignmentsSheet = "All Assignments"
	unassignedSheet     = "Unassigned"
)

// Workbook builds a single xlsx with an overview sheet, one sheet per suite in
// canonical order and a sheet for dancers still unassigned
func Workbook(state *draft.State) (File, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return File{}, fmt.Errorf("failed to create header style: %w", err)
	}

	all := make([][]string, 0, len(state.Dancers))
	for _, d := range state.Dancers {
		all = append(all, allAssignmentsRow(d))
	}
	if err := writeSheet(f, allAssignmentsSheet, allAssignmentsHeaders, all, headerStyle); err != nil {
		return File{}, err
	}

	for _, suite := range model.SuiteNames {
		dancers := state.RosterDancers(suite)
		rows := make([][]string, 0, len(dancers))
		for _, d := range dancers {
			rows = append(rows, suiteRow(d))
		}
		if err := writeSheet(f, string(suite), suiteHeaders, rows, headerStyle); err != nil {
			return File{}, err
		}
	}

	pool := state.UnassignedDancers()
	unassigned := make([][]string, 0, len(pool))
	for _, d := range pool {
		unassigned = append(unassigned, suiteRow(d))
	}
	if err := writeSheet(f, unassignedSheet, suiteHeaders, unassigned, headerStyle); err != nil {
		return File{}, err
	}

	// Drop the default sheet now that others exist
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return File{}, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(allAssignmentsSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return File{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	return File{Name: WorkbookFileName, Content: buf.Bytes()}, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s on %s: %w", cell, sheet, err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row on %s: %w", sheet, err)
	}

	return nil
}
