package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a header row plus data rows keyed by header
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// ReadCSV reads a comma-separated roster export. Headers are trimmed, blank lines
// are skipped and short rows leave the missing cells empty.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return tableFromRecords(records)
}

// ReadXLSX reads the first sheet of an Excel workbook
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheetName, err)
	}

	return tableFromRecords(rows)
}

// TableFromValues builds a table from a grid of cells, first row as headers.
// Used for sources that hand back untyped cell values such as the Sheets API.
func TableFromValues(values [][]any) (*Table, error) {
	records := make([][]string, len(values))
	for i, row := range values {
		records[i] = make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				records[i][j] = fmt.Sprint(cell)
			}
		}
	}
	return tableFromRecords(records)
}

func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New("roster has no header row")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	table := &Table{Headers: headers, Rows: make([]map[string]string, 0, len(records)-1)}
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}

		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
