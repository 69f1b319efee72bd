package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
)

// File is an exported document ready to be written out
type File struct {
	Name    string
	Content []byte
}

// AllAssignmentsFileName is the name of the roster-wide export
const AllAssignmentsFileName = "all_assignments.csv"

var allAssignmentsHeaders = []string{
	"Full Name",
	"Assigned Suite",
	"1st Suite Preference",
	"2nd Suite Preference",
	"3rd Suite Preference",
	"Role Preference Score",
	"New to SPCN?",
}

var suiteHeaders = []string{
	"Full Name",
	"Role Preference Score",
	"New to SPCN?",
	"1st Suite Preference",
	"2nd Suite Preference",
	"3rd Suite Preference",
}

// AllAssignmentsCSV lists every dancer in import order with their assigned suite
func AllAssignmentsCSV(state *draft.State) (File, error) {
	rows := make([][]string, 0, len(state.Dancers))
	for _, d := range state.Dancers {
		rows = append(rows, allAssignmentsRow(d))
	}

	content, err := encodeCSV(allAssignmentsHeaders, rows)
	if err != nil {
		return File{}, err
	}
	return File{Name: AllAssignmentsFileName, Content: content}, nil
}

// SuiteCSV lists a suite's dancers in pick order
func SuiteCSV(state *draft.State, suite model.Suite) (File, error) {
	dancers := state.RosterDancers(suite)
	rows := make([][]string, 0, len(dancers))
	for _, d := range dancers {
		rows = append(rows, suiteRow(d))
	}

	content, err := encodeCSV(suiteHeaders, rows)
	if err != nil {
		return File{}, err
	}
	return File{Name: SuiteFileName(suite), Content: content}, nil
}

// SuiteFileName returns e.g. suite_maria_clara.csv
func SuiteFileName(suite model.Suite) string {
	return "suite_" + strings.Join(strings.Fields(strings.ToLower(string(suite))), "_") + ".csv"
}

// AllCSVs returns the roster-wide file followed by one file per suite in canonical order
func AllCSVs(state *draft.State) ([]File, error) {
	all, err := AllAssignmentsCSV(state)
	if err != nil {
		return nil, err
	}

	files := []File{all}
	for _, suite := range model.SuiteNames {
		f, err := SuiteCSV(state, suite)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func allAssignmentsRow(d model.Dancer) []string {
	return []string{
		d.FullName,
		string(d.AssignedSuite),
		string(d.Prefs.First),
		string(d.Prefs.Second),
		string(d.Prefs.Third),
		formatScore(d.RoleScore),
		formatBool(d.IsNew),
	}
}

func suiteRow(d model.Dancer) []string {
	return []string{
		d.FullName,
		formatScore(d.RoleScore),
		formatBool(d.IsNew),
		string(d.Prefs.First),
		string(d.Prefs.Second),
		string(d.Prefs.Third),
	}
}

func encodeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV rows: %w", err)
	}

	return buf.Bytes(), nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
