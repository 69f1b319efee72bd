package importer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/spcn/suite-draft/pkg/core/model"
)

var (
	// ErrMissingFullName is returned when a row has a blank name
	ErrMissingFullName = errors.New("full name is required for every dancer")

	// ErrInvalidRoleScore is returned when a role score cell is not a number
	ErrInvalidRoleScore = errors.New("role preference score must be numeric")
)

// ParseDancers converts every row of the table into a dancer using mapping.
// Any bad row fails the whole parse; no partial roster is returned.
// newID may be nil, in which case random UUIDs are used.
func ParseDancers(table *Table, mapping ColumnMapping, newID func() string) ([]model.Dancer, error) {
	if newID == nil {
		newID = uuid.NewString
	}

	dancers := make([]model.Dancer, 0, len(table.Rows))
	for i, row := range table.Rows {
		// Row numbers as seen in a spreadsheet, header being row 1
		rowNum := i + 2

		fullName := strings.TrimSpace(row[mapping[FieldFullName]])
		if fullName == "" {
			return nil, fmt.Errorf("row %d: %w", rowNum, ErrMissingFullName)
		}

		roleScore, err := parseRoleScore(row[mapping[FieldRoleScore]])
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", rowNum, fullName, err)
		}

		dancers = append(dancers, model.Dancer{
			ID:       newID(),
			FullName: fullName,
			Prefs: CompactPreferences(
				NormalizeSuiteName(row[mapping[FieldPref1]]),
				NormalizeSuiteName(row[mapping[FieldPref2]]),
				NormalizeSuiteName(row[mapping[FieldPref3]]),
			),
			RoleScore: roleScore,
			IsNew:     parseBool(row[mapping[FieldIsNew]]),
		})
	}

	return dancers, nil
}

// parseRoleScore accepts any decimal number; a blank cell is 0
func parseRoleScore(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}

	score, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("%w, received %q", ErrInvalidRoleScore, raw)
	}
	return score, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true":
		return true
	default:
		return false
	}
}
