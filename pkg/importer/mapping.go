package importer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// FieldKey names a dancer field that must be read from some column
type FieldKey string

const (
	FieldFullName  FieldKey = "fullName"
	FieldPref1     FieldKey = "pref1"
	FieldPref2     FieldKey = "pref2"
	FieldPref3     FieldKey = "pref3"
	FieldRoleScore FieldKey = "roleScore"
	FieldIsNew     FieldKey = "isNew"
)

// RequiredFields lists every field a mapping must cover, in display order
var RequiredFields = []FieldKey{
	FieldFullName,
	FieldPref1,
	FieldPref2,
	FieldPref3,
	FieldRoleScore,
	FieldIsNew,
}

// ColumnMapping maps each field to the header it is read from
type ColumnMapping map[FieldKey]string

// DefaultMapping is the column layout of the standard sign-up form export
var DefaultMapping = ColumnMapping{
	FieldFullName:  "Full Name",
	FieldPref1:     "1st Suite Preference",
	FieldPref2:     "2nd Suite Preference",
	FieldPref3:     "3rd Suite Preference",
	FieldRoleScore: "Role Preference Score",
	FieldIsNew:     "New to SPCN?",
}

// ErrMissingColumns is returned when a roster lacks the standard columns
var ErrMissingColumns = errors.New("missing required columns")

// MissingRequiredColumns returns the standard column names absent from headers
func MissingRequiredColumns(headers []string) []string {
	var missing []string
	for _, field := range RequiredFields {
		if h := DefaultMapping[field]; !slices.Contains(headers, h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// RequireDefaultColumns fails with ErrMissingColumns naming every absent standard column
func RequireDefaultColumns(headers []string) error {
	missing := MissingRequiredColumns(headers)
	if len(missing) == 0 {
		return nil
	}

	quoted := make([]string, len(missing))
	for i, h := range missing {
		quoted[i] = fmt.Sprintf("%q", h)
	}
	return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(quoted, ", "))
}

// AutoDetectMapping guesses a column for each field from loosely worded headers.
// Fields with no plausible header are left out of the result.
func AutoDetectMapping(headers []string) ColumnMapping {
	type header struct{ raw, norm string }
	normalized := make([]header, len(headers))
	for i, h := range headers {
		normalized[i] = header{raw: h, norm: normalizeHeader(h)}
	}

	find := func(preds ...func(string) bool) string {
		for _, pred := range preds {
			for _, h := range normalized {
				if pred(h.norm) {
					return h.raw
				}
			}
		}
		return ""
	}
	hasAll := func(tokens ...string) func(string) bool {
		return func(s string) bool {
			for _, t := range tokens {
				if !strings.Contains(s, t) {
					return false
				}
			}
			return true
		}
	}
	oneOf := func(values ...string) func(string) bool {
		return func(s string) bool {
			return slices.Contains(values, s)
		}
	}
	preference := func(digit, word, ordinal string) string {
		return find(hasAll(digit, "pref"), hasAll(word, "pref"), hasAll(ordinal, "pref"), hasAll(digit, "suite", "pref"))
	}

	candidates := map[FieldKey]string{
		FieldFullName:  find(hasAll("full", "name"), oneOf("name", "fullname", "full name")),
		FieldPref1:     preference("1", "first", "1st"),
		FieldPref2:     preference("2", "second", "2nd"),
		FieldPref3:     preference("3", "third", "3rd"),
		FieldRoleScore: find(hasAll("role", "score"), hasAll("m", "f", "score"), hasAll("mf", "score")),
		FieldIsNew: find(
			oneOf("new", "new to spcn"),
			hasAll("new", "spcn"),
			func(s string) bool { return strings.Contains(s, "new") || strings.Contains(s, "returning") },
		),
	}

	mapping := make(ColumnMapping, len(candidates))
	for field, h := range candidates {
		if h != "" {
			mapping[field] = h
		}
	}
	return mapping
}

// ValidateMapping checks that every field is mapped to an existing header and that
// no header is used twice. All problems are reported together.
func ValidateMapping(mapping ColumnMapping, headers []string) error {
	var errs []error

	for _, field := range RequiredFields {
		h := mapping[field]
		if h == "" {
			errs = append(errs, fmt.Errorf("missing mapping for %s", field))
			continue
		}
		if !slices.Contains(headers, h) {
			errs = append(errs, fmt.Errorf("mapped header for %s not found: %s", field, h))
		}
	}

	var chosen, dups []string
	for _, field := range RequiredFields {
		h := mapping[field]
		if h == "" {
			continue
		}
		if slices.Contains(chosen, h) && !slices.Contains(dups, h) {
			dups = append(dups, h)
		}
		chosen = append(chosen, h)
	}
	if len(dups) > 0 {
		errs = append(errs, fmt.Errorf("duplicate column selections: %s", strings.Join(dups, ", ")))
	}

	return errors.Join(errs...)
}

// SelectMapping picks the mapping used to read a table.
// An explicit mapping is validated as given. Otherwise the standard layout is used
// when every standard column is present, and header auto-detection when not.
func SelectMapping(explicit ColumnMapping, headers []string) (ColumnMapping, error) {
	if len(explicit) > 0 {
		if err := ValidateMapping(explicit, headers); err != nil {
			return nil, fmt.Errorf("invalid column mapping: %w", err)
		}
		return explicit, nil
	}

	if len(MissingRequiredColumns(headers)) == 0 {
		return DefaultMapping, nil
	}

	detected := AutoDetectMapping(headers)
	if err := ValidateMapping(detected, headers); err != nil {
		return nil, fmt.Errorf("%w: %w", RequireDefaultColumns(headers), err)
	}
	return detected, nil
}

// ParseMappingFlag reads "field=Header" pairs such as "fullName=Name"
func ParseMappingFlag(pairs []string) (ColumnMapping, error) {
	mapping := make(ColumnMapping, len(pairs))
	for _, pair := range pairs {
		field, header, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid mapping %q, expected field=Header", pair)
		}
		key := FieldKey(strings.TrimSpace(field))
		if !slices.Contains(RequiredFields, key) {
			return nil, fmt.Errorf("unknown mapping field %q", field)
		}
		mapping[key] = strings.TrimSpace(header)
	}
	return mapping, nil
}
