package importer

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/spcn/suite-draft/pkg/core/model"
)

var (
	parenthesized  = regexp.MustCompile(`\(.*?\)`)
	nonLetters     = regexp.MustCompile(`[^a-z\s]`)
	nonAlnum       = regexp.MustCompile(`[^a-z0-9\s]`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// ignorablePreferences are labels that may appear in preference columns but are
// not draftable suites
var ignorablePreferences = []string{"script", "ensemble"}

// suiteAliases maps each preference-eligible suite to the normalized text that identifies it.
// Ensemble is drafted into but never listed as a preference.
var suiteAliases = []struct {
	suite   model.Suite
	aliases []string
}{
	{model.SuiteMariaClara, []string{"maria clara"}},
	{model.SuiteRural, []string{"rural"}},
	{model.SuiteArnis, []string{"arnis"}},
	{model.SuiteMindanao, []string{"mindanao"}},
	{model.SuiteMasa, []string{"masa"}},
}

// stripMarks removes combining diacritics ("María" becomes "Maria")
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// normalizeHeader folds a column header for token matching
func normalizeHeader(h string) string {
	s := strings.ToLower(stripMarks(h))
	s = nonAlnum.ReplaceAllString(s, " ")
	s = repeatedSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeSuiteName maps a free-form preference cell to a suite.
// Descriptions in parentheses, accents and punctuation are ignored. Blank cells,
// ignorable labels and unrecognised text all map to the empty Suite.
func NormalizeSuiteName(raw string) model.Suite {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	for _, entry := range suiteAliases {
		if string(entry.suite) == trimmed {
			return entry.suite
		}
	}

	s := stripMarks(trimmed)
	s = parenthesized.ReplaceAllString(s, "")
	s = nonLetters.ReplaceAllString(strings.ToLower(s), " ")
	s = strings.TrimSpace(repeatedSpaces.ReplaceAllString(s, " "))

	for _, label := range ignorablePreferences {
		if strings.Contains(s, label) || strings.ToLower(trimmed) == label {
			return ""
		}
	}

	for _, entry := range suiteAliases {
		for _, alias := range entry.aliases {
			if strings.Contains(s, alias) {
				return entry.suite
			}
		}
	}

	return ""
}

// CompactPreferences drops empty and repeated slots and shifts the rest left,
// so a present preference never follows an absent one
func CompactPreferences(first, second, third model.Suite) model.Preferences {
	ordered := make([]model.Suite, 0, 3)
	for _, s := range []model.Suite{first, second, third} {
		if s != "" && !slices.Contains(ordered, s) {
			ordered = append(ordered, s)
		}
	}

	var prefs model.Preferences
	if len(ordered) > 0 {
		prefs.First = ordered[0]
	}
	if len(ordered) > 1 {
		prefs.Second = ordered[1]
	}
	if len(ordered) > 2 {
		prefs.Third = ordered[2]
	}
	return prefs
}
