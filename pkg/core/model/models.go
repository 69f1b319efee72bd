package model

import (
	"strings"
	"unicode"
)

// Suite is one of the fixed groups dancers are drafted into.
// The empty Suite means "no suite".
type Suite string

const (
	SuiteMariaClara Suite = "Maria Clara"
	SuiteRural      Suite = "Rural"
	SuiteArnis      Suite = "Arnis"
	SuiteMindanao   Suite = "Mindanao"
	SuiteMasa       Suite = "Masa"
	SuiteEnsemble   Suite = "Ensemble"
)

// SuiteNames is the canonical suite list. Its order breaks ties in the draft order.
var SuiteNames = []Suite{
	SuiteMariaClara,
	SuiteRural,
	SuiteArnis,
	SuiteMindanao,
	SuiteMasa,
	SuiteEnsemble,
}

// IsValid reports whether s is one of the canonical suites
func (s Suite) IsValid() bool {
	return SuiteIndex(s) >= 0
}

// SuiteIndex returns the position of s in SuiteNames, or -1
func SuiteIndex(s Suite) int {
	for i, name := range SuiteNames {
		if name == s {
			return i
		}
	}
	return -1
}

// ParseSuite matches user input against the canonical suite names ignoring case,
// spaces and punctuation ("maria-clara", "MariaClara" and "maria clara" all match).
func ParseSuite(input string) (Suite, bool) {
	key := suiteKey(input)
	if key == "" {
		return "", false
	}
	for _, s := range SuiteNames {
		if suiteKey(string(s)) == key {
			return s, true
		}
	}
	return "", false
}

func suiteKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Preferences holds a dancer's ranked suite choices.
// Present values never repeat and never follow an empty slot.
type Preferences struct {
	First  Suite `json:"first,omitempty"`
	Second Suite `json:"second,omitempty"`
	Third  Suite `json:"third,omitempty"`
}

// Rank returns 1, 2 or 3 for the preference slot holding s, and 4 when s is not preferred
func (p Preferences) Rank(s Suite) int {
	switch {
	case s == "":
		return 4
	case p.First == s:
		return 1
	case p.Second == s:
		return 2
	case p.Third == s:
		return 3
	default:
		return 4
	}
}

// Slice returns the preferences in order, with empty slots as empty suites
func (p Preferences) Slice() []Suite {
	return []Suite{p.First, p.Second, p.Third}
}

// Dancer represents a roster member being drafted
type Dancer struct {
	ID            string      `json:"id"`
	FullName      string      `json:"fullName"`
	Prefs         Preferences `json:"suitePrefs"`
	RoleScore     float64     `json:"roleScore"`
	IsNew         bool        `json:"isNew"`
	AssignedSuite Suite       `json:"assignedSuite,omitempty"` // Empty while unassigned
}

// IsAssigned reports whether the dancer currently belongs to a suite
func (d Dancer) IsAssigned() bool {
	return d.AssignedSuite != ""
}

// RoleBucket returns the three-way bucket derived from the role score
func (d Dancer) RoleBucket() RoleBucket {
	return BucketForScore(d.RoleScore)
}
