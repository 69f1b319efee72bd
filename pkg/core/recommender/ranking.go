package recommender

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
)

// Candidate is an unassigned dancer scored for one suite
type Candidate struct {
	Dancer model.Dancer

	// Score is the preference weight of the suite for this dancer
	Score float64

	// PrefRank is 1, 2 or 3 for the preference slot holding the suite, 4 when unlisted
	PrefRank int
}

// Recommendations are two views over the same ranked sequence
type Recommendations struct {
	Suite model.Suite

	// TopPicks is the leading slice of AllCandidates, at most the pick cap long
	TopPicks []Candidate

	// AllCandidates is every unassigned dancer, best first
	AllCandidates []Candidate
}

// Score returns the weight of suite for the dancer based on where it sits in their preferences
func Score(dancer model.Dancer, suite model.Suite) float64 {
	return weightForRank(dancer.Prefs.Rank(suite))
}

// BuildRecommendations ranks every unassigned dancer for suite.
// Order: score descending, then full name ascending ignoring case, then raw name and id
// so the result is fully determined by the state. A pickCap of zero or less uses
// DefaultPicksPerTurn.
func BuildRecommendations(state *draft.State, suite model.Suite, pickCap int) Recommendations {
	recs := Recommendations{
		Suite:         suite,
		TopPicks:      []Candidate{},
		AllCandidates: []Candidate{},
	}
	if state == nil {
		return recs
	}
	if pickCap <= 0 {
		pickCap = DefaultPicksPerTurn
	}

	pool := state.UnassignedDancers()
	candidates := make([]Candidate, 0, len(pool))
	for _, d := range pool {
		rank := d.Prefs.Rank(suite)
		candidates = append(candidates, Candidate{
			Dancer:   d,
			Score:    weightForRank(rank),
			PrefRank: rank,
		})
	}

	names := collate.New(language.Und, collate.IgnoreCase)
	slices.SortFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := names.CompareString(a.Dancer.FullName, b.Dancer.FullName); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Dancer.FullName, b.Dancer.FullName); c != 0 {
			return c
		}
		return cmp.Compare(a.Dancer.ID, b.Dancer.ID)
	})

	recs.AllCandidates = candidates
	recs.TopPicks = slices.Clone(candidates[:min(pickCap, len(candidates))])
	return recs
}

// RankCounts returns how many candidates hold the suite at each preference rank (index 0 = first)
func (r Recommendations) RankCounts() [4]int {
	var counts [4]int
	for _, c := range r.AllCandidates {
		counts[c.PrefRank-1]++
	}
	return counts
}
