package recommender

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
)

func dancer(id, name string, prefs ...model.Suite) model.Dancer {
	d := model.Dancer{ID: id, FullName: name}
	if len(prefs) > 0 {
		d.Prefs.First = prefs[0]
	}
	if len(prefs) > 1 {
		d.Prefs.Second = prefs[1]
	}
	if len(prefs) > 2 {
		d.Prefs.Third = prefs[2]
	}
	return d
}

func startDraft(dancers ...model.Dancer) *draft.State {
	return draft.Reduce(nil, draft.Initialize{Dancers: dancers, StartedAt: time.Unix(0, 0).UTC()})
}

func names(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Dancer.FullName
	}
	return out
}

func TestWeightsAreStrictlyOrdered(t *testing.T) {
	assert.Greater(t, WeightFirstPreference, WeightSecondPreference)
	assert.Greater(t, WeightSecondPreference, WeightThirdPreference)
	assert.Greater(t, WeightThirdPreference, WeightBaseline)
	assert.Greater(t, WeightBaseline, 0.0)
}

func TestScore(t *testing.T) {
	d := dancer("a", "Alma", model.SuiteRural, model.SuiteArnis, model.SuiteMasa)

	assert.Equal(t, WeightFirstPreference, Score(d, model.SuiteRural))
	assert.Equal(t, WeightSecondPreference, Score(d, model.SuiteArnis))
	assert.Equal(t, WeightThirdPreference, Score(d, model.SuiteMasa))
	assert.Equal(t, WeightBaseline, Score(d, model.SuiteMindanao))
	assert.Equal(t, WeightBaseline, Score(dancer("b", "Bea"), model.SuiteRural))
}

func TestBuildRecommendations_Ordering(t *testing.T) {
	state := startDraft(
		dancer("1", "zoe Cruz", model.SuiteArnis),
		dancer("2", "Ana Lim", model.SuiteMasa, model.SuiteRural),
		dancer("3", "Carlo Dizon", model.SuiteRural),
		dancer("4", "ben Tan", model.SuiteRural, model.SuiteMasa),
		dancer("5", "Dina Uy", model.SuiteMasa, model.SuiteArnis, model.SuiteRural),
		dancer("6", "Aaron Go"),
	)

	recs := BuildRecommendations(state, model.SuiteRural, 3)

	assert.Equal(t, model.SuiteRural, recs.Suite)
	assert.Equal(t, []string{
		"ben Tan",     // first
		"Carlo Dizon", // first
		"Ana Lim",     // second
		"Dina Uy",     // third
		"Aaron Go",    // baseline
		"zoe Cruz",    // baseline
	}, names(recs.AllCandidates))
	assert.Equal(t, []string{"ben Tan", "Carlo Dizon", "Ana Lim"}, names(recs.TopPicks))
	assert.Equal(t, 1, recs.AllCandidates[0].PrefRank)
	assert.Equal(t, 4, recs.AllCandidates[5].PrefRank)
	assert.Equal(t, [4]int{2, 1, 1, 2}, recs.RankCounts())
}

func TestBuildRecommendations_OnlyUnassigned(t *testing.T) {
	state := startDraft(
		dancer("1", "Alma", model.SuiteRural),
		dancer("2", "Bea", model.SuiteRural),
		dancer("3", "Cris", model.SuiteRural),
	)
	state = draft.Reduce(state, draft.AssignToSuite{Suite: model.SuiteArnis, DancerIDs: []string{"2"}})

	recs := BuildRecommendations(state, model.SuiteRural, 10)

	assert.Equal(t, []string{"Alma", "Cris"}, names(recs.AllCandidates))
}

func TestBuildRecommendations_DefaultCap(t *testing.T) {
	dancers := make([]model.Dancer, 25)
	for i := range dancers {
		dancers[i] = dancer(fmt.Sprint(i), fmt.Sprintf("Dancer %02d", i), model.SuiteMasa)
	}

	recs := BuildRecommendations(startDraft(dancers...), model.SuiteMasa, 0)

	assert.Len(t, recs.TopPicks, DefaultPicksPerTurn)
	assert.Len(t, recs.AllCandidates, 25)
	assert.Equal(t, recs.AllCandidates[:DefaultPicksPerTurn], recs.TopPicks)
}

func TestBuildRecommendations_CapLargerThanPool(t *testing.T) {
	state := startDraft(dancer("1", "Alma"), dancer("2", "Bea"))

	recs := BuildRecommendations(state, model.SuiteMasa, 10)

	assert.Len(t, recs.TopPicks, 2)
}

func TestBuildRecommendations_EmptyPoolAndNoDraft(t *testing.T) {
	state := startDraft(dancer("1", "Alma"))
	state = draft.Reduce(state, draft.AssignToSuite{Suite: model.SuiteMasa, DancerIDs: []string{"1"}})

	recs := BuildRecommendations(state, model.SuiteMasa, 10)
	assert.NotNil(t, recs.TopPicks)
	assert.Empty(t, recs.AllCandidates)

	recs = BuildRecommendations(nil, model.SuiteMasa, 10)
	assert.Empty(t, recs.TopPicks)
	assert.Empty(t, recs.AllCandidates)
}

func TestBuildRecommendations_TiesResolvedByIDForIdenticalNames(t *testing.T) {
	state := startDraft(
		dancer("b", "Sam Reyes", model.SuiteArnis),
		dancer("a", "Sam Reyes", model.SuiteArnis),
	)

	recs := BuildRecommendations(state, model.SuiteArnis, 10)

	require.Len(t, recs.AllCandidates, 2)
	assert.Equal(t, "a", recs.AllCandidates[0].Dancer.ID)
	assert.Equal(t, "b", recs.AllCandidates[1].Dancer.ID)
}

func TestBuildRecommendations_Deterministic(t *testing.T) {
	dancers := make([]model.Dancer, 40)
	for i := range dancers {
		first := model.SuiteNames[i%len(model.SuiteNames)]
		second := model.SuiteNames[(i+2)%len(model.SuiteNames)]
		dancers[i] = dancer(fmt.Sprintf("id-%02d", i), fmt.Sprintf("Name %d", (i*7)%13), first, second)
	}
	state := startDraft(dancers...)

	for _, suite := range model.SuiteNames {
		first := BuildRecommendations(state, suite, 10)
		second := BuildRecommendations(state, suite, 10)
		assert.Equal(t, first, second, suite)
	}
}

func TestBuildRecommendations_ScoreNonIncreasingNamesNonDecreasing(t *testing.T) {
	dancers := make([]model.Dancer, 30)
	for i := range dancers {
		first := model.SuiteNames[(i*5)%len(model.SuiteNames)]
		dancers[i] = dancer(fmt.Sprint(i), fmt.Sprintf("member %c", 'a'+rune(i%26)), first)
	}
	state := startDraft(dancers...)
	collator := collate.New(language.Und, collate.IgnoreCase)

	recs := BuildRecommendations(state, model.SuiteMindanao, 5)

	for i := 1; i < len(recs.AllCandidates); i++ {
		prev, cur := recs.AllCandidates[i-1], recs.AllCandidates[i]
		require.GreaterOrEqual(t, prev.Score, cur.Score)
		if prev.Score == cur.Score {
			require.LessOrEqual(t, collator.CompareString(prev.Dancer.FullName, cur.Dancer.FullName), 0)
		}
	}
}

func TestBuildRecommendations_DoesNotAliasState(t *testing.T) {
	state := startDraft(dancer("1", "Alma", model.SuiteRural))

	recs := BuildRecommendations(state, model.SuiteRural, 10)
	recs.AllCandidates[0].Dancer.FullName = "changed"

	d, _ := state.Dancer("1")
	assert.Equal(t, "Alma", d.FullName)
}
