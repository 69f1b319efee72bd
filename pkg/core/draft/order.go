package draft

import (
	"cmp"
	"slices"

	"github.com/spcn/suite-draft/pkg/core/model"
)

// ComputeSuiteOrder returns every canonical suite sorted by how many dancers hold it
// as their first preference, fewest first. Less popular suites pick first so that
// in-demand suites still draft from a large pool. Ties keep canonical order.
func ComputeSuiteOrder(dancers []model.Dancer) []model.Suite {
	firstPrefCounts := make(map[model.Suite]int, len(model.SuiteNames))
	for _, d := range dancers {
		if d.Prefs.First.IsValid() {
			firstPrefCounts[d.Prefs.First]++
		}
	}

	order := slices.Clone(model.SuiteNames)
	slices.SortStableFunc(order, func(a, b model.Suite) int {
		return cmp.Compare(firstPrefCounts[a], firstPrefCounts[b])
	})

	return order
}

// NextActiveIndex scans SuiteOrder circularly from `from` (inclusive) for one lap
// and returns the first index whose suite is not finalized. When every suite is
// finalized the current TurnIndex is returned unchanged.
func NextActiveIndex(state *State, from int) int {
	n := len(state.SuiteOrder)
	if n == 0 {
		return state.TurnIndex
	}

	start := ((from % n) + n) % n
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if !state.Suites[state.SuiteOrder[idx]].Finalized {
			return idx
		}
	}

	return state.TurnIndex
}

// IsComplete reports whether every suite in the draft order is finalized
func IsComplete(state *State) bool {
	if state == nil {
		return false
	}
	for _, suite := range state.SuiteOrder {
		if !state.Suites[suite].Finalized {
			return false
		}
	}
	return true
}

// ActiveSuite resolves whose turn it is. If the pointer rests on a finalized suite
// the next open suite (wrapping around) is returned instead; the pointer itself
// only moves on AdvanceTurn. Returns false when there is no draft or every suite
// is finalized.
func ActiveSuite(state *State) (model.Suite, bool) {
	if state == nil || len(state.SuiteOrder) == 0 || IsComplete(state) {
		return "", false
	}

	idx := NextActiveIndex(state, state.TurnIndex)
	return state.SuiteOrder[idx], true
}
