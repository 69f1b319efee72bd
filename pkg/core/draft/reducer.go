package draft

import (
	"fmt"
	"slices"

	"github.com/spcn/suite-draft/pkg/core/model"
)

// Reduce applies an action and returns the resulting state.
// It never mutates its input. Actions that change nothing return the input pointer,
// so callers can detect no-ops with ==. A nil state means "no active draft".
func Reduce(state *State, action Action) *State {
	switch a := action.(type) {
	case Initialize:
		return initialize(a)
	case Hydrate:
		return hydrate(a)
	case Reset:
		return nil
	}

	if state == nil {
		return nil
	}

	switch a := action.(type) {
	case AssignToSuite:
		return assignToSuite(state, a.Suite, a.DancerIDs)
	case AdvanceTurn:
		return advanceTurn(state)
	case ManualAssign:
		if !state.IsUnassigned(a.DancerID) {
			return state
		}
		return assignToSuite(state, a.Suite, []string{a.DancerID})
	case MoveDancer:
		return moveDancer(state, a.DancerID, a.To)
	case UnassignDancer:
		return unassignDancer(state, a.DancerID)
	case FinalizeSuite:
		return finalizeSuite(state, a.Suite)
	default:
		panic(fmt.Sprintf("draft: unhandled action %T", action))
	}
}

// initialize builds a fresh draft. Any assignment carried by the input is dropped.
func initialize(a Initialize) *State {
	dancers := make([]model.Dancer, len(a.Dancers))
	unassigned := make([]string, len(a.Dancers))
	for i, d := range a.Dancers {
		d.AssignedSuite = ""
		dancers[i] = d
		unassigned[i] = d.ID
	}

	suites := make(map[model.Suite]SuiteRoster, len(model.SuiteNames))
	for _, suite := range model.SuiteNames {
		suites[suite] = SuiteRoster{IDs: []string{}}
	}

	return &State{
		Dancers:       dancers,
		UnassignedIDs: unassigned,
		Suites:        suites,
		SuiteOrder:    ComputeSuiteOrder(dancers),
		TurnIndex:     0,
		StartedAt:     a.StartedAt,
	}
}

// hydrate adopts a saved state and migrates it forward: suites added to the
// canonical list since the save get an empty roster and join the end of the order.
// Order entries with no roster are dropped and the turn stays on the same suite,
// or the next surviving one when the current suite was dropped.
func hydrate(a Hydrate) *State {
	next := a.State.Clone()
	if next == nil {
		return nil
	}

	if next.Suites == nil {
		next.Suites = make(map[model.Suite]SuiteRoster, len(model.SuiteNames))
	}
	for _, suite := range model.SuiteNames {
		roster, ok := next.Suites[suite]
		if !ok {
			next.Suites[suite] = SuiteRoster{IDs: []string{}}
			continue
		}
		if roster.IDs == nil {
			roster.IDs = []string{}
			next.Suites[suite] = roster
		}
	}

	next.SuiteOrder, next.TurnIndex = pruneSuiteOrder(next.SuiteOrder, next.Suites, next.TurnIndex)

	if len(next.SuiteOrder) == 0 {
		next.SuiteOrder = ComputeSuiteOrder(next.Dancers)
	}
	for _, suite := range model.SuiteNames {
		if !slices.Contains(next.SuiteOrder, suite) {
			next.SuiteOrder = append(next.SuiteOrder, suite)
		}
	}

	next.TurnIndex = min(max(next.TurnIndex, 0), max(len(next.SuiteOrder)-1, 0))

	if next.UnassignedIDs == nil {
		next.UnassignedIDs = []string{}
	}

	return next
}

// pruneSuiteOrder keeps the first occurrence of each suite that has a roster and
// shifts turn left by the number of entries removed ahead of it
func pruneSuiteOrder(order []model.Suite, suites map[model.Suite]SuiteRoster, turn int) ([]model.Suite, int) {
	kept := make([]model.Suite, 0, len(order))
	shifted := turn
	for i, suite := range order {
		_, known := suites[suite]
		if known && !slices.Contains(kept, suite) {
			kept = append(kept, suite)
			continue
		}
		if i < turn {
			shifted--
		}
	}
	return kept, shifted
}

func assignToSuite(state *State, suite model.Suite, dancerIDs []string) *State {
	if len(dancerIDs) == 0 {
		return state
	}
	if _, ok := state.Suites[suite]; !ok {
		return state
	}

	// Keep caller order, drop duplicates and anything not in the pool
	ids := make([]string, 0, len(dancerIDs))
	picked := make(map[string]bool, len(dancerIDs))
	for _, id := range dancerIDs {
		if picked[id] || !state.IsUnassigned(id) {
			continue
		}
		picked[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return state
	}

	next := state.Clone()
	for i := range next.Dancers {
		if picked[next.Dancers[i].ID] {
			next.Dancers[i].AssignedSuite = suite
		}
	}

	roster := next.Suites[suite]
	roster.IDs = append(roster.IDs, ids...)
	next.Suites[suite] = roster

	next.UnassignedIDs = slices.DeleteFunc(next.UnassignedIDs, func(id string) bool {
		return picked[id]
	})

	return next
}

func advanceTurn(state *State) *State {
	idx := NextActiveIndex(state, state.TurnIndex+1)
	if idx == state.TurnIndex {
		return state
	}

	next := state.Clone()
	next.TurnIndex = idx
	return next
}

func moveDancer(state *State, dancerID string, to model.Suite) *State {
	i := state.dancerIndex(dancerID)
	if i < 0 {
		return state
	}

	from := state.Dancers[i].AssignedSuite
	if to == from {
		return state
	}
	if to != "" {
		if _, ok := state.Suites[to]; !ok {
			return state
		}
	}

	next := state.Clone()
	next.Dancers[i].AssignedSuite = to

	removeFromRoster(next, from, dancerID)

	if to != "" {
		roster := next.Suites[to]
		if !slices.Contains(roster.IDs, dancerID) {
			roster.IDs = append(roster.IDs, dancerID)
		}
		next.Suites[to] = roster

		next.UnassignedIDs = slices.DeleteFunc(next.UnassignedIDs, func(id string) bool {
			return id == dancerID
		})
	} else if !slices.Contains(next.UnassignedIDs, dancerID) {
		next.UnassignedIDs = append(next.UnassignedIDs, dancerID)
	}

	return next
}

func unassignDancer(state *State, dancerID string) *State {
	i := state.dancerIndex(dancerID)
	if i < 0 {
		return state
	}

	from := state.Dancers[i].AssignedSuite
	if from == "" && state.IsUnassigned(dancerID) {
		return state
	}

	next := state.Clone()
	next.Dancers[i].AssignedSuite = ""
	removeFromRoster(next, from, dancerID)

	if !slices.Contains(next.UnassignedIDs, dancerID) {
		next.UnassignedIDs = append(next.UnassignedIDs, dancerID)
	}

	return next
}

func finalizeSuite(state *State, suite model.Suite) *State {
	roster, ok := state.Suites[suite]
	if !ok {
		return state
	}

	onTheClock := state.TurnIndex >= 0 && state.TurnIndex < len(state.SuiteOrder) &&
		state.SuiteOrder[state.TurnIndex] == suite
	if roster.Finalized && !onTheClock {
		return state
	}

	next := state.Clone()
	roster = next.Suites[suite]
	roster.Finalized = true
	next.Suites[suite] = roster

	// Finalizing the suite on the clock hands the turn on
	if onTheClock {
		next.TurnIndex = NextActiveIndex(next, state.TurnIndex+1)
	}

	return next
}

func removeFromRoster(state *State, suite model.Suite, dancerID string) {
	if suite == "" {
		return
	}
	roster, ok := state.Suites[suite]
	if !ok {
		return
	}
	roster.IDs = slices.DeleteFunc(roster.IDs, func(id string) bool {
		return id == dancerID
	})
	state.Suites[suite] = roster
}
