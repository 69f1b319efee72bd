package draft

import (
	"fmt"
	"time"

	"github.com/spcn/suite-draft/pkg/core/model"
)

var testStart = time.Date(2025, 9, 6, 18, 0, 0, 0, time.UTC)

// newDancer builds a dancer with compacted preferences
func newDancer(id, name string, prefs ...model.Suite) model.Dancer {
	d := model.Dancer{ID: id, FullName: name, RoleScore: 5}
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

// newRoster builds n dancers cycling first preferences through the canonical list
func newRoster(n int) []model.Dancer {
	dancers := make([]model.Dancer, n)
	for i := range dancers {
		first := model.SuiteNames[i%5]
		second := model.SuiteNames[(i+1)%5]
		dancers[i] = newDancer(fmt.Sprintf("d%02d", i), fmt.Sprintf("Dancer %02d", i), first, second)
	}
	return dancers
}

func initState(dancers []model.Dancer) *State {
	return Reduce(nil, Initialize{Dancers: dancers, StartedAt: testStart})
}

// indexOf returns the position of suite in the draft order
func indexOf(state *State, suite model.Suite) int {
	for i, s := range state.SuiteOrder {
		if s == suite {
			return i
		}
	}
	return -1
}
