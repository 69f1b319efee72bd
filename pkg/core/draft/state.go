package draft

import (
	"fmt"
	"slices"
	"time"

	"github.com/spcn/suite-draft/pkg/core/model"
)

// SuiteRoster holds the dancers picked into a suite, in pick order
type SuiteRoster struct {
	IDs       []string `json:"ids"`
	Finalized bool     `json:"finalized"`
}

// State is the authoritative draft aggregate.
// Readers must treat it as read-only; every change goes through Reduce.
type State struct {
	// Dancers is the full roster in import order
	Dancers []model.Dancer `json:"dancers"`

	// UnassignedIDs are the dancers not yet in any suite
	UnassignedIDs []string `json:"unassignedIds"`

	// Suites has one roster per configured suite
	Suites map[model.Suite]SuiteRoster `json:"suites"`

	// SuiteOrder is the turn sequence, fixed for the session
	SuiteOrder []model.Suite `json:"suiteOrder"`

	// TurnIndex points into SuiteOrder. It may rest on a finalized suite,
	// see ActiveSuite.
	TurnIndex int `json:"currentTurnSuiteIndex"`

	StartedAt time.Time `json:"startedAt"`
}

// Snapshot is the persisted form of a draft
type Snapshot struct {
	State   *State    `json:"state"`
	SavedAt time.Time `json:"savedAt"`
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}

	suites := make(map[model.Suite]SuiteRoster, len(s.Suites))
	for name, roster := range s.Suites {
		suites[name] = SuiteRoster{
			IDs:       slices.Clone(roster.IDs),
			Finalized: roster.Finalized,
		}
	}

	return &State{
		Dancers:       slices.Clone(s.Dancers),
		UnassignedIDs: slices.Clone(s.UnassignedIDs),
		Suites:        suites,
		SuiteOrder:    slices.Clone(s.SuiteOrder),
		TurnIndex:     s.TurnIndex,
		StartedAt:     s.StartedAt,
	}
}

// Dancer looks up a dancer by id
func (s *State) Dancer(id string) (model.Dancer, bool) {
	for _, d := range s.Dancers {
		if d.ID == id {
			return d, true
		}
	}
	return model.Dancer{}, false
}

// dancerIndex returns the position of id in Dancers, or -1
func (s *State) dancerIndex(id string) int {
	for i := range s.Dancers {
		if s.Dancers[i].ID == id {
			return i
		}
	}
	return -1
}

// dancersByID indexes the roster for bulk lookups
func (s *State) dancersByID() map[string]model.Dancer {
	byID := make(map[string]model.Dancer, len(s.Dancers))
	for _, d := range s.Dancers {
		byID[d.ID] = d
	}
	return byID
}

// RosterDancers returns the dancers of a suite in pick order
func (s *State) RosterDancers(suite model.Suite) []model.Dancer {
	return s.lookup(s.Suites[suite].IDs)
}

// UnassignedDancers returns the dancers still in the pool, in pool order
func (s *State) UnassignedDancers() []model.Dancer {
	return s.lookup(s.UnassignedIDs)
}

func (s *State) lookup(ids []string) []model.Dancer {
	byID := s.dancersByID()
	dancers := make([]model.Dancer, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			dancers = append(dancers, d)
		}
	}
	return dancers
}

// IsUnassigned reports whether id is in the unassigned pool
func (s *State) IsUnassigned(id string) bool {
	return slices.Contains(s.UnassignedIDs, id)
}

// CheckPartition verifies that every dancer id sits in exactly one place:
// one suite roster or the unassigned pool, and nothing else is listed.
func (s *State) CheckPartition() error {
	if s == nil {
		return nil
	}

	seen := make(map[string]string, len(s.Dancers))
	for _, d := range s.Dancers {
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("duplicate dancer id %q", d.ID)
		}
		seen[d.ID] = ""
	}

	place := func(id, where string) error {
		prev, known := seen[id]
		if !known {
			return fmt.Errorf("unknown dancer id %q in %s", id, where)
		}
		if prev != "" {
			return fmt.Errorf("dancer %q appears in both %s and %s", id, prev, where)
		}
		seen[id] = where
		return nil
	}

	for _, id := range s.UnassignedIDs {
		if err := place(id, "unassigned pool"); err != nil {
			return err
		}
	}
	for _, suite := range model.SuiteNames {
		for _, id := range s.Suites[suite].IDs {
			if err := place(id, "suite "+string(suite)); err != nil {
				return err
			}
		}
	}
	for suite, roster := range s.Suites {
		if suite.IsValid() {
			continue
		}
		for _, id := range roster.IDs {
			if err := place(id, "suite "+string(suite)); err != nil {
				return err
			}
		}
	}

	for _, d := range s.Dancers {
		if seen[d.ID] == "" {
			return fmt.Errorf("dancer %q is neither assigned nor unassigned", d.ID)
		}
	}

	return nil
}
