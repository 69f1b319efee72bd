package draft

import (
	"time"

	"github.com/spcn/suite-draft/pkg/core/model"
)

// Action is a draft transition. The set of actions is closed: only the types in
// this file implement it, and Reduce handles every one of them.
type Action interface {
	// Name returns a stable identifier for logging
	Name() string

	isAction()
}

// Initialize starts a fresh draft from an imported roster
type Initialize struct {
	Dancers   []model.Dancer
	StartedAt time.Time
}

// Hydrate restores a previously saved state, migrating it to the current suite set
type Hydrate struct {
	State *State
}

// AssignToSuite appends unassigned dancers to a suite roster
type AssignToSuite struct {
	Suite     model.Suite
	DancerIDs []string
}

// AdvanceTurn moves the turn pointer to the next suite that is not finalized
type AdvanceTurn struct{}

// ManualAssign assigns a single dancer outside the turn sequence
type ManualAssign struct {
	DancerID string
	Suite    model.Suite
}

// MoveDancer reassigns a dancer. An empty To returns the dancer to the pool.
type MoveDancer struct {
	DancerID string
	To       model.Suite
}

// UnassignDancer returns an assigned dancer to the pool
type UnassignDancer struct {
	DancerID string
}

// FinalizeSuite closes a suite to further turn-based picks
type FinalizeSuite struct {
	Suite model.Suite
}

// Reset discards the draft
type Reset struct{}

func (Initialize) Name() string     { return "initialize" }
func (Hydrate) Name() string        { return "hydrate" }
func (AssignToSuite) Name() string  { return "assign_to_suite" }
func (AdvanceTurn) Name() string    { return "advance_turn" }
func (ManualAssign) Name() string   { return "manual_assign" }
func (MoveDancer) Name() string     { return "move_dancer" }
func (UnassignDancer) Name() string { return "unassign_dancer" }
func (FinalizeSuite) Name() string  { return "finalize_suite" }
func (Reset) Name() string          { return "reset" }

func (Initialize) isAction()     {}
func (Hydrate) isAction()        {}
func (AssignToSuite) isAction()  {}
func (AdvanceTurn) isAction()    {}
func (ManualAssign) isAction()   {}
func (MoveDancer) isAction()     {}
func (UnassignDancer) isAction() {}
func (FinalizeSuite) isAction()  {}
func (Reset) isAction()          {}
