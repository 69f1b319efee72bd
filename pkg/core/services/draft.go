package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
	"github.com/spcn/suite-draft/pkg/core/recommender"
)

// StartDraft begins a draft from an imported roster. An existing draft is only
// replaced when replace is set.
func StartDraft(ctx context.Context, session *draft.Session, dancers []model.Dancer, replace bool, logger *zap.Logger) (*draft.State, error) {
	if len(dancers) == 0 {
		return nil, ErrEmptyRoster
	}
	if session.State() != nil && !replace {
		return nil, ErrDraftInProgress
	}

	state := session.Initialize(ctx, dancers)

	logger.Info("Draft started",
		zap.Int("dancers", len(dancers)),
		zap.Strings("suite_order", suiteStrings(state.SuiteOrder)))

	return state, nil
}

// PickResult describes a completed turn
type PickResult struct {
	Suite   model.Suite
	Dancers []model.Dancer

	// Next is the suite now on the clock; empty once the draft is complete
	Next model.Suite
}

// PickForActiveSuite assigns the referenced dancers to the suite on the clock and
// passes the turn. At most pickCap dancers may be picked (the default when pickCap < 1)
// and all of them must still be unassigned.
func PickForActiveSuite(ctx context.Context, session *draft.Session, refs []string, pickCap int, logger *zap.Logger) (*PickResult, error) {
	state := session.State()
	if state == nil {
		return nil, ErrNoDraft
	}

	suite, ok := session.ActiveSuite()
	if !ok {
		return nil, ErrDraftComplete
	}

	ids, err := ResolveDancers(state, refs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoPicks
	}

	if pickCap < 1 {
		pickCap = recommender.DefaultPicksPerTurn
	}
	if len(ids) > pickCap {
		return nil, fmt.Errorf("%w: %d picked, at most %d allowed", ErrTooManyPicks, len(ids), pickCap)
	}

	dancers := make([]model.Dancer, 0, len(ids))
	for _, id := range ids {
		d, _ := state.Dancer(id)
		if d.IsAssigned() {
			return nil, fmt.Errorf("%w: %s is in %s", ErrAlreadyAssigned, d.FullName, d.AssignedSuite)
		}
		dancers = append(dancers, d)
	}

	logger.Debug("Picking for active suite", zap.String("suite", string(suite)), zap.Strings("dancer_ids", ids))
	session.PickForActiveSuite(ctx, ids)

	next, _ := session.ActiveSuite()
	logger.Info("Turn completed",
		zap.String("suite", string(suite)),
		zap.Int("picked", len(ids)),
		zap.String("next", string(next)))

	return &PickResult{Suite: suite, Dancers: dancers, Next: next}, nil
}

// AdvanceTurn passes the turn without picking and returns the suite now on the clock
func AdvanceTurn(ctx context.Context, session *draft.Session) (model.Suite, error) {
	if session.State() == nil {
		return "", ErrNoDraft
	}
	if _, ok := session.ActiveSuite(); !ok {
		return "", ErrDraftComplete
	}

	session.Dispatch(ctx, draft.AdvanceTurn{})

	next, _ := session.ActiveSuite()
	return next, nil
}

// FinalizeSuite closes a suite to further picks; the turn moves on when it was on the clock
func FinalizeSuite(ctx context.Context, session *draft.Session, suiteName string) (model.Suite, error) {
	if session.State() == nil {
		return "", ErrNoDraft
	}
	suite, err := ResolveSuite(suiteName)
	if err != nil {
		return "", err
	}

	session.Dispatch(ctx, draft.FinalizeSuite{Suite: suite})
	return suite, nil
}

// AssignDancers places dancers into a suite outside the turn order. Dancers already
// in another suite are moved.
func AssignDancers(ctx context.Context, session *draft.Session, suiteName string, refs []string) ([]model.Dancer, error) {
	state := session.State()
	if state == nil {
		return nil, ErrNoDraft
	}
	suite, err := ResolveSuite(suiteName)
	if err != nil {
		return nil, err
	}
	ids, err := ResolveDancers(state, refs)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if session.State().IsUnassigned(id) {
			session.Dispatch(ctx, draft.ManualAssign{DancerID: id, Suite: suite})
		} else {
			session.Dispatch(ctx, draft.MoveDancer{DancerID: id, To: suite})
		}
	}

	return session.State().RosterDancers(suite), nil
}

// MoveDancer moves one dancer to another suite, or back to the pool when
// suiteName is empty
func MoveDancer(ctx context.Context, session *draft.Session, ref, suiteName string) (model.Dancer, error) {
	state := session.State()
	if state == nil {
		return model.Dancer{}, ErrNoDraft
	}
	ids, err := ResolveDancers(state, []string{ref})
	if err != nil {
		return model.Dancer{}, err
	}

	var to model.Suite
	if suiteName != "" {
		if to, err = ResolveSuite(suiteName); err != nil {
			return model.Dancer{}, err
		}
	}

	session.Dispatch(ctx, draft.MoveDancer{DancerID: ids[0], To: to})

	d, _ := session.State().Dancer(ids[0])
	return d, nil
}

// UnassignDancers returns dancers to the unassigned pool
func UnassignDancers(ctx context.Context, session *draft.Session, refs []string) ([]model.Dancer, error) {
	state := session.State()
	if state == nil {
		return nil, ErrNoDraft
	}
	ids, err := ResolveDancers(state, refs)
	if err != nil {
		return nil, err
	}

	dancers := make([]model.Dancer, 0, len(ids))
	for _, id := range ids {
		session.Dispatch(ctx, draft.UnassignDancer{DancerID: id})
		d, _ := session.State().Dancer(id)
		dancers = append(dancers, d)
	}
	return dancers, nil
}

// Recommend ranks the pool for a suite, defaulting to the suite on the clock
func Recommend(session *draft.Session, suiteName string, pickCap int) (recommender.Recommendations, error) {
	state := session.State()
	if state == nil {
		return recommender.Recommendations{}, ErrNoDraft
	}

	var suite model.Suite
	if suiteName != "" {
		var err error
		if suite, err = ResolveSuite(suiteName); err != nil {
			return recommender.Recommendations{}, err
		}
	} else {
		var ok bool
		if suite, ok = session.ActiveSuite(); !ok {
			return recommender.Recommendations{}, ErrDraftComplete
		}
	}

	return recommender.BuildRecommendations(state, suite, pickCap), nil
}

func suiteStrings(suites []model.Suite) []string {
	out := make([]string, len(suites))
	for i, s := range suites {
		out[i] = string(s)
	}
	return out
}
