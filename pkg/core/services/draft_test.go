package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
)

func TestStartDraft(t *testing.T) {
	ctx := context.Background()
	session := newTestSession()

	state, err := StartDraft(ctx, session, testRoster(), false, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, state.UnassignedIDs, 6)
	assert.Equal(t, []model.Suite{
		model.SuiteEnsemble, model.SuiteMariaClara, model.SuiteRural,
		model.SuiteArnis, model.SuiteMasa, model.SuiteMindanao,
	}, state.SuiteOrder)
	assert.Equal(t, testStart, state.StartedAt)
}

func TestStartDraft_Guards(t *testing.T) {
	ctx := context.Background()

	_, err := StartDraft(ctx, newTestSession(), nil, false, zap.NewNop())
	assert.ErrorIs(t, err, ErrEmptyRoster)

	session := startedSession(t)
	_, err = StartDraft(ctx, session, testRoster()[:2], false, zap.NewNop())
	assert.ErrorIs(t, err, ErrDraftInProgress)
	assert.Len(t, session.State().Dancers, 6, "existing draft untouched")

	state, err := StartDraft(ctx, session, testRoster()[:2], true, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, state.Dancers, 2)
}

func TestPickForActiveSuite(t *testing.T) {
	ctx := context.Background()
	session := startedSession(t)

	result, err := PickForActiveSuite(ctx, session, []string{"Dino Tan", "c9d8"}, 10, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, model.SuiteEnsemble, result.Suite)
	assert.Equal(t, model.SuiteMariaClara, result.Next)
	require.Len(t, result.Dancers, 2)
	assert.Equal(t, "Dino Tan", result.Dancers[0].FullName)
	assert.Equal(t, "Cara Lim", result.Dancers[1].FullName)

	state := session.State()
	assert.Equal(t, []string{"d5e6f7a8", "c9d8e7f6"}, state.Suites[model.SuiteEnsemble].IDs)
	assert.Equal(t, 1, state.TurnIndex)
	assert.NoError(t, state.CheckPartition())
}

func TestPickForActiveSuite_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no draft", func(t *testing.T) {
		_, err := PickForActiveSuite(ctx, newTestSession(), []string{"Ana Cruz"}, 10, zap.NewNop())
		assert.ErrorIs(t, err, ErrNoDraft)
	})

	t.Run("too many picks", func(t *testing.T) {
		session := startedSession(t)
		_, err := PickForActiveSuite(ctx, session, []string{"Ana Cruz", "Ben Reyes", "Cara Lim"}, 2, zap.NewNop())
		assert.ErrorIs(t, err, ErrTooManyPicks)
		assert.Len(t, session.State().UnassignedIDs, 6)
	})

	t.Run("nothing picked", func(t *testing.T) {
		_, err := PickForActiveSuite(ctx, startedSession(t), nil, 10, zap.NewNop())
		assert.ErrorIs(t, err, ErrNoPicks)
	})

	t.Run("unknown dancer", func(t *testing.T) {
		_, err := PickForActiveSuite(ctx, startedSession(t), []string{"Nobody"}, 10, zap.NewNop())
		assert.ErrorIs(t, err, ErrUnknownDancer)
	})

	t.Run("already assigned", func(t *testing.T) {
		session := startedSession(t)
		_, err := PickForActiveSuite(ctx, session, []string{"Ana Cruz"}, 10, zap.NewNop())
		require.NoError(t, err)

		_, err = PickForActiveSuite(ctx, session, []string{"Ana Cruz"}, 10, zap.NewNop())
		assert.ErrorIs(t, err, ErrAlreadyAssigned)
		assert.Equal(t, 1, session.State().TurnIndex, "failed pick keeps the turn")
	})

	t.Run("draft complete", func(t *testing.T) {
		session := startedSession(t)
		for _, suite := range model.SuiteNames {
			session.Dispatch(ctx, draft.FinalizeSuite{Suite: suite})
		}

		_, err := PickForActiveSuite(ctx, session, []string{"Ana Cruz"}, 10, zap.NewNop())
		assert.ErrorIs(t, err, ErrDraftComplete)
	})
}

func TestPickForActiveSuite_DefaultCap(t *testing.T) {
	session := startedSession(t)

	refs := []string{"a1b2c3d4", "a1b2ffff", "c9d8e7f6", "d5e6f7a8", "e1000001", "e2000002"}
	result, err := PickForActiveSuite(context.Background(), session, refs, 0, zap.NewNop())

	require.NoError(t, err)
	assert.Len(t, result.Dancers, 6)
	assert.Empty(t, session.State().UnassignedIDs)
}

func TestAdvanceTurn(t *testing.T) {
	ctx := context.Background()
	session := startedSession(t)

	next, err := AdvanceTurn(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, model.SuiteMariaClara, next)

	_, err = AdvanceTurn(ctx, newTestSession())
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestFinalizeSuite(t *testing.T) {
	ctx := context.Background()
	session := startedSession(t)

	suite, err := FinalizeSuite(ctx, session, "ensemble")
	require.NoError(t, err)

	assert.Equal(t, model.SuiteEnsemble, suite)
	assert.True(t, session.State().Suites[model.SuiteEnsemble].Finalized)
	active, _ := session.ActiveSuite()
	assert.Equal(t, model.SuiteMariaClara, active, "finalizing the suite on the clock passes the turn")

	_, err = FinalizeSuite(ctx, session, "Tinikling")
	assert.ErrorIs(t, err, ErrUnknownSuite)
}

func TestAssignDancers(t *testing.T) {
	ctx := context.Background()
	session := startedSession(t)

	roster, err := AssignDancers(ctx, session, "Masa", []string{"Cara Lim", "Dino Tan"})
	require.NoError(t, err)
	require.Len(t, roster, 2)

	// Already placed dancers are moved
	roster, err = AssignDancers(ctx, session, "Arnis", []string{"Dino Tan"})
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Dino Tan", roster[0].FullName)

	state := session.State()
	assert.Equal(t, []string{"c9d8e7f6"}, state.Suites[model.SuiteMasa].IDs)
	assert.Equal(t, 0, state.TurnIndex, "manual edits leave the turn alone")
	assert.NoError(t, state.CheckPartition())
}

func TestMoveDancer(t *testing.T) {
	ctx := context.Background()
	session := startedSession(t)
	_, err := AssignDancers(ctx, session, "Rural", []string{"Ben Reyes"})
	require.NoError(t, err)

	d, err := MoveDancer(ctx, session, "Ben Reyes", "Masa")
	require.NoError(t, err)
	assert.Equal(t, model.SuiteMasa, d.AssignedSuite)

	d, err = MoveDancer(ctx, session, "Ben Reyes", "")
	require.NoError(t, err)
	assert.False(t, d.IsAssigned())
	assert.True(t, session.State().IsUnassigned("a1b2ffff"))

	_, err = MoveDancer(ctx, session, "Ben Reyes", "Nowhere")
	assert.ErrorIs(t, err, ErrUnknownSuite)
}

func TestUnassignDancers(t *testing.T) {
	ctx := context.Background()
	session := startedSession(t)
	_, err := AssignDancers(ctx, session, "Rural", []string{"Ben Reyes", "Ana Cruz"})
	require.NoError(t, err)

	dancers, err := UnassignDancers(ctx, session, []string{"Ana Cruz"})
	require.NoError(t, err)

	require.Len(t, dancers, 1)
	assert.False(t, dancers[0].IsAssigned())
	assert.Equal(t, []string{"a1b2ffff"}, session.State().Suites[model.SuiteRural].IDs)

	_, err = UnassignDancers(ctx, newTestSession(), []string{"Ana Cruz"})
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()
	session := startedSession(t)

	recs, err := Recommend(session, "", 2)
	require.NoError(t, err)
	assert.Equal(t, model.SuiteEnsemble, recs.Suite)
	assert.Len(t, recs.TopPicks, 2)
	assert.Len(t, recs.AllCandidates, 6)

	recs, err = Recommend(session, "masa", 3)
	require.NoError(t, err)
	assert.Equal(t, model.SuiteMasa, recs.Suite)
	assert.Equal(t, "Cara Lim", recs.TopPicks[0].Dancer.FullName)

	for _, suite := range model.SuiteNames {
		session.Dispatch(ctx, draft.FinalizeSuite{Suite: suite})
	}
	_, err = Recommend(session, "", 3)
	assert.ErrorIs(t, err, ErrDraftComplete)

	_, err = Recommend(newTestSession(), "", 3)
	assert.ErrorIs(t, err, ErrNoDraft)
}
