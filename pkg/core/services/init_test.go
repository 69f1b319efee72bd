package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
)

var testStart = time.Date(2025, 9, 6, 18, 0, 0, 0, time.UTC)

// testRoster drafts in the order Ensemble, Maria Clara, Rural, Arnis, Masa, Mindanao
func testRoster() []model.Dancer {
	return []model.Dancer{
		{ID: "a1b2c3d4", FullName: "Ana Cruz", RoleScore: 7, Prefs: model.Preferences{First: model.SuiteMariaClara, Second: model.SuiteRural}},
		{ID: "a1b2ffff", FullName: "Ben Reyes", RoleScore: 5, Prefs: model.Preferences{First: model.SuiteRural}},
		{ID: "c9d8e7f6", FullName: "Cara Lim", RoleScore: 3, IsNew: true, Prefs: model.Preferences{First: model.SuiteMasa, Second: model.SuiteArnis}},
		{ID: "d5e6f7a8", FullName: "Dino Tan", RoleScore: 6, Prefs: model.Preferences{First: model.SuiteArnis}},
		{ID: "e1000001", FullName: "Eli Santos", RoleScore: 4, Prefs: model.Preferences{First: model.SuiteMindanao}},
		{ID: "e2000002", FullName: "Eli Santos", RoleScore: 5, Prefs: model.Preferences{First: model.SuiteMindanao}},
	}
}

func newTestSession() *draft.Session {
	return draft.NewSession(nil, zap.NewNop(), draft.WithClock(func() time.Time { return testStart }))
}

func startedSession(t *testing.T) *draft.Session {
	t.Helper()
	session := newTestSession()
	_, err := StartDraft(context.Background(), session, testRoster(), false, zap.NewNop())
	require.NoError(t, err)
	return session
}
