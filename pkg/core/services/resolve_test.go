package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spcn/suite-draft/pkg/core/model"
)

func TestResolveDancers(t *testing.T) {
	state := startedSession(t).State()

	tests := []struct {
		name string
		refs []string
		want []string
	}{
		{"exact id", []string{"c9d8e7f6"}, []string{"c9d8e7f6"}},
		{"full name ignoring case", []string{"dino tan"}, []string{"d5e6f7a8"}},
		{"name with extra spaces", []string{"  Cara   Lim "}, []string{"c9d8e7f6"}},
		{"unique id prefix", []string{"d5e6"}, []string{"d5e6f7a8"}},
		{"caller order kept", []string{"Dino Tan", "Ana Cruz"}, []string{"d5e6f7a8", "a1b2c3d4"}},
		{"duplicates collapse", []string{"Ana Cruz", "a1b2c3d4", "ana cruz"}, []string{"a1b2c3d4"}},
		{"no refs", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := ResolveDancers(state, tt.refs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestResolveDancers_Errors(t *testing.T) {
	state := startedSession(t).State()

	tests := []struct {
		name string
		refs []string
		want error
	}{
		{"unknown name", []string{"Nobody"}, ErrUnknownDancer},
		{"prefix too short", []string{"d5e"}, ErrUnknownDancer},
		{"empty reference", []string{" "}, ErrUnknownDancer},
		{"shared name", []string{"Eli Santos"}, ErrAmbiguousDancer},
		{"shared prefix", []string{"a1b2"}, ErrAmbiguousDancer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveDancers(state, tt.refs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolveDancers_ReportsEveryBadReference(t *testing.T) {
	state := startedSession(t).State()

	_, err := ResolveDancers(state, []string{"Nobody", "Ana Cruz", "Eli Santos"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDancer)
	assert.ErrorIs(t, err, ErrAmbiguousDancer)
	assert.Contains(t, err.Error(), `"Nobody"`)
	assert.Contains(t, err.Error(), "e1000001, e2000002")
}

func TestResolveDancers_NoDraft(t *testing.T) {
	_, err := ResolveDancers(nil, []string{"Ana Cruz"})
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestResolveSuite(t *testing.T) {
	suite, err := ResolveSuite("maria-clara")
	require.NoError(t, err)
	assert.Equal(t, model.SuiteMariaClara, suite)

	_, err = ResolveSuite("Tinikling")
	assert.ErrorIs(t, err, ErrUnknownSuite)
}
