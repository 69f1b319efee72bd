package exporter

import (
	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
)

// SuiteSummary describes one suite's roster
type SuiteSummary struct {
	Suite            model.Suite
	Count            int
	NewCount         int
	ReturningCount   int
	AverageRoleScore float64
	Metrics          model.RosterMetrics
	Dancers          []model.Dancer
	Finalized        bool
}

// SuiteSummaries summarises every suite in canonical order
func SuiteSummaries(state *draft.State) []SuiteSummary {
	summaries := make([]SuiteSummary, 0, len(model.SuiteNames))
	for _, suite := range model.SuiteNames {
		dancers := state.RosterDancers(suite)
		metrics := model.CalcRosterMetrics(dancers)

		summaries = append(summaries, SuiteSummary{
			Suite:            suite,
			Count:            metrics.Total,
			NewCount:         metrics.Newbies,
			ReturningCount:   metrics.Returning,
			AverageRoleScore: metrics.AvgRole,
			Metrics:          metrics,
			Dancers:          dancers,
			Finalized:        state.Suites[suite].Finalized,
		})
	}
	return summaries
}
