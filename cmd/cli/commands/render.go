package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
	"github.com/spcn/suite-draft/pkg/core/recommender"
	"github.com/spcn/suite-draft/pkg/exporter"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBold   = "\033[1m"
)

// shortID is the id prefix shown in listings; any prefix of four or more
// characters can be typed back as a dancer reference
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func prefsLabel(p model.Preferences) string {
	var parts []string
	for _, s := range p.Slice() {
		if s != "" {
			parts = append(parts, string(s))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " > ")
}

func dancerLine(d model.Dancer) string {
	newTag := ""
	if d.IsNew {
		newTag = fmt.Sprintf(" %snew%s", colorYellow, colorReset)
	}
	return fmt.Sprintf("%-8s  %-24s role %4.1f (%s)  %s%s",
		shortID(d.ID), d.FullName, d.RoleScore, d.RoleBucket(), prefsLabel(d.Prefs), newTag)
}

func pluralDancers(n int) string {
	if n == 1 {
		return "1 dancer"
	}
	return fmt.Sprintf("%d dancers", n)
}

// renderStatus prints the turn order, each suite's roster and the unassigned pool
func renderStatus(w io.Writer, state *draft.State) {
	if state == nil {
		fmt.Fprintln(w, "No draft in progress. Run 'import' to start one.")
		return
	}

	active, ok := draft.ActiveSuite(state)

	fmt.Fprintf(w, "\n%sSuite Draft%s  started %s\n\n", colorBold, colorReset, state.StartedAt.Local().Format("Mon Jan 2 2006 15:04"))
	if ok {
		fmt.Fprintf(w, "On the clock: %s%s%s\n\n", colorGreen, active, colorReset)
	} else {
		fmt.Fprintf(w, "%sDraft complete%s\n\n", colorGreen, colorReset)
	}

	fmt.Fprintln(w, "Turn order:")
	for i, suite := range state.SuiteOrder {
		marker := "  "
		if ok && suite == active {
			marker = "▶ "
		}
		status := pluralDancers(len(state.Suites[suite].IDs))
		if state.Suites[suite].Finalized {
			status += fmt.Sprintf(", %sfinal%s", colorRed, colorReset)
		}
		fmt.Fprintf(w, "%s%d. %-12s %s\n", marker, i+1, suite, status)
	}
	fmt.Fprintln(w)

	for _, suite := range state.SuiteOrder {
		dancers := state.RosterDancers(suite)
		if len(dancers) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s%s%s (%s)\n", colorBold, suite, colorReset, pluralDancers(len(dancers)))
		for _, d := range dancers {
			fmt.Fprintf(w, "  %s\n", dancerLine(d))
		}
		fmt.Fprintln(w)
	}

	pool := state.UnassignedDancers()
	fmt.Fprintf(w, "%sUnassigned%s (%s)\n", colorBold, colorReset, pluralDancers(len(pool)))
	for _, d := range pool {
		fmt.Fprintf(w, "  %s\n", dancerLine(d))
	}
	fmt.Fprintln(w)
}

// renderRecommendations prints the top picks for a suite followed by the rest of the pool
func renderRecommendations(w io.Writer, recs recommender.Recommendations, showAll bool) {
	counts := recs.RankCounts()
	fmt.Fprintf(w, "\n%sRecommendations for %s%s\n", colorBold, recs.Suite, colorReset)
	fmt.Fprintf(w, "Pool: %s (1st: %d, 2nd: %d, 3rd: %d, unlisted: %d)\n\n",
		pluralDancers(len(recs.AllCandidates)), counts[0], counts[1], counts[2], counts[3])

	if len(recs.AllCandidates) == 0 {
		fmt.Fprintln(w, "No unassigned dancers left.")
		return
	}

	fmt.Fprintf(w, "Top picks:\n")
	for i, c := range recs.TopPicks {
		fmt.Fprintf(w, "  %2d. %s%s%s  %s\n", i+1, colorGreen, rankLabel(c.PrefRank), colorReset, dancerLine(c.Dancer))
	}

	if !showAll || len(recs.AllCandidates) == len(recs.TopPicks) {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "\nEveryone else:\n")
	for i, c := range recs.AllCandidates[len(recs.TopPicks):] {
		fmt.Fprintf(w, "  %2d. %s  %s\n", len(recs.TopPicks)+i+1, rankLabel(c.PrefRank), dancerLine(c.Dancer))
	}
	fmt.Fprintln(w)
}

func rankLabel(rank int) string {
	switch rank {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return " - "
	}
}

// renderSummary prints per-suite counts and role balance
func renderSummary(w io.Writer, summaries []exporter.SuiteSummary) {
	fmt.Fprintf(w, "\n%s%-12s %5s %5s %9s %8s %4s %4s %4s%s\n",
		colorBold, "Suite", "Total", "New", "Returning", "Avg role", "M", "N", "F", colorReset)
	for _, s := range summaries {
		final := ""
		if s.Finalized {
			final = fmt.Sprintf("  %sfinal%s", colorRed, colorReset)
		}
		fmt.Fprintf(w, "%-12s %5d %5d %9d %8.2f %4d %4d %4d%s\n",
			s.Suite, s.Count, s.NewCount, s.ReturningCount, s.AverageRoleScore,
			s.Metrics.High, s.Metrics.Mid, s.Metrics.Low, final)
	}
	fmt.Fprintln(w)
}

// renderDancers prints a titled list of dancers
func renderDancers(w io.Writer, title string, dancers []model.Dancer) {
	fmt.Fprintf(w, "\n%s✓ %s%s\n", colorGreen, title, colorReset)
	for _, d := range dancers {
		suite := "unassigned"
		if d.IsAssigned() {
			suite = string(d.AssignedSuite)
		}
		fmt.Fprintf(w, "  %s  → %s\n", dancerLine(d), suite)
	}
	fmt.Fprintln(w)
}
