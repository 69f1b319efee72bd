package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spcn/suite-draft/internal/config"
	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
)

var testStart = time.Date(2025, 9, 6, 18, 0, 0, 0, time.UTC)

// testRoster drafts in the order Arnis, Mindanao, Masa, Ensemble, Rural, Maria Clara
func testRoster() []model.Dancer {
	return []model.Dancer{
		{ID: "aaaa1111-0000", FullName: "Ana Cruz", RoleScore: 7, Prefs: model.Preferences{First: model.SuiteMariaClara, Second: model.SuiteRural}},
		{ID: "bbbb2222-0000", FullName: "Ben Reyes", RoleScore: 3, IsNew: true, Prefs: model.Preferences{First: model.SuiteRural}},
		{ID: "cccc3333-0000", FullName: "Cara Lim", RoleScore: 5, Prefs: model.Preferences{First: model.SuiteMariaClara}},
	}
}

func newTestApp(t *testing.T) *AppContext {
	t.Helper()
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()

	return &AppContext{
		Cfg:     cfg,
		Session: draft.NewSession(nil, zap.NewNop(), draft.WithClock(func() time.Time { return testStart })),
		Logger:  zap.NewNop(),
		Ctx:     context.Background(),
	}
}

func startedApp(t *testing.T) *AppContext {
	t.Helper()
	app := newTestApp(t)
	app.Session.Initialize(app.Ctx, testRoster())
	return app
}

func newRootCmd(app *AppContext) *cobra.Command {
	root := &cobra.Command{Use: "suite-draft", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(
		ImportCmd(app),
		StatusCmd(app),
		RecommendCmd(app),
		PickCmd(app),
		AdvanceCmd(app),
		FinalizeCmd(app),
		AssignCmd(app),
		MoveCmd(app),
		UnassignCmd(app),
		SummaryCmd(app),
		ExportCmd(app),
		PublishCmd(app),
		BackupCmd(app),
		RestoreCmd(app),
		ResetCmd(app),
		InteractiveCmd(app),
	)
	return root
}

// runCommand executes one command line and returns what it printed
func runCommand(t *testing.T, app *AppContext, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(app)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}
