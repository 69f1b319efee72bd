package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spcn/suite-draft/cmd/cli/commands"
	"github.com/spcn/suite-draft/internal/config"
	"github.com/spcn/suite-draft/pkg/db"
	"github.com/spcn/suite-draft/pkg/utils/logging"
)

var (
	env        string
	configPath string
	app        *commands.AppContext
	store      db.SnapshotStore
)

func main() {
	// Create app context - will be populated in PersistentPreRunE
	app = &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "suite-draft",
		Short: "Suite Draft CLI - draft dancers into suites",
		Long: `A CLI tool for running the suite draft: import a roster, take turns picking
dancers for each suite, then export or publish the assignments.

The draft is saved after every change and picked up again on the next run.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects suite_draft_config.<env>.yaml, log and token files)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (overrides --env lookup)")

	rootCmd.AddCommand(commands.ImportCmd(app))
	rootCmd.AddCommand(commands.StatusCmd(app))
	rootCmd.AddCommand(commands.RecommendCmd(app))
	rootCmd.AddCommand(commands.PickCmd(app))
	rootCmd.AddCommand(commands.AdvanceCmd(app))
	rootCmd.AddCommand(commands.FinalizeCmd(app))
	rootCmd.AddCommand(commands.AssignCmd(app))
	rootCmd.AddCommand(commands.MoveCmd(app))
	rootCmd.AddCommand(commands.UnassignCmd(app))
	rootCmd.AddCommand(commands.SummaryCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.BackupCmd(app))
	rootCmd.AddCommand(commands.RestoreCmd(app))
	rootCmd.AddCommand(commands.ResetCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		closeApp()
		os.Exit(1)
	}
}

// initApp loads config, sets up the logger, opens the snapshot store and resumes any saved draft
func initApp() error {
	var err error

	app.Env = env
	app.Ctx = context.Background()

	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(env, app.Cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Session, store = openSession(app.Ctx, app.Cfg.Store, app.Logger)

	return nil
}

func closeApp() {
	if store != nil {
		if err := store.Close(); err != nil && app.Logger != nil {
			app.Logger.Warn("Failed to close snapshot store", zap.Error(err))
		}
		store = nil
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
}
