package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/internal/config"
	"github.com/spcn/suite-draft/pkg/clients/sheetsclient"
	"github.com/spcn/suite-draft/pkg/core/draft"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env     string
	Cfg     *config.Config
	Session *draft.Session
	Logger  *zap.Logger
	Ctx     context.Context

	sheetsClient *sheetsclient.Client
}

// SheetsClient connects to Google Sheets on first use, so commands that never
// touch a spreadsheet need no OAuth client file
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	app.sheetsClient = client
	return client, nil
}
