package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const oauthFileBase = "oauthClient"

// ErrOAuthClientNotFound is returned when no OAuth client file exists for the environment
var ErrOAuthClientNotFound = errors.New("oauth client file not found in current directory or home directory")

// OAuthClientConfig is the Google client file downloaded from the cloud console.
// Desktop clients carry an "installed" section and web clients a "web" section;
// either works for the local callback flow. Only the Sheets commands need it.
type OAuthClientConfig struct {
	Installed *OAuthClientSecrets `json:"installed,omitempty"`
	Web       *OAuthClientSecrets `json:"web,omitempty"`
}

// OAuthClientSecrets holds the fields shared by both client file sections
type OAuthClientSecrets struct {
	ClientID                string   `json:"client_id" validate:"required"`
	ProjectID               string   `json:"project_id" validate:"required"`
	AuthURI                 string   `json:"auth_uri" validate:"required,url"`
	TokenURI                string   `json:"token_uri" validate:"required,url"`
	AuthProviderX509CertURL string   `json:"auth_provider_x509_cert_url" validate:"required,url"`
	ClientSecret            string   `json:"client_secret" validate:"required"`
	RedirectURIs            []string `json:"redirect_uris" validate:"required,min=1,dive,uri"`
}

// Secrets returns the installed section, falling back to the web section
func (c *OAuthClientConfig) Secrets() *OAuthClientSecrets {
	if c.Installed != nil {
		return c.Installed
	}
	return c.Web
}

// LoadOAuthClientWithEnv loads oauthClient.<env>.json (oauthClient.json for an empty env)
func LoadOAuthClientWithEnv(env string) (*OAuthClientConfig, error) {
	path, err := findInCwdOrHome(withEnv(oauthFileBase, env, ".json"), ErrOAuthClientNotFound)
	if err != nil {
		return nil, fmt.Errorf("failed to find oauth client file: %w", err)
	}

	return LoadOAuthClientFromPath(path)
}

// LoadOAuthClientFromPath loads and validates the OAuth client configuration from a specific path
func LoadOAuthClientFromPath(path string) (*OAuthClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client file: %w", err)
	}

	var oauthCfg OAuthClientConfig
	if err := json.Unmarshal(data, &oauthCfg); err != nil {
		return nil, fmt.Errorf("failed to parse oauth client file: %w", err)
	}

	if err := ValidateOAuthClient(&oauthCfg); err != nil {
		return nil, err
	}

	return &oauthCfg, nil
}

// ValidateOAuthClient validates the OAuth client configuration
func ValidateOAuthClient(cfg *OAuthClientConfig) error {
	if cfg.Secrets() == nil {
		return errors.New("oauth client validation failed: file has no installed or web section")
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("oauth client validation failed: %w", err)
	}

	return nil
}
