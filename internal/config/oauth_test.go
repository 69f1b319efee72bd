package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSecrets() *OAuthClientSecrets {
	return &OAuthClientSecrets{
		ClientID:                "suite-draft.apps.googleusercontent.com",
		ProjectID:               "suite-draft",
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientSecret:            "secret",
		RedirectURIs:            []string{"http://localhost"},
	}
}

func TestValidateOAuthClient(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OAuthClientSecrets)
		wantErr bool
	}{
		{"valid", func(*OAuthClientSecrets) {}, false},
		{"missing client id", func(o *OAuthClientSecrets) { o.ClientID = "" }, true},
		{"auth uri not a url", func(o *OAuthClientSecrets) { o.AuthURI = "accounts" }, true},
		{"no redirect uris", func(o *OAuthClientSecrets) { o.RedirectURIs = nil }, true},
		{"bad redirect uri", func(o *OAuthClientSecrets) { o.RedirectURIs = []string{"not a uri"} }, true},
		{"oob redirect", func(o *OAuthClientSecrets) { o.RedirectURIs = []string{"urn:ietf:wg:oauth:2.0:oob"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secrets := validSecrets()
			tt.mutate(secrets)

			err := ValidateOAuthClient(&OAuthClientConfig{Installed: secrets})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "oauth client validation failed")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadOAuthClientFromPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "oauthClient.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
  "installed": {
    "client_id": "suite-draft.apps.googleusercontent.com",
    "project_id": "suite-draft",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
    "client_secret": "secret",
    "redirect_uris": ["http://localhost"]
  }
}`), 0644))

		cfg, err := LoadOAuthClientFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, validSecrets(), cfg.Installed)
		assert.Nil(t, cfg.Web)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"installed": {`), 0644))

		_, err := LoadOAuthClientFromPath(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse oauth client file")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadOAuthClientFromPath(filepath.Join(dir, "absent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read oauth client file")
	})
}

func TestLoadOAuthClientWithEnv_NotFound(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := LoadOAuthClientWithEnv("nowhere")
	assert.ErrorIs(t, err, ErrOAuthClientNotFound)
}

func TestValidateOAuthClient_Sections(t *testing.T) {
	web := &OAuthClientConfig{Web: validSecrets()}
	require.NoError(t, ValidateOAuthClient(web))
	assert.Same(t, web.Web, web.Secrets())

	both := &OAuthClientConfig{Installed: validSecrets(), Web: validSecrets()}
	assert.Same(t, both.Installed, both.Secrets())

	err := ValidateOAuthClient(&OAuthClientConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no installed or web section")

	badWeb := validSecrets()
	badWeb.ClientSecret = ""
	assert.Error(t, ValidateOAuthClient(&OAuthClientConfig{Web: badWeb}))
}
