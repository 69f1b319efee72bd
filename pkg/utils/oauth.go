package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/spcn/suite-draft/internal/config"
)

// AuthPort is the local port the consent redirect lands on
const AuthPort = 3000

// ScopeSheets covers reading the roster and publishing assignments
const ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"

const (
	consentWait    = 5 * time.Minute
	redirectPath   = "/oauth/callback"
	tokenSubdir    = ".suite-draft/tokens"
	tokenFileMode  = 0600
	tokenDirMode   = 0700
	tokenInfoURL   = "https://oauth2.googleapis.com/tokeninfo"
	consentPageOK  = `<html><head><title>Suite draft</title></head><body><p>Signed in. Return to the terminal to continue the draft.</p></body></html>`
	defaultEnvName = "default"
)

var (
	sessionTokens   = map[string]*oauth2.Token{}
	sessionTokensMu sync.Mutex
)

// GetOAuthConfig builds the Sheets OAuth config for the stored client secrets
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	raw, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode oauth client: %w", err)
	}

	cfg, err := google.ConfigFromJSON(raw, ScopeSheets)
	if err != nil {
		return nil, fmt.Errorf("failed to parse oauth client: %w", err)
	}
	cfg.RedirectURL = (&url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("localhost:%d", AuthPort),
		Path:   redirectPath,
	}).String()

	return cfg, nil
}

func missingScopes(granted string) []string {
	have := strings.Fields(granted)
	var missing []string
	if !slices.Contains(have, ScopeSheets) {
		missing = append(missing, ScopeSheets)
	}
	return missing
}

// checkGrantedScopes asks the tokeninfo endpoint what the token may do
func checkGrantedScopes(ctx context.Context, token *oauth2.Token) error {
	query := url.Values{"access_token": {token.AccessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenInfoURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("tokeninfo lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return fmt.Errorf("tokeninfo returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var info struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("failed to read tokeninfo response: %w", err)
	}
	if missing := missingScopes(info.Scope); len(missing) > 0 {
		return fmt.Errorf("token lacks scopes %s", strings.Join(missing, ", "))
	}
	return nil
}

// GetTokenWithFlow returns a usable token for env. A cached or stored token is
// preferred; otherwise the user is sent through the browser consent screen.
// Concurrent callers share one flow.
func GetTokenWithFlow(ctx context.Context, oauthConfig *oauth2.Config, env string, logger *zap.Logger) (*oauth2.Token, error) {
	sessionTokensMu.Lock()
	defer sessionTokensMu.Unlock()

	if token, ok := sessionTokens[env]; ok && token.Valid() {
		return token, nil
	}

	stored, err := LoadTokenFromFile(env)
	if err != nil {
		logger.Warn("Ignoring unreadable stored token", zap.String("env", env), zap.Error(err))
	}
	if stored != nil {
		if token := reuseToken(ctx, oauthConfig, env, stored, logger); token != nil {
			sessionTokens[env] = token
			return token, nil
		}
	}

	token, err := runConsentFlow(ctx, oauthConfig, logger)
	if err != nil {
		return nil, err
	}
	if err := SaveTokenToFile(env, token); err != nil {
		logger.Warn("Token not persisted, sign-in will be asked again next run", zap.Error(err))
	}

	sessionTokens[env] = token
	return token, nil
}

func runConsentFlow(ctx context.Context, oauthConfig *oauth2.Config, logger *zap.Logger) (*oauth2.Token, error) {
	logger.Info("Starting Google sign-in", zap.Int("port", AuthPort))
	fmt.Printf("\nOpen this link to let suite-draft use Google Sheets:\n%s\n\n",
		oauthConfig.AuthCodeURL("suite-draft", oauth2.AccessTypeOffline))

	code, err := awaitConsentCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("sign-in did not complete: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to trade authorization code: %w", err)
	}
	if err := checkGrantedScopes(ctx, token); err != nil {
		return nil, fmt.Errorf("new token rejected: %w", err)
	}
	return token, nil
}

// reuseToken returns stored (refreshed if expired) or nil when it cannot be used.
// A token missing the Sheets scope is removed from disk.
func reuseToken(ctx context.Context, oauthConfig *oauth2.Config, env string, stored *oauth2.Token, logger *zap.Logger) *oauth2.Token {
	token := stored
	if !stored.Valid() {
		if stored.RefreshToken == "" {
			return nil
		}
		refreshed, err := oauthConfig.TokenSource(ctx, stored).Token()
		if err != nil || refreshed.AccessToken == stored.AccessToken {
			return nil
		}
		token = refreshed
	}

	if err := checkGrantedScopes(ctx, token); err != nil {
		logger.Warn("Discarding stored token", zap.String("env", env), zap.Error(err))
		if err := DeleteTokenFile(env); err != nil {
			logger.Warn("Stored token could not be removed", zap.Error(err))
		}
		return nil
	}

	if token != stored {
		logger.Info("Refreshed stored token", zap.String("env", env))
		if err := SaveTokenToFile(env, token); err != nil {
			logger.Warn("Refreshed token not persisted", zap.Error(err))
		}
	}
	return token
}

type consentResult struct {
	code string
	err  error
}

// consentHandler receives the single redirect from the consent screen
type consentHandler struct {
	once    sync.Once
	results chan consentResult
}

func (h *consentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		reason := r.URL.Query().Get("error")
		if reason == "" {
			reason = "missing code"
		}
		http.Error(w, "Sign-in failed: "+reason, http.StatusBadRequest)
		h.deliver(consentResult{err: fmt.Errorf("consent redirect without code: %s", reason)})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, consentPageOK)
	h.deliver(consentResult{code: code})
}

func (h *consentHandler) deliver(res consentResult) {
	h.once.Do(func() { h.results <- res })
}

// awaitConsentCode serves the redirect path until a code arrives, ctx ends or
// consentWait elapses
func awaitConsentCode(ctx context.Context) (string, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", AuthPort))
	if err != nil {
		return "", fmt.Errorf("cannot listen for sign-in redirect: %w", err)
	}

	handler := &consentHandler{results: make(chan consentResult, 1)}
	mux := http.NewServeMux()
	mux.Handle(redirectPath, handler)
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(listener) }()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(stopCtx)
	}()

	waitCtx, cancel := context.WithTimeout(ctx, consentWait)
	defer cancel()

	select {
	case res := <-handler.results:
		return res.code, res.err
	case err := <-serveErr:
		return "", fmt.Errorf("sign-in listener stopped: %w", err)
	case <-waitCtx.Done():
		return "", fmt.Errorf("no sign-in within %s: %w", consentWait, waitCtx.Err())
	}
}

// ClearToken forgets every token held for this process
func ClearToken() {
	sessionTokensMu.Lock()
	defer sessionTokensMu.Unlock()
	clear(sessionTokens)
}

func getTokenFilePath(env string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("no home directory for tokens: %w", err)
	}
	if env == "" {
		env = defaultEnvName
	}
	return filepath.Join(home, tokenSubdir, "token-"+env+".json"), nil
}

// LoadTokenFromFile reads the stored token for env. Returns nil, nil when
// nothing has been stored yet.
func LoadTokenFromFile(env string) (*oauth2.Token, error) {
	path, err := getTokenFilePath(env)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	token := new(oauth2.Token)
	if err := json.Unmarshal(raw, token); err != nil {
		return nil, fmt.Errorf("corrupt token file %s: %w", path, err)
	}
	return token, nil
}

// SaveTokenToFile stores token for env, readable only by the owner
func SaveTokenToFile(env string, token *oauth2.Token) error {
	path, err := getTokenFilePath(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), tokenDirMode); err != nil {
		return fmt.Errorf("failed to prepare %s: %w", filepath.Dir(path), err)
	}

	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(path, raw, tokenFileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// DeleteTokenFile removes the stored token for env; a missing file is not an error
func DeleteTokenFile(env string) error {
	path, err := getTokenFilePath(env)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
