package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	configFileBase = "suite_draft_config"
	envPrefix      = "SUITE_DRAFT_"

	defaultPicksPerTurn = 10
	defaultSnapshotKey  = "spcn-draft-state"
	defaultDataDir      = ".suite-draft"
)

// Store backends
const (
	BackendFile     = "file"
	BackendBadger   = "badger"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// ErrConfigNotFound is returned when no config file exists in the searched locations
var ErrConfigNotFound = errors.New("config file not found in current directory or home directory")

// StoreConfig selects and configures the snapshot store
type StoreConfig struct {
	Backend string `yaml:"backend" env:"BACKEND" validate:"oneof=file badger sqlite postgres redis"`
	Key     string `yaml:"key,omitempty" env:"KEY" validate:"required"`

	// Path is a directory for file and badger, a database file for sqlite
	Path string `yaml:"path,omitempty" env:"PATH"`

	DSN string `yaml:"dsn,omitempty" env:"DSN" validate:"required_if=Backend postgres"`

	RedisAddr     string        `yaml:"redisAddr,omitempty" env:"REDIS_ADDR" validate:"required_if=Backend redis"`
	RedisPassword string        `yaml:"redisPassword,omitempty" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redisDB,omitempty" env:"REDIS_DB" validate:"min=0"`
	TTL           time.Duration `yaml:"ttl,omitempty" env:"TTL" validate:"min=0"`
}

// SheetsConfig holds the Google Sheets used for import and publish
type SheetsConfig struct {
	RosterSheetID  string `yaml:"rosterSheetID,omitempty" env:"ROSTER_SHEET_ID"`
	RosterTab      string `yaml:"rosterTab,omitempty" env:"ROSTER_TAB"`
	PublishSheetID string `yaml:"publishSheetID,omitempty" env:"PUBLISH_SHEET_ID"`
}

// Config represents the application configuration
type Config struct {
	PicksPerTurn int               `yaml:"picksPerTurn" env:"PICKS_PER_TURN" validate:"min=1"`
	Columns      map[string]string `yaml:"columns,omitempty"`
	Store        StoreConfig       `yaml:"store" envPrefix:"STORE_"`
	Sheets       SheetsConfig      `yaml:"sheets,omitempty" envPrefix:"SHEETS_"`
	ExportDir    string            `yaml:"exportDir,omitempty" env:"EXPORT_DIR"`
	LogDir       string            `yaml:"logDir,omitempty" env:"LOG_DIR"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		PicksPerTurn: defaultPicksPerTurn,
		Store: StoreConfig{
			Backend: BackendFile,
			Key:     defaultSnapshotKey,
		},
		ExportDir: "exports",
	}
}

// Load loads the configuration without an environment suffix
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads suite_draft_config.<env>.yaml (or suite_draft_config.yaml when env is
// empty) from the current directory or the home directory. A missing file is not an
// error: defaults are used. SUITE_DRAFT_* environment variables override either.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if errors.Is(err, ErrConfigNotFound) {
		cfg := Default()
		if err := finish(cfg, nil); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	return loadFromPath(path, nil)
}

func loadFromPath(path string, environ map[string]string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := finish(cfg, environ); err != nil {
		return nil, err
	}

	return cfg, nil
}

// finish applies environment overrides, fills backend defaults and validates.
// A nil environ reads the process environment.
func finish(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyStoreDefaults(&cfg.Store)

	return Validate(cfg)
}

func applyStoreDefaults(store *StoreConfig) {
	if store.Path != "" {
		return
	}
	switch store.Backend {
	case BackendFile:
		store.Path = filepath.Join(defaultDataDir, "snapshots")
	case BackendBadger:
		store.Path = filepath.Join(defaultDataDir, "badger")
	case BackendSQLite:
		store.Path = filepath.Join(defaultDataDir, "suite_draft.db")
	}
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	return findInCwdOrHome(withEnv(configFileBase, env, ".yaml"), ErrConfigNotFound)
}

// withEnv builds "<base>.<env><ext>", or "<base><ext>" for an empty env
func withEnv(base, env, ext string) string {
	if env == "" {
		return base + ext
	}
	return base + "." + env + ext
}

func findInCwdOrHome(name string, notFound error) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", notFound
}
