package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds file- and environment-driven configuration.
// Flags are applied on top by the CLI.
type Config struct {
	Toggl TogglConfig `yaml:"toggl"`
	MySQL struct {
		DSN string `yaml:"dsn"` // e.g., user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
	} `yaml:"mysql"`
}

type TogglConfig struct {
	BaseURL     string        `yaml:"base_url"`    // default: https://api.track.toggl.com
	APIVersion  string        `yaml:"api_version"` // v9 (default) or v8
	TokenFile   string        `yaml:"token_file"`  // default: ./api_token
	WorkspaceID uint64        `yaml:"workspace_id"`
	ProjectID   uint64        `yaml:"project_id"`
	Timeout     time.Duration `yaml:"timeout"`
}

// DefaultPath returns ~/.config/toggl-entry/config.yaml
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "toggl-entry", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "toggl-entry", "config.yaml")
}

func Default() Config {
	var cfg Config
	cfg.Toggl.BaseURL = "https://api.track.toggl.com"
	cfg.Toggl.APIVersion = "v9"
	cfg.Toggl.TokenFile = "api_token"
	cfg.Toggl.Timeout = 30 * time.Second
	return cfg
}

// Load reads the YAML file at path (a missing file is fine), then a .env file
// in the working directory if present, then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	// Existing environment wins over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("TOGGL_BASE_URL"); v != "" {
		cfg.Toggl.BaseURL = v
	}
	if v := os.Getenv("TOGGL_API_VERSION"); v != "" {
		cfg.Toggl.APIVersion = v
	}
	if v := os.Getenv("TOGGL_API_TOKEN_FILE"); v != "" {
		cfg.Toggl.TokenFile = v
	}
	if v := os.Getenv("TOGGL_WORKSPACE_ID"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.New("TOGGL_WORKSPACE_ID must be an unsigned integer")
		}
		cfg.Toggl.WorkspaceID = id
	}
	if v := os.Getenv("TOGGL_PROJECT_ID"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.New("TOGGL_PROJECT_ID must be an unsigned integer")
		}
		cfg.Toggl.ProjectID = id
	}
	if v := os.Getenv("TOGGL_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOGGL_HTTP_TIMEOUT: %w", err)
		}
		cfg.Toggl.Timeout = d
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		cfg.MySQL.DSN = v
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Toggl.APIVersion {
	case "v8", "v9":
	default:
		return fmt.Errorf("unsupported toggl api version %q (want v8 or v9)", c.Toggl.APIVersion)
	}
	if c.Toggl.BaseURL == "" {
		return errors.New("toggl base url is required")
	}
	if c.Toggl.Timeout <= 0 {
		return errors.New("toggl timeout must be positive")
	}
	return nil
}
