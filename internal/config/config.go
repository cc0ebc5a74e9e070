package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds runtime configuration for the storefront client and the local
// stand-in backend. Values come from defaults, then an optional TOML file,
// then environment variables.
type Config struct {
	APIBaseURL  string        `toml:"api_base_url"`
	ProjectKey  string        `toml:"project_key"`
	Currency    string        `toml:"currency"`
	HTTPTimeout time.Duration `toml:"-"`
	StatePath   string        `toml:"state_path"`
	PaymentURL  string        `toml:"payment_url"`

	DevServerAddr   string        `toml:"devserver_addr"`
	CatalogFile     string        `toml:"catalog_file"`
	ShutdownTimeout time.Duration `toml:"-"`
}

func defaults() Config {
	return Config{
		APIBaseURL:      "http://localhost:8080",
		ProjectKey:      "sk-organic-farms",
		Currency:        "INR",
		HTTPTimeout:     10 * time.Second,
		StatePath:       defaultStatePath(),
		PaymentURL:      "http://localhost:8080/sk-organic-farms/payments",
		DevServerAddr:   ":8080",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds Config from defaults, the TOML file at path (or, when path is
// empty, SKFARMS_CONFIG if set), and environment variable overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("SKFARMS_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.APIBaseURL = envOrDefault("SKFARMS_API_URL", cfg.APIBaseURL)
	cfg.ProjectKey = envOrDefault("SKFARMS_PROJECT_KEY", cfg.ProjectKey)
	cfg.Currency = envOrDefault("SKFARMS_CURRENCY", cfg.Currency)
	cfg.StatePath = envOrDefault("SKFARMS_STATE_PATH", cfg.StatePath)
	cfg.PaymentURL = envOrDefault("SKFARMS_PAYMENT_URL", cfg.PaymentURL)
	cfg.DevServerAddr = envOrDefault("SKFARMS_DEVSERVER_ADDR", cfg.DevServerAddr)
	cfg.CatalogFile = envOrDefault("SKFARMS_CATALOG_FILE", cfg.CatalogFile)
	cfg.HTTPTimeout = envDuration("SKFARMS_HTTP_TIMEOUT_SECONDS", cfg.HTTPTimeout)
	cfg.ShutdownTimeout = envDuration("SKFARMS_SHUTDOWN_TIMEOUT_SECONDS", cfg.ShutdownTimeout)

	return cfg, nil
}

// FromEnv builds Config with defaults overridden by environment variables only.
func FromEnv() Config {
	cfg, _ := Load("")
	return cfg
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "skfarms-state.json"
	}
	return filepath.Join(dir, "skfarms", "state.json")
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
