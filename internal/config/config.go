package config

import (
	"encoding/json"
	"os"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	CacheDir    string `json:"cacheDir"`
	LogLevel    string `json:"logLevel"`
	LogFormat   string `json:"logFormat"`
	Fsync       string `json:"fsync"`       // always|interval|never
	RetryBudget int    `json:"retryBudget"` // bounded one-second retries on store contention
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		CacheDir:    DefaultCacheDir(),
		LogLevel:    "info",
		LogFormat:   "text",
		Fsync:       "always",
		RetryBudget: 10,
	}
}

// Load reads configuration from a JSON file. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
