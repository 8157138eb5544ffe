package config

import (
	"os"
	"strconv"
)

// FromEnv overlays IPQ_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("IPQ_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("IPQ_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("IPQ_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("IPQ_FSYNC"); v != "" {
		cfg.Fsync = v
	}
	if v := os.Getenv("IPQ_RETRY_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RetryBudget = n
		}
	}
}
