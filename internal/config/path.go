package config

import (
	"os"
	"path/filepath"
)

// DefaultCacheDir returns the default store directory based on the host OS.
// It prefers standard cache locations and falls back to a dotdir in the
// user's home directory.
func DefaultCacheDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "./queues"
	}

	// XDG (Linux) override
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "offlinequeue")
	}

	// macOS: ~/Library/Caches/offlinequeue
	if isDir(filepath.Join(homeDir, "Library")) {
		return filepath.Join(homeDir, "Library", "Caches", "offlinequeue")
	}

	// Windows: %USERPROFILE%/AppData/Local/offlinequeue
	if isDir(filepath.Join(homeDir, "AppData")) {
		return filepath.Join(homeDir, "AppData", "Local", "offlinequeue")
	}

	// Common Unix cache dir
	if isDir(filepath.Join(homeDir, ".cache")) {
		return filepath.Join(homeDir, ".cache", "offlinequeue")
	}

	// Fallback: ~/.offlinequeue
	return filepath.Join(homeDir, ".offlinequeue")
}

// StorePath maps a queue name to its store directory under baseDir. The
// mapping is deterministic so the same name reopens the same store across
// process restarts.
func StorePath(baseDir, queueName string) string {
	return filepath.Join(baseDir, sanitizeName(queueName)+".queue")
}

// sanitizeName keeps [a-zA-Z0-9._-] and replaces everything else with '-'
// so arbitrary queue names produce valid directory names.
func sanitizeName(name string) string {
	if name == "" {
		return "default"
	}
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '.', c == '_', c == '-':
			out[i] = c
		default:
			out[i] = '-'
		}
	}
	return string(out)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
