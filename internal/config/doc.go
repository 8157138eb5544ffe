// Package config resolves where queue stores live on disk and overlays
// IPQ_* environment variables onto defaults.
//
// Each named queue owns one physical store directory, derived
// deterministically from the queue name under a per-user cache directory.
// The library's programmatic Options take precedence; this package supplies
// the defaults and serves the CLI.
package config
