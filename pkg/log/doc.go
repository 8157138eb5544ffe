// Package log provides the project's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Output goes through pluggable
// Formatter and Output implementations so the same call sites can emit text
// for interactive use or JSON for collection.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("queue"), log.Str("name", "uploads"))
//	l.Info("queue opened", log.Uint64("last_seq", 42))
//
// # Interop
//
// To capture stdlib log output (used by Pebble) into this pipeline, call
// RedirectStdLog once at startup.
package log
