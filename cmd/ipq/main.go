package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/earljwagner/IPOfflineQueue/internal/config"
	"github.com/earljwagner/IPOfflineQueue/internal/journal"
	"github.com/earljwagner/IPOfflineQueue/internal/predicate"
	pebblestore "github.com/earljwagner/IPOfflineQueue/internal/storage/pebble"
	logpkg "github.com/earljwagner/IPOfflineQueue/pkg/log"
)

// parseFsync maps the config's fsync string onto a store mode. Unknown
// values fall back to always: the safe choice for a maintenance tool.
func parseFsync(s string) pebblestore.FsyncMode {
	switch s {
	case "interval":
		return pebblestore.FsyncModeInterval
	case "never":
		return pebblestore.FsyncModeNever
	default:
		return pebblestore.FsyncModeAlways
	}
}

// newLogger builds the CLI logger from the effective config.
func newLogger(cfg cfgpkg.Config) logpkg.Logger {
	level, err := logpkg.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if cfg.LogFormat == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	return logpkg.NewLogger(
		logpkg.WithLevel(level),
		logpkg.WithFormatter(formatter),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
}

// openJournal opens the named queue's store for offline inspection. Pebble's
// directory lock rejects a store whose queue is live in another process.
func openJournal(cfg cfgpkg.Config, dataDir, queue string) (*journal.Journal, func(), error) {
	if queue == "" {
		return nil, nil, fmt.Errorf("--queue is required")
	}
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir: cfgpkg.StorePath(dataDir, queue),
		Fsync:   parseFsync(cfg.Fsync),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	j, err := journal.Open(db, journal.Options{RetryBudget: cfg.RetryBudget})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}
	return j, func() { _ = db.Close() }, nil
}

func main() {
	cfg := cfgpkg.Default()
	cfgpkg.FromEnv(&cfg)

	logger := newLogger(cfg)
	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	var dataDir, queue, configPath string

	rootCmd := &cobra.Command{
		Use:   "ipq",
		Short: "Offline queue store CLI",
		Long:  "ipq inspects and maintains persisted offline-queue stores while their owning application is not running.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return nil
			}
			loaded, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("load --config: %w", err)
			}
			// Precedence: flags over env over file.
			cfgpkg.FromEnv(&loaded)
			cfg = loaded
			if !cmd.Flags().Changed("data-dir") {
				dataDir = cfg.CacheDir
			}
			logger = newLogger(cfg)
			logpkg.RedirectStdLog(logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", cfg.CacheDir, "Base directory holding queue stores")
	rootCmd.PersistentFlags().StringVar(&queue, "queue", "", "Queue name")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "List pending records in sequence order",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, closeFn, err := openJournal(cfg, dataDir, queue)
			if err != nil {
				return err
			}
			defer closeFn()
			recs, err := j.ScanAll()
			if err != nil {
				return err
			}
			for _, rec := range recs {
				fmt.Printf("%d\t%d bytes\t%q\n", rec.Seq, len(rec.Payload), preview(rec.Payload))
			}
			fmt.Printf("%d pending record(s), last seq %d\n", len(recs), j.LastSeq())
			return nil
		},
	}
	rootCmd.AddCommand(inspectCmd)

	lenCmd := &cobra.Command{
		Use:   "len",
		Short: "Count pending records",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, closeFn, err := openJournal(cfg, dataDir, queue)
			if err != nil {
				return err
			}
			defer closeFn()
			n, err := j.Len()
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
	rootCmd.AddCommand(lenCmd)

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all pending records",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, closeFn, err := openJournal(cfg, dataDir, queue)
			if err != nil {
				return err
			}
			defer closeFn()
			before, _ := j.Len()
			if err := j.Clear(); err != nil {
				return err
			}
			logger.Info("cleared queue store", logpkg.Str("queue", queue), logpkg.Int("removed", before))
			return nil
		},
	}
	rootCmd.AddCommand(clearCmd)

	var expr string
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Delete pending records matching a CEL expression",
		Long: "Deletes records whose payload matches the --expr CEL expression.\n" +
			"Variables: sequence (int), size (int), text (string), json (dyn).\n" +
			"Example: ipq filter --queue uploads --expr 'json.kind == \"ping\"'",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := predicate.Compile(expr)
			if err != nil {
				return fmt.Errorf("compile --expr: %w", err)
			}
			j, closeFn, err := openJournal(cfg, dataDir, queue)
			if err != nil {
				return err
			}
			defer closeFn()
			recs, err := j.ScanAll()
			if err != nil {
				return err
			}
			removed := 0
			for _, rec := range recs {
				if !m.Match(rec.Seq, rec.Payload) {
					continue
				}
				if err := j.Delete(rec.Seq); err != nil {
					return err
				}
				removed++
			}
			logger.Info("filter complete", logpkg.Str("queue", queue), logpkg.Int("removed", removed))
			return nil
		},
	}
	filterCmd.Flags().StringVar(&expr, "expr", "", "CEL expression selecting records to delete")
	rootCmd.AddCommand(filterCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// preview truncates a payload for display.
func preview(p []byte) string {
	const max = 48
	if len(p) <= max {
		return string(p)
	}
	return string(p[:max]) + "..."
}
