// Package cli implements the zeroclaw-memory CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeroclaw/memory/internal/config"
	"github.com/zeroclaw/memory/internal/logging"
	"github.com/zeroclaw/memory/internal/lucid"
	"github.com/zeroclaw/memory/internal/store"
)

var (
	cfgPath   string
	dbPath    string
	workspace string
	logLevel  string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "zeroclaw-memory",
	Short: "Local-first agent memory with distributed context fallback",
	Long: "Persistent agent memory. SQLite-backed and local-first; thin recall\n" +
		"results are enriched from the lucid distributed-context tool when it\n" +
		"is available, and silently skipped when it is not.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: ~/.zeroclaw/memory.yaml)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $ZEROCLAW_MEMORY_DB or ~/.zeroclaw/memory.db)")
	RootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory passed to lucid (default: cwd)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// Flags beat everything.
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if workspace != "" {
		cfg.Workspace = workspace
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cfg.Workspace == "" {
		cfg.Workspace, _ = os.Getwd()
	}
	return cfg, nil
}

func openStore() (*store.SQLiteStore, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logging.SetDefault(logging.New(cfg.LogLevel, os.Stderr))

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

func openMemory() (*lucid.LucidMemory, *store.SQLiteStore, error) {
	s, cfg, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return lucid.NewWithOptions(cfg.Workspace, s, cfg.Lucid.Options()), s, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
