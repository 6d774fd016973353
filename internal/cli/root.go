// Package cli implements the devmemory CLI commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/qoder-labs/devmemory/internal/config"
	"github.com/qoder-labs/devmemory/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	dbPath     string
	configPath string
	verbose    bool

	cfg *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "devmemory",
	Short: "Persistent memory for coding assistants",
	Long: "A development memory that records interactions, mistakes, and preferences,\n" +
		"learns coding patterns from them, and suggests relevant context back.\n" +
		"SQLite-backed by default, single binary.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $DEVMEMORY_DB or ~/.devmemory/memory.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.devmemory/config.yaml)")
	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

func loadConfig() *config.Config {
	if cfg == nil {
		c, err := config.Load(configPath)
		if err != nil {
			exitErr("load config", err)
		}
		cfg = c
	}
	return cfg
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("DEVMEMORY_DB"); env != "" {
		return env
	}
	return loadConfig().Storage.Path
}

func openStore(ctx context.Context) (store.Store, error) {
	c := loadConfig()
	if c.Storage.Driver == "postgres" {
		return store.NewPostgresStore(ctx, c.Storage.DSN)
	}
	return store.NewSQLiteStore(getDBPath())
}

func setupLogging() {
	level := parseLevel(loadConfig().Log.Level)
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
