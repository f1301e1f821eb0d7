package cliopt

import (
	"io"
	"log/slog"
	"os"

	"github.com/nonibytes/gallery/internal/config"
)

// GlobalOptions are resolved once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Backend        string
	SQLitePath     string
	PostgresDSN    string
	PostgresSchema string

	Format string

	MaxSubsetQueries int
	RankConcurrency  int
	DefaultLimit     int

	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return FromConfig(config.MustDefaults(), nil)
}

// FromConfig copies the merged configuration into options for commands
func FromConfig(cfg *config.Config, logger *slog.Logger) GlobalOptions {
	if logger == nil {
		logger = slog.Default()
	}
	return GlobalOptions{
		Backend:          cfg.Backend,
		SQLitePath:       cfg.SQLite.Path,
		PostgresDSN:      cfg.Postgres.DSN,
		PostgresSchema:   cfg.Postgres.Schema,
		Format:           cfg.Output.Format,
		MaxSubsetQueries: cfg.Search.MaxSubsetQueries,
		RankConcurrency:  cfg.Search.Concurrency,
		DefaultLimit:     cfg.Search.DefaultLimit,
		Logger:           logger,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
	}
}
