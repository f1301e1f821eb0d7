package cliutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nonibytes/gallery/gallery"
	"github.com/nonibytes/gallery/gallery/storage"
	"github.com/nonibytes/gallery/gallery/storage/postgres"
	"github.com/nonibytes/gallery/gallery/storage/sqlite"
	"github.com/nonibytes/gallery/internal/cliopt"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatJSON:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// ResolveSQLitePath turns --sqlite-path into a database file.
// An existing directory gets gallery.db inside it.
func ResolveSQLitePath(p string) string {
	if st, err := os.Stat(p); err == nil && st.IsDir() {
		return filepath.Join(p, "gallery.db")
	}
	return p
}

// NewAdapter builds the storage adapter selected by the global options
func NewAdapter(g cliopt.GlobalOptions) (storage.Adapter, error) {
	switch strings.ToLower(g.Backend) {
	case "postgres", "pg":
		if g.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend needs --pg-dsn")
		}
		schema := g.PostgresSchema
		if schema == "" {
			schema = "gallery"
		}
		return postgres.New(g.PostgresDSN, schema), nil
	case "", "sqlite":
		return sqlite.New(ResolveSQLitePath(g.SQLitePath)), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", g.Backend)
	}
}

// CatalogOptions maps search settings onto the library options
func CatalogOptions(g cliopt.GlobalOptions) gallery.CatalogOptions {
	opts := gallery.DefaultCatalogOptions()
	if g.MaxSubsetQueries > 0 {
		opts.MaxSubsetQueries = g.MaxSubsetQueries
	}
	if g.RankConcurrency > 0 {
		opts.RankConcurrency = g.RankConcurrency
	}
	if g.Logger != nil {
		opts.Logger = g.Logger
	}
	return opts
}

// OpenCatalog opens an existing catalog; create makes the tables first.
func OpenCatalog(ctx context.Context, g cliopt.GlobalOptions, create bool) (*gallery.Catalog, error) {
	adapter, err := NewAdapter(g)
	if err != nil {
		return nil, err
	}
	if create {
		return gallery.Create(ctx, adapter, CatalogOptions(g))
	}
	return gallery.Open(ctx, adapter, CatalogOptions(g))
}
