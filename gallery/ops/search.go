package ops

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/nonibytes/gallery/gallery/planner"
	"github.com/nonibytes/gallery/gallery/storage"
	"github.com/nonibytes/gallery/gallery/storage/sqlbuilder"
)

// DefaultLimit is the page size used when a caller passes none
const DefaultLimit = 20

// SearchOptions configures a search operation
type SearchOptions struct {
	Limit  int
	Offset int
	// MaxSubsetQueries caps tag-subset queries in partial-match mode.
	MaxSubsetQueries int
	// Concurrency bounds parallel subset queries within one level.
	Concurrency int
	Explain     bool
	Logger      *slog.Logger
}

// SearchResult is the result of a search operation
type SearchResult struct {
	SearchID string
	Rows     []ArtworkRow
	// Total counts all matching artworks, not just this page.
	Total         int
	Partial       bool
	Truncated     bool
	SubsetQueries int
	ExplainSQL    string
	ExplainSteps  []string
}

// ArtworkRow is one artwork returned by a search
type ArtworkRow struct {
	ID            int64  `json:"artwork_id"`
	Name          string `json:"artwork_name"`
	Artist        string `json:"artist,omitempty"`
	Year          *int64 `json:"year,omitempty"`
	Description   string `json:"description,omitempty"`
	MatchedImages int64  `json:"matched_images"`
	MatchScore    int    `json:"match_score,omitempty"`
}

// Search executes a search query
func Search(ctx context.Context, db *sql.DB, adapter storage.Adapter, queryStr string, opts SearchOptions) (*SearchResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	searchID, err := gonanoid.New(12)
	if err != nil {
		return nil, fmt.Errorf("generate search id: %w", err)
	}
	logger = logger.With("search_id", searchID)
	start := time.Now()

	// 1. Parse + compile
	builder := sqlbuilder.New(adapter.PlaceholderStyle())
	compiled, err := planner.CompileInto(queryStr, builder)
	if err != nil {
		logger.Debug("search rejected", "query", queryStr, "error", err)
		return nil, fmt.Errorf("compile query: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := max(opts.Offset, 0)

	logger.Debug("search start",
		"query", queryStr,
		"partial", compiled.PartialMatch,
		"tags", len(compiled.TagQueries),
		"version_filter", compiled.HasVersionFilter,
	)

	// 2. Partial match with tags goes to the ranking engine
	if compiled.PartialMatch && len(compiled.Terms) > 0 {
		ranked, err := RankPartial(ctx, SQLQuerier{DB: db}, adapter.PlaceholderStyle(), compiled.Terms, RankOptions{
			Limit:            limit,
			Offset:           offset,
			MaxSubsetQueries: opts.MaxSubsetQueries,
			Concurrency:      opts.Concurrency,
			Logger:           logger,
		})
		if err != nil {
			return nil, fmt.Errorf("rank partial match: %w", err)
		}
		res := &SearchResult{
			SearchID:      searchID,
			Rows:          ranked.Rows,
			Total:         ranked.Total,
			Partial:       true,
			Truncated:     ranked.Truncated,
			SubsetQueries: ranked.SubsetQueries,
		}
		if opts.Explain {
			res.ExplainSQL = planner.BuildMatchSQL(compiled.WhereClause)
			res.ExplainSteps = compiled.Steps
		}
		logger.Info("search done", "partial", true, "rows", len(res.Rows), "total", res.Total,
			"subset_queries", res.SubsetQueries, "elapsed", time.Since(start))
		return res, nil
	}

	// 3. Standard path: count, then one page
	whereArgs := append([]any{}, builder.Args()...)
	var total int
	if err := db.QueryRowContext(ctx, planner.BuildCountSQL(compiled.WhereClause), whereArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count matches: %w", err)
	}

	searchSQL := planner.BuildSearchSQL(compiled.WhereClause, limit, offset, builder)
	rows, err := db.QueryContext(ctx, searchSQL, builder.Args()...)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}
	defer rows.Close()

	found, err := scanArtworkRows(rows)
	if err != nil {
		return nil, err
	}

	res := &SearchResult{
		SearchID: searchID,
		Rows:     found,
		Total:    total,
	}
	if opts.Explain {
		res.ExplainSQL = searchSQL
		res.ExplainSteps = compiled.Steps
	}
	logger.Info("search done", "partial", false, "rows", len(found), "total", total, "elapsed", time.Since(start))
	return res, nil
}

// Explain compiles a query and returns the SQL a search would run, without running it.
func Explain(adapter storage.Adapter, queryStr string, limit, offset int) (*SearchResult, error) {
	builder := sqlbuilder.New(adapter.PlaceholderStyle())
	compiled, err := planner.CompileInto(queryStr, builder)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	res := &SearchResult{
		Partial:      compiled.PartialMatch && len(compiled.Terms) > 0,
		ExplainSteps: compiled.Steps,
	}
	if res.Partial {
		res.ExplainSQL = planner.BuildMatchSQL(compiled.WhereClause)
		res.ExplainSteps = append(res.ExplainSteps, fmt.Sprintf("RANK %d tag terms by subset size", len(compiled.Terms)))
	} else {
		res.ExplainSQL = planner.BuildSearchSQL(compiled.WhereClause, limit, max(offset, 0), builder)
	}
	return res, nil
}

func scanArtworkRows(rows *sql.Rows) ([]ArtworkRow, error) {
	var out []ArtworkRow
	for rows.Next() {
		var r ArtworkRow
		var year sql.NullInt64
		if err := rows.Scan(&r.ID, &r.Name, &r.Artist, &year, &r.Description, &r.MatchedImages); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if year.Valid {
			y := year.Int64
			r.Year = &y
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
