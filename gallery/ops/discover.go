package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nonibytes/gallery/gallery/planner"
	"github.com/nonibytes/gallery/gallery/storage"
	"github.com/nonibytes/gallery/gallery/storage/sqlbuilder"
)

// TagCount is a tag with the number of matching artworks carrying it
type TagCount struct {
	Category string `json:"category"`
	Group    string `json:"group"`
	Tag      string `json:"tag"`
	Count    uint64 `json:"count"`
}

// DiscoverTags returns the most used tags among artworks matching queryStr.
// An empty query covers the whole catalog.
func DiscoverTags(ctx context.Context, db *sql.DB, adapter storage.Adapter, queryStr string, top int) ([]TagCount, error) {
	if top <= 0 {
		top = 20
	}

	builder := sqlbuilder.New(adapter.PlaceholderStyle())
	compiled, err := planner.CompileInto(queryStr, builder)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	querySQL := planner.BuildDiscoverSQL(compiled.WhereClause, top, builder)
	rows, err := db.QueryContext(ctx, querySQL, builder.Args()...)
	if err != nil {
		return nil, fmt.Errorf("discover tags: %w", err)
	}
	defer rows.Close()

	out := []TagCount{}
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Category, &tc.Group, &tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan tag count: %w", err)
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag counts: %w", err)
	}
	return out, nil
}
