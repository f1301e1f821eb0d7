package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nonibytes/gallery/gallery/planner"
)

// SQLQuerier runs WHERE clauses through the artwork match template.
type SQLQuerier struct {
	DB *sql.DB
}

func (q SQLQuerier) QueryArtworks(ctx context.Context, where string, args []any) ([]ArtworkRow, error) {
	rows, err := q.DB.QueryContext(ctx, planner.BuildMatchSQL(where), args...)
	if err != nil {
		return nil, fmt.Errorf("execute match: %w", err)
	}
	defer rows.Close()
	return scanArtworkRows(rows)
}
