package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nonibytes/gallery/gallery/storage"
)

// StatsResult holds catalog-wide row counts
type StatsResult struct {
	Artworks uint64 `json:"artworks"`
	Images   uint64 `json:"images"`
	Tags     uint64 `json:"tags"`
}

// Stats counts artworks, images and tags
func Stats(ctx context.Context, db *sql.DB, sqlt storage.SQL) (*StatsResult, error) {
	res := &StatsResult{}
	counts := []struct {
		sql  string
		name string
		dst  *uint64
	}{
		{sqlt.CountArtworks, "artworks", &res.Artworks},
		{sqlt.CountImages, "images", &res.Images},
		{sqlt.CountTags, "tags", &res.Tags},
	}
	for _, c := range counts {
		if err := db.QueryRowContext(ctx, c.sql).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
	}
	return res, nil
}
