package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nonibytes/gallery/gallery/storage"
)

// DeleteByArtworkID deletes an artwork with its images and image tags.
// Tags themselves stay; they may be shared with other artworks.
func DeleteByArtworkID(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, artworkID int64) (bool, error) {
	queries := []struct {
		sql  string
		name string
	}{
		{sqlt.DeleteTagsByArtwork, "image tags"},
		{sqlt.DeleteImagesByArtwork, "images"},
	}

	for _, q := range queries {
		if _, err := tx.ExecContext(ctx, q.sql, artworkID); err != nil {
			return false, fmt.Errorf("delete %s: %w", q.name, err)
		}
	}

	res, err := tx.ExecContext(ctx, sqlt.DeleteArtwork, artworkID)
	if err != nil {
		return false, fmt.Errorf("delete artwork: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteArtwork deletes an artwork in its own transaction, returns true if it existed
func DeleteArtwork(ctx context.Context, db *sql.DB, sqlt storage.SQL, artworkID int64) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	found, err := DeleteByArtworkID(ctx, tx, sqlt, artworkID)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return found, nil
}
