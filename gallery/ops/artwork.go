package ops

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nonibytes/gallery/gallery/storage"
)

// ErrArtworkNotFound is returned when an artwork or image id does not exist
var ErrArtworkNotFound = errors.New("artwork not found")

// ArtworkDetails is an artwork with its images and the tags of one image
type ArtworkDetails struct {
	ID          int64       `json:"artwork_id"`
	Name        string      `json:"artwork_name"`
	Artist      string      `json:"artist,omitempty"`
	Year        *int64      `json:"year,omitempty"`
	Description string      `json:"description,omitempty"`
	Images      []ImageInfo `json:"images"`
	// SelectedImage is the image whose tags are listed in Tags.
	SelectedImage int64    `json:"selected_image_id"`
	Tags          []TagRef `json:"tags"`
}

// ImageInfo is one image of an artwork
type ImageInfo struct {
	ID           int64  `json:"image_id"`
	DisplayOrder int    `json:"display_order"`
	File         string `json:"file"`
}

// GetArtworkDetails loads an artwork. Images are ordered by display order;
// tags belong to imageID when given, otherwise to the first image.
func GetArtworkDetails(ctx context.Context, db *sql.DB, sqlt storage.SQL, artworkID, imageID int64) (*ArtworkDetails, error) {
	d := &ArtworkDetails{}
	var year sql.NullInt64
	err := db.QueryRowContext(ctx, sqlt.GetArtwork, artworkID).Scan(&d.ID, &d.Name, &d.Artist, &year, &d.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtworkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load artwork: %w", err)
	}
	if year.Valid {
		y := year.Int64
		d.Year = &y
	}

	rows, err := db.QueryContext(ctx, sqlt.ListImagesByArtwork, artworkID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var img ImageInfo
		if err := rows.Scan(&img.ID, &img.DisplayOrder, &img.File); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		d.Images = append(d.Images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}

	d.Tags = []TagRef{}
	if len(d.Images) == 0 {
		return d, nil
	}

	d.SelectedImage = d.Images[0].ID
	if imageID != 0 {
		found := false
		for _, img := range d.Images {
			if img.ID == imageID {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrArtworkNotFound
		}
		d.SelectedImage = imageID
	}

	tagRows, err := db.QueryContext(ctx, sqlt.ListTagsByImage, d.SelectedImage)
	if err != nil {
		return nil, fmt.Errorf("list image tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var t TagRef
		if err := tagRows.Scan(&t.Category, &t.Group, &t.Name); err != nil {
			return nil, fmt.Errorf("scan image tag: %w", err)
		}
		d.Tags = append(d.Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image tags: %w", err)
	}
	return d, nil
}
