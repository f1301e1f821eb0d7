package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nonibytes/gallery/gallery/storage"
)

// DefaultCategory is used for tags that name no category
const DefaultCategory = "General"

// ArtworkDoc is the JSON document accepted by put
type ArtworkDoc struct {
	Title       string     `json:"title"`
	Artist      string     `json:"artist,omitempty"`
	Year        *int64     `json:"year,omitempty"`
	Description string     `json:"description,omitempty"`
	Images      []ImageDoc `json:"images"`
}

// ImageDoc is one image of an artwork. DisplayOrder 1 is the primary image;
// zero means "position in the list".
type ImageDoc struct {
	DisplayOrder int      `json:"display_order,omitempty"`
	File         string   `json:"file"`
	Tags         []TagRef `json:"tags,omitempty"`
}

// TagRef names a tag by its place in the category -> group -> tag hierarchy
type TagRef struct {
	Category string `json:"category,omitempty"`
	Group    string `json:"group"`
	Name     string `json:"name"`
}

// ParseArtworkDoc decodes and validates a document, filling defaults.
func ParseArtworkDoc(docJSON []byte) (*ArtworkDoc, error) {
	var doc ArtworkDoc
	if err := json.Unmarshal(docJSON, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}

	doc.Title = strings.TrimSpace(doc.Title)
	if doc.Title == "" {
		return nil, fmt.Errorf("document must contain a non-empty 'title'")
	}
	doc.Artist = strings.TrimSpace(doc.Artist)
	if len(doc.Images) == 0 {
		return nil, fmt.Errorf("artwork %q must have at least one image", doc.Title)
	}

	orders := make(map[int]bool, len(doc.Images))
	for i := range doc.Images {
		img := &doc.Images[i]
		if strings.TrimSpace(img.File) == "" {
			return nil, fmt.Errorf("image %d: 'file' must be a non-empty string", i)
		}
		if img.DisplayOrder == 0 {
			img.DisplayOrder = i + 1
		}
		if img.DisplayOrder < 0 {
			return nil, fmt.Errorf("image %d: display_order must be positive", i)
		}
		if orders[img.DisplayOrder] {
			return nil, fmt.Errorf("image %d: duplicate display_order %d", i, img.DisplayOrder)
		}
		orders[img.DisplayOrder] = true

		for j := range img.Tags {
			ref, err := normalizeTagRef(img.Tags[j])
			if err != nil {
				return nil, fmt.Errorf("image %d tag %d: %w", i, j, err)
			}
			img.Tags[j] = ref
		}
	}
	return &doc, nil
}

// normalizeTagRef trims the parts and fills the default category.
func normalizeTagRef(ref TagRef) (TagRef, error) {
	ref.Category = strings.TrimSpace(ref.Category)
	ref.Group = strings.TrimSpace(ref.Group)
	ref.Name = strings.TrimSpace(ref.Name)
	if ref.Category == "" {
		ref.Category = DefaultCategory
	}
	if ref.Group == "" || ref.Name == "" {
		return ref, fmt.Errorf("%w: 'group' and 'name' are required", ErrInvalidInput)
	}
	return ref, nil
}

// PutArtwork inserts an artwork with its images and tags, creating missing
// artists, categories, groups and tags. Returns the new artwork id.
func PutArtwork(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, doc *ArtworkDoc) (int64, error) {
	var artistID sql.NullInt64
	if doc.Artist != "" {
		id, err := ensureID(ctx, tx, sqlt.InsertArtist, sqlt.GetArtistID, doc.Artist)
		if err != nil {
			return 0, fmt.Errorf("artist: %w", err)
		}
		artistID = sql.NullInt64{Int64: id, Valid: true}
	}

	var description sql.NullString
	if doc.Description != "" {
		description = sql.NullString{String: doc.Description, Valid: true}
	}

	var artworkID int64
	if err := tx.QueryRowContext(ctx, sqlt.InsertArtwork, doc.Title, artistID, doc.Year, description).Scan(&artworkID); err != nil {
		return 0, fmt.Errorf("insert artwork: %w", err)
	}

	tags := newTagResolver(tx, sqlt)
	for _, img := range doc.Images {
		var imageID int64
		if err := tx.QueryRowContext(ctx, sqlt.InsertImage, artworkID, img.DisplayOrder, img.File).Scan(&imageID); err != nil {
			return 0, fmt.Errorf("insert image %s: %w", img.File, err)
		}
		for _, ref := range img.Tags {
			tagID, err := tags.resolve(ctx, ref)
			if err != nil {
				return 0, err
			}
			if _, err := tx.ExecContext(ctx, sqlt.InsertImageTag, imageID, tagID); err != nil {
				return 0, fmt.Errorf("tag image %s: %w", img.File, err)
			}
		}
	}

	return artworkID, nil
}

// ensureID inserts-or-ignores a row then reads its id back.
func ensureID(ctx context.Context, tx *sql.Tx, insertSQL, selectSQL string, args ...any) (int64, error) {
	if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
		return 0, err
	}
	var id int64
	if err := tx.QueryRowContext(ctx, selectSQL, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// tagResolver caches hierarchy ids for the duration of one put
type tagResolver struct {
	tx         *sql.Tx
	sqlt       storage.SQL
	categories map[string]int64
	groups     map[[2]string]int64
	tags       map[TagRef]int64
}

func newTagResolver(tx *sql.Tx, sqlt storage.SQL) *tagResolver {
	return &tagResolver{
		tx:         tx,
		sqlt:       sqlt,
		categories: make(map[string]int64),
		groups:     make(map[[2]string]int64),
		tags:       make(map[TagRef]int64),
	}
}

func (r *tagResolver) resolve(ctx context.Context, ref TagRef) (int64, error) {
	if id, ok := r.tags[ref]; ok {
		return id, nil
	}

	categoryID, ok := r.categories[ref.Category]
	if !ok {
		id, err := ensureID(ctx, r.tx, r.sqlt.InsertCategory, r.sqlt.GetCategoryID, ref.Category)
		if err != nil {
			return 0, fmt.Errorf("category %s: %w", ref.Category, err)
		}
		categoryID = id
		r.categories[ref.Category] = id
	}

	groupKey := [2]string{ref.Category, ref.Group}
	groupID, ok := r.groups[groupKey]
	if !ok {
		id, err := ensureID(ctx, r.tx, r.sqlt.InsertTagGroup, r.sqlt.GetTagGroupID, categoryID, ref.Group)
		if err != nil {
			return 0, fmt.Errorf("tag group %s: %w", ref.Group, err)
		}
		groupID = id
		r.groups[groupKey] = id
	}

	tagID, err := ensureID(ctx, r.tx, r.sqlt.InsertTag, r.sqlt.GetTagID, groupID, ref.Name)
	if err != nil {
		return 0, fmt.Errorf("tag %s-%s: %w", ref.Group, ref.Name, err)
	}
	r.tags[ref] = tagID
	return tagID, nil
}
