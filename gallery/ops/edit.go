package ops

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nonibytes/gallery/gallery/storage"
)

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagGroupNotFound = errors.New("tag group not found")
	ErrTagExists        = errors.New("tag already exists")
	ErrTagGroupExists   = errors.New("tag group already exists")
	// ErrInvalidInput wraps every validation failure of an edit.
	ErrInvalidInput = errors.New("invalid input")
)

// TagUpdate lists the tags linked and the images they were linked to
type TagUpdate struct {
	TagIDs   []int64 `json:"tag_ids"`
	ImageIDs []int64 `json:"image_ids"`
}

// ArtworkPatch changes the non-nil fields of an artwork.
// An empty Artist or Description clears it; ClearYear removes the year.
type ArtworkPatch struct {
	Title       *string
	Artist      *string
	Year        *int64
	ClearYear   bool
	Description *string
}

// ParseTagRef reads "group/name" or "category/group/name".
func ParseTagRef(s string) (TagRef, error) {
	parts := strings.Split(s, "/")
	var ref TagRef
	switch len(parts) {
	case 2:
		ref = TagRef{Group: parts[0], Name: parts[1]}
	case 3:
		ref = TagRef{Category: parts[0], Group: parts[1], Name: parts[2]}
	default:
		return ref, fmt.Errorf("%w: tag %q must be group/name or category/group/name", ErrInvalidInput, s)
	}
	return normalizeTagRef(ref)
}

func (r TagRef) String() string {
	return r.Category + "/" + r.Group + "/" + r.Name
}

func lookupID(ctx context.Context, tx *sql.Tx, notFound error, query string, args ...any) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, notFound
	}
	return id, err
}

func nullText(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func requireArtwork(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, artworkID int64) error {
	var one int
	err := tx.QueryRowContext(ctx, sqlt.ArtworkExists, artworkID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("artwork %d: %w", artworkID, ErrArtworkNotFound)
	}
	return err
}

// targetImages resolves imageID (which must belong to the artwork) or,
// when imageID is 0, every image of the artwork.
func targetImages(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, artworkID, imageID int64) ([]int64, error) {
	if err := requireArtwork(ctx, tx, sqlt, artworkID); err != nil {
		return nil, err
	}
	if imageID != 0 {
		owner, err := lookupID(ctx, tx, ErrImageNotFound, sqlt.GetImageArtwork, imageID)
		if err == nil && owner != artworkID {
			err = ErrImageNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("image %d of artwork %d: %w", imageID, artworkID, err)
		}
		return []int64{imageID}, nil
	}

	rows, err := tx.QueryContext(ctx, sqlt.ListImageIDsByArtwork, artworkID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("artwork %d has no images: %w", artworkID, ErrImageNotFound)
	}
	return ids, nil
}

// linkTags attaches refs to every image, creating missing tags. Existing links are kept.
func linkTags(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, images []int64, refs []TagRef) (*TagUpdate, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: at least one tag is required", ErrInvalidInput)
	}
	res := &TagUpdate{ImageIDs: images}
	tags := newTagResolver(tx, sqlt)
	for _, ref := range refs {
		ref, err := normalizeTagRef(ref)
		if err != nil {
			return nil, err
		}
		tagID, err := tags.resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		for _, imageID := range images {
			if _, err := tx.ExecContext(ctx, sqlt.InsertImageTag, imageID, tagID); err != nil {
				return nil, fmt.Errorf("tag image %d: %w", imageID, err)
			}
		}
		res.TagIDs = append(res.TagIDs, tagID)
	}
	return res, nil
}

// TagImages adds tags to one image of an artwork, or to all of its images when imageID is 0.
func TagImages(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, artworkID, imageID int64, refs []TagRef) (*TagUpdate, error) {
	images, err := targetImages(ctx, tx, sqlt, artworkID, imageID)
	if err != nil {
		return nil, err
	}
	return linkTags(ctx, tx, sqlt, images, refs)
}

// TagArtworks adds tags to every image of each listed artwork.
func TagArtworks(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, artworkIDs []int64, refs []TagRef) (*TagUpdate, error) {
	if len(artworkIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one artwork is required", ErrInvalidInput)
	}
	var images []int64
	for _, id := range artworkIDs {
		ids, err := targetImages(ctx, tx, sqlt, id, 0)
		if err != nil {
			return nil, err
		}
		images = append(images, ids...)
	}
	return linkTags(ctx, tx, sqlt, images, refs)
}

// UntagImages removes tags from one image, or from every image of the artwork
// when imageID is 0. Returns the number of links removed.
func UntagImages(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, artworkID, imageID int64, refs []TagRef) (int64, error) {
	if len(refs) == 0 {
		return 0, fmt.Errorf("%w: at least one tag is required", ErrInvalidInput)
	}
	if imageID != 0 {
		if _, err := targetImages(ctx, tx, sqlt, artworkID, imageID); err != nil {
			return 0, err
		}
	} else if err := requireArtwork(ctx, tx, sqlt, artworkID); err != nil {
		return 0, err
	}

	var removed int64
	for _, ref := range refs {
		ref, err := normalizeTagRef(ref)
		if err != nil {
			return 0, err
		}
		tagID, err := lookupID(ctx, tx, ErrTagNotFound, sqlt.FindTagID, ref.Category, ref.Group, ref.Name)
		if err != nil {
			return 0, fmt.Errorf("tag %s: %w", ref, err)
		}

		var res sql.Result
		if imageID != 0 {
			res, err = tx.ExecContext(ctx, sqlt.DeleteImageTag, imageID, tagID)
		} else {
			res, err = tx.ExecContext(ctx, sqlt.DeleteTagFromArtwork, tagID, artworkID)
		}
		if err != nil {
			return 0, fmt.Errorf("untag %s: %w", ref, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		removed += n
	}
	return removed, nil
}

// UpdateArtwork rewrites an artwork's metadata with patch applied.
func UpdateArtwork(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, artworkID int64, patch ArtworkPatch) error {
	var (
		id                         int64
		title, artist, description string
		year                       sql.NullInt64
	)
	err := tx.QueryRowContext(ctx, sqlt.GetArtwork, artworkID).Scan(&id, &title, &artist, &year, &description)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("artwork %d: %w", artworkID, ErrArtworkNotFound)
	}
	if err != nil {
		return fmt.Errorf("load artwork: %w", err)
	}

	if patch.Title != nil {
		title = strings.TrimSpace(*patch.Title)
		if title == "" {
			return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
	}
	if patch.Artist != nil {
		artist = strings.TrimSpace(*patch.Artist)
	}
	if patch.Description != nil {
		description = *patch.Description
	}
	switch {
	case patch.ClearYear:
		year = sql.NullInt64{}
	case patch.Year != nil:
		year = sql.NullInt64{Int64: *patch.Year, Valid: true}
	}

	var artistID sql.NullInt64
	if artist != "" {
		aid, err := ensureID(ctx, tx, sqlt.InsertArtist, sqlt.GetArtistID, artist)
		if err != nil {
			return fmt.Errorf("artist: %w", err)
		}
		artistID = sql.NullInt64{Int64: aid, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, sqlt.UpdateArtwork, title, artistID, year, nullText(description), artworkID); err != nil {
		return fmt.Errorf("update artwork: %w", err)
	}
	return nil
}

// DeleteImage removes one image and its tag links. Returns false if it did not exist.
func DeleteImage(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, imageID int64) (bool, error) {
	if _, err := tx.ExecContext(ctx, sqlt.DeleteTagsByImage, imageID); err != nil {
		return false, fmt.Errorf("delete image tags: %w", err)
	}
	res, err := tx.ExecContext(ctx, sqlt.DeleteImage, imageID)
	if err != nil {
		return false, fmt.Errorf("delete image: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// CreateTagGroup adds an empty tag group, creating the category if needed.
func CreateTagGroup(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, category, group, description string) (int64, error) {
	ref, err := normalizeTagRef(TagRef{Category: category, Group: group, Name: "-"})
	if err != nil {
		return 0, err
	}
	_, err = lookupID(ctx, tx, ErrTagGroupNotFound, sqlt.FindTagGroupID, ref.Category, ref.Group)
	if err == nil {
		return 0, fmt.Errorf("%s/%s: %w", ref.Category, ref.Group, ErrTagGroupExists)
	}
	if !errors.Is(err, ErrTagGroupNotFound) {
		return 0, err
	}

	categoryID, err := ensureID(ctx, tx, sqlt.InsertCategory, sqlt.GetCategoryID, ref.Category)
	if err != nil {
		return 0, fmt.Errorf("category %s: %w", ref.Category, err)
	}
	groupID, err := ensureID(ctx, tx, sqlt.InsertTagGroup, sqlt.GetTagGroupID, categoryID, ref.Group)
	if err != nil {
		return 0, fmt.Errorf("tag group %s: %w", ref.Group, err)
	}
	if _, err := tx.ExecContext(ctx, sqlt.SetTagGroupDescription, nullText(description), groupID); err != nil {
		return 0, fmt.Errorf("describe tag group: %w", err)
	}
	return groupID, nil
}

// CreateTag adds a tag not yet attached to any image.
func CreateTag(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, ref TagRef, description string) (int64, error) {
	ref, err := normalizeTagRef(ref)
	if err != nil {
		return 0, err
	}
	_, err = lookupID(ctx, tx, ErrTagNotFound, sqlt.FindTagID, ref.Category, ref.Group, ref.Name)
	if err == nil {
		return 0, fmt.Errorf("%s: %w", ref, ErrTagExists)
	}
	if !errors.Is(err, ErrTagNotFound) {
		return 0, err
	}

	tagID, err := newTagResolver(tx, sqlt).resolve(ctx, ref)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, sqlt.SetTagDescription, nullText(description), tagID); err != nil {
		return 0, fmt.Errorf("describe tag: %w", err)
	}
	return tagID, nil
}

// SetTagDescription replaces a tag's description; empty clears it.
func SetTagDescription(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, ref TagRef, description string) error {
	ref, err := normalizeTagRef(ref)
	if err != nil {
		return err
	}
	tagID, err := lookupID(ctx, tx, ErrTagNotFound, sqlt.FindTagID, ref.Category, ref.Group, ref.Name)
	if err != nil {
		return fmt.Errorf("tag %s: %w", ref, err)
	}
	if _, err := tx.ExecContext(ctx, sqlt.SetTagDescription, nullText(description), tagID); err != nil {
		return fmt.Errorf("describe tag: %w", err)
	}
	return nil
}

// SetTagGroupDescription replaces a tag group's description; empty clears it.
func SetTagGroupDescription(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, category, group, description string) error {
	ref, err := normalizeTagRef(TagRef{Category: category, Group: group, Name: "-"})
	if err != nil {
		return err
	}
	groupID, err := lookupID(ctx, tx, ErrTagGroupNotFound, sqlt.FindTagGroupID, ref.Category, ref.Group)
	if err != nil {
		return fmt.Errorf("tag group %s/%s: %w", ref.Category, ref.Group, err)
	}
	if _, err := tx.ExecContext(ctx, sqlt.SetTagGroupDescription, nullText(description), groupID); err != nil {
		return fmt.Errorf("describe tag group: %w", err)
	}
	return nil
}
