package gallery

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nonibytes/gallery/gallery/ops"
)

type (
	TagRef       = ops.TagRef
	TagUpdate    = ops.TagUpdate
	ArtworkPatch = ops.ArtworkPatch
)

// ParseTagRef reads "group/name" or "category/group/name"
func ParseTagRef(s string) (TagRef, error) {
	ref, err := ops.ParseTagRef(s)
	if err != nil {
		return ref, Wrap(ErrInvalid, "tag reference", err)
	}
	return ref, nil
}

// wrapEdit classifies a failure from an editing operation.
func wrapEdit(msg string, err error) *Error {
	switch {
	case errors.Is(err, ops.ErrArtworkNotFound), errors.Is(err, ops.ErrImageNotFound),
		errors.Is(err, ops.ErrTagNotFound), errors.Is(err, ops.ErrTagGroupNotFound):
		return Wrap(ErrNotFound, msg, err)
	case errors.Is(err, ops.ErrTagExists), errors.Is(err, ops.ErrTagGroupExists):
		return Wrap(ErrConflict, msg, err)
	case errors.Is(err, ops.ErrInvalidInput):
		return Wrap(ErrInvalid, msg, err)
	default:
		return Wrap(ErrSQL, msg, err)
	}
}

// inTx runs fn in a transaction, committing when it returns nil.
func (c *Catalog) inTx(ctx context.Context, msg string, fn func(tx *sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return wrapEdit(msg, err)
	}
	if err := tx.Commit(); err != nil {
		return Wrap(ErrSQL, "commit", err)
	}
	return nil
}

// TagImages adds tags to one image of an artwork, or to all its images when imageID is 0.
// Missing categories, groups and tags are created.
func (c *Catalog) TagImages(ctx context.Context, artworkID, imageID int64, refs []TagRef) (*TagUpdate, error) {
	var res *TagUpdate
	err := c.inTx(ctx, "tag images", func(tx *sql.Tx) (err error) {
		res, err = ops.TagImages(ctx, tx, c.adapter.SQL(), artworkID, imageID, refs)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("images tagged", "artwork_id", artworkID, "images", len(res.ImageIDs), "tags", len(res.TagIDs))
	return res, nil
}

// TagArtworks adds tags to every image of each artwork, all or nothing.
func (c *Catalog) TagArtworks(ctx context.Context, artworkIDs []int64, refs []TagRef) (*TagUpdate, error) {
	var res *TagUpdate
	err := c.inTx(ctx, "tag artworks", func(tx *sql.Tx) (err error) {
		res, err = ops.TagArtworks(ctx, tx, c.adapter.SQL(), artworkIDs, refs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UntagImages removes tags from one image, or from the whole artwork when imageID is 0.
func (c *Catalog) UntagImages(ctx context.Context, artworkID, imageID int64, refs []TagRef) (int64, error) {
	var removed int64
	err := c.inTx(ctx, "untag images", func(tx *sql.Tx) (err error) {
		removed, err = ops.UntagImages(ctx, tx, c.adapter.SQL(), artworkID, imageID, refs)
		return err
	})
	return removed, err
}

// UpdateArtwork changes title, artist, year or description
func (c *Catalog) UpdateArtwork(ctx context.Context, artworkID int64, patch ArtworkPatch) error {
	return c.inTx(ctx, "update artwork", func(tx *sql.Tx) error {
		return ops.UpdateArtwork(ctx, tx, c.adapter.SQL(), artworkID, patch)
	})
}

// DeleteImage removes one image with its tag links
func (c *Catalog) DeleteImage(ctx context.Context, imageID int64) (bool, error) {
	var found bool
	err := c.inTx(ctx, "delete image", func(tx *sql.Tx) (err error) {
		found, err = ops.DeleteImage(ctx, tx, c.adapter.SQL(), imageID)
		return err
	})
	return found, err
}

// CreateTagGroup adds a tag group to a category ("General" when empty)
func (c *Catalog) CreateTagGroup(ctx context.Context, category, group, description string) (int64, error) {
	var id int64
	err := c.inTx(ctx, "create tag group", func(tx *sql.Tx) (err error) {
		id, err = ops.CreateTagGroup(ctx, tx, c.adapter.SQL(), category, group, description)
		return err
	})
	return id, err
}

// CreateTag adds a tag without attaching it to any image
func (c *Catalog) CreateTag(ctx context.Context, ref TagRef, description string) (int64, error) {
	var id int64
	err := c.inTx(ctx, "create tag", func(tx *sql.Tx) (err error) {
		id, err = ops.CreateTag(ctx, tx, c.adapter.SQL(), ref, description)
		return err
	})
	return id, err
}

func (c *Catalog) SetTagDescription(ctx context.Context, ref TagRef, description string) error {
	return c.inTx(ctx, "describe tag", func(tx *sql.Tx) error {
		return ops.SetTagDescription(ctx, tx, c.adapter.SQL(), ref, description)
	})
}

func (c *Catalog) SetTagGroupDescription(ctx context.Context, category, group, description string) error {
	return c.inTx(ctx, "describe tag group", func(tx *sql.Tx) error {
		return ops.SetTagGroupDescription(ctx, tx, c.adapter.SQL(), category, group, description)
	})
}
