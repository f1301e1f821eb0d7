package gallery

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/nonibytes/gallery/gallery/ops"
	"github.com/nonibytes/gallery/gallery/storage"
)

// Catalog represents an open gallery catalog
type Catalog struct {
	adapter storage.Adapter
	db      *sql.DB
	opts    CatalogOptions
	logger  *slog.Logger
}

// Create creates the catalog tables (if missing) and opens the catalog
func Create(ctx context.Context, adapter storage.Adapter, opts CatalogOptions) (*Catalog, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}

	if err := adapter.CreateCatalog(ctx, db); err != nil {
		db.Close()
		return nil, Wrap(ErrSQL, "create catalog", err)
	}

	return newCatalog(adapter, db, opts), nil
}

// Open opens an existing catalog
func Open(ctx context.Context, adapter storage.Adapter, opts CatalogOptions) (*Catalog, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}

	version, err := adapter.OpenCatalog(ctx, db)
	if err != nil {
		db.Close()
		return nil, Wrap(ErrSchema, "open catalog", err)
	}

	c := newCatalog(adapter, db, opts)
	c.logger.Debug("catalog opened", "catalog", adapter.CatalogID(), "backend", adapter.Backend(), "version", version)
	return c, nil
}

func newCatalog(adapter storage.Adapter, db *sql.DB, opts CatalogOptions) *Catalog {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		adapter: adapter,
		db:      db,
		opts:    opts,
		logger:  logger.With("catalog", adapter.CatalogID()),
	}
}

// Close closes the catalog
func (c *Catalog) Close() error {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return Wrap(ErrIO, "close database", err)
		}
	}
	return c.adapter.Close()
}

// Search executes a query and returns one page of results.
// With match:partial and at least one tag the page is ranked by how many
// tags each artwork satisfies.
func (c *Catalog) Search(ctx context.Context, queryStr string, sopts SearchOptions) (SearchResultPage, error) {
	result, err := ops.Search(ctx, c.db, c.adapter, queryStr, ops.SearchOptions{
		Limit:            sopts.Limit,
		Offset:           sopts.Offset,
		MaxSubsetQueries: c.opts.MaxSubsetQueries,
		Concurrency:      c.opts.RankConcurrency,
		Explain:          sopts.Explain,
		Logger:           c.logger,
	})
	if err != nil {
		return SearchResultPage{}, wrapQuery("search", err)
	}

	return SearchResultPage{
		SearchID:      result.SearchID,
		Rows:          result.Rows,
		Total:         result.Total,
		Partial:       result.Partial,
		Truncated:     result.Truncated,
		SubsetQueries: result.SubsetQueries,
		ExplainSQL:    result.ExplainSQL,
		ExplainSteps:  result.ExplainSteps,
	}, nil
}

// Explain returns the SQL and compile steps for a query without running it
func (c *Catalog) Explain(queryStr string, sopts SearchOptions) (SearchResultPage, error) {
	result, err := ops.Explain(c.adapter, queryStr, sopts.Limit, sopts.Offset)
	if err != nil {
		return SearchResultPage{}, wrapQuery("explain", err)
	}
	return SearchResultPage{
		Partial:      result.Partial,
		ExplainSQL:   result.ExplainSQL,
		ExplainSteps: result.ExplainSteps,
	}, nil
}

// PutJSON inserts an artwork from its JSON document and returns its id
func (c *Catalog) PutJSON(ctx context.Context, docJSON []byte) (int64, error) {
	doc, err := ops.ParseArtworkDoc(docJSON)
	if err != nil {
		return 0, Wrap(ErrSchema, "artwork document", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	id, err := ops.PutArtwork(ctx, tx, c.adapter.SQL(), doc)
	if err != nil {
		return 0, Wrap(ErrSQL, "put artwork", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, Wrap(ErrSQL, "commit", err)
	}
	c.logger.Debug("artwork stored", "artwork_id", id, "images", len(doc.Images))
	return id, nil
}

// Delete removes an artwork by id
func (c *Catalog) Delete(ctx context.Context, artworkID int64) (bool, error) {
	found, err := ops.DeleteArtwork(ctx, c.db, c.adapter.SQL(), artworkID)
	if err != nil {
		return false, Wrap(ErrSQL, "delete artwork", err)
	}
	return found, nil
}

// Batch executes a batch of operations in one transaction
func (c *Catalog) Batch(ctx context.Context, b Batch) (int, error) {
	if b.Empty() {
		return 0, nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	sqlt := c.adapter.SQL()

	count := 0
	for _, op := range b.ops {
		switch op.Kind {
		case batchPut:
			if _, err := ops.PutArtwork(ctx, tx, sqlt, op.Doc); err != nil {
				return count, Wrap(ErrSQL, "put artwork", err)
			}
		case batchDelete:
			found, err := ops.DeleteByArtworkID(ctx, tx, sqlt, op.ArtworkID)
			if err != nil {
				return count, Wrap(ErrSQL, "delete artwork", err)
			}
			if !found {
				// Artwork doesn't exist, skip
				continue
			}
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return count, Wrap(ErrSQL, "commit transaction", err)
	}
	return count, nil
}

// Artwork loads an artwork with its images and the tags of imageID
// (or of the primary image when imageID is 0)
func (c *Catalog) Artwork(ctx context.Context, artworkID, imageID int64) (*ArtworkDetails, error) {
	d, err := ops.GetArtworkDetails(ctx, c.db, c.adapter.SQL(), artworkID, imageID)
	if errors.Is(err, ops.ErrArtworkNotFound) {
		return nil, NotFoundError("artwork", artworkID)
	}
	if err != nil {
		return nil, Wrap(ErrSQL, "get artwork", err)
	}
	return d, nil
}

// UsedTags lists the category -> group -> tag hierarchy of tags in use
func (c *Catalog) UsedTags(ctx context.Context) ([]Category, error) {
	cats, err := ops.UsedTags(ctx, c.db, c.adapter.SQL())
	if err != nil {
		return nil, Wrap(ErrSQL, "used tags", err)
	}
	return cats, nil
}

// AllTags lists the full tag hierarchy
func (c *Catalog) AllTags(ctx context.Context) ([]Category, error) {
	cats, err := ops.AllTags(ctx, c.db, c.adapter.SQL())
	if err != nil {
		return nil, Wrap(ErrSQL, "all tags", err)
	}
	return cats, nil
}

// DiscoverTags lists the most used tags among artworks matching where
func (c *Catalog) DiscoverTags(ctx context.Context, where string, top int) ([]TagCount, error) {
	if top <= 0 {
		top = DefaultDiscoverTop
	}
	counts, err := ops.DiscoverTags(ctx, c.db, c.adapter, where, top)
	if err != nil {
		return nil, wrapQuery("discover tags", err)
	}
	return counts, nil
}

// Stats counts artworks, images and tags
func (c *Catalog) Stats(ctx context.Context) (*StatsResult, error) {
	res, err := ops.Stats(ctx, c.db, c.adapter.SQL())
	if err != nil {
		return nil, Wrap(ErrSQL, "stats", err)
	}
	return res, nil
}

// Adapter returns the underlying storage adapter
func (c *Catalog) Adapter() storage.Adapter {
	return c.adapter
}

// DB returns the underlying database connection (for advanced use)
func (c *Catalog) DB() *sql.DB {
	return c.db
}
