package storage

import (
	"context"
	"database/sql"

	"github.com/nonibytes/gallery/gallery/storage/sqlbuilder"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Adapter abstracts database-specific operations
type Adapter interface {
	Backend() Backend
	PlaceholderStyle() sqlbuilder.PlaceholderStyle
	CatalogID() string

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	// CreateCatalog creates the tables if missing and stamps the meta rows.
	CreateCatalog(ctx context.Context, db *sql.DB) error
	// OpenCatalog checks the meta rows and returns the stored schema version.
	OpenCatalog(ctx context.Context, db *sql.DB) (version string, err error)

	SQL() SQL
}

// Builder interface for placeholder management
type Builder interface {
	Arg(v any) string
	Args() []any
	Len() int
}

// SQL holds prepared SQL templates for common operations
type SQL struct {
	GetMeta string
	SetMeta string

	InsertCategory string
	GetCategoryID  string
	InsertTagGroup string
	GetTagGroupID  string
	InsertTag      string
	GetTagID       string
	InsertArtist   string
	GetArtistID    string

	InsertArtwork  string
	InsertImage    string
	InsertImageTag string

	GetArtwork            string
	ListImagesByArtwork   string
	ListTagsByImage       string
	DeleteTagsByArtwork   string
	DeleteImagesByArtwork string
	DeleteArtwork         string

	ListUsedTags string
	ListAllTags  string

	ArtworkExists          string
	ListImageIDsByArtwork  string
	GetImageArtwork        string
	UpdateArtwork          string
	DeleteTagsByImage      string
	DeleteImage            string
	DeleteImageTag         string
	DeleteTagFromArtwork   string
	FindTagID              string
	FindTagGroupID         string
	SetTagDescription      string
	SetTagGroupDescription string

	CountArtworks string
	CountImages   string
	CountTags     string
}
