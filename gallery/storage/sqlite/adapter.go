package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nonibytes/gallery/gallery/storage"
	"github.com/nonibytes/gallery/gallery/storage/sqlbuilder"
)

const (
	catalogMagic   = "gallery"
	catalogVersion = "1"
)

type Adapter struct {
	Path       string
	DriverName string
}

// New uses the driver compiled into this build (see DefaultDriver).
func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: DefaultDriver}
}

func NewWithDriver(path, driver string) *Adapter {
	return &Adapter{Path: path, DriverName: driver}
}

func (a *Adapter) Backend() storage.Backend {
	return storage.BackendSQLite
}

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle {
	return sqlbuilder.PlaceholderQuestion
}

func (a *Adapter) CatalogID() string {
	return a.Path
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	dsn := a.Path + "?" + dsnParams(a.DriverName)
	if strings.Contains(a.Path, "?") {
		dsn = a.Path + "&" + dsnParams(a.DriverName)
	}
	db, err := sql.Open(a.DriverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// dsnParams sets busy timeout and foreign keys in the syntax each driver understands.
func dsnParams(driver string) string {
	if strings.HasPrefix(driver, "sqlite3") {
		return "_busy_timeout=5000&_foreign_keys=on"
	}
	return "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) SQL() storage.SQL {
	return SQLTemplates
}

func (a *Adapter) CreateCatalog(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ddlBase); err != nil {
		return err
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA synchronous=NORMAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA foreign_keys=ON;")

	sqlt := a.SQL()
	if _, err := db.ExecContext(ctx, sqlt.SetMeta, "gallery_magic", catalogMagic); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, sqlt.SetMeta, "gallery_version", catalogVersion); err != nil {
		return err
	}
	return nil
}

func (a *Adapter) OpenCatalog(ctx context.Context, db *sql.DB) (string, error) {
	sqlt := a.SQL()
	var magic string
	if err := db.QueryRowContext(ctx, sqlt.GetMeta, "gallery_magic").Scan(&magic); err != nil {
		return "", err
	}
	if magic != catalogMagic {
		return "", fmt.Errorf("not a gallery catalog")
	}
	var version string
	if err := db.QueryRowContext(ctx, sqlt.GetMeta, "gallery_version").Scan(&version); err != nil {
		return "", err
	}
	return version, nil
}
