// Package cache stores tag lookups in SQLite so repeated runs over the same
// library skip re-reading unchanged files.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/spread/internal/db"
)

const (
	appName    = "spread"
	dbFileName = "tags.db"
)

// Entry is the cached result of reading one file's tags.
// An entry is valid only while the file's mtime and size are unchanged.
type Entry struct {
	Path   string
	MTime  int64
	Size   int64
	Artist string
	Rating int
	Rated  bool
}

// Cache is a SQLite-backed tag cache.
type Cache struct {
	db *sql.DB
}

// DefaultPath returns the cache location under the XDG cache directory,
// creating parent directories as needed.
func DefaultPath() (string, error) {
	return xdg.CacheFile(filepath.Join(appName, dbFileName))
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serializes writers; one connection avoids SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Cache{db: conn}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached entry for path if it was stored with the same
// mtime and size.
func (c *Cache) Lookup(ctx context.Context, path string, mtime, size int64) (Entry, bool, error) {
	e := Entry{Path: path}
	var rating sql.NullInt64
	err := c.db.QueryRowContext(ctx, `
		SELECT mtime, size, artist, rating FROM tags WHERE path = ?
	`, path).Scan(&e.MTime, &e.Size, &e.Artist, &rating)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	if e.MTime != mtime || e.Size != size {
		return Entry{}, false, nil
	}
	e.Rating, e.Rated = db.IntValue(rating)
	return e, true, nil
}

// Store inserts or replaces entries in a single transaction.
func (c *Cache) Store(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return db.WithTx(ctx, c.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR REPLACE INTO tags (path, mtime, size, artist, rating)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i := range entries {
			e := &entries[i]
			if _, err := stmt.ExecContext(ctx, e.Path, e.MTime, e.Size, e.Artist, db.NullInt(e.Rating, e.Rated)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Forget removes the entries for paths.
func (c *Cache) Forget(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return db.WithTx(ctx, c.db, func(tx *sql.Tx) error {
		for _, p := range paths {
			if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE path = ?`, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// Len returns the number of cached entries.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&n)
	return n, err
}
