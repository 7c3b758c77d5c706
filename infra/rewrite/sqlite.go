// Package rewrite stores URL rewrites in SQLite.
package rewrite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	corerewrite "github.com/kilianp07/catalog/core/rewrite"
)

// SQLiteFinder persists rewrites in a SQLite database and implements
// corerewrite.Finder.
type SQLiteFinder struct {
	db *sql.DB
}

// NewSQLiteFinder opens or creates the database at path and ensures schema.
func NewSQLiteFinder(path string) (*SQLiteFinder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS url_rewrite (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        entity_type TEXT NOT NULL,
        entity_id INTEGER NOT NULL,
        request_path TEXT NOT NULL,
        target_path TEXT NOT NULL,
        redirect_type INTEGER NOT NULL DEFAULT 0,
        store_id INTEGER NOT NULL,
        category_id INTEGER NOT NULL DEFAULT 0,
        UNIQUE(request_path, store_id)
    );
    CREATE INDEX IF NOT EXISTS url_rewrite_entity
        ON url_rewrite (entity_type, entity_id, store_id, redirect_type, category_id);`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteFinder{db: db}, nil
}

// Add inserts a rewrite and returns it with its id set.
func (s *SQLiteFinder) Add(ctx context.Context, rw corerewrite.Rewrite) (corerewrite.Rewrite, error) {
	if rw.EntityType == "" || rw.RequestPath == "" {
		return rw, errors.New("rewrite: entity type and request path are required")
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO url_rewrite
        (entity_type, entity_id, request_path, target_path, redirect_type, store_id, category_id)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rw.EntityType, rw.EntityID, rw.RequestPath, rw.TargetPath, rw.RedirectType, rw.StoreID, rw.CategoryID)
	if err != nil {
		return rw, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return rw, err
	}
	rw.ID = id
	return rw, nil
}

// FindOneByData implements corerewrite.Finder.
func (s *SQLiteFinder) FindOneByData(ctx context.Context, f corerewrite.Filter) (*corerewrite.Rewrite, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, entity_type, entity_id, request_path, target_path,
            redirect_type, store_id, category_id
        FROM url_rewrite
        WHERE entity_type = ? AND entity_id = ? AND store_id = ? AND redirect_type = ? AND category_id = ?
        ORDER BY id LIMIT 1`,
		f.EntityType, f.EntityID, f.StoreID, f.RedirectType, f.CategoryID)
	var rw corerewrite.Rewrite
	err := row.Scan(&rw.ID, &rw.EntityType, &rw.EntityID, &rw.RequestPath, &rw.TargetPath,
		&rw.RedirectType, &rw.StoreID, &rw.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

// Close closes the underlying database.
func (s *SQLiteFinder) Close() error {
	return s.db.Close()
}
