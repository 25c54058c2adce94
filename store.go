package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const documentColumns = `slug, title, description, html_metadata, image, tags, date, created_at, post_number, body`

// SQLiteStore wraps a SQLite database and stores raw documents by slug.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while an import is writing; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    html_metadata TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT '',
    post_number INTEGER NOT NULL DEFAULT 0,
    body TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (RawDocument, error) {
	var d RawDocument
	err := row.Scan(&d.Slug, &d.Title, &d.Description, &d.HTMLMetadata, &d.Image,
		&d.Tags, &d.Date, &d.CreatedAt, &d.PostNumber, &d.Body)
	return d, err
}

// Fetch returns the document stored under slug, or ErrNotFound.
func (s *SQLiteStore) Fetch(ctx context.Context, slug string) (RawDocument, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE slug = ?`, slug)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RawDocument{}, ErrNotFound
		}
		return RawDocument{}, fmt.Errorf("fetch %q: %w", slug, err)
	}
	return doc, nil
}

// List returns every document ordered by post number descending.
func (s *SQLiteStore) List(ctx context.Context) ([]RawDocument, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY post_number DESC, slug ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []RawDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Save upserts a document.
func (s *SQLiteStore) Save(ctx context.Context, d RawDocument) error {
	return saveDocument(ctx, s.db, d)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveDocument(ctx context.Context, db execer, d RawDocument) error {
	if d.Slug == "" {
		return errors.New("save document: empty slug")
	}
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Slug, d.Title, d.Description, d.HTMLMetadata, d.Image, d.Tags, d.Date, d.CreatedAt, d.PostNumber, d.Body)
	return err
}

// Delete removes a document by slug.
func (s *SQLiteStore) Delete(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE slug = ?`, slug)
	return err
}

// ReplaceAll swaps the stored documents for docs in a single transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, docs []RawDocument) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return err
	}
	for _, d := range docs {
		if err := saveDocument(ctx, tx, d); err != nil {
			return fmt.Errorf("import %q: %w", d.Slug, err)
		}
	}
	return tx.Commit()
}
