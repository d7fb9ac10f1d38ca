package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"books_api/internal/models"
	"books_api/internal/storage"
)

// Store is a SQLite-backed storage.Store. The seq column keeps insertion order,
// id is the catalog id handed out by storage.NextID.
type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection: writes are serialised, pragmas apply to every query.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragma := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, stmt := range pragma {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("pragma: %w", err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS books (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id INTEGER NOT NULL,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	description TEXT NOT NULL,
	rating INTEGER NOT NULL,
	published_date INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_books_id ON books(id);
`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts books with their own ids when the table has no rows.
// It reports whether anything was inserted.
func (s *Store) SeedIfEmpty(ctx context.Context, books []models.Book) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return false, fmt.Errorf("count books: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	for _, b := range books {
		if err := insertBook(ctx, tx, b); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}

const selectBooks = `SELECT id, title, author, description, rating, published_date FROM books`

func (s *Store) List(ctx context.Context) ([]models.Book, error) {
	return s.query(ctx, selectBooks+` ORDER BY seq`)
}

func (s *Store) Get(ctx context.Context, id int) (models.Book, error) {
	row := s.db.QueryRowContext(ctx, selectBooks+` WHERE id = ? ORDER BY seq LIMIT 1`, id)
	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, storage.ErrNotFound
		}
		return models.Book{}, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// Filter treats a nil criterion as NULL, which never compares equal.
func (s *Store) Filter(ctx context.Context, f models.Filter) ([]models.Book, error) {
	return s.query(ctx, selectBooks+` WHERE rating = ? OR published_date = ? ORDER BY seq`,
		nullableInt(f.Rating), nullableInt(f.PublishedDate))
}

func (s *Store) Create(ctx context.Context, book models.Book) (models.Book, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Book{}, fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback()

	var last *models.Book
	var lastID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM books ORDER BY seq DESC LIMIT 1`).Scan(&lastID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return models.Book{}, fmt.Errorf("read last id: %w", err)
	default:
		last = &models.Book{ID: lastID}
	}

	book.ID = storage.NextID(last)
	if err := insertBook(ctx, tx, book); err != nil {
		return models.Book{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Book{}, fmt.Errorf("commit create: %w", err)
	}
	return book, nil
}

func (s *Store) Update(ctx context.Context, book models.Book) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE books
SET title = ?, author = ?, description = ?, rating = ?, published_date = ?
WHERE seq = (SELECT seq FROM books WHERE id = ? ORDER BY seq LIMIT 1)
`, book.Title, book.Author, book.Description, book.Rating, nullableInt(book.PublishedDate), book.ID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return expectOneRow(res)
}

func (s *Store) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `
DELETE FROM books
WHERE seq = (SELECT seq FROM books WHERE id = ? ORDER BY seq LIMIT 1)
`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return expectOneRow(res)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return books, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (models.Book, error) {
	var b models.Book
	var published sql.NullInt64
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Rating, &published); err != nil {
		return models.Book{}, err
	}
	if published.Valid {
		b.PublishedDate = models.IntPtr(int(published.Int64))
	}
	return b, nil
}

func insertBook(ctx context.Context, tx *sql.Tx, b models.Book) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO books (id, title, author, description, rating, published_date)
VALUES (?, ?, ?, ?, ?, ?)
`, b.ID, b.Title, b.Author, b.Description, b.Rating, nullableInt(b.PublishedDate))
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}
