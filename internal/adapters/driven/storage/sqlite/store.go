package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/pagescan/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/pagescan/internal/core/domain"
	"github.com/custodia-labs/pagescan/internal/core/ports/driven"
)

// Store is a SQLite-backed library database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pagescan/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pagescan", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// BookStore returns a BookStore interface backed by this store.
func (s *Store) BookStore() driven.BookStore {
	return &bookStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Book Store ====================

// bookStore implements driven.BookStore.
type bookStore struct {
	store *Store
}

var _ driven.BookStore = (*bookStore)(nil)

// Save stores or replaces a book and all of its lines.
func (s *bookStore) Save(ctx context.Context, book domain.Book) error {
	if book.ISBN == "" {
		return domain.ErrMissingISBN
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO books (isbn, title, batch_id, line_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(isbn) DO UPDATE SET
			title = excluded.title,
			batch_id = excluded.batch_id,
			line_count = excluded.line_count,
			updated_at = excluded.updated_at
	`, book.ISBN, book.Title, nullString(book.BatchID), len(book.Content), now, now)
	if err != nil {
		return fmt.Errorf("saving book: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM content_lines WHERE isbn = ?", book.ISBN); err != nil {
		return fmt.Errorf("clearing content: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO content_lines (isbn, position, page, line, text)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, line := range book.Content {
		if _, err := stmt.ExecContext(ctx, book.ISBN, i, line.Page, line.Line, line.Text); err != nil {
			return fmt.Errorf("saving line %d/%d: %w", line.Page, line.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a book by ISBN with its lines in stored order.
func (s *bookStore) Get(ctx context.Context, isbn string) (*domain.Book, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT isbn, title, batch_id FROM books WHERE isbn = ?
	`, isbn)

	var book domain.Book
	var batchID sql.NullString
	if err := row.Scan(&book.ISBN, &book.Title, &batchID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning book: %w", err)
	}
	book.BatchID = batchID.String

	content, err := s.content(ctx, isbn)
	if err != nil {
		return nil, err
	}
	book.Content = content

	return &book, nil
}

// List returns all books ordered by ISBN.
func (s *bookStore) List(ctx context.Context) ([]domain.Book, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT isbn, title, batch_id FROM books ORDER BY isbn
	`)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}

	var books []domain.Book //nolint:prealloc // size unknown from query
	for rows.Next() {
		var book domain.Book
		var batchID sql.NullString
		if err := rows.Scan(&book.ISBN, &book.Title, &batchID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		book.BatchID = batchID.String
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	rows.Close()

	for i := range books {
		content, err := s.content(ctx, books[i].ISBN)
		if err != nil {
			return nil, err
		}
		books[i].Content = content
	}

	return books, nil
}

// Delete removes a book and its lines.
func (s *bookStore) Delete(ctx context.Context, isbn string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM books WHERE isbn = ?", isbn)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *bookStore) content(ctx context.Context, isbn string) ([]domain.ContentLine, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT page, line, text FROM content_lines
		WHERE isbn = ?
		ORDER BY position
	`, isbn)
	if err != nil {
		return nil, fmt.Errorf("querying content: %w", err)
	}
	defer rows.Close()

	content := []domain.ContentLine{}
	for rows.Next() {
		var line domain.ContentLine
		if err := rows.Scan(&line.Page, &line.Line, &line.Text); err != nil {
			return nil, fmt.Errorf("scanning line: %w", err)
		}
		content = append(content, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content: %w", err)
	}

	return content, nil
}

// nullString converts an empty string to sql.NullString{Valid: false}.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
