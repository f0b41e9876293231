// Package sqlite provides a SQLite-based implementation of driven.BookStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each applied version is recorded in schema_migrations.
// Books live in the books table; their scanned lines live in content_lines
// and are removed with the book.
//
// # Data Location
//
// By default, the database is stored at ~/.pagescan/data/library.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
