// Package sqlite stores the playback journal in SQLite.
// It handles connection lifecycle, migrations, and repository implementations.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zjrosen/soundctl/internal/infrastructure/migrations"
	"github.com/zjrosen/soundctl/internal/log"
	"github.com/zjrosen/soundctl/internal/playback/domain"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

// DB is an open journal database.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens the journal at path, creating its directory, and migrates it.
// An existing file is copied to {path}.bak before migrating.
//
//	db, err := sqlite.NewDB("~/.soundctl/journal.db")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func NewDB(path string) (*DB, error) {
	log.Debug(log.CatDB, "Opening database", "path", path)

	dsn := "file::memory:"
	if path != MemoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			log.ErrorErr(log.CatDB, "Failed to create database directory", err, "path", dir)
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
		if _, err := os.Stat(path); err == nil {
			backupPath := path + ".bak"
			if err := copyFile(path, backupPath); err != nil {
				log.ErrorErr(log.CatDB, "Failed to create pre-migration backup", err, "path", path, "backup", backupPath)
				return nil, fmt.Errorf("failed to create pre-migration backup: %w", err)
			}
			log.Debug(log.CatDB, "Created pre-migration backup", "backup", backupPath)
		}
		dsn = "file:" + path
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.ErrorErr(log.CatDB, "Failed to open database", err, "path", path)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == MemoryPath {
		// Every pooled connection would otherwise see its own empty database.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "Failed to ping database", err, "path", path)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			_ = conn.Close()
			log.ErrorErr(log.CatDB, "Failed to configure database", err, "pragma", p)
			return nil, fmt.Errorf("failed to execute %q: %w", p, err)
		}
	}

	if err := migrations.RunMigrations(conn); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "Failed to run migrations", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info(log.CatDB, "Database initialized", "path", path)
	return &DB{conn: conn, path: path}, nil
}

// Close releases database resources.
func (db *DB) Close() error {
	if db.conn != nil {
		log.Debug(log.CatDB, "Closing database", "path", db.path)
		return db.conn.Close()
	}
	return nil
}

// Path returns the path the database was opened with.
func (db *DB) Path() string { return db.path }

// RunRepository returns a RunRepository on this connection.
func (db *DB) RunRepository() domain.RunRepository {
	return newRunRepository(db.conn)
}

// EventRepository returns an EventRepository on this connection.
func (db *DB) EventRepository() domain.EventRepository {
	return newEventRepository(db.conn)
}

// Connection returns the underlying *sql.DB for testing purposes.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// copyFile copies src to dst, overwriting dst. Close errors on dst are
// returned so a truncated backup is never reported as written.
func copyFile(src, dst string) (retErr error) {
	in, err := os.Open(src) //nolint:gosec // G304: src is the configured journal path
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(); cerr != nil && retErr == nil {
			retErr = fmt.Errorf("failed to close source file: %w", cerr)
		}
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, info.Mode()) //nolint:gosec // G304: dst derives from the journal path
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && retErr == nil {
			retErr = fmt.Errorf("failed to close backup file: %w", cerr)
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
