// Package migrations holds the playback journal schema and applies it.
//
// Schema files are embedded *.sql pairs in golang-migrate's naming scheme
// (000001_name.up.sql / .down.sql). They run through NCrucesSqlite, a
// golang-migrate database driver for connections opened with the CGO-free
// ncruces/go-sqlite3 driver; golang-migrate's own sqlite3 driver links
// mattn/go-sqlite3, which registers the same "sqlite3" driver name.
//
//	db, _ := sql.Open("sqlite3", "file:journal.db")
//	err := migrations.RunMigrations(db)
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/zjrosen/soundctl/internal/log"
)

//go:embed *.sql
var embeddedMigrationsFS embed.FS

// MigrationsFS returns the embedded schema files.
func MigrationsFS() fs.FS {
	return embeddedMigrationsFS
}

// newMigrate builds a migrator over db using the embedded schema.
func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(embeddedMigrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("loading embedded migrations: %w", err)
	}
	driver, err := WithInstance(db, &Config{})
	if err != nil {
		return nil, fmt.Errorf("creating migration driver: %w", err)
	}
	return migrate.NewWithInstance("iofs", source, "sqlite3", driver)
}

// RunMigrations applies every pending migration to db. An up-to-date
// database is not an error.
func RunMigrations(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug(log.CatDB, "Journal schema up to date")
			return nil
		}
		return err
	}
	if v, dirty, err := m.Version(); err == nil {
		log.Debug(log.CatDB, "Journal schema migrated", "version", v, "dirty", dirty)
	}
	return nil
}

// SchemaVersion returns the applied migration version of db, or 0 when no
// migration has run.
func SchemaVersion(db *sql.DB) (uint, bool, error) {
	m, err := newMigrate(db)
	if err != nil {
		return 0, false, err
	}
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}
