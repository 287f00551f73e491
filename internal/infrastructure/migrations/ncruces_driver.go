package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4/database"
)

// DefaultMigrationsTable records the applied schema version.
const DefaultMigrationsTable = "schema_migrations"

var (
	// ErrNilConfig is returned by WithInstance when config is nil.
	ErrNilConfig = errors.New("no config")
	// ErrOpenUnsupported is returned by Open: the driver only wraps existing
	// connections.
	ErrOpenUnsupported = errors.New("open by URL is not supported; use WithInstance")
)

// Config configures NCrucesSqlite.
type Config struct {
	MigrationsTable string
	// NoTxWrap runs each migration outside a transaction.
	NoTxWrap bool
}

// NCrucesSqlite implements golang-migrate's database.Driver on a *sql.DB
// opened with the ncruces driver. Locking is in-process only.
type NCrucesSqlite struct {
	db     *sql.DB
	locked atomic.Bool
	config *Config
}

var _ database.Driver = (*NCrucesSqlite)(nil)

// WithInstance wraps an open connection and creates the version table.
func WithInstance(instance *sql.DB, config *Config) (database.Driver, error) {
	if config == nil {
		return nil, ErrNilConfig
	}
	if err := instance.Ping(); err != nil {
		return nil, err
	}
	if config.MigrationsTable == "" {
		config.MigrationsTable = DefaultMigrationsTable
	}

	d := &NCrucesSqlite{db: instance, config: config}
	if err := d.ensureVersionTable(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *NCrucesSqlite) ensureVersionTable() (err error) {
	if err := d.Lock(); err != nil {
		return err
	}
	defer func() {
		if uerr := d.Unlock(); uerr != nil {
			err = errors.Join(err, uerr)
		}
	}()

	table := d.config.MigrationsTable
	_, err = d.db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %[1]s (version uint64, dirty bool);
		 CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_version ON %[1]s (version);`, table))
	return err
}

// Open implements database.Driver.
func (d *NCrucesSqlite) Open(string) (database.Driver, error) {
	return nil, ErrOpenUnsupported
}

// Close closes the wrapped connection.
func (d *NCrucesSqlite) Close() error {
	return d.db.Close()
}

// Lock implements database.Driver.
func (d *NCrucesSqlite) Lock() error {
	if !d.locked.CompareAndSwap(false, true) {
		return database.ErrLocked
	}
	return nil
}

// Unlock implements database.Driver.
func (d *NCrucesSqlite) Unlock() error {
	if !d.locked.CompareAndSwap(true, false) {
		return database.ErrNotLocked
	}
	return nil
}

// Run executes one migration file.
func (d *NCrucesSqlite) Run(migration io.Reader) error {
	body, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	query := string(body)
	if d.config.NoTxWrap {
		if _, err := d.db.Exec(query); err != nil {
			return &database.Error{OrigErr: err, Query: body}
		}
		return nil
	}
	return d.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(query); err != nil {
			return &database.Error{OrigErr: err, Query: body}
		}
		return nil
	})
}

// inTx runs fn in a transaction, rolling back when it fails.
func (d *NCrucesSqlite) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return &database.Error{OrigErr: err, Err: "transaction start failed"}
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return &database.Error{OrigErr: err, Err: "transaction commit failed"}
	}
	return nil
}

// SetVersion replaces the recorded version.
func (d *NCrucesSqlite) SetVersion(version int, dirty bool) error {
	table := d.config.MigrationsTable
	return d.inTx(func(tx *sql.Tx) error {
		del := "DELETE FROM " + table //nolint:gosec // table name comes from Config
		if _, err := tx.Exec(del); err != nil {
			return &database.Error{OrigErr: err, Query: []byte(del)}
		}
		// A dirty NilVersion is kept so a failed first down migration stays visible.
		if version < 0 && (version != database.NilVersion || !dirty) {
			return nil
		}
		ins := "INSERT INTO " + table + " (version, dirty) VALUES (?, ?)" //nolint:gosec // table name comes from Config
		if _, err := tx.Exec(ins, version, dirty); err != nil {
			return &database.Error{OrigErr: err, Query: []byte(ins)}
		}
		return nil
	})
}

// Version returns the recorded version, or database.NilVersion.
func (d *NCrucesSqlite) Version() (int, bool, error) {
	var (
		version int
		dirty   bool
	)
	query := "SELECT version, dirty FROM " + d.config.MigrationsTable + " LIMIT 1" //nolint:gosec // table name comes from Config
	if err := d.db.QueryRow(query).Scan(&version, &dirty); err != nil {
		return database.NilVersion, false, nil
	}
	return version, dirty, nil
}

// Drop removes every table.
func (d *NCrucesSqlite) Drop() error {
	rows, err := d.db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return &database.Error{OrigErr: err, Err: "listing tables failed"}
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	if err := errors.Join(rows.Err(), rows.Close()); err != nil {
		return &database.Error{OrigErr: err, Err: "listing tables failed"}
	}

	for _, t := range tables {
		drop := "DROP TABLE " + t
		if err := d.inTx(func(tx *sql.Tx) error {
			_, err := tx.Exec(drop)
			return err
		}); err != nil {
			return &database.Error{OrigErr: err, Query: []byte(drop)}
		}
	}
	if len(tables) > 0 {
		if _, err := d.db.Exec("VACUUM"); err != nil {
			return &database.Error{OrigErr: err, Query: []byte("VACUUM")}
		}
	}
	return nil
}
