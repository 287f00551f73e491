package migrations

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	// One connection, so every query sees the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func columns(t *testing.T, db *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := db.Query(`PRAGMA table_info(` + table + `)`)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid, notnull, pk int
			name, typ        string
			dflt             any
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk))
		cols[name] = true
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestRunMigrations_FreshDB(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, RunMigrations(db))

	require.True(t, tableExists(t, db, "runs"))
	require.True(t, tableExists(t, db, "playback_events"))

	v, dirty, err := SchemaVersion(db)
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 2, v)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db), "second run should be a no-op")
	require.True(t, tableExists(t, db, "runs"))
}

func TestSchemaVersion_Unmigrated(t *testing.T) {
	db := openMemory(t)

	v, dirty, err := SchemaVersion(db)
	require.NoError(t, err)
	require.Zero(t, v)
	require.False(t, dirty)
}

func TestMigrations_Schema(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, RunMigrations(db))

	runCols := columns(t, db, "runs")
	for _, col := range []string{"id", "guid", "script", "content_dir", "state", "error", "started_at", "finished_at"} {
		require.True(t, runCols[col], "runs.%s should exist", col)
	}

	eventCols := columns(t, db, "playback_events")
	for _, col := range []string{"id", "run_guid", "seq", "kind", "sound", "sound_name", "instance", "start_sample", "loops", "detail", "occurred_at"} {
		require.True(t, eventCols[col], "playback_events.%s should exist", col)
	}

	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name IN
		('idx_runs_started_at', 'idx_runs_state', 'idx_playback_events_run_seq', 'idx_playback_events_sound')`).Scan(&n)
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestMigrations_Down(t *testing.T) {
	db := openMemory(t)

	driver, err := WithInstance(db, &Config{})
	require.NoError(t, err)
	source, err := iofs.New(MigrationsFS(), ".")
	require.NoError(t, err)
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	require.NoError(t, err)

	require.NoError(t, m.Up())
	require.True(t, tableExists(t, db, "playback_events"))

	require.NoError(t, m.Down())
	require.False(t, tableExists(t, db, "playback_events"))
	require.False(t, tableExists(t, db, "runs"))

	var indexCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND tbl_name IN ('runs', 'playback_events')`).Scan(&indexCount)
	require.NoError(t, err)
	require.Zero(t, indexCount)
}

func TestMigrationsFS_Embedded(t *testing.T) {
	entries, err := embeddedMigrationsFS.ReadDir(".")
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, e := range entries {
		names[e.Name()] = true
	}
	for _, want := range []string{
		"000001_create_runs.up.sql",
		"000001_create_runs.down.sql",
		"000002_create_playback_events.up.sql",
		"000002_create_playback_events.down.sql",
	} {
		require.True(t, names[want], "%s should be embedded", want)
	}

	up, err := embeddedMigrationsFS.ReadFile("000002_create_playback_events.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(up), "CREATE TABLE playback_events")
}

func TestWithInstance_NilConfig(t *testing.T) {
	_, err := WithInstance(openMemory(t), nil)
	require.ErrorIs(t, err, ErrNilConfig)
}

func TestNCrucesSqlite_LockIsExclusive(t *testing.T) {
	d, err := WithInstance(openMemory(t), &Config{})
	require.NoError(t, err)

	require.NoError(t, d.Lock())
	require.Error(t, d.Lock())
	require.NoError(t, d.Unlock())
	require.Error(t, d.Unlock())

	_, err = d.Open("sqlite3://x")
	require.ErrorIs(t, err, ErrOpenUnsupported)
}

func TestMigrateIdempotent_AcrossInstances(t *testing.T) {
	db := openMemory(t)

	for i := 0; i < 2; i++ {
		driver, err := WithInstance(db, &Config{})
		require.NoError(t, err)
		source, err := iofs.New(MigrationsFS(), ".")
		require.NoError(t, err)
		m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
		require.NoError(t, err)

		err = m.Up()
		if i > 0 {
			require.True(t, errors.Is(err, migrate.ErrNoChange), "got %v", err)
			continue
		}
		require.NoError(t, err)
	}
}

func TestMigrations_Constraints(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, RunMigrations(db))
	_, err := db.Exec(`PRAGMA foreign_keys=ON`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO runs (guid, script, state, started_at) VALUES (?, ?, ?, ?)`,
		"run-1", "intro.lua", "running", 1706000000000)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO runs (guid, script, state, started_at) VALUES (?, ?, ?, ?)`,
		"run-2", "intro.lua", "paused", 1706000000000)
	require.Error(t, err, "CHECK constraint should reject unknown state")

	_, err = db.Exec(`INSERT INTO playback_events (run_guid, seq, kind, occurred_at) VALUES (?, ?, ?, ?)`,
		"run-1", 1, "stopped_all", 1706000000001)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO playback_events (run_guid, seq, kind, occurred_at) VALUES (?, ?, ?, ?)`,
		"run-1", 1, "stopped_all", 1706000000002)
	require.Error(t, err, "seq is unique per run")

	_, err = db.Exec(`INSERT INTO playback_events (run_guid, seq, kind, occurred_at) VALUES (?, ?, ?, ?)`,
		"missing", 1, "stopped_all", 1706000000002)
	require.Error(t, err, "events must belong to a run")
}
