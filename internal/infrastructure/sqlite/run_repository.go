package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/soundctl/internal/playback/domain"
)

const runColumns = `id, guid, script, content_dir, state, error, started_at, finished_at`

// runRepository implements domain.RunRepository using SQLite.
type runRepository struct {
	db *sql.DB
}

func newRunRepository(db *sql.DB) *runRepository {
	return &runRepository{db: db}
}

// Ensure runRepository implements domain.RunRepository.
var _ domain.RunRepository = (*runRepository)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*RunModel, error) {
	var m RunModel
	err := s.Scan(&m.ID, &m.GUID, &m.Script, &m.ContentDir, &m.State, &m.Error, &m.StartedAt, &m.FinishedAt)
	return &m, err
}

// Save inserts new runs (ID 0) and updates existing ones.
func (r *runRepository) Save(run *domain.Run) error {
	m := toRunModel(run)

	if run.ID() == 0 {
		result, err := r.db.Exec(
			`INSERT INTO runs (guid, script, content_dir, state, error, started_at, finished_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.GUID, m.Script, m.ContentDir, m.State, m.Error, m.StartedAt, m.FinishedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		run.SetID(id)
		return nil
	}

	result, err := r.db.Exec(
		`UPDATE runs SET state = ?, error = ?, finished_at = ? WHERE id = ?`,
		m.State, m.Error, m.FinishedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &domain.RunNotFoundError{GUID: run.GUID()}
	}
	return nil
}

// FindByGUID retrieves a run by GUID.
func (r *runRepository) FindByGUID(guid string) (*domain.Run, error) {
	m, err := scanRun(r.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE guid = ?`, guid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.RunNotFoundError{GUID: guid}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find run by guid: %w", err)
	}
	return m.toDomain(), nil
}

// Latest retrieves the most recently started run.
func (r *runRepository) Latest() (*domain.Run, error) {
	m, err := scanRun(r.db.QueryRow(`SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.RunNotFoundError{}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest run: %w", err)
	}
	return m.toDomain(), nil
}

// List returns runs newest first.
func (r *runRepository) List(filter domain.ListFilter) ([]*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any

	if filter.State != "" {
		query += ` WHERE state = ?`
		args = append(args, string(filter.State))
	}
	query += ` ORDER BY started_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*domain.Run
	for rows.Next() {
		m, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}
