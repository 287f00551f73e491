package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/zjrosen/soundctl/internal/playback/domain"
)

// eventRepository implements domain.EventRepository using SQLite.
type eventRepository struct {
	db *sql.DB
}

func newEventRepository(db *sql.DB) *eventRepository {
	return &eventRepository{db: db}
}

// Ensure eventRepository implements domain.EventRepository.
var _ domain.EventRepository = (*eventRepository)(nil)

// Append inserts an event and sets its ID.
func (r *eventRepository) Append(e *domain.Event) error {
	if !e.Kind.Valid() {
		return &domain.InvalidEventKindError{Kind: e.Kind}
	}
	m := toEventModel(e)
	result, err := r.db.Exec(
		`INSERT INTO playback_events (run_guid, seq, kind, sound, sound_name, instance, start_sample, loops, detail, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunGUID, m.Seq, m.Kind, m.Sound, m.SoundName, m.Instance, m.StartSample, m.Loops, m.Detail, m.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert playback event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	e.ID = id
	return nil
}

// ListByRun returns a run's events ordered by sequence number.
func (r *eventRepository) ListByRun(runGUID string, limit int) ([]*domain.Event, error) {
	query := `SELECT id, run_guid, seq, kind, sound, sound_name, instance, start_sample, loops, detail, occurred_at
			  FROM playback_events
			  WHERE run_guid = ?
			  ORDER BY seq`
	args := []any{runGUID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list playback events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*domain.Event
	for rows.Next() {
		var m EventModel
		if err := rows.Scan(&m.ID, &m.RunGUID, &m.Seq, &m.Kind, &m.Sound, &m.SoundName, &m.Instance,
			&m.StartSample, &m.Loops, &m.Detail, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan playback event: %w", err)
		}
		events = append(events, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playback events: %w", err)
	}
	return events, nil
}

// CountByRun returns the number of events recorded for a run.
func (r *eventRepository) CountByRun(runGUID string) (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM playback_events WHERE run_guid = ?`, runGUID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count playback events: %w", err)
	}
	return n, nil
}
