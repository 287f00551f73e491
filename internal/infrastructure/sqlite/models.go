package sqlite

import (
	"time"

	"github.com/zjrosen/soundctl/internal/playback/domain"
)

// RunModel is a row of the runs table. Times are Unix milliseconds.
type RunModel struct {
	ID         int64
	GUID       string
	Script     string
	ContentDir string
	State      string
	Error      *string // nullable
	StartedAt  int64
	FinishedAt *int64 // nullable
}

func toRunModel(r *domain.Run) *RunModel {
	m := &RunModel{
		ID:         r.ID(),
		GUID:       r.GUID(),
		Script:     r.Script(),
		ContentDir: r.ContentDir(),
		State:      string(r.State()),
		StartedAt:  r.StartedAt().UnixMilli(),
	}
	if msg := r.ErrorMessage(); msg != "" {
		m.Error = &msg
	}
	if r.FinishedAt() != nil {
		finished := r.FinishedAt().UnixMilli()
		m.FinishedAt = &finished
	}
	return m
}

func (m *RunModel) toDomain() *domain.Run {
	var errMsg string
	if m.Error != nil {
		errMsg = *m.Error
	}
	var finishedAt *time.Time
	if m.FinishedAt != nil {
		t := time.UnixMilli(*m.FinishedAt)
		finishedAt = &t
	}
	return domain.ReconstituteRun(
		m.ID,
		m.GUID,
		m.Script,
		m.ContentDir,
		domain.RunState(m.State),
		errMsg,
		time.UnixMilli(m.StartedAt),
		finishedAt,
	)
}

// EventModel is a row of the playback_events table.
type EventModel struct {
	ID          int64
	RunGUID     string
	Seq         int64
	Kind        string
	Sound       *int64  // nullable
	SoundName   *string // nullable
	Instance    *string // nullable
	StartSample *int64  // nullable
	Loops       *int64  // nullable
	Detail      *string // nullable
	OccurredAt  int64
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toEventModel(e *domain.Event) *EventModel {
	m := &EventModel{
		ID:         e.ID,
		RunGUID:    e.RunGUID,
		Seq:        int64(e.Seq),
		Kind:       string(e.Kind),
		SoundName:  nullString(e.SoundName),
		Instance:   nullString(e.Instance),
		Detail:     nullString(e.Detail),
		OccurredAt: e.OccurredAt.UnixMilli(),
	}
	if e.Sound != 0 {
		sound := int64(e.Sound)
		m.Sound = &sound
	}
	if e.StartSample != nil {
		sample := int64(*e.StartSample)
		m.StartSample = &sample
	}
	if e.Loops != 0 {
		loops := int64(e.Loops)
		m.Loops = &loops
	}
	return m
}

func (m *EventModel) toDomain() *domain.Event {
	e := &domain.Event{
		ID:         m.ID,
		RunGUID:    m.RunGUID,
		Seq:        int(m.Seq),
		Kind:       domain.EventKind(m.Kind),
		OccurredAt: time.UnixMilli(m.OccurredAt),
	}
	if m.Sound != nil {
		e.Sound = uint32(*m.Sound)
	}
	if m.SoundName != nil {
		e.SoundName = *m.SoundName
	}
	if m.Instance != nil {
		e.Instance = *m.Instance
	}
	if m.StartSample != nil {
		sample := uint32(*m.StartSample)
		e.StartSample = &sample
	}
	if m.Loops != nil {
		e.Loops = int(*m.Loops)
	}
	if m.Detail != nil {
		e.Detail = *m.Detail
	}
	return e
}
