package domain

import "time"

// EventKind identifies what a playback event records.
type EventKind string

const (
	// EventStarted records a started instance.
	EventStarted EventKind = "started"
	// EventStartFailed records a start request the backend rejected.
	EventStartFailed EventKind = "start_failed"
	// EventStopped records a single-instance stop.
	EventStopped EventKind = "stopped"
	// EventStoppedSound records a stop of every instance of one sound.
	EventStoppedSound EventKind = "stopped_sound"
	// EventStoppedAll records a global stop.
	EventStoppedAll EventKind = "stopped_all"
)

// Valid reports whether k is a known kind.
func (k EventKind) Valid() bool {
	switch k {
	case EventStarted, EventStartFailed, EventStopped, EventStoppedSound, EventStoppedAll:
		return true
	}
	return false
}

// Event is one journaled playback request.
type Event struct {
	ID      int64
	RunGUID string
	Seq     int
	Kind    EventKind

	// Sound fields are zero for EventStopped and EventStoppedAll.
	Sound     uint32
	SoundName string
	// Instance is set for EventStarted and EventStopped.
	Instance string

	StartSample *uint32
	Loops       int
	Detail      string // error text for EventStartFailed

	OccurredAt time.Time
}

// EventRepository stores events.
type EventRepository interface {
	// Append inserts e and sets its ID. Kind must be valid.
	Append(e *Event) error
	// ListByRun returns the run's events in sequence order. limit 0 means all.
	ListByRun(runGUID string, limit int) ([]*Event, error)
	// CountByRun returns the number of events recorded for the run.
	CountByRun(runGUID string) (int, error)
}
