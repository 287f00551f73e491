package playback

import (
	"errors"
	"time"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/log"
	"github.com/zjrosen/soundctl/internal/playback/domain"
)

// Journal records runs and their playback events.
type Journal struct {
	runs   domain.RunRepository
	events domain.EventRepository
	now    func() time.Time
}

// NewJournal creates a journal over the given repositories.
func NewJournal(runs domain.RunRepository, events domain.EventRepository) *Journal {
	return &Journal{runs: runs, events: events, now: time.Now}
}

// BeginRun records the start of a script run.
func (j *Journal) BeginRun(script, contentDir string) (*domain.Run, error) {
	run := domain.NewRun(script, contentDir, j.now())
	if err := j.runs.Save(run); err != nil {
		return nil, err
	}
	log.Debug(log.CatDB, "Run started", "run", run.GUID(), "script", script)
	return run, nil
}

// EndRun marks run finished, or failed when runErr is non-nil.
func (j *Journal) EndRun(run *domain.Run, runErr error) error {
	if err := run.Finish(runErr, j.now()); err != nil {
		return err
	}
	return j.runs.Save(run)
}

// Wrap returns a backend that records into run.
func (j *Journal) Wrap(inner audio.Backend, run *domain.Run) *RecordingBackend {
	rb := NewRecordingBackend(inner, j.events, run.GUID())
	rb.now = j.now
	return rb
}

// Runs lists recent runs, newest first.
func (j *Journal) Runs(limit int) ([]*domain.Run, error) {
	return j.runs.List(domain.ListFilter{Limit: limit})
}

// History returns a run and its events. An empty guid selects the latest run.
func (j *Journal) History(guid string, limit int) (*domain.Run, []*domain.Event, error) {
	var (
		run *domain.Run
		err error
	)
	if guid == "" {
		run, err = j.runs.Latest()
	} else {
		run, err = j.runs.FindByGUID(guid)
	}
	if err != nil {
		return nil, nil, err
	}
	events, err := j.events.ListByRun(run.GUID(), limit)
	if err != nil {
		return nil, nil, err
	}
	return run, events, nil
}

// IsNotFound reports whether err means the requested run does not exist.
func IsNotFound(err error) bool {
	var nf *domain.RunNotFoundError
	return errors.As(err, &nf)
}
