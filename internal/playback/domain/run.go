package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunState is the lifecycle state of a run.
type RunState string

const (
	RunRunning  RunState = "running"
	RunFinished RunState = "finished"
	RunFailed   RunState = "failed"
)

// Run is one execution of a content script.
type Run struct {
	id         int64
	guid       string
	script     string
	contentDir string
	state      RunState
	errMsg     string
	startedAt  time.Time
	finishedAt *time.Time
}

// NewRun creates a running run with a fresh GUID.
func NewRun(script, contentDir string, now time.Time) *Run {
	return &Run{
		guid:       uuid.NewString(),
		script:     script,
		contentDir: contentDir,
		state:      RunRunning,
		startedAt:  now,
	}
}

// ReconstituteRun rebuilds a run from storage.
func ReconstituteRun(id int64, guid, script, contentDir string, state RunState, errMsg string, startedAt time.Time, finishedAt *time.Time) *Run {
	return &Run{
		id:         id,
		guid:       guid,
		script:     script,
		contentDir: contentDir,
		state:      state,
		errMsg:     errMsg,
		startedAt:  startedAt,
		finishedAt: finishedAt,
	}
}

func (r *Run) ID() int64              { return r.id }
func (r *Run) SetID(id int64)         { r.id = id }
func (r *Run) GUID() string           { return r.guid }
func (r *Run) Script() string         { return r.script }
func (r *Run) ContentDir() string     { return r.contentDir }
func (r *Run) State() RunState        { return r.state }
func (r *Run) ErrorMessage() string   { return r.errMsg }
func (r *Run) StartedAt() time.Time   { return r.startedAt }
func (r *Run) FinishedAt() *time.Time { return r.finishedAt }

// Finish ends a running run. A non-nil runErr marks it failed.
func (r *Run) Finish(runErr error, now time.Time) error {
	if r.state != RunRunning {
		return &RunNotActiveError{GUID: r.guid, State: r.state}
	}
	r.state = RunFinished
	if runErr != nil {
		r.state = RunFailed
		r.errMsg = runErr.Error()
	}
	r.finishedAt = &now
	return nil
}

// ListFilter narrows a run listing.
type ListFilter struct {
	State RunState // empty = any
	Limit int      // 0 = no limit
}

// RunRepository stores runs.
type RunRepository interface {
	// Save inserts a new run (ID 0) or updates an existing one.
	Save(run *Run) error
	// FindByGUID returns RunNotFoundError when no run matches.
	FindByGUID(guid string) (*Run, error)
	// Latest returns the most recently started run, or RunNotFoundError.
	Latest() (*Run, error)
	// List returns runs newest first.
	List(filter ListFilter) ([]*Run, error)
}
