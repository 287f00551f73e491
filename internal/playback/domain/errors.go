package domain

import "fmt"

// RunNotFoundError indicates that no run with the GUID exists. An empty GUID
// means the repository holds no runs at all.
type RunNotFoundError struct {
	GUID string
}

// Error implements the error interface.
func (e *RunNotFoundError) Error() string {
	if e.GUID == "" {
		return "no runs recorded"
	}
	return fmt.Sprintf("run not found: guid=%q", e.GUID)
}

// RunNotActiveError indicates an attempt to finish a run that already ended.
type RunNotActiveError struct {
	GUID  string
	State RunState
}

// Error implements the error interface.
func (e *RunNotActiveError) Error() string {
	return fmt.Sprintf("run is not active: guid=%q state=%q", e.GUID, e.State)
}

// InvalidEventKindError indicates an event with an unknown kind.
type InvalidEventKindError struct {
	Kind EventKind
}

// Error implements the error interface.
func (e *InvalidEventKindError) Error() string {
	return fmt.Sprintf("invalid event kind %q", e.Kind)
}
