package library

import (
	"errors"
	"fmt"
)

// Manifest errors.
var (
	// ErrNoMovies indicates a manifest without any movie.
	ErrNoMovies = errors.New("manifest declares no movies")

	// ErrManifestNotFound indicates the content directory has no manifest file.
	ErrManifestNotFound = errors.New("content manifest not found")
)

// DuplicateExportError indicates two assets in one movie share an export name.
type DuplicateExportError struct {
	Movie  string
	Export string
}

// Error implements the error interface.
func (e *DuplicateExportError) Error() string {
	return fmt.Sprintf("duplicate export %q in movie %q", e.Export, e.Movie)
}

// MovieNotFoundError indicates a reference to a movie the library does not hold.
type MovieNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *MovieNotFoundError) Error() string {
	return fmt.Sprintf("movie not found: %q", e.Name)
}

// InvalidSoundError describes a sound entry that cannot be loaded.
type InvalidSoundError struct {
	Movie  string
	Export string
	Reason string
}

// Error implements the error interface.
func (e *InvalidSoundError) Error() string {
	return fmt.Sprintf("movie %q sound %q: %s", e.Movie, e.Export, e.Reason)
}
