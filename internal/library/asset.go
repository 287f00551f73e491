// Package library holds the exported assets of loaded content units.
//
// A content unit (Movie) exports assets by name. Scripts resolve names
// against the movie they run in, or the movie of the display node that owns
// the calling object, so two movies may export different sounds under the
// same name.
package library

import (
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/soundctl/internal/audio"
)

// Asset is an exported library item. The set of asset kinds is closed:
// *SoundAsset and *SymbolAsset.
type Asset interface {
	ExportName() string
	isAsset()
}

// SoundAsset is a sound registered with the audio backend.
type SoundAsset struct {
	Export   string
	Handle   audio.SoundHandle
	Source   string // file path or tone description, for listings
	Duration time.Duration
}

// ExportName implements Asset.
func (a *SoundAsset) ExportName() string { return a.Export }
func (*SoundAsset) isAsset()             {}

// SymbolAsset is any non-sound export (clips, bitmaps, fonts). The library
// only records it so that lookups can tell "not a sound" apart from "missing".
type SymbolAsset struct {
	Export string
	Kind   string
}

// ExportName implements Asset.
func (a *SymbolAsset) ExportName() string { return a.Export }
func (*SymbolAsset) isAsset()             {}

// AsSound returns a as a sound asset, if it is one.
func AsSound(a Asset) (*SoundAsset, bool) {
	switch v := a.(type) {
	case *SoundAsset:
		return v, v != nil
	default:
		return nil, false
	}
}

// Movie is one loaded content unit and its export table.
type Movie struct {
	id      uuid.UUID
	name    string
	version uint8
	exports map[string]Asset
	order   []string
}

// NewMovie creates an empty movie.
func NewMovie(name string, version uint8) *Movie {
	return &Movie{
		id:      uuid.New(),
		name:    name,
		version: version,
		exports: make(map[string]Asset),
	}
}

// ID returns the movie's unique identifier.
func (m *Movie) ID() uuid.UUID { return m.id }

// Name returns the movie's manifest name.
func (m *Movie) Name() string { return m.name }

// Version returns the movie's declared compatibility version.
func (m *Movie) Version() uint8 { return m.version }

// Export returns the asset exported under name.
func (m *Movie) Export(name string) (Asset, bool) {
	a, ok := m.exports[name]
	return a, ok
}

// Exports returns the movie's assets in declaration order.
func (m *Movie) Exports() []Asset {
	out := make([]Asset, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.exports[name])
	}
	return out
}

// AddExport registers a under its export name. It fails if the name is taken.
func (m *Movie) AddExport(a Asset) error {
	name := a.ExportName()
	if _, exists := m.exports[name]; exists {
		return &DuplicateExportError{Movie: m.name, Export: name}
	}
	m.exports[name] = a
	m.order = append(m.order, name)
	return nil
}
