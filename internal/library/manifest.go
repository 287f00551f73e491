package library

import (
	"fmt"
	"io/fs"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the manifest's file name inside a content directory.
const ManifestFile = "library.yaml"

// Manifest describes the movies in a content directory.
type Manifest struct {
	Root   string          `yaml:"root"`
	Movies []MovieManifest `yaml:"movies"`
}

// MovieManifest describes one movie.
type MovieManifest struct {
	Name    string           `yaml:"name"`
	Version int              `yaml:"version"` // 0 = use the loader default
	Sounds  []SoundManifest  `yaml:"sounds"`
	Symbols []SymbolManifest `yaml:"symbols"`
}

// SoundManifest describes an exported sound. Exactly one of File or Tone is set.
type SoundManifest struct {
	Export string        `yaml:"export"`
	File   string        `yaml:"file"` // WAV path relative to the content directory
	Tone   *ToneManifest `yaml:"tone"`
}

// ToneManifest describes a synthesized sine tone.
type ToneManifest struct {
	Frequency  float64       `yaml:"frequency"`
	Duration   time.Duration `yaml:"duration"`
	SampleRate int           `yaml:"sample_rate"` // 0 = 44100
}

// SymbolManifest describes a non-sound export.
type SymbolManifest struct {
	Export string `yaml:"export"`
	Kind   string `yaml:"kind"`
}

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadManifest reads ManifestFile from fsys.
func ReadManifest(fsys fs.FS) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestNotFound, err)
	}
	return ParseManifest(data)
}

// Validate checks the manifest for structural errors.
func (m *Manifest) Validate() error {
	if len(m.Movies) == 0 {
		return ErrNoMovies
	}

	seen := make(map[string]bool, len(m.Movies))
	for i, mv := range m.Movies {
		if mv.Name == "" {
			return fmt.Errorf("movie %d: name is required", i)
		}
		if seen[mv.Name] {
			return fmt.Errorf("movie %d (%s): duplicate name", i, mv.Name)
		}
		seen[mv.Name] = true

		if mv.Version < 0 || mv.Version > math.MaxUint8 {
			return fmt.Errorf("movie %d (%s): version %d out of range", i, mv.Name, mv.Version)
		}

		exports := make(map[string]bool)
		for j, s := range mv.Sounds {
			if s.Export == "" {
				return fmt.Errorf("movie %d (%s): sound %d: export is required", i, mv.Name, j)
			}
			if exports[s.Export] {
				return &DuplicateExportError{Movie: mv.Name, Export: s.Export}
			}
			exports[s.Export] = true
			if err := s.validate(mv.Name); err != nil {
				return err
			}
		}
		for j, sym := range mv.Symbols {
			if sym.Export == "" {
				return fmt.Errorf("movie %d (%s): symbol %d: export is required", i, mv.Name, j)
			}
			if exports[sym.Export] {
				return &DuplicateExportError{Movie: mv.Name, Export: sym.Export}
			}
			exports[sym.Export] = true
		}
	}

	if m.Root != "" && !seen[m.Root] {
		return &MovieNotFoundError{Name: m.Root}
	}
	return nil
}

func (s SoundManifest) validate(movie string) error {
	switch {
	case s.File == "" && s.Tone == nil:
		return &InvalidSoundError{Movie: movie, Export: s.Export, Reason: "one of file or tone is required"}
	case s.File != "" && s.Tone != nil:
		return &InvalidSoundError{Movie: movie, Export: s.Export, Reason: "file and tone are mutually exclusive"}
	case s.Tone != nil && s.Tone.Frequency <= 0:
		return &InvalidSoundError{Movie: movie, Export: s.Export, Reason: "tone frequency must be positive"}
	case s.Tone != nil && s.Tone.Duration <= 0:
		return &InvalidSoundError{Movie: movie, Export: s.Export, Reason: "tone duration must be positive"}
	case s.Tone != nil && s.Tone.SampleRate < 0:
		return &InvalidSoundError{Movie: movie, Export: s.Export, Reason: "tone sample_rate must not be negative"}
	}
	return nil
}
