package library

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/patrickmn/go-cache"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/log"
)

// DefaultVersion is the compatibility version given to movies whose manifest
// entry does not declare one.
const DefaultVersion = 6

const (
	decodeCacheTTL     = 10 * time.Minute
	decodeCacheCleanup = 15 * time.Minute
	toneSampleRate     = beep.SampleRate(44100)
)

// decoded is a cache entry: sample data shared by every registration of the
// same source.
type decoded struct {
	format beep.Format
	buffer *beep.Buffer
}

// Loader builds libraries from content directories and registers their
// sounds with an audio backend. Decoded samples are cached across loads, so
// reloading a directory only decodes files that changed.
type Loader struct {
	backend        audio.Backend
	cache          *cache.Cache
	defaultVersion uint8
}

// NewLoader creates a loader registering sounds with backend.
// defaultVersion of 0 means DefaultVersion.
func NewLoader(backend audio.Backend, defaultVersion uint8) *Loader {
	if defaultVersion == 0 {
		defaultVersion = DefaultVersion
	}
	return &Loader{
		backend:        backend,
		cache:          cache.New(decodeCacheTTL, decodeCacheCleanup),
		defaultVersion: defaultVersion,
	}
}

// CachedDecodes returns the number of cached decoded sources.
func (l *Loader) CachedDecodes() int {
	return l.cache.ItemCount()
}

// Load reads the content directory dir.
func (l *Loader) Load(dir string) (*Library, error) {
	return l.LoadFS(os.DirFS(dir), dir)
}

// LoadFS reads a content directory from fsys. dir is recorded on the library
// for display only.
//
// Manifest errors fail the load. A sound whose data cannot be read is skipped
// with a warning so that the rest of the content stays usable; scripts
// referring to it see a missing export.
func (l *Loader) LoadFS(fsys fs.FS, dir string) (*Library, error) {
	manifest, err := ReadManifest(fsys)
	if err != nil {
		return nil, err
	}

	lib := New(dir)
	for _, mm := range manifest.Movies {
		version := uint8(mm.Version)
		if version == 0 {
			version = l.defaultVersion
		}
		movie := NewMovie(mm.Name, version)

		for _, sm := range mm.Sounds {
			asset, err := l.loadSound(fsys, mm.Name, sm)
			if err != nil {
				log.Warn(log.CatLibrary, "Skipping sound", "movie", mm.Name, "export", sm.Export, "error", err)
				continue
			}
			if err := movie.AddExport(asset); err != nil {
				return nil, err
			}
		}
		for _, sym := range mm.Symbols {
			if err := movie.AddExport(&SymbolAsset{Export: sym.Export, Kind: sym.Kind}); err != nil {
				return nil, err
			}
		}

		lib.Add(movie)
		log.Debug(log.CatLibrary, "Movie loaded", "movie", mm.Name, "version", version, "exports", len(movie.order))
	}

	if manifest.Root != "" {
		if err := lib.SetRoot(manifest.Root); err != nil {
			return nil, err
		}
	}

	log.Info(log.CatLibrary, "Library loaded", "dir", dir, "movies", len(lib.order), "cachedDecodes", l.cache.ItemCount())
	return lib, nil
}

// loadSound decodes (or fetches from cache) and registers one sound.
func (l *Loader) loadSound(fsys fs.FS, movie string, sm SoundManifest) (*SoundAsset, error) {
	var (
		d      *decoded
		source string
		err    error
	)
	if sm.Tone != nil {
		source = fmt.Sprintf("tone %gHz %s", sm.Tone.Frequency, sm.Tone.Duration)
		d, err = l.tone(*sm.Tone)
	} else {
		source = sm.File
		d, err = l.wavFile(fsys, sm.File)
	}
	if err != nil {
		return nil, &InvalidSoundError{Movie: movie, Export: sm.Export, Reason: err.Error()}
	}

	sound := &audio.Sound{Name: movie + "/" + sm.Export, Format: d.format, Buffer: d.buffer}
	handle, err := l.backend.RegisterSound(sound)
	if err != nil {
		return nil, fmt.Errorf("registering sound: %w", err)
	}
	dur, _ := sound.Duration()
	return &SoundAsset{Export: sm.Export, Handle: handle, Source: source, Duration: dur}, nil
}

// wavFile decodes a WAV file, keyed in the cache by path, size and mtime.
func (l *Loader) wavFile(fsys fs.FS, name string) (*decoded, error) {
	name = path.Clean(name)
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("wav:%s:%d:%d", name, info.Size(), info.ModTime().UnixNano())
	if v, ok := l.cache.Get(key); ok {
		return v.(*decoded), nil
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding wav: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("reading wav samples: %w", err)
	}

	d := &decoded{format: format, buffer: buf}
	l.cache.Set(key, d, cache.DefaultExpiration)
	return d, nil
}

// tone synthesizes a sine tone.
func (l *Loader) tone(t ToneManifest) (*decoded, error) {
	rate := toneSampleRate
	if t.SampleRate > 0 {
		rate = beep.SampleRate(t.SampleRate)
	}
	key := fmt.Sprintf("tone:%g:%d:%d", t.Frequency, t.Duration, rate)
	if v, ok := l.cache.Get(key); ok {
		return v.(*decoded), nil
	}

	sine, err := generators.SineTone(rate, t.Frequency)
	if err != nil {
		return nil, fmt.Errorf("generating tone: %w", err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(rate.N(t.Duration), sine))

	d := &decoded{format: format, buffer: buf}
	l.cache.Set(key, d, cache.DefaultExpiration)
	return d, nil
}
