package library

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundctl/internal/audio"
)

// writeWAV writes frames of silence at rate to dir/name.
func writeWAV(t *testing.T, dir, name string, rate beep.SampleRate, frames int) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(frames), format))
}

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(body), 0600))
}

func TestLoader_LoadRegistersSounds(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, dir, "sounds/click.wav", 22050, 11025) // 500ms
	writeManifest(t, dir, `
movies:
  - name: main
    sounds:
      - export: click
        file: sounds/click.wav
      - export: beep
        tone: {frequency: 440, duration: 250ms}
    symbols:
      - export: button
        kind: clip
  - name: other
    version: 5
`)

	backend := audio.NewNullBackend()
	lib, err := NewLoader(backend, 0).Load(dir)
	require.NoError(t, err)

	main, ok := lib.Root()
	require.True(t, ok)
	require.Equal(t, "main", main.Name())
	require.EqualValues(t, DefaultVersion, main.Version())

	other, ok := lib.Movie("other")
	require.True(t, ok)
	require.EqualValues(t, 5, other.Version())

	a, ok := lib.Resolve(main, "click")
	require.True(t, ok)
	click, ok := AsSound(a)
	require.True(t, ok)
	require.Equal(t, 500*time.Millisecond, click.Duration)
	require.Equal(t, "sounds/click.wav", click.Source)

	ms, ok := backend.SoundDuration(click.Handle)
	require.True(t, ok)
	require.Equal(t, 500, ms)

	a, ok = lib.Resolve(main, "beep")
	require.True(t, ok)
	tone, _ := AsSound(a)
	ms, ok = backend.SoundDuration(tone.Handle)
	require.True(t, ok)
	require.Equal(t, 250, ms)
	require.NotEqual(t, click.Handle, tone.Handle)
}

func TestLoader_DefaultVersionOverride(t *testing.T) {
	fsys := fstest.MapFS{
		ManifestFile: {Data: []byte("movies:\n  - name: main\n")},
	}
	lib, err := NewLoader(audio.NewNullBackend(), 7).LoadFS(fsys, "mem")
	require.NoError(t, err)
	root, _ := lib.Root()
	require.EqualValues(t, 7, root.Version())
}

func TestLoader_MissingFileIsSkipped(t *testing.T) {
	fsys := fstest.MapFS{
		ManifestFile: {Data: []byte(`
movies:
  - name: main
    sounds:
      - export: gone
        file: nowhere.wav
      - export: bad
        file: bad.wav
      - export: ok
        tone: {frequency: 220, duration: 10ms}
`)},
		"bad.wav": {Data: []byte("not a wav file")},
	}

	lib, err := NewLoader(audio.NewNullBackend(), 0).LoadFS(fsys, "mem")
	require.NoError(t, err)
	root, _ := lib.Root()

	_, ok := lib.Resolve(root, "gone")
	require.False(t, ok)
	_, ok = lib.Resolve(root, "bad")
	require.False(t, ok)
	_, ok = lib.Resolve(root, "ok")
	require.True(t, ok)
}

func TestLoader_ReloadReusesDecodes(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, dir, "a.wav", 44100, 441)
	writeManifest(t, dir, `
root: b
movies:
  - name: a
    sounds:
      - export: a
        file: a.wav
  - name: b
    sounds:
      - export: a
        file: a.wav
`)

	loader := NewLoader(audio.NewNullBackend(), 0)
	lib, err := loader.Load(dir)
	require.NoError(t, err)
	require.Equal(t, 1, loader.CachedDecodes(), "one decode shared by both movies")

	root, _ := lib.Root()
	require.Equal(t, "b", root.Name())

	_, err = loader.Load(dir)
	require.NoError(t, err)
	require.Equal(t, 1, loader.CachedDecodes())
}

func TestLoader_ManifestErrors(t *testing.T) {
	loader := NewLoader(audio.NewNullBackend(), 0)

	_, err := loader.Load(t.TempDir())
	require.ErrorIs(t, err, ErrManifestNotFound)

	_, err = loader.LoadFS(fstest.MapFS{ManifestFile: {Data: []byte("movies: []\n")}}, "mem")
	require.ErrorIs(t, err, ErrNoMovies)
}
