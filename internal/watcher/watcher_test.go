package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundctl/internal/watcher"
)

func newStartedWatcher(t *testing.T, dir string, debounce time.Duration) *watcher.Watcher {
	t.Helper()
	cfg := watcher.DefaultConfig(dir)
	cfg.DebounceDur = debounce
	w, err := watcher.New(cfg)
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })
	require.NoError(t, w.Start(), "failed to start watcher")
	return w
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "library.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("movies: []"), 0644))

	// 10 writes * 5ms stays well inside the debounce window.
	w := newStartedWatcher(t, dir, 150*time.Millisecond)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(manifest, []byte(fmt.Sprintf("root: m%d", i)), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case evt := <-w.Events():
		require.Equal(t, watcher.ContentChanged, evt.Type)
		require.Contains(t, evt.Paths, manifest)
	case <-time.After(time.Second):
		require.Fail(t, "expected notification but got timeout")
	}

	select {
	case <-w.Events():
		require.Fail(t, "unexpected second notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0644))

	w := newStartedWatcher(t, dir, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0644))

	select {
	case <-w.Events():
		require.Fail(t, "should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_WatchesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sounds := filepath.Join(dir, "sounds")
	require.NoError(t, os.Mkdir(sounds, 0755))

	w := newStartedWatcher(t, dir, 50*time.Millisecond)

	wav := filepath.Join(sounds, "click.wav")
	require.NoError(t, os.WriteFile(wav, []byte("RIFF"), 0644))

	select {
	case evt := <-w.Events():
		require.Equal(t, watcher.ContentChanged, evt.Type)
		require.Equal(t, []string{wav}, evt.Paths)
	case <-time.After(time.Second):
		require.Fail(t, "expected notification for file in subdirectory")
	}
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	w, err := watcher.New(watcher.DefaultConfig(dir))
	require.NoError(t, err)
	require.NoError(t, w.Start())

	done := make(chan struct{})
	go func() {
		_ = w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Stop() timed out - possible deadlock")
	}

	_, ok := <-w.Events()
	require.False(t, ok, "events channel should be closed after Stop()")
	require.NoError(t, w.Stop(), "second Stop is a no-op")
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.Error(t, w.Start())
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/content")

	require.Equal(t, "/content", cfg.Dir)
	require.Equal(t, 200*time.Millisecond, cfg.DebounceDur)
	require.Contains(t, cfg.Extensions, ".yaml")
	require.Contains(t, cfg.Extensions, ".wav")
}
