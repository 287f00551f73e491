// Package watcher reports changes to a content directory.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/soundctl/internal/log"
)

// EventType distinguishes watcher notifications.
type EventType int

const (
	// ContentChanged is sent once per burst of relevant file changes.
	ContentChanged EventType = iota
	// WatcherError is sent immediately when fsnotify reports an error.
	WatcherError
)

// WatcherEvent is a notification from the watcher.
type WatcherEvent struct {
	Type EventType
	// Paths lists the files that changed during the burst. Empty for errors.
	Paths []string
	Error error
}

// Config configures a Watcher.
type Config struct {
	// Dir is the content directory. Subdirectories that exist when Start is
	// called are watched too.
	Dir         string
	DebounceDur time.Duration
	// Extensions restricts notifications to files with these suffixes.
	// Empty means every file.
	Extensions []string
}

// DefaultConfig returns the configuration used by `soundctl run --watch`.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:         dir,
		DebounceDur: 200 * time.Millisecond,
		Extensions:  []string{".yaml", ".yml", ".wav", ".lua"},
	}
}

// Watcher debounces fsnotify events for a content directory.
type Watcher struct {
	cfg    Config
	fsw    *fsnotify.Watcher
	events chan WatcherEvent

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	if cfg.DebounceDur <= 0 {
		cfg.DebounceDur = DefaultConfig(cfg.Dir).DebounceDur
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		cfg:    cfg,
		fsw:    fsw,
		events: make(chan WatcherEvent, 1),
		done:   make(chan struct{}),
	}, nil
}

// Events returns the notification channel. It is closed by Stop.
func (w *Watcher) Events() <-chan WatcherEvent {
	return w.events
}

// Start begins watching.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.cfg.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.cfg.Dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", w.cfg.Dir, err)
	}

	w.wg.Add(1)
	go w.loop()
	log.Debug(log.CatWatcher, "Watcher started", "dir", w.cfg.Dir, "debounce", w.cfg.DebounceDur)
	return nil
}

// Stop ends watching and closes the Events channel. Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.events)
	})
	return err
}

func (w *Watcher) relevant(name string) bool {
	if len(w.cfg.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range w.cfg.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(ev.Name); err != nil {
						log.Warn(log.CatWatcher, "Failed to watch new directory", "dir", ev.Name, "error", err)
					}
					continue
				}
			}
			if !w.relevant(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.cfg.DebounceDur)
			} else {
				timer.Reset(w.cfg.DebounceDur)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			log.Debug(log.CatWatcher, "Content changed", "files", len(paths))
			w.send(WatcherEvent{Type: ContentChanged, Paths: paths})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watcher error", err)
			w.send(WatcherEvent{Type: WatcherError, Error: err})
		}
	}
}

// send delivers ev unless the watcher is stopping. A pending ContentChanged
// that has not been received yet absorbs the new one.
func (w *Watcher) send(ev WatcherEvent) {
	select {
	case w.events <- ev:
	case <-w.done:
	default:
		if ev.Type != ContentChanged {
			select {
			case w.events <- ev:
			case <-w.done:
			}
		}
	}
}
