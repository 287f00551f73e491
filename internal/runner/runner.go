// Package runner loads a content directory and runs a script against it,
// optionally journaling playback and re-running on content changes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/display"
	"github.com/zjrosen/soundctl/internal/library"
	"github.com/zjrosen/soundctl/internal/log"
	"github.com/zjrosen/soundctl/internal/playback"
	"github.com/zjrosen/soundctl/internal/playback/domain"
	"github.com/zjrosen/soundctl/internal/script"
	"github.com/zjrosen/soundctl/internal/sound"
	"github.com/zjrosen/soundctl/internal/watcher"
)

// DefaultPollInterval is how often Wait checks for live instances.
const DefaultPollInterval = 20 * time.Millisecond

// Options configures a Runner.
type Options struct {
	ContentDir string
	Script     string
	// Audio is the playback backend. Required.
	Audio audio.Backend
	// Version is the compatibility version for movies that do not declare one.
	Version uint8
	// Journal records each run when set.
	Journal     *playback.Journal
	Tracer      trace.Tracer
	Output      io.Writer
	Diagnostics sound.Diagnostics
}

// playingCounter is implemented by backends that can report live instances.
type playingCounter interface {
	Playing() int
}

// Runner runs one script repeatedly against freshly loaded content. Decoded
// sounds are cached across runs.
type Runner struct {
	opts Options

	backend  audio.Backend
	recorder *playback.RecordingBackend
	loader   *library.Loader
	// lib is the last successfully loaded library; its sounds stay
	// registered until the next load replaces it.
	lib  *library.Library
	runs int
}

// New creates a runner.
func New(opts Options) *Runner {
	return &Runner{opts: opts, backend: opts.Audio}
}

// Runs returns the number of completed RunOnce calls, failed ones included.
func (r *Runner) Runs() int { return r.runs }

// Backend returns the backend scripts talk to. With a journal it is the
// recording wrapper around Options.Audio.
func (r *Runner) Backend() audio.Backend { return r.backend }

// RunOnce loads the content, places the root movie at level 0 of a new
// stage and executes the script.
func (r *Runner) RunOnce(ctx context.Context) (err error) {
	defer func() { r.runs++ }()

	if j := r.opts.Journal; j != nil {
		var run *domain.Run
		run, err = j.BeginRun(r.opts.Script, r.opts.ContentDir)
		if err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
		if r.recorder == nil {
			r.recorder = j.Wrap(r.opts.Audio, run)
			r.backend = r.recorder
		} else {
			r.recorder.SetRunGUID(run.GUID())
		}
		defer func() {
			if endErr := j.EndRun(run, err); endErr != nil {
				log.ErrorErr(log.CatDB, "Failed to finish run", endErr, "run", run.GUID())
			}
		}()
	}

	if r.loader == nil {
		r.loader = library.NewLoader(r.backend, r.opts.Version)
	}
	lib, err := r.loader.Load(r.opts.ContentDir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	if r.lib != nil {
		r.lib.Release(r.backend)
	}
	r.lib = lib

	stage := display.NewStage()
	if root, ok := lib.Root(); ok {
		if _, err := stage.LoadMovie(0, root); err != nil {
			return fmt.Errorf("loading root movie: %w", err)
		}
	}

	eng := script.New(script.Options{
		Library:     lib,
		Audio:       r.backend,
		Stage:       stage,
		Output:      r.opts.Output,
		Diagnostics: r.opts.Diagnostics,
		Tracer:      r.opts.Tracer,
	})
	defer eng.Close()

	log.Info(log.CatScript, "Running script", "script", r.opts.Script, "content", r.opts.ContentDir, "version", eng.Version())
	return eng.RunFile(ctx, r.opts.Script)
}

// Wait blocks until no instance is playing or ctx is done. Backends that
// cannot report live instances return immediately.
func (r *Runner) Wait(ctx context.Context, poll time.Duration) error {
	pc, ok := r.opts.Audio.(playingCounter)
	if !ok {
		return nil
	}
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for pc.Playing() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Watch re-runs the script after every content change until ctx is done or
// events is closed. Playback from the previous run is stopped first. Script
// failures are logged and do not end the loop.
func (r *Runner) Watch(ctx context.Context, events <-chan watcher.WatcherEvent) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == watcher.WatcherError {
				log.ErrorErr(log.CatWatcher, "Watch error", ev.Error)
				continue
			}

			log.Info(log.CatWatcher, "Content changed, re-running", "files", len(ev.Paths))
			// Host-initiated stop; not part of the next run's journal.
			r.opts.Audio.StopAllSounds()
			if err := r.RunOnce(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				log.ErrorErr(log.CatScript, "Run failed", err, "script", r.opts.Script)
			}
		}
	}
}
