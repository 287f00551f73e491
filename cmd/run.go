package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/audio/speakerout"
	"github.com/zjrosen/soundctl/internal/config"
	"github.com/zjrosen/soundctl/internal/infrastructure/sqlite"
	"github.com/zjrosen/soundctl/internal/log"
	"github.com/zjrosen/soundctl/internal/paths"
	"github.com/zjrosen/soundctl/internal/playback"
	"github.com/zjrosen/soundctl/internal/runner"
	"github.com/zjrosen/soundctl/internal/sound"
	"github.com/zjrosen/soundctl/internal/tracing"
	"github.com/zjrosen/soundctl/internal/ui/styles"
	"github.com/zjrosen/soundctl/internal/watcher"
)

var runCmd = &cobra.Command{
	Use:   "run <script.lua>",
	Short: "Run a content script",
	Long: `Loads the content directory, places its root movie at level 0 and runs
the script. The content directory defaults to content_dir from the config,
then to the script's own directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("content", "", "content directory (holds library.yaml)")
	runCmd.Flags().Bool("wait", false, "wait for playback to finish before exiting")
	runCmd.Flags().Bool("watch", false, "re-run the script when content changes")
	runCmd.Flags().String("audio", "", "audio backend: beep or none (overrides audio.backend)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scriptPath := args[0]
	contentFlag, _ := cmd.Flags().GetString("content")
	wait, _ := cmd.Flags().GetBool("wait")
	watch, _ := cmd.Flags().GetBool("watch")
	audioFlag, _ := cmd.Flags().GetString("audio")

	contentDir := paths.ResolveContentDir(firstNonEmpty(contentFlag, cfg.ContentDir, filepath.Dir(scriptPath)))
	backendName := firstNonEmpty(audioFlag, cfg.Audio.Backend)

	backend, closeBackend, err := openBackend(backendName, cfg.Audio)
	if err != nil {
		return err
	}
	defer closeBackend()

	tracer, shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Exporter: cfg.Tracing.Exporter,
		Endpoint: cfg.Tracing.Endpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.ErrorErr(log.CatConfig, "Failed to flush traces", err)
		}
	}()

	opts := runner.Options{
		ContentDir:  contentDir,
		Script:      scriptPath,
		Audio:       backend,
		Version:     uint8(cfg.Version),
		Tracer:      tracer,
		Output:      cmd.OutOrStdout(),
		Diagnostics: printDiagnostics(cmd.ErrOrStderr()),
	}
	if cfg.Journal.Enabled {
		db, err := sqlite.NewDB(paths.ExpandHome(cfg.Journal.Path))
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer func() { _ = db.Close() }()
		opts.Journal = playback.NewJournal(db.RunRepository(), db.EventRepository())
	}

	r := runner.New(opts)
	runErr := r.RunOnce(ctx)

	if watch {
		if runErr != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), styles.ErrorStyle.Render(runErr.Error()))
		}
		return watchContent(ctx, cmd, r, contentDir)
	}
	if runErr != nil {
		return runErr
	}

	if wait {
		if backendName == config.AudioNone {
			log.Debug(log.CatCLI, "Nothing to wait for with the silent backend")
			return nil
		}
		if err := r.Wait(ctx, 0); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}

func watchContent(ctx context.Context, cmd *cobra.Command, r *runner.Runner, contentDir string) error {
	wcfg := watcher.DefaultConfig(contentDir)
	if cfg.Watch.Debounce > 0 {
		wcfg.DebounceDur = cfg.Watch.Debounce
	}
	w, err := watcher.New(wcfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()
	if err := w.Start(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), styles.MutedStyle.Render("watching "+contentDir+" (ctrl+c to stop)"))
	return r.Watch(ctx, w.Events())
}

// openBackend creates the named playback backend. The returned function
// releases it.
func openBackend(name string, ac config.AudioConfig) (audio.Backend, func(), error) {
	switch name {
	case config.AudioNone:
		return audio.NewNullBackend(), func() {}, nil
	case config.AudioBeep:
		mixer := audio.NewMixerBackend(audio.MixerConfig{
			SampleRate:   beep.SampleRate(ac.SampleRate),
			MasterVolume: ac.MasterVolume,
		})
		out, err := speakerout.Start(mixer, ac.Buffer)
		if err != nil {
			return nil, nil, fmt.Errorf("starting audio output (try --audio none): %w", err)
		}
		return mixer, out.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown audio backend %q", name)
	}
}

// printDiagnostics reports script diagnostics on w as well as in the log.
func printDiagnostics(w io.Writer) sound.Diagnostics {
	return sound.DiagnosticsFunc(func(msg string, kv ...any) {
		sound.LogDiagnostics.Diagnose(msg, kv...)

		var b strings.Builder
		b.WriteString("warning: ")
		b.WriteString(msg)
		for i := 0; i+1 < len(kv); i += 2 {
			fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
		}
		_, _ = fmt.Fprintln(w, styles.WarningStyle.Render(b.String()))
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
