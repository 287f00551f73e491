package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/soundctl/internal/infrastructure/sqlite"
	"github.com/zjrosen/soundctl/internal/paths"
	"github.com/zjrosen/soundctl/internal/playback"
	"github.com/zjrosen/soundctl/internal/playback/domain"
	"github.com/zjrosen/soundctl/internal/ui/styles"
)

// ErrNoJournal is returned when the configured journal file does not exist.
var ErrNoJournal = errors.New("no playback journal (set journal.enabled: true and run a script)")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded playback events",
	Long: `Shows the playback events recorded for a run: the latest one, or the
run given with --run. With --runs, lists recent runs instead.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("run", "", "run GUID (default: latest run)")
	historyCmd.Flags().Int("limit", 50, "maximum number of rows")
	historyCmd.Flags().Bool("runs", false, "list runs instead of events")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	guid, _ := cmd.Flags().GetString("run")
	limit, _ := cmd.Flags().GetInt("limit")
	listRuns, _ := cmd.Flags().GetBool("runs")

	path := paths.ExpandHome(cfg.Journal.Path)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrNoJournal, path)
	}
	db, err := sqlite.NewDB(path)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer func() { _ = db.Close() }()
	journal := playback.NewJournal(db.RunRepository(), db.EventRepository())

	out := cmd.OutOrStdout()
	if listRuns {
		runs, err := journal.Runs(limit)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, renderRuns(runs))
		return err
	}

	run, events, err := journal.History(guid, limit)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, renderHistory(run, events))
	return err
}

func renderRuns(runs []*domain.Run) string {
	t := styles.NewTable("RUN", "STARTED", "STATE", "SCRIPT")
	for _, r := range runs {
		t.Row(
			r.GUID(),
			r.StartedAt().Local().Format("2006-01-02 15:04:05"),
			styles.StateStyle(string(r.State())).Render(string(r.State())),
			r.Script(),
		)
	}
	return t.String()
}

func renderHistory(run *domain.Run, events []*domain.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "script:  %s\n", run.Script())
	fmt.Fprintf(&b, "content: %s\n", run.ContentDir())
	fmt.Fprintf(&b, "started: %s\n", run.StartedAt().Local().Format("2006-01-02 15:04:05"))
	if msg := run.ErrorMessage(); msg != "" {
		fmt.Fprintf(&b, "error:   %s\n", styles.ErrorStyle.Render(msg))
	}

	if len(events) == 0 {
		b.WriteString(styles.MutedStyle.Render("no playback events"))
	} else {
		t := styles.NewTable("#", "AT", "EVENT", "SOUND", "INSTANCE", "DETAIL")
		for _, e := range events {
			t.Row(
				fmt.Sprint(e.Seq),
				styles.FormatTime(e.OccurredAt, run.StartedAt()),
				styles.StateStyle(string(e.Kind)).Render(string(e.Kind)),
				e.SoundName,
				shortID(e.Instance),
				eventDetail(e),
			)
		}
		b.WriteString(t.String())
	}

	return styles.RenderTitled(b.String(), "run "+shortID(run.GUID()), string(run.State()))
}

func eventDetail(e *domain.Event) string {
	var parts []string
	if e.StartSample != nil {
		parts = append(parts, fmt.Sprintf("from sample %d", *e.StartSample))
	}
	if l := styles.FormatLoops(e.Loops); l != "" {
		parts = append(parts, l)
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	return strings.Join(parts, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
