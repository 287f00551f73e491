package styles

import (
	"fmt"
	"time"
)

// FormatDuration renders a sound length for listings. Unknown lengths render as "-".
func FormatDuration(d time.Duration, known bool) string {
	if !known {
		return "-"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// FormatLoops renders a loop count; a single play renders empty.
func FormatLoops(n int) string {
	if n <= 1 {
		return ""
	}
	return fmt.Sprintf("x%d", n)
}

// FormatTime renders an event timestamp relative to start.
func FormatTime(t, start time.Time) string {
	return fmt.Sprintf("+%.3fs", t.Sub(start).Seconds())
}
