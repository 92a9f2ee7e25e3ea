package legcli

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration in human-readable compact form,
// monotonic under natural sort of {s, m, h}: any duration in a smaller
// unit tier sorts before any duration in a larger one.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
}

// Summary is the per-run outcome every subcommand prints on exit, per
// spec.md §7's "Files processed / skipped / failed; rows inserted …"
// convention.
type Summary struct {
	Processed    int
	Skipped      int
	Failed       int
	RowsInserted int
	Duration     time.Duration
}

// String renders the final summary line.
func (s Summary) String() string {
	return fmt.Sprintf("Files processed: %d / skipped: %d / failed: %d; rows inserted: %d (took %s)",
		s.Processed, s.Skipped, s.Failed, s.RowsInserted, FormatDuration(s.Duration))
}

// ExitCode returns 1 if any per-file failure occurred, 0 otherwise, per
// spec.md §6's exit-code policy.
func (s Summary) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}
	return 0
}
