package legcli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDurationMonotonic(t *testing.T) {
	durations := []time.Duration{
		10 * time.Millisecond,
		999 * time.Millisecond,
		1500 * time.Millisecond,
		59 * time.Second,
		90 * time.Second,
		59 * time.Minute,
		90 * time.Minute,
	}
	var last int
	for i, d := range durations {
		formatted := FormatDuration(d)
		order := orderOf(formatted)
		if i > 0 {
			assert.GreaterOrEqual(t, order, last, "duration %s formatted as %s out of order", d, formatted)
		}
		last = order
	}
}

// orderOf classifies a formatted duration string into its unit tier.
func orderOf(s string) int {
	switch {
	case hasSuffix(s, "ms"):
		return 0
	case hasSuffix(s, "h") || containsRune(s, 'h'):
		return 3
	case containsRune(s, 'm') && !hasSuffix(s, "ms"):
		return 2
	case hasSuffix(s, "s"):
		return 1
	default:
		return 0
	}
}

func hasSuffix(s, suf string) bool {
	if len(s) < len(suf) {
		return false
	}
	return s[len(s)-len(suf):] == suf
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

func TestFormatDurationTiers(t *testing.T) {
	assert.Equal(t, "500ms", FormatDuration(500*time.Millisecond))
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "1m30s", FormatDuration(90*time.Second))
	assert.Equal(t, "1h30m", FormatDuration(90*time.Minute))
}

func TestSummaryStringAndExitCode(t *testing.T) {
	s := Summary{Processed: 10, Skipped: 2, Failed: 0, RowsInserted: 100, Duration: 2 * time.Second}
	assert.Contains(t, s.String(), "Files processed: 10 / skipped: 2 / failed: 0")
	assert.Equal(t, 0, s.ExitCode())

	s.Failed = 1
	assert.Equal(t, 1, s.ExitCode())
}
