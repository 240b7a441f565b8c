package projection

import (
	"fmt"
	"time"
)

// labelLayout matches a wall-clock time label under each chart point.
const labelLayout = "15:04:05"

// FormatRemaining renders seconds as zero-padded HH:MM:SS. Negative input is shown as zero.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatProfileDuration renders a profile length in minutes: "4h 0m" or "45m".
func FormatProfileDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// TimeLabel is the chart label generated for a sample taken at t.
func TimeLabel(t time.Time) string {
	return t.Format(labelLayout)
}
