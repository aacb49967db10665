package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bamsammich/hollow/internal/stats"
)

const mebibyte = 1024 * 1024

// FormatRate formats a bytes-per-second rate as a human-readable string.
func FormatRate(bytesPerSec float64) string {
	if bytesPerSec <= 0 {
		return "0 B/s"
	}
	val := bytesPerSec
	for _, u := range []string{"B/s", "KB/s", "MB/s", "GB/s", "TB/s"} {
		if val < 1024 {
			return scaled(val) + " " + u
		}
		val /= 1024
	}
	return fmt.Sprintf("%.1f PB/s", val)
}

// FormatFileRate formats a files-per-second rate. Rates under 10 keep one
// decimal so slow full copies still register.
func FormatFileRate(filesPerSec float64) string {
	switch {
	case filesPerSec <= 0:
		return "0 files/s"
	case filesPerSec < 10:
		return fmt.Sprintf("%.1f files/s", filesPerSec)
	default:
		return FormatCount(int64(filesPerSec)) + " files/s"
	}
}

// scaled prints val with fewer decimals as it grows.
func scaled(val float64) string {
	switch {
	case val < 10:
		return fmt.Sprintf("%.2f", val)
	case val < 100:
		return fmt.Sprintf("%.1f", val)
	default:
		return fmt.Sprintf("%.0f", val)
	}
}

// FormatMB renders a byte count in MB (2^20 bytes) with two decimals, as the
// scan report shows it.
func FormatMB(b int64) string {
	return fmt.Sprintf("%.2f MB", float64(b)/mebibyte)
}

// FormatETA formats a remaining duration, or "--" when unknown.
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	return FormatDuration(d)
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	digits := strconv.FormatInt(n, 10)
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}

	var b strings.Builder
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ProgressBar renders a bar of the given width using ▪ for done and □ for remaining.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(min(max(pct, 0), 1) * float64(width))
	return strings.Repeat("▪", filled) + strings.Repeat("□", width-filled)
}

// FormatBytes wraps stats.FormatBytes for UI use.
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}

// FormatDuration formats elapsed time concisely.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
