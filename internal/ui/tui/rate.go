package tui

import (
	"fmt"
	"strings"

	"github.com/bamsammich/hollow/internal/stats"
	"github.com/bamsammich/hollow/internal/ui"
)

type rateView struct{}

func newRateView() rateView {
	return rateView{}
}

func (r *rateView) view(width int, snap stats.Snapshot, collector *stats.Collector) string {
	if width < 20 {
		width = 20
	}

	var b strings.Builder

	// Big files/s number.
	fps := collector.RollingFilesPerSec(5)
	b.WriteString("  " + styleBigNumber.Render(ui.FormatFileRate(fps)))
	b.WriteString("\n\n")

	// Full-width sparkline (60-second history).
	sparkWidth := max(width-4, 10)
	spark := ui.Sparkline(collector.SparklineData(sparkWidth), sparkWidth)
	b.WriteString("  " + styleSparkline.Render(spark))
	b.WriteString("\n\n")

	statLine := fmt.Sprintf("  %s   %s",
		styleFileSpeed.Render(ui.FormatRate(collector.RollingSpeed(5))),
		styleFileSize.Render(fmt.Sprintf("%s / %s files", ui.FormatCount(snap.FilesProcessed), ui.FormatCount(snap.FilesTotal))),
	)
	b.WriteString(statLine)
	b.WriteString("\n\n")

	// Classification breakdown.
	b.WriteString("  " + styleDivider.Render("breakdown") + "\n")
	b.WriteString(r.renderBreakdown(snap, max(width-30, 10)))

	return b.String()
}

func (r *rateView) renderBreakdown(snap stats.Snapshot, barWidth int) string {
	total := snap.FilesProcessed
	rows := []struct {
		label string
		n     int64
		style func(...string) string
	}{
		{"full", snap.FilesFull, styleIconDone.Render},
		{"hollow", snap.FilesHollowed, styleIconHollow.Render},
		{"skipped", snap.FilesExcluded, styleIconSkipped.Render},
		{"failed", snap.FilesFailed + snap.DirsFailed, styleIconFailed.Render},
	}

	var b strings.Builder
	for _, row := range rows {
		var pct float64
		if total > 0 {
			pct = float64(row.n) / float64(total)
		}
		fmt.Fprintf(&b, "  %-8s %s  %s\n",
			row.label,
			row.style(ui.ProgressBar(pct, barWidth)),
			styleFileSize.Render(ui.FormatCount(row.n)))
	}
	return b.String()
}
