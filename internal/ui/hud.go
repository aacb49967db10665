package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/bamsammich/hollow/internal/event"
	"github.com/bamsammich/hollow/internal/stats"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// hudPresenter provides a TTY display with a feed of per-file results and a
// HUD that redraws in place below it.
type hudPresenter struct {
	w       io.Writer
	stats   *stats.Collector
	verbose bool // feed every file, not just failures

	// Internal state.
	phase        event.Phase
	scanned      int64
	copying      bool
	hudDrawn     bool
	hudLineCount int // actual number of lines in the last HUD draw
	lastHUDDraw  time.Time
}

const (
	sparklineWidth   = 20
	progressBarWidth = 20
	hudMinInterval   = 50 * time.Millisecond // don't redraw faster than this
)

func (p *hudPresenter) Run(events <-chan Event) error {
	// Fire first tick quickly to seed the ring buffer with initial rate data,
	// then switch to 1s interval.
	secTicker := time.NewTicker(250 * time.Millisecond)
	defer secTicker.Stop()
	firstTickDone := false

	// Redraw ticker for when no events are flowing (e.g., large file copy).
	redrawTicker := time.NewTicker(100 * time.Millisecond)
	defer redrawTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clearHUD()
				return nil
			}
			p.handleEvent(ev)
			p.maybeDrawHUD()

		case <-redrawTicker.C:
			p.drawHUD()

		case <-secTicker.C:
			p.stats.Tick()
			if !firstTickDone {
				firstTickDone = true
				secTicker.Reset(1 * time.Second)
			}
		}
	}
}

func (p *hudPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case ScanStarted:
		p.phase = event.PhaseScan

	case ScanProgress:
		p.scanned = ev.Processed

	case ScanComplete:
		p.scanned = ev.Total
		p.clearHUD()
		fmt.Fprintf(p.w, "%sscanned %s files%s\n", ansiDim, FormatCount(ev.Total), ansiReset)

	case CopyStarted:
		p.phase = event.PhaseCopy
		p.copying = true

	case FileCopied:
		if p.verbose {
			p.feed("✓", ev.Path, FormatBytes(ev.Size))
		}

	case FileHollowed:
		if p.verbose {
			p.feed("○", ev.Path, ansiDim+"hollow"+ansiReset)
		}

	case FileExcluded:
		if p.verbose {
			p.feed("–", ev.Path, ansiDim+"skipped"+ansiReset)
		}

	case FileFailed, DirFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		p.feed(ansiBold+"✗"+ansiReset, ev.Path, errMsg)
	}
}

// feed prints one line above the HUD.
func (p *hudPresenter) feed(icon, path, detail string) {
	p.clearHUD()
	fmt.Fprintf(p.w, "%s  %s  %s\n", icon, styledPath(path), detail)
	p.drawHUD()
}

// maybeDrawHUD redraws the HUD if enough time has passed since the last draw.
func (p *hudPresenter) maybeDrawHUD() {
	now := time.Now()
	if now.Sub(p.lastHUDDraw) < hudMinInterval {
		return
	}
	p.drawHUD()
}

func (p *hudPresenter) drawHUD() {
	p.clearHUD()

	switch p.phase {
	case event.PhaseScan:
		fmt.Fprintf(p.w, "scanning  %s files\n", FormatCount(p.scanned))
		p.hudLineCount = 1

	case event.PhaseCopy:
		snap := p.stats.Snapshot()
		var pct float64
		if snap.FilesTotal > 0 {
			pct = min(float64(snap.FilesProcessed)/float64(snap.FilesTotal), 1)
		}
		fps := p.stats.RollingFilesPerSec(5)
		spark := Sparkline(p.stats.SparklineData(sparklineWidth), sparklineWidth)

		// Line 1: files/s sparkline + counts by classification.
		fmt.Fprintf(p.w, "       %s   %s   full %s  hollow %s  skipped %s\n",
			spark, FormatFileRate(fps),
			FormatCount(snap.FilesFull), FormatCount(snap.FilesHollowed), FormatCount(snap.FilesExcluded))

		// Line 2: progress bar + files + eta.
		fmt.Fprintf(p.w, " %3.0f%%  %s   %s / %s files   %s   eta %s\n",
			pct*100, ProgressBar(pct, progressBarWidth),
			FormatCount(snap.FilesProcessed), FormatCount(snap.FilesTotal),
			FormatBytes(snap.BytesCopied),
			FormatETA(p.stats.ETA()))
		p.hudLineCount = 2

	default:
		return
	}

	p.hudDrawn = true
	p.lastHUDDraw = time.Now()
}

func (p *hudPresenter) clearHUD() {
	if !p.hudDrawn {
		return
	}
	lines := p.hudLineCount
	if lines == 0 {
		lines = 2 // fallback
	}
	// Move cursor up N lines and clear to end of screen.
	fmt.Fprintf(p.w, "\033[%dA\033[J", lines)
	p.hudDrawn = false
}

func (p *hudPresenter) Summary() string {
	if !p.copying {
		return ""
	}
	return CompletionSummary(p.stats.Snapshot())
}

// styledPath returns the path with the directory portion dimmed and the
// filename in normal weight, making the actual filename stand out.
func styledPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == "." || dir == "" {
		return base
	}
	return fmt.Sprintf("%s%s/%s%s", ansiDim, dir, ansiReset, base)
}
