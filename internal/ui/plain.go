package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/hollow/internal/stats"
)

const plainProgressInterval = time.Second

// plainPresenter writes progress lines to stderr and failures (plus every
// file with --verbose) to stdout. Used when stderr is not a terminal.
type plainPresenter struct {
	w          io.Writer
	errW       io.Writer
	stats      *stats.Collector
	verbose    bool
	noProgress bool

	copying      bool
	lastProgress time.Time
}

func (p *plainPresenter) Run(events <-chan Event) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			if p.copying && time.Since(p.lastProgress) >= 5*time.Second {
				p.printProgress()
			}
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case ScanProgress:
		p.progressf("scanning: %s files\n", FormatCount(ev.Processed))
	case ScanComplete:
		p.progressf("scan done: %s files\n", FormatCount(ev.Total))
	case CopyStarted:
		p.copying = true
		p.lastProgress = time.Time{}
	case CopyProgress:
		if time.Since(p.lastProgress) >= plainProgressInterval {
			p.printProgress()
		}
	case FileCopied:
		if p.verbose {
			fmt.Fprintf(p.w, "full    %s  %s\n", ev.Path, FormatBytes(ev.Size))
		}
	case FileHollowed:
		if p.verbose {
			fmt.Fprintf(p.w, "hollow  %s\n", ev.Path)
		}
	case FileExcluded:
		if p.verbose {
			fmt.Fprintf(p.w, "skip    %s\n", ev.Path)
		}
	case FileFailed, DirFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "failed  %s  %s\n", ev.Path, errMsg)
	}
}

func (p *plainPresenter) progressf(format string, args ...any) {
	if p.noProgress {
		return
	}
	fmt.Fprintf(p.errW, format, args...)
}

func (p *plainPresenter) printProgress() {
	p.lastProgress = time.Now()
	snap := p.stats.Snapshot()
	if snap.FilesTotal > 0 {
		pct := float64(snap.FilesProcessed) / float64(snap.FilesTotal) * 100
		p.progressf("progress: %.0f%% %s/%s files %s eta %s\n",
			min(pct, 100),
			FormatCount(snap.FilesProcessed), FormatCount(snap.FilesTotal),
			FormatBytes(snap.BytesCopied),
			FormatETA(p.stats.ETA()),
		)
		return
	}
	p.progressf("progress: %s files %s\n",
		FormatCount(snap.FilesProcessed),
		FormatBytes(snap.BytesCopied),
	)
}

func (p *plainPresenter) Summary() string {
	if !p.copying {
		return ""
	}
	return CompletionSummary(p.stats.Snapshot())
}
