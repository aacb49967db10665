package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bamsammich/hollow/internal/event"
	"github.com/bamsammich/hollow/internal/ui"
)

type entryKind int

const (
	entryFull entryKind = iota
	entryHollow
	entrySkipped
	entryFailed
)

type completedEntry struct {
	path   string
	size   int64
	kind   entryKind
	errMsg string
}

type errorEntry struct {
	path string
	err  string
	time time.Time
}

type feedView struct {
	currentDir   string
	completed    []completedEntry // unbounded history
	errors       []errorEntry     // never evicted
	scrollOffset int              // viewport offset into completed list
	autoScroll   bool             // follow new entries
}

func newFeedView() feedView {
	return feedView{autoScroll: true}
}

func (f *feedView) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.DirCreated:
		f.currentDir = ev.Path

	case event.FileCopied:
		f.addCompleted(completedEntry{path: ev.Path, size: ev.Size, kind: entryFull})

	case event.FileHollowed:
		f.addCompleted(completedEntry{path: ev.Path, kind: entryHollow})

	case event.FileExcluded:
		f.addCompleted(completedEntry{path: ev.Path, kind: entrySkipped})

	case event.FileFailed, event.DirFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		f.addCompleted(completedEntry{path: ev.Path, kind: entryFailed, errMsg: errMsg})
		f.errors = append(f.errors, errorEntry{
			path: ev.Path,
			err:  errMsg,
			time: ev.Timestamp,
		})
	}
}

func (f *feedView) addCompleted(e completedEntry) {
	f.completed = append(f.completed, e)
	// The viewport is pinned to the bottom in view() while autoScroll holds.
}

// scrollDown moves the viewport down one line and disables autoScroll.
func (f *feedView) scrollDown() {
	f.autoScroll = false
	f.scrollOffset++
}

// scrollUp moves the viewport up one line and disables autoScroll.
func (f *feedView) scrollUp() {
	f.autoScroll = false
	if f.scrollOffset > 0 {
		f.scrollOffset--
	}
}

// scrollToTop jumps to the first completed entry.
func (f *feedView) scrollToTop() {
	f.autoScroll = false
	f.scrollOffset = 0
}

// scrollToBottom jumps to the most recent completed entry and re-enables autoScroll.
func (f *feedView) scrollToBottom() {
	f.autoScroll = true
}

func (f *feedView) view(width, height int) string {
	if width < 20 {
		width = 20
	}

	errCount := min(len(f.errors), 5)

	// One divider per visible section, plus the current directory line.
	reserved := 0
	if f.currentDir != "" {
		reserved += 2
	}
	if errCount > 0 {
		reserved++
	}
	if len(f.completed) > 0 {
		reserved++
	}

	completedHeight := max(height-errCount-reserved, 1)

	maxOffset := max(len(f.completed)-completedHeight, 0)
	if f.autoScroll {
		f.scrollOffset = maxOffset
	}
	f.scrollOffset = min(max(f.scrollOffset, 0), maxOffset)

	var b strings.Builder

	if f.currentDir != "" {
		b.WriteString(styleDivider.Render("─ directory"))
		b.WriteByte('\n')
		b.WriteString("  " + styleFileDir.Render(truncate(f.currentDir+"/", width-2)))
		b.WriteByte('\n')
	}

	if lines := f.renderCompletedViewport(completedHeight); lines != "" {
		b.WriteString(styleDivider.Render(fmt.Sprintf("─ files (%d)", len(f.completed))))
		b.WriteByte('\n')
		b.WriteString(lines)
	}

	if lines := f.renderErrors(errCount); lines != "" {
		b.WriteString(styleDivider.Render(fmt.Sprintf("─ errors (%d)", len(f.errors))))
		b.WriteByte('\n')
		b.WriteString(lines)
	}

	return b.String()
}

func (f *feedView) renderCompletedViewport(viewportHeight int) string {
	if len(f.completed) == 0 {
		return ""
	}

	start := max(f.scrollOffset, 0)
	end := min(start+viewportHeight, len(f.completed))

	var b strings.Builder
	for _, e := range f.completed[start:end] {
		var icon, extra string
		switch e.kind {
		case entryFailed:
			icon = styleIconFailed.Render("✗")
			extra = styleError.Render(e.errMsg)
		case entrySkipped:
			icon = styleIconSkipped.Render("–")
			extra = styleIconSkipped.Render("skipped")
		case entryHollow:
			icon = styleIconHollow.Render("○")
			extra = styleFileSize.Render("hollow")
		default:
			icon = styleIconDone.Render("✓")
			extra = styleFileSize.Render(ui.FormatBytes(e.size))
		}

		fmt.Fprintf(&b, "  %s  %s  %s\n", icon, styledPath(e.path), extra)
	}
	return b.String()
}

func (f *feedView) renderErrors(maxLines int) string {
	if len(f.errors) == 0 {
		return ""
	}

	var b strings.Builder
	// Show the most recent errors (tail).
	start := max(len(f.errors)-maxLines, 0)
	for _, e := range f.errors[start:] {
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			styleIconFailed.Render("✗"),
			styleErrorPath.Render(e.path),
			styleError.Render(e.err))
	}
	return b.String()
}

func styledPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == "." || dir == "" {
		return styleFilePath.Render(base)
	}
	return styleFileDir.Render(dir+"/") + styleFilePath.Render(base)
}

// truncate shortens s from the left to fit within maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return "..." + s[len(s)-maxLen+3:]
}
