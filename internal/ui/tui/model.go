package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamsammich/hollow/internal/event"
	"github.com/bamsammich/hollow/internal/stats"
	"github.com/bamsammich/hollow/internal/ui"
)

type viewMode int

const (
	viewFeed viewMode = iota
	viewRate
)

// Bubble Tea messages.
type engineEventMsg event.Event
type channelDoneMsg struct{}
type tickMsg time.Time
type saveResultMsg struct{ err error }

// readNextEvent returns a tea.Cmd that blocks on the event channel.
func readNextEvent(ch <-chan event.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return channelDoneMsg{}
		}
		return engineEventMsg(ev)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the root Bubble Tea model.
type Model struct {
	events  <-chan event.Event
	stats   *stats.Collector
	srcRoot string
	dstRoot string
	cancel  func()

	mode      viewMode
	feed      feedView
	rate      rateView
	width     int
	height    int
	statusMsg string // transient notification

	scanned  int64
	copying  bool // a copy walk has started
	done     bool // event channel closed
	quitting bool

	lastSnap stats.Snapshot
	lastFPS  float64
	lastETA  time.Duration

	save saveModal
}

// NewModel creates a new TUI model. cancel is invoked when the user quits
// before the run has finished; it may be nil.
func NewModel(events <-chan event.Event, collector *stats.Collector, srcRoot, dstRoot string, cancel func()) Model {
	return Model{
		events:  events,
		stats:   collector,
		srcRoot: srcRoot,
		dstRoot: dstRoot,
		cancel:  cancel,
		feed:    newFeedView(),
		rate:    newRateView(),
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		readNextEvent(m.events),
		tickCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case engineEventMsg:
		return m.handleEngineEvent(event.Event(msg))

	case channelDoneMsg:
		m.done = true
		m.lastSnap = m.stats.Snapshot()
		m.lastFPS = m.stats.RollingFilesPerSec(10)
		m.lastETA = 0
		return m, tickCmd()

	case tickMsg:
		if !m.done {
			m.stats.Tick()
			m.lastSnap = m.stats.Snapshot()
			m.lastFPS = m.stats.RollingFilesPerSec(10)
			m.lastETA = m.stats.ETA()
		}
		return m, tickCmd()

	case saveResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			m.statusMsg = fmt.Sprintf("saved to %s", m.save.value())
		}
		m.save.active = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The save modal captures all input while open.
	if m.save.active {
		return m.handleSaveKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if !m.done && m.cancel != nil {
			m.cancel()
		}
		m.quitting = true
		return m, tea.Quit

	case "r":
		m.mode = viewRate
		m.statusMsg = ""
		return m, nil

	case "f":
		m.mode = viewFeed
		m.statusMsg = ""
		return m, nil

	case "j", "down":
		if m.mode == viewFeed {
			m.feed.scrollDown()
		}
		return m, nil

	case "k", "up":
		if m.mode == viewFeed {
			m.feed.scrollUp()
		}
		return m, nil

	case "G":
		if m.mode == viewFeed {
			m.feed.scrollToBottom()
		}
		return m, nil

	case "g":
		if m.mode == viewFeed {
			m.feed.scrollToTop()
		}
		return m, nil

	case "s":
		if m.done && m.copying {
			m.save.open(fmt.Sprintf("hollow-%s.log", time.Now().Format("2006-01-02-150405")))
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.save.active = false
		m.statusMsg = ""
		return m, nil

	case tea.KeyEnter:
		return m, m.writeReport(m.save.value())

	case tea.KeyBackspace:
		m.save.backspace()
		return m, nil

	case tea.KeyDelete:
		m.save.deleteChar()
		return m, nil

	case tea.KeyLeft:
		m.save.moveLeft()
		return m, nil

	case tea.KeyRight:
		m.save.moveRight()
		return m, nil

	case tea.KeyRunes:
		m.save.insert(msg.Runes...)
		return m, nil
	}

	return m, nil
}

func (m Model) writeReport(path string) tea.Cmd {
	// Capture data needed by the goroutine.
	snap := m.lastSnap
	srcRoot := m.srcRoot
	dstRoot := m.dstRoot
	completed := make([]completedEntry, len(m.feed.completed))
	copy(completed, m.feed.completed)

	return func() tea.Msg {
		var b strings.Builder

		b.WriteString("hollow report\n")
		b.WriteString("=============\n")
		fmt.Fprintf(&b, "source:      %s\n", srcRoot)
		fmt.Fprintf(&b, "destination: %s\n", dstRoot)
		fmt.Fprintf(&b, "completed:   %s\n", time.Now().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "duration:    %s\n", ui.FormatDuration(snap.Elapsed))
		fmt.Fprintf(&b, "files:       %s\n", ui.FormatCount(snap.FilesProcessed))
		fmt.Fprintf(&b, "full copies: %s (%s)\n", ui.FormatCount(snap.FilesFull), ui.FormatBytes(snap.BytesCopied))
		fmt.Fprintf(&b, "hollowed:    %s\n", ui.FormatCount(snap.FilesHollowed))
		fmt.Fprintf(&b, "skipped:     %s\n", ui.FormatCount(snap.FilesExcluded))
		fmt.Fprintf(&b, "errors:      %d\n", snap.FilesFailed+snap.DirsFailed)
		b.WriteString("\n--- files ---\n")

		for _, e := range completed {
			switch e.kind {
			case entryFailed:
				fmt.Fprintf(&b, "x  %-50s  %s\n", e.path, e.errMsg)
			case entrySkipped:
				fmt.Fprintf(&b, "-  %-50s  skipped\n", e.path)
			case entryHollow:
				fmt.Fprintf(&b, "o  %-50s  hollow\n", e.path)
			default:
				fmt.Fprintf(&b, "v  %-50s  %s\n", e.path, ui.FormatBytes(e.size))
			}
		}

		err := os.WriteFile(path, []byte(b.String()), 0o644) //nolint:gosec // user-chosen path for report output
		return saveResultMsg{err: err}
	}
}

func (m Model) handleEngineEvent(ev event.Event) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case event.ScanProgress, event.ScanComplete:
		m.scanned = ev.Processed
	case event.CopyStarted:
		m.copying = true
	}

	m.feed.handleEvent(ev)

	return m, readNextEvent(m.events)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteByte('\n')

	// header (1) + footer (1) + save/status (1)
	contentHeight := max(m.height-3, 3)

	switch m.mode {
	case viewFeed:
		b.WriteString(m.feed.view(m.width, contentHeight))
	case viewRate:
		b.WriteString(m.rate.view(m.width, m.lastSnap, m.stats))
	}

	switch {
	case m.save.active:
		b.WriteString(m.save.render())
		b.WriteByte('\n')
	case m.statusMsg != "":
		b.WriteString(styleStatus.Render("  " + m.statusMsg))
		b.WriteByte('\n')
	default:
		b.WriteByte('\n')
	}

	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	snap := m.lastSnap
	label := styleHeaderLabel.Render("hollow")

	if m.done {
		if !m.copying {
			return styleHeader.Render(fmt.Sprintf("  %s  %s  scanned %s files",
				label, styleIconDone.Render("done"), ui.FormatCount(m.scanned)))
		}
		return styleHeader.Render(fmt.Sprintf("  %s  %s  %s / %s files  %s copied  %s",
			label,
			styleIconDone.Render("done"),
			ui.FormatCount(snap.FilesProcessed),
			ui.FormatCount(snap.FilesTotal),
			ui.FormatBytes(snap.BytesCopied),
			ui.FormatDuration(snap.Elapsed),
		))
	}

	if !m.copying {
		return styleHeader.Render(fmt.Sprintf("  %s  scanning  %s files", label, ui.FormatCount(m.scanned)))
	}

	var pct float64
	if snap.FilesTotal > 0 {
		pct = min(float64(snap.FilesProcessed)/float64(snap.FilesTotal), 1)
	}

	return styleHeader.Render(fmt.Sprintf("  %s  %3.0f%%  %s  %s / %s files  %s  eta %s",
		label,
		pct*100,
		styleProgressFilled.Render(ui.ProgressBar(pct, 10)),
		ui.FormatCount(snap.FilesProcessed),
		ui.FormatCount(snap.FilesTotal),
		ui.FormatFileRate(m.lastFPS),
		ui.FormatETA(m.lastETA),
	))
}

func (m Model) renderFooter() string {
	type keybind struct {
		key   string
		label string
	}

	var binds []keybind
	if m.done {
		if m.copying {
			binds = append(binds, keybind{"s", "save"})
		}
		binds = append(binds,
			keybind{"j/k", "scroll"},
			keybind{"r", "rate"},
			keybind{"f", "feed"},
			keybind{"q", "quit"},
		)
	} else {
		binds = []keybind{
			{"q", "cancel"},
			{"r", "rate"},
			{"f", "feed"},
			{"j/k", "scroll"},
		}
	}

	parts := make([]string, 0, len(binds))
	for _, kb := range binds {
		parts = append(parts,
			styleKeybindKey.Render(kb.key)+" "+styleKeybindLabel.Render(kb.label))
	}

	return "  " + strings.Join(parts, "   ")
}
