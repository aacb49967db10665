package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamsammich/hollow/internal/config"
	"github.com/bamsammich/hollow/internal/event"
	"github.com/bamsammich/hollow/internal/stats"
	"github.com/bamsammich/hollow/internal/ui"
)

// Config configures the TUI presenter.
type Config struct {
	Stats   *stats.Collector
	SrcRoot string
	DstRoot string
	Theme   config.ThemeConfig
	// Cancel stops the running walk when the user quits early.
	Cancel func()
}

// Presenter wraps a Bubble Tea program and implements ui.Presenter.
type Presenter struct {
	cfg   Config
	model Model
}

// NewPresenter creates a new TUI presenter.
func NewPresenter(cfg Config) *Presenter {
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}
	ApplyTheme(cfg.Theme)
	return &Presenter{cfg: cfg}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func (p *Presenter) Run(events <-chan event.Event) error {
	p.model = NewModel(events, p.cfg.Stats, p.cfg.SrcRoot, p.cfg.DstRoot, p.cfg.Cancel)
	prog := tea.NewProgram(
		p.model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)
	finalModel, err := prog.Run()
	if err != nil {
		return err
	}
	p.model = finalModel.(Model) //nolint:forcetypeassert // program returns the model it was given
	return nil
}

// Summary returns the final completion summary line, or "" if no copy ran.
func (p *Presenter) Summary() string {
	if !p.model.copying {
		return ""
	}
	return ui.CompletionSummary(p.cfg.Stats.Snapshot())
}

var _ ui.Presenter = (*Presenter)(nil)
