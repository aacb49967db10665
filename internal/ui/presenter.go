package ui

import (
	"io"

	"github.com/bamsammich/hollow/internal/stats"
)

// Presenter consumes events and displays progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan Event) error
	// Summary returns the final summary line, or "" if no copy ran.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer     io.Writer
	ErrWriter  io.Writer
	Stats      *stats.Collector
	IsTTY      bool
	Quiet      bool
	Verbose    bool
	NoProgress bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}
	if cfg.Quiet {
		return quietPresenter{}
	}
	if !cfg.IsTTY || cfg.NoProgress {
		return &plainPresenter{
			w:          cfg.Writer,
			errW:       cfg.ErrWriter,
			stats:      cfg.Stats,
			verbose:    cfg.Verbose,
			noProgress: cfg.NoProgress,
		}
	}
	return &hudPresenter{
		w:       cfg.ErrWriter, // HUD renders to stderr (the TTY)
		stats:   cfg.Stats,
		verbose: cfg.Verbose,
	}
}
