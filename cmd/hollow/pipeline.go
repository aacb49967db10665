package main

import (
	"context"
	"io"
	"sync"

	"github.com/bamsammich/hollow/internal/config"
	"github.com/bamsammich/hollow/internal/event"
	"github.com/bamsammich/hollow/internal/stats"
	"github.com/bamsammich/hollow/internal/ui"
	"github.com/bamsammich/hollow/internal/ui/tui"
)

// display is a presenter together with how it must be driven.
type display struct {
	presenter ui.Presenter
	// foreground is set for the TUI, which needs the main goroutine for input.
	foreground bool
}

func (a *app) newDisplay(w, errW io.Writer, collector *stats.Collector, theme config.ThemeConfig, src, dst string, cancel func()) display {
	isTTY := ui.IsTerminal(errW)
	if a.tuiFlag && isTTY && !a.quiet {
		return display{
			presenter: tui.NewPresenter(tui.Config{
				Stats:   collector,
				SrcRoot: src,
				DstRoot: dst,
				Theme:   theme,
				Cancel:  cancel,
			}),
			foreground: true,
		}
	}
	if a.tuiFlag && !isTTY {
		a.logger.Warn("--tui requires a terminal, falling back to inline output")
	}
	return display{
		presenter: ui.NewPresenter(ui.Config{
			Writer:     w,
			ErrWriter:  errW,
			Stats:      collector,
			IsTTY:      isTTY,
			Quiet:      a.quiet,
			Verbose:    a.verbose,
			NoProgress: a.noProgress,
		}),
	}
}

// drive runs work while the display consumes its events. The event channel
// is closed once work returns. When the TUI quits early, cancel stops the
// walk and remaining events are drained.
func (a *app) drive(d display, cancel context.CancelFunc, work func(events chan<- event.Event)) {
	events := make(chan event.Event, 256)

	presenterEvents := (<-chan event.Event)(events)
	if a.logFile != "" {
		presenterEvents = ui.TeeEvents(events, a.logger)
	}

	if d.foreground {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			work(events)
			close(events)
		}()

		if err := d.presenter.Run(presenterEvents); err != nil {
			a.logger.Warn("presenter failed", "error", err)
		}

		cancel()
		go func() {
			for range presenterEvents { //nolint:revive // drain after the TUI exits
			}
		}()
		wg.Wait()
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := d.presenter.Run(presenterEvents); err != nil {
			a.logger.Warn("presenter failed", "error", err)
		}
	}()

	work(events)
	close(events)
	wg.Wait()
}

// forward relays one walk's events to the display channel until the walk
// closes in. After cancellation events are dropped.
func forward(ctx context.Context, in <-chan event.Event, out chan<- event.Event) {
	for ev := range in {
		select {
		case out <- ev:
		case <-ctx.Done():
		}
	}
}
