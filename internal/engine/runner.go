package engine

import (
	"context"
	"sync"

	"github.com/bamsammich/hollow/internal/event"
)

// Result is the outcome of a walk started through a Runner. Only the field
// matching the walk kind is set.
type Result struct {
	Scan    ScanStats
	Summary Summary
	Err     error
}

// Runner runs one walk at a time on a background goroutine. The walk's
// event channel is closed when it ends, and the result is delivered on a
// one-shot channel.
type Runner struct {
	mu      sync.Mutex
	running bool
}

// Busy reports whether a walk is in flight.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Scan starts Scan in the background. It returns ErrBusy if a walk is
// already running.
func (r *Runner) Scan(ctx context.Context, cfg ScanConfig) (<-chan Result, error) {
	return r.start(cfg.Events, func() Result {
		st, err := Scan(ctx, cfg)
		return Result{Scan: st, Err: err}
	})
}

// Execute starts Execute in the background. It returns ErrBusy if a walk
// is already running.
func (r *Runner) Execute(ctx context.Context, cfg Config) (<-chan Result, error) {
	return r.start(cfg.Events, func() Result {
		sum, err := Execute(ctx, cfg)
		return Result{Summary: sum, Err: err}
	})
}

func (r *Runner) start(events chan<- event.Event, run func() Result) (<-chan Result, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, ErrBusy
	}
	r.running = true
	r.mu.Unlock()

	out := make(chan Result, 1)
	go func() {
		res := run()
		if events != nil {
			close(events)
		}

		r.mu.Lock()
		r.running = false
		r.mu.Unlock()

		out <- res
		close(out)
	}()
	return out, nil
}
