package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bamsammich/hollow/internal/engine"
	"github.com/bamsammich/hollow/internal/event"
	"github.com/bamsammich/hollow/internal/stats"
	"github.com/bamsammich/hollow/internal/ui"
)

func newScanCmd(a *app) *cobra.Command {
	opts := newRuleOptions()

	cmd := &cobra.Command{
		Use:   "scan <source>",
		Short: "Count what a copy would do without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.resolveRules(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			src := args[0]
			collector := stats.NewCollector()
			d := a.newDisplay(cmd.OutOrStdout(), cmd.ErrOrStderr(), collector, settings.Theme, src, "", cancel)

			var (
				st      engine.ScanStats
				scanErr error
			)
			a.drive(d, cancel, func(events chan<- event.Event) {
				st, scanErr = a.scan(ctx, engine.ScanConfig{
					Src:           src,
					FullCopyRules: settings.FullCopyRules,
					ExcludeRules:  settings.ExcludeRules,
					Logger:        a.logger,
				}, events)
			})

			if scanErr != nil {
				if errors.Is(scanErr, context.Canceled) {
					fmt.Fprintln(cmd.ErrOrStderr(), "scan canceled")
					return &exitError{code: 1}
				}
				return scanErr
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.ScanReport(st))
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

// scan runs a Scan in the background and relays its events.
func (a *app) scan(ctx context.Context, cfg engine.ScanConfig, events chan<- event.Event) (engine.ScanStats, error) {
	var runner engine.Runner
	walkEvents := make(chan event.Event, 64)
	cfg.Events = walkEvents

	results, err := runner.Scan(ctx, cfg)
	if err != nil {
		return engine.ScanStats{}, err
	}
	forward(ctx, walkEvents, events)
	res := <-results
	return res.Scan, res.Err
}
