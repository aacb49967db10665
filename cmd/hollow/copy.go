package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/hollow/internal/engine"
	"github.com/bamsammich/hollow/internal/event"
	"github.com/bamsammich/hollow/internal/pathcheck"
	"github.com/bamsammich/hollow/internal/stats"
	"github.com/bamsammich/hollow/internal/ui"
)

const failureReportLimit = 20

var errNotConfirmed = errors.New("destination is not empty; rerun with --yes to write into it")

func newCopyCmd(a *app) *cobra.Command {
	opts := newRuleOptions()
	var yes bool

	cmd := &cobra.Command{
		Use:   "copy <source> <destination>",
		Short: "Mirror source into destination with hollow placeholders",
		Long: `Scan the source to size the job, then mirror it into the destination.
Full-copy matches are copied with their mode and times, excluded files are
skipped, and all other files are created empty. Existing files at the
destination are overwritten.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			errW := cmd.ErrOrStderr()

			if err := pathcheck.Validate(src, dst); err != nil {
				return err
			}

			settings, err := a.resolveRules(opts, errW)
			if err != nil {
				return err
			}

			ok, err := confirmOverwrite(cmd.InOrStdin(), errW, dst, yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(errW, "copy aborted")
				return nil
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			collector := stats.NewCollector()
			d := a.newDisplay(cmd.OutOrStdout(), errW, collector, settings.Theme, src, dst, cancel)

			var (
				sum     engine.Summary
				copyErr error
			)
			a.drive(d, cancel, func(events chan<- event.Event) {
				sum, copyErr = a.copyTree(ctx, engine.Config{
					Src:           src,
					Dst:           dst,
					FullCopyRules: settings.FullCopyRules,
					ExcludeRules:  settings.ExcludeRules,
					Stats:         collector,
					Logger:        a.logger,
				}, events)
			})

			if !a.quiet {
				if summary := d.presenter.Summary(); summary != "" {
					fmt.Fprintln(errW, summary)
				}
			}
			if report := ui.FailureReport(sum.Failures, failureReportLimit); report != "" {
				fmt.Fprintln(errW, report)
			}

			switch {
			case sum.Canceled || errors.Is(copyErr, context.Canceled):
				fmt.Fprintln(errW, "copy canceled")
				return &exitError{code: 1}
			case copyErr != nil:
				a.logger.Error("copy failed", "error", copyErr)
				return copyErr
			case sum.Errors() > 0:
				return &exitError{code: 1} // partial failure
			}
			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "write into a non-empty destination without asking")
	return cmd
}

// copyTree scans src to size the job and then executes the copy, both on
// one Runner. Events from both walks are relayed in order.
func (a *app) copyTree(ctx context.Context, cfg engine.Config, events chan<- event.Event) (engine.Summary, error) {
	var runner engine.Runner

	scanEvents := make(chan event.Event, 64)
	results, err := runner.Scan(ctx, engine.ScanConfig{
		Src:           cfg.Src,
		FullCopyRules: cfg.FullCopyRules,
		ExcludeRules:  cfg.ExcludeRules,
		Events:        scanEvents,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return engine.Summary{}, err
	}
	forward(ctx, scanEvents, events)
	scanned := <-results
	if scanned.Err != nil {
		return engine.Summary{}, scanned.Err
	}
	a.logger.Debug("scan finished", "stats", scanned.Scan.String())

	copyEvents := make(chan event.Event, 64)
	cfg.Events = copyEvents
	cfg.ExpectedTotal = int64(scanned.Scan.Files)
	cfg.ExpectedBytes = scanned.Scan.FullBytes
	results, err = runner.Execute(ctx, cfg)
	if err != nil {
		return engine.Summary{}, err
	}
	forward(ctx, copyEvents, events)
	executed := <-results
	return executed.Summary, executed.Err
}

// confirmOverwrite asks before writing into a non-empty destination. Without
// a terminal on r only --yes allows it.
func confirmOverwrite(r io.Reader, w io.Writer, dst string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	nonEmpty, err := pathcheck.NonEmpty(dst)
	if err != nil {
		return false, err
	}
	if !nonEmpty {
		return true, nil
	}
	if _, ok := r.(*os.File); ok && !ui.IsTerminal(r) {
		return false, errNotConfirmed
	}
	return ui.Confirm(r, w, fmt.Sprintf("Destination %s is not empty and files may be overwritten. Continue?", dst))
}
