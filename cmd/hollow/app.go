package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/hollow/internal/config"
	"github.com/bamsammich/hollow/internal/rules"
	"github.com/bamsammich/hollow/internal/ui"
)

// app holds the global flags and the state derived from them.
type app struct {
	configPath string
	verbose    bool
	quiet      bool
	logFile    string
	noProgress bool
	tuiFlag    bool

	logger  *slog.Logger
	logSink *os.File
}

// setup configures logging. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	logLevel := slog.LevelWarn
	if a.verbose {
		logLevel = slog.LevelDebug
	} else if a.quiet {
		logLevel = slog.LevelError
	}
	textHandler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	var logHandler slog.Handler = textHandler
	if a.logFile != "" {
		lf, err := os.Create(a.logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logSink = lf
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	a.logger = slog.New(logHandler)
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) closeLog() {
	if a.logSink != nil {
		_ = a.logSink.Close()
		a.logSink = nil
	}
}

func (a *app) settingsPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.Path()
}

// ruleFlag is a repeatable pflag.Value that validates each pattern as it
// is given.
type ruleFlag struct {
	set      string
	patterns []string
}

func (f *ruleFlag) String() string { return "" }
func (*ruleFlag) Type() string     { return "regex" }

func (f *ruleFlag) Set(val string) error {
	if _, err := rules.Compile(f.set, []string{val}); err != nil {
		return err
	}
	f.patterns = append(f.patterns, val)
	return nil
}

// ruleOptions are the rule overrides accepted by scan and copy.
type ruleOptions struct {
	full      ruleFlag
	exclude   ruleFlag
	rulesFile string
	save      bool
}

func newRuleOptions() *ruleOptions {
	return &ruleOptions{
		full:    ruleFlag{set: rules.FullCopySetName},
		exclude: ruleFlag{set: rules.ExcludeSetName},
	}
}

func (o *ruleOptions) register(cmd *cobra.Command) {
	cmd.Flags().Var(&o.full, "full", "copy files matching PATTERN in full (repeatable, replaces saved rules)")
	cmd.Flags().Var(&o.exclude, "exclude", "skip files matching PATTERN (repeatable, replaces saved rules)")
	cmd.Flags().StringVar(&o.rulesFile, "rules-file", "", "read rules from FILE (+ full copy, - exclude)")
	cmd.Flags().BoolVar(&o.save, "save", false, "save the effective rules to the settings file before running")
}

// effective merges the overrides into settings. A set given on the command
// line or in the rules file replaces the saved list for that set.
func (o *ruleOptions) effective(s config.Settings) (config.Settings, error) {
	full := append([]string(nil), o.full.patterns...)
	exclude := append([]string(nil), o.exclude.patterns...)

	if o.rulesFile != "" {
		f, e, err := rules.LoadFile(o.rulesFile)
		if err != nil {
			return s, err
		}
		full = append(full, f...)
		exclude = append(exclude, e...)
	}

	out := s.Clone()
	if len(full) > 0 {
		out.FullCopyRules = full
	}
	if len(exclude) > 0 {
		out.ExcludeRules = exclude
	}
	return out, nil
}

// resolveRules loads settings, applies overrides and optionally persists
// the result. Save failures are reported and do not stop the run.
func (a *app) resolveRules(o *ruleOptions, errW io.Writer) (config.Settings, error) {
	path := a.settingsPath()
	s, err := o.effective(config.LoadOrDefault(path, a.logger))
	if err != nil {
		return s, err
	}
	if o.save {
		if err := config.Save(path, s); err != nil {
			fmt.Fprintf(errW, "warning: settings not saved: %v\n", err)
		} else {
			a.logger.Debug("settings saved", "path", path)
		}
	}
	return s, nil
}
