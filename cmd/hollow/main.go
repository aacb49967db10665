package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/hollow/internal/engine"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	engine.CleanupTmpFiles()
	os.Exit(code)
}

// run executes the CLI and maps the outcome to an exit code:
// 0 success, 1 partial failure, 2 fatal failure.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.closeLog()
	if err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	var showVersion bool

	rootCmd := &cobra.Command{
		Use:   "hollow",
		Short: "Mirror a directory tree with placeholder files",
		Long: `hollow mirrors a source tree into a destination. Files whose names match a
full-copy rule are copied byte for byte, files matching an exclude rule are
skipped, and every other file becomes an empty placeholder with the same name.
Every directory is recreated.

Rules are case-insensitive regular expressions matched against file names.
They are read from the settings file and can be managed with "hollow rules".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "hollow %s\n", version)
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "settings file (default: $XDG_CONFIG_HOME/hollow/settings.toml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "suppress all output except errors")
	pf.StringVar(&a.logFile, "log", "", "write structured JSON log to FILE")
	pf.BoolVar(&a.noProgress, "no-progress", false, "disable progress display")
	pf.BoolVar(&a.tuiFlag, "tui", false, "full-screen TUI (Bubble Tea)")

	rootCmd.AddCommand(newScanCmd(a))
	rootCmd.AddCommand(newCopyCmd(a))
	rootCmd.AddCommand(newRulesCmd(a))
	rootCmd.AddCommand(newDocsCmd())

	return rootCmd
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
