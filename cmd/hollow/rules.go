package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bamsammich/hollow/internal/config"
	"github.com/bamsammich/hollow/internal/rules"
)

var errEmptyPattern = errors.New("empty pattern")

func newRulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage the saved full-copy and exclude rules",
	}
	cmd.AddCommand(
		newRulesListCmd(a),
		newRulesAddCmd(a),
		newRulesRemoveCmd(a),
		newRulesResetCmd(a),
	)
	return cmd
}

func newRulesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the saved rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := config.LoadOrDefault(a.settingsPath(), a.logger)
			printRules(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newRulesAddCmd(a *app) *cobra.Command {
	var full, exclude bool

	cmd := &cobra.Command{
		Use:   "add (--full | --exclude) <pattern>",
		Short: "Add a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := strings.TrimSpace(args[0])
			if pattern == "" {
				return errEmptyPattern
			}
			set := rules.ExcludeSetName
			if full {
				set = rules.FullCopySetName
			}
			if _, err := rules.Compile(set, []string{pattern}); err != nil {
				return err
			}

			return a.updateSettings(func(s *config.Settings) (bool, string) {
				list := &s.ExcludeRules
				if full {
					list = &s.FullCopyRules
				}
				if slices.Contains(*list, pattern) {
					return false, fmt.Sprintf("%s rule %q already present", set, pattern)
				}
				*list = append(*list, pattern)
				return true, fmt.Sprintf("added %s rule %q", set, pattern)
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "add to the full-copy rules")
	cmd.Flags().BoolVar(&exclude, "exclude", false, "add to the exclude rules")
	cmd.MarkFlagsMutuallyExclusive("full", "exclude")
	cmd.MarkFlagsOneRequired("full", "exclude")
	return cmd
}

func newRulesRemoveCmd(a *app) *cobra.Command {
	var full, exclude bool

	cmd := &cobra.Command{
		Use:   "remove <pattern>",
		Short: "Remove a rule from either list",
		Long:  "Remove a rule. Without --full or --exclude the pattern is removed from both lists.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := strings.TrimSpace(args[0])
			both := !full && !exclude

			return a.updateSettings(func(s *config.Settings) (bool, string) {
				var removed []string
				if full || both {
					if drop(&s.FullCopyRules, pattern) {
						removed = append(removed, rules.FullCopySetName)
					}
				}
				if exclude || both {
					if drop(&s.ExcludeRules, pattern) {
						removed = append(removed, rules.ExcludeSetName)
					}
				}
				if len(removed) == 0 {
					return false, fmt.Sprintf("no rule %q", pattern)
				}
				return true, fmt.Sprintf("removed %q from %s", pattern, strings.Join(removed, " and "))
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "remove from the full-copy rules only")
	cmd.Flags().BoolVar(&exclude, "exclude", false, "remove from the exclude rules only")
	cmd.MarkFlagsMutuallyExclusive("full", "exclude")
	return cmd
}

func newRulesResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.updateSettings(func(s *config.Settings) (bool, string) {
				s.FullCopyRules = config.DefaultFullCopyRules()
				s.ExcludeRules = config.DefaultExcludeRules()
				return true, "rules reset to defaults"
			}, cmd.OutOrStdout())
		},
	}
}

// updateSettings loads the settings file, applies edit and saves when edit
// reports a change. A settings file that cannot be read is not overwritten.
func (a *app) updateSettings(edit func(*config.Settings) (bool, string), w io.Writer) error {
	path := a.settingsPath()
	s, err := config.Load(path)
	if err != nil {
		return err
	}
	changed, msg := edit(&s)
	fmt.Fprintln(w, msg)
	if !changed {
		return nil
	}
	return config.Save(path, s)
}

// drop removes every occurrence of pattern from list and reports whether
// any was found.
func drop(list *[]string, pattern string) bool {
	n := len(*list)
	*list = slices.DeleteFunc(*list, func(p string) bool { return p == pattern })
	return len(*list) != n
}

func printRules(w io.Writer, s config.Settings) {
	fmt.Fprintf(w, "%s:\n", rules.FullCopySetName)
	for _, p := range s.FullCopyRules {
		fmt.Fprintf(w, "  %s\n", p)
	}
	fmt.Fprintf(w, "%s:\n", rules.ExcludeSetName)
	for _, p := range s.ExcludeRules {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
