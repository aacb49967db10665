package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

// ErrUnsupportedFormat is returned for a settings path whose extension has
// no codec.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// Settings is the persisted rule configuration.
type Settings struct {
	FullCopyRules []string    `toml:"full_copy_rules" json:"full_copy_rules" yaml:"full_copy_rules"`
	ExcludeRules  []string    `toml:"exclude_rules" json:"exclude_rules" yaml:"exclude_rules"`
	Theme         ThemeConfig `toml:"theme,omitempty" json:"theme,omitzero" yaml:"theme,omitempty"`
}

// ThemeConfig holds optional color overrides for the terminal UI.
type ThemeConfig struct {
	Accent  *string `toml:"accent,omitempty" json:"accent,omitempty" yaml:"accent,omitempty" hcl:"accent,optional"`
	Text    *string `toml:"text,omitempty" json:"text,omitempty" yaml:"text,omitempty" hcl:"text,optional"`
	Muted   *string `toml:"muted,omitempty" json:"muted,omitempty" yaml:"muted,omitempty" hcl:"muted,optional"`
	Dim     *string `toml:"dim,omitempty" json:"dim,omitempty" yaml:"dim,omitempty" hcl:"dim,optional"`
	Success *string `toml:"success,omitempty" json:"success,omitempty" yaml:"success,omitempty" hcl:"success,optional"`
	Warning *string `toml:"warning,omitempty" json:"warning,omitempty" yaml:"warning,omitempty" hcl:"warning,optional"`
	Error   *string `toml:"error,omitempty" json:"error,omitempty" yaml:"error,omitempty" hcl:"error,optional"`
}

// IsZero reports whether no color is overridden.
func (t ThemeConfig) IsZero() bool {
	return t == ThemeConfig{}
}

// fields returns the theme colors keyed by their settings name, in file order.
func (t *ThemeConfig) fields() []themeField {
	return []themeField{
		{"accent", &t.Accent},
		{"text", &t.Text},
		{"muted", &t.Muted},
		{"dim", &t.Dim},
		{"success", &t.Success},
		{"warning", &t.Warning},
		{"error", &t.Error},
	}
}

type themeField struct {
	name string
	val  **string
}

// DefaultFullCopyRules returns a fresh copy of the built-in full-copy patterns.
func DefaultFullCopyRules() []string {
	return []string{`.*\.json$`, `.*\.ocio$`, `^metadata$`}
}

// DefaultExcludeRules returns a fresh copy of the built-in exclude patterns.
func DefaultExcludeRules() []string {
	return []string{`.*\.tmp$`, `.*\.bak$`}
}

// Default returns settings holding the built-in rule lists.
func Default() Settings {
	return Settings{
		FullCopyRules: DefaultFullCopyRules(),
		ExcludeRules:  DefaultExcludeRules(),
	}
}

// withDefaults substitutes the built-in list for any empty rule list.
func (s Settings) withDefaults() Settings {
	if len(s.FullCopyRules) == 0 {
		s.FullCopyRules = DefaultFullCopyRules()
	}
	if len(s.ExcludeRules) == 0 {
		s.ExcludeRules = DefaultExcludeRules()
	}
	return s
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	s.FullCopyRules = slices.Clone(s.FullCopyRules)
	s.ExcludeRules = slices.Clone(s.ExcludeRules)
	return s
}

// Error describes a failed settings load or save.
type Error struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s settings %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Path returns the resolved path to the settings file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "hollow", "settings.toml")
}

// Load reads settings from path, or from Path() when path is empty. A
// missing file yields Default() with no error. Empty rule lists are
// replaced by the built-in defaults.
func Load(path string) (Settings, error) {
	if path == "" {
		path = Path()
	}
	if path == "" {
		return Default(), nil
	}

	c, err := codecFor(path)
	if err != nil {
		return Default(), &Error{Op: "load", Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), &Error{Op: "load", Path: path, Err: err}
	}

	var s Settings
	if err := c.decode(data, path, &s); err != nil {
		return Default(), &Error{Op: "load", Path: path, Err: err}
	}
	return s.withDefaults(), nil
}

// LoadOrDefault is Load with every failure logged at Warn and replaced by
// the defaults.
func LoadOrDefault(path string, logger *slog.Logger) Settings {
	if logger == nil {
		logger = slog.Default()
	}
	s, err := Load(path)
	if err != nil {
		logger.Warn("using default settings", "error", err)
		return Default()
	}
	return s
}
