package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bamsammich/hollow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultFullCopyRules(), s.FullCopyRules)
	assert.Equal(t, config.DefaultExcludeRules(), s.ExcludeRules)
	assert.True(t, s.Theme.IsZero())
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "hollow")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	content := `
full_copy_rules = ['.*\.txt$']
exclude_rules = ['^\.git$', '.*\.swp$']

[theme]
accent = "#00ff00"
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "settings.toml"), []byte(content), 0o644))

	s, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{`.*\.txt$`}, s.FullCopyRules)
	assert.Equal(t, []string{`^\.git$`, `.*\.swp$`}, s.ExcludeRules)

	require.NotNil(t, s.Theme.Accent)
	assert.Equal(t, "#00ff00", *s.Theme.Accent)
	assert.Nil(t, s.Theme.Error)
}

func TestLoad_EmptyListsUseDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("full_copy_rules = []\n"), 0o644))

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultFullCopyRules(), s.FullCopyRules)
	assert.Equal(t, config.DefaultExcludeRules(), s.ExcludeRules)
}

func TestLoad_LegacyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hollow_tree_settings.json")

	t.Run("current keys", func(t *testing.T) {
		content := `{"full_copy_rules": [".*\\.exr$"], "exclude_rules": [".*\\.log$"]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		s, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{`.*\.exr$`}, s.FullCopyRules)
		assert.Equal(t, []string{`.*\.log$`}, s.ExcludeRules)
	})

	t.Run("old full_exts key falls back", func(t *testing.T) {
		content := `{"full_exts": [".json"]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		s, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultFullCopyRules(), s.FullCopyRules)
		assert.Equal(t, config.DefaultExcludeRules(), s.ExcludeRules)
	})
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `
full_copy_rules:
  - '.*\.usd$'
exclude_rules:
  - '.*\.tmp$'
theme:
  muted: "#777777"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{`.*\.usd$`}, s.FullCopyRules)
	assert.Equal(t, []string{`.*\.tmp$`}, s.ExcludeRules)
	require.NotNil(t, s.Theme.Muted)
	assert.Equal(t, "#777777", *s.Theme.Muted)
}

func TestLoad_HCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.hcl")
	content := `
full_copy_rules = [".*\\.abc$"]
exclude_rules   = [".*\\.bak$", "^thumbs\\.db$"]

theme {
  accent = "#112233"
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{`.*\.abc$`}, s.FullCopyRules)
	assert.Equal(t, []string{`.*\.bak$`, `^thumbs\.db$`}, s.ExcludeRules)
	require.NotNil(t, s.Theme.Accent)
	assert.Equal(t, "#112233", *s.Theme.Accent)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "settings.toml", "invalid [[["},
		{"json", "settings.json", "{not json"},
		{"yaml", "settings.yaml", "full_copy_rules: {a: [}"},
		{"hcl", "settings.hcl", "full_copy_rules = [\n"},
		{"hcl unknown key", "settings.hcl", "colour = \"red\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			s, err := config.Load(path)
			require.Error(t, err)

			var cfgErr *config.Error
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "load", cfgErr.Op)
			assert.Equal(t, path, cfgErr.Path)

			assert.Equal(t, config.Default(), s)
		})
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
}

func TestLoadOrDefault_SwallowsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("invalid [[["), 0o644))

	s := config.LoadOrDefault(path, nil)
	assert.Equal(t, config.Default(), s)
}

func TestSave_RoundTrip(t *testing.T) {
	want := config.Settings{
		FullCopyRules: []string{`.*\.json$`, `^metadata$`},
		ExcludeRules:  []string{`.*\.bak$`},
		Theme: config.ThemeConfig{
			Accent: strPtr("#4a90e2"),
			Error:  strPtr("#ff0000"),
		},
	}

	for _, ext := range []string{".toml", ".json", ".yaml", ".yml", ".hcl"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "settings"+ext)
			require.NoError(t, config.Save(path, want))

			got, err := config.Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp file left behind")
		})
	}
}

func TestSave_NoTheme(t *testing.T) {
	for _, ext := range []string{".toml", ".json", ".yaml", ".hcl"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings"+ext)
			require.NoError(t, config.Save(path, config.Default()))

			got, err := config.Load(path)
			require.NoError(t, err)
			assert.Equal(t, config.Default(), got)
		})
	}
}

func TestSave_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	s := config.Default()
	s.ExcludeRules = append(s.ExcludeRules, `^\.DS_Store$`)
	require.NoError(t, config.Save("", s))

	_, err := os.Stat(filepath.Join(dir, "hollow", "settings.toml"))
	require.NoError(t, err)

	got, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, s.ExcludeRules, got.ExcludeRules)
}

func TestSave_UnsupportedFormat(t *testing.T) {
	err := config.Save(filepath.Join(t.TempDir(), "settings.ini"), config.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)

	var cfgErr *config.Error
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "save", cfgErr.Op)
}

func TestClone(t *testing.T) {
	s := config.Default()
	c := s.Clone()
	c.FullCopyRules[0] = "changed"
	assert.NotEqual(t, "changed", s.FullCopyRules[0])
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/hollow/settings.toml", config.Path())
}
