package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Save writes settings to path, or to Path() when path is empty. The parent
// directory is created if needed, and the file is replaced atomically.
func Save(path string, s Settings) error {
	if path == "" {
		path = Path()
	}
	if path == "" {
		return &Error{Op: "save", Path: path, Err: fmt.Errorf("no settings path")}
	}

	c, err := codecFor(path)
	if err != nil {
		return &Error{Op: "save", Path: path, Err: err}
	}

	data, err := c.encode(s)
	if err != nil {
		return &Error{Op: "save", Path: path, Err: fmt.Errorf("encode: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Op: "save", Path: path, Err: fmt.Errorf("create config dir: %w", err)}
	}

	tmp := filepath.Join(filepath.Dir(path), ".hollow-settings-"+uuid.New().String()[:8]+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil { //nolint:gosec // G306: settings are not secret
		return &Error{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return &Error{Op: "save", Path: path, Err: err}
	}
	return nil
}
