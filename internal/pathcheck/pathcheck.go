// Package pathcheck validates a source/destination pair before a copy
// touches the filesystem.
package pathcheck

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyPath      = errors.New("source and destination are required")
	ErrSamePath       = errors.New("source and destination cannot be the same")
	ErrNestedDest     = errors.New("destination cannot be inside the source folder")
	ErrSourceNotFound = errors.New("source folder does not exist")
	ErrSourceNotDir   = errors.New("source is not a directory")
)

// Validate rejects a pair that would make the copy read its own output or
// has nothing to read.
func Validate(src, dst string) error {
	if strings.TrimSpace(src) == "" || strings.TrimSpace(dst) == "" {
		return ErrEmptyPath
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("resolve source %s: %w", src, err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("resolve destination %s: %w", dst, err)
	}

	// Compare through symlinks when the paths exist; a missing destination
	// is resolved through its nearest existing parent.
	absSrc = resolve(absSrc)
	absDst = resolve(absDst)

	if absSrc == absDst {
		return ErrSamePath
	}
	if isWithin(absDst, absSrc) {
		return fmt.Errorf("%w: %s is under %s", ErrNestedDest, dst, src)
	}

	info, err := os.Stat(absSrc)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}
		return fmt.Errorf("stat source %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotDir, src)
	}
	return nil
}

// NonEmpty reports whether dir exists and holds at least one entry.
// A missing directory is empty.
func NonEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func resolve(p string) string {
	var rest []string
	cur := p
	for {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p
		}
		rest = append([]string{filepath.Base(cur)}, rest...)
		cur = parent
	}
}

// isWithin reports whether p is strictly below root.
func isWithin(p, root string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
