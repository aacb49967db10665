package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bamsammich/hollow/internal/platform"
)

// copyFull copies src (following symlinks) to dst through a temporary file
// in the destination directory, then renames it into place. Permission bits
// and access/modification times are carried over.
func copyFull(src, dst string) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s is not a regular file", src)
	}

	dir := filepath.Dir(dst)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.hollow-tmp", filepath.Base(dst), uuid.New().String()[:8]))

	tmpFiles.add(tmpPath)
	defer func() {
		tmpFiles.remove(tmpPath)
		_ = os.Remove(tmpPath) // no-op if rename succeeded
	}()

	perm := info.Mode().Perm()
	tmpFd, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return 0, fmt.Errorf("create tmp %s: %w", tmpPath, err)
	}

	var written int64
	if info.Size() > 0 {
		result, err := platform.CopyFile(platform.CopyFileParams{
			DstFd:   tmpFd,
			SrcPath: src,
			SrcSize: info.Size(),
		})
		if err != nil {
			tmpFd.Close()
			return 0, fmt.Errorf("copy data %s: %w", src, err)
		}
		written = result.BytesWritten
	}

	// The create mode is filtered by umask.
	if err := tmpFd.Chmod(perm); err != nil {
		tmpFd.Close()
		return 0, fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := platform.SetTimes(tmpFd, platform.AccessTime(info), info.ModTime()); err != nil {
		tmpFd.Close()
		return 0, fmt.Errorf("set times %s: %w", tmpPath, err)
	}
	if err := tmpFd.Close(); err != nil {
		return 0, fmt.Errorf("close tmp %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return 0, fmt.Errorf("rename %s -> %s: %w", tmpPath, dst, err)
	}
	return written, nil
}

// writeHollow creates dst as an empty file, truncating any existing content.
// A symlink at dst is removed first so its target is left alone.
func writeHollow(dst string) error {
	if info, err := os.Lstat(dst); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf("replace link %s: %w", dst, err)
		}
	}
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	return f.Close()
}
