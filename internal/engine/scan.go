package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/bamsammich/hollow/internal/event"
	"github.com/bamsammich/hollow/internal/rules"
)

// Scan walks cfg.Src and tallies how each file would be classified. Nothing
// is written. A canceled scan returns the partial tally with ctx.Err().
func Scan(ctx context.Context, cfg ScanConfig) (ScanStats, error) {
	rs, err := rules.New(cfg.FullCopyRules, cfg.ExcludeRules)
	if err != nil {
		return ScanStats{}, err
	}
	root, err := resolveSourceRoot(cfg.Src)
	if err != nil {
		return ScanStats{}, err
	}

	log := loggerOrDefault(cfg.Logger)
	em := emitter{ctx: ctx, ch: cfg.Events}
	progress := &rate.Sometimes{Every: cadence(cfg.ProgressEvery, DefaultScanProgressEvery)}

	var st ScanStats
	em.emit(event.Event{Type: event.ScanStarted})
	log.Debug("scan started", "src", cfg.Src)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return fmt.Errorf("%w: %w", ErrSourceRoot, err)
			}
			log.Warn("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !walkable(path, d) {
			return nil
		}

		st.Files++
		switch rs.Classify(d.Name()) {
		case rules.Excluded:
			st.Excluded++
		case rules.FullCopy:
			st.Full++
			if info, err := os.Stat(path); err == nil {
				st.FullBytes += info.Size()
			} else {
				log.Debug("stat failed, counting size 0", "path", path, "error", err)
			}
		default:
			st.Hollow++
		}

		progress.Do(func() {
			em.emit(event.Event{Type: event.ScanProgress, Processed: int64(st.Files)})
		})
		return nil
	})

	if walkErr != nil {
		return st, walkErr
	}

	em.emit(event.Event{
		Type:      event.ScanComplete,
		Processed: int64(st.Files),
		Total:     int64(st.Files),
		TotalSize: st.FullBytes,
	})
	log.Debug("scan complete", "stats", st.String())
	return st, nil
}

// walkable reports whether a non-directory entry counts as a file: a regular
// file, or a symlink to one. A dangling link still counts. Links to
// directories are neither followed nor counted. Sockets, devices and pipes
// are ignored.
func walkable(path string, d fs.DirEntry) bool {
	t := d.Type()
	if t.IsRegular() {
		return true
	}
	if t&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err != nil || info.Mode().IsRegular()
}
