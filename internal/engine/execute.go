package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/bamsammich/hollow/internal/event"
	"github.com/bamsammich/hollow/internal/rules"
	"github.com/bamsammich/hollow/internal/stats"
)

// Execute mirrors cfg.Src into cfg.Dst: every directory is recreated, full
// copy files are copied with their mode and times, excluded files are
// skipped, and everything else becomes an empty file. Per-entry failures are
// collected in Summary.Failures and do not stop the walk.
func Execute(ctx context.Context, cfg Config) (Summary, error) {
	rs, err := rules.New(cfg.FullCopyRules, cfg.ExcludeRules)
	if err != nil {
		return Summary{}, err
	}
	root, err := resolveSourceRoot(cfg.Src)
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(cfg.Dst, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create destination: %w", err)
	}

	x := &executor{
		cfg:      cfg,
		root:     root,
		rules:    rs,
		log:      loggerOrDefault(cfg.Logger),
		em:       emitter{ctx: ctx, ch: cfg.Events},
		progress: &rate.Sometimes{Every: cadence(cfg.ProgressEvery, DefaultCopyProgressEvery)},
		stats:    cfg.Stats,
	}
	if x.stats == nil {
		x.stats = stats.NewCollector()
	}
	x.stats.SetTotals(cfg.ExpectedTotal, cfg.ExpectedBytes)

	start := time.Now()
	x.em.emit(event.Event{Type: event.CopyStarted, Total: cfg.ExpectedTotal})
	x.log.Info("copy started", "src", cfg.Src, "dst", cfg.Dst, "expected", cfg.ExpectedTotal)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		return x.visit(ctx, path, d, err)
	})

	x.sum.Elapsed = time.Since(start)
	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(walkErr, ctxErr) {
			x.sum.Canceled = true
			x.log.Info("copy canceled", "summary", x.sum.String())
			return x.sum, ctxErr
		}
		return x.sum, walkErr
	}

	x.em.emit(event.Event{
		Type:      event.CopyComplete,
		Processed: int64(x.sum.Files),
		Total:     cfg.ExpectedTotal,
		Size:      x.sum.BytesCopied,
	})
	x.log.Info("copy complete", "summary", x.sum.String(), "elapsed", x.sum.Elapsed)
	return x.sum, nil
}

type executor struct {
	cfg      Config
	root     string
	rules    *rules.RuleSet
	log      *slog.Logger
	em       emitter
	progress *rate.Sometimes
	stats    *stats.Collector
	sum      Summary
}

func (x *executor) visit(ctx context.Context, path string, d fs.DirEntry, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	rel, relErr := filepath.Rel(x.root, path)
	if relErr != nil {
		return relErr
	}

	if err != nil {
		if rel == "." {
			return fmt.Errorf("%w: %w", ErrSourceRoot, err)
		}
		x.fail(rel, "walk", err, d != nil && d.IsDir())
		if d != nil && d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}

	if d.IsDir() {
		if rel == "." {
			return nil
		}
		if err := x.mkdir(rel); err != nil {
			x.fail(rel, "mkdir", err, true)
			return filepath.SkipDir
		}
		return nil
	}
	if !walkable(path, d) {
		return nil
	}

	x.file(path, rel, d)
	x.progress.Do(func() {
		x.em.emit(event.Event{
			Type:      event.CopyProgress,
			Processed: int64(x.sum.Files),
			Total:     x.cfg.ExpectedTotal,
		})
	})
	return nil
}

func (x *executor) file(path, rel string, d fs.DirEntry) {
	x.sum.Files++
	x.stats.AddFilesProcessed(1)
	dst := filepath.Join(x.cfg.Dst, rel)

	switch x.rules.Classify(d.Name()) {
	case rules.Excluded:
		x.sum.Excluded++
		x.stats.AddFilesExcluded(1)
		x.em.emit(event.Event{Type: event.FileExcluded, Path: rel})

	case rules.FullCopy:
		n, err := copyFull(path, dst)
		if err != nil {
			x.fail(rel, "copy", err, false)
			return
		}
		x.sum.Copied++
		x.sum.BytesCopied += n
		x.stats.AddFilesFull(1)
		x.stats.AddBytesCopied(n)
		x.em.emit(event.Event{Type: event.FileCopied, Path: rel, Size: n})

	default:
		if err := writeHollow(dst); err != nil {
			x.fail(rel, "hollow", err, false)
			return
		}
		x.sum.Hollowed++
		x.stats.AddFilesHollowed(1)
		x.em.emit(event.Event{Type: event.FileHollowed, Path: rel})
	}
}

// mkdir creates the mirror of rel if absent. An existing directory is not
// an error. A symlink in its place is replaced so nothing is written through
// it.
func (x *executor) mkdir(rel string) error {
	dir := filepath.Join(x.cfg.Dst, rel)
	err := os.Mkdir(dir, 0o755)
	if errors.Is(err, fs.ErrExist) {
		info, statErr := os.Lstat(dir)
		switch {
		case statErr != nil:
			return statErr
		case info.IsDir():
			return nil
		case info.Mode()&fs.ModeSymlink != 0:
			if rmErr := os.Remove(dir); rmErr != nil {
				return fmt.Errorf("replace link %s: %w", dir, rmErr)
			}
			err = os.Mkdir(dir, 0o755)
		}
	}
	if err != nil {
		return err
	}
	x.sum.DirsCreated++
	x.stats.AddDirsCreated(1)
	x.em.emit(event.Event{Type: event.DirCreated, Path: rel})
	return nil
}

func (x *executor) fail(rel, op string, err error, isDir bool) {
	fe := FileError{Path: rel, Op: op, Err: err}
	x.sum.Failures = append(x.sum.Failures, fe)
	x.log.Warn("entry failed", "path", rel, "op", op, "error", err)

	typ := event.FileFailed
	if isDir {
		typ = event.DirFailed
		x.stats.AddDirsFailed(1)
	} else {
		x.stats.AddFilesFailed(1)
	}
	x.em.emit(event.Event{Type: typ, Path: rel, Error: fe})
}
