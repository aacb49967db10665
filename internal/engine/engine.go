package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bamsammich/hollow/internal/event"
	"github.com/bamsammich/hollow/internal/stats"
)

const (
	// DefaultScanProgressEvery is the scan progress cadence in files.
	DefaultScanProgressEvery = 2000
	// DefaultCopyProgressEvery is the execute progress cadence in files.
	DefaultCopyProgressEvery = 100
)

var (
	// ErrSourceRoot is wrapped by errors for an unreadable source root.
	ErrSourceRoot = errors.New("source root not accessible")
	// ErrBusy is returned by Runner when a walk is already in flight.
	ErrBusy = errors.New("a walk is already running")
)

// ScanConfig describes a dry-run tally of a source tree.
type ScanConfig struct {
	Src           string
	FullCopyRules []string
	ExcludeRules  []string
	Events        chan<- event.Event // optional
	ProgressEvery int                // files between ScanProgress events
	Logger        *slog.Logger
}

// Config describes a hollow copy of Src into Dst.
type Config struct {
	Src           string
	Dst           string
	FullCopyRules []string
	ExcludeRules  []string
	Events        chan<- event.Event // optional
	ProgressEvery int                // files between CopyProgress events
	ExpectedTotal int64              // file count from a prior Scan; 0 if unknown
	ExpectedBytes int64              // full-copy bytes from a prior Scan
	Stats         *stats.Collector   // optional
	Logger        *slog.Logger
}

// ScanStats is the result of a Scan.
type ScanStats struct {
	Files     int
	Full      int
	Hollow    int
	Excluded  int
	FullBytes int64
}

func (s ScanStats) String() string {
	return fmt.Sprintf("files=%d full=%d hollow=%d excluded=%d full_bytes=%d",
		s.Files, s.Full, s.Hollow, s.Excluded, s.FullBytes)
}

// ToCopy is the number of files Execute will write.
func (s ScanStats) ToCopy() int {
	return s.Full + s.Hollow
}

// FileError records a per-entry failure during Execute.
type FileError struct {
	Path string // relative to the source root
	Op   string // "mkdir", "walk", "copy", "hollow"
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// Summary is the outcome of Execute.
type Summary struct {
	Files       int // files visited, excluded ones included
	Copied      int
	Hollowed    int
	Excluded    int
	DirsCreated int
	BytesCopied int64
	Failures    []FileError
	Elapsed     time.Duration
	Canceled    bool
}

// Errors is the number of per-entry failures.
func (s Summary) Errors() int {
	return len(s.Failures)
}

func (s Summary) String() string {
	return fmt.Sprintf("files=%d copied=%d hollowed=%d excluded=%d dirs=%d bytes=%d errors=%d",
		s.Files, s.Copied, s.Hollowed, s.Excluded, s.DirsCreated, s.BytesCopied, s.Errors())
}

// resolveSourceRoot verifies src is a readable directory and returns it with
// symlinks resolved, since WalkDir does not descend into a linked root.
func resolveSourceRoot(src string) (string, error) {
	root, err := filepath.EvalSymlinks(src)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceRoot, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceRoot, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrSourceRoot, src)
	}
	return root, nil
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

func cadence(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

// emitter sends events on an optional channel, giving up once ctx is done.
type emitter struct {
	ctx context.Context //nolint:containedctx // scoped to a single walk
	ch  chan<- event.Event
}

func (e emitter) emit(ev event.Event) {
	if e.ch == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	select {
	case e.ch <- ev:
	case <-e.ctx.Done():
	}
}
