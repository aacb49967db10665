package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Collector tracks walk statistics using lock-free atomic counters.
// The engine is the only writer; presenters read snapshots.
type Collector struct {
	filesProcessed atomic.Int64
	filesFull      atomic.Int64
	filesHollowed  atomic.Int64
	filesExcluded  atomic.Int64
	filesFailed    atomic.Int64
	bytesFull      atomic.Int64
	bytesCopied    atomic.Int64
	dirsCreated    atomic.Int64
	dirsFailed     atomic.Int64
	filesTotal     atomic.Int64
	startTime      time.Time

	// Ring buffer, written only by the presenter's Tick().
	mu          sync.Mutex
	throughput  [ringSize]int64 // bytes delta per second
	filesPerSec [ringSize]int64 // files delta per second
	ringIdx     int
	ringCount   int // samples written, capped at ringSize
	lastBytes   int64
	lastFiles   int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetTotals records the expected file count and full-copy bytes from a
// previous scan.
func (c *Collector) SetTotals(files, fullBytes int64) {
	c.filesTotal.Store(files)
	c.bytesFull.Store(fullBytes)
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesProcessed int64
	FilesFull      int64
	FilesHollowed  int64
	FilesExcluded  int64
	FilesFailed    int64
	BytesFull      int64 // expected full-copy bytes
	BytesCopied    int64
	DirsCreated    int64
	DirsFailed     int64
	FilesTotal     int64
	Elapsed        time.Duration
}

func (c *Collector) AddFilesProcessed(n int64) { c.filesProcessed.Add(n) }
func (c *Collector) AddFilesFull(n int64)      { c.filesFull.Add(n) }
func (c *Collector) AddFilesHollowed(n int64)  { c.filesHollowed.Add(n) }
func (c *Collector) AddFilesExcluded(n int64)  { c.filesExcluded.Add(n) }
func (c *Collector) AddFilesFailed(n int64)    { c.filesFailed.Add(n) }
func (c *Collector) AddBytesCopied(n int64)    { c.bytesCopied.Add(n) }
func (c *Collector) AddDirsCreated(n int64)    { c.dirsCreated.Add(n) }
func (c *Collector) AddDirsFailed(n int64)     { c.dirsFailed.Add(n) }

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesProcessed: c.filesProcessed.Load(),
		FilesFull:      c.filesFull.Load(),
		FilesHollowed:  c.filesHollowed.Load(),
		FilesExcluded:  c.filesExcluded.Load(),
		FilesFailed:    c.filesFailed.Load(),
		BytesFull:      c.bytesFull.Load(),
		BytesCopied:    c.bytesCopied.Load(),
		DirsCreated:    c.dirsCreated.Load(),
		DirsFailed:     c.dirsFailed.Load(),
		FilesTotal:     c.filesTotal.Load(),
		Elapsed:        c.Elapsed(),
	}
}

// Tick snapshots byte/file deltas into the ring buffer. Called 1/sec by the presenter.
func (c *Collector) Tick() {
	currentBytes := c.bytesCopied.Load()
	currentFiles := c.filesProcessed.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.throughput[c.ringIdx] = currentBytes - c.lastBytes
	c.filesPerSec[c.ringIdx] = currentFiles - c.lastFiles
	c.lastBytes = currentBytes
	c.lastFiles = currentFiles

	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n seconds of samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollingAvg(c.throughput[:], seconds)
}

// RollingFilesPerSec returns average files/sec over the last n seconds.
func (c *Collector) RollingFilesPerSec(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollingAvg(c.filesPerSec[:], seconds)
}

func (c *Collector) rollingAvg(buf []int64, n int) float64 {
	count := min(n, c.ringCount)
	if count <= 0 {
		return 0
	}
	var sum int64
	for i := range count {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += buf[idx]
	}
	return float64(sum) / float64(count)
}

// SparklineData returns the last n files/sec samples, oldest first.
func (c *Collector) SparklineData(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(n, c.ringCount)
	if count <= 0 {
		return nil
	}

	data := make([]float64, count)
	for i := range count {
		idx := (c.ringIdx - count + i + ringSize) % ringSize
		data[i] = float64(c.filesPerSec[idx])
	}
	return data
}

// ETA estimates remaining time from the rolling file rate and the expected total.
func (c *Collector) ETA() time.Duration {
	fps := c.RollingFilesPerSec(10)
	if fps <= 0 {
		return 0
	}
	remaining := c.filesTotal.Load() - c.filesProcessed.Load()
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/fps) * time.Second
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"files=%d full=%d hollow=%d excluded=%d failed=%d bytes=%d dirs=%d",
		s.FilesProcessed, s.FilesFull, s.FilesHollowed, s.FilesExcluded,
		s.FilesFailed, s.BytesCopied, s.DirsCreated,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
