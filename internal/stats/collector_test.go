package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feed records one second of activity: files split by verdict plus bytes.
func feed(c *Collector, full, hollow, excluded, bytes int64) {
	c.AddFilesFull(full)
	c.AddFilesHollowed(hollow)
	c.AddFilesExcluded(excluded)
	c.AddFilesProcessed(full + hollow + excluded)
	c.AddBytesCopied(bytes)
	c.Tick()
}

func TestCollector_ConcurrentWriters(t *testing.T) {
	c := NewCollector()
	const writers, perWriter = 50, 400

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				c.AddFilesProcessed(1)
				c.AddFilesHollowed(1)
				c.AddBytesCopied(8)
				c.AddDirsCreated(1)
				c.AddDirsFailed(1)
				c.AddFilesFailed(1)
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	n := int64(writers * perWriter)
	assert.Equal(t, n, s.FilesProcessed)
	assert.Equal(t, n, s.FilesHollowed)
	assert.Equal(t, n*8, s.BytesCopied)
	assert.Equal(t, n, s.DirsCreated)
	assert.Equal(t, n, s.DirsFailed)
	assert.Equal(t, n, s.FilesFailed)
	assert.Zero(t, s.FilesFull)
}

func TestCollector_VerdictsAddUp(t *testing.T) {
	c := NewCollector()
	c.SetTotals(9, 2048)
	feed(c, 1, 5, 3, 2048)

	s := c.Snapshot()
	assert.Equal(t, s.FilesProcessed, s.FilesFull+s.FilesHollowed+s.FilesExcluded)
	assert.Equal(t, s.FilesTotal, s.FilesProcessed)
	assert.Equal(t, int64(2048), s.BytesFull)
	assert.Equal(t, "files=9 full=1 hollow=5 excluded=3 failed=0 bytes=2048 dirs=0", s.String())
}

func TestFormatBytes(t *testing.T) {
	for in, want := range map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		2048:    "2.0 KiB",
		1 << 20: "1.0 MiB",
		5 << 30: "5.0 GiB",
	} {
		assert.Equal(t, want, FormatBytes(in), "input %d", in)
	}
}

func TestCollector_Rates(t *testing.T) {
	t.Run("steady", func(t *testing.T) {
		c := NewCollector()
		for range 4 {
			feed(c, 2, 18, 0, 500)
		}
		assert.InDelta(t, 20.0, c.RollingFilesPerSec(4), 0.01)
		assert.InDelta(t, 500.0, c.RollingSpeed(4), 0.01)
	})

	t.Run("window longer than history", func(t *testing.T) {
		c := NewCollector()
		feed(c, 0, 30, 0, 0)
		feed(c, 0, 10, 0, 0)
		assert.InDelta(t, 20.0, c.RollingFilesPerSec(30), 0.01)
	})

	t.Run("no samples", func(t *testing.T) {
		c := NewCollector()
		assert.Zero(t, c.RollingFilesPerSec(5))
		assert.Zero(t, c.RollingSpeed(5))
		assert.Nil(t, c.SparklineData(5))
	})
}

func TestCollector_SparklineData(t *testing.T) {
	c := NewCollector()
	for _, n := range []int64{3, 1, 4, 1, 5} {
		feed(c, 0, n, 0, 0)
	}

	assert.Equal(t, []float64{3, 1, 4, 1, 5}, c.SparklineData(10))
	assert.Equal(t, []float64{1, 5}, c.SparklineData(2))
}

func TestCollector_RingOverwritesOldest(t *testing.T) {
	c := NewCollector()
	for i := range ringSize + 3 {
		feed(c, 0, int64(i), 0, 0)
	}

	data := c.SparklineData(ringSize)
	require.Len(t, data, ringSize)
	assert.InDelta(t, 3.0, data[0], 0.01)
	assert.InDelta(t, float64(ringSize+2), data[ringSize-1], 0.01)
}

func TestCollector_ETA(t *testing.T) {
	t.Run("from file rate", func(t *testing.T) {
		c := NewCollector()
		c.SetTotals(200, 0)
		for range 5 {
			feed(c, 0, 20, 0, 0)
		}
		// 100 left at 20 files/s.
		assert.InDelta(t, 5.0, c.ETA().Seconds(), 1.0)
	})

	t.Run("no rate yet", func(t *testing.T) {
		c := NewCollector()
		c.SetTotals(200, 0)
		assert.Equal(t, time.Duration(0), c.ETA())
	})

	t.Run("past the expected total", func(t *testing.T) {
		c := NewCollector()
		c.SetTotals(3, 0)
		feed(c, 0, 4, 0, 0)
		assert.Equal(t, time.Duration(0), c.ETA())
	})
}

func TestCollector_Elapsed(t *testing.T) {
	c := NewCollector()
	require.False(t, c.startTime.IsZero())
	time.Sleep(5 * time.Millisecond)
	assert.Greater(t, c.Snapshot().Elapsed, time.Duration(0))
}
