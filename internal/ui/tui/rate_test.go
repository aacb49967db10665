package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/hollow/internal/stats"
)

func TestRateView_ViewRendersNonEmpty(t *testing.T) {
	r := newRateView()

	c := stats.NewCollector()
	c.SetTotals(100, 0)
	c.AddFilesProcessed(10)
	c.AddFilesHollowed(8)
	c.AddFilesFull(2)
	c.AddBytesCopied(4096)
	c.Tick()

	out := r.view(80, c.Snapshot(), c)

	assert.Contains(t, out, "files/s")
	assert.Contains(t, out, "10 / 100 files")
	assert.Contains(t, out, "breakdown")
	assert.Contains(t, out, "hollow")
	assert.Contains(t, out, "skipped")
}

func TestRateView_Breakdown(t *testing.T) {
	r := newRateView()
	snap := stats.Snapshot{FilesProcessed: 4, FilesFull: 4}

	out := r.renderBreakdown(snap, 10)
	assert.Contains(t, out, "▪▪▪▪▪▪▪▪▪▪")
	assert.Contains(t, out, "□□□□□□□□□□")
}

func TestRateView_BreakdownEmpty(t *testing.T) {
	r := newRateView()
	out := r.renderBreakdown(stats.Snapshot{}, 4)
	assert.NotContains(t, out, "▪")
}
