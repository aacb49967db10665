package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupTmpFiles(t *testing.T) {
	dir := t.TempDir()
	leftover := filepath.Join(dir, ".image.raw.1a2b3c4d.hollow-tmp")
	done := filepath.Join(dir, ".data.json.5e6f7a8b.hollow-tmp")
	require.NoError(t, os.WriteFile(leftover, []byte("partial"), 0o644))

	tmpFiles.add(leftover)
	tmpFiles.add(done)
	tmpFiles.remove(done)
	assert.Equal(t, 1, PendingTmp())

	CleanupTmpFiles()
	assert.Zero(t, PendingTmp())
	assert.NoFileExists(t, leftover)

	// Safe to call with nothing registered.
	CleanupTmpFiles()
}
