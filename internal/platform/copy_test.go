package platform

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyInto(t *testing.T, copyFn func(CopyFileParams) (CopyResult, error), src, dst string, size int64) CopyResult {
	t.Helper()

	dstFd, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	require.NoError(t, err)
	defer dstFd.Close()

	result, err := copyFn(CopyFileParams{
		SrcPath: src,
		DstFd:   dstFd,
		SrcSize: size,
	})
	require.NoError(t, err)
	return result
}

func TestCopyFileBasic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	data := []byte("hello, hollow!")
	require.NoError(t, os.WriteFile(src, data, 0644))

	result := copyInto(t, CopyFile, src, dst, int64(len(data)))
	assert.Equal(t, int64(len(data)), result.BytesWritten)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestCopyFileLarge(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	// Larger than the 1 MiB buffer.
	size := 4*1024*1024 + 17
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, data, 0644))

	result := copyInto(t, CopyFile, src, dst, int64(size))
	assert.Equal(t, int64(size), result.BytesWritten)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestCopyFileEmpty(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "empty")
	dst := filepath.Join(dir, "empty.out")

	require.NoError(t, os.WriteFile(src, nil, 0644))

	result := copyInto(t, CopyFile, src, dst, 0)
	assert.Equal(t, int64(0), result.BytesWritten)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()

	dstFd, err := os.Create(filepath.Join(dir, "dst"))
	require.NoError(t, err)
	defer dstFd.Close()

	_, err = CopyFile(CopyFileParams{
		SrcPath: filepath.Join(dir, "nope"),
		DstFd:   dstFd,
		SrcSize: 10,
	})
	require.Error(t, err)
}

func TestCopyReadWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	size := 2*1024*1024 + 1
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, data, 0644))

	result := copyInto(t, CopyReadWrite, src, dst, int64(size))
	assert.Equal(t, int64(size), result.BytesWritten)
	assert.Equal(t, ReadWrite, result.Method)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSetTimes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	fd, err := os.OpenFile(path, os.O_WRONLY, 0)
	require.NoError(t, err)
	defer fd.Close()

	mtime := time.Date(2020, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, SetTimes(fd, mtime, mtime))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "mtime = %v", info.ModTime())
}

func TestAccessTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, AccessTime(info).IsZero())
}

func TestCopyMethodString(t *testing.T) {
	assert.Equal(t, "read_write", ReadWrite.String())
	assert.Equal(t, "copy_file_range", CopyFileRange.String())
	assert.Equal(t, "sendfile", Sendfile.String())
	assert.Equal(t, "unknown", CopyMethod(42).String())
	assert.Equal(t, "unknown", CopyMethod(-1).String())
	assert.Equal(t, "unknown", CopyMethod(99).String())
}

func TestCopyFileSourceShrank(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.json")
	dst := filepath.Join(dir, "dst.json")
	data := []byte(`{"shot":"010"}`)
	require.NoError(t, os.WriteFile(src, data, 0644))

	for name, fn := range map[string]func(CopyFileParams) (CopyResult, error){
		"best":       CopyFile,
		"read_write": CopyReadWrite,
	} {
		t.Run(name, func(t *testing.T) {
			result := copyInto(t, fn, src, dst, 512)
			assert.Equal(t, int64(len(data)), result.BytesWritten)

			got, err := os.ReadFile(dst)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}
