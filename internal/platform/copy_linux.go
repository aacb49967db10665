//go:build linux

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// kernelStep moves up to n bytes from src to dst starting at *off and
// advances it.
type kernelStep func(src, dst int, off *int64, n int) (int, error)

var kernelStrategies = []struct {
	method CopyMethod
	step   kernelStep
}{
	{CopyFileRange, func(src, dst int, off *int64, n int) (int, error) {
		woff := *off
		return unix.CopyFileRange(src, off, dst, &woff, n, 0)
	}},
	{Sendfile, func(src, dst int, off *int64, n int) (int, error) {
		return unix.Sendfile(dst, src, off, n)
	}},
}

// CopyFile copies in the kernel when it can. A strategy the filesystem
// rejects before any byte moved falls through to the next one, ending with
// plain reads and writes.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	preallocate(params.DstFd, params.SrcSize)

	for _, s := range kernelStrategies {
		result, err := kernelCopy(params, s.method, s.step)
		if err == nil || !isFallbackErr(err) || result.BytesWritten > 0 {
			return result, err
		}
	}
	return copyReadWrite(params)
}

//nolint:gosec // G115: fd values are small non-negative integers
func kernelCopy(params CopyFileParams, method CopyMethod, step kernelStep) (CopyResult, error) {
	srcFd, err := os.Open(params.SrcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer srcFd.Close()

	result := CopyResult{Method: method}
	var off int64
	for off < params.SrcSize {
		// Sendfile writes at the destination's file offset, which is 0 for a
		// freshly opened file and advances with each call.
		n, err := step(int(srcFd.Fd()), int(params.DstFd.Fd()), &off, int(params.SrcSize-off))
		if err != nil {
			return result, err
		}
		if n == 0 {
			break // source shrank
		}
		result.BytesWritten += int64(n)
	}
	return result, nil
}

// isFallbackErr reports whether err means the strategy is unsupported here.
func isFallbackErr(err error) bool {
	for _, e := range []error{unix.ENOSYS, unix.EXDEV, unix.EINVAL, unix.ENOTSUP, unix.EOPNOTSUPP} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
