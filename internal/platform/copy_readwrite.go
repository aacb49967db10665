package platform

import (
	"errors"
	"io"
	"os"
	"sync"
)

const bufferSize = 1 << 20 // 1 MiB

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, bufferSize)
		return &b
	},
}

// copyReadWrite copies data using positioned reads and writes with a pooled buffer.
func copyReadWrite(params CopyFileParams) (CopyResult, error) {
	srcFd, err := os.Open(params.SrcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer srcFd.Close()

	bufp := bufPool.Get().(*[]byte) //nolint:forcetypeassert // pool only holds *[]byte
	defer bufPool.Put(bufp)
	buf := *bufp

	var offset, totalWritten int64
	remaining := params.SrcSize

	for remaining > 0 {
		toRead := int(min(remaining, bufferSize))

		n, err := srcFd.ReadAt(buf[:toRead], offset)
		if n == 0 {
			if err != nil && !errors.Is(err, io.EOF) {
				return CopyResult{BytesWritten: totalWritten, Method: ReadWrite}, err
			}
			break
		}

		w, werr := params.DstFd.WriteAt(buf[:n], offset)
		if werr != nil {
			return CopyResult{BytesWritten: totalWritten + int64(w), Method: ReadWrite}, werr
		}

		offset += int64(n)
		remaining -= int64(n)
		totalWritten += int64(n)
	}

	return CopyResult{BytesWritten: totalWritten, Method: ReadWrite}, nil
}

// CopyReadWrite is the exported version for use by other packages during testing.
func CopyReadWrite(params CopyFileParams) (CopyResult, error) {
	return copyReadWrite(params)
}
