// Package platform holds the OS-specific parts of a full copy: the fastest
// available data path, allocation hints and timestamp preservation.
package platform

import "os"

// CopyMethod identifies which strategy moved the bytes of a full copy.
type CopyMethod int

const (
	ReadWrite     CopyMethod = iota
	CopyFileRange            // Linux copy_file_range(2)
	Sendfile                 // Linux sendfile(2)
)

var methodNames = [...]string{
	ReadWrite:     "read_write",
	CopyFileRange: "copy_file_range",
	Sendfile:      "sendfile",
}

func (m CopyMethod) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "unknown"
	}
	return methodNames[m]
}

// CopyResult reports the outcome of a copy operation.
type CopyResult struct {
	BytesWritten int64
	Method       CopyMethod
}

// CopyFileParams describes a whole-file copy into an already opened,
// empty destination.
type CopyFileParams struct {
	DstFd   *os.File
	SrcPath string
	SrcSize int64
}
