//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// preallocMin is the smallest copy worth reserving extents for. Sidecar
// files such as JSON metadata stay below it.
const preallocMin = 1 << 20

// preallocate reserves size bytes for a full copy. Failure is ignored since
// not every filesystem supports fallocate.
//
//nolint:gosec // G115: fd values are small non-negative integers
func preallocate(fd *os.File, size int64) {
	if size < preallocMin {
		return
	}
	//nolint:errcheck // advisory
	unix.Fallocate(int(fd.Fd()), 0, 0, size)
}
