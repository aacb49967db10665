//go:build linux

package platform

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// SetTimes sets access and modification time on an open file.
//
//nolint:gosec // G115: fd values are small non-negative integers
func SetTimes(fd *os.File, accTime, modTime time.Time) error {
	times := []unix.Timespec{
		unix.NsecToTimespec(accTime.UnixNano()),
		unix.NsecToTimespec(modTime.UnixNano()),
	}
	if err := unix.UtimesNanoAt(int(fd.Fd()), "", times, unix.AT_EMPTY_PATH); err != nil {
		// Fallback: some systems don't support AT_EMPTY_PATH.
		if err2 := unix.UtimesNanoAt(unix.AT_FDCWD, fd.Name(), times, 0); err2 != nil {
			return fmt.Errorf("utimensat: %w", err)
		}
	}
	return nil
}
