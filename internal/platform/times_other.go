//go:build !linux && !darwin

package platform

import (
	"os"
	"time"
)

// SetTimes sets access and modification time on a file by path.
func SetTimes(fd *os.File, accTime, modTime time.Time) error {
	return os.Chtimes(fd.Name(), accTime, modTime)
}
