//go:build !linux && !darwin

package platform

import (
	"os"
	"time"
)

// AccessTime falls back to the modification time on other platforms.
func AccessTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
