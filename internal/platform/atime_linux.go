//go:build linux

package platform

import (
	"os"
	"syscall"
	"time"
)

// AccessTime returns the access time recorded in info, or its mtime when the
// platform stat structure is unavailable.
func AccessTime(info os.FileInfo) time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(stat.Atim.Sec, stat.Atim.Nsec)
	}
	return info.ModTime()
}
