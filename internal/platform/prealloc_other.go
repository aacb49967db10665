//go:build !linux

package platform

import "os"

// preallocate does nothing outside Linux.
func preallocate(*os.File, int64) {}
