//go:build !linux

package platform

// CopyFile uses positioned reads and writes outside Linux.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	preallocate(params.DstFd, params.SrcSize)
	return copyReadWrite(params)
}
