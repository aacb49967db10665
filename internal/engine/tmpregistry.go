package engine

import (
	"os"
	"sync"
)

// tmpFiles holds the temporary files of full copies in flight so an
// interrupted process can remove them before exiting.
var tmpFiles tmpRegistry

type tmpRegistry struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func (r *tmpRegistry) add(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paths == nil {
		r.paths = make(map[string]struct{})
	}
	r.paths[path] = struct{}{}
}

func (r *tmpRegistry) remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.paths, path)
}

func (r *tmpRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// take empties the registry and returns what it held.
func (r *tmpRegistry) take() map[string]struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := r.paths
	r.paths = nil
	return paths
}

// PendingTmp returns the number of temporary files not yet renamed into place.
func PendingTmp() int {
	return tmpFiles.len()
}

// CleanupTmpFiles removes temporary files left by interrupted full copies.
func CleanupTmpFiles() {
	for p := range tmpFiles.take() {
		_ = os.Remove(p)
	}
}
