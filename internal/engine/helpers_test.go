package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"

	"github.com/bamsammich/hollow/internal/event"
)

var (
	testFull    = []string{`.*\.json$`}
	testExclude = []string{`.*\.bak$`}
)

func hashFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	h := blake3.Sum256(data)
	return h[:]
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// createHollowTree populates root with:
//
//	a/data.json  (2 KiB)
//	a/image.raw  (10 MiB)
//	a/temp.bak   (5 bytes)
func createHollowTree(t *testing.T, root string) {
	t.Helper()
	writeFile(t, filepath.Join(root, "a", "data.json"), bytes.Repeat([]byte("j"), 2048))
	writeFile(t, filepath.Join(root, "a", "image.raw"), bytes.Repeat([]byte("RAWPIXEL"), 10*1024*1024/8))
	writeFile(t, filepath.Join(root, "a", "temp.bak"), []byte("stale"))
}

// drain collects every event currently buffered on ch.
func drain(ch chan event.Event) []event.Event {
	var out []event.Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func ofType(evs []event.Event, typ event.Type) []event.Event {
	var out []event.Event
	for _, ev := range evs {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}
