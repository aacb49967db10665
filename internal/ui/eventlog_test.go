package ui

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeeEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	in := make(chan Event, 4)
	in <- Event{Type: FileCopied, Path: "a/data.json", Size: 2048}
	in <- Event{Type: FileFailed, Path: "a/bad", Error: assert.AnError}
	close(in)

	var got []Event
	for ev := range TeeEvents(in, logger) {
		got = append(got, ev)
	}
	require.Len(t, got, 2)
	assert.Equal(t, FileCopied, got[0].Type)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "hollow.event", rec["msg"])
	assert.Equal(t, "FileCopied", rec["type"])
	assert.Equal(t, "copy", rec["phase"])
	assert.Equal(t, "a/data.json", rec["path"])
	assert.InDelta(t, 2048, rec["size"], 0)

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, assert.AnError.Error(), rec["error"])
}
