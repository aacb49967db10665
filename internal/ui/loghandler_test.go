package ui_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/hollow/internal/ui"
)

// failingHandler accepts every record and fails to write it.
type failingHandler struct{ slog.Handler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("disk full")
}

func TestMultiHandler_TerminalAndLogFile(t *testing.T) {
	t.Parallel()

	var term, file bytes.Buffer
	textH := slog.NewTextHandler(&term, &slog.HandlerOptions{Level: slog.LevelWarn})
	jsonH := slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(ui.NewMultiHandler(textH, jsonH))

	logger.Debug("copy started", "src", "/shots")
	logger.Warn("entry failed", "path", "a/plate.exr")

	assert.NotContains(t, term.String(), "copy started")
	assert.Contains(t, term.String(), "path=a/plate.exr")

	dec := json.NewDecoder(&file)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "copy started", first["msg"])
	assert.Equal(t, "/shots", first["src"])
	assert.Equal(t, "entry failed", second["msg"])
}

func TestMultiHandler_Enabled(t *testing.T) {
	t.Parallel()

	warnH := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	errH := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})
	m := ui.NewMultiHandler(warnH, errH)

	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Enabled(context.Background(), tt.level), tt.level.String())
	}
	assert.False(t, ui.NewMultiHandler().Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_AttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(ui.NewMultiHandler(h)).
		With("phase", "copy").
		WithGroup("event")

	logger.Info("hollow.event", "type", "FileHollowed")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "copy", rec["phase"])
	group, ok := rec["event"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "FileHollowed", group["type"])
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ok := slog.NewTextHandler(&buf, nil)
	m := ui.NewMultiHandler(failingHandler{}, ok)

	var r slog.Record
	r.Level = slog.LevelInfo
	r.Message = "scan complete"
	err := m.Handle(context.Background(), r)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, buf.String(), "scan complete", "remaining handlers still write")
}
