package logging

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errHandler = errors.New("handler error")

type recordingHandler struct {
	mu      sync.Mutex
	enabled bool
	err     error
	records []slog.Record
	attrs   []slog.Attr
	group   string
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return h.enabled }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordingHandler{enabled: h.enabled, attrs: append(h.attrs, attrs...), group: h.group}
}

func (h *recordingHandler) WithGroup(name string) slog.Handler {
	return &recordingHandler{enabled: h.enabled, attrs: h.attrs, group: name}
}

func TestMultiHandler_Dispatch(t *testing.T) {
	on := &recordingHandler{enabled: true}
	off := &recordingHandler{enabled: false}
	h := NewMultiHandler(on, off)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Len(t, on.records, 1)
	assert.Empty(t, off.records)
}

func TestMultiHandler_DisabledWhenAllDisabled(t *testing.T) {
	h := NewMultiHandler(&recordingHandler{}, &recordingHandler{})
	assert.False(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	failing := &recordingHandler{enabled: true, err: errHandler}
	ok := &recordingHandler{enabled: true}
	h := NewMultiHandler(failing, ok)

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelWarn, "x", 0))

	assert.ErrorIs(t, err, errHandler)
	assert.Len(t, ok.records, 1, "a failing handler must not starve the others")
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	h := NewMultiHandler(&recordingHandler{enabled: true})

	withAttrs := h.WithAttrs([]slog.Attr{slog.String("run_id", "r1")}).(*MultiHandler)
	inner := withAttrs.handlers[0].(*recordingHandler)
	assert.Equal(t, "run_id", inner.attrs[0].Key)

	withGroup := h.WithGroup("escalation").(*MultiHandler)
	assert.Equal(t, "escalation", withGroup.handlers[0].(*recordingHandler).group)
}
