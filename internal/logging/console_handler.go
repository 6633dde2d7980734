package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/isseis/go-escalate/internal/color"
	"github.com/isseis/go-escalate/internal/terminal"
)

// Static errors for ConsoleHandler validation
var (
	ErrConsoleHandlerWriterRequired       = errors.New("ConsoleHandler: Writer is required")
	ErrConsoleHandlerCapabilitiesRequired = errors.New("ConsoleHandler: Capabilities is required")
)

// ConsoleHandlerOptions configures a ConsoleHandler.
type ConsoleHandlerOptions struct {
	Level        slog.Leveler
	Writer       io.Writer
	Capabilities terminal.Capabilities
}

// ConsoleHandler writes short, optionally colored lines when a person is
// watching the terminal and falls back to slog's text format otherwise, so
// that piped output stays machine readable.
type ConsoleHandler struct {
	opts   ConsoleHandlerOptions
	text   slog.Handler
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

// NewConsoleHandler creates a ConsoleHandler.
func NewConsoleHandler(opts ConsoleHandlerOptions) (*ConsoleHandler, error) {
	if opts.Writer == nil {
		return nil, ErrConsoleHandlerWriterRequired
	}
	if opts.Capabilities == nil {
		return nil, ErrConsoleHandlerCapabilitiesRequired
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &ConsoleHandler{
		opts: opts,
		text: slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{Level: opts.Level}),
		mu:   &sync.Mutex{},
	}, nil
}

// Enabled reports whether level reaches the configured minimum.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle writes r.
func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.opts.Capabilities.IsInteractive() {
		return h.text.Handle(ctx, r)
	}

	useColor := h.opts.Capabilities.SupportsColor()
	var sb strings.Builder
	sb.WriteString(formatLevel(r.Level, useColor))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	writeAttr := func(prefix string, a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		key := prefix + a.Key
		if useColor {
			key = color.Gray.Wrap(key)
		}
		fmt.Fprintf(&sb, " %s=%v", key, a.Value.Resolve())
	}
	// h.attrs already carry the group prefix in effect when they were added.
	for _, a := range h.attrs {
		writeAttr("", a)
	}
	prefix := h.groupPrefix()
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.opts.Writer, sb.String())
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	prefix := h.groupPrefix()
	clone := *h
	clone.text = h.text.WithAttrs(attrs)
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: prefix + a.Key, Value: a.Value})
	}
	return &clone
}

// WithGroup returns a new handler with an additional group.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.text = h.text.WithGroup(name)
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func (h *ConsoleHandler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

func formatLevel(level slog.Level, useColor bool) string {
	return color.Pick(useColor, color.ForLevel(level)).Sprintf("[%-5s]", level.String())
}
