// Package color wraps text in ANSI escape sequences for the console log
// handler and the text reports of privcheck.
//
//nolint:revive // package name conflicts with standard library
package color

import (
	"fmt"
	"log/slog"
)

const resetCode = "\033[0m"

// Color is an ANSI escape sequence. The empty Color leaves text unchanged.
type Color string

// Palette used across the tools.
const (
	None   Color = ""
	Gray   Color = "\033[90m" // Bright black
	Green  Color = "\033[32m"
	Yellow Color = "\033[33m"
	Red    Color = "\033[31m"
	Cyan   Color = "\033[36m"
)

// Wrap returns text enclosed in c and a reset sequence.
func (c Color) Wrap(text string) string {
	if c == None {
		return text
	}
	return string(c) + text + resetCode
}

// Sprintf formats and wraps the result.
func (c Color) Sprintf(format string, args ...any) string {
	return c.Wrap(fmt.Sprintf(format, args...))
}

// ForLevel picks the color of a log level label.
func ForLevel(level slog.Level) Color {
	switch {
	case level >= slog.LevelError:
		return Red
	case level >= slog.LevelWarn:
		return Yellow
	case level < slog.LevelInfo:
		return Gray
	default:
		return Cyan
	}
}

// Pick returns c when enabled and None otherwise.
func Pick(enabled bool, c Color) Color {
	if !enabled {
		return None
	}
	return c
}
