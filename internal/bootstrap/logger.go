// Package bootstrap wires up process-wide facilities for the command line
// tools.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/isseis/go-escalate/internal/logging"
	"github.com/isseis/go-escalate/internal/safefileio"
	"github.com/isseis/go-escalate/internal/terminal"
)

const (
	logFilePerm = 0o600
	logDirPerm  = 0o750

	unknownHostFallback = "unknown-host"
)

// ErrInvalidLogLevel is returned for log levels slog does not understand.
var ErrInvalidLogLevel = errors.New("invalid log level")

// LoggerConfig holds all configuration for logger setup
type LoggerConfig struct {
	Level  slog.Level
	LogDir string
	RunID  string
	// ConsoleWriter defaults to os.Stderr so that stdout stays free for the
	// tool's own output.
	ConsoleWriter io.Writer
	Terminal      terminal.Options
}

// ParseLevel parses debug, info, warn or error (any case).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
	return level, nil
}

// SetupLogger builds the console handler and, when LogDir is set, a JSON file
// handler named after host, time and run ID. The resulting logger becomes
// slog's default. The returned closer releases the log file.
func SetupLogger(config LoggerConfig) (*slog.Logger, io.Closer, error) {
	consoleWriter := config.ConsoleWriter
	if consoleWriter == nil {
		consoleWriter = os.Stderr
	}

	capabilities := terminal.NewDetector(config.Terminal)
	console, err := logging.NewConsoleHandler(logging.ConsoleHandlerOptions{
		Level:        config.Level,
		Writer:       consoleWriter,
		Capabilities: capabilities,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create console handler: %w", err)
	}

	handlers := []slog.Handler{console}
	var closer io.Closer = nopCloser{}

	if config.LogDir != "" {
		f, err := openRunLog(config.LogDir, config.RunID)
		if err != nil {
			return nil, nil, err
		}
		closer = f

		hostname, herr := os.Hostname()
		if herr != nil {
			hostname = unknownHostFallback
		}
		jsonHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: config.Level}).
			WithAttrs([]slog.Attr{
				slog.String("hostname", hostname),
				slog.Int("pid", os.Getpid()),
				slog.Int("uid", os.Getuid()),
				slog.Int("euid", os.Geteuid()),
				slog.String("run_id", config.RunID),
			})
		handlers = append(handlers, jsonHandler)
	}

	logger := slog.New(logging.NewMultiHandler(handlers...))
	slog.SetDefault(logger)

	logger.Debug("Logger initialized",
		"log_level", config.Level,
		"log_dir", config.LogDir,
		"run_id", config.RunID,
		"interactive_mode", capabilities.IsInteractive(),
		"color_support", capabilities.SupportsColor())

	return logger, closer, nil
}

// openRunLog creates a new per-run log file in dir. An existing file is never
// reused: the escalated child writes its own file under the same run ID.
func openRunLog(dir, runID string) (*os.File, error) {
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("cannot create log directory %s: %w", dir, err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = unknownHostFallback
	}
	name := fmt.Sprintf("%s_%s_%s_%d.json", hostname, time.Now().UTC().Format("20060102T150405Z"), runID, os.Getpid())
	path := filepath.Join(dir, name)

	f, err := safefileio.CreateFile(path, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
