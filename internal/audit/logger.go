// Package audit records privilege escalations as structured log entries.
package audit

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Escalation methods
const (
	MethodSetuid = "setuid_claim"
	MethodReexec = "wrapper_reexec"
)

// Logger provides structured audit logging functionality
type Logger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new audit logger instance
func NewAuditLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Escalation describes one attempt to obtain root privileges.
type Escalation struct {
	Method       string
	Wrapper      string
	Args         []string
	OriginalUID  int
	OriginalEUID int
	Duration     time.Duration
	// ExitCode is the escalated child's status; only set for MethodReexec.
	ExitCode int
	Err      error
}

// LogPrivilegeEscalation logs ev at info level when it succeeded and at
// warn level otherwise. A re-executed child that exits non-zero counts as a
// successful escalation.
func (a *Logger) LogPrivilegeEscalation(ctx context.Context, ev Escalation) {
	attrs := []slog.Attr{
		slog.String("audit_type", "privilege_escalation"),
		slog.Int64("timestamp", time.Now().Unix()),
		slog.String("method", ev.Method),
		slog.Int("original_uid", ev.OriginalUID),
		slog.Int("original_euid", ev.OriginalEUID),
		slog.Int("target_uid", 0),
		slog.Bool("success", ev.Err == nil),
		slog.Int64("duration_ms", ev.Duration.Milliseconds()),
		slog.Int("process_id", os.Getpid()),
	}

	if ev.Method == MethodReexec {
		attrs = append(attrs,
			slog.String("wrapper", ev.Wrapper),
			slog.String("command_args", strings.Join(ev.Args, " ")))
		if ev.Err == nil {
			attrs = append(attrs, slog.Int("exit_code", ev.ExitCode))
		}
	}

	if ev.Err == nil {
		a.logger.LogAttrs(ctx, slog.LevelInfo, "Privilege escalation successful", attrs...)
		return
	}
	attrs = append(attrs, slog.String("error", ev.Err.Error()))
	a.logger.LogAttrs(ctx, slog.LevelWarn, "Privilege escalation failed", attrs...)
}
