package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrorType represents different types of pre-execution errors
type ErrorType string

const (
	// ErrorTypeConfigParsing represents profile loading failures
	ErrorTypeConfigParsing ErrorType = "config_parsing_failed"
	// ErrorTypeLogFileOpen represents log file opening failures
	ErrorTypeLogFileOpen ErrorType = "log_file_open_failed"
	// ErrorTypeInvalidArguments represents invalid command line arguments
	ErrorTypeInvalidArguments ErrorType = "invalid_arguments"
	// ErrorTypeEscalation represents a failure to start the wrapper or to
	// claim setuid privileges
	ErrorTypeEscalation ErrorType = "escalation_failed"
	// ErrorTypeSystemError represents system errors
	ErrorTypeSystemError ErrorType = "system_error"
)

// PreExecutionError is a failure that happens before the tool hands control
// to the escalated child.
type PreExecutionError struct {
	Type      ErrorType
	Message   string
	Component string
	RunID     string
	Err       error
}

// Error implements the error interface
func (e *PreExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v (component: %s, run_id: %s)", e.Type, e.Message, e.Err, e.Component, e.RunID)
	}
	return fmt.Sprintf("%s: %s (component: %s, run_id: %s)", e.Type, e.Message, e.Component, e.RunID)
}

// Unwrap implements error wrapping for errors.Unwrap
func (e *PreExecutionError) Unwrap() error {
	return e.Err
}

// HandlePreExecutionError reports err on w and through slog.
func HandlePreExecutionError(w io.Writer, err *PreExecutionError) {
	// Build the whole report first so concurrent writers cannot interleave.
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", err.Type)
	if err.Component != "" {
		fmt.Fprintf(&sb, "  Component: %s\n", err.Component)
	}
	fmt.Fprintf(&sb, "  Details: %s\n", err.Message)
	if err.Err != nil {
		fmt.Fprintf(&sb, "  Cause: %v\n", err.Err)
	}
	if err.RunID != "" {
		fmt.Fprintf(&sb, "  Run ID: %s\n", err.RunID)
	}
	_, _ = io.WriteString(w, sb.String())

	slog.Error("Pre-execution error occurred",
		"error_type", string(err.Type),
		"error_message", err.Message,
		"component", err.Component,
		"run_id", err.RunID,
		"error", err.Err)
}
