//go:build unix

package privilege

import (
	"fmt"
	"log/syslog"
	"os"
	"path/filepath"
)

// reportCritical forwards a fatal message to the system logger so that it
// survives even when stderr is not being collected.
var reportCritical = func(msg string) {
	progName := "go-escalate"
	if execPath, err := os.Executable(); err == nil {
		progName = filepath.Base(execPath)
	}

	w, err := syslog.New(syslog.LOG_ERR, progName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize syslog: %v\n", err)
		return
	}
	if err := w.Err(msg); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to write to syslog: %v\n", err)
	}
	_ = w.Close()
}
