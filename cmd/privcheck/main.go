// Package main provides privcheck, a small tool that reports the privilege
// state of the current process and escalates it through an elevation
// wrapper.
package main

import (
	"fmt"
	"os"

	"github.com/isseis/go-escalate/internal/logging"
	"github.com/isseis/go-escalate/privilege"
)

func main() {
	runID := logging.InheritedRunID(os.LookupEnv)
	// The escalated child re-reads the run ID from its environment.
	if err := os.Setenv(logging.RunIDEnvVar, runID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to export run ID: %v\n", err)
		os.Exit(1)
	}

	root := newRootCommand(rootConfig{
		Out:    os.Stdout,
		Err:    os.Stderr,
		System: privilege.OS(),
		RunID:  runID,
		Getenv: os.Getenv,
	})
	if err := root.Execute(); err != nil {
		reportError(root.ErrOrStderr(), runID, err)
		os.Exit(1)
	}
}
