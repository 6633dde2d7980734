//go:build unix

package privilege

import (
	"errors"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

type osSystem struct{}

// OS returns the System backed by the running process.
func OS() System {
	return osSystem{}
}

func (osSystem) Getuid() int  { return unix.Getuid() }
func (osSystem) Geteuid() int { return unix.Geteuid() }

// Setuid applies to every thread of the process. With an effective ID of root
// it also sets the real and saved IDs.
func (osSystem) Setuid(uid int) error { return unix.Setuid(uid) }

func (osSystem) Args() []string {
	return append([]string(nil), os.Args...)
}

func (osSystem) Executable() (string, error) { return os.Executable() }
func (osSystem) Environ() []string           { return os.Environ() }

func (osSystem) Start(inv Invocation) (Child, error) {
	// #nosec G204 - the wrapper is chosen by the program author, not by input
	cmd := exec.Command(inv.Path, inv.Args...)
	cmd.Env = inv.Env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &osChild{cmd: cmd}, nil
}

func (osSystem) Exit(code int) { os.Exit(code) }

type osChild struct {
	cmd *exec.Cmd
}

func (c *osChild) Wait() (ExitStatus, error) {
	err := c.cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return ExitStatus{}, err
	}

	// ExitCode is -1 when the child was killed by a signal.
	code := c.cmd.ProcessState.ExitCode()
	if code < 0 {
		return ExitStatus{Signaled: true}, nil
	}
	return ExitStatus{Code: code}, nil
}
