package privilege

// System is the process-global state the escalator reads and the OS actions
// it performs. OS returns the live implementation; tests substitute a fake so
// that no real IDs change and no wrapper is spawned.
type System interface {
	Getuid() int
	Geteuid() int
	// Setuid sets the real, effective and saved user IDs.
	Setuid(uid int) error

	Args() []string
	Executable() (string, error)
	Environ() []string

	// Start launches inv with the standard streams of the current process.
	Start(inv Invocation) (Child, error)
	// Exit terminates the current process. It does not return.
	Exit(code int)
}

// Child is a started process.
type Child interface {
	// Wait blocks until the process terminates. A non-zero exit is reported
	// through ExitStatus, not as an error.
	Wait() (ExitStatus, error)
}

// Invocation is the exact process handed to the OS.
type Invocation struct {
	// Path is the wrapper program, resolved through PATH when it has no slash.
	Path string
	// Args are the arguments following the wrapper.
	Args []string
	// Env is the complete child environment.
	Env []string
}

// ExitStatus describes how a child terminated.
type ExitStatus struct {
	Code     int
	Signaled bool
}

// ExitCode returns the code the parent should exit with: the child's own code
// when it exited normally, 1 when it was killed.
func (s ExitStatus) ExitCode() int {
	if s.Signaled {
		return 1
	}
	return s.Code
}
