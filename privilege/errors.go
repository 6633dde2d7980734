package privilege

import (
	"errors"
	"fmt"
)

// Standard errors
var (
	ErrSpawnFailed          = errors.New("failed to start elevation wrapper")
	ErrPrivilegeClaimFailed = errors.New("failed to claim setuid privileges")
	ErrPlatformNotSupported = errors.New("privilege escalation requires POSIX user IDs")
)

// Op names the escalation step that failed.
type Op string

// Escalation steps that can fail.
const (
	OpClaim Op = "claim"
	OpSpawn Op = "spawn"
)

// Error carries the details of a failed escalation. It wraps both the
// category (ErrSpawnFailed, ErrPrivilegeClaimFailed) and the OS error.
type Error struct {
	Op      Op
	Wrapper string
	State   State
	Err     error
}

func (e *Error) Error() string {
	kind := e.kind()
	if e.Op == OpSpawn {
		return fmt.Sprintf("%v (wrapper %q, state %s): %v", kind, e.Wrapper, e.State, e.Err)
	}
	return fmt.Sprintf("%v (state %s): %v", kind, e.State, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.kind(), e.Err}
}

func (e *Error) kind() error {
	if e.Op == OpSpawn {
		return ErrSpawnFailed
	}
	return ErrPrivilegeClaimFailed
}
