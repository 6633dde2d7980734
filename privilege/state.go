// Package privilege detects whether the current process runs with root
// privileges and, when it does not, re-executes it through an external
// elevation wrapper such as sudo, pkexec or doas. Processes started from a
// setuid-root binary claim their latent privileges in place instead.
//
// The package only orchestrates the wrapper; authentication is entirely the
// wrapper's business. It works on POSIX systems only.
package privilege

import "fmt"

// RootUID is the privileged user ID.
const RootUID = 0

// State classifies the privilege posture of a process.
type State int

// The zero State is deliberately not a valid classification.
const (
	// Root means both the real and the effective user ID are root.
	Root State = iota + 1
	// User means neither ID is root.
	User
	// Suid means the effective ID is root but the real ID is not: the process
	// was started from a setuid-root binary and has not claimed root yet.
	Suid
)

func (s State) String() string {
	switch s {
	case Root:
		return "root"
	case User:
		return "user"
	case Suid:
		return "suid"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify maps a real and effective user ID pair onto a State.
func Classify(uid, euid int) State {
	switch {
	case uid == RootUID && euid == RootUID:
		return Root
	case euid == RootUID:
		return Suid
	default:
		return User
	}
}

// Current classifies the calling process. The result is not cached; query
// again after any privilege change.
//
// Current panics with ErrPlatformNotSupported on platforms without POSIX
// user IDs.
func Current() State {
	sys := OS()
	if sys == nil {
		panic(ErrPlatformNotSupported)
	}
	return Classify(sys.Getuid(), sys.Geteuid())
}

// RunningAsRoot reports whether the process already runs as root.
func RunningAsRoot() bool {
	return Current() == Root
}

// RunningAsSuid reports whether the process holds unclaimed setuid-root
// privileges.
func RunningAsSuid() bool {
	return Current() == Suid
}
