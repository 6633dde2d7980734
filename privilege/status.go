package privilege

import (
	"os/exec"
)

// Status is a point-in-time report of the privilege posture of a process and
// of the wrapper it would escalate through.
type Status struct {
	State        State  `json:"state" yaml:"state"`
	RealUID      int    `json:"real_uid" yaml:"real_uid"`
	EffectiveUID int    `json:"effective_uid" yaml:"effective_uid"`
	Executable   string `json:"executable,omitempty" yaml:"executable,omitempty"`
	SetuidBinary bool   `json:"setuid_binary" yaml:"setuid_binary"`
	Wrapper      string `json:"wrapper" yaml:"wrapper"`
	WrapperPath  string `json:"wrapper_path,omitempty" yaml:"wrapper_path,omitempty"`
	WrapperFound bool   `json:"wrapper_found" yaml:"wrapper_found"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// GetStatus inspects sys. The wrapper is only looked up when the process is
// not already root, since it would not be used otherwise.
func GetStatus(sys System, wrapper string) Status {
	if wrapper == "" {
		wrapper = WrapperSudo
	}
	status := Status{Wrapper: wrapper}
	if sys == nil {
		status.Error = ErrPlatformNotSupported.Error()
		return status
	}

	status.RealUID = sys.Getuid()
	status.EffectiveUID = sys.Geteuid()
	status.State = Classify(status.RealUID, status.EffectiveUID)

	if exe, err := sys.Executable(); err == nil {
		status.Executable = exe
		status.SetuidBinary = isRootOwnedSetuid(exe)
	}

	if status.State != User {
		return status
	}

	path, err := lookPath(wrapper)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.WrapperPath = path
	status.WrapperFound = true
	return status
}
