// Package testing provides a fake privilege.System for tests.
package testing

import (
	"errors"
	"sync"

	"github.com/isseis/go-escalate/privilege"
)

// Test constants
const (
	// MockUID is the unprivileged user ID used by the fakes
	MockUID = 1000
)

// Test error definitions
var (
	ErrMockSpawn  = errors.New("mock spawn failure")
	ErrMockSetuid = errors.New("mock setuid failure")
	ErrMockWait   = errors.New("mock wait failure")
)

// ExitPanic is the value FakeSystem.Exit panics with, standing in for the
// process termination that never returns.
type ExitPanic struct {
	Code int
}

// FakeSystem is a scripted privilege.System that records what the escalator
// asked of it.
type FakeSystem struct {
	mu sync.Mutex

	UID            int
	EUID           int
	Argv           []string
	ExecutablePath string
	ExecutableErr  error
	Environment    []string

	SetuidErr  error
	StartErr   error
	WaitStatus privilege.ExitStatus
	WaitErr    error

	SetuidCalls []int
	Started     []privilege.Invocation
	ExitCodes   []int
}

// NewUserSystem returns a fake plain user process.
func NewUserSystem() *FakeSystem {
	return &FakeSystem{
		UID:            MockUID,
		EUID:           MockUID,
		Argv:           []string{"./app", "--flag", "value"},
		ExecutablePath: "/opt/app/bin/app",
		Environment:    []string{"PATH=/usr/bin:/bin", "HOME=/home/user"},
	}
}

// NewRootSystem returns a fake root process.
func NewRootSystem() *FakeSystem {
	f := NewUserSystem()
	f.UID, f.EUID = privilege.RootUID, privilege.RootUID
	return f
}

// NewSuidSystem returns a fake process started from a setuid-root binary.
func NewSuidSystem() *FakeSystem {
	f := NewUserSystem()
	f.EUID = privilege.RootUID
	return f
}

// Getuid returns the fake real user ID.
func (f *FakeSystem) Getuid() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.UID
}

// Geteuid returns the fake effective user ID.
func (f *FakeSystem) Geteuid() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.EUID
}

// Setuid records the call and, unless SetuidErr is set, behaves like the
// real call made with an effective ID of root.
func (f *FakeSystem) Setuid(uid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetuidCalls = append(f.SetuidCalls, uid)
	if f.SetuidErr != nil {
		return f.SetuidErr
	}
	f.UID, f.EUID = uid, uid
	return nil
}

// Args returns a copy of Argv.
func (f *FakeSystem) Args() []string {
	return append([]string(nil), f.Argv...)
}

// Executable returns ExecutablePath or ExecutableErr.
func (f *FakeSystem) Executable() (string, error) {
	if f.ExecutableErr != nil {
		return "", f.ExecutableErr
	}
	return f.ExecutablePath, nil
}

// Environ returns a copy of Environment.
func (f *FakeSystem) Environ() []string {
	return append([]string(nil), f.Environment...)
}

// Start records inv and returns a child that reports WaitStatus.
func (f *FakeSystem) Start(inv privilege.Invocation) (privilege.Child, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StartErr != nil {
		return nil, f.StartErr
	}
	f.Started = append(f.Started, inv)
	return fakeChild{status: f.WaitStatus, err: f.WaitErr}, nil
}

// Exit records code and panics with ExitPanic.
func (f *FakeSystem) Exit(code int) {
	f.mu.Lock()
	f.ExitCodes = append(f.ExitCodes, code)
	f.mu.Unlock()
	panic(ExitPanic{Code: code})
}

type fakeChild struct {
	status privilege.ExitStatus
	err    error
}

func (c fakeChild) Wait() (privilege.ExitStatus, error) {
	return c.status, c.err
}

// CaptureExit runs fn and reports the code passed to FakeSystem.Exit, if fn
// reached it. Other panics propagate.
func CaptureExit(fn func()) (code int, exited bool) {
	defer func() {
		if r := recover(); r != nil {
			p, ok := r.(ExitPanic)
			if !ok {
				panic(r)
			}
			code, exited = p.Code, true
		}
	}()
	fn()
	return 0, false
}
