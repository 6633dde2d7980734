package privilege

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/isseis/go-escalate/internal/audit"
	"github.com/isseis/go-escalate/internal/environment"
	"github.com/isseis/go-escalate/internal/redaction"
)

// envCommand is inserted before forwarded NAME=VALUE arguments for pkexec,
// which does not carry the caller's environment through to the program.
const envCommand = "env"

// Escalator re-executes the current program with root privileges.
//
// The User path never returns: the current process exits with the status of
// the escalated child. Waiting on the child blocks without a timeout, since
// the wrapper may be prompting for a password.
type Escalator struct {
	cfg      Config
	sys      System
	logger   *slog.Logger
	redactor *redaction.SensitivePatterns
	audit    *audit.Logger
}

// Option configures an Escalator.
type Option func(*Escalator)

// WithSystem replaces the live process with sys.
func WithSystem(sys System) Option {
	return func(e *Escalator) { e.sys = sys }
}

// WithLogger sets the logger used for escalation notices.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Escalator) { e.logger = logger }
}

// WithAudit records every escalation attempt on logger. Auditing is off by
// default.
func WithAudit(logger *slog.Logger) Option {
	return func(e *Escalator) { e.audit = audit.NewAuditLogger(logger) }
}

// New returns an Escalator for cfg. Empty fields of cfg fall back to
// DefaultConfig.
func New(cfg Config, opts ...Option) *Escalator {
	defaults := DefaultConfig()
	if cfg.Wrapper == "" {
		cfg.Wrapper = defaults.Wrapper
	}
	if cfg.TracebackEnv == "" {
		cfg.TracebackEnv = defaults.TracebackEnv
	}

	e := &Escalator{
		cfg:      cfg,
		sys:      OS(),
		redactor: redaction.DefaultSensitivePatterns(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Config returns the configuration in use.
func (e *Escalator) Config() Config {
	return e.cfg
}

// State classifies the process through the escalator's System.
func (e *Escalator) State() (State, error) {
	if e.sys == nil {
		return 0, ErrPlatformNotSupported
	}
	return Classify(e.sys.Getuid(), e.sys.Geteuid()), nil
}

// EscalateIfNeeded escalates, relaying only the traceback variable.
func (e *Escalator) EscalateIfNeeded() (State, error) {
	return e.collectEnvsAndEscalate(environment.Prefixes())
}

// WithEnv escalates, also relaying every variable whose name starts with one
// of prefixes.
func (e *Escalator) WithEnv(prefixes ...string) (State, error) {
	return e.collectEnvsAndEscalate(environment.Prefixes(prefixes...))
}

// WithEnvWildcards escalates, also relaying every variable whose name
// matches one of patterns. A single "*" relays the whole environment. See
// environment.ModeGlob for the pattern syntax.
func (e *Escalator) WithEnvWildcards(patterns ...string) (State, error) {
	return e.collectEnvsAndEscalate(environment.Wildcards(patterns...))
}

// Escalate runs the escalation with an explicit selection.
func (e *Escalator) Escalate(sel environment.Selection) (State, error) {
	return e.collectEnvsAndEscalate(sel)
}

func (e *Escalator) collectEnvsAndEscalate(sel environment.Selection) (State, error) {
	if e.sys == nil {
		return 0, ErrPlatformNotSupported
	}
	uid, euid := e.sys.Getuid(), e.sys.Geteuid()
	current := Classify(uid, euid)
	e.logger.Debug("Privilege state detected", "state", current, "uid", uid, "euid", euid)

	switch current {
	case Root:
		e.logger.Debug("Already running as root")
		return Root, nil
	case Suid:
		e.logger.Debug("Claiming setuid privileges", "target_uid", RootUID)
		start := time.Now()
		err := e.sys.Setuid(RootUID)
		e.recordAudit(audit.Escalation{
			Method:       audit.MethodSetuid,
			OriginalUID:  uid,
			OriginalEUID: euid,
			Duration:     time.Since(start),
			Err:          err,
		})
		if err != nil {
			return Suid, &Error{Op: OpClaim, State: Suid, Err: err}
		}
		return Suid, nil
	}

	e.logger.Debug("Escalating privileges", "wrapper", e.cfg.Wrapper)
	inv := e.buildInvocation(sel)
	logArgs := e.redactor.Args(inv.Args)
	e.logger.Debug("Starting wrapper", "path", inv.Path, "args", logArgs)

	record := audit.Escalation{
		Method:       audit.MethodReexec,
		Wrapper:      inv.Path,
		Args:         logArgs,
		OriginalUID:  uid,
		OriginalEUID: euid,
	}
	start := time.Now()

	child, err := e.sys.Start(inv)
	if err != nil {
		record.Duration, record.Err = time.Since(start), err
		e.recordAudit(record)
		return User, &Error{Op: OpSpawn, Wrapper: e.cfg.Wrapper, State: User, Err: err}
	}

	status, err := child.Wait()
	record.Duration, record.Err = time.Since(start), err
	if err == nil {
		record.ExitCode = status.ExitCode()
	}
	e.recordAudit(record)
	if err != nil {
		e.emergencyShutdown(err)
	}

	e.logger.Debug("Escalated child finished",
		"exit_code", status.ExitCode(),
		"signaled", status.Signaled)
	e.sys.Exit(status.ExitCode())
	panic("privilege: System.Exit returned")
}

func (e *Escalator) recordAudit(ev audit.Escalation) {
	if e.audit != nil {
		e.audit.LogPrivilegeEscalation(context.Background(), ev)
	}
}

// buildInvocation assembles the wrapper command line and child environment
// for the User path.
func (e *Escalator) buildInvocation(sel environment.Selection) Invocation {
	argv := e.sys.Args()
	if exe, err := e.sys.Executable(); err == nil {
		if len(argv) == 0 {
			argv = []string{exe}
		} else {
			argv[0] = exe
		}
	} else {
		e.logger.Debug("Cannot resolve executable path, keeping argv[0]", "error", err)
	}

	parentEnv := e.sys.Environ()
	var set []environment.Variable
	var unset []string

	traceback := e.cfg.TracebackEnv
	if raw, ok := environment.Lookup(parentEnv, traceback); ok {
		value, valid := environment.NormalizeTracebackFor(traceback, raw)
		if !valid {
			e.logger.Warn("Invalid traceback setting, relaying a verbose level",
				"variable", traceback,
				"value", raw,
				"relayed", value)
		}
		if value == "" {
			unset = append(unset, traceback)
		} else {
			e.logger.Debug("Relaying traceback setting", "variable", traceback, "value", value)
			set = append(set, environment.Variable{Name: traceback, Value: value})
		}
	}

	forwarded := environment.Select(parentEnv, sel, e.logger, traceback)
	for _, v := range forwarded {
		e.logger.Debug("Propagating environment variable", "variable", v.Name)
	}
	set = append(set, forwarded...)

	var args []string
	if e.isPkexec() && len(forwarded) > 0 {
		e.logger.Debug("Prefixing env to the pkexec command line to pass environment variables; this may conflict with pkexec policies")
		args = append(args, envCommand)
		for _, v := range forwarded {
			args = append(args, v.String())
		}
	}
	args = append(args, argv...)

	return Invocation{
		Path: e.cfg.Wrapper,
		Args: args,
		Env:  environment.Overlay(parentEnv, set, unset...),
	}
}

func (e *Escalator) isPkexec() bool {
	return filepath.Base(e.cfg.Wrapper) == WrapperPkexec
}

// emergencyShutdown terminates the process when the outcome of the escalated
// child cannot be determined.
func (e *Escalator) emergencyShutdown(waitErr error) {
	criticalMsg := "CRITICAL: failed to wait on escalated child, outcome unknown"

	e.logger.Error(criticalMsg,
		"error", waitErr,
		"wrapper", e.cfg.Wrapper,
		"process_id", os.Getpid())

	reportCritical(fmt.Sprintf("%s: %v (PID: %d, wrapper: %s)", criticalMsg, waitErr, os.Getpid(), e.cfg.Wrapper))

	fmt.Fprintf(os.Stderr, "FATAL: %s: %v\n", criticalMsg, waitErr)

	e.sys.Exit(1)
	panic("privilege: System.Exit returned")
}
