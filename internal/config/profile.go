// Package config loads escalation profiles: TOML files naming the elevation
// wrapper and the environment variables to carry over to the escalated
// process.
//
// Example:
//
//	wrapper = "pkexec"
//	traceback_env = "GOTRACEBACK"
//
//	[env]
//	prefixes = ["APP_", "HTTP_PROXY"]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/isseis/go-escalate/internal/environment"
	"github.com/isseis/go-escalate/internal/safefileio"
	"github.com/isseis/go-escalate/privilege"
)

// Profile validation errors
var (
	// ErrConflictingSelectors is returned when both env.prefixes and env.wildcards are set
	ErrConflictingSelectors = errors.New("env.prefixes and env.wildcards are mutually exclusive")

	// ErrEmptyWrapper is returned when wrapper is present but blank
	ErrEmptyWrapper = errors.New("wrapper must not be blank")

	// ErrEmptyPattern is returned when a selector list contains a blank entry
	ErrEmptyPattern = errors.New("environment selector must not be blank")

	// ErrInvalidVariableName is returned when traceback_env is not a valid variable name
	ErrInvalidVariableName = errors.New("invalid environment variable name")
)

// Profile is the decoded form of an escalation profile.
type Profile struct {
	Wrapper      *string    `toml:"wrapper"`
	TracebackEnv string     `toml:"traceback_env"`
	Env          EnvSection `toml:"env"`
}

// EnvSection lists the variables to forward. At most one list may be set.
type EnvSection struct {
	Prefixes  []string `toml:"prefixes"`
	Wildcards []string `toml:"wildcards"`
}

// maxProfileSize bounds the profile read.
const maxProfileSize = 64 * 1024

// Load reads and validates the profile at path. The file is read without
// following symbolic links and must not be writable by other users, since a
// setuid binary may load it with root privileges.
func Load(path string) (*Profile, error) {
	content, err := safefileio.ReadFile(path, maxProfileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	p, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates profile content. Unknown keys are rejected so
// that a misspelt selector does not silently forward nothing.
func Parse(content []byte) (*Profile, error) {
	var p Profile
	dec := toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the profile for contradictions.
func (p *Profile) Validate() error {
	if p.Wrapper != nil && strings.TrimSpace(*p.Wrapper) == "" {
		return ErrEmptyWrapper
	}

	if len(p.Env.Prefixes) > 0 && len(p.Env.Wildcards) > 0 {
		return ErrConflictingSelectors
	}

	for _, list := range [][]string{p.Env.Prefixes, p.Env.Wildcards} {
		for i, pattern := range list {
			if strings.TrimSpace(pattern) == "" {
				return fmt.Errorf("%w: entry %d", ErrEmptyPattern, i)
			}
		}
	}

	if p.TracebackEnv != "" {
		if strings.ContainsAny(p.TracebackEnv, "= \t\n\x00") {
			return fmt.Errorf("%w: %q", ErrInvalidVariableName, p.TracebackEnv)
		}
	}
	return nil
}

// Config returns the escalation configuration described by the profile.
func (p *Profile) Config() privilege.Config {
	var opts []privilege.ConfigOption
	if p.Wrapper != nil {
		opts = append(opts, privilege.WithWrapper(strings.TrimSpace(*p.Wrapper)))
	}
	if p.TracebackEnv != "" {
		opts = append(opts, privilege.WithTracebackEnv(p.TracebackEnv))
	}
	return privilege.NewConfig(opts...)
}

// Selection returns the environment selection described by the profile.
func (p *Profile) Selection() environment.Selection {
	if len(p.Env.Wildcards) > 0 {
		return environment.Wildcards(p.Env.Wildcards...)
	}
	return environment.Prefixes(p.Env.Prefixes...)
}
