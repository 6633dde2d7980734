// Package terminal decides how console output should look: whether the
// process talks to a person at a terminal, and whether that terminal should
// get colors.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"BUILDKITE",
	"JENKINS_URL",
	"TF_BUILD",
}

// colorTerminals lists TERM values (or prefixes followed by '-') known to
// understand ANSI colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"ansi",
	"linux",
	"alacritty",
}

// Options overrides detection.
type Options struct {
	ForceInteractive    bool
	ForceNonInteractive bool
	ForceColor          bool
	DisableColor        bool
}

// Capabilities reports what the console supports.
type Capabilities interface {
	IsInteractive() bool
	SupportsColor() bool
}

// Detector implements Capabilities from the environment and the standard
// streams.
type Detector struct {
	options    Options
	getenv     func(string) (string, bool)
	isTerminal func() bool
}

// NewDetector returns a Detector reading the live process state.
func NewDetector(options Options) *Detector {
	return &Detector{
		options: options,
		getenv:  os.LookupEnv,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
		},
	}
}

// IsInteractive applies, in order: command line overrides, CI detection,
// and whether stdout and stderr are both terminals.
func (d *Detector) IsInteractive() bool {
	if d.options.ForceInteractive {
		return true
	}
	if d.options.ForceNonInteractive {
		return false
	}
	if d.IsCI() {
		return false
	}
	return d.isTerminal()
}

// IsCI reports whether a CI system is detected. CI=false and CI=0 do not
// count.
func (d *Detector) IsCI() bool {
	for _, name := range ciEnvVars {
		value, ok := d.getenv(name)
		if !ok || value == "" {
			continue
		}
		if name == "CI" {
			lower := strings.ToLower(strings.TrimSpace(value))
			return lower != "false" && lower != "0" && lower != "no"
		}
		return true
	}
	return false
}

// SupportsColor applies, in order: command line overrides, CLICOLOR_FORCE,
// NO_COLOR, interactivity, TERM and finally CLICOLOR.
func (d *Detector) SupportsColor() bool {
	if d.options.ForceColor {
		return true
	}
	if d.options.DisableColor {
		return false
	}
	if v, ok := d.getenv("CLICOLOR_FORCE"); ok && isTruthy(v) {
		return true
	}
	if _, ok := d.getenv("NO_COLOR"); ok {
		return false
	}
	if !d.IsInteractive() || !d.colorTerm() {
		return false
	}
	if v, ok := d.getenv("CLICOLOR"); ok && v != "" {
		return isTruthy(v)
	}
	return true
}

func (d *Detector) colorTerm() bool {
	value, _ := d.getenv("TERM")
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "dumb" {
		return false
	}
	for _, name := range colorTerminals {
		if value == name || strings.HasPrefix(value, name+"-") {
			return true
		}
	}
	return false
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
