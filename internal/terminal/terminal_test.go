package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDetector(opts Options, env map[string]string, tty bool) *Detector {
	d := NewDetector(opts)
	d.getenv = func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	d.isTerminal = func() bool { return tty }
	return d
}

func TestDetector_IsInteractive(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		env  map[string]string
		tty  bool
		want bool
	}{
		{"terminal", Options{}, nil, true, true},
		{"pipe", Options{}, nil, false, false},
		{"CI on a terminal", Options{}, map[string]string{"CI": "true"}, true, false},
		{"CI=false is not CI", Options{}, map[string]string{"CI": "false"}, true, true},
		{"GitHub Actions", Options{}, map[string]string{"GITHUB_ACTIONS": "true"}, true, false},
		{"forced interactive", Options{ForceInteractive: true}, map[string]string{"CI": "1"}, false, true},
		{"forced quiet", Options{ForceNonInteractive: true}, nil, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDetector(tt.opts, tt.env, tt.tty)
			assert.Equal(t, tt.want, d.IsInteractive())
		})
	}
}

func TestDetector_SupportsColor(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		env  map[string]string
		tty  bool
		want bool
	}{
		{"xterm terminal", Options{}, map[string]string{"TERM": "xterm-256color"}, true, true},
		{"dumb terminal", Options{}, map[string]string{"TERM": "dumb"}, true, false},
		{"unknown terminal", Options{}, map[string]string{"TERM": "weird"}, true, false},
		{"pipe", Options{}, map[string]string{"TERM": "xterm"}, false, false},
		{"NO_COLOR", Options{}, map[string]string{"TERM": "xterm", "NO_COLOR": ""}, true, false},
		{"CLICOLOR=0", Options{}, map[string]string{"TERM": "xterm", "CLICOLOR": "0"}, true, false},
		{"CLICOLOR_FORCE on a pipe", Options{}, map[string]string{"CLICOLOR_FORCE": "1"}, false, true},
		{"forced color", Options{ForceColor: true}, map[string]string{"NO_COLOR": "1"}, false, true},
		{"disabled color", Options{DisableColor: true}, map[string]string{"CLICOLOR_FORCE": "1"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDetector(tt.opts, tt.env, tt.tty)
			assert.Equal(t, tt.want, d.SupportsColor())
		})
	}
}
