//go:build unix

package privilege

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSSystem_StartWait(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		env      []string
		want     ExitStatus
		wantCode int
	}{
		{
			name:     "success",
			script:   "exit 0",
			want:     ExitStatus{Code: 0},
			wantCode: 0,
		},
		{
			name:     "exit code is kept",
			script:   "exit 42",
			want:     ExitStatus{Code: 42},
			wantCode: 42,
		},
		{
			name:     "environment reaches the child",
			script:   `exit "$CHILD_CODE"`,
			env:      []string{"CHILD_CODE=7"},
			want:     ExitStatus{Code: 7},
			wantCode: 7,
		},
		{
			name:     "killed by a signal",
			script:   "kill -9 $$",
			want:     ExitStatus{Signaled: true},
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child, err := OS().Start(Invocation{
				Path: "sh",
				Args: []string{"-c", tt.script},
				Env:  tt.env,
			})
			require.NoError(t, err)

			status, err := child.Wait()
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.wantCode, status.ExitCode())
		})
	}
}

func TestOSSystem_StartMissingWrapper(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-wrapper")

	child, err := OS().Start(Invocation{Path: missing})

	assert.Error(t, err)
	assert.Nil(t, child)
}
