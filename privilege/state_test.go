package privilege

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		uid  int
		euid int
		want State
	}{
		{"root", 0, 0, Root},
		{"setuid root", 1000, 0, Suid},
		{"plain user", 1000, 1000, User},
		{"root real, user effective", 0, 1000, User},
		{"different unprivileged ids", 1000, 1001, User},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.uid, tt.euid))
		})
	}
}

func TestClassify_OnlyThreeStates(t *testing.T) {
	ids := []int{0, 1, 500, 1000, 65534}
	for _, uid := range ids {
		for _, euid := range ids {
			got := Classify(uid, euid)
			assert.Contains(t, []State{Root, User, Suid}, got)
			assert.Equal(t, uid == 0 && euid == 0, got == Root)
			assert.Equal(t, uid != 0 && euid == 0, got == Suid)
		}
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "root", Root.String())
	assert.Equal(t, "user", User.String())
	assert.Equal(t, "suid", Suid.String())
	assert.Equal(t, "State(0)", State(0).String())

	text, err := Suid.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "suid", string(text))
}
