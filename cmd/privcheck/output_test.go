package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isseis/go-escalate/internal/color"
	"github.com/isseis/go-escalate/privilege"
)

func TestWriteText(t *testing.T) {
	r := report{
		Phase: phaseBefore,
		RunID: testRunID,
		Status: privilege.Status{
			State:        privilege.User,
			RealUID:      1000,
			EffectiveUID: 1000,
			Wrapper:      "sudo",
			WrapperPath:  "/usr/bin/sudo",
			WrapperFound: true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, formatText, r, false))

	assert.Equal(t, "[before]\n"+
		"state:         user\n"+
		"real uid:      1000\n"+
		"effective uid: 1000\n"+
		"wrapper:       sudo\n"+
		"wrapper path:  /usr/bin/sudo\n", buf.String())
}

func TestWriteText_Color(t *testing.T) {
	tests := []struct {
		state privilege.State
		want  color.Color
	}{
		{privilege.Root, color.Green},
		{privilege.Suid, color.Yellow},
		{privilege.User, color.Gray},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			var buf bytes.Buffer
			r := report{Status: privilege.Status{State: tt.state, Wrapper: "sudo", Error: "not found"}}
			require.NoError(t, writeReport(&buf, formatText, r, true))
			assert.Contains(t, buf.String(), "state:         "+tt.want.Wrap(tt.state.String())+"\n")
			assert.Contains(t, buf.String(), color.Red.Wrap("not found"))
		})
	}
}

func TestIsSupportedFormat(t *testing.T) {
	for _, f := range []string{formatText, formatJSON, formatYAML} {
		assert.True(t, isSupportedFormat(f), f)
	}
	assert.False(t, isSupportedFormat("table"))
	assert.False(t, isSupportedFormat(""))
}
