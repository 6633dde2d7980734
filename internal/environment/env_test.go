package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvVariable(t *testing.T) {
	tests := []struct {
		input     string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"KEY=VALUE", "KEY", "VALUE", true},
		{"KEY=", "KEY", "", true},
		{"KEY=a=b", "KEY", "a=b", true},
		{"=VALUE", "", "", false},
		{"KEY", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, ok := ParseEnvVariable(tt.input)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestLookup(t *testing.T) {
	env := []string{"A=1", "B=", "A=2"}

	v, ok := Lookup(env, "A")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = Lookup(env, "B")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = Lookup(env, "C")
	assert.False(t, ok)
}

func TestOverlay(t *testing.T) {
	base := []string{"PATH=/bin", "GOTRACEBACK=weird", "APP_X=old", "junk"}

	t.Run("replace in place and append new", func(t *testing.T) {
		got := Overlay(base, []Variable{
			{Name: "APP_X", Value: "new"},
			{Name: "APP_Y", Value: "y"},
		})
		assert.Equal(t, []string{"PATH=/bin", "GOTRACEBACK=weird", "APP_X=new", "junk", "APP_Y=y"}, got)
	})

	t.Run("unset removes", func(t *testing.T) {
		got := Overlay(base, nil, "GOTRACEBACK")
		assert.Equal(t, []string{"PATH=/bin", "APP_X=old", "junk"}, got)
	})

	t.Run("set wins over unset", func(t *testing.T) {
		got := Overlay(base, []Variable{{Name: "GOTRACEBACK", Value: "full"}}, "GOTRACEBACK")
		assert.Contains(t, got, "GOTRACEBACK=full")
	})

	t.Run("does not modify input", func(t *testing.T) {
		_ = Overlay(base, []Variable{{Name: "PATH", Value: "/usr/bin"}})
		assert.Equal(t, "PATH=/bin", base[0])
	})
}
