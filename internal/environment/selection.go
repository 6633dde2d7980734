// Package environment decides which environment variables travel with a
// re-executed process. Variables are selected either by literal name prefix
// or by glob pattern, never both in the same call.
package environment

import (
	"log/slog"
	"strings"

	"github.com/gobwas/glob"
)

// Mode selects how Selection patterns are interpreted.
type Mode int

const (
	// ModePrefix matches a name when it starts with the pattern.
	ModePrefix Mode = iota
	// ModeGlob matches a name against a glob pattern.
	//
	// Glob semantics are those of github.com/gobwas/glob compiled without
	// separators: matching is case-sensitive, '*' matches any run of
	// characters (including none), '?' matches exactly one character,
	// "[abc]", "[a-z]" and "[!a]" are character classes, "{a,b}" is an
	// alternation and '\' escapes the next character. The pattern must match
	// the whole name, so "*" selects every variable.
	ModeGlob
)

func (m Mode) String() string {
	switch m {
	case ModePrefix:
		return "prefix"
	case ModeGlob:
		return "glob"
	default:
		return "unknown"
	}
}

// Selection is an ordered list of patterns plus the mode they are read in.
type Selection struct {
	Mode     Mode
	Patterns []string
}

// Prefixes returns a prefix-mode selection.
func Prefixes(patterns ...string) Selection {
	return Selection{Mode: ModePrefix, Patterns: patterns}
}

// Wildcards returns a glob-mode selection.
func Wildcards(patterns ...string) Selection {
	return Selection{Mode: ModeGlob, Patterns: patterns}
}

// IsEmpty reports whether the selection has no patterns.
func (s Selection) IsEmpty() bool {
	return len(s.Patterns) == 0
}

// Variable is a single NAME=VALUE pair.
type Variable struct {
	Name  string
	Value string
}

// String returns the variable in NAME=VALUE form.
func (v Variable) String() string {
	return v.Name + "=" + v.Value
}

// Matcher tests variable names against a compiled Selection.
type Matcher struct {
	mode     Mode
	prefixes []string
	globs    []glob.Glob
}

// NewMatcher compiles sel. Glob patterns that fail to compile are logged and
// dropped, so they never match anything.
func NewMatcher(sel Selection, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Matcher{mode: sel.Mode}
	if sel.Mode != ModeGlob {
		m.prefixes = append(m.prefixes, sel.Patterns...)
		return m
	}

	for _, pattern := range sel.Patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			logger.Warn("Ignoring invalid environment wildcard",
				"pattern", pattern,
				"error", err)
			continue
		}
		m.globs = append(m.globs, g)
	}
	return m
}

// Match reports whether name is selected by any pattern.
func (m *Matcher) Match(name string) bool {
	if m.mode == ModeGlob {
		for _, g := range m.globs {
			if g.Match(name) {
				return true
			}
		}
		return false
	}

	for _, prefix := range m.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Select returns the variables of environ whose names match sel, in the order
// they appear in environ. Names listed in exclude are never selected, and a
// name occurring more than once is only reported for its first occurrence.
func Select(environ []string, sel Selection, logger *slog.Logger, exclude ...string) []Variable {
	if sel.IsEmpty() {
		return nil
	}

	matcher := NewMatcher(sel, logger)
	seen := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		seen[name] = struct{}{}
	}

	var selected []Variable
	for _, entry := range environ {
		name, value, ok := ParseEnvVariable(entry)
		if !ok {
			continue
		}
		if _, skip := seen[name]; skip {
			continue
		}
		seen[name] = struct{}{}

		if matcher.Match(name) {
			selected = append(selected, Variable{Name: name, Value: value})
		}
	}
	return selected
}
