// Package redaction masks the values of secret-looking assignments before a
// command line is written to a log.
package redaction

import (
	"regexp"
	"strings"
)

// Placeholder replaces a redacted value.
const Placeholder = "[REDACTED]"

// SensitivePatterns decides which variable or option names hold secrets.
type SensitivePatterns struct {
	// NamePatterns match sensitive names, compared upper-cased
	NamePatterns []*regexp.Regexp
	// AllowedNames are never treated as sensitive
	AllowedNames map[string]bool
}

// DefaultSensitivePatterns returns the patterns used by the escalator.
func DefaultSensitivePatterns() *SensitivePatterns {
	return &SensitivePatterns{
		NamePatterns: []*regexp.Regexp{
			regexp.MustCompile(`PASSWORD|PASSWD`),
			regexp.MustCompile(`SECRET`),
			regexp.MustCompile(`TOKEN`),
			regexp.MustCompile(`KEY`),
			regexp.MustCompile(`CREDENTIAL`),
			regexp.MustCompile(`AUTH`),
			regexp.MustCompile(`COOKIE|SESSION`),
		},
		AllowedNames: map[string]bool{
			"PATH":     true,
			"HOME":     true,
			"USER":     true,
			"LANG":     true,
			"SHELL":    true,
			"TERM":     true,
			"PWD":      true,
			"LOGNAME":  true,
			"TZ":       true,
			"DISPLAY":  true,
			"TMPDIR":   true,
			"HOSTNAME": true,
		},
	}
}

// IsSensitiveName reports whether values assigned to name should be hidden.
// Leading dashes are ignored so that --api-key=... is caught too.
func (sp *SensitivePatterns) IsSensitiveName(name string) bool {
	upper := strings.ToUpper(strings.TrimLeft(name, "-"))
	upper = strings.ReplaceAll(upper, "-", "_")
	if upper == "" || sp.AllowedNames[upper] {
		return false
	}
	for _, pattern := range sp.NamePatterns {
		if pattern.MatchString(upper) {
			return true
		}
	}
	return false
}

// Assignment redacts the value of a NAME=VALUE argument with a sensitive
// name. Other arguments are returned unchanged.
func (sp *SensitivePatterns) Assignment(arg string) string {
	name, _, ok := strings.Cut(arg, "=")
	if !ok || !sp.IsSensitiveName(name) {
		return arg
	}
	return name + "=" + Placeholder
}

// Args applies Assignment to every argument and returns a new slice.
func (sp *SensitivePatterns) Args(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = sp.Assignment(arg)
	}
	return out
}
