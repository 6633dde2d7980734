package environment

import (
	"strconv"
	"strings"
)

// GoTracebackEnv is the Go runtime's traceback variable. Values relayed
// through it must stay meaningful to a Go child.
const GoTracebackEnv = "GOTRACEBACK"

// Normalized traceback verbosity values relayed to the child.
const (
	TracebackOn   = "1"
	TracebackFull = "full"
)

// Go runtime traceback levels, least to most verbose.
const (
	GoTracebackNone   = "none"
	GoTracebackSingle = "single"
	GoTracebackAll    = "all"
	GoTracebackSystem = "system"
	GoTracebackCrash  = "crash"
	GoTracebackWER    = "wer"
)

// NormalizeTraceback maps a raw diagnostics-verbosity value onto the values
// relayed to an escalated child.
//
//	""                          -> "", forward nothing
//	"1", "true" (any case)      -> "1"
//	"full" (any case)           -> "full"
//	anything else               -> "full", valid=false
//
// Unknown values degrade to the most verbose setting so that diagnostics are
// never dropped; callers should warn when valid is false.
func NormalizeTraceback(value string) (normalized string, valid bool) {
	switch strings.ToLower(value) {
	case "":
		return "", true
	case "1", "true":
		return TracebackOn, true
	case "full":
		return TracebackFull, true
	default:
		return TracebackFull, false
	}
}

// NormalizeGoTraceback is NormalizeTraceback for GOTRACEBACK. Levels the Go
// runtime understands are relayed unchanged (keywords lowercased) so the
// child never gets less verbose than the parent.
//
//	""                               -> "", forward nothing
//	none, single, all, system,
//	crash, wer, unsigned integers    -> unchanged
//	"true" (any case)                -> "all"
//	"full" (any case)                -> "system"
//	anything else                    -> "system", valid=false
func NormalizeGoTraceback(value string) (normalized string, valid bool) {
	lower := strings.ToLower(value)
	switch lower {
	case "":
		return "", true
	case GoTracebackNone, GoTracebackSingle, GoTracebackAll,
		GoTracebackSystem, GoTracebackCrash, GoTracebackWER:
		return lower, true
	case "true":
		return GoTracebackAll, true
	case "full":
		return GoTracebackSystem, true
	}
	if _, err := strconv.ParseUint(value, 10, 32); err == nil {
		return value, true
	}
	return GoTracebackSystem, false
}

// NormalizeTracebackFor normalizes value for the variable name, applying
// the Go runtime's vocabulary to GOTRACEBACK.
func NormalizeTracebackFor(name, value string) (normalized string, valid bool) {
	if name == GoTracebackEnv {
		return NormalizeGoTraceback(value)
	}
	return NormalizeTraceback(value)
}
