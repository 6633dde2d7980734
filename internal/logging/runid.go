package logging

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// RunIDEnvVar carries the run ID from a parent process to the escalated
// child so that both halves of one invocation share an ID.
const RunIDEnvVar = "PRIVCHECK_RUN_ID"

// GenerateRunID returns a new ULID. ULIDs sort by creation time, which keeps
// per-run log files in chronological order.
func GenerateRunID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// InheritedRunID returns the run ID handed down by a parent process, or a
// new one when there is none or it is malformed.
func InheritedRunID(lookup func(string) (string, bool)) string {
	if value, ok := lookup(RunIDEnvVar); ok {
		if _, err := ulid.ParseStrict(value); err == nil {
			return value
		}
	}
	return GenerateRunID()
}
