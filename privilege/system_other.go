//go:build !unix

package privilege

// OS returns nil: there are no POSIX user IDs to inspect on this platform.
func OS() System {
	return nil
}
