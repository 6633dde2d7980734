//go:build unix

package privilege

import (
	"os"
	"syscall"
)

// isRootOwnedSetuid reports whether path carries the setuid bit and is owned
// by root, the only combination that yields the Suid state when executed.
func isRootOwnedSetuid(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeSetuid == 0 {
		return false
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	return ok && stat.Uid == RootUID
}
